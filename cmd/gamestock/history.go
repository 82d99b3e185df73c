package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/benbjohnson/clock"
	"github.com/google/subcommands"

	"github.com/gamestock/gamestock-client/internal/logger"
	"github.com/gamestock/gamestock-client/internal/pricehistory"
)

type historyCmd struct {
	asJSON bool
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "show recorded prices for a game" }
func (*historyCmd) Usage() string {
	return `gamestock history <game-id> [-json]

  Prints the locally recorded price samples for one game, oldest first.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.asJSON, "json", false, "print raw JSON instead of a table")
}

func (c *historyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Print(c.Usage())
		return subcommands.ExitUsageError
	}
	gameID, err := strconv.Atoi(f.Arg(0))
	if err != nil {
		return fail(fmt.Errorf("%w: invalid game id %q", err, f.Arg(0)))
	}

	a, loggerSync, err := newApp(logger.Warn)
	if err != nil {
		return fail(err)
	}
	defer loggerSync()

	history := pricehistory.NewStore(openDB(a.logger), clock.New(), a.logger)
	history.Init(ctx)

	points := history.History(gameID)
	if len(points) == 0 {
		fmt.Println("no recorded prices")
		return subcommands.ExitSuccess
	}

	if c.asJSON {
		return printJSON(points)
	}

	for _, p := range points {
		fmt.Printf("%s  %10.2f\n", p.Timestamp.Format("2006-01-02 15:04:05"), p.Price)
	}
	if yesterday, ok := history.YesterdayPrice(gameID); ok {
		fmt.Printf("\nyesterday's price: %.2f\n", yesterday)
	}
	return subcommands.ExitSuccess
}
