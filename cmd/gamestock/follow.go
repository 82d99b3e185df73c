package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/google/subcommands"

	"github.com/gamestock/gamestock-client/internal/logger"
	"github.com/gamestock/gamestock-client/internal/watchlist"
)

type followCmd struct {
	follow bool
}

func (c *followCmd) Name() string {
	if c.follow {
		return "follow"
	}
	return "unfollow"
}

func (c *followCmd) Synopsis() string {
	if c.follow {
		return "add a game to the followed list"
	}
	return "remove a game from the followed list"
}

func (c *followCmd) Usage() string {
	return fmt.Sprintf(`gamestock %s <game-id>...

  Changes which games the default market view shows.
`, c.Name())
}

func (*followCmd) SetFlags(*flag.FlagSet) {}

func (c *followCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 1 {
		fmt.Print(c.Usage())
		return subcommands.ExitUsageError
	}

	a, loggerSync, err := newApp(logger.Warn)
	if err != nil {
		return fail(err)
	}
	defer loggerSync()

	db := openDB(a.logger)
	if db == nil {
		return fail(fmt.Errorf("no database available, the followed list can't be changed"))
	}

	followed := watchlist.NewStore(db, a.cfg.Market.FollowedSeed, a.logger)
	followed.Init(ctx)

	for _, arg := range f.Args() {
		gameID, err := strconv.Atoi(arg)
		if err != nil {
			return fail(fmt.Errorf("%w: invalid game id %q", err, arg))
		}
		if c.follow {
			followed.Follow(ctx, gameID)
		} else {
			followed.Unfollow(ctx, gameID)
		}
	}

	fmt.Printf("followed games: %v\n", followed.IDs())
	return subcommands.ExitSuccess
}
