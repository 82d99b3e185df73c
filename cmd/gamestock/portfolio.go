package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/google/subcommands"

	"github.com/gamestock/gamestock-client/internal/logger"
	"github.com/gamestock/gamestock-client/internal/model"
	"github.com/gamestock/gamestock-client/internal/portfolio"
	"github.com/gamestock/gamestock-client/internal/pricehistory"
)

type portfolioCmd struct {
	asJSON bool
}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "show holdings and account balance" }
func (*portfolioCmd) Usage() string {
	return `gamestock portfolio [-json]

  Logs in and prints the current holdings with gain figures.
`
}

func (c *portfolioCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.asJSON, "json", false, "print raw JSON instead of a table")
}

func (c *portfolioCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, loggerSync, err := newApp(logger.Warn)
	if err != nil {
		return fail(err)
	}
	defer loggerSync()

	if err := a.session.AutoLogin(ctx); err != nil {
		return fail(err)
	}

	history := pricehistory.NewStore(openDB(a.logger), clock.New(), a.logger)
	history.Init(ctx)

	p := portfolio.NewService(a.client, history, model.Portfolio{}, nil, true, a.logger)
	p.Load(ctx)
	if msg := p.ErrorMessage(); msg != "" {
		return fail(fmt.Errorf("%s", msg))
	}

	pf := p.Portfolio()
	if c.asJSON {
		return printJSON(pf)
	}

	fmt.Printf("Total assets:  %10.2f\n", pf.TotalValue)
	fmt.Printf("Cash balance:  %10.2f\n", pf.CashBalance)
	fmt.Printf("Stock value:   %10.2f\n", pf.StockValue)
	fmt.Printf("Total P/L:     %10.2f (%.2f%%)\n", pf.TotalGainLoss, p.TotalGainLossPercentage())
	fmt.Printf("Today P/L:     %10.2f\n\n", p.TodayGainLoss())

	fmt.Printf("%-4s %-28s %6s %10s %10s %10s\n", "ID", "GAME", "QTY", "AVG COST", "PRICE", "P/L")
	for _, h := range pf.Holdings {
		fmt.Printf("%-4d %-28s %6d %10.2f %10.2f %+10.2f\n",
			h.GameID, h.GameName, h.Quantity, h.AverageCost, h.CurrentPrice, h.GainLoss)
	}
	return subcommands.ExitSuccess
}
