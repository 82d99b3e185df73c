package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/gamestock/gamestock-client/internal/logger"
)

type transactionsCmd struct {
	page    int
	perPage int
	asJSON  bool
}

func (*transactionsCmd) Name() string     { return "transactions" }
func (*transactionsCmd) Synopsis() string { return "list past trades" }
func (*transactionsCmd) Usage() string {
	return `gamestock transactions [-page <n>] [-per-page <n>] [-json]

  Logs in and prints one page of trade history, newest first.
`
}

func (c *transactionsCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.page, "page", 1, "page number")
	f.IntVar(&c.perPage, "per-page", 20, "transactions per page")
	f.BoolVar(&c.asJSON, "json", false, "print raw JSON instead of a table")
}

func (c *transactionsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, loggerSync, err := newApp(logger.Warn)
	if err != nil {
		return fail(err)
	}
	defer loggerSync()

	if err := a.session.AutoLogin(ctx); err != nil {
		return fail(err)
	}

	page, err := a.client.Transactions(ctx, c.page, c.perPage)
	if err != nil {
		return fail(err)
	}

	if c.asJSON {
		return printJSON(page)
	}

	fmt.Printf("%-6s %-5s %-28s %6s %10s %12s  %s\n", "ID", "SIDE", "GAME", "QTY", "PRICE", "TOTAL", "WHEN")
	for _, tx := range page.Transactions {
		fmt.Printf("%-6d %-5s %-28s %6d %10.2f %12.2f  %s\n",
			tx.ID, tx.Type, tx.GameName, tx.Quantity, tx.Price, tx.TotalAmount,
			tx.Timestamp.Format("2006-01-02 15:04"))
	}
	fmt.Printf("\npage %d of %d (%d transactions)\n", page.Pagination.Page, page.Pagination.Pages, page.Pagination.Total)
	return subcommands.ExitSuccess
}
