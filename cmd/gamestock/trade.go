package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/google/subcommands"

	"github.com/gamestock/gamestock-client/internal/logger"
	"github.com/gamestock/gamestock-client/internal/model"
	"github.com/gamestock/gamestock-client/internal/trading"
)

type tradeCmd struct {
	side string
	max  bool
}

func (c *tradeCmd) Name() string { return c.side }

func (c *tradeCmd) Synopsis() string {
	if c.side == "sell" {
		return "sell shares of a game"
	}
	return "buy shares of a game"
}

func (c *tradeCmd) Usage() string {
	return fmt.Sprintf(`gamestock %s <game-id> [<shares>] [-max]

  Places a %s order. Shares defaults to 1; -max trades as many as possible.
`, c.side, c.side)
}

func (c *tradeCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.max, "max", false, "trade the maximum executable quantity")
}

func (c *tradeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 1 {
		fmt.Print(c.Usage())
		return subcommands.ExitUsageError
	}
	gameID, err := strconv.Atoi(f.Arg(0))
	if err != nil {
		return fail(fmt.Errorf("%w: invalid game id %q", err, f.Arg(0)))
	}
	shares := 1
	if f.NArg() > 1 {
		if shares, err = strconv.Atoi(f.Arg(1)); err != nil {
			return fail(fmt.Errorf("%w: invalid share count %q", err, f.Arg(1)))
		}
	}

	a, loggerSync, err := newApp(logger.Warn)
	if err != nil {
		return fail(err)
	}
	defer loggerSync()

	if err := a.session.AutoLogin(ctx); err != nil {
		return fail(err)
	}

	games, err := a.client.ListGames(ctx)
	if err != nil {
		return fail(err)
	}
	var game model.Game
	for _, g := range games {
		if g.ID == gameID {
			game = g
			break
		}
	}
	if game.ID == 0 {
		return fail(fmt.Errorf("unknown game id %d", gameID))
	}

	pf, err := a.client.Portfolio(ctx)
	if err != nil {
		return fail(err)
	}
	holding := 0
	for _, h := range pf.Holdings {
		if h.GameID == gameID {
			holding = h.Quantity
			break
		}
	}

	t := trading.NewService(a.client, a.session, a.logger)
	t.Begin(game, holding, pf.CashBalance)

	side := model.Buy
	if c.side == "sell" {
		side = model.Sell
	}
	t.SetSide(side)
	if notice := t.Notice(); notice != "" {
		return fail(fmt.Errorf("%s", notice))
	}

	if c.max {
		t.SetMaxQuantity()
	} else {
		t.SetQuantity(shares)
	}

	if !t.CanExecuteTrade() {
		return fail(fmt.Errorf("can't %s %d shares of %q: maximum is %d",
			c.side, t.Quantity(), game.Name, t.MaxQuantity()))
	}

	fmt.Printf("%s %d x %q at %.2f (total %.2f)\n",
		c.side, t.Quantity(), game.Name, game.CurrentPrice, t.TotalAmount())

	if err := t.ExecuteTrade(ctx); err != nil {
		return fail(fmt.Errorf("%s", t.Message()))
	}

	fmt.Println(t.Message())
	if tx := t.LastTransaction(); tx != nil {
		fmt.Printf("transaction #%d: %s %d x %.2f = %.2f\n",
			tx.ID, tx.Type, tx.Quantity, tx.Price, tx.TotalAmount)
	}
	fmt.Printf("balance: %.2f, holding: %d shares\n", t.AvailableCash(), t.CurrentHolding())
	return subcommands.ExitSuccess
}
