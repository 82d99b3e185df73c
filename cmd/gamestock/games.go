package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/benbjohnson/clock"
	"github.com/bytedance/sonic"
	"github.com/google/subcommands"

	"github.com/gamestock/gamestock-client/internal/logger"
	"github.com/gamestock/gamestock-client/internal/market"
	"github.com/gamestock/gamestock-client/internal/model"
	"github.com/gamestock/gamestock-client/internal/pricehistory"
	"github.com/gamestock/gamestock-client/internal/watchlist"
)

type gamesCmd struct {
	search string
	sortBy string
	all    bool
	asJSON bool
}

func (*gamesCmd) Name() string     { return "games" }
func (*gamesCmd) Synopsis() string { return "list games on the market" }
func (*gamesCmd) Usage() string {
	return `gamestock games [-search <text>] [-sort name|price|review_rate|positive_reviews] [-all] [-json]

  Lists followed games, or every matching game when -search or -all is given.
`
}

func (c *gamesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.search, "search", "", "filter games by name")
	f.StringVar(&c.sortBy, "sort", "price", "sort order: name, price, review_rate or positive_reviews")
	f.BoolVar(&c.all, "all", false, "show every game, not just followed ones")
	f.BoolVar(&c.asJSON, "json", false, "print raw JSON instead of a table")
}

func (c *gamesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, loggerSync, err := newApp(logger.Warn)
	if err != nil {
		return fail(err)
	}
	defer loggerSync()

	db := openDB(a.logger)
	history := pricehistory.NewStore(db, clock.New(), a.logger)
	history.Init(ctx)
	followed := watchlist.NewStore(db, a.cfg.Market.FollowedSeed, a.logger)
	followed.Init(ctx)

	m := market.NewService(a.client, history, followed, a.cfg.Market, nil, a.logger)
	m.SetSort(market.SortOption(c.sortBy))

	if c.search != "" {
		m.SetSearch(c.search)
	}

	m.Load(ctx)
	if msg := m.ErrorMessage(); msg != "" {
		return fail(fmt.Errorf("%s", msg))
	}

	games := m.FilteredGames()
	if c.all && c.search == "" {
		games = m.Games()
		m.SortGames(games)
	}

	if c.asJSON {
		return printJSON(gamesWithChange(m, games))
	}

	fmt.Printf("%-4s %-28s %10s %9s %7s %s\n", "ID", "NAME", "PRICE", "CHANGE", "RATE", "FOLLOWED")
	for _, g := range games {
		change := "     -"
		if pct, ok := m.PriceChangePercent(g); ok {
			change = fmt.Sprintf("%+.2f%%", pct)
		}
		followedMark := ""
		if m.IsFollowed(g.ID) {
			followedMark = "*"
		}
		fmt.Printf("%-4d %-28s %10.2f %9s %6.1f%% %s\n",
			g.ID, g.Name, g.CurrentPrice, change, g.ReviewRate*100, followedMark)
	}
	return subcommands.ExitSuccess
}

type gameWithChange struct {
	model.Game
	ChangePercent *float64 `json:"change_percent"`
}

func gamesWithChange(m *market.Service, games []model.Game) []gameWithChange {
	out := make([]gameWithChange, 0, len(games))
	for _, g := range games {
		e := gameWithChange{Game: g}
		if pct, ok := m.PriceChangePercent(g); ok {
			e.ChangePercent = &pct
		}
		out = append(out, e)
	}
	return out
}

func printJSON(v any) subcommands.ExitStatus {
	payload, err := sonic.MarshalIndent(v, "", "  ")
	if err != nil {
		return fail(err)
	}
	fmt.Fprintln(os.Stdout, string(payload))
	return subcommands.ExitSuccess
}
