// Package market loads the game list and derives the filtered, sorted view
// of it, including day-over-day change percentages.
package market

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gamestock/gamestock-client/internal/config"
	"github.com/gamestock/gamestock-client/internal/gamestock"
	"github.com/gamestock/gamestock-client/internal/logger"
	"github.com/gamestock/gamestock-client/internal/model"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

type SortOption string

const (
	SortByName            SortOption = "name"
	SortByPrice           SortOption = "price"
	SortByReviewRate      SortOption = "review_rate"
	SortByPositiveReviews SortOption = "positive_reviews"
)

type API interface {
	ListGames(ctx context.Context) ([]model.Game, error)
}

type History interface {
	RecordPrice(ctx context.Context, gameID int, price float64)
	YesterdayPrice(gameID int) (float64, bool)
}

type Watchlist interface {
	Contains(gameID int) bool
	Follow(ctx context.Context, gameID int)
	Unfollow(ctx context.Context, gameID int)
}

type Service struct {
	api       API
	history   History
	watchlist Watchlist
	cfg       config.MarketConfig

	sampleGames []model.Game

	logger logger.Logger

	mu         sync.Mutex
	status     Status
	games      []model.Game
	searchText string
	sortOption SortOption
	lastUpdate time.Time
	errMessage string
	gen        uint64
}

func NewService(
	api API,
	history History,
	watchlist Watchlist,
	cfg config.MarketConfig,
	sampleGames []model.Game,
	logger logger.Logger,
) *Service {
	return &Service{
		api:         api,
		history:     history,
		watchlist:   watchlist,
		cfg:         cfg,
		sampleGames: sampleGames,
		logger:      logger,
		status:      StatusIdle,
		sortOption:  SortByPrice,
	}
}

// Load refreshes the game list. A no-op while a load is in flight; a
// response from a superseded load is discarded.
func (s *Service) Load(ctx context.Context) {
	s.mu.Lock()
	if s.status == StatusLoading {
		s.mu.Unlock()
		return
	}
	s.status = StatusLoading
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	games, err := s.api.ListGames(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		s.logger.Debugf("discarding stale game list response gen=%d", gen)
		return
	}

	if err != nil {
		s.status = StatusFailed
		s.errMessage = gamestock.UserMessage(err)
		s.logger.Errorf("%s: can't load games", err)

		// Never leave a first-time user staring at an empty list.
		if len(s.games) == 0 && !s.cfg.NoSampleFallback {
			s.games = s.sampleGames
			s.logger.Warnf("using sample games after load failure")
		}
		return
	}

	s.games = games
	s.status = StatusSuccess
	s.lastUpdate = time.Now()
	s.errMessage = ""

	for _, g := range games {
		s.history.RecordPrice(ctx, g.ID, g.CurrentPrice)
	}
	s.logger.Infof("loaded %d games", len(games))
}

// Run re-triggers Load on the configured interval, unless a load is in
// flight or the user is mid-search.
func (s *Service) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.cfg.RefreshInterval):
			if s.shouldAutoRefresh() {
				s.Load(ctx)
			}
		}
	}
}

func (s *Service) shouldAutoRefresh() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status != StatusLoading && s.searchText == ""
}

// FilteredGames applies search (whole list) or the followed filter, then
// the active sort. Sorts are stable: equal keys keep their original order.
func (s *Service) FilteredGames() []model.Game {
	s.mu.Lock()
	defer s.mu.Unlock()

	var filtered []model.Game
	if q := strings.TrimSpace(s.searchText); q != "" {
		for _, g := range s.games {
			if matchesSearch(g, q) {
				filtered = append(filtered, g)
			}
		}
	} else {
		for _, g := range s.games {
			if s.watchlist.Contains(g.ID) {
				filtered = append(filtered, g)
			}
		}
	}

	s.sortGames(filtered)
	return filtered
}

// SortGames applies the active sort to a caller-provided slice in place.
func (s *Service) SortGames(games []model.Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortGames(games)
}

func matchesSearch(g model.Game, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(g.Name), q) ||
		strings.Contains(strings.ToLower(g.NameOriginal), q) ||
		strings.Contains(strings.ToLower(g.NameZh), q)
}

func (s *Service) sortGames(games []model.Game) {
	switch s.sortOption {
	case SortByName:
		sort.SliceStable(games, func(i, j int) bool { return games[i].Name < games[j].Name })
	case SortByPrice:
		sort.SliceStable(games, func(i, j int) bool { return games[i].CurrentPrice > games[j].CurrentPrice })
	case SortByReviewRate:
		sort.SliceStable(games, func(i, j int) bool { return games[i].ReviewRate > games[j].ReviewRate })
	case SortByPositiveReviews:
		sort.SliceStable(games, func(i, j int) bool { return games[i].PositiveReviews > games[j].PositiveReviews })
	}
}

// PriceChangePercent derives the day-over-day change for a game. Absent
// when there is no usable prior price.
func (s *Service) PriceChangePercent(g model.Game) (float64, bool) {
	yesterday, ok := s.history.YesterdayPrice(g.ID)
	if !ok || yesterday == 0 {
		return 0, false
	}
	return (g.CurrentPrice - yesterday) / yesterday * 100, true
}

func (s *Service) SetSearch(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchText = query
}

func (s *Service) SetSort(option SortOption) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortOption = option
}

func (s *Service) Sort() SortOption {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortOption
}

func (s *Service) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Service) Games() []model.Game {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Game, len(s.games))
	copy(out, s.games)
	return out
}

func (s *Service) Game(gameID int) (model.Game, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, g := range s.games {
		if g.ID == gameID {
			return g, true
		}
	}
	return model.Game{}, false
}

func (s *Service) LastUpdate() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUpdate
}

func (s *Service) ErrorMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMessage
}

func (s *Service) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMessage = ""
	if s.status == StatusFailed {
		s.status = StatusIdle
	}
}

func (s *Service) Follow(ctx context.Context, gameID int) {
	s.watchlist.Follow(ctx, gameID)
}

func (s *Service) Unfollow(ctx context.Context, gameID int) {
	s.watchlist.Unfollow(ctx, gameID)
}

func (s *Service) IsFollowed(gameID int) bool {
	return s.watchlist.Contains(gameID)
}
