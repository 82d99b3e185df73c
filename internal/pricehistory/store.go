// Package pricehistory keeps a per-game append-only log of observed prices,
// used to derive day-over-day change client-side.
package pricehistory

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/gamestock/gamestock-client/internal/logger"
	"github.com/gamestock/gamestock-client/internal/model"
	"github.com/jmoiron/sqlx"
)

type Store struct {
	db    *sqlx.DB // nil means memory-only
	clock clock.Clock

	logger logger.Logger

	mu    sync.Mutex
	cache map[int][]model.PricePoint
}

func NewStore(db *sqlx.DB, clk clock.Clock, logger logger.Logger) *Store {
	return &Store{
		db:     db,
		clock:  clk,
		logger: logger,
		cache:  make(map[int][]model.PricePoint),
	}
}

// Init loads persisted history. Any failure degrades to an empty store:
// local history is a convenience, never worth refusing to start over.
func (s *Store) Init(ctx context.Context) {
	if s.db == nil {
		return
	}

	if err := s.ensureSchema(ctx); err != nil {
		s.logger.Warnf("%s: can't ensure price history schema, starting empty", err)
		return
	}

	cache, err := s.loadAll(ctx)
	if err != nil {
		s.logger.Warnf("%s: can't load price history, starting empty", err)
		return
	}

	s.mu.Lock()
	s.cache = cache
	s.mu.Unlock()
}

func (s *Store) RecordPrice(ctx context.Context, gameID int, price float64) {
	s.RecordPriceAt(ctx, gameID, price, s.clock.Now())
}

// RecordPriceAt appends a sample unless the last stored sample for the game
// carries the exact same timestamp. Every accepted write goes straight to
// the database.
func (s *Store) RecordPriceAt(ctx context.Context, gameID int, price float64, t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.cache[gameID]
	if n := len(history); n > 0 && history[n-1].Timestamp.Equal(t) {
		return
	}

	s.cache[gameID] = append(history, model.PricePoint{Price: price, Timestamp: t})

	if err := s.flushPoint(ctx, gameID, price, t); err != nil {
		s.logger.Errorf("%s: can't persist price point game=%d", err, gameID)
	}
}

// History returns the recorded samples for a game in insertion order.
func (s *Store) History(gameID int) []model.PricePoint {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.cache[gameID]
	out := make([]model.PricePoint, len(history))
	copy(out, history)
	return out
}

// YesterdayPrice picks the last sample from the local-calendar day before
// today. Without one it falls back to the sample closest to 24h ago.
func (s *Store) YesterdayPrice(gameID int) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.cache[gameID]
	if len(history) == 0 {
		return 0, false
	}

	now := s.clock.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	yesterdayStart := todayStart.Add(-24 * time.Hour)

	var (
		price float64
		found bool
	)
	for _, p := range history {
		if !p.Timestamp.Before(yesterdayStart) && p.Timestamp.Before(todayStart) {
			price = p.Price
			found = true
		}
	}
	if found {
		return price, true
	}

	target := now.Add(-24 * time.Hour)
	closest := history[0]
	for _, p := range history[1:] {
		if absDuration(p.Timestamp.Sub(target)) < absDuration(closest.Timestamp.Sub(target)) {
			closest = p
		}
	}
	return closest.Price, true
}

// Clear wipes all history. Diagnostic use only.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache = make(map[int][]model.PricePoint)

	if err := s.deleteAll(ctx); err != nil {
		s.logger.Errorf("%s: can't clear persisted price history", err)
	}
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
