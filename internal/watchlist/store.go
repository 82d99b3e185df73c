// Package watchlist persists the set of followed game ids shown in the
// default market view.
package watchlist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/gamestock/gamestock-client/internal/logger"
	"github.com/jmoiron/sqlx"
)

const (
	_createFollowedGames = `CREATE TABLE IF NOT EXISTS followed_games (
								game_id INTEGER PRIMARY KEY
							)`
	_queryFollowedGames  = "SELECT game_id FROM followed_games"
	_insertFollowedGame  = "INSERT INTO followed_games (game_id) VALUES ($1) ON CONFLICT DO NOTHING"
	_deleteFollowedGame  = "DELETE FROM followed_games WHERE game_id = $1"
)

type Store struct {
	db   *sqlx.DB // nil means memory-only
	seed []int

	logger logger.Logger

	mu  sync.Mutex
	ids map[int]struct{}
}

func NewStore(db *sqlx.DB, seed []int, logger logger.Logger) *Store {
	return &Store{
		db:     db,
		seed:   seed,
		logger: logger,
		ids:    make(map[int]struct{}),
	}
}

// Init loads the persisted set, seeding the configured defaults on first
// run. Load failures degrade to the seed set.
func (s *Store) Init(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		s.applySeedLocked(ctx)
		return
	}

	if _, err := s.db.ExecContext(ctx, _createFollowedGames); err != nil {
		s.logger.Warnf("%s: can't ensure followed_games table", err)
		s.applySeedLocked(ctx)
		return
	}

	var ids []int
	if err := s.db.SelectContext(ctx, &ids, _queryFollowedGames); err != nil && !errors.Is(err, sql.ErrNoRows) {
		s.logger.Warnf("%s: can't load followed games", err)
		s.applySeedLocked(ctx)
		return
	}

	if len(ids) == 0 {
		s.applySeedLocked(ctx)
		return
	}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
}

func (s *Store) applySeedLocked(ctx context.Context) {
	for _, id := range s.seed {
		s.ids[id] = struct{}{}
		if err := s.flushFollow(ctx, id); err != nil {
			s.logger.Errorf("%s: can't seed followed game %d", err, id)
		}
	}
}

func (s *Store) Follow(ctx context.Context, gameID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ids[gameID] = struct{}{}
	if err := s.flushFollow(ctx, gameID); err != nil {
		s.logger.Errorf("%s: can't persist follow %d", err, gameID)
	}
}

func (s *Store) Unfollow(ctx context.Context, gameID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.ids, gameID)
	if s.db == nil {
		return
	}
	if _, err := s.db.ExecContext(ctx, _deleteFollowedGame, gameID); err != nil {
		s.logger.Errorf("%s: can't persist unfollow %d", err, gameID)
	}
}

func (s *Store) Contains(gameID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[gameID]
	return ok
}

func (s *Store) IDs() []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (s *Store) flushFollow(ctx context.Context, gameID int) error {
	if s.db == nil {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, _insertFollowedGame, gameID); err != nil {
		return fmt.Errorf("%w: can't insert followed game", err)
	}
	return nil
}
