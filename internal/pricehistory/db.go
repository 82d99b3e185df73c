package pricehistory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gamestock/gamestock-client/internal/model"
)

const (
	_createPricePoints = `CREATE TABLE IF NOT EXISTS price_points (
								game_id INTEGER NOT NULL,
								price DOUBLE PRECISION NOT NULL,
								ts TIMESTAMPTZ NOT NULL,
								UNIQUE (game_id, ts)
							)`
	_queryPricePoints  = "SELECT game_id, price, ts FROM price_points ORDER BY game_id, ts"
	_insertPricePoint  = "INSERT INTO price_points (game_id, price, ts) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING"
	_deletePricePoints = "DELETE FROM price_points"
)

type pricePointRow struct {
	GameID int       `db:"game_id"`
	Price  float64   `db:"price"`
	Ts     time.Time `db:"ts"`
}

func (s *Store) ensureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, _createPricePoints); err != nil {
		return fmt.Errorf("%w: can't create price_points table", err)
	}
	return nil
}

func (s *Store) loadAll(ctx context.Context) (map[int][]model.PricePoint, error) {
	var rows []pricePointRow
	if err := s.db.SelectContext(ctx, &rows, _queryPricePoints); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return make(map[int][]model.PricePoint), nil
		}
		return nil, fmt.Errorf("%w: can't query price points", err)
	}

	cache := make(map[int][]model.PricePoint)
	for _, row := range rows {
		cache[row.GameID] = append(cache[row.GameID], model.PricePoint{
			Price:     row.Price,
			Timestamp: row.Ts,
		})
	}
	return cache, nil
}

func (s *Store) flushPoint(ctx context.Context, gameID int, price float64, t time.Time) error {
	if s.db == nil {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, _insertPricePoint, gameID, price, t); err != nil {
		return fmt.Errorf("%w: can't insert price point", err)
	}
	return nil
}

func (s *Store) deleteAll(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, _deletePricePoints); err != nil {
		return fmt.Errorf("%w: can't delete price points", err)
	}
	return nil
}
