package pricehistory

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"

	"github.com/gamestock/gamestock-client/internal/logger"
)

func newTestStore(t *testing.T) (*Store, *clock.Mock) {
	t.Helper()

	mock := clock.NewMock()
	// Middle of a day, so yesterday is a full local calendar day.
	mock.Set(time.Date(2026, time.March, 10, 15, 0, 0, 0, time.Local))

	return NewStore(nil, mock, logger.NewNop()), mock
}

func TestStore_RecordKeepsInsertionOrder(t *testing.T) {
	s, mock := newTestStore(t)
	ctx := context.Background()

	s.RecordPrice(ctx, 1, 10)
	mock.Add(time.Minute)
	s.RecordPrice(ctx, 1, 11)
	mock.Add(time.Minute)
	s.RecordPrice(ctx, 1, 12)

	history := s.History(1)
	require.Len(t, history, 3)
	require.Equal(t, 10.0, history[0].Price)
	require.Equal(t, 12.0, history[2].Price)
	require.True(t, history[0].Timestamp.Before(history[2].Timestamp))
}

func TestStore_RecordSkipsDuplicateTimestamp(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.RecordPrice(ctx, 1, 10)
	s.RecordPrice(ctx, 1, 99)

	history := s.History(1)
	require.Len(t, history, 1)
	require.Equal(t, 10.0, history[0].Price)
}

func TestStore_YesterdayPriceUsesLastSampleOfYesterday(t *testing.T) {
	s, mock := newTestStore(t)
	ctx := context.Background()
	now := mock.Now()

	s.RecordPriceAt(ctx, 1, 5, now.Add(-48*time.Hour))
	s.RecordPriceAt(ctx, 1, 7, now.Add(-30*time.Hour)) // yesterday 09:00
	s.RecordPriceAt(ctx, 1, 8, now.Add(-20*time.Hour)) // yesterday 19:00
	s.RecordPriceAt(ctx, 1, 9, now.Add(-time.Hour))    // today

	price, ok := s.YesterdayPrice(1)
	require.True(t, ok)
	require.Equal(t, 8.0, price)
}

func TestStore_YesterdayPriceFallsBackToClosest(t *testing.T) {
	s, mock := newTestStore(t)
	ctx := context.Background()
	now := mock.Now()

	// Nothing inside yesterday: one sample three days back, one today.
	s.RecordPriceAt(ctx, 1, 5, now.Add(-72*time.Hour))
	s.RecordPriceAt(ctx, 1, 9, now.Add(-2*time.Hour))

	price, ok := s.YesterdayPrice(1)
	require.True(t, ok)
	// 2h ago is 22h from the 24h-ago target, the old sample is 48h away.
	require.Equal(t, 9.0, price)
}

func TestStore_YesterdayPriceFallbackTiePrefersEarliest(t *testing.T) {
	s, mock := newTestStore(t)
	ctx := context.Background()
	now := mock.Now()

	// Two samples equally far from the 24h-ago target, neither inside
	// yesterday.
	target := now.Add(-24 * time.Hour)
	s.RecordPriceAt(ctx, 1, 5, target.Add(-26*time.Hour))
	s.RecordPriceAt(ctx, 1, 6, target.Add(26*time.Hour))

	price, ok := s.YesterdayPrice(1)
	require.True(t, ok)
	require.Equal(t, 5.0, price)
}

func TestStore_YesterdayPriceSinglePoint25hAgo(t *testing.T) {
	s, mock := newTestStore(t)
	ctx := context.Background()

	s.RecordPriceAt(ctx, 1, 50, mock.Now().Add(-25*time.Hour))

	price, ok := s.YesterdayPrice(1)
	require.True(t, ok)
	require.Equal(t, 50.0, price)
}

func TestStore_YesterdayPriceAcrossRefresh(t *testing.T) {
	s, mock := newTestStore(t)
	ctx := context.Background()

	s.RecordPrice(ctx, 1, 50)
	mock.Add(24*time.Hour + time.Minute)
	s.RecordPrice(ctx, 1, 55)

	price, ok := s.YesterdayPrice(1)
	require.True(t, ok)
	require.Equal(t, 50.0, price)
}

func TestStore_YesterdayPriceEmptyHistory(t *testing.T) {
	s, _ := newTestStore(t)

	_, ok := s.YesterdayPrice(42)
	require.False(t, ok)
}

func TestStore_HistoryIsACopy(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.RecordPrice(ctx, 1, 10)

	history := s.History(1)
	history[0].Price = 999

	require.Equal(t, 10.0, s.History(1)[0].Price)
}

func TestStore_ClearDropsEverything(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.RecordPrice(ctx, 1, 10)
	s.RecordPrice(ctx, 2, 20)
	s.Clear(ctx)

	require.Empty(t, s.History(1))
	require.Empty(t, s.History(2))
	_, ok := s.YesterdayPrice(1)
	require.False(t, ok)
}
