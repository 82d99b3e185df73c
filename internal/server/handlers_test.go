package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gamestock/gamestock-client/internal/config"
	"github.com/gamestock/gamestock-client/internal/logger"
	"github.com/gamestock/gamestock-client/internal/market"
	"github.com/gamestock/gamestock-client/internal/model"
	"github.com/gamestock/gamestock-client/internal/portfolio"
	"github.com/gamestock/gamestock-client/internal/session"
)

type fakeBackend struct {
	games     []model.Game
	portfolio model.Portfolio
}

func (f *fakeBackend) ListGames(ctx context.Context) ([]model.Game, error) {
	return f.games, nil
}

func (f *fakeBackend) Portfolio(ctx context.Context) (model.Portfolio, error) {
	return f.portfolio, nil
}

func (f *fakeBackend) Transactions(ctx context.Context, page, perPage int) (model.TransactionsPage, error) {
	return model.TransactionsPage{}, nil
}

func (f *fakeBackend) Login(ctx context.Context, creds config.Credentials) (*model.LoginResponse, error) {
	return &model.LoginResponse{ID: 1, Username: creds.Username, Balance: 10000}, nil
}

func (f *fakeBackend) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	return &model.User{Username: username}, nil
}

type nopHistory struct{}

func (nopHistory) RecordPrice(ctx context.Context, gameID int, price float64) {}

func (nopHistory) YesterdayPrice(gameID int) (float64, bool) { return 0, false }

type allWatchlist struct{}

func (allWatchlist) Contains(gameID int) bool { return true }

func (allWatchlist) Follow(ctx context.Context, gameID int) {}

func (allWatchlist) Unfollow(ctx context.Context, gameID int) {}

func newTestHandler(t *testing.T, backend *fakeBackend) http.Handler {
	t.Helper()

	nop := logger.NewNop()
	cfg := config.MarketConfig{NoSampleFallback: true}
	cfg.Setup()

	m := market.NewService(backend, nopHistory{}, allWatchlist{}, cfg, nil, nop)
	p := portfolio.NewService(backend, nopHistory{}, model.Portfolio{}, nil, true, nop)
	sess := session.NewService(backend, config.Credentials{Username: "test_trader"}, nop)

	ctx := context.Background()
	m.Load(ctx)
	p.Load(ctx)
	require.NoError(t, sess.AutoLogin(ctx))

	return NewHandler(m, p, sess, nop).Router()
}

func TestHandler_Health(t *testing.T) {
	h := newTestHandler(t, &fakeBackend{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_Status(t *testing.T) {
	h := newTestHandler(t, &fakeBackend{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "success", body["market_status"])
	require.Equal(t, "test_trader", body["username"])
	require.Equal(t, 10000.0, body["balance"])
}

func TestHandler_MarketSnapshot(t *testing.T) {
	backend := &fakeBackend{games: []model.Game{
		{ID: 1, Name: "Terraria", CurrentPrice: 197.73},
	}}
	h := newTestHandler(t, backend)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/market", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Games []struct {
			Name          string   `json:"name"`
			CurrentPrice  float64  `json:"current_price"`
			ChangePercent *float64 `json:"change_percent"`
		} `json:"games"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Games, 1)
	require.Equal(t, "Terraria", body.Games[0].Name)
	require.Nil(t, body.Games[0].ChangePercent) // no recorded history
}

func TestHandler_PortfolioSnapshot(t *testing.T) {
	backend := &fakeBackend{portfolio: model.Portfolio{
		TotalValue:    1100,
		TotalGainLoss: 100,
	}}
	h := newTestHandler(t, backend)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/portfolio", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		TotalGainLossPercent float64 `json:"total_gain_loss_percent"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.InDelta(t, 10.0, body.TotalGainLossPercent, 1e-9)
}
