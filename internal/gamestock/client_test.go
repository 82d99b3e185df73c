package gamestock

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gamestock/gamestock-client/internal/config"
	"github.com/gamestock/gamestock-client/internal/logger"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.ClientConfig{BaseURL: srv.URL}
	require.NoError(t, cfg.Setup())

	c, err := NewClient(cfg, logger.NewNop())
	require.NoError(t, err)
	return c
}

func TestNewClient_RejectsBadURL(t *testing.T) {
	for _, baseURL := range []string{"", "not a url", "localhost:5000", "/just/a/path"} {
		_, err := NewClient(config.ClientConfig{BaseURL: baseURL}, logger.NewNop())
		require.ErrorIs(t, err, ErrInvalidURL, "base url %q", baseURL)
	}
}

func TestClient_ListGames(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/games", r.URL.Path)
		require.NotEmpty(t, r.Header.Get("X-Request-ID"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 1, "name": "Terraria", "current_price": 197.73,
			 "review_rate": 0.97, "positive_reviews": 1000000,
			 "last_updated": "2026-08-28T10:30:00.000000"},
			{"id": 2, "name": "Dota 2", "current_price": 196.14}
		]`))
	}))

	games, err := c.ListGames(context.Background())
	require.NoError(t, err)
	require.Len(t, games, 2)
	require.Equal(t, "Terraria", games[0].Name)
	require.Equal(t, 197.73, games[0].CurrentPrice)
	require.Equal(t, 2026, games[0].LastUpdated.Year())
}

func TestClient_LoginKeepsSessionCookie(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "test_trader", body["username"])

		http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc"})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 1, "username": "test_trader", "balance": 10000, "message": "ok"}`))
	})
	mux.HandleFunc("/api/trading/portfolio", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("session")
		require.NoError(t, err)
		require.Equal(t, "abc", cookie.Value)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "portfolios": [], "summary": {}}`))
	})
	c := newTestClient(t, mux)

	login, err := c.Login(context.Background(), config.Credentials{Username: "test_trader", Password: "password123"})
	require.NoError(t, err)
	require.Equal(t, 10000.0, login.Balance)

	_, err = c.Portfolio(context.Background())
	require.NoError(t, err)
}

func TestClient_PortfolioMapsEnvelope(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"portfolios": [
				{"id": 1, "game_id": 3, "game_name": "PUBG", "shares": 4,
				 "avg_buy_price": 65.00, "current_price": 71.50,
				 "total_value": 286.00, "profit_loss": 26.00, "profit_loss_percent": 10.0}
			],
			"summary": {
				"total_value": 286.00, "cash_balance": 714.00,
				"total_assets": 1000.00, "total_profit_loss": 26.00
			}
		}`))
	}))

	p, err := c.Portfolio(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1000.00, p.TotalValue)
	require.Equal(t, 714.00, p.CashBalance)
	require.Equal(t, 286.00, p.StockValue)
	require.Len(t, p.Holdings, 1)
	require.Equal(t, 4, p.Holdings[0].Quantity)
	require.Equal(t, 65.00, p.Holdings[0].AverageCost)
}

func TestClient_TransactionsPagination(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "2", r.URL.Query().Get("page"))
		require.Equal(t, "10", r.URL.Query().Get("per_page"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"transactions": [
				{"id": 11, "game_id": 1, "game_name": "Terraria",
				 "transaction_type": "buy", "shares": 2, "price_per_share": 190.00,
				 "total_amount": 380.00, "created_at": "2026-08-27T09:15:00"}
			],
			"pagination": {"page": 2, "per_page": 10, "total": 15, "pages": 2}
		}`))
	}))

	page, err := c.Transactions(context.Background(), 2, 10)
	require.NoError(t, err)
	require.Len(t, page.Transactions, 1)
	require.Equal(t, 2, page.Transactions[0].Quantity)
	require.Equal(t, 2, page.Pagination.Page)
	require.Equal(t, 15, page.Pagination.Total)
}

func TestClient_BuyDecodesTradeResult(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/trading/buy", r.URL.Path)
		var body map[string]int
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, 1, body["game_id"])
		require.Equal(t, 2, body["shares"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"message": "Successfully bought 2 shares",
			"user_balance": 9604.54,
			"portfolio": {"game_id": 1, "shares": 2}
		}`))
	}))

	result, err := c.Buy(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Equal(t, 9604.54, result.UserBalance)
	require.Equal(t, 2, result.Portfolio.Shares)
}

func TestClient_ServerErrorCarriesMessage(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "Insufficient balance"}`))
	}))

	_, err := c.Buy(context.Background(), 1, 999)
	require.Error(t, err)

	var srvErr *ServerError
	require.ErrorAs(t, err, &srvErr)
	require.Equal(t, http.StatusBadRequest, srvErr.Code)
	require.Equal(t, "Insufficient balance", srvErr.Message)
	require.Equal(t, FailureServer, Classify(err))
}

func TestClient_ConnectionRefusedClassifiedUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close() // nothing listens there anymore

	cfg := config.ClientConfig{BaseURL: baseURL}
	require.NoError(t, cfg.Setup())
	c, err := NewClient(cfg, logger.NewNop())
	require.NoError(t, err)

	_, err = c.ListGames(context.Background())
	require.Error(t, err)
	require.Equal(t, FailureUnreachableHost, Classify(err))
}

func TestClient_TimeoutClassified(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.ListGames(ctx)
	require.Error(t, err)
	require.Equal(t, FailureTimeout, Classify(err))
}

func TestClient_MalformedBodyClassifiedDecode(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{not json`))
	}))

	_, err := c.ListGames(context.Background())
	require.Error(t, err)
	require.Equal(t, FailureDecode, Classify(err))
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"server error", &ServerError{Code: 400, Message: "Insufficient balance"}, "server error: Insufficient balance"},
		{"timeout", &NetworkError{Cause: context.DeadlineExceeded}, "request timed out, try again later"},
		{"decode", &DecodingError{Cause: errors.New("bad json")}, "can't parse the server response"},
		{"invalid url", ErrInvalidURL, "invalid server address"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}
