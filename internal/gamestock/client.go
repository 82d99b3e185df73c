// Package gamestock is the typed client for the GameStock trading backend.
package gamestock

import (
	"context"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"time"

	"github.com/gamestock/gamestock-client/internal/config"
	"github.com/gamestock/gamestock-client/internal/logger"
	"github.com/gamestock/gamestock-client/internal/model"
	"github.com/google/uuid"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

const (
	_gamesURL        = "/api/games"
	_registerURL     = "/api/auth/register"
	_loginURL        = "/api/auth/login"
	_portfolioURL    = "/api/trading/portfolio"
	_transactionsURL = "/api/trading/transactions"
	_buyURL          = "/api/trading/buy"
	_sellURL         = "/api/trading/sell"

	_requestIDHeader = "X-Request-ID"
)

// apiErrorResponse is the backend's error body. Some routes fill "error",
// others "message".
type apiErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type Client struct {
	c           *resty.Client
	rateLimiter ratelimit.Limiter

	logger logger.Logger
}

// NewClient builds a client against cfg.BaseURL. The cookie jar keeps the
// backend's session cookie across calls, so login state lives here.
func NewClient(cfg config.ClientConfig, logger logger.Logger) (*Client, error) {
	if u, err := url.Parse(cfg.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, ErrInvalidURL
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	client := resty.New().
		SetLogger(logger).
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.RequestTimeout).
		SetCookieJar(jar).
		SetHeader("Content-Type", "application/json")

	return &Client{
		c:           client,
		rateLimiter: ratelimit.New(cfg.RequestsPerMinute, ratelimit.Per(1*time.Minute)),
		logger:      logger,
	}, nil
}

func (c *Client) newRequest(ctx context.Context) *resty.Request {
	c.rateLimiter.Take()
	return c.c.R().
		SetHeader(_requestIDHeader, uuid.NewString()).
		SetError(&apiErrorResponse{}).
		SetContext(ctx)
}

func (c *Client) serverError(resp *resty.Response) error {
	message := resp.Status()
	if e, ok := resp.Error().(*apiErrorResponse); ok {
		if e.Message != "" {
			message = e.Message
		} else if e.Error != "" {
			message = e.Error
		}
	}
	return &ServerError{Code: resp.StatusCode(), Message: message}
}

func (c *Client) ListGames(ctx context.Context) ([]model.Game, error) {
	var games []model.Game
	req := c.newRequest(ctx).SetResult(&games)

	resp, err := req.Get(_gamesURL)
	if err != nil {
		return nil, wrapRequestErr(err)
	}
	defer resp.Body.Close()

	c.logger.Debugf("got response %s status: %s, %s", resp.Request.URL, resp.Status(), resp.Duration())

	if resp.IsError() {
		return nil, c.serverError(resp)
	}
	return games, nil
}

func (c *Client) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	result := &model.RegisterResponse{}
	req := c.newRequest(ctx).
		SetBody(map[string]string{
			"username": username,
			"email":    email,
			"password": password,
		}).
		SetResult(result)

	resp, err := req.Post(_registerURL)
	if err != nil {
		return nil, wrapRequestErr(err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return nil, c.serverError(resp)
	}
	return &result.User, nil
}

func (c *Client) Login(ctx context.Context, creds config.Credentials) (*model.LoginResponse, error) {
	result := &model.LoginResponse{}
	req := c.newRequest(ctx).
		SetBody(map[string]string{
			"username": creds.Username,
			"password": creds.Password,
		}).
		SetResult(result)

	resp, err := req.Post(_loginURL)
	if err != nil {
		return nil, wrapRequestErr(err)
	}
	defer resp.Body.Close()

	c.logger.Debugf("login %s status: %s", creds.Username, resp.Status())

	if resp.IsError() {
		return nil, c.serverError(resp)
	}
	return result, nil
}

func (c *Client) Portfolio(ctx context.Context) (model.Portfolio, error) {
	result := &model.PortfolioResponse{}
	req := c.newRequest(ctx).SetResult(result)

	resp, err := req.Get(_portfolioURL)
	if err != nil {
		return model.Portfolio{}, wrapRequestErr(err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return model.Portfolio{}, c.serverError(resp)
	}
	return result.ToPortfolio(), nil
}

// Transactions fetches one page of trade history. Zero page or perPage
// leaves the choice to the server.
func (c *Client) Transactions(ctx context.Context, page, perPage int) (model.TransactionsPage, error) {
	result := &model.TransactionsPage{}
	req := c.newRequest(ctx).SetResult(result)
	if page > 0 {
		req.SetQueryParam("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		req.SetQueryParam("per_page", strconv.Itoa(perPage))
	}

	resp, err := req.Get(_transactionsURL)
	if err != nil {
		return model.TransactionsPage{}, wrapRequestErr(err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return model.TransactionsPage{}, c.serverError(resp)
	}
	return *result, nil
}

func (c *Client) Buy(ctx context.Context, gameID, shares int) (*model.TradeResult, error) {
	return c.trade(ctx, _buyURL, gameID, shares)
}

func (c *Client) Sell(ctx context.Context, gameID, shares int) (*model.TradeResult, error) {
	return c.trade(ctx, _sellURL, gameID, shares)
}

func (c *Client) trade(ctx context.Context, endpoint string, gameID, shares int) (*model.TradeResult, error) {
	result := &model.TradeResult{}
	req := c.newRequest(ctx).
		SetBody(map[string]int{
			"game_id": gameID,
			"shares":  shares,
		}).
		SetResult(result)

	resp, err := req.Post(endpoint)
	if err != nil {
		return nil, wrapRequestErr(err)
	}
	defer resp.Body.Close()

	c.logger.Debugf("trade %s game=%d shares=%d status: %s", endpoint, gameID, shares, resp.Status())

	if resp.IsError() {
		return nil, c.serverError(resp)
	}
	return result, nil
}
