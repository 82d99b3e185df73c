package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gamestock/gamestock-client/internal/logger"
	"github.com/gamestock/gamestock-client/internal/market"
	"github.com/gamestock/gamestock-client/internal/model"
	"github.com/gamestock/gamestock-client/internal/portfolio"
	"github.com/gamestock/gamestock-client/internal/session"
)

type Handler struct {
	market    *market.Service
	portfolio *portfolio.Service
	session   *session.Service
	logger    logger.Logger
}

func NewHandler(
	market *market.Service,
	portfolio *portfolio.Service,
	session *session.Service,
	logger logger.Logger,
) *Handler {
	return &Handler{
		market:    market,
		portfolio: portfolio,
		session:   session,
		logger:    logger,
	}
}

func (h *Handler) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", h.health)
	r.GET("/api/status", h.status)
	r.GET("/api/market", h.marketSnapshot)
	r.GET("/api/portfolio", h.portfolioSnapshot)
	r.GET("/ws/prices", h.priceStream)

	return r
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) status(c *gin.Context) {
	resp := gin.H{
		"market_status": h.market.Status(),
		"last_update":   h.market.LastUpdate(),
	}
	if user, ok := h.session.CurrentUser(); ok {
		resp["username"] = user.Username
		resp["balance"] = user.Balance
	}
	if msg := h.market.ErrorMessage(); msg != "" {
		resp["error"] = msg
	}
	c.JSON(http.StatusOK, resp)
}

type marketEntry struct {
	model.Game
	ChangePercent *float64 `json:"change_percent"`
}

func (h *Handler) marketSnapshot(c *gin.Context) {
	games := h.market.FilteredGames()

	entries := make([]marketEntry, 0, len(games))
	for _, g := range games {
		e := marketEntry{Game: g}
		if pct, ok := h.market.PriceChangePercent(g); ok {
			e.ChangePercent = &pct
		}
		entries = append(entries, e)
	}

	c.JSON(http.StatusOK, gin.H{
		"games":       entries,
		"sort":        h.market.Sort(),
		"last_update": h.market.LastUpdate(),
	})
}

func (h *Handler) portfolioSnapshot(c *gin.Context) {
	p := h.portfolio.Portfolio()

	c.JSON(http.StatusOK, gin.H{
		"portfolio":               p,
		"today_gain_loss":         h.portfolio.TodayGainLoss(),
		"total_gain_loss_percent": h.portfolio.TotalGainLossPercentage(),
		"last_update":             h.portfolio.LastUpdate(),
		"holdings_count":          len(p.Holdings),
	})
}
