package server

import (
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const _streamInterval = 5 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Local monitoring endpoint, not exposed publicly.
		return true
	},
}

type priceUpdate struct {
	GameID        int       `json:"game_id"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	ChangePercent *float64  `json:"change_percent"`
	Timestamp     time.Time `json:"timestamp"`
}

// priceStream pushes the current prices of the visible games to the client
// on a fixed interval until the connection drops.
func (h *Handler) priceStream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Errorf("%s: can't upgrade websocket connection", err)
		return
	}
	defer conn.Close()

	h.logger.Debugf("websocket client connected: %s", conn.RemoteAddr())

	ticker := time.NewTicker(_streamInterval)
	defer ticker.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := h.writePrices(conn); err != nil {
				h.logger.Debugf("websocket client gone: %s", err)
				return
			}
		}
	}
}

func (h *Handler) writePrices(conn *websocket.Conn) error {
	now := time.Now()
	for _, g := range h.market.FilteredGames() {
		update := priceUpdate{
			GameID:    g.ID,
			Name:      g.Name,
			Price:     g.CurrentPrice,
			Timestamp: now,
		}
		if pct, ok := h.market.PriceChangePercent(g); ok {
			update.ChangePercent = &pct
		}

		payload, err := sonic.Marshal(update)
		if err != nil {
			return err
		}
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return err
		}
	}
	return nil
}
