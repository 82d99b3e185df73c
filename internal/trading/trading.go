// Package trading drives a single buy/sell order form: quantity bounds,
// affordability checks and post-trade reconciliation.
package trading

import (
	"context"
	"sync"

	"github.com/gamestock/gamestock-client/internal/gamestock"
	"github.com/gamestock/gamestock-client/internal/logger"
	"github.com/gamestock/gamestock-client/internal/model"
	"github.com/gamestock/gamestock-client/internal/tools"
)

type API interface {
	Buy(ctx context.Context, gameID, shares int) (*model.TradeResult, error)
	Sell(ctx context.Context, gameID, shares int) (*model.TradeResult, error)
}

type Session interface {
	ApplyBalance(balance float64)
}

type Service struct {
	api     API
	session Session
	logger  logger.Logger

	mu             sync.Mutex
	game           model.Game
	side           model.TradeSide
	quantity       int
	availableCash  float64
	currentHolding int
	executing      bool
	message        string
	notice         string
	lastTx         *model.Transaction
}

func NewService(api API, session Session, logger logger.Logger) *Service {
	return &Service{
		api:     api,
		session: session,
		logger:  logger,
		side:    model.Buy,
	}
}

// Begin arms the form for one game. Holding is the user's current share
// count for it, cash the spendable balance.
func (s *Service) Begin(game model.Game, holding int, cash float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.game = game
	s.side = model.Buy
	s.quantity = 1
	s.currentHolding = holding
	s.availableCash = cash
	s.message = ""
	s.notice = ""
	s.lastTx = nil
}

// SetSide switches between buy and sell. Switching to sell with nothing
// held is refused and leaves a notice instead.
func (s *Service) SetSide(side model.TradeSide) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if side == model.Sell && s.currentHolding == 0 {
		s.side = model.Buy
		s.notice = "You don't own any shares of this game"
		return
	}
	s.side = side
	s.notice = ""
	s.clampQuantityLocked()
}

func (s *Service) SetQuantity(quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity < 1 {
		quantity = 1
	}
	s.quantity = quantity
}

func (s *Service) IncreaseQuantity() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quantity++
}

func (s *Service) DecreaseQuantity() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.quantity > 1 {
		s.quantity--
	}
}

// SetMaxQuantity sets the quantity to the largest executable amount.
func (s *Service) SetMaxQuantity() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if max := s.maxQuantityLocked(); max > 0 {
		s.quantity = max
	}
}

func (s *Service) Quantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quantity
}

func (s *Service) Side() model.TradeSide {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.side
}

func (s *Service) TotalAmount() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return float64(s.quantity) * s.game.CurrentPrice
}

// MaxQuantity is how many shares the current side allows: as many as the
// cash covers on buy, the whole holding on sell.
func (s *Service) MaxQuantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxQuantityLocked()
}

func (s *Service) maxQuantityLocked() int {
	if s.side == model.Sell {
		return s.currentHolding
	}
	return tools.MaxAffordable(s.availableCash, s.game.CurrentPrice)
}

func (s *Service) clampQuantityLocked() {
	if max := s.maxQuantityLocked(); max > 0 && s.quantity > max {
		s.quantity = max
	}
	if s.quantity < 1 {
		s.quantity = 1
	}
}

// CanExecuteTrade reports whether the current order would be accepted.
// A buy spending exactly the available cash is allowed.
func (s *Service) CanExecuteTrade() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canExecuteLocked()
}

func (s *Service) canExecuteLocked() bool {
	if s.quantity <= 0 || s.executing {
		return false
	}
	if s.side == model.Sell {
		return s.quantity <= s.currentHolding
	}
	return float64(s.quantity)*s.game.CurrentPrice <= s.availableCash
}

// ExecuteTrade submits the order. On success local state is reconciled
// from the server's response: balance, holding and a reset quantity. On
// failure nothing is mutated beyond the message.
func (s *Service) ExecuteTrade(ctx context.Context) error {
	s.mu.Lock()
	if !s.canExecuteLocked() {
		s.mu.Unlock()
		return gamestock.ErrTradeNotAllowed
	}
	s.executing = true
	gameID := s.game.ID
	side := s.side
	quantity := s.quantity
	s.mu.Unlock()

	var result *model.TradeResult
	var err error
	if side == model.Sell {
		result, err = s.api.Sell(ctx, gameID, quantity)
	} else {
		result, err = s.api.Buy(ctx, gameID, quantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.executing = false

	if err != nil {
		s.message = gamestock.UserMessage(err)
		s.logger.Errorf("%s: can't execute %s of %d shares of game %d", err, side, quantity, gameID)
		return err
	}

	s.availableCash = result.UserBalance
	s.session.ApplyBalance(result.UserBalance)

	if result.Portfolio != nil {
		s.currentHolding = result.Portfolio.Shares
	} else if side == model.Sell {
		s.currentHolding -= quantity
	} else {
		s.currentHolding += quantity
	}
	if s.currentHolding < 0 {
		s.currentHolding = 0
	}

	s.quantity = 1
	s.message = result.Message
	s.lastTx = result.Transaction
	s.logger.Infof("executed %s of %d shares of game %d, balance %.2f", side, quantity, gameID, result.UserBalance)
	return nil
}

func (s *Service) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// LastTransaction is the transaction detail the last successful trade
// returned, if the backend included one.
func (s *Service) LastTransaction() *model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastTx
}

func (s *Service) Notice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notice
}

func (s *Service) CurrentHolding() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentHolding
}

func (s *Service) AvailableCash() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.availableCash
}
