// Package portfolio tracks the user's holdings and derives day and
// all-time gain figures from them.
package portfolio

import (
	"context"
	"sync"
	"time"

	"github.com/gamestock/gamestock-client/internal/gamestock"
	"github.com/gamestock/gamestock-client/internal/logger"
	"github.com/gamestock/gamestock-client/internal/model"
)

type API interface {
	Portfolio(ctx context.Context) (model.Portfolio, error)
	Transactions(ctx context.Context, page, perPage int) (model.TransactionsPage, error)
}

type History interface {
	YesterdayPrice(gameID int) (float64, bool)
}

type Service struct {
	api     API
	history History

	samplePortfolio    model.Portfolio
	sampleTransactions []model.Transaction
	noSampleFallback   bool

	logger logger.Logger

	mu           sync.Mutex
	portfolio    model.Portfolio
	transactions []model.Transaction
	loaded       bool
	loading      bool
	lastUpdate   time.Time
	errMessage   string
	gen          uint64
}

func NewService(
	api API,
	history History,
	samplePortfolio model.Portfolio,
	sampleTransactions []model.Transaction,
	noSampleFallback bool,
	logger logger.Logger,
) *Service {
	return &Service{
		api:                api,
		history:            history,
		samplePortfolio:    samplePortfolio,
		sampleTransactions: sampleTransactions,
		noSampleFallback:   noSampleFallback,
		logger:             logger,
	}
}

// Load refreshes holdings from the server. A no-op while a load is in
// flight; a response from a superseded load is discarded.
func (s *Service) Load(ctx context.Context) {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return
	}
	s.loading = true
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	p, err := s.api.Portfolio(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		s.logger.Debugf("discarding stale portfolio response gen=%d", gen)
		return
	}
	s.loading = false

	if err != nil {
		s.errMessage = gamestock.UserMessage(err)
		s.logger.Errorf("%s: can't load portfolio", err)

		if !s.loaded && !s.noSampleFallback {
			s.portfolio = s.samplePortfolio
			s.loaded = true
			s.logger.Warnf("using sample portfolio after load failure")
		}
		return
	}

	s.portfolio = p
	s.loaded = true
	s.lastUpdate = time.Now()
	s.errMessage = ""
	s.logger.Infof("loaded portfolio: %d holdings, total %.2f", len(p.Holdings), p.TotalValue)
}

// LoadTransactions fetches one page of trade history.
func (s *Service) LoadTransactions(ctx context.Context, page, perPage int) {
	txPage, err := s.api.Transactions(ctx, page, perPage)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.errMessage = gamestock.UserMessage(err)
		s.logger.Errorf("%s: can't load transactions", err)

		if len(s.transactions) == 0 && !s.noSampleFallback {
			s.transactions = s.sampleTransactions
			s.logger.Warnf("using sample transactions after load failure")
		}
		return
	}

	s.transactions = txPage.Transactions
	s.errMessage = ""
}

func (s *Service) Portfolio() model.Portfolio {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.portfolio
}

func (s *Service) Transactions() []model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

func (s *Service) Holding(gameID int) (model.Holding, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, h := range s.portfolio.Holdings {
		if h.GameID == gameID {
			return h, true
		}
	}
	return model.Holding{}, false
}

// TodayGainLoss sums (current price minus yesterday's price) times quantity
// over all holdings. A holding with no usable prior price contributes zero.
func (s *Service) TodayGainLoss() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, h := range s.portfolio.Holdings {
		yesterday, ok := s.history.YesterdayPrice(h.GameID)
		if !ok || yesterday == 0 {
			continue
		}
		total += (h.CurrentPrice - yesterday) * float64(h.Quantity)
	}
	return total
}

// TotalGainLossPercentage is the all-time gain relative to cost basis,
// where cost basis is total value minus total gain. Zero when the basis
// is not positive.
func (s *Service) TotalGainLossPercentage() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	basis := s.portfolio.TotalValue - s.portfolio.TotalGainLoss
	if basis <= 0 {
		return 0
	}
	return s.portfolio.TotalGainLoss / basis * 100
}

func (s *Service) LastUpdate() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUpdate
}

func (s *Service) ErrorMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMessage
}
