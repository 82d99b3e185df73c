// Package session tracks the authenticated user and their balance.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/gamestock/gamestock-client/internal/config"
	"github.com/gamestock/gamestock-client/internal/logger"
	"github.com/gamestock/gamestock-client/internal/model"
)

type API interface {
	Login(ctx context.Context, creds config.Credentials) (*model.LoginResponse, error)
	Register(ctx context.Context, username, email, password string) (*model.User, error)
}

type Service struct {
	api   API
	creds config.Credentials

	logger logger.Logger

	mu   sync.RWMutex
	user *model.User
}

func NewService(api API, creds config.Credentials, logger logger.Logger) *Service {
	return &Service{
		api:    api,
		creds:  creds,
		logger: logger,
	}
}

// AutoLogin signs in with the configured credentials. The session cookie
// lands in the API client's jar; this service only records who we are.
func (s *Service) AutoLogin(ctx context.Context) error {
	resp, err := s.api.Login(ctx, s.creds)
	if err != nil {
		return fmt.Errorf("%w: can't login as %s", err, s.creds.Username)
	}

	user := resp.ToUser()

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()

	s.logger.Infof("logged in as %s balance=%.2f", user.Username, user.Balance)
	return nil
}

func (s *Service) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	user, err := s.api.Register(ctx, username, email, password)
	if err != nil {
		return nil, fmt.Errorf("%w: can't register %s", err, username)
	}
	return user, nil
}

func (s *Service) CurrentUser() (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return model.User{}, false
	}
	return *s.user, true
}

func (s *Service) Balance() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return 0
	}
	return s.user.Balance
}

// ApplyBalance overwrites the local balance with the value a trade response
// reported. The response is trusted as ground truth.
func (s *Service) ApplyBalance(balance float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user != nil {
		s.user.Balance = balance
	}
}
