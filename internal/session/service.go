package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"tillpoint/internal/logger"
	"tillpoint/internal/platform"
)

var ErrNotAuthenticated = errors.New("no cashier is signed in")

const tokenTTL = 12 * time.Hour

// Service owns the active cashier session: who is signed in at this
// terminal and the platform bearer token their sign-in produced.
type Service interface {
	Login(ctx context.Context, username, password string) (string, *platform.User, error)
	Current() (*platform.User, error)
	Logout()
}

type service struct {
	api    platform.Client
	secret string

	mu    sync.RWMutex
	user  *platform.User
	token string
}

func NewService(api platform.Client, secret string) Service {
	return &service{api: api, secret: secret}
}

// Login signs the cashier in against the platform and returns a terminal
// UI token for subsequent requests.
func (s *service) Login(ctx context.Context, username, password string) (string, *platform.User, error) {
	log := logger.FromCtx(ctx)

	res, err := s.api.Login(ctx, username, password)
	if err != nil {
		log.Warn("cashier sign-in rejected", zap.String("username", username), zap.Error(err))
		return "", nil, err
	}

	s.mu.Lock()
	s.user = res.User
	s.token = res.Token
	s.mu.Unlock()

	s.api.SetSessionToken(res.Token)

	uiToken, err := GenerateToken(s.secret, res.User.ID, res.User.Username, string(res.User.Role), tokenTTL)
	if err != nil {
		return "", nil, err
	}

	log.Info("cashier signed in",
		zap.String("user_id", res.User.ID),
		zap.String("role", string(res.User.Role)),
	)
	return uiToken, res.User, nil
}

func (s *service) Current() (*platform.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return nil, ErrNotAuthenticated
	}
	return s.user, nil
}

func (s *service) Logout() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	s.api.SetSessionToken("")
}
