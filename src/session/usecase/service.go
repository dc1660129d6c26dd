package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MMN3003/tradedesk/src/Infrastructure/tradeapi"
	"github.com/MMN3003/tradedesk/src/logger"
	"github.com/MMN3003/tradedesk/src/session/domain"
	"github.com/golang-jwt/jwt/v5"
)

var (
	_ domain.SessionUsecase = (*Service)(nil)
	_ tradeapi.TokenSource  = (*Service)(nil)
)

var ErrNoAPI = errors.New("session: auth api not set")

// Service holds the operator session: the persisted token and the user it resolves to.
type Service struct {
	tokens domain.TokenRepository
	api    domain.AuthAPI
	logger *logger.Logger
	skew   time.Duration
	nowFn  func() time.Time
	parser *jwt.Parser

	mu       sync.RWMutex
	user     *tradeapi.User
	checked  bool
	onLogout []func()
}

func NewService(tokens domain.TokenRepository, logg *logger.Logger, skew time.Duration) *Service {
	return &Service{
		tokens: tokens,
		logger: logg,
		skew:   skew,
		nowFn:  time.Now,
		parser: jwt.NewParser(jwt.WithPaddingAllowed()),
	}
}

// SetAdapters wires the backend once the API client exists; the client reads
// its bearer token from this service.
func (s *Service) SetAdapters(api domain.AuthAPI) {
	s.api = api
}

// SetClock replaces the time source. Tests only.
func (s *Service) SetClock(now func() time.Time) {
	s.nowFn = now
}

// OnLogout registers a hook run after the session is cleared.
func (s *Service) OnLogout(fn func()) {
	s.mu.Lock()
	s.onLogout = append(s.onLogout, fn)
	s.mu.Unlock()
}

func (s *Service) SetToken(ctx context.Context, token string) error {
	return s.tokens.SaveToken(ctx, strings.TrimSpace(token))
}

func (s *Service) GetToken(ctx context.Context) (string, error) {
	return s.tokens.GetToken(ctx)
}

// Token implements tradeapi.TokenSource.
func (s *Service) Token(ctx context.Context) (string, error) {
	return s.tokens.GetToken(ctx)
}

// VerifyToken reports whether the stored token is a three part JWT whose exp
// claim, extended by skew, is still in the future. The signature is not checked.
func (s *Service) VerifyToken(ctx context.Context, skew time.Duration) bool {
	token, err := s.tokens.GetToken(ctx)
	if err != nil {
		return false
	}
	return verifyExpiry(s.parser, token, s.nowFn(), skew)
}

func verifyExpiry(p *jwt.Parser, token string, now time.Time, skew time.Duration) bool {
	token = strings.TrimSpace(token)
	if token == "" {
		return false
	}
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return false
	}
	payload, err := p.DecodeSegment(parts[1])
	if err != nil {
		return false
	}
	claims := jwt.MapClaims{}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil || exp.Unix() == 0 {
		return false
	}
	return now.Unix() < exp.Add(skew).Unix()
}

// Login exchanges credentials for a token, persists it and resolves the user.
func (s *Service) Login(ctx context.Context, email, password string) (*tradeapi.User, error) {
	if s.api == nil {
		return nil, ErrNoAPI
	}
	token, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	user, err := s.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	s.logger.Infof("operator %s logged in", user.Email)
	return user, nil
}

// Authenticate persists token and resolves the user behind it. On failure the
// user is cleared and false is returned; the token stays stored.
func (s *Service) Authenticate(ctx context.Context, token string) bool {
	if _, err := s.authenticate(ctx, token); err != nil {
		s.logger.Warnf("authenticate: %v", err)
		return false
	}
	return true
}

func (s *Service) authenticate(ctx context.Context, token string) (*tradeapi.User, error) {
	if s.api == nil {
		return nil, ErrNoAPI
	}
	if err := s.SetToken(ctx, token); err != nil {
		return nil, fmt.Errorf("persist token: %w", err)
	}
	user, err := s.api.Me(ctx)
	if err == nil && user == nil {
		err = tradeapi.Rejected("Failed to resolve user")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.user = nil
		return nil, err
	}
	s.user = user
	return user, nil
}

// Logout clears the token and the user, then runs the logout hooks.
func (s *Service) Logout(ctx context.Context) error {
	err := s.tokens.SaveToken(ctx, "")

	s.mu.Lock()
	s.user = nil
	hooks := append([]func(){}, s.onLogout...)
	s.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
	return err
}

// Init restores a persisted session at boot. The session counts as checked
// afterwards whether or not a user was resolved.
func (s *Service) Init(ctx context.Context) {
	token, err := s.tokens.GetToken(ctx)
	if err != nil {
		s.logger.Errorf("load session token: %v", err)
	}
	if token != "" {
		if !s.VerifyToken(ctx, s.skew) {
			s.logger.Warnf("stored session token looks expired, asking the backend anyway")
		}
		s.Authenticate(ctx, token)
	}

	s.mu.Lock()
	s.checked = true
	s.mu.Unlock()
}

func (s *Service) User() *tradeapi.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Service) IsChecked() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.checked
}
