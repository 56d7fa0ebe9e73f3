package service

import (
	"context"
	"errors"
	"time"

	"taxifleet/pkg/logger"
	"taxifleet/pkg/metrics"
	"taxifleet/pkg/models"
	"taxifleet/pkg/password"
	"taxifleet/pkg/session"
	"taxifleet/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactive           = errors.New("account is inactive")
	ErrUnauthenticated    = errors.New("unauthenticated")
)

// Login is the result of a successful sign-in.
type Login struct {
	Driver    *models.Driver
	SessionID string
	Token     string
	ExpiresAt time.Time
}

type AuthService interface {
	Login(ctx context.Context, username, rawPassword string) (*Login, error)
	Authenticate(ctx context.Context, token string) (*models.Driver, *models.Session, error)
	Visit(ctx context.Context, sessionID string) (int, error)
	Logout(ctx context.Context, token string) error
	TTL() time.Duration
}

type authService struct {
	drivers  storage.IDriverStorage
	sessions storage.ISessionStorage
	tokens   *session.Manager
	log      logger.ILogger
	metrics  *metrics.Metrics
}

func NewAuthService(stg storage.IStorage, sessions storage.ISessionStorage, tokens *session.Manager, log logger.ILogger, m *metrics.Metrics) AuthService {
	return &authService{
		drivers:  stg.Driver(),
		sessions: sessions,
		tokens:   tokens,
		log:      log,
		metrics:  m,
	}
}

func (s *authService) TTL() time.Duration {
	return s.tokens.TTL()
}

func (s *authService) Login(ctx context.Context, username, rawPassword string) (*Login, error) {
	d, err := s.drivers.GetByUsername(ctx, username)
	if errors.Is(err, storage.ErrNotFound) {
		// Unknown usernames still pay for one hash.
		_, _ = password.Hash(rawPassword)
		s.metrics.IncrementLogin("failure")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !password.Check(d.Password, rawPassword) {
		s.metrics.IncrementLogin("failure")
		return nil, ErrInvalidCredentials
	}
	if !d.IsActive {
		s.metrics.IncrementLogin("inactive")
		return nil, ErrInactive
	}

	sid, token, expires, err := s.tokens.Issue(d.ID)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Create(ctx, &models.Session{
		ID:        sid,
		DriverID:  d.ID,
		CreatedAt: time.Now(),
		ExpiresAt: expires,
	}); err != nil {
		s.log.Error("failed to store session", logger.Error(err))
		return nil, err
	}
	if err := s.drivers.SetLastLogin(ctx, d.ID); err != nil {
		s.log.Warning("failed to set last login", logger.Int64("driver_id", d.ID), logger.Error(err))
	}

	s.metrics.IncrementLogin("success")
	s.log.Info("driver logged in", logger.String("username", d.Username))
	return &Login{Driver: d, SessionID: sid, Token: token, ExpiresAt: expires}, nil
}

// Authenticate resolves a cookie token to its active driver and session.
func (s *authService) Authenticate(ctx context.Context, token string) (*models.Driver, *models.Session, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, nil, ErrUnauthenticated
	}
	driverID, _ := claims.DriverID()

	sess, err := s.sessions.Get(ctx, claims.SessionID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, nil, err
	}
	if sess.DriverID != driverID {
		return nil, nil, ErrUnauthenticated
	}

	d, err := s.drivers.GetByID(ctx, driverID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, nil, err
	}
	if !d.IsActive {
		return nil, nil, ErrUnauthenticated
	}
	return d, sess, nil
}

// Visit increments and returns the session's visit counter.
func (s *authService) Visit(ctx context.Context, sessionID string) (int, error) {
	sess, err := s.sessions.Touch(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return sess.Visits, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil
	}
	return s.sessions.Delete(ctx, claims.SessionID)
}
