package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"booking-platform/internal/cache"
	"booking-platform/internal/config"
	"booking-platform/internal/domain"
	"booking-platform/internal/repository"
	"booking-platform/pkg/logger"
)

type sessionService struct {
	sessions repository.SessionRepository
	users    repository.UserRepository
	cache    cache.Cache
	cfg      *config.Config
	logger   *logger.Logger
}

// NewSessionService creates a session service with dependencies injected
func NewSessionService(
	sessions repository.SessionRepository,
	users repository.UserRepository,
	c cache.Cache,
	cfg *config.Config,
	logger *logger.Logger,
) SessionService {
	return &sessionService{
		sessions: sessions,
		users:    users,
		cache:    c,
		cfg:      cfg,
		logger:   logger,
	}
}

// Create issues a session for an existing user and warms the cache with it
func (s *sessionService) Create(ctx context.Context, userID string) (*domain.Session, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user")
	}

	session := &domain.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		Role:      user.Role,
		ExpiresAt: time.Now().Add(s.cfg.SessionLifetime),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		s.logger.Errorw("Failed to create session", "user_id", userID, "error", err)
		return nil, err
	}

	s.cache.Set(ctx, cache.UserSessionKey(session.Token), session, s.cacheTTL(session))

	s.logger.Infow("Session created", "user_id", userID, "role", user.Role)
	return session, nil
}

func (s *sessionService) Resolve(ctx context.Context, token string) (*domain.Session, error) {
	key := cache.UserSessionKey(token)

	session, err := cache.WithCache(ctx, s.cache, key, cache.TTLSession, func(ctx context.Context) (*domain.Session, error) {
		session, err := s.sessions.FindByToken(ctx, token)
		if err != nil {
			return nil, notFound(err, "session")
		}
		return session, nil
	})
	if err != nil {
		return nil, err
	}

	if session.IsExpired() {
		s.cache.Delete(ctx, key)
		if err := s.sessions.Delete(ctx, token); err != nil && !errors.Is(err, domain.ErrNotFound) {
			s.logger.Warnw("Failed to delete expired session", "error", err)
		}
		return nil, domain.ErrSessionExpired
	}
	return session, nil
}

// Revoke drops the cached session before touching the store, so a stale
// entry is evicted even when the row is already gone
func (s *sessionService) Revoke(ctx context.Context, token string) error {
	s.cache.Delete(ctx, cache.UserSessionKey(token))
	if err := s.sessions.Delete(ctx, token); err != nil {
		return notFound(err, "session")
	}
	return nil
}

func (s *sessionService) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.sessions.DeleteExpired(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Infow("Purged expired sessions", "count", n)
	}
	return n, nil
}

// cacheTTL never lets a cached session outlive the session itself
func (s *sessionService) cacheTTL(session *domain.Session) time.Duration {
	ttl := cache.TTLSession
	if remaining := time.Until(session.ExpiresAt); remaining < ttl {
		ttl = remaining
	}
	if ttl < time.Second {
		ttl = time.Second
	}
	return ttl
}
