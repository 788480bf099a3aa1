// Package sessions issues and resolves bearer credentials. A deployment
// runs exactly one of two mechanisms, decided at startup: persisted opaque
// tokens looked up in the session store, or stateless HS256 tokens signed
// with the configured secret. They are never mixed, so a token from one
// mechanism is invalid under the other.
package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/salespilots/platform/internal/auth"
	"github.com/salespilots/platform/internal/common"
	"github.com/salespilots/platform/internal/logging"
	"github.com/salespilots/platform/internal/models"
	"github.com/salespilots/platform/internal/storage"
)

// tokenBytes of entropy per opaque token; hex doubles the length.
const tokenBytes = 32

type Service struct {
	repo   storage.SessionRepository
	secret []byte
	ttl    time.Duration
	log    logging.Logger
	now    func() time.Time
}

// New builds the service. A non-empty secret selects stateless signed
// tokens and repo is never written to; otherwise tokens are opaque and
// persisted in repo.
func New(repo storage.SessionRepository, secret string, ttl time.Duration, log logging.Logger) *Service {
	return &Service{
		repo:   repo,
		secret: []byte(secret),
		ttl:    ttl,
		log:    log,
		now:    time.Now,
	}
}

func (s *Service) stateless() bool { return len(s.secret) > 0 }

// Issue creates a credential for userID and returns the bearer token.
func (s *Service) Issue(ctx context.Context, userID string) (string, error) {
	now := s.now()

	if s.stateless() {
		return auth.SignToken(userID, s.secret, s.ttl, now)
	}

	token, err := common.MakeRandHexString(tokenBytes)
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	sess := &models.Session{
		UserID:    userID,
		Token:     token,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.repo.Create(ctx, sess); err != nil {
		return "", fmt.Errorf("persist session: %w", err)
	}
	return token, nil
}

// Resolve returns the user ID behind token. Expired credentials return
// common.ErrTokenExpired; unknown or malformed ones common.ErrInvalidToken.
func (s *Service) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", common.ErrInvalidToken
	}

	if s.stateless() {
		return auth.ParseToken(token, s.secret)
	}

	sess, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrInvalidToken
		}
		return "", err
	}
	if sess.Expired(s.now()) {
		return "", common.ErrTokenExpired
	}
	return sess.UserID, nil
}

// Revoke invalidates a persisted token. Stateless tokens cannot be revoked
// before expiry; callers get an explicit error instead of a silent no-op.
func (s *Service) Revoke(ctx context.Context, token string) error {
	if s.stateless() {
		return fmt.Errorf("signed tokens cannot be revoked: %w", common.ErrValidation)
	}
	if _, err := s.repo.DeleteByToken(ctx, token); err != nil {
		return err
	}
	return nil
}

// PurgeExpired removes persisted sessions past their expiry. Safe to call
// periodically; a no-op under stateless tokens.
func (s *Service) PurgeExpired(ctx context.Context) (int, error) {
	if s.stateless() {
		return 0, nil
	}
	n, err := s.repo.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.Info(ctx, "purged expired sessions", "count", n)
	}
	return n, nil
}
