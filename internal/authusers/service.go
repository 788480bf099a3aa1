// Package authusers manages login identities: registration, credential
// checks and the session handshake on top of them.
package authusers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/salespilots/platform/internal/auth"
	"github.com/salespilots/platform/internal/common"
	"github.com/salespilots/platform/internal/logging"
	"github.com/salespilots/platform/internal/models"
	"github.com/salespilots/platform/internal/sessions"
	"github.com/salespilots/platform/internal/storage"
)

const minPasswordLen = 8

type Service struct {
	repo     storage.AuthUserRepository
	sessions *sessions.Service
	log      logging.Logger
}

func New(repo storage.AuthUserRepository, sess *sessions.Service, log logging.Logger) *Service {
	return &Service{repo: repo, sessions: sess, log: log}
}

// NormalizeEmail lowercases and trims an address so lookups and uniqueness
// agree across backends.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new identity. The email is normalized before storing;
// a taken email surfaces as common.ErrAlreadyExists.
func (s *Service) Register(ctx context.Context, email, password string, role models.Role) (*models.AuthUser, error) {
	email = NormalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email: %w", common.ErrValidation)
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("password must be at least %d characters: %w", minPasswordLen, common.ErrValidation)
	}
	if role == "" {
		role = models.RoleUser
	}

	u := &models.AuthUser{
		Email:        email,
		PasswordHash: auth.HashPassword(password),
		Role:         role,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create auth user: %w", err)
	}

	s.log.Info(ctx, "registered auth user", "userID", u.ID, "role", string(u.Role))
	return u, nil
}

// Login checks the credentials and issues a session token. Unknown emails
// and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*models.AuthUser, string, error) {
	u, err := s.repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, "", common.ErrUnauthorized
		}
		return nil, "", err
	}
	if !auth.VerifyPassword(password, u.PasswordHash) {
		return nil, "", common.ErrUnauthorized
	}

	token, err := s.sessions.Issue(ctx, u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Authenticate resolves a bearer token to its user.
func (s *Service) Authenticate(ctx context.Context, token string) (*models.AuthUser, error) {
	userID, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// The account vanished after the token was issued.
			return nil, common.ErrUnauthorized
		}
		return nil, err
	}
	return u, nil
}

// Logout revokes the token where the mechanism supports it.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, token)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*models.AuthUser, error) {
	return s.repo.GetByEmail(ctx, NormalizeEmail(email))
}

// ChangePassword verifies the current password before replacing it.
func (s *Service) ChangePassword(ctx context.Context, userID, current, next string) error {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.VerifyPassword(current, u.PasswordHash) {
		return common.ErrUnauthorized
	}
	if len(next) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters: %w", minPasswordLen, common.ErrValidation)
	}

	hash := auth.HashPassword(next)
	_, err = s.repo.Update(ctx, userID, func(u *models.AuthUser) {
		u.PasswordHash = hash
	})
	if err != nil {
		return err
	}
	s.log.Info(ctx, "password changed", "userID", userID)
	return nil
}

// VerifyEmail marks the address as confirmed.
func (s *Service) VerifyEmail(ctx context.Context, userID string) error {
	_, err := s.repo.Update(ctx, userID, func(u *models.AuthUser) {
		u.EmailVerified = true
	})
	return err
}
