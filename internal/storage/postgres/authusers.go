package postgres

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/salespilots/platform/internal/metrics"
	"github.com/salespilots/platform/internal/models"
)

// authUserColumns is the field map for auth_users. Extend it, the values
// function and the scan function together when the struct changes.
var authUserColumns = colmap{
	{Field: "id", Column: "id"},
	{Field: "createdAt", Column: "created_at"},
	{Field: "updatedAt", Column: "updated_at"},
	{Field: "email", Column: "email"},
	{Field: "passwordHash", Column: "password_hash"},
	{Field: "role", Column: "role"},
	{Field: "emailVerified", Column: "email_verified"},
}

type AuthUsers struct {
	t *table[*models.AuthUser]
}

func newAuthUsers(db *sql.DB, mc *metrics.Collector, now func() time.Time) *AuthUsers {
	return &AuthUsers{t: &table[*models.AuthUser]{
		db:   db,
		name: "auth_users",
		cols: authUserColumns,
		mc:   mc,
		now:  now,
		values: func(u *models.AuthUser) ([]any, error) {
			return []any{u.ID, u.CreatedAt, u.UpdatedAt, u.Email, u.PasswordHash, u.Role, u.EmailVerified}, nil
		},
		scan: func(s scanner) (*models.AuthUser, error) {
			u := &models.AuthUser{}
			err := s.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt, &u.Email, &u.PasswordHash, &u.Role, &u.EmailVerified)
			return u, err
		},
	}}
}

// Create inserts the user. The unique index on lower(email) enforces
// case-insensitive uniqueness and surfaces as ErrAlreadyExists.
func (r *AuthUsers) Create(ctx context.Context, u *models.AuthUser) error {
	return r.t.Create(ctx, u)
}

func (r *AuthUsers) GetByID(ctx context.Context, id string) (*models.AuthUser, error) {
	return r.t.Get(ctx, id)
}

func (r *AuthUsers) GetByEmail(ctx context.Context, email string) (*models.AuthUser, error) {
	return r.t.getWhere(ctx, sq.Expr("lower(email) = lower(?)", email))
}

func (r *AuthUsers) Update(ctx context.Context, id string, patch func(*models.AuthUser)) (*models.AuthUser, error) {
	return r.t.Update(ctx, id, patch)
}

func (r *AuthUsers) Delete(ctx context.Context, id string) (bool, error) {
	return r.t.Delete(ctx, id)
}
