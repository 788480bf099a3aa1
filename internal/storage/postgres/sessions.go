package postgres

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/salespilots/platform/internal/metrics"
	"github.com/salespilots/platform/internal/models"
)

var sessionColumns = colmap{
	{Field: "id", Column: "id"},
	{Field: "createdAt", Column: "created_at"},
	{Field: "updatedAt", Column: "updated_at"},
	{Field: "userId", Column: "user_id"},
	{Field: "token", Column: "token"},
	{Field: "expiresAt", Column: "expires_at"},
}

type Sessions struct {
	t *table[*models.Session]
}

func newSessions(db *sql.DB, mc *metrics.Collector, now func() time.Time) *Sessions {
	return &Sessions{t: &table[*models.Session]{
		db:    db,
		name:  "sessions",
		cols:  sessionColumns,
		owner: "user_id",
		mc:    mc,
		now:   now,
		values: func(s *models.Session) ([]any, error) {
			return []any{s.ID, s.CreatedAt, s.UpdatedAt, s.UserID, s.Token, s.ExpiresAt}, nil
		},
		scan: func(sc scanner) (*models.Session, error) {
			s := &models.Session{}
			err := sc.Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt, &s.UserID, &s.Token, &s.ExpiresAt)
			return s, err
		},
	}}
}

func (r *Sessions) Create(ctx context.Context, s *models.Session) error {
	return r.t.Create(ctx, s)
}

func (r *Sessions) GetByToken(ctx context.Context, token string) (*models.Session, error) {
	return r.t.getWhere(ctx, sq.Eq{"token": token})
}

func (r *Sessions) DeleteByToken(ctx context.Context, token string) (bool, error) {
	n, err := r.t.deleteWhere(ctx, sq.Eq{"token": token})
	return n > 0, err
}

func (r *Sessions) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	return r.t.deleteWhere(ctx, sq.LtOrEq{"expires_at": now})
}
