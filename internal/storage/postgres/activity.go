package postgres

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/salespilots/platform/internal/metrics"
	"github.com/salespilots/platform/internal/models"
)

var activityColumns = colmap{
	{Field: "id", Column: "id"},
	{Field: "createdAt", Column: "created_at"},
	{Field: "updatedAt", Column: "updated_at"},
	{Field: "userId", Column: "user_id"},
	{Field: "kind", Column: "kind"},
	{Field: "detail", Column: "detail"},
}

// Activities is the append-only log. Rows are never updated or deleted
// through this repository.
type Activities struct {
	t *table[*models.Activity]
}

func newActivities(db *sql.DB, mc *metrics.Collector, now func() time.Time) *Activities {
	return &Activities{t: &table[*models.Activity]{
		db:    db,
		name:  "activities",
		cols:  activityColumns,
		owner: "user_id",
		mc:    mc,
		now:   now,
		values: func(a *models.Activity) ([]any, error) {
			return []any{a.ID, a.CreatedAt, a.UpdatedAt, a.UserID, a.Kind, a.Detail}, nil
		},
		scan: func(sc scanner) (*models.Activity, error) {
			a := &models.Activity{}
			err := sc.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt, &a.UserID, &a.Kind, &a.Detail)
			return a, err
		},
	}}
}

func (r *Activities) Append(ctx context.Context, a *models.Activity) error {
	return r.t.Create(ctx, a)
}

func (r *Activities) ListRecent(ctx context.Context, userID string, limit int) (out []*models.Activity, err error) {
	start := time.Now()
	defer func() { r.t.record("list", start, err) }()

	q := psql.Select(r.t.cols.columns()...).From(r.t.name).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.t.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	for rows.Next() {
		a, err := r.t.scan(rows)
		if err != nil {
			return nil, mapErr(err)
		}
		out = append(out, a)
	}
	if err = rows.Err(); err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}
