package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/salespilots/platform/internal/metrics"
	"github.com/salespilots/platform/internal/models"
	"github.com/salespilots/platform/internal/storage"
)

var settingsColumns = colmap{
	{Field: "id", Column: "id"},
	{Field: "createdAt", Column: "created_at"},
	{Field: "updatedAt", Column: "updated_at"},
	{Field: "userId", Column: "user_id"},
	{Field: "autoReply", Column: "auto_reply"},
	{Field: "replyLanguage", Column: "reply_language"},
	{Field: "upiId", Column: "upi_id"},
	{Field: "notifyEmail", Column: "notify_email"},
	{Field: "timezone", Column: "timezone"},
}

var onboardingColumns = colmap{
	{Field: "id", Column: "id"},
	{Field: "createdAt", Column: "created_at"},
	{Field: "updatedAt", Column: "updated_at"},
	{Field: "userId", Column: "user_id"},
	{Field: "profileDone", Column: "profile_done"},
	{Field: "catalogDone", Column: "catalog_done"},
	{Field: "instagramDone", Column: "instagram_done"},
	{Field: "paymentsDone", Column: "payments_done"},
	{Field: "completedAt", Column: "completed_at"},
}

// Keyed is the singleton-per-user repository over one relational table
// with a unique user_id index. Upsert is a single ON CONFLICT statement,
// so concurrent upserts for one user settle on the last writer without a
// read-modify-write window.
type Keyed[T models.Record] struct {
	t *table[T]
}

func newSettings(db *sql.DB, mc *metrics.Collector, now func() time.Time) *Keyed[*models.Settings] {
	return &Keyed[*models.Settings]{t: &table[*models.Settings]{
		db:    db,
		name:  "settings",
		cols:  settingsColumns,
		owner: "user_id",
		mc:    mc,
		now:   now,
		values: func(s *models.Settings) ([]any, error) {
			return []any{s.ID, s.CreatedAt, s.UpdatedAt, s.UserID, s.AutoReply,
				s.ReplyLanguage, s.UPIID, s.NotifyEmail, s.Timezone}, nil
		},
		scan: func(sc scanner) (*models.Settings, error) {
			s := &models.Settings{}
			err := sc.Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt, &s.UserID, &s.AutoReply,
				&s.ReplyLanguage, &s.UPIID, &s.NotifyEmail, &s.Timezone)
			return s, err
		},
	}}
}

func newOnboarding(db *sql.DB, mc *metrics.Collector, now func() time.Time) *Keyed[*models.Onboarding] {
	return &Keyed[*models.Onboarding]{t: &table[*models.Onboarding]{
		db:    db,
		name:  "onboarding",
		cols:  onboardingColumns,
		owner: "user_id",
		mc:    mc,
		now:   now,
		values: func(o *models.Onboarding) ([]any, error) {
			return []any{o.ID, o.CreatedAt, o.UpdatedAt, o.UserID, o.ProfileDone,
				o.CatalogDone, o.InstagramDone, o.PaymentsDone, o.CompletedAt}, nil
		},
		scan: func(sc scanner) (*models.Onboarding, error) {
			o := &models.Onboarding{}
			err := sc.Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt, &o.UserID, &o.ProfileDone,
				&o.CatalogDone, &o.InstagramDone, &o.PaymentsDone, &o.CompletedAt)
			return o, err
		},
	}}
}

func (r *Keyed[T]) GetByUser(ctx context.Context, userID string) (T, error) {
	return r.t.getWhere(ctx, sq.Eq{r.t.owner: userID})
}

// Upsert inserts the record, or on a user_id conflict rewrites every column
// except id and created_at, so the first writer's identity survives.
func (r *Keyed[T]) Upsert(ctx context.Context, rec T) (err error) {
	start := time.Now()
	defer func() { r.t.record("upsert", start, err) }()

	now := r.t.now()
	if rec.RecordID() == "" {
		rec.SetRecordID(storage.EpochID(now))
		rec.TouchCreated(now)
	} else {
		rec.TouchUpdated(now)
	}

	vals, err := r.t.values(rec)
	if err != nil {
		return err
	}

	assigns := make([]string, 0, len(r.t.cols))
	for _, p := range r.t.cols {
		if p.Column == "id" || p.Column == "created_at" {
			continue
		}
		assigns = append(assigns, fmt.Sprintf("%s = EXCLUDED.%s", p.Column, p.Column))
	}
	suffix := fmt.Sprintf("ON CONFLICT (%s) DO UPDATE SET %s", r.t.owner, strings.Join(assigns, ", "))

	query, args, err := psql.Insert(r.t.name).
		Columns(r.t.cols.columns()...).
		Values(vals...).
		Suffix(suffix).
		ToSql()
	if err != nil {
		return err
	}
	if _, err = r.t.db.ExecContext(ctx, query, args...); err != nil {
		return mapErr(err)
	}
	return nil
}
