package postgres

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/salespilots/platform/internal/metrics"
	"github.com/salespilots/platform/internal/models"
)

var profileColumns = colmap{
	{Field: "id", Column: "id"},
	{Field: "createdAt", Column: "created_at"},
	{Field: "updatedAt", Column: "updated_at"},
	{Field: "authUserId", Column: "auth_user_id"},
	{Field: "businessName", Column: "business_name"},
	{Field: "instagramHandle", Column: "instagram_handle"},
	{Field: "plan", Column: "plan"},
	{Field: "instagramConnected", Column: "instagram_connected"},
	{Field: "whatsappConnected", Column: "whatsapp_connected"},
	{Field: "currency", Column: "currency"},
}

type Profiles struct {
	t *table[*models.Profile]
}

func newProfiles(db *sql.DB, mc *metrics.Collector, now func() time.Time) *Profiles {
	return &Profiles{t: &table[*models.Profile]{
		db:    db,
		name:  "profiles",
		cols:  profileColumns,
		owner: "auth_user_id",
		mc:    mc,
		now:   now,
		values: func(p *models.Profile) ([]any, error) {
			return []any{p.ID, p.CreatedAt, p.UpdatedAt, p.AuthUserID, p.BusinessName,
				p.InstagramHandle, p.Plan, p.InstagramConnected, p.WhatsAppConnected, p.Currency}, nil
		},
		scan: func(sc scanner) (*models.Profile, error) {
			p := &models.Profile{}
			err := sc.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt, &p.AuthUserID, &p.BusinessName,
				&p.InstagramHandle, &p.Plan, &p.InstagramConnected, &p.WhatsAppConnected, &p.Currency)
			return p, err
		},
	}}
}

// Create relies on the unique index on auth_user_id to keep the profile
// relation one to one per account.
func (r *Profiles) Create(ctx context.Context, p *models.Profile) error {
	return r.t.Create(ctx, p)
}

func (r *Profiles) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	return r.t.Get(ctx, id)
}

func (r *Profiles) GetByAuthUser(ctx context.Context, authUserID string) (*models.Profile, error) {
	return r.t.getWhere(ctx, sq.Eq{"auth_user_id": authUserID})
}

func (r *Profiles) Update(ctx context.Context, id string, patch func(*models.Profile)) (*models.Profile, error) {
	return r.t.Update(ctx, id, patch)
}

func (r *Profiles) Delete(ctx context.Context, id string) (bool, error) {
	return r.t.Delete(ctx, id)
}
