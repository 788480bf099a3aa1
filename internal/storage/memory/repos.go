package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/salespilots/platform/internal/models"
)

// AuthUsers enforces case-insensitive email uniqueness.
type AuthUsers struct {
	col *Collection[*models.AuthUser]
}

func (r *AuthUsers) Create(ctx context.Context, u *models.AuthUser) error {
	return r.col.CreateUnique(ctx, u, func(existing *models.AuthUser) bool {
		return strings.EqualFold(existing.Email, u.Email)
	})
}

func (r *AuthUsers) GetByID(ctx context.Context, id string) (*models.AuthUser, error) {
	return r.col.Get(ctx, id)
}

func (r *AuthUsers) GetByEmail(ctx context.Context, email string) (*models.AuthUser, error) {
	return r.col.FindOne(ctx, func(u *models.AuthUser) bool {
		return strings.EqualFold(u.Email, email)
	})
}

func (r *AuthUsers) Update(ctx context.Context, id string, patch func(*models.AuthUser)) (*models.AuthUser, error) {
	return r.col.Update(ctx, id, patch)
}

func (r *AuthUsers) Delete(ctx context.Context, id string) (bool, error) {
	return r.col.Delete(ctx, id)
}

type Sessions struct {
	col *Collection[*models.Session]
}

func (r *Sessions) Create(ctx context.Context, s *models.Session) error {
	return r.col.Create(ctx, s)
}

func (r *Sessions) GetByToken(ctx context.Context, token string) (*models.Session, error) {
	return r.col.FindOne(ctx, func(s *models.Session) bool { return s.Token == token })
}

func (r *Sessions) DeleteByToken(ctx context.Context, token string) (bool, error) {
	n, err := r.col.DeleteWhere(ctx, func(s *models.Session) bool { return s.Token == token })
	return n > 0, err
}

func (r *Sessions) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	return r.col.DeleteWhere(ctx, func(s *models.Session) bool { return s.Expired(now) })
}

type Profiles struct {
	col *Collection[*models.Profile]
}

func (r *Profiles) Create(ctx context.Context, p *models.Profile) error {
	return r.col.CreateUnique(ctx, p, func(existing *models.Profile) bool {
		return existing.AuthUserID == p.AuthUserID
	})
}

func (r *Profiles) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	return r.col.Get(ctx, id)
}

func (r *Profiles) GetByAuthUser(ctx context.Context, authUserID string) (*models.Profile, error) {
	return r.col.FindOne(ctx, func(p *models.Profile) bool { return p.AuthUserID == authUserID })
}

func (r *Profiles) Update(ctx context.Context, id string, patch func(*models.Profile)) (*models.Profile, error) {
	return r.col.Update(ctx, id, patch)
}

func (r *Profiles) Delete(ctx context.Context, id string) (bool, error) {
	return r.col.Delete(ctx, id)
}

type Keyed[T models.Record] struct {
	col *Collection[T]
}

func (r *Keyed[T]) GetByUser(ctx context.Context, userID string) (T, error) {
	return r.col.FindOne(ctx, func(rec T) bool { return rec.OwnerID() == userID })
}

func (r *Keyed[T]) Upsert(ctx context.Context, rec T) error {
	return r.col.Upsert(ctx, rec, func(existing T) bool {
		return existing.OwnerID() == rec.OwnerID()
	})
}

type Activities struct {
	col *Collection[*models.Activity]
}

func (r *Activities) Append(ctx context.Context, a *models.Activity) error {
	return r.col.Create(ctx, a)
}

func (r *Activities) ListRecent(ctx context.Context, userID string, limit int) ([]*models.Activity, error) {
	entries, err := r.col.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].ID > entries[j].ID
		}
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
