// Package storage defines the repository contracts of the SalesPilots data
// layer and selects, once at startup, which backend implements them: the
// relational service (production), flat JSON files (demo), or process
// memory (demo, read-only environments).
package storage

import (
	"context"
	"strconv"
	"time"

	"github.com/salespilots/platform/internal/models"
)

// Mode is the backend state selected at startup. There is no runtime
// re-evaluation: a production deployment whose database becomes unreachable
// fails per call instead of silently downgrading to demo storage.
type Mode string

const (
	ModeDemo       Mode = "DEMO"
	ModeProduction Mode = "PRODUCTION"
)

// Collection is the uniform owner-scoped CRUD contract shared by products,
// customers, orders, messages, workflows and templates. T is instantiated
// with pointer types (*models.Product, ...).
//
// Create assigns the record's ID and stamps CreatedAt/UpdatedAt; callers
// never set those fields. Update loads the record, applies the patch
// function and re-stamps UpdatedAt; fields the patch does not touch are
// unchanged.
type Collection[T models.Record] interface {
	// List returns the records owned by userID. An empty userID returns
	// the whole collection.
	List(ctx context.Context, userID string) ([]T, error)
	Create(ctx context.Context, rec T) error
	Get(ctx context.Context, id string) (T, error)
	Update(ctx context.Context, id string, patch func(T)) (T, error)
	// Delete reports whether a record was removed, so a second delete of
	// the same ID returns false without error.
	Delete(ctx context.Context, id string) (bool, error)
}

// AuthUserRepository stores login identities. Email comparison is case
// insensitive everywhere; Create returns common.ErrAlreadyExists when the
// email is taken.
type AuthUserRepository interface {
	Create(ctx context.Context, u *models.AuthUser) error
	GetByID(ctx context.Context, id string) (*models.AuthUser, error)
	GetByEmail(ctx context.Context, email string) (*models.AuthUser, error)
	Update(ctx context.Context, id string, patch func(*models.AuthUser)) (*models.AuthUser, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// SessionRepository stores persisted opaque sessions. Unused when the
// deployment signs stateless tokens instead.
type SessionRepository interface {
	Create(ctx context.Context, s *models.Session) error
	GetByToken(ctx context.Context, token string) (*models.Session, error)
	DeleteByToken(ctx context.Context, token string) (bool, error)
	// DeleteExpired removes sessions whose expiry is at or before now and
	// returns how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

// ProfileRepository stores the 1:1 business profile per auth user.
type ProfileRepository interface {
	Create(ctx context.Context, p *models.Profile) error
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	GetByAuthUser(ctx context.Context, authUserID string) (*models.Profile, error)
	Update(ctx context.Context, id string, patch func(*models.Profile)) (*models.Profile, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// KeyedRepository is the singleton-per-owner contract used by settings and
// onboarding state. GetByUser returns common.ErrNotFound when the user has
// no record yet; managers apply defaults on top.
type KeyedRepository[T models.Record] interface {
	GetByUser(ctx context.Context, userID string) (T, error)
	Upsert(ctx context.Context, rec T) error
}

// ActivityRepository is the append-only activity log.
type ActivityRepository interface {
	Append(ctx context.Context, a *models.Activity) error
	// ListRecent returns up to limit entries for userID, newest first.
	ListRecent(ctx context.Context, userID string, limit int) ([]*models.Activity, error)
}

// Backend bundles every repository over one substrate. Exactly one Backend
// serves a process; there is no per-call fallback between backends.
type Backend interface {
	AuthUsers() AuthUserRepository
	Sessions() SessionRepository
	Profiles() ProfileRepository
	Products() Collection[*models.Product]
	Customers() Collection[*models.Customer]
	Orders() Collection[*models.Order]
	Messages() Collection[*models.Message]
	Workflows() Collection[*models.Workflow]
	Templates() Collection[*models.Template]
	Settings() KeyedRepository[*models.Settings]
	Onboarding() KeyedRepository[*models.Onboarding]
	Activities() ActivityRepository

	Mode() Mode
	// Name identifies the substrate: "postgres", "file" or "memory".
	Name() string
	Ping(ctx context.Context) error
	RunMigrations(ctx context.Context) error
	Close() error
}

// EpochID formats now as epoch milliseconds, the record-ID convention
// inherited from the original flat-file data layer. Backends bump the
// millisecond under their collection lock when an ID is already taken, so
// concurrent creates in one process cannot collide.
func EpochID(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10)
}
