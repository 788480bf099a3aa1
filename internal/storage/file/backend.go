package file

import (
	"context"
	"fmt"
	"os"

	"github.com/salespilots/platform/internal/metrics"
	"github.com/salespilots/platform/internal/models"
	"github.com/salespilots/platform/internal/storage"
)

// Backend serves every repository from JSON files under one data directory.
type Backend struct {
	dir string

	authUsers  *AuthUsers
	sessions   *Sessions
	profiles   *Profiles
	products   *Collection[*models.Product]
	customers  *Collection[*models.Customer]
	orders     *Collection[*models.Order]
	messages   *Collection[*models.Message]
	workflows  *Collection[*models.Workflow]
	templates  *Collection[*models.Template]
	settings   *Keyed[*models.Settings]
	onboarding *Keyed[*models.Onboarding]
	activities *Activities
}

// New creates the data directory if needed and wires one collection per
// entity.
func New(dir string, mc *metrics.Collector) (*Backend, error) {
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return &Backend{
		dir:        dir,
		authUsers:  &AuthUsers{col: NewCollection[*models.AuthUser](dir, "auth_users", mc)},
		sessions:   &Sessions{col: NewCollection[*models.Session](dir, "sessions", mc)},
		profiles:   &Profiles{col: NewCollection[*models.Profile](dir, "profiles", mc)},
		products:   NewCollection[*models.Product](dir, "products", mc),
		customers:  NewCollection[*models.Customer](dir, "customers", mc),
		orders:     NewCollection[*models.Order](dir, "orders", mc),
		messages:   NewCollection[*models.Message](dir, "messages", mc),
		workflows:  NewCollection[*models.Workflow](dir, "workflows", mc),
		templates:  NewCollection[*models.Template](dir, "templates", mc),
		settings:   &Keyed[*models.Settings]{col: NewCollection[*models.Settings](dir, "settings", mc)},
		onboarding: &Keyed[*models.Onboarding]{col: NewCollection[*models.Onboarding](dir, "onboarding", mc)},
		activities: &Activities{col: NewCollection[*models.Activity](dir, "activities", mc)},
	}, nil
}

func (b *Backend) AuthUsers() storage.AuthUserRepository                   { return b.authUsers }
func (b *Backend) Sessions() storage.SessionRepository                     { return b.sessions }
func (b *Backend) Profiles() storage.ProfileRepository                     { return b.profiles }
func (b *Backend) Products() storage.Collection[*models.Product]           { return b.products }
func (b *Backend) Customers() storage.Collection[*models.Customer]         { return b.customers }
func (b *Backend) Orders() storage.Collection[*models.Order]               { return b.orders }
func (b *Backend) Messages() storage.Collection[*models.Message]           { return b.messages }
func (b *Backend) Workflows() storage.Collection[*models.Workflow]         { return b.workflows }
func (b *Backend) Templates() storage.Collection[*models.Template]         { return b.templates }
func (b *Backend) Settings() storage.KeyedRepository[*models.Settings]     { return b.settings }
func (b *Backend) Onboarding() storage.KeyedRepository[*models.Onboarding] { return b.onboarding }
func (b *Backend) Activities() storage.ActivityRepository                  { return b.activities }

func (b *Backend) Mode() storage.Mode { return storage.ModeDemo }
func (b *Backend) Name() string       { return "file" }

// Ping verifies the data directory is still accessible.
func (b *Backend) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := os.Stat(b.dir)
	return err
}

// RunMigrations is a no-op: flat-file collections carry no schema.
func (b *Backend) RunMigrations(ctx context.Context) error { return nil }

func (b *Backend) Close() error { return nil }
