package memory

import (
	"context"

	"github.com/salespilots/platform/internal/metrics"
	"github.com/salespilots/platform/internal/models"
	"github.com/salespilots/platform/internal/storage"
)

// Backend serves every repository from process memory.
type Backend struct {
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

func New(mc *metrics.Collector) *Backend {
	return &Backend{
		authUsers:  &AuthUsers{col: NewCollection[*models.AuthUser]("auth_users", mc)},
		sessions:   &Sessions{col: NewCollection[*models.Session]("sessions", mc)},
		profiles:   &Profiles{col: NewCollection[*models.Profile]("profiles", mc)},
		products:   NewCollection[*models.Product]("products", mc),
		customers:  NewCollection[*models.Customer]("customers", mc),
		orders:     NewCollection[*models.Order]("orders", mc),
		messages:   NewCollection[*models.Message]("messages", mc),
		workflows:  NewCollection[*models.Workflow]("workflows", mc),
		templates:  NewCollection[*models.Template]("templates", mc),
		settings:   &Keyed[*models.Settings]{col: NewCollection[*models.Settings]("settings", mc)},
		onboarding: &Keyed[*models.Onboarding]{col: NewCollection[*models.Onboarding]("onboarding", mc)},
		activities: &Activities{col: NewCollection[*models.Activity]("activities", mc)},
	}
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
func (b *Backend) Name() string       { return "memory" }

func (b *Backend) Ping(ctx context.Context) error { return ctx.Err() }

// RunMigrations is a no-op: there is no schema to migrate.
func (b *Backend) RunMigrations(ctx context.Context) error { return nil }

func (b *Backend) Close() error { return nil }
