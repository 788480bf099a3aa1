package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/salespilots/platform/internal/metrics"
	"github.com/salespilots/platform/internal/models"
	"github.com/salespilots/platform/internal/storage"
	"github.com/salespilots/platform/internal/storage/postgres/migrations"
)

// Backend is the production storage substrate over a hosted PostgreSQL
// service.
type Backend struct {
	db *sql.DB

	authUsers  *AuthUsers
	sessions   *Sessions
	profiles   *Profiles
	products   *table[*models.Product]
	customers  *table[*models.Customer]
	orders     *table[*models.Order]
	messages   *table[*models.Message]
	workflows  *table[*models.Workflow]
	templates  *table[*models.Template]
	settings   *Keyed[*models.Settings]
	onboarding *Keyed[*models.Onboarding]
	activities *Activities
}

// New opens the database behind dsn and wires every repository to it. The
// connection is not verified here; callers ping before taking traffic.
func New(dsn string, mc *metrics.Collector) (*Backend, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return NewWithDB(db, mc), nil
}

// NewWithDB wires the backend over an existing connection. Tests use it
// with sqlmock.
func NewWithDB(db *sql.DB, mc *metrics.Collector) *Backend {
	now := time.Now
	return &Backend{
		db:         db,
		authUsers:  newAuthUsers(db, mc, now),
		sessions:   newSessions(db, mc, now),
		profiles:   newProfiles(db, mc, now),
		products:   newProducts(db, mc, now),
		customers:  newCustomers(db, mc, now),
		orders:     newOrders(db, mc, now),
		messages:   newMessages(db, mc, now),
		workflows:  newWorkflows(db, mc, now),
		templates:  newTemplates(db, mc, now),
		settings:   newSettings(db, mc, now),
		onboarding: newOnboarding(db, mc, now),
		activities: newActivities(db, mc, now),
	}
}

func (b *Backend) AuthUsers() storage.AuthUserRepository { return b.authUsers }
func (b *Backend) Sessions() storage.SessionRepository   { return b.sessions }
func (b *Backend) Profiles() storage.ProfileRepository   { return b.profiles }

func (b *Backend) Products() storage.Collection[*models.Product]   { return b.products }
func (b *Backend) Customers() storage.Collection[*models.Customer] { return b.customers }
func (b *Backend) Orders() storage.Collection[*models.Order]       { return b.orders }
func (b *Backend) Messages() storage.Collection[*models.Message]   { return b.messages }
func (b *Backend) Workflows() storage.Collection[*models.Workflow] { return b.workflows }
func (b *Backend) Templates() storage.Collection[*models.Template] { return b.templates }

func (b *Backend) Settings() storage.KeyedRepository[*models.Settings]     { return b.settings }
func (b *Backend) Onboarding() storage.KeyedRepository[*models.Onboarding] { return b.onboarding }
func (b *Backend) Activities() storage.ActivityRepository                  { return b.activities }

func (b *Backend) Mode() storage.Mode { return storage.ModeProduction }
func (b *Backend) Name() string       { return "postgres" }

func (b *Backend) Ping(ctx context.Context) error {
	return b.db.PingContext(ctx)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the backend's connection.
func (b *Backend) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, b.db, ".")
}

func (b *Backend) Close() error {
	return b.db.Close()
}
