// Package admin implements the salespilots-admin subcommands. Each command
// wires the application through app.New and works against whichever backend
// the configuration selects.
package admin

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/salespilots/platform/internal/app"
	"github.com/salespilots/platform/internal/config"
	"github.com/salespilots/platform/internal/flagx"
	"github.com/salespilots/platform/internal/models"
)

// Seams for testing without a terminal or real wiring.
var (
	readPassword = term.ReadPassword
	newApp       = app.New
)

type CLI struct {
	cfg *config.Config
	out io.Writer
}

func New(cfg *config.Config, out io.Writer) *CLI {
	return &CLI{cfg: cfg, out: out}
}

// Run dispatches a subcommand. Unknown commands list the known ones.
func (c *CLI) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		c.usage()
		return fmt.Errorf("no command given")
	}
	switch args[0] {
	case "mode":
		return c.Mode(ctx)
	case "migrate":
		return c.Migrate(ctx)
	case "create-admin":
		return c.CreateAdmin(ctx, args[1:])
	case "seed":
		return c.Seed(ctx, args[1:])
	case "export":
		return c.Export(ctx, args[1:])
	default:
		c.usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func (c *CLI) usage() {
	fmt.Fprintln(c.out, "usage: salespilots-admin <mode|migrate|create-admin|seed|export> [flags]")
}

// Mode prints which backend the configuration selects and, in demo mode,
// why production is not available.
func (c *CLI) Mode(ctx context.Context) error {
	if err := c.cfg.ProductionConfigured(); err != nil {
		fmt.Fprintf(c.out, "DEMO (%v)\n", err)
		return nil
	}
	fmt.Fprintln(c.out, "PRODUCTION")
	return nil
}

// Migrate runs the embedded schema migrations against the production
// database. It refuses to run in demo mode.
func (c *CLI) Migrate(ctx context.Context) error {
	if err := c.cfg.ProductionConfigured(); err != nil {
		return fmt.Errorf("migrate needs a production database: %w", err)
	}
	a, err := newApp(ctx, c.cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Backend.RunMigrations(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	fmt.Fprintln(c.out, "migrations applied")
	return nil
}

// CreateAdmin registers an admin identity plus its business profile,
// prompting for the password without echo.
func (c *CLI) CreateAdmin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create-admin", flag.ContinueOnError)
	fs.SetOutput(c.out)
	email := fs.String("email", "", "admin email address")
	name := fs.String("name", "SalesPilots Admin", "business name for the admin profile")
	if err := fs.Parse(flagx.FilterArgs(args, []string{"-email", "-name"})); err != nil {
		return err
	}
	if *email == "" {
		return fmt.Errorf("create-admin: -email is required")
	}

	fmt.Fprint(c.out, "Enter password: ")
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(c.out)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	a, err := newApp(ctx, c.cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	u, err := a.AuthUsers.Register(ctx, *email, string(pw), models.RoleAdmin)
	if err != nil {
		return err
	}
	if _, err := a.Profiles.Create(ctx, u.ID, *name, ""); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "admin %s created (id %s)\n", u.Email, u.ID)
	return nil
}

// Fixture is the seed file layout: records to load for one seller.
type Fixture struct {
	Products  []*models.Product  `json:"products"`
	Templates []*models.Template `json:"templates"`
}

// Seed loads a JSON fixture of products and templates into the configured
// backend for one user. It is the explicit alternative to any implicit
// demo-to-production data migration.
func (c *CLI) Seed(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.SetOutput(c.out)
	path := fs.String("file", "", "fixture JSON file")
	userID := fs.String("user", "", "owning user ID")
	if err := fs.Parse(flagx.FilterArgs(args, []string{"-file", "-user"})); err != nil {
		return err
	}
	if *path == "" || *userID == "" {
		return fmt.Errorf("seed: -file and -user are required")
	}

	data, err := os.ReadFile(*path)
	if err != nil {
		return fmt.Errorf("read fixture: %w", err)
	}
	var fx Fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return fmt.Errorf("parse fixture: %w", err)
	}

	a, err := newApp(ctx, c.cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	for _, p := range fx.Products {
		p.UserID = *userID
		if err := a.Backend.Products().Create(ctx, p); err != nil {
			return fmt.Errorf("seed product %q: %w", p.Name, err)
		}
	}
	for _, tpl := range fx.Templates {
		tpl.UserID = *userID
		if err := a.Backend.Templates().Create(ctx, tpl); err != nil {
			return fmt.Errorf("seed template %q: %w", tpl.Name, err)
		}
	}

	fmt.Fprintf(c.out, "seeded %d products, %d templates into %s\n",
		len(fx.Products), len(fx.Templates), strings.ToLower(a.Backend.Name()))
	return nil
}

// Export writes one user's products and templates to a fixture file that
// Seed accepts, so demo data can be carried into a production deployment.
func (c *CLI) Export(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(c.out)
	path := fs.String("file", "", "output fixture JSON file")
	userID := fs.String("user", "", "owning user ID")
	if err := fs.Parse(flagx.FilterArgs(args, []string{"-file", "-user"})); err != nil {
		return err
	}
	if *path == "" || *userID == "" {
		return fmt.Errorf("export: -file and -user are required")
	}

	a, err := newApp(ctx, c.cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	var fx Fixture
	if fx.Products, err = a.Backend.Products().List(ctx, *userID); err != nil {
		return fmt.Errorf("list products: %w", err)
	}
	if fx.Templates, err = a.Backend.Templates().List(ctx, *userID); err != nil {
		return fmt.Errorf("list templates: %w", err)
	}

	data, err := json.MarshalIndent(&fx, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(*path, data, 0o660); err != nil {
		return fmt.Errorf("write fixture: %w", err)
	}

	fmt.Fprintf(c.out, "exported %d products, %d templates to %s\n",
		len(fx.Products), len(fx.Templates), *path)
	return nil
}
