// Package app wires the platform together: configuration, logging,
// metrics, the selected storage backend, the blob store and the domain
// services. Everything is passed explicitly; there is no package-level
// state to reach for.
package app

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/salespilots/platform/internal/account"
	"github.com/salespilots/platform/internal/authusers"
	"github.com/salespilots/platform/internal/blobs"
	"github.com/salespilots/platform/internal/config"
	"github.com/salespilots/platform/internal/logging"
	"github.com/salespilots/platform/internal/metrics"
	"github.com/salespilots/platform/internal/sessions"
	"github.com/salespilots/platform/internal/storage"
	"github.com/salespilots/platform/internal/storage/selector"
)

type App struct {
	Config   *config.Config
	Logger   logging.Logger
	Metrics  *metrics.Collector
	Registry *prometheus.Registry
	Backend  storage.Backend
	Blobs    blobs.Store

	AuthUsers    *authusers.Service
	Sessions     *sessions.Service
	Profiles     *account.Profiles
	Settings     *account.Settings
	Onboarding   *account.Onboarding
	ActivityLog  *account.ActivityLog
	BusinessData *account.BusinessData
}

// New builds the fully wired application from a validated config. The
// storage decision happens here, once; a failing production gate is a
// construction error.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout)
	// A dedicated registry: exposition is up to the embedding application.
	reg := prometheus.NewRegistry()
	mc := metrics.NewCollector(reg)

	backend, err := selector.Open(ctx, cfg, logger, mc)
	if err != nil {
		return nil, fmt.Errorf("storage init: %w", err)
	}

	blobStore, err := blobs.Open(cfg, logger)
	if err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("blob store init: %w", err)
	}

	sess := sessions.New(backend.Sessions(), cfg.SessionSecret, cfg.SessionTTL, logger)

	return &App{
		Config:   cfg,
		Logger:   logger,
		Metrics:  mc,
		Registry: reg,
		Backend:  backend,
		Blobs:    blobStore,

		AuthUsers:    authusers.New(backend.AuthUsers(), sess, logger),
		Sessions:     sess,
		Profiles:     account.NewProfiles(backend.Profiles(), logger),
		Settings:     account.NewSettings(backend.Settings()),
		Onboarding:   account.NewOnboarding(backend.Onboarding()),
		ActivityLog:  account.NewActivityLog(backend.Activities()),
		BusinessData: account.NewBusinessData(backend),
	}, nil
}

// Close releases the storage backend.
func (a *App) Close() error {
	return a.Backend.Close()
}
