// Package selector decides, once at startup, which storage backend a
// process uses. The decision comes from the validated configuration alone;
// there is no health-check-driven failback and no per-call fallback between
// backends (the single-source-of-truth policy).
package selector

import (
	"context"
	"fmt"

	"github.com/salespilots/platform/internal/common"
	"github.com/salespilots/platform/internal/config"
	"github.com/salespilots/platform/internal/logging"
	"github.com/salespilots/platform/internal/metrics"
	"github.com/salespilots/platform/internal/storage"
	"github.com/salespilots/platform/internal/storage/file"
	"github.com/salespilots/platform/internal/storage/memory"
	"github.com/salespilots/platform/internal/storage/postgres"
)

// openPostgres is a seam for testing the production path without a live
// database.
var openPostgres = func(dsn string, mc *metrics.Collector) (storage.Backend, error) {
	return postgres.New(dsn, mc)
}

// Open constructs the storage backend:
//
//   - DatabaseDSN configured: relational backend (PRODUCTION). The DSN must
//     pass the production gate and the database must answer a ping; any
//     failure is returned as an error, never downgraded to demo storage.
//   - No DSN, DataDir configured: flat-file backend (DEMO).
//   - Neither: in-memory backend (DEMO).
func Open(ctx context.Context, cfg *config.Config, log logging.Logger, mc *metrics.Collector) (storage.Backend, error) {
	if cfg.DatabaseDSN != "" {
		if err := cfg.ProductionConfigured(); err != nil {
			return nil, fmt.Errorf("production storage misconfigured: %w", err)
		}
		b, err := openPostgres(cfg.DatabaseDSN, mc)
		if err != nil {
			return nil, fmt.Errorf("open relational backend: %w", err)
		}
		if err := b.Ping(ctx); err != nil {
			_ = b.Close()
			return nil, fmt.Errorf("relational backend unreachable: %w: %w", common.ErrBackendUnavailable, err)
		}
		log.Info(ctx, "storage backend selected", "mode", b.Mode(), "backend", b.Name())
		return b, nil
	}

	reason := "demo mode"
	if err := cfg.ProductionConfigured(); err != nil {
		reason = err.Error()
	}

	if cfg.DataDir != "" {
		b, err := file.New(cfg.DataDir, mc)
		if err != nil {
			return nil, fmt.Errorf("open flat-file backend: %w", err)
		}
		log.Info(ctx, "storage backend selected", "mode", b.Mode(), "backend", b.Name(),
			"dir", cfg.DataDir, "reason", reason)
		return b, nil
	}

	b := memory.New(mc)
	log.Info(ctx, "storage backend selected", "mode", b.Mode(), "backend", b.Name(), "reason", reason)
	return b, nil
}
