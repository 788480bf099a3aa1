// Package config handles configuration for the SalesPilots data platform,
// including defaults, JSON overlay, command-line flags, and startup
// validation of the production storage gate.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// minDSNCredentialLen is the shortest database password accepted for the
// production backend. Anything shorter is assumed to be a placeholder left
// over from a template deployment.
const minDSNCredentialLen = 16

// minSessionSecretLen is the shortest accepted HMAC signing secret.
const minSessionSecretLen = 32

// placeholderMarkers are substrings that mark a DSN as copied from docs or
// an env template rather than pointing at a real database.
var placeholderMarkers = []string{"example.com", "YOUR-", "your-project", "changeme", "CHANGEME"}

// Config holds runtime settings for the data platform.
//
// Fields:
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects demo mode.
//   - DataDir: directory for flat-file collections and demo blobs. Empty
//     selects the in-memory backend.
//   - SessionSecret: HMAC secret for stateless signed tokens (HS256). When
//     set, sessions are not persisted at all.
//   - SessionTTL: lifetime of issued sessions, both persisted and signed.
//   - S3Bucket / S3Region / S3BaseEndpoint / S3AccessKey / S3SecretKey:
//     object storage for payment screenshots in production mode.
type Config struct {
	DatabaseDSN   string
	DataDir       string
	SessionSecret string
	SessionTTL    time.Duration

	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
}

// LoadDefaults populates Config with development defaults. Production
// storage is opt-in: there is no default DSN.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = ""
	c.DataDir = "./data"
	c.SessionSecret = ""
	c.SessionTTL = 24 * time.Hour
	c.S3Bucket = "salespilots-media"
	c.S3Region = "ap-south-1"
	c.S3BaseEndpoint = ""
}

// Load builds a Config by applying defaults, then overlaying values from an
// optional JSON file (-c/-config) and finally from command-line flags. The
// result is validated; a malformed production DSN or an undersized session
// secret is a startup error, never a silent downgrade.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg); err != nil {
		return nil, err
	}
	parseFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded configuration once, at startup.
func (c *Config) Validate() error {
	if c.DatabaseDSN != "" {
		if err := validateDSN(c.DatabaseDSN); err != nil {
			return fmt.Errorf("DatabaseDSN: %w", err)
		}
	}
	if c.SessionSecret != "" && len(c.SessionSecret) < minSessionSecretLen {
		return fmt.Errorf("SessionSecret: must be at least %d characters", minSessionSecretLen)
	}
	if c.SessionTTL <= 0 {
		return errors.New("SessionTTL: must be positive")
	}
	return nil
}

// ProductionConfigured reports whether the production relational backend is
// usable. It returns nil when a valid DSN is configured, or an error
// explaining why the deployment runs in demo mode.
func (c *Config) ProductionConfigured() error {
	if c.DatabaseDSN == "" {
		return errors.New("no database DSN configured")
	}
	return validateDSN(c.DatabaseDSN)
}

func validateDSN(dsn string) error {
	u, err := url.Parse(dsn)
	if err != nil {
		return fmt.Errorf("not a valid URL: %w", err)
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	for _, marker := range placeholderMarkers {
		if strings.Contains(dsn, marker) {
			return fmt.Errorf("placeholder value %q", marker)
		}
	}
	password, ok := u.User.Password()
	if !ok || len(password) < minDSNCredentialLen {
		return fmt.Errorf("credential missing or shorter than %d characters", minDSNCredentialLen)
	}
	return nil
}
