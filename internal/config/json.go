package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/salespilots/platform/internal/flagx"
	"github.com/salespilots/platform/internal/timex"
)

// jsonConfig is the file-format DTO. Interval fields use timex.Duration so
// both "24h" and integer nanoseconds parse. Values are copied into the
// runtime Config after unmarshalling.
type jsonConfig struct {
	DatabaseDSN    *string         `json:"database_dsn"`
	DataDir        *string         `json:"data_dir"`
	SessionSecret  *string         `json:"session_secret"`
	SessionTTL     *timex.Duration `json:"session_ttl"`
	S3Bucket       *string         `json:"s3_bucket"`
	S3Region       *string         `json:"s3_region"`
	S3BaseEndpoint *string         `json:"s3_base_endpoint"`
	S3AccessKey    *string         `json:"s3_access_key"`
	S3SecretKey    *string         `json:"s3_secret_key"`
}

// parseJSON overlays configuration from the JSON file named by the -c or
// -config flags, when present. Absent fields keep their current values.
func parseJSON(config *Config) error {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &jsonConfig{}
	if err := json.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.DataDir != nil {
		config.DataDir = *c.DataDir
	}
	if c.SessionSecret != nil {
		config.SessionSecret = *c.SessionSecret
	}
	if c.SessionTTL != nil {
		config.SessionTTL = c.SessionTTL.Duration
	}
	if c.S3Bucket != nil {
		config.S3Bucket = *c.S3Bucket
	}
	if c.S3Region != nil {
		config.S3Region = *c.S3Region
	}
	if c.S3BaseEndpoint != nil {
		config.S3BaseEndpoint = *c.S3BaseEndpoint
	}
	if c.S3AccessKey != nil {
		config.S3AccessKey = *c.S3AccessKey
	}
	if c.S3SecretKey != nil {
		config.S3SecretKey = *c.S3SecretKey
	}

	return nil
}
