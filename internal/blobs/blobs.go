// Package blobs stores payment screenshots. Production deployments hand
// out presigned S3 URLs; demo deployments read and write files under the
// data directory. The substrate is picked once, from config, the same way
// the record store is.
package blobs

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/salespilots/platform/internal/config"
	"github.com/salespilots/platform/internal/logging"
)

// presignTTL bounds how long an issued upload or download URL stays valid.
const presignTTL = 15 * time.Minute

// Store is the payment-screenshot contract. Upload returns the storage key
// plus, for stores that support it, a URL the client uploads to directly.
type Store interface {
	// PrepareUpload allocates a key and returns where to put the bytes.
	// The S3 store returns a presigned PUT URL and ignores data on Put.
	PrepareUpload(ctx context.Context) (key string, uploadURL string, err error)
	// Put writes data under key for stores without direct client upload.
	Put(ctx context.Context, key string, data []byte) error
	// DownloadURL returns where to fetch key from. The filesystem store
	// returns an opaque local reference.
	DownloadURL(ctx context.Context, key string) (string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Name() string
}

// NewKey allocates a fresh screenshot key, grouped by upload date.
func NewKey(now time.Time) string {
	return fmt.Sprintf("screenshots/%d/%d/%d/%v", now.Year(), now.Month(), now.Day(), uuid.New())
}

// Open picks the store for the deployment the same way the record store is
// picked: S3 when a bucket and credentials are configured, the data
// directory when one is set, process memory otherwise.
func Open(cfg *config.Config, log logging.Logger) (Store, error) {
	if cfg.S3Bucket != "" && cfg.S3AccessKey != "" {
		log.Info(context.Background(), "blob store selected", "store", "s3", "bucket", cfg.S3Bucket)
		return newS3Store(cfg), nil
	}
	if cfg.DataDir != "" {
		log.Info(context.Background(), "blob store selected", "store", "fs", "dir", cfg.DataDir)
		return newFSStore(cfg.DataDir)
	}
	log.Info(context.Background(), "blob store selected", "store", "memory")
	return newMemStore(), nil
}
