package blobs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/salespilots/platform/internal/common"
)

// fsStore keeps screenshots as plain files under <dataDir>/blobs, mirroring
// the key layout the S3 store uses.
type fsStore struct {
	root string
	now  func() time.Time
}

func newFSStore(dataDir string) (*fsStore, error) {
	root := filepath.Join(dataDir, "blobs")
	if err := os.MkdirAll(root, 0o770); err != nil {
		return nil, fmt.Errorf("create blob dir: %w", err)
	}
	return &fsStore{root: root, now: time.Now}, nil
}

func (s *fsStore) Name() string { return "fs" }

// keyPath rejects keys that would escape the blob root.
func (s *fsStore) keyPath(key string) (string, error) {
	if key == "" || strings.Contains(key, "..") || filepath.IsAbs(key) {
		return "", fmt.Errorf("invalid blob key %q: %w", key, common.ErrValidation)
	}
	return filepath.Join(s.root, filepath.FromSlash(key)), nil
}

// PrepareUpload allocates a key; there is no upload URL, the caller follows
// up with Put.
func (s *fsStore) PrepareUpload(ctx context.Context) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}
	return NewKey(s.now()), "", nil
}

func (s *fsStore) Put(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.keyPath(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o770); err != nil {
		return fmt.Errorf("create blob dir: %w", err)
	}
	return os.WriteFile(path, data, 0o660)
}

// DownloadURL returns the opaque key itself; demo clients fetch through
// Get.
func (s *fsStore) DownloadURL(ctx context.Context, key string) (string, error) {
	if _, err := s.keyPath(key); err != nil {
		return "", err
	}
	return key, nil
}

func (s *fsStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.keyPath(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("blob %q: %w", key, common.ErrNotFound)
		}
		return nil, err
	}
	return data, nil
}
