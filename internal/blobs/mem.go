package blobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/salespilots/platform/internal/common"
)

// memStore pairs with the in-memory record backend: screenshots live in a
// map and vanish on restart.
type memStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
	now   func() time.Time
}

func newMemStore() *memStore {
	return &memStore{blobs: map[string][]byte{}, now: time.Now}
}

func (s *memStore) Name() string { return "memory" }

func (s *memStore) PrepareUpload(ctx context.Context) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}
	return NewKey(s.now()), "", nil
}

func (s *memStore) Put(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if key == "" {
		return common.ErrValidation
	}
	cp := make([]byte, len(data))
	copy(cp, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = cp
	return nil
}

func (s *memStore) DownloadURL(ctx context.Context, key string) (string, error) {
	return key, nil
}

func (s *memStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.blobs[key]
	if !ok {
		return nil, fmt.Errorf("blob %q: %w", key, common.ErrNotFound)
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}
