// Package file implements the flat-file storage backend: one pretty-printed
// JSON array file per entity under a data directory, whole-collection
// read/rewrite per operation. It is the demo-mode substrate; a single
// process is the only supported writer.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/salespilots/platform/internal/common"
	"github.com/salespilots/platform/internal/metrics"
	"github.com/salespilots/platform/internal/models"
	"github.com/salespilots/platform/internal/storage"
)

// Collection is the generic engine behind every file-backed repository. A
// mutex serializes the read-modify-write cycle of each operation, so two
// concurrent creates in one process both survive. Writers in other
// processes are not coordinated with.
type Collection[T models.Record] struct {
	entity string
	path   string
	mc     *metrics.Collector

	mu  sync.Mutex
	now func() time.Time
}

// NewCollection returns the engine for one entity, persisted at
// <dir>/<entity>.json.
func NewCollection[T models.Record](dir, entity string, mc *metrics.Collector) *Collection[T] {
	return &Collection[T]{
		entity: entity,
		path:   filepath.Join(dir, entity+".json"),
		mc:     mc,
		now:    time.Now,
	}
}

func (c *Collection[T]) record(op string, start time.Time, err error) {
	c.mc.RecordOp(c.entity, op, "file", start, err)
}

// load reads the whole collection. A missing file is an empty collection; a
// file that exists but does not parse is ErrCorruptData, never silently
// empty.
func (c *Collection[T]) load() ([]T, error) {
	raw, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.path, err)
	}

	var recs []T
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrCorruptData, c.path, err)
	}
	return recs, nil
}

// save rewrites the whole collection through a temp file and rename, so a
// crash mid-write leaves the previous contents intact.
func (c *Collection[T]) save(recs []T) error {
	raw, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", c.entity, err)
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o660); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

// nextID returns an epoch-millisecond ID not yet present in recs, bumping
// the millisecond on collision. Runs under the collection lock.
func (c *Collection[T]) nextID(recs []T) string {
	now := c.now()
	for {
		id := storage.EpochID(now)
		taken := false
		for _, r := range recs {
			if r.RecordID() == id {
				taken = true
				break
			}
		}
		if !taken {
			return id
		}
		now = now.Add(time.Millisecond)
	}
}

// List returns the records owned by userID, or the whole collection when
// userID is empty.
func (c *Collection[T]) List(ctx context.Context, userID string) (recs []T, err error) {
	start := time.Now()
	defer func() { c.record("list", start, err) }()
	if err = ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	all, err := c.load()
	if err != nil {
		return nil, err
	}
	if userID == "" {
		return all, nil
	}

	owned := make([]T, 0, len(all))
	for _, r := range all {
		if r.OwnerID() == userID {
			owned = append(owned, r)
		}
	}
	return owned, nil
}

// Create assigns the record's ID and timestamps, appends it and persists
// the collection.
func (c *Collection[T]) Create(ctx context.Context, rec T) error {
	return c.CreateUnique(ctx, rec, nil)
}

// CreateUnique is Create with a uniqueness check evaluated under the same
// lock: when conflict returns true for any existing record, the create
// fails with common.ErrAlreadyExists and nothing is written.
func (c *Collection[T]) CreateUnique(ctx context.Context, rec T, conflict func(existing T) bool) (err error) {
	start := time.Now()
	defer func() { c.record("create", start, err) }()
	if err = ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	recs, err := c.load()
	if err != nil {
		return err
	}
	if conflict != nil {
		for _, r := range recs {
			if conflict(r) {
				return common.ErrAlreadyExists
			}
		}
	}

	rec.SetRecordID(c.nextID(recs))
	rec.TouchCreated(c.now())
	return c.save(append(recs, rec))
}

// Get returns the record with the given ID, or common.ErrNotFound.
func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	return c.FindOne(ctx, func(r T) bool { return r.RecordID() == id })
}

// FindOne returns the first record matching pred, or common.ErrNotFound.
func (c *Collection[T]) FindOne(ctx context.Context, pred func(T) bool) (zero T, err error) {
	start := time.Now()
	defer func() { c.record("get", start, err) }()
	if err = ctx.Err(); err != nil {
		return zero, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	recs, err := c.load()
	if err != nil {
		return zero, err
	}
	for _, r := range recs {
		if pred(r) {
			return r, nil
		}
	}
	return zero, common.ErrNotFound
}

// Update loads the record, applies patch, re-stamps UpdatedAt and persists.
// Fields the patch does not touch are unchanged.
func (c *Collection[T]) Update(ctx context.Context, id string, patch func(T)) (zero T, err error) {
	start := time.Now()
	defer func() { c.record("update", start, err) }()
	if err = ctx.Err(); err != nil {
		return zero, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	recs, err := c.load()
	if err != nil {
		return zero, err
	}
	for _, r := range recs {
		if r.RecordID() == id {
			patch(r)
			r.TouchUpdated(c.now())
			if err = c.save(recs); err != nil {
				return zero, err
			}
			return r, nil
		}
	}
	return zero, common.ErrNotFound
}

// Delete removes the record with the given ID and reports whether anything
// was removed, so a second delete of the same ID returns false.
func (c *Collection[T]) Delete(ctx context.Context, id string) (bool, error) {
	n, err := c.DeleteWhere(ctx, func(r T) bool { return r.RecordID() == id })
	return n > 0, err
}

// DeleteWhere removes every record matching pred and returns how many were
// removed.
func (c *Collection[T]) DeleteWhere(ctx context.Context, pred func(T) bool) (removed int, err error) {
	start := time.Now()
	defer func() { c.record("delete", start, err) }()
	if err = ctx.Err(); err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	recs, err := c.load()
	if err != nil {
		return 0, err
	}

	kept := make([]T, 0, len(recs))
	for _, r := range recs {
		if pred(r) {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	if removed == 0 {
		return 0, nil
	}
	if err = c.save(kept); err != nil {
		return 0, err
	}
	return removed, nil
}

// Upsert replaces the record matching match, keeping its identity and
// CreatedAt, or creates rec when no record matches.
func (c *Collection[T]) Upsert(ctx context.Context, rec T, match func(T) bool) (err error) {
	start := time.Now()
	defer func() { c.record("upsert", start, err) }()
	if err = ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	recs, err := c.load()
	if err != nil {
		return err
	}
	for i, r := range recs {
		if match(r) {
			rec.SetRecordID(r.RecordID())
			rec.TouchCreated(r.CreatedTime())
			rec.TouchUpdated(c.now())
			recs[i] = rec
			return c.save(recs)
		}
	}

	rec.SetRecordID(c.nextID(recs))
	rec.TouchCreated(c.now())
	return c.save(append(recs, rec))
}
