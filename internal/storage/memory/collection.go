// Package memory implements the in-memory storage backend: process-lifetime
// collections used when neither the relational service nor a writable data
// directory is available. A restart loses all data.
package memory

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/salespilots/platform/internal/common"
	"github.com/salespilots/platform/internal/metrics"
	"github.com/salespilots/platform/internal/models"
	"github.com/salespilots/platform/internal/storage"
)

// Collection keeps one entity's records in an insertion-ordered slice
// guarded by an RWMutex. Records are deep-copied on the way in and out so
// callers can never alias stored state.
type Collection[T models.Record] struct {
	entity string
	mc     *metrics.Collector

	mu   sync.RWMutex
	recs []T
	now  func() time.Time
}

func NewCollection[T models.Record](entity string, mc *metrics.Collector) *Collection[T] {
	return &Collection[T]{entity: entity, mc: mc, now: time.Now}
}

func (c *Collection[T]) record(op string, start time.Time, err error) {
	c.mc.RecordOp(c.entity, op, "memory", start, err)
}

// clone deep-copies a record through JSON. T is a pointer type, so
// unmarshalling allocates a fresh value.
func clone[T any](rec T) T {
	raw, err := json.Marshal(rec)
	if err != nil {
		panic(err)
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		panic(err)
	}
	return out
}

func (c *Collection[T]) nextIDLocked() string {
	now := c.now()
	for {
		id := storage.EpochID(now)
		taken := false
		for _, r := range c.recs {
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

func (c *Collection[T]) List(ctx context.Context, userID string) (out []T, err error) {
	start := time.Now()
	defer func() { c.record("list", start, err) }()
	if err = ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	out = make([]T, 0, len(c.recs))
	for _, r := range c.recs {
		if userID == "" || r.OwnerID() == userID {
			out = append(out, clone(r))
		}
	}
	return out, nil
}

func (c *Collection[T]) Create(ctx context.Context, rec T) error {
	return c.CreateUnique(ctx, rec, nil)
}

func (c *Collection[T]) CreateUnique(ctx context.Context, rec T, conflict func(existing T) bool) (err error) {
	start := time.Now()
	defer func() { c.record("create", start, err) }()
	if err = ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if conflict != nil {
		for _, r := range c.recs {
			if conflict(r) {
				return common.ErrAlreadyExists
			}
		}
	}

	rec.SetRecordID(c.nextIDLocked())
	rec.TouchCreated(c.now())
	c.recs = append(c.recs, clone(rec))
	return nil
}

func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	return c.FindOne(ctx, func(r T) bool { return r.RecordID() == id })
}

func (c *Collection[T]) FindOne(ctx context.Context, pred func(T) bool) (zero T, err error) {
	start := time.Now()
	defer func() { c.record("get", start, err) }()
	if err = ctx.Err(); err != nil {
		return zero, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, r := range c.recs {
		if pred(r) {
			return clone(r), nil
		}
	}
	return zero, common.ErrNotFound
}

func (c *Collection[T]) Update(ctx context.Context, id string, patch func(T)) (zero T, err error) {
	start := time.Now()
	defer func() { c.record("update", start, err) }()
	if err = ctx.Err(); err != nil {
		return zero, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i, r := range c.recs {
		if r.RecordID() == id {
			// Patch a copy so a panicking patch cannot leave the stored
			// record half mutated.
			next := clone(r)
			patch(next)
			next.TouchUpdated(c.now())
			c.recs[i] = next
			return clone(next), nil
		}
	}
	return zero, common.ErrNotFound
}

func (c *Collection[T]) Delete(ctx context.Context, id string) (bool, error) {
	n, err := c.DeleteWhere(ctx, func(r T) bool { return r.RecordID() == id })
	return n > 0, err
}

func (c *Collection[T]) DeleteWhere(ctx context.Context, pred func(T) bool) (removed int, err error) {
	start := time.Now()
	defer func() { c.record("delete", start, err) }()
	if err = ctx.Err(); err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.recs[:0]
	for _, r := range c.recs {
		if pred(r) {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	c.recs = kept
	return removed, nil
}

func (c *Collection[T]) Upsert(ctx context.Context, rec T, match func(T) bool) (err error) {
	start := time.Now()
	defer func() { c.record("upsert", start, err) }()
	if err = ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i, r := range c.recs {
		if match(r) {
			rec.SetRecordID(r.RecordID())
			rec.TouchCreated(r.CreatedTime())
			rec.TouchUpdated(c.now())
			c.recs[i] = clone(rec)
			return nil
		}
	}

	rec.SetRecordID(c.nextIDLocked())
	rec.TouchCreated(c.now())
	c.recs = append(c.recs, clone(rec))
	return nil
}
