package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salespilots/platform/internal/common"
	"github.com/salespilots/platform/internal/models"
)

func TestCollection_RoundTrip(t *testing.T) {
	col := NewCollection[*models.Order]("orders", nil)
	ctx := context.Background()

	o := &models.Order{UserID: "u1", ProductID: "p1", Quantity: 2, AmountPaise: 99800, Status: models.OrderPending}
	require.NoError(t, col.Create(ctx, o))
	require.NotEmpty(t, o.ID)

	got, err := col.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)
	assert.Equal(t, models.OrderPending, got.Status)
	assert.Equal(t, int64(99800), got.AmountPaise)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestCollection_ReturnsCopies(t *testing.T) {
	col := NewCollection[*models.Order]("orders", nil)
	ctx := context.Background()

	o := &models.Order{UserID: "u1", Status: models.OrderPending}
	require.NoError(t, col.Create(ctx, o))

	got, err := col.Get(ctx, o.ID)
	require.NoError(t, err)
	got.Status = models.OrderCancelled

	again, err := col.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, again.Status, "mutating a returned record must not change stored state")
}

func TestCollection_UpdateAndDelete(t *testing.T) {
	col := NewCollection[*models.Order]("orders", nil)
	ctx := context.Background()

	o := &models.Order{UserID: "u1", Status: models.OrderPending, Quantity: 1}
	require.NoError(t, col.Create(ctx, o))

	got, err := col.Update(ctx, o.ID, func(r *models.Order) {
		r.Status = models.OrderPaid
		r.PaymentRef = "UPI-12345"
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderPaid, got.Status)
	assert.Equal(t, 1, got.Quantity)
	assert.True(t, got.UpdatedAt.After(got.CreatedAt) || got.UpdatedAt.Equal(got.CreatedAt))

	removed, err := col.Delete(ctx, o.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = col.Delete(ctx, o.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = col.Get(ctx, o.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestCollection_PanickingPatchLeavesStoredStateIntact(t *testing.T) {
	col := NewCollection[*models.Order]("orders", nil)
	ctx := context.Background()

	o := &models.Order{UserID: "u1", Status: models.OrderPending, Quantity: 1}
	require.NoError(t, col.Create(ctx, o))

	assert.Panics(t, func() {
		_, _ = col.Update(ctx, o.ID, func(r *models.Order) {
			r.Status = models.OrderPaid
			panic("patch failed")
		})
	})

	got, err := col.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, got.Status, "a failed patch must not leak partial mutations")
}

func TestCollection_ConcurrentCreates(t *testing.T) {
	col := NewCollection[*models.Message]("messages", nil)
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			assert.NoError(t, col.Create(ctx, &models.Message{UserID: "u1", Text: "hello"}))
		}()
	}
	wg.Wait()

	all, err := col.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, all, n)
}

func TestBackend_RestartLosesData(t *testing.T) {
	ctx := context.Background()

	b := New(nil)
	require.NoError(t, b.Products().Create(ctx, &models.Product{UserID: "u1", Name: "Saree"}))

	// A fresh backend models a process restart.
	b2 := New(nil)
	recs, err := b2.Products().List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestActivities_ListRecentBreaksTimestampTiesByID(t *testing.T) {
	b := New(nil)
	ctx := context.Background()

	at := time.Now()
	b.activities.col.now = func() time.Time { return at }
	for _, kind := range []string{"first", "second", "third"} {
		require.NoError(t, b.Activities().Append(ctx, &models.Activity{UserID: "u1", Kind: kind}))
	}

	recent, err := b.Activities().ListRecent(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "third", recent[0].Kind)
	assert.Equal(t, "second", recent[1].Kind)
	assert.Equal(t, "first", recent[2].Kind)
}

func TestSessions_TokenLookup(t *testing.T) {
	b := New(nil)
	ctx := context.Background()

	s := &models.Session{UserID: "u1", Token: "tok", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, b.Sessions().Create(ctx, s))

	got, err := b.Sessions().GetByToken(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)

	_, err = b.Sessions().GetByToken(ctx, "other")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
