package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salespilots/platform/internal/common"
	"github.com/salespilots/platform/internal/models"
)

func newProducts(t *testing.T) *Collection[*models.Product] {
	t.Helper()
	return NewCollection[*models.Product](t.TempDir(), "products", nil)
}

func TestCollection_CreateAssignsIdentity(t *testing.T) {
	col := newProducts(t)
	ctx := context.Background()

	p := &models.Product{UserID: "u1", Name: "Kurti", PricePaise: 49900}
	require.NoError(t, col.Create(ctx, p))

	assert.NotEmpty(t, p.ID)
	assert.False(t, p.CreatedAt.IsZero())
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)

	got, err := col.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kurti", got.Name)
	assert.Equal(t, int64(49900), got.PricePaise)
	assert.Equal(t, p.ID, got.ID)
}

func TestCollection_ReadMissingFileIsEmpty(t *testing.T) {
	col := newProducts(t)

	recs, err := col.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestCollection_CorruptFileIsAnError(t *testing.T) {
	dir := t.TempDir()
	col := NewCollection[*models.Product](dir, "products", nil)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "products.json"), []byte("{not json"), 0o660))

	_, err := col.List(context.Background(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrCorruptData)
}

func TestCollection_ListFiltersByOwner(t *testing.T) {
	col := newProducts(t)
	ctx := context.Background()

	require.NoError(t, col.Create(ctx, &models.Product{UserID: "u1", Name: "Saree"}))
	require.NoError(t, col.Create(ctx, &models.Product{UserID: "u2", Name: "Jhumka"}))
	require.NoError(t, col.Create(ctx, &models.Product{UserID: "u1", Name: "Dupatta"}))

	owned, err := col.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, owned, 2)

	all, err := col.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestCollection_UpdatePatchesOnlyTouchedFields(t *testing.T) {
	col := newProducts(t)
	ctx := context.Background()

	p := &models.Product{UserID: "u1", Name: "Saree", Description: "Silk", PricePaise: 250000, Stock: 4}
	require.NoError(t, col.Create(ctx, p))

	created := p.CreatedAt
	col.now = func() time.Time { return created.Add(time.Hour) }

	got, err := col.Update(ctx, p.ID, func(r *models.Product) {
		r.Stock = 3
	})
	require.NoError(t, err)

	assert.Equal(t, 3, got.Stock)
	assert.Equal(t, "Saree", got.Name)
	assert.Equal(t, "Silk", got.Description)
	assert.Equal(t, int64(250000), got.PricePaise)
	assert.Equal(t, created, got.CreatedAt)
	assert.True(t, got.UpdatedAt.After(created))
}

func TestCollection_UpdateMissingRecord(t *testing.T) {
	col := newProducts(t)

	_, err := col.Update(context.Background(), "nope", func(r *models.Product) {})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestCollection_DeleteIsIdempotent(t *testing.T) {
	col := newProducts(t)
	ctx := context.Background()

	p := &models.Product{UserID: "u1", Name: "Saree"}
	require.NoError(t, col.Create(ctx, p))

	removed, err := col.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = col.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = col.Get(ctx, p.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

// Concurrent creates must all survive: the per-collection lock serializes
// the read-modify-write cycle that used to lose records under concurrency.
func TestCollection_ConcurrentCreatesAllSurvive(t *testing.T) {
	col := newProducts(t)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			assert.NoError(t, col.Create(ctx, &models.Product{UserID: "u1", Name: "item"}))
		}()
	}
	wg.Wait()

	recs, err := col.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, recs, n)

	// Every record got a distinct ID despite identical creation times.
	ids := make(map[string]bool, n)
	for _, r := range recs {
		ids[r.ID] = true
	}
	assert.Len(t, ids, n)
}

func TestCollection_FileLayoutIsPrettyPrintedArray(t *testing.T) {
	dir := t.TempDir()
	col := NewCollection[*models.Product](dir, "products", nil)
	require.NoError(t, col.Create(context.Background(), &models.Product{UserID: "u1", Name: "Saree"}))

	raw, err := os.ReadFile(filepath.Join(dir, "products.json"))
	require.NoError(t, err)

	body := string(raw)
	assert.True(t, strings.HasPrefix(body, "["), "expected a top-level array")
	assert.Contains(t, body, "\n  ", "expected indented output")
	assert.Contains(t, body, `"userId": "u1"`)
}

func TestCollection_UpsertReplacesKeepingIdentity(t *testing.T) {
	col := NewCollection[*models.Settings](t.TempDir(), "settings", nil)
	ctx := context.Background()

	first := &models.Settings{UserID: "u1", AutoReply: true, ReplyLanguage: "hi"}
	require.NoError(t, col.Upsert(ctx, first, func(s *models.Settings) bool { return s.UserID == "u1" }))
	require.NotEmpty(t, first.ID)

	second := &models.Settings{UserID: "u1", AutoReply: false, ReplyLanguage: "en"}
	require.NoError(t, col.Upsert(ctx, second, func(s *models.Settings) bool { return s.UserID == "u1" }))

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)

	all, err := col.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "en", all[0].ReplyLanguage)
}
