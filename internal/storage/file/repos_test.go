package file

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salespilots/platform/internal/common"
	"github.com/salespilots/platform/internal/models"
)

func newBackend(t *testing.T) *Backend {
	t.Helper()
	b, err := New(t.TempDir(), nil)
	require.NoError(t, err)
	return b
}

func TestAuthUsers_EmailUniqueCaseInsensitive(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()

	u := &models.AuthUser{Email: "seller@shop.in", Role: models.RoleUser}
	require.NoError(t, b.AuthUsers().Create(ctx, u))

	dup := &models.AuthUser{Email: "Seller@Shop.IN", Role: models.RoleUser}
	err := b.AuthUsers().Create(ctx, dup)
	assert.ErrorIs(t, err, common.ErrAlreadyExists)

	got, err := b.AuthUsers().GetByEmail(ctx, "SELLER@shop.in")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestSessions_DeleteExpired(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()
	now := time.Now()

	live := &models.Session{UserID: "u1", Token: "tok-live", ExpiresAt: now.Add(time.Hour)}
	dead := &models.Session{UserID: "u1", Token: "tok-dead", ExpiresAt: now.Add(-time.Hour)}
	require.NoError(t, b.Sessions().Create(ctx, live))
	require.NoError(t, b.Sessions().Create(ctx, dead))

	n, err := b.Sessions().DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = b.Sessions().GetByToken(ctx, "tok-dead")
	assert.ErrorIs(t, err, common.ErrNotFound)

	got, err := b.Sessions().GetByToken(ctx, "tok-live")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)

	removed, err := b.Sessions().DeleteByToken(ctx, "tok-live")
	require.NoError(t, err)
	assert.True(t, removed)
}

func TestProfiles_OnePerAuthUser(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()

	p := &models.Profile{AuthUserID: "au1", BusinessName: "Meera Sarees", Plan: models.PlanStarter}
	require.NoError(t, b.Profiles().Create(ctx, p))

	err := b.Profiles().Create(ctx, &models.Profile{AuthUserID: "au1", BusinessName: "Other"})
	assert.ErrorIs(t, err, common.ErrAlreadyExists)

	got, err := b.Profiles().GetByAuthUser(ctx, "au1")
	require.NoError(t, err)
	assert.Equal(t, "Meera Sarees", got.BusinessName)
}

func TestKeyed_GetThenUpsert(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()

	_, err := b.Settings().GetByUser(ctx, "u1")
	assert.ErrorIs(t, err, common.ErrNotFound)

	require.NoError(t, b.Settings().Upsert(ctx, &models.Settings{UserID: "u1", AutoReply: true, UPIID: "meera@upi"}))
	require.NoError(t, b.Settings().Upsert(ctx, &models.Settings{UserID: "u1", AutoReply: false, UPIID: "meera@upi"}))

	got, err := b.Settings().GetByUser(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, got.AutoReply)
	assert.Equal(t, "meera@upi", got.UPIID)
}

func TestActivities_ListRecentNewestFirst(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()

	base := time.Now()
	for i, kind := range []string{"order_created", "payment_verified", "order_shipped"} {
		at := base.Add(time.Duration(i) * time.Minute)
		b.activities.col.now = func() time.Time { return at }
		require.NoError(t, b.Activities().Append(ctx, &models.Activity{UserID: "u1", Kind: kind}))
	}

	recent, err := b.Activities().ListRecent(ctx, "u1", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "order_shipped", recent[0].Kind)
	assert.Equal(t, "payment_verified", recent[1].Kind)
}

func TestActivities_ListRecentBreaksTimestampTiesByID(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()

	// A fixed clock gives every append the same CreatedAt; identity still
	// differs because ID assignment bumps the millisecond on collision.
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
