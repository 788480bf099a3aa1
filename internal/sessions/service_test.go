package sessions

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salespilots/platform/internal/common"
	"github.com/salespilots/platform/internal/logging"
	"github.com/salespilots/platform/internal/storage/memory"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newPersistedService(t *testing.T) *Service {
	t.Helper()
	be := memory.New(nil)
	return New(be.Sessions(), "", time.Hour, logging.NewJSON(io.Discard))
}

func TestIssueResolve_Persisted(t *testing.T) {
	s := newPersistedService(t)
	ctx := context.Background()

	token, err := s.Issue(ctx, "u-1")
	require.NoError(t, err)
	assert.Len(t, token, 64, "opaque tokens are 32 random bytes hex encoded")

	uid, err := s.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", uid)
}

func TestResolve_UnknownToken(t *testing.T) {
	s := newPersistedService(t)

	_, err := s.Resolve(context.Background(), "deadbeef")
	assert.True(t, errors.Is(err, common.ErrInvalidToken), "got %v", err)

	_, err = s.Resolve(context.Background(), "")
	assert.True(t, errors.Is(err, common.ErrInvalidToken), "got %v", err)
}

func TestResolve_ExpiredPersisted(t *testing.T) {
	s := newPersistedService(t)
	ctx := context.Background()

	token, err := s.Issue(ctx, "u-1")
	require.NoError(t, err)

	s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = s.Resolve(ctx, token)
	assert.True(t, errors.Is(err, common.ErrTokenExpired), "got %v", err)
}

func TestRevoke_Persisted(t *testing.T) {
	s := newPersistedService(t)
	ctx := context.Background()

	token, err := s.Issue(ctx, "u-1")
	require.NoError(t, err)
	require.NoError(t, s.Revoke(ctx, token))

	_, err = s.Resolve(ctx, token)
	assert.True(t, errors.Is(err, common.ErrInvalidToken), "got %v", err)
}

func TestPurgeExpired_Persisted(t *testing.T) {
	s := newPersistedService(t)
	ctx := context.Background()

	_, err := s.Issue(ctx, "u-1")
	require.NoError(t, err)
	live, err := s.Issue(ctx, "u-2")
	require.NoError(t, err)

	// Move only the first session past expiry by shortening its window
	// through a later clock, then restore for the live check.
	s.now = func() time.Time { return time.Now().Add(30 * time.Minute) }
	n, err := s.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "nothing expired yet")

	s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	n, err = s.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	s.now = time.Now
	_, err = s.Resolve(ctx, live)
	assert.Error(t, err, "purged session no longer resolves")
}

func TestStateless_RoundTrip(t *testing.T) {
	s := New(nil, testSecret, time.Hour, logging.NewJSON(io.Discard))
	ctx := context.Background()

	token, err := s.Issue(ctx, "u-1")
	require.NoError(t, err)

	uid, err := s.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", uid)
}

func TestStateless_TokensNotInterchangeable(t *testing.T) {
	persisted := newPersistedService(t)
	stateless := New(nil, testSecret, time.Hour, logging.NewJSON(io.Discard))
	ctx := context.Background()

	opaque, err := persisted.Issue(ctx, "u-1")
	require.NoError(t, err)
	_, err = stateless.Resolve(ctx, opaque)
	assert.True(t, errors.Is(err, common.ErrInvalidToken), "got %v", err)
}

func TestStateless_RevokeRejected(t *testing.T) {
	s := New(nil, testSecret, time.Hour, logging.NewJSON(io.Discard))

	err := s.Revoke(context.Background(), "any")
	assert.True(t, errors.Is(err, common.ErrValidation), "got %v", err)

	n, err := s.PurgeExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
