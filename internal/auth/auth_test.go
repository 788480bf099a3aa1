package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salespilots/platform/internal/common"
)

func TestHashPassword_FormatAndUniqueness(t *testing.T) {
	h1 := HashPassword("s3cret-password")
	h2 := HashPassword("s3cret-password")

	parts := strings.Split(h1, "$")
	require.Len(t, parts, 5)
	assert.Equal(t, "pbkdf2", parts[0])
	assert.Equal(t, "120000", parts[1])
	assert.Equal(t, "sha256", parts[2])

	// Fresh salt per call, so equal passwords never share a hash.
	assert.NotEqual(t, h1, h2)
}

func TestVerifyPassword(t *testing.T) {
	h := HashPassword("correct horse")

	assert.True(t, VerifyPassword("correct horse", h))
	assert.False(t, VerifyPassword("wrong horse", h))
	assert.False(t, VerifyPassword("correct horse", "not-a-hash"))
	assert.False(t, VerifyPassword("correct horse", "pbkdf2$zero$sha256$AA$AA"))
	assert.False(t, VerifyPassword("correct horse", ""))
}

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("0123456789abcdef0123456789abcdef")
	now := time.Now()

	tok, err := SignToken("u-1", secret, time.Hour, now)
	require.NoError(t, err)

	uid, err := ParseToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, "u-1", uid)
}

func TestParseToken_Expired(t *testing.T) {
	secret := []byte("0123456789abcdef0123456789abcdef")

	tok, err := SignToken("u-1", secret, time.Hour, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = ParseToken(tok, secret)
	assert.True(t, errors.Is(err, common.ErrTokenExpired), "got %v", err)
}

func TestParseToken_WrongSecret(t *testing.T) {
	tok, err := SignToken("u-1", []byte("0123456789abcdef0123456789abcdef"), time.Hour, time.Now())
	require.NoError(t, err)

	_, err = ParseToken(tok, []byte("another-secret-another-secret-00"))
	assert.True(t, errors.Is(err, common.ErrInvalidToken), "got %v", err)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken("definitely.not.ajwt", []byte("0123456789abcdef0123456789abcdef"))
	assert.True(t, errors.Is(err, common.ErrInvalidToken), "got %v", err)
}
