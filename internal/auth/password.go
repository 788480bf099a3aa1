// Package auth implements password hashing and stateless token signing for
// the account layer.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"

	"github.com/salespilots/platform/internal/common"
)

const (
	hashIterations = 120000
	saltLen        = 16
	keyLen         = 32
)

// HashPassword derives a PBKDF2-SHA256 hash with a fresh random salt and
// encodes everything needed to verify it later:
//
//	pbkdf2$<iterations>$sha256$<salt-b64>$<hash-b64>
func HashPassword(password string) string {
	salt := common.GenerateRandByteArray(saltLen)
	key := pbkdf2.Key([]byte(password), salt, hashIterations, keyLen, sha256.New)
	return fmt.Sprintf("pbkdf2$%d$sha256$%s$%s",
		hashIterations,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
}

// VerifyPassword re-derives the key with the parameters stored in encoded
// and compares in constant time. A malformed hash is a verification
// failure, not an internal error.
func VerifyPassword(password, encoded string) bool {
	parts := strings.Split(encoded, "$")
	if len(parts) != 5 || parts[0] != "pbkdf2" || parts[2] != "sha256" {
		return false
	}
	iterations, err := strconv.Atoi(parts[1])
	if err != nil || iterations <= 0 {
		return false
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil {
		return false
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	got := pbkdf2.Key([]byte(password), salt, iterations, len(want), sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}
