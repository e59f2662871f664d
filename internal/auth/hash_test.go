package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword_Deterministic(t *testing.T) {
	a := HashPassword("password123", "salt")
	b := HashPassword("password123", "salt")
	assert.Equal(t, a, b, "same password and salt must yield the same digest")
}

func TestHashPassword_Format(t *testing.T) {
	digest := HashPassword("password123", "salt")

	// 32-byte SHA-256 digest hex-encoded is 64 lowercase characters.
	assert.Len(t, digest, 64)
	for _, c := range digest {
		assert.True(t, (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f'),
			"digest must be lowercase hex, got %c", c)
	}
}

func TestHashPassword_SaltChangesDigest(t *testing.T) {
	a := HashPassword("password123", "salt-a")
	b := HashPassword("password123", "salt-b")
	assert.NotEqual(t, a, b, "different salts must yield different digests")
}

func TestHashPassword_PasswordChangesDigest(t *testing.T) {
	a := HashPassword("password123", "salt")
	b := HashPassword("password124", "salt")
	assert.NotEqual(t, a, b)
}

func TestHashPassword_KnownVector(t *testing.T) {
	// SHA-256("abc") — a classic test vector, salt folded into the input.
	digest := HashPassword("ab", "c")
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", digest)
}

func TestVerifyPassword(t *testing.T) {
	digest := HashPassword("secret99", "salt")

	assert.True(t, VerifyPassword(digest, "secret99", "salt"))
	assert.False(t, VerifyPassword(digest, "secret99", "other-salt"))
	assert.False(t, VerifyPassword(digest, "wrong", "salt"))
}
