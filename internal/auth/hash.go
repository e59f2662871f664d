// Package auth provides password hashing and token issuance/verification.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashPassword computes the lowercase hex SHA-256 digest of password+salt.
// Pure and deterministic: the same (password, salt) pair always yields the
// same 64-character digest, which is what gets stored and compared at login.
//
// This is intentionally a plain digest, not an iterated key derivation —
// the stored credential format is part of the API's compatibility contract.
func HashPassword(password, salt string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return hex.EncodeToString(sum[:])
}

// VerifyPassword reports whether the password hashes to the stored digest.
// Comparison is constant-time.
func VerifyPassword(digest, password, salt string) bool {
	computed := HashPassword(password, salt)
	return subtle.ConstantTimeCompare([]byte(digest), []byte(computed)) == 1
}
