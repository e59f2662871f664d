package auth

import (
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todolistapp/todolist-server/internal/domain"
)

const testKeyHex = "707172737475767778797a7b7c7d7e7f808182838485868788898a8b8c8d8e8f"

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	svc, err := NewTokenService(testKeyHex, "todolist-server")
	require.NoError(t, err)
	return svc
}

func TestNewTokenService_RejectsBadKeys(t *testing.T) {
	_, err := NewTokenService("deadbeef", "issuer")
	assert.Error(t, err, "short key must be rejected")

	_, err = NewTokenService(strings.Repeat("zz", 32), "issuer")
	assert.Error(t, err, "non-hex key must be rejected")
}

func TestGenerateAndVerifyToken(t *testing.T) {
	svc := newTestTokenService(t)
	user := &domain.User{ID: "user-abc123", Username: "alice"}

	token, err := svc.GenerateUserToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user-abc123", claims.UserID())
	assert.Equal(t, "todolist-server", claims.Issuer)
	assert.Equal(t, "todolist-server", claims.Audience)
	assert.NotEmpty(t, claims.TokenID)

	// Expiry is 24 hours from issuance.
	assert.WithinDuration(t, claims.IssuedAt.Add(TokenDuration), claims.Expiration, time.Second)
}

func TestVerifyToken_RejectsTampered(t *testing.T) {
	svc := newTestTokenService(t)
	token, err := svc.GenerateUserToken(&domain.User{ID: "user-abc123"})
	require.NoError(t, err)

	// Flip a character in the ciphertext.
	tampered := []byte(token)
	mid := len(tampered) / 2
	if tampered[mid] == 'a' {
		tampered[mid] = 'b'
	} else {
		tampered[mid] = 'a'
	}

	_, err = svc.VerifyToken(string(tampered))
	assert.Error(t, err)
}

func TestVerifyToken_RejectsWrongKey(t *testing.T) {
	svc := newTestTokenService(t)
	token, err := svc.GenerateUserToken(&domain.User{ID: "user-abc123"})
	require.NoError(t, err)

	otherKey := strings.Repeat("00", 32)
	other, err := NewTokenService(otherKey, "todolist-server")
	require.NoError(t, err)

	_, err = other.VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyToken_RejectsWrongIssuer(t *testing.T) {
	svc := newTestTokenService(t)
	token, err := svc.GenerateUserToken(&domain.User{ID: "user-abc123"})
	require.NoError(t, err)

	other, err := NewTokenService(testKeyHex, "someone-else")
	require.NoError(t, err)

	_, err = other.VerifyToken(token)
	assert.Error(t, err, "issuer/audience mismatch must fail verification")
}

func TestLoadOrGenerateKey_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	first, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	require.Len(t, first, 64)
	_, err = hex.DecodeString(first)
	require.NoError(t, err)

	// Second load returns the persisted key, not a fresh one.
	second, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
