package auth

import (
	"encoding/hex"
	"encoding/json/v2"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"

	"github.com/todolistapp/todolist-server/internal/domain"
	"github.com/todolistapp/todolist-server/internal/id"
)

const (
	// PASETO v4 symmetric key requirements.
	keyBytesSize = 32 // 256 bits
	keyHexSize   = 64 // 32 bytes as hex string

	// TokenDuration is the fixed lifetime of an issued user token.
	TokenDuration = 24 * time.Hour
)

// TokenService handles PASETO token generation and verification.
// The token is opaque to callers; its only contract is that VerifyToken
// can invert it server-side iff the signature and expiry are valid.
type TokenService struct {
	symmetricKey paseto.V4SymmetricKey
	issuer       string
}

// NewTokenService creates a new token service with the given signing key and issuer.
func NewTokenService(keyHex, issuer string) (*TokenService, error) {
	if len(keyHex) != keyHexSize {
		return nil, fmt.Errorf("PASETO v4 key must be exactly %d hex characters (%d bytes), got %d", keyHexSize, keyBytesSize, len(keyHex))
	}

	keyBytes, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid hex string for PASETO key: %w", err)
	}

	key, err := paseto.V4SymmetricKeyFromBytes(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to create PASETO symmetric key: %w", err)
	}

	return &TokenService{
		symmetricKey: key,
		issuer:       issuer,
	}, nil
}

// GenerateUserToken creates a signed, time-limited identity token for the user.
// Subject carries the user ID; issuer and audience are both the configured
// issuer string; expiry is TokenDuration from now.
func (s *TokenService) GenerateUserToken(user *domain.User) (string, error) {
	now := time.Now()

	token := paseto.NewToken()
	token.SetIssuer(s.issuer)
	token.SetSubject(user.ID)
	token.SetAudience(s.issuer)
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(TokenDuration))

	tokenID, err := id.Generate("token")
	if err != nil {
		return "", fmt.Errorf("generate token ID: %w", err)
	}
	token.SetJti(tokenID)

	return token.V4Encrypt(s.symmetricKey, nil), nil
}

// VerifyToken verifies and parses a PASETO user token.
// Returns the claims if valid, or an error if they're invalid or expired.
func (s *TokenService) VerifyToken(tokenString string) (*Claims, error) {
	parser := paseto.NewParser()
	parser.AddRule(paseto.ForAudience(s.issuer))
	parser.AddRule(paseto.IssuedBy(s.issuer))
	parser.AddRule(paseto.NotExpired())
	parser.AddRule(paseto.ValidAt(time.Now()))

	token, err := parser.ParseV4Local(s.symmetricKey, tokenString, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	var claims Claims
	if err := json.Unmarshal(token.ClaimsJSON(), &claims); err != nil {
		return nil, fmt.Errorf("parse claims: %w", err)
	}

	return &claims, nil
}
