package auth

import (
	"time"
)

// Claims represents the claims stored in a PASETO user token.
// These are encrypted in v4.local tokens, so they're not readable without the key.
type Claims struct {
	// Standard PASETO claims. Subject carries the user ID; Issuer and
	// Audience are both set to the configured issuer string.
	Issuer     string    `json:"iss"`
	Subject    string    `json:"sub"`
	Audience   string    `json:"aud"`
	Expiration time.Time `json:"exp"`
	NotBefore  time.Time `json:"nbf"`
	IssuedAt   time.Time `json:"iat"`
	TokenID    string    `json:"jti"`
}

// UserID returns the user identifier asserted by the token's subject claim,
// or the empty string if the token carried none. The empty string is the
// "no identity" sentinel used throughout the handlers.
func (c *Claims) UserID() string {
	return c.Subject
}
