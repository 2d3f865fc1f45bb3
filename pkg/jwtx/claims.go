package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTL constants for the session token pair. These provide
// sensible security defaults but can be overridden per-service via config.
const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	// Short-lived for security - typical range is 15m to 1h.
	DefaultAccessTokenTTL = 30 * time.Minute

	// DefaultRefreshTokenTTL is the default lifetime for refresh tokens.
	// Longer-lived for user convenience - typical range is 7d to 30d.
	DefaultRefreshTokenTTL = 14 * 24 * time.Hour
)

// Token use values carried in the "token_use" claim. A refresh token must
// never be accepted where an access token is expected, and vice versa.
const (
	UseAccess  = "access"
	UseRefresh = "refresh"
)

// Claims are the session-token claims. The subject is the identity's stable
// id; everything else is additive so older tokens keep verifying.
type Claims struct {
	jwt.RegisteredClaims

	// TokenUse distinguishes access from refresh tokens ("access"/"refresh").
	TokenUse string `json:"token_use,omitempty"`

	// Anonymous marks tokens minted for guest identities.
	Anonymous bool `json:"anonymous,omitempty"`
}

// NewSessionClaims builds minimally-correct claims for one token of a pair.
func NewSessionClaims(
	subject, tokenUse string,
	anonymous bool,
	ttl time.Duration,
	issuer string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		TokenUse:  tokenUse,
		Anonymous: anonymous,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim. A future
// revocation list can key off this without changing the signing scheme.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't used
// before it is valid (nbf).
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}

	return nil
}

// ValidateUse checks the token_use claim against the expected value.
func (c *Claims) ValidateUse(expected string) error {
	if c.TokenUse != expected {
		return ErrWrongUse
	}
	return nil
}
