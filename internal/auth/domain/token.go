package domain

import "time"

// VerificationLoginWindow is how long an unverified signup token still
// gates login. After this the token can no longer be redeemed and the
// holder must request a fresh one.
const VerificationLoginWindow = 24 * time.Hour

// ResetTokenTTL is fixed at creation; a reset token is dead one hour later
// whether or not it was used.
const ResetTokenTTL = time.Hour

// TokenPair is what the session endpoints return: the short-lived access
// token and the long-lived refresh token, both self-contained JWTs.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // seconds until the access token expires
	Anonymous    bool   `json:"anonymous"`
}

// VerificationToken models the one-per-identity email verification record.
// Once verified it never reverts.
type VerificationToken struct {
	ID         string
	IdentityID string
	Value      string // 128-bit random, unique
	Verified   bool
	VerifiedAt *time.Time // set iff Verified
	CreatedAt  time.Time
}

// ExpiredAt reports whether the token is past its login-gating window
// while still unverified.
func (t VerificationToken) ExpiredAt(now time.Time) bool {
	return !t.Verified && now.Sub(t.CreatedAt) >= VerificationLoginWindow
}

// ResetToken models a password reset record. Many accumulate per identity
// over time but at most one is active at any instant.
type ResetToken struct {
	ID         string
	IdentityID string
	Value      string // 128-bit random, unique
	Used       bool
	UsedAt     *time.Time // set iff Used
	ExpiresAt  time.Time  // CreatedAt + ResetTokenTTL, fixed at creation
	CreatedAt  time.Time
}

// ValidAt reports whether the token can still be redeemed.
func (t ResetToken) ValidAt(now time.Time) bool {
	return !t.Used && now.Before(t.ExpiresAt)
}
