package domain

import "time"

// Identity is an account in the system. Anonymous identities are guests
// provisioned per device; the flag is stored explicitly rather than being
// inferred from the reserved email pattern.
type Identity struct {
	ID           string
	Email        string // unique, compared case-insensitively
	PasswordHash string // argon2 encoded, or an unusable-credential marker
	Active       bool
	Anonymous    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
