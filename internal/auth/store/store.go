package store

import (
	"context"
	"errors"
	"time"

	"github.com/greenpepperchocolate/english-phrase/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for
// now) implement this. Sub-repositories keep concerns tidy and testable.
type Store interface {
	Identities() Identities
	VerificationTokens() VerificationTokens
	ResetTokens() ResetTokens
	MediaObjects() MediaObjects

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// Use it for multi-step operations that must be atomic. The caller
	// MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing when fn returns
	// nil and rolling back otherwise. This is the recommended entry point;
	// the invalidate-then-create reset flow and the confirm flow depend on
	// it for their atomicity.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Identities interface {
	// GetIdentityByID returns an identity by id.
	GetIdentityByID(ctx context.Context, id string) (domain.Identity, error)

	// GetIdentityByEmail looks up by email, case-insensitively.
	GetIdentityByEmail(ctx context.Context, email string) (domain.Identity, error)

	// CreateIdentity inserts a new identity (id is provided by app via ULID).
	// Returns ErrAlreadyExists when the email is taken.
	CreateIdentity(ctx context.Context, ident domain.Identity) error

	// UpdatePasswordHash sets the credential and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, identityID, newHash string) error

	// DeleteIdentity cascades to verification and reset tokens (per schema).
	DeleteIdentity(ctx context.Context, identityID string) error
}

type VerificationTokens interface {
	// CreateVerificationToken stores the one token an identity gets at signup.
	// Returns ErrAlreadyExists if the identity already has one.
	CreateVerificationToken(ctx context.Context, t domain.VerificationToken) error

	// GetVerificationTokenByValue returns a token by its opaque value.
	GetVerificationTokenByValue(ctx context.Context, value string) (domain.VerificationToken, error)

	// GetVerificationTokenByIdentity returns the identity's token, if any.
	GetVerificationTokenByIdentity(ctx context.Context, identityID string) (domain.VerificationToken, error)

	// MarkVerified flips verified=1 and sets verified_at. No-op guard is the
	// caller's job; the statement itself only touches unverified rows.
	MarkVerified(ctx context.Context, id string, verifiedAt time.Time) error

	// DeleteExpiredUnverified removes unverified tokens older than the
	// login-gating window (housekeeping; the owning identities stay).
	DeleteExpiredUnverified(ctx context.Context, olderThan time.Time) error
}

type ResetTokens interface {
	// CreateResetToken stores a freshly minted reset token.
	CreateResetToken(ctx context.Context, t domain.ResetToken) error

	// GetResetTokenByValue returns the token by its opaque value.
	GetResetTokenByValue(ctx context.Context, value string) (domain.ResetToken, error)

	// MarkUsed flips used=1 and sets used_at.
	MarkUsed(ctx context.Context, id string, usedAt time.Time) error

	// InvalidateOutstanding marks every unused token for the identity as
	// used. Run inside the same transaction as the following create so two
	// racing requests cannot both end up with an active token.
	InvalidateOutstanding(ctx context.Context, identityID string, usedAt time.Time) error

	// DeleteExpired removes tokens past their expiry (housekeeping).
	DeleteExpired(ctx context.Context, olderThan time.Time) error
}

type MediaObjects interface {
	// GetMediaObjectByID resolves a public media id to its catalog entry.
	GetMediaObjectByID(ctx context.Context, id string) (domain.MediaObject, error)

	// CreateMediaObject inserts a catalog entry (admin/import path).
	CreateMediaObject(ctx context.Context, m domain.MediaObject) error
}
