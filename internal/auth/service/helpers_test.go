package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/greenpepperchocolate/english-phrase/internal/auth/domain"
	"github.com/greenpepperchocolate/english-phrase/internal/auth/store"
	"github.com/greenpepperchocolate/english-phrase/internal/auth/store/drivers/sqlite"
	"github.com/greenpepperchocolate/english-phrase/pkg/cryptox"
	"github.com/greenpepperchocolate/english-phrase/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func createIdentity(t *testing.T, st store.Store, email, password string, anonymous bool) domain.Identity {
	t.Helper()

	hash := cryptox.UnusableCredential()
	if password != "" {
		var err error
		hash, err = cryptox.HashPassword(password)
		require.NoError(t, err)
	}

	now := time.Now().UTC()
	ident := domain.Identity{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: hash,
		Active:       true,
		Anonymous:    anonymous,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, st.Identities().CreateIdentity(context.Background(), ident))
	return ident
}

func createVerificationToken(t *testing.T, st store.Store, identityID string, verified bool, createdAt time.Time) domain.VerificationToken {
	t.Helper()

	vt := domain.VerificationToken{
		ID:         idx.New().String(),
		IdentityID: identityID,
		Value:      cryptox.MustGenerateToken(cryptox.TokenSize128),
		Verified:   verified,
		CreatedAt:  createdAt,
	}
	if verified {
		at := createdAt
		vt.VerifiedAt = &at
	}
	require.NoError(t, st.VerificationTokens().CreateVerificationToken(context.Background(), vt))
	return vt
}

// fakeDispatcher records sends and optionally fails them, so the
// best-effort mail contract is observable.
type fakeDispatcher struct {
	fail bool

	verifications []string // recipient emails
	resets        []string
	contacts      []string // sender identity ids
	lastToken     string
}

func (d *fakeDispatcher) SendVerification(ctx context.Context, to, token string) error {
	if d.fail {
		return errors.New("smtp down")
	}
	d.verifications = append(d.verifications, to)
	d.lastToken = token
	return nil
}

func (d *fakeDispatcher) SendPasswordReset(ctx context.Context, to, token string) error {
	if d.fail {
		return errors.New("smtp down")
	}
	d.resets = append(d.resets, to)
	d.lastToken = token
	return nil
}

func (d *fakeDispatcher) SendContactMessage(ctx context.Context, fromIdentityID, subject, body string) error {
	if d.fail {
		return errors.New("smtp down")
	}
	d.contacts = append(d.contacts, fromIdentityID)
	return nil
}
