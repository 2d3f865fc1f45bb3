package service

import (
	"context"
	"testing"
	"time"

	"github.com/greenpepperchocolate/english-phrase/internal/auth/ratelimit"
	"github.com/greenpepperchocolate/english-phrase/internal/auth/store"
	"github.com/stretchr/testify/require"
)

func newAccountService(t *testing.T, st store.Store, mailer *fakeDispatcher) *AccountService {
	t.Helper()
	return &AccountService{
		Store:         st,
		Mail:          mailer,
		Limiter:       ratelimit.NewLimiter(ratelimit.NewMemoryCounter()),
		ContactLimit:  5,
		ContactWindow: time.Hour,
	}
}

func TestDeleteAccount(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newAccountService(t, st, &fakeDispatcher{})

	t.Run("deletion cascades to tokens", func(t *testing.T) {
		ident := createIdentity(t, st, "olga@example.net", "s3cret-pass", false)
		vt := createVerificationToken(t, st, ident.ID, false, time.Now().UTC())

		require.NoError(t, svc.DeleteAccount(ctx, ident.ID))

		_, err := st.Identities().GetIdentityByID(ctx, ident.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = st.VerificationTokens().GetVerificationTokenByValue(ctx, vt.Value)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("anonymous identities are refused", func(t *testing.T) {
		guest := createIdentity(t, st, "anon_devx@example.com", "", true)
		require.ErrorIs(t, svc.DeleteAccount(ctx, guest.ID), ErrAnonymousForbidden)
	})

	t.Run("unknown identity", func(t *testing.T) {
		require.ErrorIs(t, svc.DeleteAccount(ctx, "missing"), ErrIdentityNotFound)
	})
}

func TestContact(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	mailer := &fakeDispatcher{}
	svc := newAccountService(t, st, mailer)

	ident := createIdentity(t, st, "pete@example.net", "s3cret-pass", false)

	t.Run("relays up to the per-identity cap", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			require.NoError(t, svc.Contact(ctx, ident.ID, "feedback", "hello"))
		}
		require.Len(t, mailer.contacts, 5)

		require.ErrorIs(t, svc.Contact(ctx, ident.ID, "feedback", "one more"), ErrRateLimited)
		require.Len(t, mailer.contacts, 5)
	})

	t.Run("anonymous identities are refused", func(t *testing.T) {
		guest := createIdentity(t, st, "anon_devy@example.com", "", true)
		require.ErrorIs(t, svc.Contact(ctx, guest.ID, "s", "b"), ErrAnonymousForbidden)
	})

	t.Run("mail outage still reads as success", func(t *testing.T) {
		broken := newAccountService(t, st, &fakeDispatcher{fail: true})
		other := createIdentity(t, st, "quin@example.net", "s3cret-pass", false)
		require.NoError(t, broken.Contact(ctx, other.ID, "s", "b"))
	})
}
