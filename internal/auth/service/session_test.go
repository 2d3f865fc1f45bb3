package service

import (
	"context"
	"testing"
	"time"

	"github.com/greenpepperchocolate/english-phrase/internal/auth/store"
	"github.com/greenpepperchocolate/english-phrase/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newSessionService(t *testing.T, st store.Store) *SessionService {
	t.Helper()

	signer, err := jwtx.NewHS256("test-secret", "english-phrase-test")
	require.NoError(t, err)

	return &SessionService{
		Signer:     signer,
		Store:      st,
		Issuer:     "english-phrase-test",
		AccessTTL:  30 * time.Minute,
		RefreshTTL: 14 * 24 * time.Hour,
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newSessionService(t, st)

	verified := createIdentity(t, st, "alice@example.net", "s3cret-pass", false)
	createVerificationToken(t, st, verified.ID, true, time.Now().UTC())

	t.Run("verified identity gets a token pair", func(t *testing.T) {
		pair, err := svc.Login(ctx, "alice@example.net", "s3cret-pass")
		require.NoError(t, err)
		require.NotEmpty(t, pair.AccessToken)
		require.NotEmpty(t, pair.RefreshToken)
		require.Equal(t, int64(1800), pair.ExpiresIn)
		require.False(t, pair.Anonymous)

		claims, err := svc.Signer.Verify(pair.AccessToken)
		require.NoError(t, err)
		require.Equal(t, verified.ID, claims.Subject)
		require.Equal(t, jwtx.UseAccess, claims.TokenUse)
	})

	t.Run("email lookup is case-insensitive", func(t *testing.T) {
		_, err := svc.Login(ctx, "ALICE@Example.NET", "s3cret-pass")
		require.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice@example.net", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.net", "s3cret-pass")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("pending verification blocks login", func(t *testing.T) {
		pending := createIdentity(t, st, "bob@example.net", "s3cret-pass", false)
		createVerificationToken(t, st, pending.ID, false, time.Now().UTC())

		_, err := svc.Login(ctx, "bob@example.net", "s3cret-pass")
		require.ErrorIs(t, err, ErrNotVerified)
	})

	t.Run("tokenless legacy identity is implicitly verified", func(t *testing.T) {
		createIdentity(t, st, "legacy@example.net", "s3cret-pass", false)

		pair, err := svc.Login(ctx, "legacy@example.net", "s3cret-pass")
		require.NoError(t, err)
		require.NotEmpty(t, pair.AccessToken)
	})

	t.Run("expired pending token no longer gates login", func(t *testing.T) {
		stale := createIdentity(t, st, "stale@example.net", "s3cret-pass", false)
		createVerificationToken(t, st, stale.ID, false, time.Now().UTC().Add(-25*time.Hour))

		_, err := svc.Login(ctx, "stale@example.net", "s3cret-pass")
		require.NoError(t, err)
	})
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newSessionService(t, st)

	ident := createIdentity(t, st, "carol@example.net", "s3cret-pass", false)
	pair, err := svc.Issue(ctx, ident)
	require.NoError(t, err)

	t.Run("valid refresh token mints a fresh pair", func(t *testing.T) {
		next, err := svc.Refresh(ctx, pair.RefreshToken)
		require.NoError(t, err)
		require.NotEmpty(t, next.AccessToken)
		require.NotEmpty(t, next.RefreshToken)
		require.Equal(t, pair.Anonymous, next.Anonymous)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		_, err := svc.Refresh(ctx, pair.AccessToken)
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})

	t.Run("garbage is an authentication failure", func(t *testing.T) {
		_, err := svc.Refresh(ctx, "not-a-jwt")
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})

	t.Run("expired refresh token", func(t *testing.T) {
		stale, err := svc.Signer.Sign(jwtx.NewSessionClaims(
			ident.ID, jwtx.UseRefresh, false, -time.Minute, svc.Issuer, time.Now().Add(-time.Hour)))
		require.NoError(t, err)

		_, err = svc.Refresh(ctx, stale)
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})

	t.Run("refresh for a deleted identity fails", func(t *testing.T) {
		gone := createIdentity(t, st, "gone@example.net", "s3cret-pass", false)
		gonePair, err := svc.Issue(ctx, gone)
		require.NoError(t, err)

		require.NoError(t, st.Identities().DeleteIdentity(ctx, gone.ID))

		_, err = svc.Refresh(ctx, gonePair.RefreshToken)
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})
}
