package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &VerificationService{Store: st}

	t.Run("pending token verifies once", func(t *testing.T) {
		ident := createIdentity(t, st, "gail@example.net", "s3cret-pass", false)
		vt := createVerificationToken(t, st, ident.ID, false, time.Now().UTC())

		already, err := svc.Verify(ctx, vt.Value)
		require.NoError(t, err)
		require.False(t, already)

		got, err := st.VerificationTokens().GetVerificationTokenByIdentity(ctx, ident.ID)
		require.NoError(t, err)
		require.True(t, got.Verified)
		require.NotNil(t, got.VerifiedAt)
	})

	t.Run("second redemption reports already verified", func(t *testing.T) {
		ident := createIdentity(t, st, "hank@example.net", "s3cret-pass", false)
		vt := createVerificationToken(t, st, ident.ID, false, time.Now().UTC())

		_, err := svc.Verify(ctx, vt.Value)
		require.NoError(t, err)

		already, err := svc.Verify(ctx, vt.Value)
		require.NoError(t, err)
		require.True(t, already)
	})

	t.Run("unknown value is invalid", func(t *testing.T) {
		_, err := svc.Verify(ctx, "no-such-token")
		require.ErrorIs(t, err, ErrVerificationInvalid)
	})

	t.Run("expired pending token refuses without re-issuing", func(t *testing.T) {
		ident := createIdentity(t, st, "iris@example.net", "s3cret-pass", false)
		vt := createVerificationToken(t, st, ident.ID, false, time.Now().UTC().Add(-24*time.Hour-time.Second))

		_, err := svc.Verify(ctx, vt.Value)
		require.ErrorIs(t, err, ErrVerificationExpired)

		// Still unverified, same single token.
		got, err := st.VerificationTokens().GetVerificationTokenByIdentity(ctx, ident.ID)
		require.NoError(t, err)
		require.False(t, got.Verified)
		require.Equal(t, vt.Value, got.Value)
	})
}
