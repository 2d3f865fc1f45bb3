package service

import (
	"context"
	"testing"

	"github.com/greenpepperchocolate/english-phrase/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestAnonymousBootstrap(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &AnonymousService{Store: st}

	t.Run("same device id maps to the same identity", func(t *testing.T) {
		first, err := svc.Bootstrap(ctx, "device-123")
		require.NoError(t, err)
		require.True(t, first.Anonymous)
		require.Equal(t, "anon_device-123@example.com", first.Email)

		second, err := svc.Bootstrap(ctx, "device-123")
		require.NoError(t, err)
		require.Equal(t, first.ID, second.ID)
	})

	t.Run("guest credential is unusable for password login", func(t *testing.T) {
		ident, err := svc.Bootstrap(ctx, "device-456")
		require.NoError(t, err)
		require.True(t, cryptox.IsUnusableCredential(ident.PasswordHash))
		require.Error(t, cryptox.VerifyPassword("", ident.PasswordHash))
	})

	t.Run("missing device id mints a fresh identity each time", func(t *testing.T) {
		a, err := svc.Bootstrap(ctx, "")
		require.NoError(t, err)
		b, err := svc.Bootstrap(ctx, "")
		require.NoError(t, err)
		require.NotEqual(t, a.ID, b.ID)
	})
}
