package mediasign

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNew_RequiresSecret(t *testing.T) {
	_, err := New("")
	require.Error(t, err)
}

func TestNormalizeKey(t *testing.T) {
	require.Equal(t, "videos/abc.mp4", NormalizeKey("/videos/abc.mp4"))
	require.Equal(t, "videos/abc.mp4", NormalizeKey("//videos/abc.mp4"))
	require.Equal(t, "videos/abc.mp4", NormalizeKey("videos/abc.mp4"))
}

func TestSign_Deterministic(t *testing.T) {
	e, err := New("test-secret")
	require.NoError(t, err)

	a := e.Sign("videos/abc.mp4", 1600)
	b := e.Sign("videos/abc.mp4", 1600)
	require.Equal(t, a, b, "identical inputs must yield identical signatures")

	require.NotEqual(t, a, e.Sign("videos/other.mp4", 1600), "different keys must differ")
	require.NotEqual(t, a, e.Sign("videos/abc.mp4", 1601), "different expiries must differ")
}

func TestSign_MatchesRawHMAC(t *testing.T) {
	// Sign at t=1000 with ttl=600 means expires=1600; the digest must equal
	// HMAC("videos/abc.mp4:1600") and must not verify as 1601.
	e, err := New("test-secret")
	require.NoError(t, err)

	mac := hmac.New(sha256.New, []byte("test-secret"))
	mac.Write([]byte("videos/abc.mp4:1600"))
	want := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))

	got := e.Sign("/videos/abc.mp4", 1600)
	require.Equal(t, want, got)
	require.NotEqual(t, want, e.Sign("videos/abc.mp4", 1601))
}

func TestVerify(t *testing.T) {
	e, err := New("test-secret")
	require.NoError(t, err)

	expires := int64(1600)
	sig := e.Sign("videos/abc.mp4", expires)

	t.Run("valid before expiry", func(t *testing.T) {
		now := time.Unix(1599, 0)
		require.NoError(t, e.Verify("videos/abc.mp4", expires, sig, now))
	})

	t.Run("valid at the expiry second", func(t *testing.T) {
		now := time.Unix(1600, 0)
		require.NoError(t, e.Verify("videos/abc.mp4", expires, sig, now))
	})

	t.Run("expired after the window", func(t *testing.T) {
		now := time.Unix(1601, 0)
		require.ErrorIs(t, e.Verify("videos/abc.mp4", expires, sig, now), ErrExpired)
	})

	t.Run("rejects tampered key", func(t *testing.T) {
		now := time.Unix(1500, 0)
		require.ErrorIs(t, e.Verify("videos/else.mp4", expires, sig, now), ErrBadSignature)
	})

	t.Run("rejects tampered expiry", func(t *testing.T) {
		now := time.Unix(1500, 0)
		require.ErrorIs(t, e.Verify("videos/abc.mp4", expires+1, sig, now), ErrBadSignature)
	})

	t.Run("rejects foreign secret", func(t *testing.T) {
		other, err := New("another-secret")
		require.NoError(t, err)
		now := time.Unix(1500, 0)
		require.ErrorIs(t, other.Verify("videos/abc.mp4", expires, sig, now), ErrBadSignature)
	})
}
