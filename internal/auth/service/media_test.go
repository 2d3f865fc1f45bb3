package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/greenpepperchocolate/english-phrase/internal/auth/domain"
	"github.com/greenpepperchocolate/english-phrase/pkg/idx"
	"github.com/greenpepperchocolate/english-phrase/pkg/mediasign"
	"github.com/stretchr/testify/require"
)

func newMediaService(t *testing.T, signing bool) *MediaService {
	t.Helper()

	svc := &MediaService{
		Store:       newTestStore(t),
		AccessKeyID: "AKTEST",
		PublicBase:  "https://media.example.com/",
		LocalBase:   "http://localhost:8000/media/",
		DefaultTTL:  15 * time.Minute,
	}
	if signing {
		engine, err := mediasign.New("media-secret")
		require.NoError(t, err)
		svc.Engine = engine
	}
	return svc
}

func TestBuildMediaURL(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	t.Run("no engine degrades to local static hosting", func(t *testing.T) {
		svc := newMediaService(t, false)
		got := svc.BuildMediaURL("/videos/abc.mp4", true, time.Hour, now)
		require.Equal(t, "http://localhost:8000/media/videos/abc.mp4", got)
	})

	t.Run("unsigned key gets a bare public URL", func(t *testing.T) {
		svc := newMediaService(t, true)
		got := svc.BuildMediaURL("thumbs/abc.jpg", false, time.Hour, now)
		require.Equal(t, "https://media.example.com/thumbs/abc.jpg", got)
	})

	t.Run("signed key carries a verifiable expiring signature", func(t *testing.T) {
		svc := newMediaService(t, true)
		got := svc.BuildMediaURL("/videos/abc.mp4", true, time.Hour, now)

		parsed, err := url.Parse(got)
		require.NoError(t, err)
		require.Equal(t, "/videos/abc.mp4", parsed.Path)

		q := parsed.Query()
		require.Equal(t, "AKTEST", q.Get("Key-Pair-Id"))

		expires, err := strconv.ParseInt(q.Get("Expires"), 10, 64)
		require.NoError(t, err)
		require.Equal(t, now.Add(time.Hour).Unix(), expires)

		require.NoError(t, svc.Engine.Verify("videos/abc.mp4", expires, q.Get("Signature"), now))
	})

	t.Run("zero ttl falls back to the default", func(t *testing.T) {
		svc := newMediaService(t, true)
		got := svc.BuildMediaURL("videos/abc.mp4", true, 0, now)

		parsed, err := url.Parse(got)
		require.NoError(t, err)
		require.Equal(t,
			fmt.Sprint(now.Add(15*time.Minute).Unix()),
			parsed.Query().Get("Expires"))
	})
}

func TestSignedURLForObject(t *testing.T) {
	ctx := context.Background()
	svc := newMediaService(t, true)

	signed := domain.MediaObject{
		ID:        idx.New().String(),
		Key:       "videos/lesson-1.mp4",
		Kind:      domain.MediaKindVideo,
		Signed:    true,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, svc.Store.MediaObjects().CreateMediaObject(ctx, signed))

	public := domain.MediaObject{
		ID:        idx.New().String(),
		Key:       "thumbs/lesson-1.jpg",
		Kind:      domain.MediaKindThumbnail,
		Signed:    false,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, svc.Store.MediaObjects().CreateMediaObject(ctx, public))

	t.Run("signed object", func(t *testing.T) {
		media, err := svc.SignedURLForObject(ctx, signed.ID, 10*time.Minute)
		require.NoError(t, err)
		require.Equal(t, int64(600), media.ExpiresIn)
		require.Contains(t, media.URL, "Signature=")
		require.Contains(t, media.URL, "Key-Pair-Id=AKTEST")
	})

	t.Run("public object has no query", func(t *testing.T) {
		media, err := svc.SignedURLForObject(ctx, public.ID, 0)
		require.NoError(t, err)
		require.Equal(t, "https://media.example.com/thumbs/lesson-1.jpg", media.URL)
	})

	t.Run("unknown id leaks nothing", func(t *testing.T) {
		_, err := svc.SignedURLForObject(ctx, "no-such-id", 0)
		require.ErrorIs(t, err, ErrMediaNotFound)
	})
}
