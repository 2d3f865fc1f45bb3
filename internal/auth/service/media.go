package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/greenpepperchocolate/english-phrase/internal/auth/domain"
	"github.com/greenpepperchocolate/english-phrase/internal/auth/store"
	"github.com/greenpepperchocolate/english-phrase/pkg/mediasign"
)

var ErrMediaNotFound = errors.New("media_not_found")

// MediaService issues public and signed media URLs. Clients hand it media
// object ids, never storage keys; the catalog resolves id to key
// server-side so a caller cannot request a signature for an arbitrary
// path.
type MediaService struct {
	Engine      *mediasign.Engine // nil when no signing secret is configured
	Store       store.Store
	AccessKeyID string
	PublicBase  string // CDN/bucket base for published objects
	LocalBase   string // static-hosting fallback when signing is unconfigured
	DefaultTTL  time.Duration
}

// BuildMediaURL renders a URL for a raw storage key.
//
// With no signing engine every key degrades to the local static base.
// Unsigned keys get a bare public URL; signed ones get the expiring
// Expires/Signature/Key-Pair-Id query.
func (s *MediaService) BuildMediaURL(key string, sign bool, ttl time.Duration, now time.Time) string {
	normalized := mediasign.NormalizeKey(key)

	if s.Engine == nil {
		return fmt.Sprintf("%s/%s", strings.TrimRight(s.LocalBase, "/"), normalized)
	}

	base := strings.TrimRight(s.PublicBase, "/")
	if !sign {
		return fmt.Sprintf("%s/%s", base, normalized)
	}

	if ttl <= 0 {
		ttl = s.DefaultTTL
	}
	expires := now.Add(ttl).Unix()
	signature := s.Engine.Sign(normalized, expires)

	return fmt.Sprintf("%s/%s?Expires=%d&Signature=%s&Key-Pair-Id=%s",
		base, normalized, expires, signature, s.AccessKeyID)
}

// SignedURLForObject resolves a media object id and builds its URL.
// Unknown ids return ErrMediaNotFound without hinting at any key.
func (s *MediaService) SignedURLForObject(ctx context.Context, id string, ttl time.Duration) (domain.SignedMedia, error) {
	obj, err := s.Store.MediaObjects().GetMediaObjectByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.SignedMedia{}, ErrMediaNotFound
		}
		return domain.SignedMedia{}, err
	}

	if ttl <= 0 {
		ttl = s.DefaultTTL
	}

	url := s.BuildMediaURL(obj.Key, obj.Signed, ttl, time.Now())
	return domain.SignedMedia{
		URL:       url,
		ExpiresIn: int64(ttl.Seconds()),
	}, nil
}
