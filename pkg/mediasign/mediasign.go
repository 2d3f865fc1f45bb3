// Package mediasign implements the query-string signing scheme the media
// storage edge verifies: HMAC-SHA256 over "{key}:{expires}" with a shared
// secret, encoded as unpadded base64url. Signing is deterministic so the
// verifier can reproduce the signature independently.
package mediasign

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrExpired means the signed window has elapsed.
	ErrExpired = errors.New("mediasign: signature expired")
	// ErrBadSignature means the signature does not match the key/expiry pair.
	ErrBadSignature = errors.New("mediasign: signature mismatch")
)

// Engine signs media keys with a shared secret. Stateless; safe for
// concurrent use.
type Engine struct {
	secret []byte
}

// New builds an Engine. An empty secret is a configuration error the caller
// must treat as fatal at startup, not a per-call failure.
func New(secret string) (*Engine, error) {
	if secret == "" {
		return nil, errors.New("mediasign: signing secret is required")
	}
	return &Engine{secret: []byte(secret)}, nil
}

// NormalizeKey strips any leading path separators from a storage key so
// "/videos/a.mp4" and "videos/a.mp4" sign identically.
func NormalizeKey(key string) string {
	return strings.TrimLeft(key, "/")
}

// Sign computes the unpadded base64url HMAC-SHA256 of "{normalizedKey}:{expires}".
// Identical inputs always yield identical output.
func (e *Engine) Sign(key string, expiresUnix int64) string {
	payload := NormalizeKey(key) + ":" + strconv.FormatInt(expiresUnix, 10)
	mac := hmac.New(sha256.New, e.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// Verify checks a signature against the key/expiry pair and rejects elapsed
// windows. The comparison is constant-time.
func (e *Engine) Verify(key string, expiresUnix int64, signature string, now time.Time) error {
	expected := e.Sign(key, expiresUnix)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrBadSignature
	}
	if now.Unix() > expiresUnix {
		return ErrExpired
	}
	return nil
}
