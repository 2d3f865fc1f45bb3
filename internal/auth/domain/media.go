package domain

import "time"

// MediaObject is a catalog entry mapping a public id to a storage key.
// Callers only ever hold the id; the key stays server-side so signed URLs
// can't be forged for arbitrary storage paths.
type MediaObject struct {
	ID        string
	Key       string // opaque storage key, e.g. "videos/abc.mp4"
	Kind      string // "video", "audio", "thumbnail", ...
	Signed    bool   // whether access requires a signed URL
	CreatedAt time.Time
}

// SignedMedia is the ephemeral result of building a media URL. Never
// persisted.
type SignedMedia struct {
	URL       string `json:"url"`
	ExpiresIn int64  `json:"expires_in"` // seconds
}

// Media object kinds.
const (
	MediaKindVideo     = "video"
	MediaKindAudio     = "audio"
	MediaKindThumbnail = "thumbnail"
)
