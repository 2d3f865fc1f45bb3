package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/greenpepperchocolate/english-phrase/internal/auth/service"
	"github.com/greenpepperchocolate/english-phrase/pkg/httpx"
)

// MediaSignedURLHandler serves POST /media/signed-url (authenticated).
// It takes a media object id, never a raw storage key; the catalog does
// the id-to-key resolution server-side.
type MediaSignedURLHandler struct {
	MediaService *service.MediaService
}

func (h *MediaSignedURLHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MediaID string `json:"media_id"`
		TTL     int64  `json:"ttl,omitempty"` // seconds, optional
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	req.MediaID = strings.TrimSpace(req.MediaID)
	if req.MediaID == "" {
		writeDetail(w, http.StatusBadRequest, "media_id is required")
		return
	}
	if req.TTL < 0 {
		writeDetail(w, http.StatusBadRequest, "ttl must be positive")
		return
	}

	media, err := h.MediaService.SignedURLForObject(r.Context(), req.MediaID, time.Duration(req.TTL)*time.Second)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, media)
}
