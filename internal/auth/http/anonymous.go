package http

import (
	"net/http"
	"strings"

	"github.com/greenpepperchocolate/english-phrase/internal/auth/service"
	"github.com/greenpepperchocolate/english-phrase/pkg/httpx"
)

// AnonymousHandler serves POST /auth/anonymous: get-or-create a guest
// identity for the device and hand back its session pair.
type AnonymousHandler struct {
	AnonymousService *service.AnonymousService
	SessionService   *service.SessionService
}

func (h *AnonymousHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DeviceID string `json:"device_id"`
	}
	// An empty body is fine; device_id is optional.
	if r.Body != nil && r.ContentLength != 0 {
		if !decodeJSON(w, r, &req) {
			return
		}
	}

	ident, err := h.AnonymousService.Bootstrap(r.Context(), strings.TrimSpace(req.DeviceID))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	pair, err := h.SessionService.Issue(r.Context(), ident)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, pair)
}
