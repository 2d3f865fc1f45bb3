package http

import (
	"net/http"
	"strings"

	"github.com/greenpepperchocolate/english-phrase/internal/auth/service"
	"github.com/greenpepperchocolate/english-phrase/pkg/httpx"
)

// VerifyEmailHandler serves POST /auth/verify-email.
type VerifyEmailHandler struct {
	VerificationService *service.VerificationService
}

func (h *VerifyEmailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Token = strings.TrimSpace(req.Token)
	if req.Token == "" {
		writeDetail(w, http.StatusBadRequest, "token is required")
		return
	}

	already, err := h.VerificationService.Verify(r.Context(), req.Token)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	msg := "Email verified."
	if already {
		msg = "Email already verified."
	}
	httpx.WriteJSON(w, http.StatusOK, messageResponse{Message: msg})
}
