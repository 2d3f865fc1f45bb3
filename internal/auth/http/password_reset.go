package http

import (
	"net/http"
	"strings"

	"github.com/greenpepperchocolate/english-phrase/internal/auth/service"
	"github.com/greenpepperchocolate/english-phrase/pkg/httpx"
)

// resetRequestMessage is returned for every reset request, known email or
// not. Keep it a single constant so the responses stay byte-identical.
const resetRequestMessage = "If an account exists for that email, a reset token has been sent."

// PasswordResetRequestHandler serves POST /auth/password-reset/request.
type PasswordResetRequestHandler struct {
	ResetService *service.ResetService
}

func (h *PasswordResetRequestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		writeDetail(w, http.StatusBadRequest, "email is required")
		return
	}

	if err := h.ResetService.Request(r.Context(), req.Email); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, messageResponse{Message: resetRequestMessage})
}

// PasswordResetConfirmHandler serves POST /auth/password-reset/confirm.
type PasswordResetConfirmHandler struct {
	ResetService *service.ResetService
}

func (h *PasswordResetConfirmHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Token = strings.TrimSpace(req.Token)
	if req.Token == "" {
		writeDetail(w, http.StatusBadRequest, "token is required")
		return
	}
	if len(req.Password) < minPasswordLength {
		writeDetail(w, http.StatusBadRequest, "Password must be at least 8 characters.")
		return
	}

	if err := h.ResetService.Confirm(r.Context(), req.Token, req.Password); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, messageResponse{Message: "Password has been reset."})
}
