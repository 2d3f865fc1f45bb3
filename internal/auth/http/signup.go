package http

import (
	"net/http"
	"net/mail"
	"strings"

	"github.com/greenpepperchocolate/english-phrase/internal/auth/service"
	"github.com/greenpepperchocolate/english-phrase/pkg/httpx"
)

// SignupHandler serves POST /auth/signup.
type SignupHandler struct {
	SignupService *service.SignupService
}

const minPasswordLength = 8

func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if _, err := mail.ParseAddress(req.Email); err != nil {
		writeDetail(w, http.StatusBadRequest, "A valid email address is required.")
		return
	}
	if len(req.Password) < minPasswordLength {
		writeDetail(w, http.StatusBadRequest, "Password must be at least 8 characters.")
		return
	}

	ident, err := h.SignupService.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, messageResponse{
		Message: "Signup accepted. Check your email for a verification token.",
		Email:   ident.Email,
	})
}
