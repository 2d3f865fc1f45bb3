package http

import (
	"net/http"
	"strings"

	"github.com/greenpepperchocolate/english-phrase/internal/auth/service"
	"github.com/greenpepperchocolate/english-phrase/pkg/httpx"
)

// AccountDeleteHandler serves DELETE /auth/account (authenticated).
type AccountDeleteHandler struct {
	AccountService *service.AccountService
}

func (h *AccountDeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identityID, ok := httpx.IdentityIDFromCtx(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Authentication required.")
		return
	}

	if err := h.AccountService.DeleteAccount(r.Context(), identityID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ContactHandler serves POST /contact (authenticated).
type ContactHandler struct {
	AccountService *service.AccountService
}

func (h *ContactHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identityID, ok := httpx.IdentityIDFromCtx(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Authentication required.")
		return
	}

	var req struct {
		Subject string `json:"subject"`
		Body    string `json:"body"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Subject = strings.TrimSpace(req.Subject)
	req.Body = strings.TrimSpace(req.Body)
	if req.Subject == "" || req.Body == "" {
		writeDetail(w, http.StatusBadRequest, "subject and body are required")
		return
	}

	if err := h.AccountService.Contact(r.Context(), identityID, req.Subject, req.Body); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, messageResponse{Message: "Message sent. Thanks for the feedback."})
}
