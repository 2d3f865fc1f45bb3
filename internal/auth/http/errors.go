package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/greenpepperchocolate/english-phrase/internal/auth/service"
	"github.com/greenpepperchocolate/english-phrase/pkg/httpx"
	"github.com/greenpepperchocolate/english-phrase/pkg/slogx"
)

// messageResponse is the success envelope for non-token endpoints.
type messageResponse struct {
	Message string `json:"message"`
	Email   string `json:"email,omitempty"`
}

// detailResponse is the failure envelope. The detail string is the only
// thing a client ever sees about a failure; no stack traces, no internals.
type detailResponse struct {
	Detail string `json:"detail"`
}

func writeDetail(w http.ResponseWriter, code int, detail string) {
	httpx.WriteJSON(w, code, detailResponse{Detail: detail})
}

// decodeJSON parses the request body into dst, answering 400 itself on
// malformed input. Returns false when the caller should stop.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeDetail(w, http.StatusBadRequest, "Malformed request body.")
		return false
	}
	return true
}

// writeServiceError maps service sentinels onto the response taxonomy:
// validation/authentication 400, authorization 403, lookup 404, quota 429.
// Anything unmapped is a dependency failure: logged, surfaced as a bare 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		writeDetail(w, http.StatusBadRequest, "Unable to log in with provided credentials.")
	case errors.Is(err, service.ErrInvalidRefresh):
		writeDetail(w, http.StatusBadRequest, "Invalid or expired refresh token.")
	case errors.Is(err, service.ErrEmailTaken):
		writeDetail(w, http.StatusBadRequest, "An account with this email already exists.")
	case errors.Is(err, service.ErrVerificationInvalid):
		writeDetail(w, http.StatusBadRequest, "Invalid verification token.")
	case errors.Is(err, service.ErrVerificationExpired):
		writeDetail(w, http.StatusBadRequest, "Verification token has expired. Please request a new one.")
	case errors.Is(err, service.ErrResetTokenInvalid):
		writeDetail(w, http.StatusBadRequest, "Reset token is expired or used.")
	case errors.Is(err, service.ErrNotVerified):
		writeDetail(w, http.StatusForbidden, "Email address is not verified.")
	case errors.Is(err, service.ErrAccountDisabled):
		writeDetail(w, http.StatusForbidden, "This account has been disabled.")
	case errors.Is(err, service.ErrAnonymousForbidden):
		writeDetail(w, http.StatusForbidden, "This action is not available for guest accounts.")
	case errors.Is(err, service.ErrMediaNotFound):
		writeDetail(w, http.StatusNotFound, "Media object not found.")
	case errors.Is(err, service.ErrIdentityNotFound):
		writeDetail(w, http.StatusNotFound, "Account not found.")
	case errors.Is(err, service.ErrRateLimited):
		writeDetail(w, http.StatusTooManyRequests, "Too many requests. Try again later.")
	default:
		slogx.FromContext(r.Context()).Error("handler failed",
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		writeDetail(w, http.StatusInternalServerError, "Internal server error.")
	}
}
