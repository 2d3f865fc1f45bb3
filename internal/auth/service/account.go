package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/greenpepperchocolate/english-phrase/internal/auth/mail"
	"github.com/greenpepperchocolate/english-phrase/internal/auth/ratelimit"
	"github.com/greenpepperchocolate/english-phrase/internal/auth/store"
	"github.com/greenpepperchocolate/english-phrase/pkg/slogx"
)

var (
	ErrAnonymousForbidden = errors.New("anonymous_forbidden")
	ErrRateLimited        = errors.New("rate_limited")
	ErrIdentityNotFound   = errors.New("identity_not_found")
)

// AccountService covers self-service account operations: deletion and the
// contact channel. Both are closed to anonymous identities.
type AccountService struct {
	Store   store.Store
	Mail    mail.Dispatcher
	Limiter *ratelimit.Limiter

	ContactLimit  int64
	ContactWindow time.Duration
}

// DeleteAccount removes the identity and, through the schema cascade, all
// its tokens. Guests are refused; their identity is shared device state,
// not something they own.
func (s *AccountService) DeleteAccount(ctx context.Context, identityID string) error {
	ident, err := s.Store.Identities().GetIdentityByID(ctx, identityID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrIdentityNotFound
		}
		return err
	}
	if ident.Anonymous {
		return ErrAnonymousForbidden
	}

	return s.Store.Identities().DeleteIdentity(ctx, ident.ID)
}

// Contact relays a contact-form message to the support inbox. Anonymous
// identities are refused, and each identity is capped per window. Mail
// delivery stays best-effort: a failed relay is logged and the caller
// still gets a success.
func (s *AccountService) Contact(ctx context.Context, identityID, subject, body string) error {
	l := slogx.FromContext(ctx)

	ident, err := s.Store.Identities().GetIdentityByID(ctx, identityID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrIdentityNotFound
		}
		return err
	}
	if ident.Anonymous {
		return ErrAnonymousForbidden
	}

	ok, err := s.Limiter.Allow(ctx, ident.ID, "contact", s.ContactLimit, s.ContactWindow)
	if err != nil {
		return err
	}
	if !ok {
		return ErrRateLimited
	}

	if err := s.Mail.SendContactMessage(ctx, ident.ID, subject, body); err != nil {
		l.Warn("contact message relay failed",
			slog.String("identity_id", ident.ID),
			slog.Any("error", err),
		)
	}
	return nil
}
