package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/greenpepperchocolate/english-phrase/internal/auth/domain"
	"github.com/greenpepperchocolate/english-phrase/internal/auth/mail"
	"github.com/greenpepperchocolate/english-phrase/internal/auth/store"
	"github.com/greenpepperchocolate/english-phrase/pkg/cryptox"
	"github.com/greenpepperchocolate/english-phrase/pkg/idx"
	"github.com/greenpepperchocolate/english-phrase/pkg/slogx"
)

var ErrResetTokenInvalid = errors.New("reset_token_expired_or_used")

// ResetService drives the password reset lifecycle. Each token is single
// use with a fixed one hour expiry, and an identity has at most one
// active token at any instant.
type ResetService struct {
	Store store.Store
	Mail  mail.Dispatcher
}

// Request starts a reset for the given email. It returns nil for unknown
// and anonymous emails exactly as it does for known ones, so the response
// can never be used to probe which addresses have accounts. For a known
// identity it invalidates any outstanding token and creates the new one
// inside one transaction, then mails the token best-effort.
func (s *ResetService) Request(ctx context.Context, email string) error {
	l := slogx.FromContext(ctx)
	now := time.Now().UTC()

	ident, err := s.Store.Identities().GetIdentityByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("password reset requested for unknown email")
			return nil
		}
		return err
	}
	if ident.Anonymous {
		// Guests have no usable credential to reset.
		return nil
	}

	tokenValue, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.ResetTokens().InvalidateOutstanding(ctx, ident.ID, now); err != nil {
			return err
		}
		return tx.ResetTokens().CreateResetToken(ctx, domain.ResetToken{
			ID:         idx.New().String(),
			IdentityID: ident.ID,
			Value:      tokenValue,
			ExpiresAt:  now.Add(domain.ResetTokenTTL),
			CreatedAt:  now,
		})
	})
	if err != nil {
		return err
	}

	if err := s.Mail.SendPasswordReset(ctx, ident.Email, tokenValue); err != nil {
		l.Warn("password reset mail failed",
			slog.String("identity_id", ident.ID),
			slog.Any("error", err),
		)
	}
	return nil
}

// Confirm redeems a reset token and replaces the identity's credential.
// The credential update and the mark-used happen in one transaction, so a
// token can never be redeemed twice even if the process dies mid-flight.
func (s *ResetService) Confirm(ctx context.Context, tokenValue, newPassword string) error {
	now := time.Now().UTC()

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		rt, err := tx.ResetTokens().GetResetTokenByValue(ctx, tokenValue)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrResetTokenInvalid
			}
			return err
		}
		if !rt.ValidAt(now) {
			return ErrResetTokenInvalid
		}

		if err := tx.Identities().UpdatePasswordHash(ctx, rt.IdentityID, hash); err != nil {
			return err
		}
		return tx.ResetTokens().MarkUsed(ctx, rt.ID, now)
	})
}
