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

var ErrEmailTaken = errors.New("email_taken")

// SignupService provisions new identities together with their one
// verification token, then mails the token out best-effort.
type SignupService struct {
	Store store.Store
	Mail  mail.Dispatcher
}

// Signup creates a new identity and its verification token in a single
// transaction. The verification mail is sent after commit; a delivery
// failure is logged and the signup still succeeds.
func (s *SignupService) Signup(ctx context.Context, email, password string) (domain.Identity, error) {
	l := slogx.FromContext(ctx)
	now := time.Now().UTC()

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.Identity{}, err
	}

	tokenValue, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return domain.Identity{}, err
	}

	ident := domain.Identity{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: hash,
		Active:       true,
		Anonymous:    false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Identities().CreateIdentity(ctx, ident); err != nil {
			return err
		}
		return tx.VerificationTokens().CreateVerificationToken(ctx, domain.VerificationToken{
			ID:         idx.New().String(),
			IdentityID: ident.ID,
			Value:      tokenValue,
			CreatedAt:  now,
		})
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Identity{}, ErrEmailTaken
		}
		return domain.Identity{}, err
	}

	if err := s.Mail.SendVerification(ctx, email, tokenValue); err != nil {
		l.Warn("verification mail failed",
			slog.String("identity_id", ident.ID),
			slog.Any("error", err),
		)
	}

	return ident, nil
}
