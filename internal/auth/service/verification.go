package service

import (
	"context"
	"errors"
	"time"

	"github.com/greenpepperchocolate/english-phrase/internal/auth/store"
)

var (
	ErrVerificationInvalid = errors.New("invalid_verification_token")
	ErrVerificationExpired = errors.New("verification_token_expired")
)

// VerificationService drives the email verification state machine:
// PENDING to VERIFIED, terminal, never reverting.
type VerificationService struct {
	Store store.Store
}

// Verify redeems a verification token by value. The four outcomes are
// kept distinct: unknown value (ErrVerificationInvalid), already verified
// (alreadyVerified=true, nil error, nothing written), expired while
// unverified (ErrVerificationExpired, no silent re-issue), and success.
func (s *VerificationService) Verify(ctx context.Context, value string) (alreadyVerified bool, err error) {
	now := time.Now()

	vt, err := s.Store.VerificationTokens().GetVerificationTokenByValue(ctx, value)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, ErrVerificationInvalid
		}
		return false, err
	}

	if vt.Verified {
		return true, nil
	}
	if vt.ExpiredAt(now) {
		return false, ErrVerificationExpired
	}

	if err := s.Store.VerificationTokens().MarkVerified(ctx, vt.ID, now); err != nil {
		// A concurrent verify may have won the race; that is still success
		// from the caller's point of view.
		if errors.Is(err, store.ErrNotFound) {
			return true, nil
		}
		return false, err
	}
	return false, nil
}
