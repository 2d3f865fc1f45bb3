package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/greenpepperchocolate/english-phrase/internal/auth/domain"
	"github.com/greenpepperchocolate/english-phrase/internal/auth/store"
	"github.com/greenpepperchocolate/english-phrase/pkg/cryptox"
	"github.com/greenpepperchocolate/english-phrase/pkg/jwtx"
	"github.com/greenpepperchocolate/english-phrase/pkg/slogx"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrNotVerified        = errors.New("email_not_verified")
	ErrAccountDisabled    = errors.New("account_disabled")
	ErrInvalidRefresh     = errors.New("invalid_refresh_token")
)

// SessionService mints and refreshes stateless session token pairs. Both
// tokens are self-contained HS256 JWTs; no server-side session rows exist,
// so revocation is TTL-only.
type SessionService struct {
	Signer     *jwtx.HS256
	Store      store.Store
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Login authenticates an email/password pair and mints a token pair.
//
// An identity holding a pending, unexpired verification token is refused
// with ErrNotVerified. An identity with no verification token at all
// predates the verification feature and is grandfathered in as verified.
func (s *SessionService) Login(ctx context.Context, email, password string) (*domain.TokenPair, error) {
	l := slogx.FromContext(ctx)
	now := time.Now()

	ident, err := s.Store.Identities().GetIdentityByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := cryptox.VerifyPassword(password, ident.PasswordHash); err != nil {
		l.Info("login rejected", slog.String("identity_id", ident.ID))
		return nil, ErrInvalidCredentials
	}

	if !ident.Active {
		return nil, ErrAccountDisabled
	}

	vt, err := s.Store.VerificationTokens().GetVerificationTokenByIdentity(ctx, ident.ID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		// Legacy branch: tokenless identities are implicitly verified.
	case err != nil:
		return nil, err
	case !vt.Verified && !vt.ExpiredAt(now):
		return nil, ErrNotVerified
	}

	return s.Issue(ctx, ident)
}

// Refresh validates a refresh token and mints a fresh pair. Any defect in
// the presented token (signature, expiry, wrong token_use) is an
// authentication failure, never an internal error.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.Signer.Verify(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefresh
	}
	if err := claims.ValidateExpiry(); err != nil {
		return nil, ErrInvalidRefresh
	}
	if err := claims.ValidateUse(jwtx.UseRefresh); err != nil {
		return nil, ErrInvalidRefresh
	}

	ident, err := s.Store.Identities().GetIdentityByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidRefresh
		}
		return nil, err
	}
	if !ident.Active {
		return nil, ErrInvalidRefresh
	}

	return s.Issue(ctx, ident)
}

// Issue mints an access/refresh pair for an already-authenticated identity.
func (s *SessionService) Issue(ctx context.Context, ident domain.Identity) (*domain.TokenPair, error) {
	now := time.Now()

	accessTTL := s.AccessTTL
	if accessTTL <= 0 {
		accessTTL = jwtx.DefaultAccessTokenTTL
	}
	refreshTTL := s.RefreshTTL
	if refreshTTL <= 0 {
		refreshTTL = jwtx.DefaultRefreshTokenTTL
	}

	access, err := s.Signer.Sign(jwtx.NewSessionClaims(ident.ID, jwtx.UseAccess, ident.Anonymous, accessTTL, s.Issuer, now))
	if err != nil {
		return nil, err
	}

	refresh, err := s.Signer.Sign(jwtx.NewSessionClaims(ident.ID, jwtx.UseRefresh, ident.Anonymous, refreshTTL, s.Issuer, now))
	if err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(accessTTL.Seconds()),
		Anonymous:    ident.Anonymous,
	}, nil
}
