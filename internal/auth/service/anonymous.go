package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/greenpepperchocolate/english-phrase/internal/auth/domain"
	"github.com/greenpepperchocolate/english-phrase/internal/auth/store"
	"github.com/greenpepperchocolate/english-phrase/pkg/cryptox"
	"github.com/greenpepperchocolate/english-phrase/pkg/idx"
)

// anonymousEmailDomain is the reserved namespace for guest identities.
// Nothing routes mail there; the address only has to be unique.
const anonymousEmailDomain = "example.com"

// AnonymousService provisions guest identities keyed by device id.
type AnonymousService struct {
	Store store.Store
}

// Bootstrap returns the guest identity for deviceID, creating it on first
// sight. Repeated calls with the same deviceID return the same identity.
// With no deviceID a fresh throwaway identity is minted every call.
func (s *AnonymousService) Bootstrap(ctx context.Context, deviceID string) (domain.Identity, error) {
	if deviceID == "" {
		deviceID = cryptox.MustGenerateToken(cryptox.TokenSize128)
	}
	email := fmt.Sprintf("anon_%s@%s", deviceID, anonymousEmailDomain)

	ident, err := s.Store.Identities().GetIdentityByEmail(ctx, email)
	if err == nil {
		return ident, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.Identity{}, err
	}

	now := time.Now().UTC()
	ident = domain.Identity{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: cryptox.UnusableCredential(),
		Active:       true,
		Anonymous:    true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Identities().CreateIdentity(ctx, ident); err != nil {
		// Two devices racing on the same id: the loser adopts the winner's row.
		if errors.Is(err, store.ErrAlreadyExists) {
			return s.Store.Identities().GetIdentityByEmail(ctx, email)
		}
		return domain.Identity{}, err
	}
	return ident, nil
}
