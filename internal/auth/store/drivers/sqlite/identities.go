package sqlite

import (
	"context"
	"time"

	"github.com/greenpepperchocolate/english-phrase/internal/auth/domain"
	"github.com/greenpepperchocolate/english-phrase/internal/auth/store"
)

type identitiesRepo struct {
	db dbtx
}

const identityColumns = `id, email, password_hash, active, anonymous, created_at, updated_at`

func scanIdentity(row interface{ Scan(dest ...any) error }) (domain.Identity, error) {
	var ident domain.Identity
	err := row.Scan(
		&ident.ID,
		&ident.Email,
		&ident.PasswordHash,
		&ident.Active,
		&ident.Anonymous,
		&ident.CreatedAt,
		&ident.UpdatedAt,
	)
	return ident, err
}

func (r *identitiesRepo) GetIdentityByID(ctx context.Context, id string) (domain.Identity, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+identityColumns+` FROM identities WHERE id = ?`, id)

	ident, err := scanIdentity(row)
	if err != nil {
		return domain.Identity{}, mapNotFound(err)
	}
	return ident, nil
}

func (r *identitiesRepo) GetIdentityByEmail(ctx context.Context, email string) (domain.Identity, error) {
	// email column is COLLATE NOCASE, so equality is case-insensitive.
	row := r.db.QueryRowContext(ctx,
		`SELECT `+identityColumns+` FROM identities WHERE email = ?`, email)

	ident, err := scanIdentity(row)
	if err != nil {
		return domain.Identity{}, mapNotFound(err)
	}
	return ident, nil
}

func (r *identitiesRepo) CreateIdentity(ctx context.Context, ident domain.Identity) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO identities (id, email, password_hash, active, anonymous, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ident.ID,
		ident.Email,
		ident.PasswordHash,
		ident.Active,
		ident.Anonymous,
		ident.CreatedAt.UTC(),
		ident.UpdatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *identitiesRepo) UpdatePasswordHash(ctx context.Context, identityID, newHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE identities SET password_hash = ?, updated_at = ? WHERE id = ?`,
		newHash, time.Now().UTC(), identityID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *identitiesRepo) DeleteIdentity(ctx context.Context, identityID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM identities WHERE id = ?`, identityID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
