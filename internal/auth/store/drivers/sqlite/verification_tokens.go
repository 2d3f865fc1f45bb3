package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/greenpepperchocolate/english-phrase/internal/auth/domain"
	"github.com/greenpepperchocolate/english-phrase/internal/auth/store"
)

type verificationTokensRepo struct {
	db dbtx
}

const verificationTokenColumns = `id, identity_id, value, verified, verified_at, created_at`

func scanVerificationToken(row interface{ Scan(dest ...any) error }) (domain.VerificationToken, error) {
	var (
		t          domain.VerificationToken
		verifiedAt sql.NullTime
	)
	err := row.Scan(
		&t.ID,
		&t.IdentityID,
		&t.Value,
		&t.Verified,
		&verifiedAt,
		&t.CreatedAt,
	)
	if err != nil {
		return domain.VerificationToken{}, err
	}
	t.VerifiedAt = mapNullTimePtr(verifiedAt)
	return t, nil
}

func (r *verificationTokensRepo) CreateVerificationToken(ctx context.Context, t domain.VerificationToken) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO verification_tokens (id, identity_id, value, verified, verified_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID,
		t.IdentityID,
		t.Value,
		t.Verified,
		mapOptionalTime(t.VerifiedAt),
		t.CreatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *verificationTokensRepo) GetVerificationTokenByValue(ctx context.Context, value string) (domain.VerificationToken, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+verificationTokenColumns+` FROM verification_tokens WHERE value = ?`, value)

	t, err := scanVerificationToken(row)
	if err != nil {
		return domain.VerificationToken{}, mapNotFound(err)
	}
	return t, nil
}

func (r *verificationTokensRepo) GetVerificationTokenByIdentity(ctx context.Context, identityID string) (domain.VerificationToken, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+verificationTokenColumns+` FROM verification_tokens WHERE identity_id = ?`, identityID)

	t, err := scanVerificationToken(row)
	if err != nil {
		return domain.VerificationToken{}, mapNotFound(err)
	}
	return t, nil
}

func (r *verificationTokensRepo) MarkVerified(ctx context.Context, id string, verifiedAt time.Time) error {
	// Only flips unverified rows; a verified token never reverts.
	res, err := r.db.ExecContext(ctx,
		`UPDATE verification_tokens SET verified = 1, verified_at = ? WHERE id = ? AND verified = 0`,
		verifiedAt.UTC(), id)
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

func (r *verificationTokensRepo) DeleteExpiredUnverified(ctx context.Context, olderThan time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM verification_tokens WHERE verified = 0 AND created_at < ?`,
		olderThan.UTC())
	return err
}
