package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/greenpepperchocolate/english-phrase/internal/auth/domain"
	"github.com/greenpepperchocolate/english-phrase/internal/auth/store"
)

type resetTokensRepo struct {
	db dbtx
}

const resetTokenColumns = `id, identity_id, value, used, used_at, expires_at, created_at`

func scanResetToken(row interface{ Scan(dest ...any) error }) (domain.ResetToken, error) {
	var (
		t      domain.ResetToken
		usedAt sql.NullTime
	)
	err := row.Scan(
		&t.ID,
		&t.IdentityID,
		&t.Value,
		&t.Used,
		&usedAt,
		&t.ExpiresAt,
		&t.CreatedAt,
	)
	if err != nil {
		return domain.ResetToken{}, err
	}
	t.UsedAt = mapNullTimePtr(usedAt)
	return t, nil
}

func (r *resetTokensRepo) CreateResetToken(ctx context.Context, t domain.ResetToken) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reset_tokens (id, identity_id, value, used, used_at, expires_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID,
		t.IdentityID,
		t.Value,
		t.Used,
		mapOptionalTime(t.UsedAt),
		t.ExpiresAt.UTC(),
		t.CreatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *resetTokensRepo) GetResetTokenByValue(ctx context.Context, value string) (domain.ResetToken, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+resetTokenColumns+` FROM reset_tokens WHERE value = ?`, value)

	t, err := scanResetToken(row)
	if err != nil {
		return domain.ResetToken{}, mapNotFound(err)
	}
	return t, nil
}

func (r *resetTokensRepo) MarkUsed(ctx context.Context, id string, usedAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE reset_tokens SET used = 1, used_at = ? WHERE id = ? AND used = 0`,
		usedAt.UTC(), id)
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

func (r *resetTokensRepo) InvalidateOutstanding(ctx context.Context, identityID string, usedAt time.Time) error {
	// Affecting zero rows is fine; most identities have no active token.
	_, err := r.db.ExecContext(ctx,
		`UPDATE reset_tokens SET used = 1, used_at = ? WHERE identity_id = ? AND used = 0`,
		usedAt.UTC(), identityID)
	return err
}

func (r *resetTokensRepo) DeleteExpired(ctx context.Context, olderThan time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM reset_tokens WHERE expires_at < ?`, olderThan.UTC())
	return err
}
