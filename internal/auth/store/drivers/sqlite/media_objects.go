package sqlite

import (
	"context"

	"github.com/greenpepperchocolate/english-phrase/internal/auth/domain"
)

type mediaObjectsRepo struct {
	db dbtx
}

func (r *mediaObjectsRepo) GetMediaObjectByID(ctx context.Context, id string) (domain.MediaObject, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, key, kind, signed, created_at FROM media_objects WHERE id = ?`, id)

	var m domain.MediaObject
	err := row.Scan(&m.ID, &m.Key, &m.Kind, &m.Signed, &m.CreatedAt)
	if err != nil {
		return domain.MediaObject{}, mapNotFound(err)
	}
	return m, nil
}

func (r *mediaObjectsRepo) CreateMediaObject(ctx context.Context, m domain.MediaObject) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO media_objects (id, key, kind, signed, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.Key, m.Kind, m.Signed, m.CreatedAt.UTC(),
	)
	return mapConstraint(err)
}
