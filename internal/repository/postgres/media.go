package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sakif/publication-scheduler/internal/apperror"
	"github.com/sakif/publication-scheduler/internal/model"
	"github.com/sakif/publication-scheduler/internal/repository"
)

var _ repository.MediaRepository = (*DB)(nil)

func (db *DB) CreateMedia(ctx context.Context, media *model.Media) error {
	err := db.pool.QueryRow(ctx,
		`INSERT INTO medias (title, username) VALUES ($1, $2) RETURNING id`,
		media.Title,
		media.Username,
	).Scan(&media.ID)
	if err != nil {
		return fmt.Errorf("postgres: creating media: %w", err)
	}
	return nil
}

func (db *DB) ListMedia(ctx context.Context) ([]model.Media, error) {
	rows, err := db.pool.Query(ctx, `SELECT id, title, username FROM medias ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("postgres: listing medias: %w", err)
	}
	return collectMedias(rows)
}

func (db *DB) GetMediaByID(ctx context.Context, id int64) (*model.Media, error) {
	var m model.Media
	err := db.pool.QueryRow(ctx,
		`SELECT id, title, username FROM medias WHERE id = $1`, id,
	).Scan(&m.ID, &m.Title, &m.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("media", id)
		}
		return nil, fmt.Errorf("postgres: getting media %d: %w", id, err)
	}
	return &m, nil
}

func (db *DB) FindMediaByUsername(ctx context.Context, username string) ([]model.Media, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, title, username FROM medias WHERE username = $1 ORDER BY id`, username,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres: finding medias by username: %w", err)
	}
	return collectMedias(rows)
}

func (db *DB) UpdateMedia(ctx context.Context, media *model.Media) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE medias SET title = $1, username = $2 WHERE id = $3`,
		media.Title,
		media.Username,
		media.ID,
	)
	if err != nil {
		return fmt.Errorf("postgres: updating media %d: %w", media.ID, err)
	}
	return requireAffected(tag, "media", media.ID)
}

func (db *DB) DeleteMedia(ctx context.Context, id int64) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM medias WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("postgres: deleting media %d: %w", id, err)
	}
	return requireAffected(tag, "media", id)
}

func collectMedias(rows pgx.Rows) ([]model.Media, error) {
	medias, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Media, error) {
		var m model.Media
		err := row.Scan(&m.ID, &m.Title, &m.Username)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("postgres: scanning medias: %w", err)
	}
	if medias == nil {
		medias = []model.Media{}
	}
	return medias, nil
}

func requireAffected(tag pgconn.CommandTag, resource string, id int64) error {
	if tag.RowsAffected() == 0 {
		return apperror.NotFound(resource, id)
	}
	return nil
}
