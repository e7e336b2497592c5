package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sakif/publication-scheduler/internal/apperror"
	"github.com/sakif/publication-scheduler/internal/model"
	"github.com/sakif/publication-scheduler/internal/repository"
)

// compile-time check that *DB implements repository.MediaRepository
var _ repository.MediaRepository = (*DB)(nil)

// CreateMedia inserts a new media row and sets media.ID to the generated key.
//
// ID GENERATION:
// ids are INTEGER PRIMARY KEY AUTOINCREMENT, so SQLite assigns them and never
// reuses the id of a deleted row. LastInsertId reads the value back.
func (db *DB) CreateMedia(ctx context.Context, media *model.Media) error {
	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO medias (title, username) VALUES (?, ?)`,
		media.Title,
		media.Username,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating media: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading media id: %w", err)
	}
	media.ID = id

	return nil
}

// ListMedia returns every media row in id order.
func (db *DB) ListMedia(ctx context.Context) ([]model.Media, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, title, username FROM medias ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing medias: %w", err)
	}
	defer rows.Close()

	return scanMedias(rows)
}

// GetMediaByID returns apperror.ErrNotFound when no row has that id.
func (db *DB) GetMediaByID(ctx context.Context, id int64) (*model.Media, error) {
	var m model.Media

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, title, username FROM medias WHERE id = ?`,
		id,
	).Scan(&m.ID, &m.Title, &m.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("media", id)
		}
		return nil, fmt.Errorf("sqlite: getting media %d: %w", id, err)
	}

	return &m, nil
}

func (db *DB) FindMediaByUsername(ctx context.Context, username string) ([]model.Media, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, title, username FROM medias WHERE username = ? ORDER BY id`,
		username,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: finding medias by username: %w", err)
	}
	defer rows.Close()

	return scanMedias(rows)
}

// UpdateMedia overwrites title and username. Zero rows affected means the id
// does not exist.
func (db *DB) UpdateMedia(ctx context.Context, media *model.Media) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE medias SET title = ?, username = ? WHERE id = ?`,
		media.Title,
		media.Username,
		media.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating media %d: %w", media.ID, err)
	}

	return requireAffected(result, "media", media.ID)
}

func (db *DB) DeleteMedia(ctx context.Context, id int64) error {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM medias WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting media %d: %w", id, err)
	}

	return requireAffected(result, "media", id)
}

func scanMedias(rows *sql.Rows) ([]model.Media, error) {
	medias := make([]model.Media, 0)
	for rows.Next() {
		var m model.Media
		if err := rows.Scan(&m.ID, &m.Title, &m.Username); err != nil {
			return nil, fmt.Errorf("sqlite: scanning media row: %w", err)
		}
		medias = append(medias, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating medias: %w", err)
	}
	return medias, nil
}

// requireAffected turns "zero rows changed" into a NotFound for resource/id.
func requireAffected(result sql.Result, resource string, id int64) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound(resource, id)
	}
	return nil
}
