package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sakif/publication-scheduler/internal/apperror"
	"github.com/sakif/publication-scheduler/internal/model"
	"github.com/sakif/publication-scheduler/internal/repository"
)

var _ repository.PublicationRepository = (*DB)(nil)

func (db *DB) CreatePublication(ctx context.Context, publication *model.Publication) error {
	publication.Date = publication.Date.UTC()

	err := db.pool.QueryRow(ctx,
		`INSERT INTO publications (media_id, post_id, date) VALUES ($1, $2, $3) RETURNING id`,
		publication.MediaID,
		publication.PostID,
		publication.Date,
	).Scan(&publication.ID)
	if err != nil {
		return fmt.Errorf("postgres: creating publication: %w", err)
	}
	return nil
}

func (db *DB) ListPublications(ctx context.Context) ([]model.Publication, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, media_id, post_id, date FROM publications ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres: listing publications: %w", err)
	}

	publications, err := pgx.CollectRows(rows, scanPublication)
	if err != nil {
		return nil, fmt.Errorf("postgres: scanning publications: %w", err)
	}
	if publications == nil {
		publications = []model.Publication{}
	}
	return publications, nil
}

func (db *DB) GetPublicationByID(ctx context.Context, id int64) (*model.Publication, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, media_id, post_id, date FROM publications WHERE id = $1`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres: getting publication %d: %w", id, err)
	}

	p, err := pgx.CollectExactlyOneRow(rows, scanPublication)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("publication", id)
		}
		return nil, fmt.Errorf("postgres: getting publication %d: %w", id, err)
	}
	return &p, nil
}

func (db *DB) UpdatePublication(ctx context.Context, publication *model.Publication) error {
	publication.Date = publication.Date.UTC()

	tag, err := db.pool.Exec(ctx,
		`UPDATE publications SET media_id = $1, post_id = $2, date = $3 WHERE id = $4`,
		publication.MediaID,
		publication.PostID,
		publication.Date,
		publication.ID,
	)
	if err != nil {
		return fmt.Errorf("postgres: updating publication %d: %w", publication.ID, err)
	}
	return requireAffected(tag, "publication", publication.ID)
}

func (db *DB) DeletePublication(ctx context.Context, id int64) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM publications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("postgres: deleting publication %d: %w", id, err)
	}
	return requireAffected(tag, "publication", id)
}

// scanPublication normalises the TIMESTAMPTZ value to UTC.
func scanPublication(row pgx.CollectableRow) (model.Publication, error) {
	var p model.Publication
	if err := row.Scan(&p.ID, &p.MediaID, &p.PostID, &p.Date); err != nil {
		return p, err
	}
	p.Date = p.Date.UTC()
	return p, nil
}
