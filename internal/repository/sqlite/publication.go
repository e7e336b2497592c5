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

var _ repository.PublicationRepository = (*DB)(nil)

// DATES:
// Publication dates are written in UTC. The driver stores DATETIME columns as
// text and parses them back into time.Time on Scan; we normalise the result to
// UTC again so callers always see the same location they wrote.

func (db *DB) CreatePublication(ctx context.Context, publication *model.Publication) error {
	publication.Date = publication.Date.UTC()

	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO publications (media_id, post_id, date) VALUES (?, ?, ?)`,
		publication.MediaID,
		publication.PostID,
		publication.Date,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating publication: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading publication id: %w", err)
	}
	publication.ID = id

	return nil
}

func (db *DB) ListPublications(ctx context.Context) ([]model.Publication, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, media_id, post_id, date FROM publications ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing publications: %w", err)
	}
	defer rows.Close()

	publications := make([]model.Publication, 0)
	for rows.Next() {
		var p model.Publication
		if err := rows.Scan(&p.ID, &p.MediaID, &p.PostID, &p.Date); err != nil {
			return nil, fmt.Errorf("sqlite: scanning publication row: %w", err)
		}
		p.Date = p.Date.UTC()
		publications = append(publications, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating publications: %w", err)
	}

	return publications, nil
}

func (db *DB) GetPublicationByID(ctx context.Context, id int64) (*model.Publication, error) {
	var p model.Publication

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, media_id, post_id, date FROM publications WHERE id = ?`,
		id,
	).Scan(&p.ID, &p.MediaID, &p.PostID, &p.Date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("publication", id)
		}
		return nil, fmt.Errorf("sqlite: getting publication %d: %w", id, err)
	}
	p.Date = p.Date.UTC()

	return &p, nil
}

func (db *DB) UpdatePublication(ctx context.Context, publication *model.Publication) error {
	publication.Date = publication.Date.UTC()

	result, err := db.conn.ExecContext(ctx,
		`UPDATE publications SET media_id = ?, post_id = ?, date = ? WHERE id = ?`,
		publication.MediaID,
		publication.PostID,
		publication.Date,
		publication.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating publication %d: %w", publication.ID, err)
	}

	return requireAffected(result, "publication", publication.ID)
}

func (db *DB) DeletePublication(ctx context.Context, id int64) error {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM publications WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting publication %d: %w", id, err)
	}

	return requireAffected(result, "publication", id)
}
