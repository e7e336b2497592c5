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

var _ repository.PostRepository = (*DB)(nil)

func (db *DB) CreatePost(ctx context.Context, post *model.Post) error {
	err := db.pool.QueryRow(ctx,
		`INSERT INTO posts (title, text, image) VALUES ($1, $2, $3) RETURNING id`,
		post.Title,
		post.Text,
		post.Image,
	).Scan(&post.ID)
	if err != nil {
		return fmt.Errorf("postgres: creating post: %w", err)
	}
	return nil
}

func (db *DB) ListPosts(ctx context.Context) ([]model.Post, error) {
	rows, err := db.pool.Query(ctx, `SELECT id, title, text, image FROM posts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("postgres: listing posts: %w", err)
	}

	posts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Post, error) {
		var p model.Post
		err := row.Scan(&p.ID, &p.Title, &p.Text, &p.Image)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("postgres: scanning posts: %w", err)
	}
	if posts == nil {
		posts = []model.Post{}
	}
	return posts, nil
}

func (db *DB) GetPostByID(ctx context.Context, id int64) (*model.Post, error) {
	var p model.Post
	err := db.pool.QueryRow(ctx,
		`SELECT id, title, text, image FROM posts WHERE id = $1`, id,
	).Scan(&p.ID, &p.Title, &p.Text, &p.Image)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("post", id)
		}
		return nil, fmt.Errorf("postgres: getting post %d: %w", id, err)
	}
	return &p, nil
}

func (db *DB) UpdatePost(ctx context.Context, post *model.Post) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE posts SET title = $1, text = $2, image = $3 WHERE id = $4`,
		post.Title,
		post.Text,
		post.Image,
		post.ID,
	)
	if err != nil {
		return fmt.Errorf("postgres: updating post %d: %w", post.ID, err)
	}
	return requireAffected(tag, "post", post.ID)
}

func (db *DB) DeletePost(ctx context.Context, id int64) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("postgres: deleting post %d: %w", id, err)
	}
	return requireAffected(tag, "post", id)
}
