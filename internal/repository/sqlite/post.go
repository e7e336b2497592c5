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

var _ repository.PostRepository = (*DB)(nil)

func (db *DB) CreatePost(ctx context.Context, post *model.Post) error {
	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO posts (title, text, image) VALUES (?, ?, ?)`,
		post.Title,
		post.Text,
		post.Image,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating post: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading post id: %w", err)
	}
	post.ID = id

	return nil
}

func (db *DB) ListPosts(ctx context.Context) ([]model.Post, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, title, text, image FROM posts ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing posts: %w", err)
	}
	defer rows.Close()

	posts := make([]model.Post, 0)
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Text, &p.Image); err != nil {
			return nil, fmt.Errorf("sqlite: scanning post row: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating posts: %w", err)
	}

	return posts, nil
}

func (db *DB) GetPostByID(ctx context.Context, id int64) (*model.Post, error) {
	var p model.Post

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, title, text, image FROM posts WHERE id = ?`,
		id,
	).Scan(&p.ID, &p.Title, &p.Text, &p.Image)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("post", id)
		}
		return nil, fmt.Errorf("sqlite: getting post %d: %w", id, err)
	}

	return &p, nil
}

func (db *DB) UpdatePost(ctx context.Context, post *model.Post) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE posts SET title = ?, text = ?, image = ? WHERE id = ?`,
		post.Title,
		post.Text,
		post.Image,
		post.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating post %d: %w", post.ID, err)
	}

	return requireAffected(result, "post", post.ID)
}

func (db *DB) DeletePost(ctx context.Context, id int64) error {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting post %d: %w", id, err)
	}

	return requireAffected(result, "post", id)
}
