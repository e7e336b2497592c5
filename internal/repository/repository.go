// Package repository declares the storage contracts the service layer depends on.
//
// Services only ever see these interfaces. The concrete stores live in the
// sqlite and postgres sub-packages; each one implements every interface below
// on a single struct, so one handle can be injected into all three services.
//
// NOT FOUND CONTRACT:
// Get*ByID, Update* and Delete* return an apperror.NotFound when the row does
// not exist. Every other failure is an ordinary wrapped store error.
package repository

import (
	"context"

	"github.com/sakif/publication-scheduler/internal/model"
)

type MediaRepository interface {
	CreateMedia(ctx context.Context, media *model.Media) error
	ListMedia(ctx context.Context) ([]model.Media, error)
	GetMediaByID(ctx context.Context, id int64) (*model.Media, error)
	// FindMediaByUsername returns every Media registered under username,
	// or an empty slice when there is none.
	FindMediaByUsername(ctx context.Context, username string) ([]model.Media, error)
	UpdateMedia(ctx context.Context, media *model.Media) error
	DeleteMedia(ctx context.Context, id int64) error
}

type PostRepository interface {
	CreatePost(ctx context.Context, post *model.Post) error
	ListPosts(ctx context.Context) ([]model.Post, error)
	GetPostByID(ctx context.Context, id int64) (*model.Post, error)
	UpdatePost(ctx context.Context, post *model.Post) error
	DeletePost(ctx context.Context, id int64) error
}

type PublicationRepository interface {
	CreatePublication(ctx context.Context, publication *model.Publication) error
	ListPublications(ctx context.Context) ([]model.Publication, error)
	GetPublicationByID(ctx context.Context, id int64) (*model.Publication, error)
	UpdatePublication(ctx context.Context, publication *model.Publication) error
	DeletePublication(ctx context.Context, id int64) error
}

// Store is a complete backend: all three repositories behind one connection.
type Store interface {
	MediaRepository
	PostRepository
	PublicationRepository
	Ping(ctx context.Context) error
	Close() error
}
