package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/publication-scheduler/internal/apperror"
	"github.com/sakif/publication-scheduler/internal/model"
	"github.com/sakif/publication-scheduler/internal/repository"
)

// PostService manages content payloads. Posts carry no uniqueness rule.
type PostService struct {
	repo   repository.PostRepository
	logger *slog.Logger
}

func NewPostService(repo repository.PostRepository, logger *slog.Logger) *PostService {
	return &PostService{
		repo:   repo,
		logger: logger,
	}
}

func (s *PostService) Create(ctx context.Context, title, text, image string) (*model.Post, error) {
	post := &model.Post{
		Title: title,
		Text:  text,
		Image: image,
	}

	if err := s.repo.CreatePost(ctx, post); err != nil {
		s.logger.Error("failed to create post",
			slog.String("title", title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating post: %w", err)
	}

	s.logger.Info("post created",
		slog.Int64("id", post.ID),
		slog.String("title", post.Title),
	)

	return post, nil
}

func (s *PostService) FindAll(ctx context.Context) ([]model.Post, error) {
	posts, err := s.repo.ListPosts(ctx)
	if err != nil {
		s.logger.Error("failed to list posts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	return posts, nil
}

func (s *PostService) FindOne(ctx context.Context, id int64) (*model.Post, error) {
	return s.repo.GetPostByID(ctx, id)
}

// Update fully replaces the content of an existing Post.
func (s *PostService) Update(ctx context.Context, id int64, title, text, image string) (*model.Post, error) {
	post, err := s.repo.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}

	post.Title = title
	post.Text = text
	post.Image = image

	if err := s.repo.UpdatePost(ctx, post); err != nil {
		if apperror.IsNotFound(err) {
			return nil, err
		}
		s.logger.Error("failed to update post",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating post: %w", err)
	}

	s.logger.Info("post updated", slog.Int64("id", post.ID))
	return post, nil
}

// Remove deletes a Post and returns the removed record.
func (s *PostService) Remove(ctx context.Context, id int64) (*model.Post, error) {
	post, err := s.repo.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.DeletePost(ctx, id); err != nil {
		if apperror.IsNotFound(err) {
			return nil, err
		}
		s.logger.Error("failed to delete post",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("deleting post: %w", err)
	}

	s.logger.Info("post deleted", slog.Int64("id", id))
	return post, nil
}
