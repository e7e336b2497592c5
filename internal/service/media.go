// Package service contains the business rules of the scheduler.
//
// LAYERING:
//
//	Handler (HTTP)  → parses and validates requests, writes responses
//	Service         → enforces business rules, orchestrates repositories
//	Repository      → reads/writes the store
//
// Services accept plain Go values (ids, strings, time.Time), never HTTP
// types, and return apperror values the handler maps to status codes.
// They depend on the repository interfaces, not on sqlite or postgres, so
// tests inject in-memory fakes.
//
// CONCURRENCY:
// Each operation is a sequence of single-statement store calls with no
// surrounding transaction. Two requests racing on the same record can both
// pass a check before either writes.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/publication-scheduler/internal/apperror"
	"github.com/sakif/publication-scheduler/internal/model"
	"github.com/sakif/publication-scheduler/internal/repository"
)

// MediaService manages social-media accounts. A (title, username) pair may
// only be registered once.
type MediaService struct {
	repo   repository.MediaRepository
	logger *slog.Logger
}

func NewMediaService(repo repository.MediaRepository, logger *slog.Logger) *MediaService {
	return &MediaService{
		repo:   repo,
		logger: logger,
	}
}

// Create registers a new Media. It returns a Conflict error when a Media
// with the same title already exists under username.
func (s *MediaService) Create(ctx context.Context, title, username string) (*model.Media, error) {
	if err := s.checkConflict(ctx, title, username); err != nil {
		return nil, err
	}

	media := &model.Media{
		Title:    title,
		Username: username,
	}

	if err := s.repo.CreateMedia(ctx, media); err != nil {
		s.logger.Error("failed to create media",
			slog.String("title", title),
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating media: %w", err)
	}

	s.logger.Info("media created",
		slog.Int64("id", media.ID),
		slog.String("title", media.Title),
		slog.String("username", media.Username),
	)

	return media, nil
}

func (s *MediaService) FindAll(ctx context.Context) ([]model.Media, error) {
	medias, err := s.repo.ListMedia(ctx)
	if err != nil {
		s.logger.Error("failed to list medias", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing medias: %w", err)
	}
	return medias, nil
}

// FindOne returns the Media with id, or apperror.ErrNotFound.
func (s *MediaService) FindOne(ctx context.Context, id int64) (*model.Media, error) {
	return s.repo.GetMediaByID(ctx, id)
}

// Update replaces title and username of an existing Media.
//
// The conflict check runs against every Media under the new username,
// including the one being updated: resubmitting the current pair is a
// Conflict.
func (s *MediaService) Update(ctx context.Context, id int64, title, username string) (*model.Media, error) {
	media, err := s.repo.GetMediaByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkConflict(ctx, title, username); err != nil {
		return nil, err
	}

	media.Title = title
	media.Username = username

	if err := s.repo.UpdateMedia(ctx, media); err != nil {
		if apperror.IsNotFound(err) {
			return nil, err
		}
		s.logger.Error("failed to update media",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating media: %w", err)
	}

	s.logger.Info("media updated",
		slog.Int64("id", media.ID),
		slog.String("title", media.Title),
		slog.String("username", media.Username),
	)

	return media, nil
}

// Remove deletes a Media and returns the record as it was before deletion.
// Publications that reference it are left in place.
func (s *MediaService) Remove(ctx context.Context, id int64) (*model.Media, error) {
	media, err := s.repo.GetMediaByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.DeleteMedia(ctx, id); err != nil {
		if apperror.IsNotFound(err) {
			return nil, err
		}
		s.logger.Error("failed to delete media",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("deleting media: %w", err)
	}

	s.logger.Info("media deleted", slog.Int64("id", id))
	return media, nil
}

// checkConflict reports a Conflict when any Media registered under username
// already carries title. An unknown username is never a conflict.
func (s *MediaService) checkConflict(ctx context.Context, title, username string) error {
	existing, err := s.repo.FindMediaByUsername(ctx, username)
	if err != nil {
		s.logger.Error("failed to look up media by username",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("looking up media by username: %w", err)
	}

	for _, m := range existing {
		if m.SamePair(title, username) {
			s.logger.Warn("media conflict",
				slog.Int64("existing_id", m.ID),
				slog.String("title", title),
				slog.String("username", username),
			)
			return apperror.Conflict("media",
				fmt.Sprintf("title %q is already registered for username %q", title, username))
		}
	}
	return nil
}
