package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sakif/publication-scheduler/internal/apperror"
	"github.com/sakif/publication-scheduler/internal/model"
	"github.com/sakif/publication-scheduler/internal/repository"
)

// PublicationService binds Posts to Media on a date.
//
// STATE:
// A Publication is Scheduled while its stored date lies in the future and
// Due once the clock reaches it. Nothing flips the state; it is derived from
// the clock on every call. Due publications can be deleted but not updated.
type PublicationService struct {
	publications repository.PublicationRepository
	medias       repository.MediaRepository
	posts        repository.PostRepository
	logger       *slog.Logger
	now          func() time.Time
}

// PublicationOption customises a PublicationService.
type PublicationOption func(*PublicationService)

// WithClock replaces time.Now as the source of "now".
func WithClock(now func() time.Time) PublicationOption {
	return func(s *PublicationService) {
		s.now = now
	}
}

func NewPublicationService(
	publications repository.PublicationRepository,
	medias repository.MediaRepository,
	posts repository.PostRepository,
	logger *slog.Logger,
	opts ...PublicationOption,
) *PublicationService {
	s := &PublicationService{
		publications: publications,
		medias:       medias,
		posts:        posts,
		logger:       logger,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create schedules post postID on media mediaID at date. Both references
// must exist. A date that is already due is accepted.
func (s *PublicationService) Create(ctx context.Context, mediaID, postID int64, date time.Time) (*model.Publication, error) {
	if err := s.resolveReferences(ctx, mediaID, postID); err != nil {
		return nil, err
	}

	publication := &model.Publication{
		MediaID: mediaID,
		PostID:  postID,
		Date:    date,
	}

	if err := s.publications.CreatePublication(ctx, publication); err != nil {
		s.logger.Error("failed to create publication",
			slog.Int64("media_id", mediaID),
			slog.Int64("post_id", postID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating publication: %w", err)
	}

	if publication.IsDue(s.now()) {
		s.logger.Warn("publication created with a date already due",
			slog.Int64("id", publication.ID),
			slog.Time("date", publication.Date),
		)
	}

	s.logger.Info("publication created",
		slog.Int64("id", publication.ID),
		slog.Int64("media_id", publication.MediaID),
		slog.Int64("post_id", publication.PostID),
		slog.Time("date", publication.Date),
	)

	return publication, nil
}

func (s *PublicationService) FindAll(ctx context.Context) ([]model.Publication, error) {
	publications, err := s.publications.ListPublications(ctx)
	if err != nil {
		s.logger.Error("failed to list publications", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing publications: %w", err)
	}
	return publications, nil
}

func (s *PublicationService) FindOne(ctx context.Context, id int64) (*model.Publication, error) {
	return s.publications.GetPublicationByID(ctx, id)
}

// Update reschedules a Publication. The checks run in a fixed order:
//
//  1. the Publication must exist (NotFound)
//  2. its stored date must still be in the future (Forbidden)
//  3. the new Media must exist (NotFound)
//  4. the new Post must exist (NotFound)
//
// Step 2 looks at the stored date, never the proposed one.
func (s *PublicationService) Update(ctx context.Context, id, mediaID, postID int64, date time.Time) (*model.Publication, error) {
	publication, err := s.publications.GetPublicationByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if publication.IsDue(s.now()) {
		s.logger.Warn("publication update rejected: already due",
			slog.Int64("id", id),
			slog.Time("date", publication.Date),
		)
		return nil, apperror.Forbidden(
			fmt.Sprintf("publication %d was due at %s and can no longer be modified",
				id, publication.Date.UTC().Format(time.RFC3339)))
	}

	if err := s.resolveReferences(ctx, mediaID, postID); err != nil {
		return nil, err
	}

	publication.MediaID = mediaID
	publication.PostID = postID
	publication.Date = date

	if err := s.publications.UpdatePublication(ctx, publication); err != nil {
		if apperror.IsNotFound(err) {
			return nil, err
		}
		s.logger.Error("failed to update publication",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating publication: %w", err)
	}

	s.logger.Info("publication updated",
		slog.Int64("id", publication.ID),
		slog.Int64("media_id", publication.MediaID),
		slog.Int64("post_id", publication.PostID),
		slog.Time("date", publication.Date),
	)

	return publication, nil
}

// Remove deletes a Publication whatever its state and returns the removed
// record.
func (s *PublicationService) Remove(ctx context.Context, id int64) (*model.Publication, error) {
	publication, err := s.publications.GetPublicationByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.publications.DeletePublication(ctx, id); err != nil {
		if apperror.IsNotFound(err) {
			return nil, err
		}
		s.logger.Error("failed to delete publication",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("deleting publication: %w", err)
	}

	s.logger.Info("publication deleted",
		slog.Int64("id", id),
		slog.String("state", string(publication.State(s.now()))),
	)
	return publication, nil
}

// resolveReferences checks the Media first, then the Post.
func (s *PublicationService) resolveReferences(ctx context.Context, mediaID, postID int64) error {
	if _, err := s.medias.GetMediaByID(ctx, mediaID); err != nil {
		if apperror.IsNotFound(err) {
			return err
		}
		return fmt.Errorf("resolving media %d: %w", mediaID, err)
	}
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		if apperror.IsNotFound(err) {
			return err
		}
		return fmt.Errorf("resolving post %d: %w", postID, err)
	}
	return nil
}
