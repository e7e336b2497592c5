package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sakif/publication-scheduler/internal/apperror"
	"github.com/sakif/publication-scheduler/internal/model"
)

// seedRefs creates one Media and one Post and returns their ids.
func seedRefs(t *testing.T, svc testServices) (mediaID, postID int64) {
	t.Helper()
	ctx := context.Background()
	m, err := svc.medias.Create(ctx, "Instagram", "alice")
	if err != nil {
		t.Fatalf("setup media: %v", err)
	}
	p, err := svc.posts.Create(ctx, "Launch", "We are live", "img.png")
	if err != nil {
		t.Fatalf("setup post: %v", err)
	}
	return m.ID, p.ID
}

func TestPublicationCreate_Success(t *testing.T) {
	svc := newTestServices(t)
	mediaID, postID := seedRefs(t, svc)
	date := fixedNow.Add(48 * time.Hour)

	pub, err := svc.publications.Create(context.Background(), mediaID, postID, date)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if pub.MediaID != mediaID || pub.PostID != postID || !pub.Date.Equal(date) {
		t.Errorf("Create() = %+v", *pub)
	}
	if pub.State(fixedNow) != model.StateScheduled {
		t.Errorf("State() = %q, want %q", pub.State(fixedNow), model.StateScheduled)
	}
}

// Creation is not time-gated.
func TestPublicationCreate_PastDateAccepted(t *testing.T) {
	svc := newTestServices(t)
	mediaID, postID := seedRefs(t, svc)

	pub, err := svc.publications.Create(context.Background(), mediaID, postID, fixedNow.Add(-time.Hour))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if !pub.IsDue(fixedNow) {
		t.Error("expected past-dated publication to be due")
	}
}

func TestPublicationCreate_MissingReferences(t *testing.T) {
	tests := []struct {
		name      string
		badMedia  bool
		badPost   bool
		wantInMsg string
	}{
		{name: "unknown media", badMedia: true, wantInMsg: "media"},
		{name: "unknown post", badPost: true, wantInMsg: "post"},
		{name: "both unknown reports media first", badMedia: true, badPost: true, wantInMsg: "media"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestServices(t)
			mediaID, postID := seedRefs(t, svc)
			if tt.badMedia {
				mediaID = 999
			}
			if tt.badPost {
				postID = 998
			}

			_, err := svc.publications.Create(context.Background(), mediaID, postID, fixedNow.Add(time.Hour))
			if !errors.Is(err, apperror.ErrNotFound) {
				t.Fatalf("error = %v, want ErrNotFound", err)
			}
			var appErr *apperror.AppError
			if !errors.As(err, &appErr) || appErr.Message[:len(tt.wantInMsg)] != tt.wantInMsg {
				t.Errorf("message = %q, want prefix %q", err.Error(), tt.wantInMsg)
			}
			if len(svc.store.publications) != 0 {
				t.Errorf("store has %d publications, want 0", len(svc.store.publications))
			}
		})
	}
}

func TestPublicationUpdate_Scheduled(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	mediaID, postID := seedRefs(t, svc)
	otherPost, _ := svc.posts.Create(ctx, "Teaser", "soon", "teaser.png")

	created, _ := svc.publications.Create(ctx, mediaID, postID, fixedNow.Add(time.Hour))
	newDate := fixedNow.Add(72 * time.Hour)

	updated, err := svc.publications.Update(ctx, created.ID, mediaID, otherPost.ID, newDate)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	found, _ := svc.publications.FindOne(ctx, created.ID)
	if *found != *updated {
		t.Errorf("FindOne() = %+v, want %+v", *found, *updated)
	}
	if found.PostID != otherPost.ID || !found.Date.Equal(newDate) {
		t.Errorf("publication not fully replaced: %+v", *found)
	}
}

func TestPublicationUpdate_DueIsForbidden(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
	}{
		{name: "date in the past", date: fixedNow.Add(-time.Minute)},
		{name: "date exactly now", date: fixedNow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestServices(t)
			ctx := context.Background()
			mediaID, postID := seedRefs(t, svc)

			created, _ := svc.publications.Create(ctx, mediaID, postID, tt.date)
			before := svc.store.publications[created.ID]

			// A future date in the request does not help: the stored date decides.
			_, err := svc.publications.Update(ctx, created.ID, mediaID, postID, fixedNow.Add(24*time.Hour))
			if !errors.Is(err, apperror.ErrForbidden) {
				t.Fatalf("error = %v, want ErrForbidden", err)
			}
			if after := svc.store.publications[created.ID]; after != before {
				t.Errorf("stored record changed: %+v -> %+v", before, after)
			}
		})
	}
}

// Forbidden takes precedence over unknown references.
func TestPublicationUpdate_ForbiddenBeforeReferenceChecks(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	mediaID, postID := seedRefs(t, svc)

	created, _ := svc.publications.Create(ctx, mediaID, postID, fixedNow.Add(-time.Hour))

	_, err := svc.publications.Update(ctx, created.ID, 999, 998, fixedNow.Add(time.Hour))
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("error = %v, want ErrForbidden", err)
	}
}

func TestPublicationUpdate_UnknownReferences(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	mediaID, postID := seedRefs(t, svc)

	created, _ := svc.publications.Create(ctx, mediaID, postID, fixedNow.Add(time.Hour))

	if _, err := svc.publications.Update(ctx, created.ID, 999, postID, fixedNow.Add(2*time.Hour)); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("unknown media: error = %v, want ErrNotFound", err)
	}
	if _, err := svc.publications.Update(ctx, created.ID, mediaID, 999, fixedNow.Add(2*time.Hour)); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("unknown post: error = %v, want ErrNotFound", err)
	}
	if got := svc.store.publications[created.ID]; got != *created {
		t.Errorf("stored record changed to %+v", got)
	}
}

// The clock is consulted on every call: a publication that was scheduled
// becomes immutable once time catches up with it.
func TestPublicationUpdate_BecomesDueAsClockAdvances(t *testing.T) {
	store := newFakeStore()
	logger := testLogger()
	now := fixedNow
	pubs := NewPublicationService(store, store, store, logger, WithClock(func() time.Time { return now }))
	medias := NewMediaService(store, logger)
	posts := NewPostService(store, logger)
	ctx := context.Background()

	m, _ := medias.Create(ctx, "Instagram", "alice")
	p, _ := posts.Create(ctx, "Launch", "text", "img.png")
	created, _ := pubs.Create(ctx, m.ID, p.ID, fixedNow.Add(time.Hour))

	if _, err := pubs.Update(ctx, created.ID, m.ID, p.ID, fixedNow.Add(time.Hour)); err != nil {
		t.Fatalf("Update() while scheduled error = %v", err)
	}

	now = fixedNow.Add(2 * time.Hour)

	if _, err := pubs.Update(ctx, created.ID, m.ID, p.ID, fixedNow.Add(5*time.Hour)); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("Update() after due error = %v, want ErrForbidden", err)
	}
}

func TestPublicationRemove_AnyState(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
	}{
		{name: "scheduled", date: fixedNow.Add(time.Hour)},
		{name: "due", date: fixedNow.Add(-time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestServices(t)
			ctx := context.Background()
			mediaID, postID := seedRefs(t, svc)

			created, _ := svc.publications.Create(ctx, mediaID, postID, tt.date)

			removed, err := svc.publications.Remove(ctx, created.ID)
			if err != nil {
				t.Fatalf("Remove() error = %v", err)
			}
			if *removed != *created {
				t.Errorf("Remove() = %+v, want %+v", *removed, *created)
			}
			if _, err := svc.publications.FindOne(ctx, created.ID); !errors.Is(err, apperror.ErrNotFound) {
				t.Errorf("after remove: error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestPublication_UnknownID(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	mediaID, postID := seedRefs(t, svc)

	if _, err := svc.publications.FindOne(ctx, 500); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("FindOne() error = %v, want ErrNotFound", err)
	}
	if _, err := svc.publications.Update(ctx, 500, mediaID, postID, fixedNow.Add(time.Hour)); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
	if _, err := svc.publications.Remove(ctx, 500); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Remove() error = %v, want ErrNotFound", err)
	}
}

func TestPublicationFindAll(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	mediaID, postID := seedRefs(t, svc)

	svc.publications.Create(ctx, mediaID, postID, fixedNow.Add(time.Hour))
	svc.publications.Create(ctx, mediaID, postID, fixedNow.Add(2*time.Hour))

	all, err := svc.publications.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("FindAll() returned %d, want 2", len(all))
	}
	if all[0].ID > all[1].ID {
		t.Errorf("FindAll() not ordered by id: %d, %d", all[0].ID, all[1].ID)
	}
}
