package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sort"
	"testing"
	"time"

	"github.com/sakif/publication-scheduler/internal/apperror"
	"github.com/sakif/publication-scheduler/internal/model"
)

// =========================================================================
// FAKE STORE
// =========================================================================
//
// fakeStore implements all three repository interfaces in memory, the same
// way sqlite.DB does on disk. failWith, when set, is returned by every call
// so tests can simulate a broken store.

type fakeStore struct {
	medias       map[int64]model.Media
	posts        map[int64]model.Post
	publications map[int64]model.Publication
	nextID       int64
	failWith     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		medias:       make(map[int64]model.Media),
		posts:        make(map[int64]model.Post),
		publications: make(map[int64]model.Publication),
	}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func (f *fakeStore) CreateMedia(_ context.Context, media *model.Media) error {
	if f.failWith != nil {
		return f.failWith
	}
	media.ID = f.id()
	f.medias[media.ID] = *media
	return nil
}

func (f *fakeStore) ListMedia(_ context.Context) ([]model.Media, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	result := []model.Media{}
	for _, id := range sortedKeys(f.medias) {
		result = append(result, f.medias[id])
	}
	return result, nil
}

func (f *fakeStore) GetMediaByID(_ context.Context, id int64) (*model.Media, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	m, ok := f.medias[id]
	if !ok {
		return nil, apperror.NotFound("media", id)
	}
	return &m, nil
}

func (f *fakeStore) FindMediaByUsername(_ context.Context, username string) ([]model.Media, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	result := []model.Media{}
	for _, id := range sortedKeys(f.medias) {
		if m := f.medias[id]; m.Username == username {
			result = append(result, m)
		}
	}
	return result, nil
}

func (f *fakeStore) UpdateMedia(_ context.Context, media *model.Media) error {
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.medias[media.ID]; !ok {
		return apperror.NotFound("media", media.ID)
	}
	f.medias[media.ID] = *media
	return nil
}

func (f *fakeStore) DeleteMedia(_ context.Context, id int64) error {
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.medias[id]; !ok {
		return apperror.NotFound("media", id)
	}
	delete(f.medias, id)
	return nil
}

func (f *fakeStore) CreatePost(_ context.Context, post *model.Post) error {
	if f.failWith != nil {
		return f.failWith
	}
	post.ID = f.id()
	f.posts[post.ID] = *post
	return nil
}

func (f *fakeStore) ListPosts(_ context.Context) ([]model.Post, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	result := []model.Post{}
	for _, id := range sortedKeys(f.posts) {
		result = append(result, f.posts[id])
	}
	return result, nil
}

func (f *fakeStore) GetPostByID(_ context.Context, id int64) (*model.Post, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	p, ok := f.posts[id]
	if !ok {
		return nil, apperror.NotFound("post", id)
	}
	return &p, nil
}

func (f *fakeStore) UpdatePost(_ context.Context, post *model.Post) error {
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.posts[post.ID]; !ok {
		return apperror.NotFound("post", post.ID)
	}
	f.posts[post.ID] = *post
	return nil
}

func (f *fakeStore) DeletePost(_ context.Context, id int64) error {
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.posts[id]; !ok {
		return apperror.NotFound("post", id)
	}
	delete(f.posts, id)
	return nil
}

func (f *fakeStore) CreatePublication(_ context.Context, publication *model.Publication) error {
	if f.failWith != nil {
		return f.failWith
	}
	publication.ID = f.id()
	f.publications[publication.ID] = *publication
	return nil
}

func (f *fakeStore) ListPublications(_ context.Context) ([]model.Publication, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	result := []model.Publication{}
	for _, id := range sortedKeys(f.publications) {
		result = append(result, f.publications[id])
	}
	return result, nil
}

func (f *fakeStore) GetPublicationByID(_ context.Context, id int64) (*model.Publication, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	p, ok := f.publications[id]
	if !ok {
		return nil, apperror.NotFound("publication", id)
	}
	return &p, nil
}

func (f *fakeStore) UpdatePublication(_ context.Context, publication *model.Publication) error {
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.publications[publication.ID]; !ok {
		return apperror.NotFound("publication", publication.ID)
	}
	f.publications[publication.ID] = *publication
	return nil
}

func (f *fakeStore) DeletePublication(_ context.Context, id int64) error {
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.publications[id]; !ok {
		return apperror.NotFound("publication", id)
	}
	delete(f.publications, id)
	return nil
}

// =========================================================================
// TEST HELPERS
// =========================================================================

var errStoreDown = errors.New("store is down")

// fixedNow is the pinned clock used by every publication test.
var fixedNow = time.Date(2030, time.June, 15, 12, 0, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

type testServices struct {
	medias       *MediaService
	posts        *PostService
	publications *PublicationService
	store        *fakeStore
}

func newTestServices(t *testing.T) testServices {
	t.Helper()
	store := newFakeStore()
	logger := testLogger()
	return testServices{
		medias:       NewMediaService(store, logger),
		posts:        NewPostService(store, logger),
		publications: NewPublicationService(store, store, store, logger, WithClock(func() time.Time { return fixedNow })),
		store:        store,
	}
}
