package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/publication-scheduler/internal/apperror"
)

func TestPost_CRUD(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	p := createTestPost(t, db, "launch")
	if p.ID == 0 {
		t.Fatal("CreatePost() did not set ID")
	}

	found, err := db.GetPostByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetPostByID() error = %v", err)
	}
	if *found != *p {
		t.Errorf("GetPostByID() = %+v, want %+v", *found, *p)
	}

	p.Title = "relaunch"
	p.Text = "new text"
	p.Image = "https://img.example.com/new.png"
	if err := db.UpdatePost(ctx, p); err != nil {
		t.Fatalf("UpdatePost() error = %v", err)
	}
	found, err = db.GetPostByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetPostByID() after update error = %v", err)
	}
	if *found != *p {
		t.Errorf("after update = %+v, want %+v", *found, *p)
	}

	posts, err := db.ListPosts(ctx)
	if err != nil {
		t.Fatalf("ListPosts() error = %v", err)
	}
	if len(posts) != 1 {
		t.Errorf("ListPosts() returned %d posts, want 1", len(posts))
	}

	if err := db.DeletePost(ctx, p.ID); err != nil {
		t.Fatalf("DeletePost() error = %v", err)
	}
	posts, err = db.ListPosts(ctx)
	if err != nil {
		t.Fatalf("ListPosts() error = %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("ListPosts() after delete returned %d posts, want 0", len(posts))
	}
}

func TestPost_NotFound(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, err := db.GetPostByID(ctx, 1); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetPostByID() error = %v, want ErrNotFound", err)
	}

	p := createTestPost(t, db, "x")
	p.ID = 12345
	if err := db.UpdatePost(ctx, p); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("UpdatePost() error = %v, want ErrNotFound", err)
	}
	if err := db.DeletePost(ctx, 12345); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("DeletePost() error = %v, want ErrNotFound", err)
	}
}
