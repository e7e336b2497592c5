package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sakif/publication-scheduler/internal/model"
)

type PostService interface {
	Create(ctx context.Context, title, text, image string) (*model.Post, error)
	FindAll(ctx context.Context) ([]model.Post, error)
	FindOne(ctx context.Context, id int64) (*model.Post, error)
	Update(ctx context.Context, id int64, title, text, image string) (*model.Post, error)
	Remove(ctx context.Context, id int64) (*model.Post, error)
}

// PostHandler exposes Post CRUD under /posts.
type PostHandler struct {
	svc    PostService
	logger *slog.Logger
}

func NewPostHandler(svc PostService, logger *slog.Logger) *PostHandler {
	return &PostHandler{svc: svc, logger: logger}
}

// HandleCreate stores a Post.
//
// HTTP: POST /posts
// REQUEST BODY: {"title": "...", "text": "...", "image": "https://..."}
func (h *PostHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req PostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	post, err := h.svc.Create(r.Context(), *req.Title, *req.Text, *req.Image)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, post)
}

func (h *PostHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.FindAll(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusOK, posts)
}

func (h *PostHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	post, err := h.svc.FindOne(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusOK, post)
}

// HandleUpdate fully replaces a Post. HTTP: PUT /posts/{id}
func (h *PostHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req PostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	post, err := h.svc.Update(r.Context(), id, *req.Title, *req.Text, *req.Image)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusOK, post)
}

func (h *PostHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	post, err := h.svc.Remove(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusOK, post)
}
