package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sakif/publication-scheduler/internal/model"
)

// MediaService is the subset of service.MediaService the handler calls.
type MediaService interface {
	Create(ctx context.Context, title, username string) (*model.Media, error)
	FindAll(ctx context.Context) ([]model.Media, error)
	FindOne(ctx context.Context, id int64) (*model.Media, error)
	Update(ctx context.Context, id int64, title, username string) (*model.Media, error)
	Remove(ctx context.Context, id int64) (*model.Media, error)
}

// MediaHandler exposes Media CRUD under /medias.
type MediaHandler struct {
	svc    MediaService
	logger *slog.Logger
}

func NewMediaHandler(svc MediaService, logger *slog.Logger) *MediaHandler {
	return &MediaHandler{svc: svc, logger: logger}
}

// HandleCreate registers a Media.
//
// HTTP: POST /medias
// REQUEST BODY: {"title": "Instagram", "username": "alice"}
func (h *MediaHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req MediaRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	media, err := h.svc.Create(r.Context(), *req.Title, *req.Username)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, media)
}

// HandleList returns every Media. HTTP: GET /medias
func (h *MediaHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	medias, err := h.svc.FindAll(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusOK, medias)
}

// HandleGet returns one Media. HTTP: GET /medias/{id}
func (h *MediaHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	media, err := h.svc.FindOne(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusOK, media)
}

// HandleUpdate replaces title and username. HTTP: PUT /medias/{id}
func (h *MediaHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req MediaRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	media, err := h.svc.Update(r.Context(), id, *req.Title, *req.Username)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusOK, media)
}

// HandleDelete removes a Media and echoes the removed record.
// HTTP: DELETE /medias/{id}
func (h *MediaHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	media, err := h.svc.Remove(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusOK, media)
}
