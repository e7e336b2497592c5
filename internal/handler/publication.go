package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/sakif/publication-scheduler/internal/model"
)

type PublicationService interface {
	Create(ctx context.Context, mediaID, postID int64, date time.Time) (*model.Publication, error)
	FindAll(ctx context.Context) ([]model.Publication, error)
	FindOne(ctx context.Context, id int64) (*model.Publication, error)
	Update(ctx context.Context, id, mediaID, postID int64, date time.Time) (*model.Publication, error)
	Remove(ctx context.Context, id int64) (*model.Publication, error)
}

// PublicationHandler exposes Publication CRUD under /publications.
//
// A PUT on a publication whose stored date has passed answers 403; DELETE
// is always allowed.
type PublicationHandler struct {
	svc    PublicationService
	logger *slog.Logger
}

func NewPublicationHandler(svc PublicationService, logger *slog.Logger) *PublicationHandler {
	return &PublicationHandler{svc: svc, logger: logger}
}

// HandleCreate schedules a Post on a Media.
//
// HTTP: POST /publications
// REQUEST BODY: {"mediaId": 1, "postId": 2, "date": "2030-01-31T09:00:00Z"}
func (h *PublicationHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req PublicationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	date, err := req.Validate()
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	publication, err := h.svc.Create(r.Context(), *req.MediaID, *req.PostID, date)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, publication)
}

func (h *PublicationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	publications, err := h.svc.FindAll(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusOK, publications)
}

func (h *PublicationHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	publication, err := h.svc.FindOne(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusOK, publication)
}

// HandleUpdate reschedules a Publication. HTTP: PUT /publications/{id}
func (h *PublicationHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req PublicationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	date, err := req.Validate()
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	publication, err := h.svc.Update(r.Context(), id, *req.MediaID, *req.PostID, date)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusOK, publication)
}

func (h *PublicationHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	publication, err := h.svc.Remove(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusOK, publication)
}
