package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
)

// HealthMessage is the body of GET /health.
const HealthMessage = "I'm okay!"

// Pinger is satisfied by repository.Store.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store  Pinger
	logger *slog.Logger
}

func NewHealthHandler(store Pinger, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{store: store, logger: logger}
}

// HandleHealth is a liveness probe and never touches the store.
// HTTP: GET /health
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.PlainText(w, r, HealthMessage)
}

// HandleReady reports whether the store answers a ping within two seconds.
// HTTP: GET /ready
func (h *HealthHandler) HandleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.logger.Warn("readiness check failed", slog.String("error", err.Error()))
		render.Status(r, http.StatusServiceUnavailable)
		render.PlainText(w, r, "store unavailable")
		return
	}
	render.Status(r, http.StatusOK)
	render.PlainText(w, r, "ready")
}
