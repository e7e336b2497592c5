package handler

// RESPONSE HELPERS:
// Every handler answers through writeJSON and writeError so all endpoints
// share one body shape for errors:
//
//	{"error": "not_found", "message": "media not found with id 7"}
//
// The "error" field is machine readable; "message" is for humans.

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/sakif/publication-scheduler/internal/apperror"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error   string `json:"error"`   // Machine-readable error type (e.g., "not_found")
	Message string `json:"message"` // Human-readable description
}

// writeJSON sends data as JSON with the given status code.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	render.Status(r, status)
	render.JSON(w, r, data)
}

// writeError maps a domain error to its HTTP status and sends it.
//
// The mapping walks the error chain with errors.Is, so a service that wraps
// an apperror with fmt.Errorf("...: %w") still lands on the right status.
// Errors outside the taxonomy become a 500 whose details go to the log only.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var appErr *apperror.AppError

	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		errorType := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest // 400
			errorType = "validation_error"
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound // 404
			errorType = "not_found"
		case errors.Is(err, apperror.ErrForbidden):
			status = http.StatusForbidden // 403
			errorType = "forbidden"
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusConflict // 409
			errorType = "conflict"
		}

		if status != http.StatusInternalServerError {
			writeJSON(w, r, status, ErrorResponse{
				Error:   errorType,
				Message: appErr.Message,
			})
			return
		}
	}

	// NEVER expose internal error details to the client: the raw message may
	// carry SQL or file paths.
	logger.Error("request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
	writeJSON(w, r, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}

// decodeJSON reads the request body into v. Any decoding problem (empty
// body, malformed JSON, a string where a number belongs) is a validation
// error, and so is anything after the first JSON value.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return apperror.ValidationFailed("body", "invalid JSON body: "+err.Error())
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return apperror.ValidationFailed("body", "invalid JSON body: unexpected data after the JSON object")
	}
	return nil
}

// parseID reads the {id} URL parameter as a positive-or-zero int64.
func parseID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperror.ValidationFailed("id", "id must be an integer, got "+strconv.Quote(raw))
	}
	return id, nil
}
