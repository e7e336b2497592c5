package handler

import (
	"strings"
	"time"

	"github.com/sakif/publication-scheduler/internal/apperror"
)

// REQUEST VALIDATION:
// Each request body decodes into a struct of pointer fields so a missing
// field (nil) can be told apart from an empty one. Validate runs before any
// service call; the service never sees an incomplete request.

type MediaRequest struct {
	Title    *string `json:"title"`
	Username *string `json:"username"`
}

func (req MediaRequest) Validate() error {
	if err := requireString("title", req.Title); err != nil {
		return err
	}
	return requireString("username", req.Username)
}

type PostRequest struct {
	Title *string `json:"title"`
	Text  *string `json:"text"`
	Image *string `json:"image"`
}

func (req PostRequest) Validate() error {
	if err := requireString("title", req.Title); err != nil {
		return err
	}
	if err := requireString("text", req.Text); err != nil {
		return err
	}
	return requireString("image", req.Image)
}

type PublicationRequest struct {
	MediaID *int64  `json:"mediaId"`
	PostID  *int64  `json:"postId"`
	Date    *string `json:"date"`
}

// Validate checks presence of every field and parses the date. The parsed
// date is returned so callers do not parse twice.
func (req PublicationRequest) Validate() (time.Time, error) {
	if req.MediaID == nil {
		return time.Time{}, apperror.ValidationFailed("mediaId", "mediaId is required")
	}
	if req.PostID == nil {
		return time.Time{}, apperror.ValidationFailed("postId", "postId is required")
	}
	if err := requireString("date", req.Date); err != nil {
		return time.Time{}, err
	}
	date, ok := parseDate(*req.Date)
	if !ok {
		return time.Time{}, apperror.ValidationFailed("date",
			"date must be an ISO-8601 date string such as 2030-01-31 or 2030-01-31T09:00:00Z")
	}
	return date, nil
}

// dateLayouts are tried in order. Layouts without a zone are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	time.DateOnly,
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func requireString(field string, value *string) error {
	if value == nil {
		return apperror.ValidationFailed(field, field+" is required")
	}
	if strings.TrimSpace(*value) == "" {
		return apperror.ValidationFailed(field, field+" must not be empty")
	}
	return nil
}
