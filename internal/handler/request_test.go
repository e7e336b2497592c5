package handler

import (
	"errors"
	"testing"
	"time"

	"github.com/sakif/publication-scheduler/internal/apperror"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2031-01-02T10:00:00Z", time.Date(2031, 1, 2, 10, 0, 0, 0, time.UTC), true},
		{"2031-01-02T10:00:00.250Z", time.Date(2031, 1, 2, 10, 0, 0, 250_000_000, time.UTC), true},
		{"2031-01-02T10:00:00-05:00", time.Date(2031, 1, 2, 15, 0, 0, 0, time.UTC), true},
		{"2031-01-02T10:00:00", time.Date(2031, 1, 2, 10, 0, 0, 0, time.UTC), true},
		{"2031-01-02T10:00", time.Date(2031, 1, 2, 10, 0, 0, 0, time.UTC), true},
		{"2031-01-02T10:00Z", time.Date(2031, 1, 2, 10, 0, 0, 0, time.UTC), true},
		{"2031-01-02T10:00+02:00", time.Date(2031, 1, 2, 8, 0, 0, 0, time.UTC), true},
		{"2031-01-02", time.Date(2031, 1, 2, 0, 0, 0, 0, time.UTC), true},
		{"02/01/2031", time.Time{}, false},
		{"2031-13-01", time.Time{}, false},
		{"", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseDate(tt.in)
			if ok != tt.ok {
				t.Fatalf("parseDate(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("parseDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
			if ok && got.Location() != time.UTC {
				t.Errorf("parseDate(%q) location = %v, want UTC", tt.in, got.Location())
			}
		})
	}
}

func TestMediaRequestValidate(t *testing.T) {
	str := func(s string) *string { return &s }

	tests := []struct {
		name    string
		req     MediaRequest
		wantErr bool
	}{
		{"valid", MediaRequest{Title: str("Instagram"), Username: str("alice")}, false},
		{"missing title", MediaRequest{Username: str("alice")}, true},
		{"blank username", MediaRequest{Title: str("Instagram"), Username: str(" ")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("error = %v, want ErrValidation", err)
			}
		})
	}
}
