package model

import (
	"testing"
	"time"
)

func TestPublicationState(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		date    time.Time
		wantDue bool
		want    PublicationState
	}{
		{"one day ahead", now.Add(24 * time.Hour), false, StateScheduled},
		{"one nanosecond ahead", now.Add(time.Nanosecond), false, StateScheduled},
		{"exactly now", now, true, StateDue},
		{"one day ago", now.Add(-24 * time.Hour), true, StateDue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Publication{Date: tt.date}
			if got := p.IsDue(now); got != tt.wantDue {
				t.Errorf("IsDue() = %v, want %v", got, tt.wantDue)
			}
			if got := p.State(now); got != tt.want {
				t.Errorf("State() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMediaSamePair(t *testing.T) {
	m := Media{ID: 1, Title: "Instagram", Username: "u1"}

	if !m.SamePair("Instagram", "u1") {
		t.Error("SamePair() = false for identical pair")
	}
	if m.SamePair("Instagram", "u2") {
		t.Error("SamePair() = true for different username")
	}
	if m.SamePair("instagram", "u1") {
		t.Error("SamePair() should be case-sensitive")
	}
}
