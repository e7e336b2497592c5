package model

import "time"

// PublicationState is derived from a Publication's date and the wall clock.
// Nothing stores it: a Publication becomes Due purely by time passing.
type PublicationState string

const (
	// StateScheduled means the date is still in the future. Update and delete are allowed.
	StateScheduled PublicationState = "scheduled"
	// StateDue means the date is at or before now. Only delete is allowed.
	StateDue PublicationState = "due"
)

// Publication binds one Post to one Media on a specific date.
type Publication struct {
	ID      int64     `json:"id"`
	MediaID int64     `json:"mediaId"`
	PostID  int64     `json:"postId"`
	Date    time.Time `json:"date"`
}

// IsDue reports whether the stored date has been reached at instant now.
// A date exactly equal to now counts as due.
func (p Publication) IsDue(now time.Time) bool {
	return !p.Date.After(now)
}

// State returns the lifecycle state of p as seen at instant now.
func (p Publication) State(now time.Time) PublicationState {
	if p.IsDue(now) {
		return StateDue
	}
	return StateScheduled
}
