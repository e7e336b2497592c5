// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data. The `json:"..."` struct tags
// control how each record is written to and read from HTTP bodies.
package model

// Media is a social-media account a Publication can target, identified by
// the platform title (e.g. "Instagram") and the account username.
//
// UNIQUENESS:
// No two Media may share the same (Title, Username) pair. This is enforced by
// the service layer, not by a store-level UNIQUE constraint.
type Media struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Username string `json:"username"`
}

// SamePair reports whether m already holds the given (title, username) pair.
func (m Media) SamePair(title, username string) bool {
	return m.Title == title && m.Username == username
}
