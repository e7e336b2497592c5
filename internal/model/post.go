package model

// Post is a piece of content that can be scheduled on any number of Media.
// Image holds a URL; the file itself lives elsewhere.
type Post struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`
	Image string `json:"image"`
}
