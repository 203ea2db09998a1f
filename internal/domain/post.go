package domain

import "time"

// Post is a stored content post. AuthorID is a weak reference resolved only
// for display; Likes only matter by count for scoring. A zero CreatedAt means
// the timestamp was never recorded and the post takes the maximal age penalty.
type Post struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary,omitempty"`
	Content   string    `json:"content,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	Likes     []string  `json:"likes,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}
