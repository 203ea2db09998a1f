package matchd

import "time"

// StudyTime values accepted in profiles and queries.
const (
	Morning   = "morning"
	Afternoon = "afternoon"
	Evening   = "evening"
	Night     = "night"
	Flexible  = "flexible"
)

// TeamPref values accepted in profiles and queries.
const (
	Solo = "solo"
	Team = "team"
)

// User is a study profile.
type User struct {
	ID            string
	Name          string
	Username      string
	Email         string
	AvatarID      string
	Bio           string
	Domains       []string
	LearningStyle string
	StudyTime     string
	TeamPref      string
}

// Post is a content post.
type Post struct {
	ID        string
	AuthorID  string
	Title     string
	Summary   string
	Content   string
	Tags      []string
	Likes     []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PartnerQuery describes a partner search. Zero fields fall back to the
// searcher's own profile.
type PartnerQuery struct {
	UserID    string
	Domains   []string
	StudyTime string
	TeamPref  string
}

// Match is one ranked partner candidate.
type Match struct {
	User    User
	Score   int
	Reasons []string
}

// Author is the resolved display author of a recommended post.
type Author struct {
	ID       string
	Name     string
	AvatarID string
}

// Breakdown itemizes a recommendation score.
type Breakdown struct {
	Relevance  int
	Popularity int
	AgePenalty int
}

// Recommendation is one ranked post.
type Recommendation struct {
	Post      Post
	Author    Author
	Score     int
	Breakdown Breakdown
}

// HealthReport aggregates component checks.
type HealthReport struct {
	Status string
	Checks map[string]string
}
