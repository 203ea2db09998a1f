// Package domain holds the core records and enums shared by the ranking pipelines.
package domain

// StudyTime is a user's preferred study slot.
type StudyTime string

// Study time constants.
const (
	Morning   StudyTime = "morning"
	Afternoon StudyTime = "afternoon"
	Evening   StudyTime = "evening"
	Night     StudyTime = "night"
	// Flexible matches any slot and earns a reduced partner bonus.
	Flexible StudyTime = "flexible"
)

// IsValid checks if the study time is one of the supported values.
func (t StudyTime) IsValid() bool {
	return t == Morning || t == Afternoon || t == Evening || t == Night || t == Flexible
}

// TeamPref is a user's preferred collaboration style.
type TeamPref string

// Team preference constants.
const (
	Solo TeamPref = "solo"
	Team TeamPref = "team"
)

// IsValid checks if the team preference is one of the supported values.
func (p TeamPref) IsValid() bool {
	return p == Solo || p == Team
}

// User is a stored user record. The ranking services only read it; ownership
// stays with the storage collaborator. Credentials are never part of this
// record, and Email must not appear in any candidate output.
type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Username      string    `json:"username"`
	Email         string    `json:"email,omitempty"`
	AvatarID      string    `json:"avatar_id,omitempty"`
	Bio           string    `json:"bio,omitempty"`
	Domains       []string  `json:"domains,omitempty"`
	LearningStyle string    `json:"learning_style,omitempty"`
	StudyTime     StudyTime `json:"study_time,omitempty"` // empty = not set
	TeamPref      TeamPref  `json:"team_pref,omitempty"`  // empty = not set
}
