package matchd

import "github.com/studymate/matchd/internal/domain"

// Sentinel errors returned by Client methods. Test with errors.Is.
var (
	ErrUserNotFound     = domain.ErrUserNotFound
	ErrInvalidUserID    = domain.ErrInvalidUserID
	ErrInvalidStudyTime = domain.ErrInvalidStudyTime
	ErrInvalidTeamPref  = domain.ErrInvalidTeamPref
)
