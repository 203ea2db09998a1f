package domain

import "errors"

var (
	// ErrUserNotFound signals that the referenced user does not exist in storage.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidUserID signals a malformed user identifier.
	ErrInvalidUserID = errors.New("invalid user id")
	// ErrInvalidStudyTime signals an unrecognized study time value.
	ErrInvalidStudyTime = errors.New("invalid study time")
	// ErrInvalidTeamPref signals an unrecognized team preference value.
	ErrInvalidTeamPref = errors.New("invalid team preference")
)
