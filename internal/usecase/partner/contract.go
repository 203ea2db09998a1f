package partner

import (
	"context"

	"github.com/studymate/matchd/internal/domain"
)

// Directory is the storage contract for partner search.
type Directory interface {
	// GetUser returns a user by id, or domain.ErrUserNotFound.
	GetUser(ctx context.Context, id string) (domain.User, error)
	// ListCandidates returns every user except excludeID. The returned order
	// is the tie-break order for equally scored matches.
	ListCandidates(ctx context.Context, excludeID string) ([]domain.User, error)
}
