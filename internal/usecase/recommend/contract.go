package recommend

import (
	"context"

	"github.com/studymate/matchd/internal/domain"
)

// PostSource is the storage contract for the post pool.
type PostSource interface {
	// ListPosts returns every post. The returned order is the tie-break
	// order for equally scored recommendations.
	ListPosts(ctx context.Context) ([]domain.Post, error)
}

// UserSource resolves the actor and post authors.
type UserSource interface {
	// GetUser returns a user by id, or domain.ErrUserNotFound.
	GetUser(ctx context.Context, id string) (domain.User, error)
	// GetUsersByIDs returns the users for the given ids in one batched call.
	// Missing ids are silently omitted from the result.
	GetUsersByIDs(ctx context.Context, ids []string) ([]domain.User, error)
}
