// Package user persists user profiles as JSON documents.
package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/studymate/matchd/internal/db"
	"github.com/studymate/matchd/internal/domain"
)

// store is the consumer interface for user documents (ISP).
type store interface {
	JSONSet(ctx context.Context, key string, data []byte) error
	JSONSetMulti(ctx context.Context, items []db.JSONSetItem) error
	JSONGet(ctx context.Context, key string) ([]byte, error)
	JSONGetMulti(ctx context.Context, keys []string) ([][]byte, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/partner.Directory and usecase/recommend.UserSource.
type Repo struct {
	store  store
	prefix string
}

// New creates a user repository. prefix namespaces all keys.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

// Put creates or replaces a user profile.
func (r *Repo) Put(ctx context.Context, u domain.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	if err := r.store.JSONSet(ctx, r.key(u.ID), data); err != nil {
		return fmt.Errorf("json.set user %s: %w", u.ID, err)
	}
	return nil
}

// PutAll stores several profiles in one pipelined round-trip.
func (r *Repo) PutAll(ctx context.Context, users []domain.User) error {
	items := make([]db.JSONSetItem, len(users))
	for i, u := range users {
		data, err := json.Marshal(u)
		if err != nil {
			return fmt.Errorf("marshal user %s: %w", u.ID, err)
		}
		items[i] = db.JSONSetItem{Key: r.key(u.ID), Data: data}
	}
	if err := r.store.JSONSetMulti(ctx, items); err != nil {
		return fmt.Errorf("json.set users: %w", err)
	}
	return nil
}

// GetUser returns a user by ID.
func (r *Repo) GetUser(ctx context.Context, id string) (domain.User, error) {
	raw, err := r.store.JSONGet(ctx, r.key(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("json.get user %s: %w", id, err)
	}
	u, err := decodeUser(raw)
	if err != nil {
		return domain.User{}, fmt.Errorf("decode user %s: %w", id, err)
	}
	return u, nil
}

// GetUsersByIDs fetches several users in one pipelined round-trip. Missing or
// unreadable documents are omitted; a dangling reference is not an error.
func (r *Repo) GetUsersByIDs(ctx context.Context, ids []string) ([]domain.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.key(id)
	}

	raws, err := r.store.JSONGetMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("json.get users: %w", err)
	}

	users := make([]domain.User, 0, len(raws))
	for _, raw := range raws {
		if raw == nil {
			continue
		}
		u, err := decodeUser(raw)
		if err != nil {
			continue
		}
		users = append(users, u)
	}
	return users, nil
}

// ListCandidates returns every user except excludeID, in key order so that
// equally scored candidates rank deterministically.
func (r *Repo) ListCandidates(ctx context.Context, excludeID string) ([]domain.User, error) {
	keys, err := r.store.Scan(ctx, r.prefix+"user:*")
	if err != nil {
		return nil, fmt.Errorf("scan users: %w", err)
	}
	sort.Strings(keys)

	filtered := keys[:0]
	for _, key := range keys {
		if key != r.key(excludeID) {
			filtered = append(filtered, key)
		}
	}
	if len(filtered) == 0 {
		return nil, nil
	}

	raws, err := r.store.JSONGetMulti(ctx, filtered)
	if err != nil {
		return nil, fmt.Errorf("json.get candidates: %w", err)
	}

	users := make([]domain.User, 0, len(raws))
	for _, raw := range raws {
		if raw == nil {
			continue
		}
		u, err := decodeUser(raw)
		if err != nil {
			continue
		}
		users = append(users, u)
	}
	return users, nil
}

func (r *Repo) key(id string) string {
	return r.prefix + "user:" + id
}

// decodeUser handles both the bare document and the array wrapper that
// JSON.GET produces for a "$" path query.
func decodeUser(raw []byte) (domain.User, error) {
	if len(raw) > 0 && raw[0] == '[' {
		var docs []domain.User
		if err := json.Unmarshal(raw, &docs); err != nil {
			return domain.User{}, err
		}
		if len(docs) == 0 {
			return domain.User{}, domain.ErrUserNotFound
		}
		return docs[0], nil
	}
	var u domain.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}
