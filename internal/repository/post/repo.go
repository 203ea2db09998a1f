// Package post persists content posts as JSON documents.
package post

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/studymate/matchd/internal/db"
	"github.com/studymate/matchd/internal/domain"
)

// store is the consumer interface for post documents (ISP).
type store interface {
	JSONSet(ctx context.Context, key string, data []byte) error
	JSONSetMulti(ctx context.Context, items []db.JSONSetItem) error
	JSONGet(ctx context.Context, key string) ([]byte, error)
	JSONGetMulti(ctx context.Context, keys []string) ([][]byte, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// ErrPostNotFound is returned when a post id resolves to nothing.
var ErrPostNotFound = errors.New("post not found")

// Repo implements usecase/recommend.PostSource.
type Repo struct {
	store  store
	prefix string
}

// New creates a post repository. prefix namespaces all keys.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

// Put creates or replaces a post.
func (r *Repo) Put(ctx context.Context, p domain.Post) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal post: %w", err)
	}
	if err := r.store.JSONSet(ctx, r.key(p.ID), data); err != nil {
		return fmt.Errorf("json.set post %s: %w", p.ID, err)
	}
	return nil
}

// PutAll stores several posts in one pipelined round-trip.
func (r *Repo) PutAll(ctx context.Context, posts []domain.Post) error {
	items := make([]db.JSONSetItem, len(posts))
	for i, p := range posts {
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("marshal post %s: %w", p.ID, err)
		}
		items[i] = db.JSONSetItem{Key: r.key(p.ID), Data: data}
	}
	if err := r.store.JSONSetMulti(ctx, items); err != nil {
		return fmt.Errorf("json.set posts: %w", err)
	}
	return nil
}

// Get returns a post by ID.
func (r *Repo) Get(ctx context.Context, id string) (domain.Post, error) {
	raw, err := r.store.JSONGet(ctx, r.key(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.Post{}, ErrPostNotFound
		}
		return domain.Post{}, fmt.Errorf("json.get post %s: %w", id, err)
	}
	p, err := decodePost(raw)
	if err != nil {
		return domain.Post{}, fmt.Errorf("decode post %s: %w", id, err)
	}
	return p, nil
}

// ListPosts returns the entire post pool, in key order so that equally scored
// posts rank deterministically. Unreadable documents are skipped.
func (r *Repo) ListPosts(ctx context.Context) ([]domain.Post, error) {
	keys, err := r.store.Scan(ctx, r.prefix+"post:*")
	if err != nil {
		return nil, fmt.Errorf("scan posts: %w", err)
	}
	if len(keys) == 0 {
		return nil, nil
	}
	sort.Strings(keys)

	raws, err := r.store.JSONGetMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("json.get posts: %w", err)
	}

	posts := make([]domain.Post, 0, len(raws))
	for _, raw := range raws {
		if raw == nil {
			continue
		}
		p, err := decodePost(raw)
		if err != nil {
			continue
		}
		posts = append(posts, p)
	}
	return posts, nil
}

func (r *Repo) key(id string) string {
	return r.prefix + "post:" + id
}

// decodePost handles both the bare document and the array wrapper that
// JSON.GET produces for a "$" path query.
func decodePost(raw []byte) (domain.Post, error) {
	if len(raw) > 0 && raw[0] == '[' {
		var docs []domain.Post
		if err := json.Unmarshal(raw, &docs); err != nil {
			return domain.Post{}, err
		}
		if len(docs) == 0 {
			return domain.Post{}, ErrPostNotFound
		}
		return docs[0], nil
	}
	var p domain.Post
	if err := json.Unmarshal(raw, &p); err != nil {
		return domain.Post{}, err
	}
	return p, nil
}
