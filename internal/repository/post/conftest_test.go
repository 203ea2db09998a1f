package post

import (
	"context"

	"github.com/studymate/matchd/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	jsonSetFn      func(ctx context.Context, key string, data []byte) error
	jsonSetMultiFn func(ctx context.Context, items []db.JSONSetItem) error
	jsonGetFn      func(ctx context.Context, key string) ([]byte, error)
	jsonGetMultiFn func(ctx context.Context, keys []string) ([][]byte, error)
	scanFn         func(ctx context.Context, pattern string) ([]string, error)
}

func (m *mockStore) JSONSet(ctx context.Context, key string, data []byte) error {
	if m.jsonSetFn != nil {
		return m.jsonSetFn(ctx, key, data)
	}
	return nil
}

func (m *mockStore) JSONSetMulti(ctx context.Context, items []db.JSONSetItem) error {
	if m.jsonSetMultiFn != nil {
		return m.jsonSetMultiFn(ctx, items)
	}
	return nil
}

func (m *mockStore) JSONGet(ctx context.Context, key string) ([]byte, error) {
	if m.jsonGetFn != nil {
		return m.jsonGetFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) JSONGetMulti(ctx context.Context, keys []string) ([][]byte, error) {
	if m.jsonGetMultiFn != nil {
		return m.jsonGetMultiFn(ctx, keys)
	}
	return nil, nil
}

func (m *mockStore) Scan(ctx context.Context, pattern string) ([]string, error) {
	if m.scanFn != nil {
		return m.scanFn(ctx, pattern)
	}
	return nil, nil
}
