package handler

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/travel-journal/internal/repository"
)

// extractJSONField unmarshals a response body and returns the named
// top-level string field.
func extractJSONField(t *testing.T, body, field string) string {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &m))
	v, ok := m[field].(string)
	require.True(t, ok, "field %q missing or not a string", field)
	return v
}

// Function-field mocks for the store interfaces.  A nil field makes the
// method a no-op returning zero values.

type mockUserStore struct {
	createFn     func(ctx context.Context, fullName, email, password string, cost int) (uint64, error)
	getByEmailFn func(ctx context.Context, email string) (repository.User, error)
	getByIDFn    func(ctx context.Context, id uint64) (repository.User, error)
}

func (m *mockUserStore) Create(ctx context.Context, fullName, email, password string, cost int) (uint64, error) {
	if m.createFn != nil {
		return m.createFn(ctx, fullName, email, password, cost)
	}
	return 1, nil
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (repository.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return repository.User{}, nil
}

func (m *mockUserStore) GetByID(ctx context.Context, id uint64) (repository.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return repository.User{}, nil
}

type mockStoryStore struct {
	createFn          func(ctx context.Context, s *repository.Story) error
	getByIDAndOwnerFn func(ctx context.Context, id, ownerID uint64) (*repository.Story, error)
	listByOwnerFn     func(ctx context.Context, ownerID uint64) ([]*repository.Story, error)
	updateFn          func(ctx context.Context, s *repository.Story) error
	setFavouriteFn    func(ctx context.Context, id, ownerID uint64, fav bool) (*repository.Story, error)
	deleteFn          func(ctx context.Context, id, ownerID uint64) error
	searchFn          func(ctx context.Context, ownerID uint64, query string) ([]*repository.Story, error)
	filterFn          func(ctx context.Context, ownerID uint64, start, end time.Time) ([]*repository.Story, error)
}

func (m *mockStoryStore) Create(ctx context.Context, s *repository.Story) error {
	if m.createFn != nil {
		return m.createFn(ctx, s)
	}
	s.ID = 1
	s.CreatedAt = time.Now().UTC()
	return nil
}

func (m *mockStoryStore) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*repository.Story, error) {
	if m.getByIDAndOwnerFn != nil {
		return m.getByIDAndOwnerFn(ctx, id, ownerID)
	}
	return nil, repository.ErrStoryNotFound
}

func (m *mockStoryStore) ListByOwner(ctx context.Context, ownerID uint64) ([]*repository.Story, error) {
	if m.listByOwnerFn != nil {
		return m.listByOwnerFn(ctx, ownerID)
	}
	return []*repository.Story{}, nil
}

func (m *mockStoryStore) Update(ctx context.Context, s *repository.Story) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, s)
	}
	return nil
}

func (m *mockStoryStore) SetFavourite(ctx context.Context, id, ownerID uint64, fav bool) (*repository.Story, error) {
	if m.setFavouriteFn != nil {
		return m.setFavouriteFn(ctx, id, ownerID, fav)
	}
	return &repository.Story{ID: id, UserID: ownerID, IsFavourite: fav}, nil
}

func (m *mockStoryStore) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id, ownerID)
	}
	return nil
}

func (m *mockStoryStore) Search(ctx context.Context, ownerID uint64, query string) ([]*repository.Story, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, ownerID, query)
	}
	return []*repository.Story{}, nil
}

func (m *mockStoryStore) FilterByDateRange(ctx context.Context, ownerID uint64, start, end time.Time) ([]*repository.Story, error) {
	if m.filterFn != nil {
		return m.filterFn(ctx, ownerID, start, end)
	}
	return []*repository.Story{}, nil
}

type mockAssetStore struct {
	saveFn   func(ctx context.Context, filename string, r io.Reader) error
	removeFn func(ctx context.Context, filename string) error
}

func (m *mockAssetStore) Save(ctx context.Context, filename string, r io.Reader) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, filename, r)
	}
	return nil
}

func (m *mockAssetStore) Remove(ctx context.Context, filename string) error {
	if m.removeFn != nil {
		return m.removeFn(ctx, filename)
	}
	return nil
}
