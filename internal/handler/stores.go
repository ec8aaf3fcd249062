package handler // handler defines http handlers

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-journal/internal/repository"
)

// UserStore is the identity persistence surface handlers depend on.  It is
// satisfied by *repository.UserRepo and by the mocks in the tests.
type UserStore interface {
	Create(ctx context.Context, fullName, email, password string, cost int) (uint64, error)
	GetByEmail(ctx context.Context, email string) (repository.User, error)
	GetByID(ctx context.Context, id uint64) (repository.User, error)
}

// StoryStore is the story persistence surface handlers depend on.  All of
// its lookup and mutation methods are owner-filtered; see repository.StoryRepo.
type StoryStore interface {
	Create(ctx context.Context, s *repository.Story) error
	GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*repository.Story, error)
	ListByOwner(ctx context.Context, ownerID uint64) ([]*repository.Story, error)
	Update(ctx context.Context, s *repository.Story) error
	SetFavourite(ctx context.Context, id, ownerID uint64, fav bool) (*repository.Story, error)
	DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error
	Search(ctx context.Context, ownerID uint64, query string) ([]*repository.Story, error)
	FilterByDateRange(ctx context.Context, ownerID uint64, start, end time.Time) ([]*repository.Story, error)
}

// getUserID extracts the user_id the JWT middleware stored in the context.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// epochMillis converts a decoded JSON value holding epoch milliseconds into
// a time.Time.  Clients send the value either as a number or as a numeric
// string; anything else reports false and is treated as a validation error.
func epochMillis(v any) (time.Time, bool) {
	switch t := v.(type) {
	case float64:
		return time.UnixMilli(int64(t)).UTC(), true
	case int64:
		return time.UnixMilli(t).UTC(), true
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return time.UnixMilli(n).UTC(), true
		}
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64); err == nil {
			return time.UnixMilli(n).UTC(), true
		}
	}
	return time.Time{}, false
}

// epochMillisParam is epochMillis for query-string parameters.
func epochMillisParam(s string) (time.Time, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(n).UTC(), true
}
