// This file defines the Story model and repository methods for the journal's
// core resource.  Every query is filtered by the owning user: a story is
// never visible or mutable through any method here without its owner's id.
package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Story represents a dated journal entry persisted in the database.  Each
// story belongs to a single user; UserID is set at creation and never
// changes.  VisitedLocation is kept as raw JSON: the API treats it as an
// opaque structured value and echoes it back verbatim.
type Story struct {
	ID              uint64          `json:"id"`
	UserID          uint64          `json:"userId"`
	Title           string          `json:"title"`
	Story           string          `json:"story"`
	VisitedLocation json.RawMessage `json:"visitedLocation"`
	ImageURL        string          `json:"imageUrl"`
	VisitedDate     time.Time       `json:"visitedDate"`
	IsFavourite     bool            `json:"isFavourite"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// StoryRepo encapsulates all database queries related to stories.
type StoryRepo struct {
	db *sql.DB
}

// NewStoryRepo constructs a StoryRepo with the provided DB handle.
func NewStoryRepo(db *sql.DB) *StoryRepo {
	return &StoryRepo{db: db}
}

const storyCols = "id, user_id, title, story, visited_location, image_url, visited_date, is_favourite, created_at"

// scanStory reads one stories row into a Story.
func scanStory(row interface{ Scan(...any) error }) (*Story, error) {
	var s Story
	var loc []byte
	if err := row.Scan(&s.ID, &s.UserID, &s.Title, &s.Story, &loc,
		&s.ImageURL, &s.VisitedDate, &s.IsFavourite, &s.CreatedAt); err != nil {
		return nil, err
	}
	s.VisitedLocation = json.RawMessage(loc)
	return &s, nil
}

// Create inserts a new story.  On success the ID field is populated with the
// auto-generated value and a follow-up SELECT fills the DB-assigned
// created_at so callers receive a fully populated record.
func (r *StoryRepo) Create(ctx context.Context, s *Story) error {
	const qInsert = `INSERT INTO stories
		(user_id, title, story, visited_location, image_url, visited_date, is_favourite)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert,
		s.UserID, s.Title, s.Story, string(s.VisitedLocation), s.ImageURL, s.VisitedDate, s.IsFavourite)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)

	const qSelect = "SELECT " + storyCols + " FROM stories WHERE id = ?"
	got, err := scanStory(r.db.QueryRowContext(ctx, qSelect, s.ID))
	if err != nil {
		return err
	}
	*s = *got
	return nil
}

// GetByIDAndOwner fetches a story by id but only if it belongs to the given
// owner.  A missing story and someone else's story are indistinguishable:
// both return ErrStoryNotFound.
func (r *StoryRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*Story, error) {
	const q = "SELECT " + storyCols + " FROM stories WHERE id = ? AND user_id = ?"
	s, err := scanStory(r.db.QueryRowContext(ctx, q, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStoryNotFound
		}
		return nil, err
	}
	return s, nil
}

// ListByOwner returns all stories of one owner in insertion order.  The
// result is never nil so an owner without stories serializes as [].
func (r *StoryRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]*Story, error) {
	const q = "SELECT " + storyCols + " FROM stories WHERE user_id = ? ORDER BY id"
	return r.queryStories(ctx, q, ownerID)
}

// Update replaces the five mutable fields of an owned story and reloads the
// row so the caller gets the persisted state back.  ErrStoryNotFound is
// returned when the (id, owner) filter matches nothing.
func (r *StoryRepo) Update(ctx context.Context, s *Story) error {
	const q = `UPDATE stories
		SET title = ?, story = ?, visited_location = ?, image_url = ?, visited_date = ?
		WHERE id = ? AND user_id = ?`
	if _, err := r.db.ExecContext(ctx, q,
		s.Title, s.Story, string(s.VisitedLocation), s.ImageURL, s.VisitedDate, s.ID, s.UserID); err != nil {
		return err
	}
	got, err := r.GetByIDAndOwner(ctx, s.ID, s.UserID)
	if err != nil {
		return err
	}
	*s = *got
	return nil
}

// SetFavourite flips the favourite flag on an owned story and returns the
// updated record.
func (r *StoryRepo) SetFavourite(ctx context.Context, id, ownerID uint64, fav bool) (*Story, error) {
	const q = "UPDATE stories SET is_favourite = ? WHERE id = ? AND user_id = ?"
	if _, err := r.db.ExecContext(ctx, q, fav, id, ownerID); err != nil {
		return nil, err
	}
	return r.GetByIDAndOwner(ctx, id, ownerID)
}

// DeleteByIDAndOwner removes an owned story.  ErrStoryNotFound is returned
// when no row was deleted.
func (r *StoryRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM stories WHERE id = ? AND user_id = ?", id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrStoryNotFound
	}
	return nil
}

// Search returns the owner's stories where the query appears as a
// case-insensitive substring in the title, the story text or the serialized
// location value.  Favourites sort first; ties keep insertion order.
func (r *StoryRepo) Search(ctx context.Context, ownerID uint64, query string) ([]*Story, error) {
	pat := "%" + strings.ToLower(query) + "%"
	const q = "SELECT " + storyCols + ` FROM stories
		WHERE user_id = ?
		  AND (LOWER(title) LIKE ? OR LOWER(story) LIKE ? OR LOWER(visited_location) LIKE ?)
		ORDER BY is_favourite DESC, id`
	return r.queryStories(ctx, q, ownerID, pat, pat, pat)
}

// FilterByDateRange returns the owner's stories whose visited date falls in
// [start, end] inclusive, favourites first.  An inverted range is not an
// error; the predicate simply matches nothing.
func (r *StoryRepo) FilterByDateRange(ctx context.Context, ownerID uint64, start, end time.Time) ([]*Story, error) {
	const q = "SELECT " + storyCols + ` FROM stories
		WHERE user_id = ? AND visited_date >= ? AND visited_date <= ?
		ORDER BY is_favourite DESC, id`
	return r.queryStories(ctx, q, ownerID, start, end)
}

func (r *StoryRepo) queryStories(ctx context.Context, q string, args ...any) ([]*Story, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*Story, 0)
	for rows.Next() {
		s, err := scanStory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
