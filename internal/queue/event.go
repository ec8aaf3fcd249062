// Package queue defines message payloads exchanged over the message broker.
package queue

// StoryDeletedEvent is published after a story record has been removed.  It
// carries enough information for downstream consumers to audit deletions or
// reconcile orphaned image files without querying the primary database.
type StoryDeletedEvent struct {
    StoryID   uint64 `json:"story_id"`
    UserID    uint64 `json:"user_id"`
    Title     string `json:"title"`
    ImageURL  string `json:"image_url"`
    DeletedAt string `json:"deleted_at"`
}
