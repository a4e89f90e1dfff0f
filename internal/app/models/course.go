package models

import "time"

// Course represents a course a user organizes notes under.
type Course struct {
	ID          int64   `db:"id" json:"id"`
	Title       string  `db:"title" json:"title"`
	Description *string `db:"description" json:"description,omitempty"` // Nullable
	Professor   string  `db:"professor" json:"professor"`
	OwnerID     int64   `db:"owner_id" json:"ownerId"`
	// NoteCount is a denormalized cache of the number of notes in this
	// course, maintained incrementally on upload/delete. Display only;
	// listing never relies on it.
	NoteCount int64     `db:"note_count" json:"noteCount"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
