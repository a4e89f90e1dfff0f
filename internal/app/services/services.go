package services

import (
	"context"

	"github.com/selim/courseshelf/internal/app/models"
)

// CourseStore is the slice of the course repository the services need.
type CourseStore interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*models.Course, error)
	Delete(ctx context.Context, id, ownerID int64) error
	IncrementNoteCount(ctx context.Context, courseID int64) error
	DecrementNoteCount(ctx context.Context, courseID int64) error
}

// NoteStore is the slice of the note repository the services need.
type NoteStore interface {
	Create(ctx context.Context, note *models.Note) error
	GetByID(ctx context.Context, id int64) (*models.Note, error)
	ListByCourse(ctx context.Context, courseID int64) ([]*models.Note, error)
	Delete(ctx context.Context, id int64) error
	DeleteByCourse(ctx context.Context, courseID int64) (int64, error)
}
