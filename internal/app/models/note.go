package models

import (
	"time"

	"github.com/selim/courseshelf/internal/pkg/classify"
)

// Note represents the structure for a note artifact in the database.
// A note's existence implies a blob stored at FilePath, though the two
// stores can drift under partial failure.
type Note struct {
	ID           int64             `db:"id" json:"id"`
	Title        string            `db:"title" json:"title"`
	FileURL      string            `db:"file_url" json:"fileUrl"`
	FilePath     string            `db:"file_path" json:"filePath"`
	FileCategory classify.Category `db:"file_category" json:"fileCategory"`
	FileName     string            `db:"file_name" json:"fileName"`
	CourseID     int64             `db:"course_id" json:"courseId"`
	CreatedAt    time.Time         `db:"created_at" json:"createdAt"`
}
