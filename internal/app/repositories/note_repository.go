package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/selim/courseshelf/internal/app/models"
	"github.com/selim/courseshelf/internal/pkg/apperrors"
	"github.com/selim/courseshelf/internal/pkg/dberrors"
	"github.com/selim/courseshelf/internal/pkg/logger"
)

// NoteRepository handles database operations for Note.
type NoteRepository struct {
	DB *pgxpool.Pool
}

// NewNoteRepository creates a new instance of NoteRepository.
func NewNoteRepository(db *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{DB: db}
}

func (r *NoteRepository) selectNoteQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"id", "title", "file_url", "file_path", "file_category", "file_name", "course_id", "created_at",
	).From("notes").
		PlaceholderFormat(squirrel.Dollar)
}

func scanNote(row pgx.Row) (*models.Note, error) {
	var note models.Note
	err := row.Scan(
		&note.ID, &note.Title, &note.FileURL, &note.FilePath,
		&note.FileCategory, &note.FileName, &note.CourseID, &note.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoteNotFound
		}
		logger.Error().Err(err).Msg("Error scanning note row")
		return nil, err
	}
	return &note, nil
}

// Create inserts a new note row referencing an already stored blob and
// fills in the store-generated id and creation timestamp.
func (r *NoteRepository) Create(ctx context.Context, note *models.Note) error {
	sql, args, err := squirrel.Insert("notes").
		Columns("title", "file_url", "file_path", "file_category", "file_name", "course_id").
		Values(note.Title, note.FileURL, note.FilePath, note.FileCategory, note.FileName, note.CourseID).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create note SQL")
		return err
	}

	if err := r.DB.QueryRow(ctx, sql, args...).Scan(&note.ID, &note.CreatedAt); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Msg("Error executing create note query")
		return apperrors.NewMetadataWriteError(err, "failed to insert note")
	}

	return nil
}

// GetByID retrieves a single note by its ID.
func (r *NoteRepository) GetByID(ctx context.Context, id int64) (*models.Note, error) {
	sqlStr, args, err := r.selectNoteQuery().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get note by ID SQL")
		return nil, err
	}

	return scanNote(r.DB.QueryRow(ctx, sqlStr, args...))
}

// ListByCourse retrieves a course's notes ordered by creation time
// descending. An empty list is valid.
func (r *NoteRepository) ListByCourse(ctx context.Context, courseID int64) ([]*models.Note, error) {
	sqlStr, args, err := r.selectNoteQuery().
		Where(squirrel.Eq{"course_id": courseID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list notes SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list notes query")
		return nil, err
	}
	defer rows.Close()

	notes := make([]*models.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating note rows")
		return nil, err
	}

	return notes, nil
}

// Delete removes a note row by its ID.
func (r *NoteRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := squirrel.Delete("notes").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete note SQL")
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete note query")
		return apperrors.NewMetadataWriteError(err, "failed to delete note")
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNoteNotFound // Note not found or already deleted
	}

	return nil
}

// DeleteByCourse removes all note rows of a course in one request and
// returns how many were deleted.
func (r *NoteRepository) DeleteByCourse(ctx context.Context, courseID int64) (int64, error) {
	sql, args, err := squirrel.Delete("notes").
		Where(squirrel.Eq{"course_id": courseID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building bulk delete notes SQL")
		return 0, err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing bulk delete notes query")
		return 0, apperrors.NewMetadataWriteError(err, "failed to delete course notes")
	}

	return cmdTag.RowsAffected(), nil
}
