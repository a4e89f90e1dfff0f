package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/selim/courseshelf/internal/app/models"
	"github.com/selim/courseshelf/internal/pkg/apperrors"
	"github.com/selim/courseshelf/internal/pkg/logger"
)

// CourseRepository handles database operations for Course.
type CourseRepository struct {
	DB *pgxpool.Pool
}

// NewCourseRepository creates a new instance of CourseRepository.
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) selectCourseQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"id", "title", "description", "professor", "owner_id", "note_count", "created_at",
	).From("courses").
		PlaceholderFormat(squirrel.Dollar)
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	var course models.Course
	err := row.Scan(
		&course.ID, &course.Title, &course.Description, &course.Professor,
		&course.OwnerID, &course.NoteCount, &course.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Msg("Error scanning course row")
		return nil, err
	}
	return &course, nil
}

// Create inserts a new course with a zeroed note count and fills in the
// store-generated id and creation timestamp.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	sql, args, err := squirrel.Insert("courses").
		Columns("title", "description", "professor", "owner_id", "note_count").
		Values(course.Title, course.Description, course.Professor, course.OwnerID, 0).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create course SQL")
		return err
	}

	if err := r.DB.QueryRow(ctx, sql, args...).Scan(&course.ID, &course.CreatedAt); err != nil {
		logger.Error().Err(err).Msg("Error executing create course query")
		return apperrors.NewMetadataWriteError(err, "failed to insert course")
	}
	course.NoteCount = 0

	return nil
}

// GetByID retrieves a single course by its ID.
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	sqlStr, args, err := r.selectCourseQuery().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get course by ID SQL")
		return nil, err
	}

	return scanCourse(r.DB.QueryRow(ctx, sqlStr, args...))
}

// ListByOwner retrieves the owner's courses ordered by creation time
// descending. An empty list is valid.
func (r *CourseRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Course, error) {
	sqlStr, args, err := r.selectCourseQuery().
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list courses SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, err
	}
	defer rows.Close()

	courses := make([]*models.Course, 0)
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating course rows")
		return nil, err
	}

	return courses, nil
}

// Delete removes a course scoped to its owner. A course owned by someone
// else fails with permission denied, never silent success.
func (r *CourseRepository) Delete(ctx context.Context, id, ownerID int64) error {
	sql, args, err := squirrel.Delete("courses").
		Where(squirrel.Eq{"id": id, "owner_id": ownerID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete course SQL")
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete course query")
		return apperrors.NewMetadataWriteError(err, "failed to delete course")
	}

	if cmdTag.RowsAffected() == 0 {
		// Distinguish a missing course from someone else's course
		var exists bool
		if err := r.DB.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM courses WHERE id = $1)`, id).Scan(&exists); err != nil {
			logger.Error().Err(err).Msg("Error checking course existence")
			return err
		}
		if exists {
			return apperrors.ErrPermissionDenied
		}
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// IncrementNoteCount bumps the denormalized counter by reading the current
// value and writing it back plus one. Two concurrent increments can lose
// one update; the counter is advisory and never used as a source of truth.
func (r *CourseRepository) IncrementNoteCount(ctx context.Context, courseID int64) error {
	var current int64
	err := r.DB.QueryRow(ctx, `SELECT COALESCE(note_count, 0) FROM courses WHERE id = $1`, courseID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrCourseNotFound
		}
		return apperrors.NewCustomError(apperrors.ErrCounterUpdate, err.Error())
	}

	cmdTag, err := r.DB.Exec(ctx, `UPDATE courses SET note_count = $1 WHERE id = $2`, current+1, courseID)
	if err != nil {
		return apperrors.NewCustomError(apperrors.ErrCounterUpdate, err.Error())
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// DecrementNoteCount lowers the counter with a single server-side update,
// clamped at zero so drift never produces a negative count.
func (r *CourseRepository) DecrementNoteCount(ctx context.Context, courseID int64) error {
	cmdTag, err := r.DB.Exec(ctx,
		`UPDATE courses SET note_count = GREATEST(COALESCE(note_count, 0) - 1, 0) WHERE id = $1`, courseID)
	if err != nil {
		return apperrors.NewCustomError(apperrors.ErrCounterUpdate, err.Error())
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}
