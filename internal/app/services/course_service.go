package services

import (
	"context"
	"strings"
	"time"

	"github.com/selim/courseshelf/internal/app/models"
	"github.com/selim/courseshelf/internal/app/models/dto"
	"github.com/selim/courseshelf/internal/pkg/apperrors"
	"github.com/selim/courseshelf/internal/pkg/logger"
)

// CourseService defines the interface for course operations
type CourseService interface {
	CreateCourse(ctx context.Context, ownerID int64, req *dto.CreateCourseRequest) (*dto.CourseResponse, error)
	GetCourse(ctx context.Context, ownerID, courseID int64) (*dto.CourseResponse, error)
	ListCourses(ctx context.Context, ownerID int64) (*dto.CourseListResponse, error)
	DeleteCourse(ctx context.Context, ownerID, courseID int64) error
}

// courseServiceImpl implements CourseService
type courseServiceImpl struct {
	courseStore CourseStore
	noteStore   NoteStore
}

// NewCourseService creates a new CourseService
func NewCourseService(courseStore CourseStore, noteStore NoteStore) CourseService {
	return &courseServiceImpl{
		courseStore: courseStore,
		noteStore:   noteStore,
	}
}

// CreateCourse creates a new course owned by the caller with a zero note count.
func (s *courseServiceImpl) CreateCourse(ctx context.Context, ownerID int64, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	title := strings.TrimSpace(req.Title)
	professor := strings.TrimSpace(req.Professor)
	if title == "" || professor == "" {
		return nil, apperrors.NewValidationError("course title and professor name are required")
	}

	course := &models.Course{
		Title:     title,
		Professor: professor,
		OwnerID:   ownerID,
	}
	if desc := strings.TrimSpace(req.Description); desc != "" {
		course.Description = &desc
	}

	if err := s.courseStore.Create(ctx, course); err != nil {
		return nil, err
	}

	return courseToResponse(course), nil
}

// GetCourse retrieves a single course. Another owner's course is reported
// as not found rather than leaked.
func (s *courseServiceImpl) GetCourse(ctx context.Context, ownerID, courseID int64) (*dto.CourseResponse, error) {
	course, err := s.ownedCourse(ctx, ownerID, courseID)
	if err != nil {
		return nil, err
	}
	return courseToResponse(course), nil
}

// ListCourses retrieves the caller's courses, newest first.
func (s *courseServiceImpl) ListCourses(ctx context.Context, ownerID int64) (*dto.CourseListResponse, error) {
	courses, err := s.courseStore.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, *courseToResponse(course))
	}
	return &dto.CourseListResponse{Courses: responses}, nil
}

// DeleteCourse removes a course and all of its notes. Note rows go first in
// one bulk request, then the course row scoped to the owner; if the second
// step fails the caller should retry the whole deletion. The notes' blobs
// are not removed here and may be orphaned; they are unreferenced bytes,
// not corruption, and are reclaimed out of band.
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, ownerID, courseID int64) error {
	course, err := s.courseStore.GetByID(ctx, courseID)
	if err != nil {
		return err
	}
	if course.OwnerID != ownerID {
		return apperrors.NewForbiddenError("course belongs to another user")
	}

	deleted, err := s.noteStore.DeleteByCourse(ctx, courseID)
	if err != nil {
		return err
	}

	if err := s.courseStore.Delete(ctx, courseID, ownerID); err != nil {
		// Note rows are already gone; the course row remains with a stale
		// note_count until the deletion is retried.
		logger.Error().Err(err).Int64("courseId", courseID).Int64("notesDeleted", deleted).
			Msg("Course row deletion failed after its notes were removed")
		return err
	}

	logger.Info().Int64("courseId", courseID).Int64("notesDeleted", deleted).Msg("Course deleted")
	return nil
}

// ownedCourse fetches a course and enforces that it belongs to the caller.
func (s *courseServiceImpl) ownedCourse(ctx context.Context, ownerID, courseID int64) (*models.Course, error) {
	course, err := s.courseStore.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.OwnerID != ownerID {
		return nil, apperrors.ErrCourseNotFound
	}
	return course, nil
}

func courseToResponse(course *models.Course) *dto.CourseResponse {
	resp := &dto.CourseResponse{
		ID:        course.ID,
		Title:     course.Title,
		Professor: course.Professor,
		NoteCount: course.NoteCount,
		CreatedAt: course.CreatedAt.Format(time.RFC3339),
	}
	if course.Description != nil {
		resp.Description = *course.Description
	}
	return resp
}
