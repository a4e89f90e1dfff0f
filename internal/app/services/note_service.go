package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/selim/courseshelf/internal/app/models"
	"github.com/selim/courseshelf/internal/app/models/dto"
	"github.com/selim/courseshelf/internal/pkg/apperrors"
	"github.com/selim/courseshelf/internal/pkg/classify"
	"github.com/selim/courseshelf/internal/pkg/filestorage"
	"github.com/selim/courseshelf/internal/pkg/logger"
)

const maxNoteTitleLength = 100

// NoteService defines the interface for note operations
type NoteService interface {
	UploadNote(ctx context.Context, ownerID, courseID int64, req *dto.UploadNoteRequest, file *multipart.FileHeader) (*dto.NoteResponse, error)
	ListNotes(ctx context.Context, ownerID, courseID int64) (*dto.NoteListResponse, error)
	DeleteNote(ctx context.Context, ownerID, courseID, noteID int64) error
}

// noteServiceImpl implements NoteService
type noteServiceImpl struct {
	courseStore CourseStore
	noteStore   NoteStore
	blobStore   filestorage.ObjectStorage
}

// NewNoteService creates a new NoteService
func NewNoteService(courseStore CourseStore, noteStore NoteStore, blobStore filestorage.ObjectStorage) NoteService {
	return &noteServiceImpl{
		courseStore: courseStore,
		noteStore:   noteStore,
		blobStore:   blobStore,
	}
}

// UploadNote runs the upload sequence: validate the candidate against the
// selected category, upload the blob, insert the note row, then bump the
// course counter. Anything that fails before the row insert is fully
// recoverable; a row-insert failure leaves an orphaned blob behind, and a
// counter failure is logged but never surfaced, because the note itself
// already exists.
func (s *noteServiceImpl) UploadNote(ctx context.Context, ownerID, courseID int64, req *dto.UploadNoteRequest, file *multipart.FileHeader) (*dto.NoteResponse, error) {
	title := strings.TrimSpace(req.Title)
	category := classify.Category(req.Category)

	if title == "" {
		return nil, apperrors.NewValidationError("note title is required")
	}
	if utf8.RuneCountInString(title) > maxNoteTitleLength {
		return nil, apperrors.NewValidationError(fmt.Sprintf("note title must be at most %d characters", maxNoteTitleLength))
	}
	if !classify.IsUploadCategory(category) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown note category %q", req.Category))
	}

	var (
		fileName    string
		contentType string
		content     io.Reader
	)
	if category == classify.CategoryText {
		if err := classify.ValidateText(req.Text); err != nil {
			return nil, err
		}
		name, data := classify.SynthesizeTextFile(title, req.Text)
		fileName = name
		contentType = "text/plain; charset=utf-8"
		content = bytes.NewReader(data)
	} else {
		if file == nil {
			return nil, apperrors.NewValidationError(fmt.Sprintf("a %s file is required", category))
		}
		contentType = file.Header.Get("Content-Type")
		if err := classify.ValidateUpload(category, contentType, file.Filename); err != nil {
			return nil, err
		}
		fileName = file.Filename
		opened, err := file.Open()
		if err != nil {
			return nil, apperrors.NewValidationError("failed to read uploaded file")
		}
		defer opened.Close()
		content = opened
	}

	// Cross-owner uploads fail before any blob is written
	if _, err := s.ownedCourse(ctx, ownerID, courseID); err != nil {
		return nil, err
	}

	stored, err := s.blobStore.Store(ctx, courseFolder(courseID), fileName, contentType, content)
	if err != nil {
		return nil, err
	}

	note := &models.Note{
		Title:        title,
		FileURL:      stored.PublicURL,
		FilePath:     stored.Path,
		FileCategory: category,
		FileName:     fileName,
		CourseID:     courseID,
	}
	if err := s.noteStore.Create(ctx, note); err != nil {
		// The blob at stored.Path is now orphaned; it is unreferenced
		// bytes, reclaimed out of band, never corruption.
		logger.Error().Err(err).Str("path", stored.Path).Int64("courseId", courseID).
			Msg("Note insert failed after blob upload, blob orphaned")
		return nil, err
	}

	if err := s.courseStore.IncrementNoteCount(ctx, courseID); err != nil {
		// The note exists and is the unit of success; the counter is
		// best-effort and may drift until the next successful update.
		logger.Error().Err(err).Int64("courseId", courseID).Msg("Note count increment failed")
	}

	return noteToResponse(note), nil
}

// ListNotes retrieves a course's notes, newest first.
func (s *noteServiceImpl) ListNotes(ctx context.Context, ownerID, courseID int64) (*dto.NoteListResponse, error) {
	if _, err := s.ownedCourse(ctx, ownerID, courseID); err != nil {
		return nil, err
	}

	notes, err := s.noteStore.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.NoteResponse, 0, len(notes))
	for _, note := range notes {
		responses = append(responses, *noteToResponse(note))
	}
	return &dto.NoteListResponse{Notes: responses}, nil
}

// DeleteNote runs the removal sequence: blob removal is attempted first but
// never blocks the row delete, the row delete must succeed, and the counter
// decrement afterwards is best-effort.
func (s *noteServiceImpl) DeleteNote(ctx context.Context, ownerID, courseID, noteID int64) error {
	if _, err := s.ownedCourse(ctx, ownerID, courseID); err != nil {
		return err
	}

	note, err := s.noteStore.GetByID(ctx, noteID)
	if err != nil {
		return err
	}
	if note.CourseID != courseID {
		return apperrors.ErrNoteNotFound
	}

	if err := s.blobStore.Remove(ctx, note.FilePath); err != nil {
		// The blob may already be gone or the store transiently down;
		// the note row must stay deletable either way.
		logger.Warn().Err(err).Str("path", note.FilePath).Int64("noteId", noteID).
			Msg("Blob removal failed, proceeding with metadata deletion")
	}

	if err := s.noteStore.Delete(ctx, noteID); err != nil {
		return err
	}

	if err := s.courseStore.DecrementNoteCount(ctx, courseID); err != nil {
		logger.Error().Err(err).Int64("courseId", courseID).Msg("Note count decrement failed")
	}

	return nil
}

// ownedCourse fetches a course and enforces that it belongs to the caller.
func (s *noteServiceImpl) ownedCourse(ctx context.Context, ownerID, courseID int64) (*models.Course, error) {
	course, err := s.courseStore.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.OwnerID != ownerID {
		return nil, apperrors.ErrCourseNotFound
	}
	return course, nil
}

// courseFolder is the deterministic blob folder for a course, so a course's
// blobs can be enumerated later.
func courseFolder(courseID int64) string {
	return fmt.Sprintf("course_%d", courseID)
}

func noteToResponse(note *models.Note) *dto.NoteResponse {
	return &dto.NoteResponse{
		ID:           note.ID,
		Title:        note.Title,
		FileURL:      note.FileURL,
		FilePath:     note.FilePath,
		FileCategory: string(note.FileCategory),
		FileName:     note.FileName,
		CourseID:     note.CourseID,
		CreatedAt:    note.CreatedAt.Format(time.RFC3339),
	}
}
