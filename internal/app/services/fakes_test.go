package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/selim/courseshelf/internal/app/models"
	"github.com/selim/courseshelf/internal/pkg/apperrors"
	"github.com/selim/courseshelf/internal/pkg/classify"
	"github.com/selim/courseshelf/internal/pkg/filestorage"
)

// fakeCourseStore is an in-memory CourseStore. Courses are kept in insertion
// order and listed newest first, matching the real repository.
type fakeCourseStore struct {
	courses    []*models.Course
	nextID     int64
	createErr  error
	deleteErr  error
	incErr     error
	decErr     error
	increments []int64
	decrements []int64
}

func (f *fakeCourseStore) Create(_ context.Context, course *models.Course) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	course.ID = f.nextID
	course.CreatedAt = time.Now()
	f.courses = append(f.courses, course)
	return nil
}

func (f *fakeCourseStore) GetByID(_ context.Context, id int64) (*models.Course, error) {
	for _, c := range f.courses {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, apperrors.ErrCourseNotFound
}

func (f *fakeCourseStore) ListByOwner(_ context.Context, ownerID int64) ([]*models.Course, error) {
	var out []*models.Course
	for i := len(f.courses) - 1; i >= 0; i-- {
		if f.courses[i].OwnerID == ownerID {
			out = append(out, f.courses[i])
		}
	}
	return out, nil
}

func (f *fakeCourseStore) Delete(_ context.Context, id, ownerID int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, c := range f.courses {
		if c.ID != id {
			continue
		}
		if c.OwnerID != ownerID {
			return apperrors.ErrPermissionDenied
		}
		f.courses = append(f.courses[:i], f.courses[i+1:]...)
		return nil
	}
	return apperrors.ErrCourseNotFound
}

func (f *fakeCourseStore) IncrementNoteCount(ctx context.Context, courseID int64) error {
	if f.incErr != nil {
		return f.incErr
	}
	course, err := f.GetByID(ctx, courseID)
	if err != nil {
		return err
	}
	course.NoteCount++
	f.increments = append(f.increments, courseID)
	return nil
}

func (f *fakeCourseStore) DecrementNoteCount(ctx context.Context, courseID int64) error {
	if f.decErr != nil {
		return f.decErr
	}
	course, err := f.GetByID(ctx, courseID)
	if err != nil {
		return err
	}
	if course.NoteCount > 0 {
		course.NoteCount--
	}
	f.decrements = append(f.decrements, courseID)
	return nil
}

// fakeNoteStore is an in-memory NoteStore.
type fakeNoteStore struct {
	notes     []*models.Note
	nextID    int64
	createErr error
	deleteErr error
}

func (f *fakeNoteStore) Create(_ context.Context, note *models.Note) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	note.ID = f.nextID
	note.CreatedAt = time.Now()
	f.notes = append(f.notes, note)
	return nil
}

func (f *fakeNoteStore) GetByID(_ context.Context, id int64) (*models.Note, error) {
	for _, n := range f.notes {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, apperrors.ErrNoteNotFound
}

func (f *fakeNoteStore) ListByCourse(_ context.Context, courseID int64) ([]*models.Note, error) {
	var out []*models.Note
	for i := len(f.notes) - 1; i >= 0; i-- {
		if f.notes[i].CourseID == courseID {
			out = append(out, f.notes[i])
		}
	}
	return out, nil
}

func (f *fakeNoteStore) Delete(_ context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, n := range f.notes {
		if n.ID == id {
			f.notes = append(f.notes[:i], f.notes[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNoteNotFound
}

func (f *fakeNoteStore) DeleteByCourse(_ context.Context, courseID int64) (int64, error) {
	var kept []*models.Note
	var deleted int64
	for _, n := range f.notes {
		if n.CourseID == courseID {
			deleted++
			continue
		}
		kept = append(kept, n)
	}
	f.notes = kept
	return deleted, nil
}

type storedBlob struct {
	folder      string
	name        string
	contentType string
	data        []byte
}

// fakeBlobStore is an in-memory ObjectStorage recording every call.
type fakeBlobStore struct {
	stored    []storedBlob
	removed   []string
	storeErr  error
	removeErr error
}

func (f *fakeBlobStore) Store(_ context.Context, folder, originalName, contentType string, content io.Reader) (*filestorage.StoredObject, error) {
	if f.storeErr != nil {
		return nil, f.storeErr
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, err
	}
	f.stored = append(f.stored, storedBlob{folder: folder, name: originalName, contentType: contentType, data: data})

	path := fmt.Sprintf("%s/blob-%d%s", folder, len(f.stored), filepath.Ext(originalName))
	return &filestorage.StoredObject{Path: path, PublicURL: f.PublicURL(path)}, nil
}

func (f *fakeBlobStore) Remove(_ context.Context, path string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, path)
	return nil
}

func (f *fakeBlobStore) PublicURL(path string) string {
	return "https://blobs.test/" + path
}

// makeFileHeader builds a real multipart.FileHeader the way gin would hand
// one to a controller.
func makeFileHeader(t *testing.T, filename, contentType, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

func seedCourse(t *testing.T, store *fakeCourseStore, ownerID int64, title string) *models.Course {
	t.Helper()
	course := &models.Course{Title: title, Professor: "Dr. Grace Hopper", OwnerID: ownerID}
	require.NoError(t, store.Create(context.Background(), course))
	return course
}

func noteForCourse(courseID int64) *models.Note {
	return &models.Note{
		Title:        "Lecture notes",
		FileURL:      "https://blobs.test/course/file.png",
		FilePath:     "course/file.png",
		FileCategory: classify.CategoryImage,
		FileName:     "file.png",
		CourseID:     courseID,
	}
}
