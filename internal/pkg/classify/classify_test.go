package classify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selim/courseshelf/internal/pkg/apperrors"
)

func TestIsUploadCategory(t *testing.T) {
	for _, c := range UploadCategories {
		assert.True(t, IsUploadCategory(c), "category %q should be selectable", c)
	}
	assert.False(t, IsUploadCategory(CategoryOther))
	assert.False(t, IsUploadCategory(Category("video")))
	assert.False(t, IsUploadCategory(Category("")))
}

func TestValidateUpload(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		mimeType string
		filename string
		wantErr  bool
	}{
		{"image accepts png", CategoryImage, "image/png", "diagram.png", false},
		{"image accepts any image subtype", CategoryImage, "image/webp", "photo.webp", false},
		{"image rejects pdf mime", CategoryImage, "application/pdf", "slides.pdf", true},
		{"image rejects empty mime", CategoryImage, "", "photo.png", true},
		{"audio accepts mpeg", CategoryAudio, "audio/mpeg", "lecture.mp3", false},
		{"audio rejects image mime", CategoryAudio, "image/png", "lecture.png", true},
		{"pdf accepts pdf mime", CategoryPdf, "application/pdf", "slides.pdf", false},
		{"pdf accepts pdf extension with generic mime", CategoryPdf, "application/octet-stream", "slides.pdf", false},
		{"pdf extension check is case-insensitive", CategoryPdf, "", "SLIDES.PDF", false},
		{"pdf rejects other files", CategoryPdf, "image/png", "slides.png", true},
		{"text is never uploaded", CategoryText, "text/plain", "notes.txt", true},
		{"unknown category rejected", Category("video"), "video/mp4", "clip.mp4", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUpload(tt.category, tt.mimeType, tt.filename)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateText(t *testing.T) {
	assert.NoError(t, ValidateText("key points from the lecture"))
	assert.ErrorIs(t, ValidateText(""), apperrors.ErrValidationFailed)
	assert.ErrorIs(t, ValidateText("   \n\t "), apperrors.ErrValidationFailed)
}

func TestInferCategoryFromExtension(t *testing.T) {
	tests := []struct {
		filename string
		want     Category
	}{
		{"photo.jpg", CategoryImage},
		{"photo.JPEG", CategoryImage},
		{"scan.webp", CategoryImage},
		{"lecture.mp3", CategoryAudio},
		{"lecture.M4A", CategoryAudio},
		{"slides.pdf", CategoryPdf},
		{"notes.txt", CategoryText},
		{"archive.zip", CategoryOther},
		{"no-extension", CategoryOther},
		{"", CategoryOther},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, InferCategoryFromExtension(tt.filename), "filename %q", tt.filename)
	}
}

func TestSynthesizeTextFile(t *testing.T) {
	filename, data := SynthesizeTextFile("Lecture 1: Key Concepts!", "some written content")

	assert.True(t, strings.HasPrefix(filename, "lecture_1__key_concepts__"),
		"unexpected filename %q", filename)
	assert.True(t, strings.HasSuffix(filename, ".txt"))
	assert.Equal(t, []byte("some written content"), data)
}

func TestSynthesizeTextFileKeepsSafeCharacters(t *testing.T) {
	filename, _ := SynthesizeTextFile("intro-2.1_draft", "x")
	assert.True(t, strings.HasPrefix(filename, "intro-2.1_draft_"), "unexpected filename %q", filename)
}

func TestSynthesizeTextFileFallbackName(t *testing.T) {
	filename, _ := SynthesizeTextFile("   ", "content")
	assert.True(t, strings.HasPrefix(filename, "note_"), "unexpected filename %q", filename)
	assert.True(t, strings.HasSuffix(filename, ".txt"))
}
