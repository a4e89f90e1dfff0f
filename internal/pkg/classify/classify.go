// Package classify validates uploaded content against a user-selected
// note category before any network call is made, and infers categories
// from bare filename extensions.
package classify

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/selim/courseshelf/internal/pkg/apperrors"
)

// Category is the note content category fixed at upload time.
type Category string

const (
	CategoryImage Category = "image"
	CategoryAudio Category = "audio"
	CategoryPdf   Category = "pdf"
	CategoryText  Category = "text"
	// CategoryOther is only produced by extension inference, never
	// selectable for an upload.
	CategoryOther Category = "other"
)

// UploadCategories lists the categories a caller may select for an upload.
var UploadCategories = []Category{CategoryImage, CategoryAudio, CategoryPdf, CategoryText}

// IsUploadCategory reports whether c is a valid user-selectable category.
func IsUploadCategory(c Category) bool {
	switch c {
	case CategoryImage, CategoryAudio, CategoryPdf, CategoryText:
		return true
	}
	return false
}

// extensionCategories maps bare file extensions to categories for inference.
var extensionCategories = map[string]Category{
	"jpg":  CategoryImage,
	"jpeg": CategoryImage,
	"png":  CategoryImage,
	"gif":  CategoryImage,
	"webp": CategoryImage,
	"mp3":  CategoryAudio,
	"wav":  CategoryAudio,
	"ogg":  CategoryAudio,
	"m4a":  CategoryAudio,
	"pdf":  CategoryPdf,
	"txt":  CategoryText,
}

// ValidateUpload checks a candidate file's declared MIME type and filename
// against the selected category. A rejected candidate must never reach the
// blob store.
func ValidateUpload(category Category, mimeType, filename string) error {
	switch category {
	case CategoryImage:
		if strings.HasPrefix(mimeType, "image/") {
			return nil
		}
	case CategoryAudio:
		if strings.HasPrefix(mimeType, "audio/") {
			return nil
		}
	case CategoryPdf:
		if mimeType == "application/pdf" || strings.EqualFold(extension(filename), "pdf") {
			return nil
		}
	case CategoryText:
		return apperrors.NewValidationError("text notes are written, not uploaded")
	default:
		return apperrors.NewValidationError(fmt.Sprintf("unknown file category %q", category))
	}
	return apperrors.NewValidationError(fmt.Sprintf("invalid file type %q for a %s note", mimeType, category))
}

// ValidateText checks written note content; it is accepted iff non-empty
// after trimming whitespace.
func ValidateText(content string) error {
	if strings.TrimSpace(content) == "" {
		return apperrors.NewValidationError("text content cannot be empty")
	}
	return nil
}

// InferCategoryFromExtension maps a bare filename extension to a category.
// Used when the category must be inferred rather than chosen, e.g. for
// externally linked files.
func InferCategoryFromExtension(filename string) Category {
	if c, ok := extensionCategories[strings.ToLower(extension(filename))]; ok {
		return c
	}
	return CategoryOther
}

// SynthesizeTextFile turns written note content into an uploadable .txt
// blob. The filename is derived from the sanitized, lower-cased title and
// suffixed with a millisecond timestamp to avoid collisions.
func SynthesizeTextFile(title, content string) (filename string, data []byte) {
	safe := sanitizeTitle(title)
	if safe == "" {
		safe = "note"
	}
	filename = fmt.Sprintf("%s_%d.txt", safe, time.Now().UnixMilli())
	return filename, []byte(content)
}

// sanitizeTitle lower-cases the trimmed title and replaces every character
// other than letters, digits, '.', '_' and '-' with an underscore.
func sanitizeTitle(title string) string {
	trimmed := strings.ToLower(strings.TrimSpace(title))
	if trimmed == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(trimmed))
	for _, r := range trimmed {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// extension returns the filename extension without the leading dot.
func extension(filename string) string {
	return strings.TrimPrefix(filepath.Ext(filename), ".")
}
