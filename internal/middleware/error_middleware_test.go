package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/selim/courseshelf/internal/pkg/apperrors"
)

func TestHandleAPIError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"course not found", apperrors.ErrCourseNotFound, http.StatusNotFound, "RES_001"},
		{"note not found", apperrors.ErrNoteNotFound, http.StatusNotFound, "RES_001"},
		{"permission denied", apperrors.NewForbiddenError("course belongs to another user"), http.StatusForbidden, "AUTH_004"},
		{"validation failure", apperrors.NewValidationError("note title is required"), http.StatusBadRequest, "VAL_001"},
		{"storage failure", apperrors.NewStorageWriteError(errors.New("timeout"), "upload failed"), http.StatusBadGateway, "SRV_003"},
		{"metadata failure", apperrors.NewMetadataWriteError(errors.New("conn reset"), "insert failed"), http.StatusInternalServerError, "SRV_002"},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, "SRV_001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantCode)
		})
	}
}

func TestHandleAPIErrorValidationMessagePassedThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleAPIError(c, apperrors.NewValidationError("text content cannot be empty"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "text content cannot be empty")
}
