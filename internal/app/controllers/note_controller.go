package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/selim/courseshelf/internal/app/models/dto"
	"github.com/selim/courseshelf/internal/app/services"
	"github.com/selim/courseshelf/internal/middleware"
)

// NoteController handles note operations
type NoteController struct {
	noteService services.NoteService
}

// NewNoteController creates a new NoteController
func NewNoteController(noteService services.NoteService) *NoteController {
	return &NoteController{noteService: noteService}
}

// ListNotes godoc
// @Summary List a course's notes
// @Description List notes of a course, newest first
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.NoteListResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /courses/{courseId}/notes [get]
func (c *NoteController) ListNotes(ctx *gin.Context) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}

	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid course ID"),
		})
		return
	}

	notes, err := c.noteService.ListNotes(ctx, ownerID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: notes})
}

// UploadNote godoc
// @Summary Upload a new note
// @Description Upload a note file (or written text) into a course
// @Tags notes
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param title formData string true "Note title"
// @Param category formData string true "Note category (image, audio, pdf, text)"
// @Param text formData string false "Written content for text notes"
// @Param file formData file false "File to upload (non-text categories)"
// @Success 201 {object} dto.APIResponse{data=dto.NoteResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 502 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /courses/{courseId}/notes [post]
func (c *NoteController) UploadNote(ctx *gin.Context) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}

	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid course ID"),
		})
		return
	}

	var req dto.UploadNoteRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid request format"),
		})
		return
	}

	// The file part is absent for text notes
	file, err := ctx.FormFile("file")
	if err != nil {
		file = nil
	}

	note, err := c.noteService.UploadNote(ctx, ownerID, courseID, &req, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: note})
}

// DeleteNote godoc
// @Summary Delete a note
// @Description Delete a note and best-effort its stored file
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param noteId path int true "Note ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /courses/{courseId}/notes/{noteId} [delete]
func (c *NoteController) DeleteNote(ctx *gin.Context) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}

	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid course ID"),
		})
		return
	}

	noteID, ok := parseIDParam(ctx, "noteId")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid note ID"),
		})
		return
	}

	if err := c.noteService.DeleteNote(ctx, ownerID, courseID, noteID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.SuccessResponse{Message: "Note deleted successfully"},
	})
}
