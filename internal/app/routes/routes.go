package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/selim/courseshelf/internal/app/controllers"
	"github.com/selim/courseshelf/internal/app/models/dto"
	"github.com/selim/courseshelf/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	courseController *controllers.CourseController,
	noteController *controllers.NoteController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})

	// All course and note operations require a caller identity
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.RequireIdentity())

	courses := authenticated.Group("/courses")
	{
		courses.GET("", courseController.ListCourses)
		courses.POST("", courseController.CreateCourse)
		courses.GET("/:courseId", courseController.GetCourse)
		courses.DELETE("/:courseId", courseController.DeleteCourse)

		// Notes live under their owning course
		courses.GET("/:courseId/notes", noteController.ListNotes)
		courses.POST("/:courseId/notes", noteController.UploadNote)
		courses.DELETE("/:courseId/notes/:noteId", noteController.DeleteNote)
	}
}
