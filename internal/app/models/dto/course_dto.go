package dto

// --- Request DTOs ---

// CreateCourseRequest represents the data needed to create a new course.
type CreateCourseRequest struct {
	Title       string `json:"title" binding:"required,max=255" example:"CS101: Introduction to Programming"` // Course title
	Professor   string `json:"professor" binding:"required,max=255" example:"Dr. Ada Lovelace"`               // Professor name
	Description string `json:"description" binding:"max=2000" example:"Brief description of the course"`     // Optional description
}

// --- Response DTOs ---

// CourseResponse represents the data returned for a single course.
type CourseResponse struct {
	ID          int64  `json:"id" example:"12"`                                       // Unique identifier for the course
	Title       string `json:"title" example:"CS101: Introduction to Programming"`    // Course title
	Professor   string `json:"professor" example:"Dr. Ada Lovelace"`                  // Professor name
	Description string `json:"description,omitempty" example:"Intro programming"`    // Optional description
	NoteCount   int64  `json:"noteCount" example:"4"`                                 // Cached number of notes in the course
	CreatedAt   string `json:"createdAt" example:"2025-01-15T10:00:00Z"`              // Timestamp when the course was created
}

// CourseListResponse represents the response for a list of courses.
type CourseListResponse struct {
	Courses []CourseResponse `json:"courses"`
}
