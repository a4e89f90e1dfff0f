package dto

// --- Request DTOs ---

// UploadNoteRequest represents the multipart form fields for a note upload.
// The file part itself is read separately; Text carries written content for
// text notes, which never ship a file.
type UploadNoteRequest struct {
	Title    string `form:"title" binding:"required,max=100" example:"Lecture 1 Key Concepts"`           // Note title
	Category string `form:"category" binding:"required,oneof=image audio pdf text" example:"image"`      // Selected note category
	Text     string `form:"text" example:"Key points from today's lecture..."`                           // Written content (text category only)
}

// --- Response DTOs ---

// NoteResponse represents the data returned for a single note.
type NoteResponse struct {
	ID           int64  `json:"id" example:"31"`                                                    // Unique identifier for the note
	Title        string `json:"title" example:"Lecture 1 Key Concepts"`                             // Note title
	FileURL      string `json:"fileUrl" example:"https://storage.example.com/object/public/notes/course_12/4f2c.png"` // Public address of the blob
	FilePath     string `json:"filePath" example:"course_12/4f2c.png"`                              // Blob store key
	FileCategory string `json:"fileCategory" example:"image"`                                       // Content category
	FileName     string `json:"fileName" example:"lecture1.png"`                                    // Original or synthesized display name
	CourseID     int64  `json:"courseId" example:"12"`                                              // Owning course
	CreatedAt    string `json:"createdAt" example:"2025-01-15T10:00:00Z"`                           // Timestamp when the note was created
}

// NoteListResponse represents the response for a list of notes.
type NoteListResponse struct {
	Notes []NoteResponse `json:"notes"`
}
