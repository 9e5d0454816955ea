package dto

import "time"

// CreateClassRequest is the payload for POST /classes
type CreateClassRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateSubjectRequest is the payload for POST /subjects
type CreateSubjectRequest struct {
	Name      string `json:"name" binding:"required"`
	TeacherID *int64 `json:"teacherId"`
	Room      string `json:"room"`
	Color     string `json:"color"`
	ClassID   *int64 `json:"classId"`
}

// CreateEventRequest is the payload for POST /events
type CreateEventRequest struct {
	SubjectID   int64     `json:"subjectId" binding:"required"`
	StartTime   time.Time `json:"startTime" binding:"required"`
	EndTime     time.Time `json:"endTime" binding:"required"`
	Description string    `json:"description"`
	Room        *string   `json:"room"`
}

// CreateAssignmentRequest is the multipart form for POST /assignments.
// The optional attachment travels as the "file" form part.
type CreateAssignmentRequest struct {
	SubjectID   int64  `form:"subjectId" binding:"required"`
	Title       string `form:"title" binding:"required"`
	Description string `form:"description"`
	DueDate     string `form:"dueDate"` // RFC 3339, optional
}

// SetAttendanceRequest is the payload for PUT /attendance.
// Exactly one of EventID / AssignmentID must be set.
type SetAttendanceRequest struct {
	EventID      *int64 `json:"eventId"`
	AssignmentID *int64 `json:"assignmentId"`
	Status       string `json:"status" binding:"required,oneof=yes no maybe"`
}

// NotifyRequest is the payload for POST /notifications
type NotifyRequest struct {
	Subject string `json:"subject" binding:"required"`
	Content string `json:"content" binding:"required"`
}
