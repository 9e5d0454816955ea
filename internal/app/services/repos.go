package services

import (
	"context"
	"time"

	"github.com/mvidal/agenda/internal/app/models"
)

// Repository interfaces consumed by the services. The pgx-backed
// implementations live in the repositories package; tests substitute
// in-memory doubles.

// UserRepository is the account storage surface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	ListByRole(ctx context.Context, role models.Role) ([]*models.User, error)
}

// ClassRepository is the class storage surface
type ClassRepository interface {
	Create(ctx context.Context, class *models.Class) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Class, error)
	List(ctx context.Context) ([]*models.Class, error)
}

// SubjectRepository is the subject storage surface
type SubjectRepository interface {
	Create(ctx context.Context, subject *models.Subject) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Subject, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*models.Subject, error)
	ListForTeacher(ctx context.Context, teacherID int64) ([]*models.Subject, error)
}

// EventRepository is the event storage surface
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	ListForDate(ctx context.Context, from, to time.Time) ([]*models.Event, error)
	ListForSubject(ctx context.Context, subjectID int64) ([]*models.Event, error)
	ListAll(ctx context.Context) ([]*models.Event, error)
	ListAllDetailed(ctx context.Context) ([]*models.Event, error)
}

// AssignmentRepository is the assignment storage surface
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *models.Assignment) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Assignment, error)
	ListForSubject(ctx context.Context, subjectID int64) ([]*models.Assignment, error)
	ListAll(ctx context.Context) ([]*models.Assignment, error)
}

// AttendanceRepository is the RSVP storage surface
type AttendanceRepository interface {
	UpsertForEvent(ctx context.Context, userID, eventID int64, status models.AttendanceStatus) (*models.Attendance, error)
	UpsertForAssignment(ctx context.Context, userID, assignmentID int64, status models.AttendanceStatus) (*models.Attendance, error)
	ListForEvent(ctx context.Context, eventID int64) ([]*models.Attendance, error)
	ListForAssignment(ctx context.Context, assignmentID int64) ([]*models.Attendance, error)
	GetForUserEvent(ctx context.Context, userID, eventID int64) (*models.Attendance, error)
	GetForUserAssignment(ctx context.Context, userID, assignmentID int64) (*models.Attendance, error)
}

// MessageRepository is the internal message storage surface
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) (int64, error)
	ListForUser(ctx context.Context, userID int64) ([]*models.Message, error)
	CountUnreadForUser(ctx context.Context, userID int64) (int, error)
	MarkRead(ctx context.Context, messageID int64) (bool, error)
}
