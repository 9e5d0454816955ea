package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository       *UserRepository
	ClassRepository      *ClassRepository
	SubjectRepository    *SubjectRepository
	EventRepository      *EventRepository
	AssignmentRepository *AssignmentRepository
	AttendanceRepository *AttendanceRepository
	MessageRepository    *MessageRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db),
		ClassRepository:      NewClassRepository(db),
		SubjectRepository:    NewSubjectRepository(db),
		EventRepository:      NewEventRepository(db),
		AssignmentRepository: NewAssignmentRepository(db),
		AttendanceRepository: NewAttendanceRepository(db),
		MessageRepository:    NewMessageRepository(db),
	}
}
