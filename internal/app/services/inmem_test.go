package services

import (
	"context"
	"sort"
	"time"

	"github.com/mvidal/agenda/internal/app/models"
	"github.com/mvidal/agenda/internal/pkg/apperrors"
)

// In-memory repository doubles. They mirror the behavior of the pgx-backed
// repositories closely enough for service-level tests: sentinel errors on
// duplicates and missing rows, ordering where the SQL orders.

type memUserRepo struct {
	nextID int64
	users  map[int64]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[int64]*models.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *models.User) (int64, error) {
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return 0, apperrors.ErrUsernameTaken
		}
	}
	r.nextID++
	user.ID = r.nextID
	copied := *user
	r.users[user.ID] = &copied
	return user.ID, nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *memUserRepo) ListByRole(_ context.Context, role models.Role) ([]*models.User, error) {
	var result []*models.User
	for _, user := range r.users {
		if user.Role == role {
			copied := *user
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Username < result[j].Username })
	return result, nil
}

type memClassRepo struct {
	nextID  int64
	classes map[int64]*models.Class
}

func newMemClassRepo() *memClassRepo {
	return &memClassRepo{classes: make(map[int64]*models.Class)}
}

func (r *memClassRepo) Create(_ context.Context, class *models.Class) (int64, error) {
	for _, existing := range r.classes {
		if existing.Name == class.Name {
			return 0, apperrors.ErrClassNameTaken
		}
	}
	r.nextID++
	class.ID = r.nextID
	copied := *class
	r.classes[class.ID] = &copied
	return class.ID, nil
}

func (r *memClassRepo) GetByID(_ context.Context, id int64) (*models.Class, error) {
	class, ok := r.classes[id]
	if !ok {
		return nil, apperrors.ErrClassNotFound
	}
	copied := *class
	return &copied, nil
}

func (r *memClassRepo) List(_ context.Context) ([]*models.Class, error) {
	result := make([]*models.Class, 0, len(r.classes))
	for _, class := range r.classes {
		copied := *class
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

type memSubjectRepo struct {
	nextID   int64
	subjects map[int64]*models.Subject
}

func newMemSubjectRepo() *memSubjectRepo {
	return &memSubjectRepo{subjects: make(map[int64]*models.Subject)}
}

func (r *memSubjectRepo) Create(_ context.Context, subject *models.Subject) (int64, error) {
	r.nextID++
	subject.ID = r.nextID
	copied := *subject
	r.subjects[subject.ID] = &copied
	return subject.ID, nil
}

func (r *memSubjectRepo) GetByID(_ context.Context, id int64) (*models.Subject, error) {
	subject, ok := r.subjects[id]
	if !ok {
		return nil, apperrors.ErrSubjectNotFound
	}
	copied := *subject
	return &copied, nil
}

func (r *memSubjectRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.subjects[id]; !ok {
		return apperrors.ErrSubjectNotFound
	}
	delete(r.subjects, id)
	return nil
}

func (r *memSubjectRepo) List(_ context.Context) ([]*models.Subject, error) {
	result := make([]*models.Subject, 0, len(r.subjects))
	for _, subject := range r.subjects {
		copied := *subject
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *memSubjectRepo) ListForTeacher(_ context.Context, teacherID int64) ([]*models.Subject, error) {
	var result []*models.Subject
	for _, subject := range r.subjects {
		if subject.TeacherID != nil && *subject.TeacherID == teacherID {
			copied := *subject
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

type memEventRepo struct {
	nextID int64
	events []*models.Event
}

func newMemEventRepo() *memEventRepo {
	return &memEventRepo{}
}

func (r *memEventRepo) Create(_ context.Context, event *models.Event) (int64, error) {
	r.nextID++
	event.ID = r.nextID
	copied := *event
	r.events = append(r.events, &copied)
	return event.ID, nil
}

func (r *memEventRepo) GetByID(_ context.Context, id int64) (*models.Event, error) {
	for _, event := range r.events {
		if event.ID == id {
			copied := *event
			return &copied, nil
		}
	}
	return nil, apperrors.ErrEventNotFound
}

func (r *memEventRepo) ListForDate(_ context.Context, from, to time.Time) ([]*models.Event, error) {
	var result []*models.Event
	for _, event := range r.events {
		if !event.StartTime.Before(from) && !event.StartTime.After(to) {
			copied := *event
			result = append(result, &copied)
		}
	}
	sortEventsByStart(result)
	return result, nil
}

func (r *memEventRepo) ListForSubject(_ context.Context, subjectID int64) ([]*models.Event, error) {
	var result []*models.Event
	for _, event := range r.events {
		if event.SubjectID == subjectID {
			copied := *event
			result = append(result, &copied)
		}
	}
	sortEventsByStart(result)
	return result, nil
}

func (r *memEventRepo) ListAll(_ context.Context) ([]*models.Event, error) {
	result := make([]*models.Event, 0, len(r.events))
	for _, event := range r.events {
		copied := *event
		result = append(result, &copied)
	}
	sortEventsByStart(result)
	return result, nil
}

func (r *memEventRepo) ListAllDetailed(ctx context.Context) ([]*models.Event, error) {
	return r.ListAll(ctx)
}

func sortEventsByStart(events []*models.Event) {
	sort.Slice(events, func(i, j int) bool { return events[i].StartTime.Before(events[j].StartTime) })
}

type memAssignmentRepo struct {
	nextID      int64
	assignments []*models.Assignment
}

func newMemAssignmentRepo() *memAssignmentRepo {
	return &memAssignmentRepo{}
}

func (r *memAssignmentRepo) Create(_ context.Context, assignment *models.Assignment) (int64, error) {
	r.nextID++
	assignment.ID = r.nextID
	copied := *assignment
	r.assignments = append(r.assignments, &copied)
	return assignment.ID, nil
}

func (r *memAssignmentRepo) GetByID(_ context.Context, id int64) (*models.Assignment, error) {
	for _, assignment := range r.assignments {
		if assignment.ID == id {
			copied := *assignment
			return &copied, nil
		}
	}
	return nil, apperrors.ErrAssignmentNotFound
}

func (r *memAssignmentRepo) ListForSubject(_ context.Context, subjectID int64) ([]*models.Assignment, error) {
	var result []*models.Assignment
	for _, assignment := range r.assignments {
		if assignment.SubjectID == subjectID {
			copied := *assignment
			result = append(result, &copied)
		}
	}
	sortAssignmentsByDueDate(result)
	return result, nil
}

func (r *memAssignmentRepo) ListAll(_ context.Context) ([]*models.Assignment, error) {
	result := make([]*models.Assignment, 0, len(r.assignments))
	for _, assignment := range r.assignments {
		copied := *assignment
		result = append(result, &copied)
	}
	sortAssignmentsByDueDate(result)
	return result, nil
}

// sortAssignmentsByDueDate orders by due date ascending, undated last
func sortAssignmentsByDueDate(assignments []*models.Assignment) {
	sort.SliceStable(assignments, func(i, j int) bool {
		a, b := assignments[i].DueDate, assignments[j].DueDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
}

type memAttendanceRepo struct {
	nextID  int64
	records []*models.Attendance
}

func newMemAttendanceRepo() *memAttendanceRepo {
	return &memAttendanceRepo{}
}

func (r *memAttendanceRepo) UpsertForEvent(_ context.Context, userID, eventID int64, status models.AttendanceStatus) (*models.Attendance, error) {
	for _, record := range r.records {
		if record.UserID == userID && record.EventID != nil && *record.EventID == eventID {
			record.Status = status
			record.UpdatedAt = time.Now()
			copied := *record
			return &copied, nil
		}
	}
	r.nextID++
	record := &models.Attendance{
		ID:        r.nextID,
		UserID:    userID,
		EventID:   &eventID,
		Status:    status,
		UpdatedAt: time.Now(),
	}
	r.records = append(r.records, record)
	copied := *record
	return &copied, nil
}

func (r *memAttendanceRepo) UpsertForAssignment(_ context.Context, userID, assignmentID int64, status models.AttendanceStatus) (*models.Attendance, error) {
	for _, record := range r.records {
		if record.UserID == userID && record.AssignmentID != nil && *record.AssignmentID == assignmentID {
			record.Status = status
			record.UpdatedAt = time.Now()
			copied := *record
			return &copied, nil
		}
	}
	r.nextID++
	record := &models.Attendance{
		ID:           r.nextID,
		UserID:       userID,
		AssignmentID: &assignmentID,
		Status:       status,
		UpdatedAt:    time.Now(),
	}
	r.records = append(r.records, record)
	copied := *record
	return &copied, nil
}

func (r *memAttendanceRepo) ListForEvent(_ context.Context, eventID int64) ([]*models.Attendance, error) {
	var result []*models.Attendance
	for _, record := range r.records {
		if record.EventID != nil && *record.EventID == eventID {
			copied := *record
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *memAttendanceRepo) ListForAssignment(_ context.Context, assignmentID int64) ([]*models.Attendance, error) {
	var result []*models.Attendance
	for _, record := range r.records {
		if record.AssignmentID != nil && *record.AssignmentID == assignmentID {
			copied := *record
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *memAttendanceRepo) GetForUserEvent(_ context.Context, userID, eventID int64) (*models.Attendance, error) {
	for _, record := range r.records {
		if record.UserID == userID && record.EventID != nil && *record.EventID == eventID {
			copied := *record
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memAttendanceRepo) GetForUserAssignment(_ context.Context, userID, assignmentID int64) (*models.Attendance, error) {
	for _, record := range r.records {
		if record.UserID == userID && record.AssignmentID != nil && *record.AssignmentID == assignmentID {
			copied := *record
			return &copied, nil
		}
	}
	return nil, nil
}

type memMessageRepo struct {
	nextID   int64
	messages []*models.Message
}

func newMemMessageRepo() *memMessageRepo {
	return &memMessageRepo{}
}

func (r *memMessageRepo) Create(_ context.Context, message *models.Message) (int64, error) {
	r.nextID++
	message.ID = r.nextID
	message.CreatedAt = time.Now()
	copied := *message
	r.messages = append(r.messages, &copied)
	return message.ID, nil
}

func (r *memMessageRepo) ListForUser(_ context.Context, userID int64) ([]*models.Message, error) {
	var result []*models.Message
	for _, message := range r.messages {
		if message.ToUserID == userID {
			copied := *message
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (r *memMessageRepo) CountUnreadForUser(_ context.Context, userID int64) (int, error) {
	count := 0
	for _, message := range r.messages {
		if message.ToUserID == userID && !message.Read {
			count++
		}
	}
	return count, nil
}

func (r *memMessageRepo) MarkRead(_ context.Context, messageID int64) (bool, error) {
	for _, message := range r.messages {
		if message.ID == messageID {
			message.Read = true
			return true, nil
		}
	}
	return false, nil
}
