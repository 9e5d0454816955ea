package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mvidal/agenda/internal/app/models"
	"github.com/mvidal/agenda/internal/pkg/apperrors"
)

// EventRepository handles database operations for events
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{
		db: db,
	}
}

// Create inserts a new event row
func (r *EventRepository) Create(ctx context.Context, event *models.Event) (int64, error) {
	query := `
		INSERT INTO events (subject_id, start_time, end_time, description, creator_id, room)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		event.SubjectID,
		event.StartTime,
		event.EndTime,
		event.Description,
		event.CreatorID,
		event.Room,
	).Scan(&event.ID)
	if err != nil {
		return 0, fmt.Errorf("error creating event: %w", err)
	}

	return event.ID, nil
}

// GetByID retrieves an event by ID
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	query := `
		SELECT id, subject_id, start_time, end_time, description, creator_id, room
		FROM events
		WHERE id = $1
	`

	var event models.Event
	err := r.db.QueryRow(ctx, query, id).Scan(
		&event.ID,
		&event.SubjectID,
		&event.StartTime,
		&event.EndTime,
		&event.Description,
		&event.CreatorID,
		&event.Room,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("error retrieving event: %w", err)
	}

	return &event, nil
}

// ListForDate retrieves events whose start time falls within [from, to],
// ordered by start time. Callers supply the inclusive calendar-day bounds.
func (r *EventRepository) ListForDate(ctx context.Context, from, to time.Time) ([]*models.Event, error) {
	query := `
		SELECT id, subject_id, start_time, end_time, description, creator_id, room
		FROM events
		WHERE start_time >= $1 AND start_time <= $2
		ORDER BY start_time
	`

	return r.queryMany(ctx, query, from, to)
}

// ListForSubject retrieves a subject's events ordered by start time
func (r *EventRepository) ListForSubject(ctx context.Context, subjectID int64) ([]*models.Event, error) {
	query := `
		SELECT id, subject_id, start_time, end_time, description, creator_id, room
		FROM events
		WHERE subject_id = $1
		ORDER BY start_time
	`

	return r.queryMany(ctx, query, subjectID)
}

// ListAll retrieves every event ordered by start time
func (r *EventRepository) ListAll(ctx context.Context) ([]*models.Event, error) {
	query := `
		SELECT id, subject_id, start_time, end_time, description, creator_id, room
		FROM events
		ORDER BY start_time
	`

	return r.queryMany(ctx, query)
}

// ListAllDetailed retrieves every event with its subject and the subject's
// teacher attached, ordered by start time. Events whose subject was deleted
// are not visible here; the timetable export and search run over this set.
func (r *EventRepository) ListAllDetailed(ctx context.Context) ([]*models.Event, error) {
	query := `
		SELECT e.id, e.subject_id, e.start_time, e.end_time, e.description, e.creator_id, e.room,
		       s.id, s.name, s.teacher_id, s.room, s.color, s.class_id,
		       u.id, u.username, u.role, u.full_name
		FROM events e
		JOIN subjects s ON s.id = e.subject_id
		LEFT JOIN users u ON u.id = s.teacher_id
		ORDER BY e.start_time
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		var event models.Event
		var subject models.Subject
		var teacherID *int64
		var teacherUsername, teacherFullName *string
		var teacherRole *models.Role

		if err := rows.Scan(
			&event.ID,
			&event.SubjectID,
			&event.StartTime,
			&event.EndTime,
			&event.Description,
			&event.CreatorID,
			&event.Room,
			&subject.ID,
			&subject.Name,
			&subject.TeacherID,
			&subject.Room,
			&subject.Color,
			&subject.ClassID,
			&teacherID,
			&teacherUsername,
			&teacherRole,
			&teacherFullName,
		); err != nil {
			return nil, err
		}

		if teacherID != nil {
			subject.Teacher = &models.User{
				ID:       *teacherID,
				Username: *teacherUsername,
				Role:     *teacherRole,
				FullName: teacherFullName,
			}
		}
		event.Subject = &subject
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

func (r *EventRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]*models.Event, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		var event models.Event
		if err := rows.Scan(
			&event.ID,
			&event.SubjectID,
			&event.StartTime,
			&event.EndTime,
			&event.Description,
			&event.CreatorID,
			&event.Room,
		); err != nil {
			return nil, err
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
