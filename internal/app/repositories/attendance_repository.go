package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mvidal/agenda/internal/app/models"
)

// AttendanceRepository handles database operations for RSVP records
type AttendanceRepository struct {
	db *pgxpool.Pool
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{
		db: db,
	}
}

// UpsertForEvent records a user's response to an event. A repeated
// submission overwrites status and refreshes the timestamp; the partial
// unique index on (user_id, event_id) guarantees a single row per pair.
func (r *AttendanceRepository) UpsertForEvent(ctx context.Context, userID, eventID int64, status models.AttendanceStatus) (*models.Attendance, error) {
	query := `
		INSERT INTO attendances (user_id, event_id, status, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, event_id) WHERE event_id IS NOT NULL
		DO UPDATE SET status = EXCLUDED.status, updated_at = NOW()
		RETURNING id, user_id, event_id, assignment_id, status, updated_at
	`

	return r.scanOne(r.db.QueryRow(ctx, query, userID, eventID, status))
}

// UpsertForAssignment records a user's response to an assignment, with the
// same overwrite semantics as UpsertForEvent.
func (r *AttendanceRepository) UpsertForAssignment(ctx context.Context, userID, assignmentID int64, status models.AttendanceStatus) (*models.Attendance, error) {
	query := `
		INSERT INTO attendances (user_id, assignment_id, status, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, assignment_id) WHERE assignment_id IS NOT NULL
		DO UPDATE SET status = EXCLUDED.status, updated_at = NOW()
		RETURNING id, user_id, event_id, assignment_id, status, updated_at
	`

	return r.scanOne(r.db.QueryRow(ctx, query, userID, assignmentID, status))
}

// ListForEvent retrieves all responses recorded against an event
func (r *AttendanceRepository) ListForEvent(ctx context.Context, eventID int64) ([]*models.Attendance, error) {
	query := `
		SELECT id, user_id, event_id, assignment_id, status, updated_at
		FROM attendances
		WHERE event_id = $1
	`

	return r.queryMany(ctx, query, eventID)
}

// ListForAssignment retrieves all responses recorded against an assignment
func (r *AttendanceRepository) ListForAssignment(ctx context.Context, assignmentID int64) ([]*models.Attendance, error) {
	query := `
		SELECT id, user_id, event_id, assignment_id, status, updated_at
		FROM attendances
		WHERE assignment_id = $1
	`

	return r.queryMany(ctx, query, assignmentID)
}

// GetForUserEvent retrieves one user's response to an event, nil when none
func (r *AttendanceRepository) GetForUserEvent(ctx context.Context, userID, eventID int64) (*models.Attendance, error) {
	query := `
		SELECT id, user_id, event_id, assignment_id, status, updated_at
		FROM attendances
		WHERE user_id = $1 AND event_id = $2
	`

	att, err := r.scanOne(r.db.QueryRow(ctx, query, userID, eventID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return att, err
}

// GetForUserAssignment retrieves one user's response to an assignment, nil when none
func (r *AttendanceRepository) GetForUserAssignment(ctx context.Context, userID, assignmentID int64) (*models.Attendance, error) {
	query := `
		SELECT id, user_id, event_id, assignment_id, status, updated_at
		FROM attendances
		WHERE user_id = $1 AND assignment_id = $2
	`

	att, err := r.scanOne(r.db.QueryRow(ctx, query, userID, assignmentID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return att, err
}

func (r *AttendanceRepository) scanOne(row pgx.Row) (*models.Attendance, error) {
	var att models.Attendance
	err := row.Scan(
		&att.ID,
		&att.UserID,
		&att.EventID,
		&att.AssignmentID,
		&att.Status,
		&att.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, fmt.Errorf("error scanning attendance: %w", err)
	}
	return &att, nil
}

func (r *AttendanceRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]*models.Attendance, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing attendances: %w", err)
	}
	defer rows.Close()

	var attendances []*models.Attendance
	for rows.Next() {
		var att models.Attendance
		if err := rows.Scan(
			&att.ID,
			&att.UserID,
			&att.EventID,
			&att.AssignmentID,
			&att.Status,
			&att.UpdatedAt,
		); err != nil {
			return nil, err
		}
		attendances = append(attendances, &att)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return attendances, nil
}
