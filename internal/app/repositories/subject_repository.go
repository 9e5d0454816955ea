package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mvidal/agenda/internal/app/models"
	"github.com/mvidal/agenda/internal/pkg/apperrors"
)

// SubjectRepository handles database operations for subjects
type SubjectRepository struct {
	db *pgxpool.Pool
}

// NewSubjectRepository creates a new subject repository
func NewSubjectRepository(db *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{
		db: db,
	}
}

// Create inserts a new subject row. Teacher and class references are stored
// as given without checking that the ids exist.
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) (int64, error) {
	query := `
		INSERT INTO subjects (name, teacher_id, room, color, class_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		subject.Name,
		subject.TeacherID,
		subject.Room,
		subject.Color,
		subject.ClassID,
	).Scan(&subject.ID)
	if err != nil {
		return 0, fmt.Errorf("error creating subject: %w", err)
	}

	return subject.ID, nil
}

// GetByID retrieves a subject by ID
func (r *SubjectRepository) GetByID(ctx context.Context, id int64) (*models.Subject, error) {
	query := `
		SELECT id, name, teacher_id, room, color, class_id
		FROM subjects
		WHERE id = $1
	`

	var subject models.Subject
	err := r.db.QueryRow(ctx, query, id).Scan(
		&subject.ID,
		&subject.Name,
		&subject.TeacherID,
		&subject.Room,
		&subject.Color,
		&subject.ClassID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubjectNotFound
		}
		return nil, fmt.Errorf("error retrieving subject: %w", err)
	}

	return &subject, nil
}

// Delete removes the subject row only. Dependent events, assignments and
// attendances are left in place.
func (r *SubjectRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting subject: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrSubjectNotFound
	}

	return nil
}

// List retrieves all subjects ordered by name
func (r *SubjectRepository) List(ctx context.Context) ([]*models.Subject, error) {
	query := `
		SELECT id, name, teacher_id, room, color, class_id
		FROM subjects
		ORDER BY name
	`

	return r.queryMany(ctx, query)
}

// ListForTeacher retrieves the subjects assigned to a teacher, ordered by name
func (r *SubjectRepository) ListForTeacher(ctx context.Context, teacherID int64) ([]*models.Subject, error) {
	query := `
		SELECT id, name, teacher_id, room, color, class_id
		FROM subjects
		WHERE teacher_id = $1
		ORDER BY name
	`

	return r.queryMany(ctx, query, teacherID)
}

func (r *SubjectRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]*models.Subject, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing subjects: %w", err)
	}
	defer rows.Close()

	var subjects []*models.Subject
	for rows.Next() {
		var subject models.Subject
		if err := rows.Scan(
			&subject.ID,
			&subject.Name,
			&subject.TeacherID,
			&subject.Room,
			&subject.Color,
			&subject.ClassID,
		); err != nil {
			return nil, err
		}
		subjects = append(subjects, &subject)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return subjects, nil
}
