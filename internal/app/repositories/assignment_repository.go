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

// AssignmentRepository handles database operations for assignments
type AssignmentRepository struct {
	db *pgxpool.Pool
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(db *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{
		db: db,
	}
}

// Create inserts a new assignment row. File name and path are stored as
// given; the repository does not check that the file exists.
func (r *AssignmentRepository) Create(ctx context.Context, assignment *models.Assignment) (int64, error) {
	query := `
		INSERT INTO assignments (subject_id, title, description, due_date, creator_id, file_name, file_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		assignment.SubjectID,
		assignment.Title,
		assignment.Description,
		assignment.DueDate,
		assignment.CreatorID,
		assignment.FileName,
		assignment.FilePath,
	).Scan(&assignment.ID)
	if err != nil {
		return 0, fmt.Errorf("error creating assignment: %w", err)
	}

	return assignment.ID, nil
}

// GetByID retrieves an assignment by ID
func (r *AssignmentRepository) GetByID(ctx context.Context, id int64) (*models.Assignment, error) {
	query := `
		SELECT id, subject_id, title, description, due_date, creator_id, file_name, file_path
		FROM assignments
		WHERE id = $1
	`

	var assignment models.Assignment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&assignment.ID,
		&assignment.SubjectID,
		&assignment.Title,
		&assignment.Description,
		&assignment.DueDate,
		&assignment.CreatorID,
		&assignment.FileName,
		&assignment.FilePath,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("error retrieving assignment: %w", err)
	}

	return &assignment, nil
}

// ListForSubject retrieves a subject's assignments ordered by due date,
// undated ones last.
func (r *AssignmentRepository) ListForSubject(ctx context.Context, subjectID int64) ([]*models.Assignment, error) {
	query := `
		SELECT id, subject_id, title, description, due_date, creator_id, file_name, file_path
		FROM assignments
		WHERE subject_id = $1
		ORDER BY due_date ASC NULLS LAST
	`

	return r.queryMany(ctx, query, subjectID)
}

// ListAll retrieves every assignment ordered by due date, undated ones last
func (r *AssignmentRepository) ListAll(ctx context.Context) ([]*models.Assignment, error) {
	query := `
		SELECT id, subject_id, title, description, due_date, creator_id, file_name, file_path
		FROM assignments
		ORDER BY due_date ASC NULLS LAST
	`

	return r.queryMany(ctx, query)
}

func (r *AssignmentRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]*models.Assignment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing assignments: %w", err)
	}
	defer rows.Close()

	var assignments []*models.Assignment
	for rows.Next() {
		var assignment models.Assignment
		if err := rows.Scan(
			&assignment.ID,
			&assignment.SubjectID,
			&assignment.Title,
			&assignment.Description,
			&assignment.DueDate,
			&assignment.CreatorID,
			&assignment.FileName,
			&assignment.FilePath,
		); err != nil {
			return nil, err
		}
		assignments = append(assignments, &assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}
