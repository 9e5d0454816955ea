package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mvidal/agenda/internal/app/models"
	"github.com/mvidal/agenda/internal/pkg/apperrors"
	"github.com/mvidal/agenda/internal/pkg/dberrors"
)

// ClassRepository handles database operations for classes
type ClassRepository struct {
	db *pgxpool.Pool
}

// NewClassRepository creates a new class repository
func NewClassRepository(db *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{
		db: db,
	}
}

// Create inserts a new class row
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) (int64, error) {
	query := `
		INSERT INTO classes (name, description)
		VALUES ($1, $2)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, class.Name, class.Description).Scan(&class.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrClassNameTaken
		}
		return 0, fmt.Errorf("error creating class: %w", err)
	}

	return class.ID, nil
}

// GetByID retrieves a class by ID
func (r *ClassRepository) GetByID(ctx context.Context, id int64) (*models.Class, error) {
	query := `
		SELECT id, name, description
		FROM classes
		WHERE id = $1
	`

	var class models.Class
	err := r.db.QueryRow(ctx, query, id).Scan(&class.ID, &class.Name, &class.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClassNotFound
		}
		return nil, fmt.Errorf("error retrieving class: %w", err)
	}

	return &class, nil
}

// List retrieves all classes ordered by name
func (r *ClassRepository) List(ctx context.Context) ([]*models.Class, error) {
	query := `
		SELECT id, name, description
		FROM classes
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing classes: %w", err)
	}
	defer rows.Close()

	var classes []*models.Class
	for rows.Next() {
		var class models.Class
		if err := rows.Scan(&class.ID, &class.Name, &class.Description); err != nil {
			return nil, err
		}
		classes = append(classes, &class)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return classes, nil
}
