package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mvidal/agenda/internal/app/models"
	"github.com/mvidal/agenda/internal/pkg/apperrors"
)

// AssignmentService defines the interface for assignment operations
type AssignmentService interface {
	// AddAssignment appends an assignment. File name and path are opaque
	// pass-through metadata for an already-stored attachment.
	AddAssignment(ctx context.Context, subjectID int64, title, description string, dueDate *time.Time, creatorID *int64, fileName, filePath *string) (*models.Assignment, error)

	GetAssignment(ctx context.Context, id int64) (*models.Assignment, error)
	ListForSubject(ctx context.Context, subjectID int64) ([]*models.Assignment, error)
	ListAll(ctx context.Context) ([]*models.Assignment, error)
}

// assignmentServiceImpl implements the AssignmentService interface
type assignmentServiceImpl struct {
	assignmentRepo AssignmentRepository
}

// NewAssignmentService creates a new assignment service instance
func NewAssignmentService(assignmentRepo AssignmentRepository) AssignmentService {
	return &assignmentServiceImpl{
		assignmentRepo: assignmentRepo,
	}
}

// AddAssignment appends a new assignment row
func (s *assignmentServiceImpl) AddAssignment(ctx context.Context, subjectID int64, title, description string, dueDate *time.Time, creatorID *int64, fileName, filePath *string) (*models.Assignment, error) {
	if subjectID <= 0 {
		return nil, fmt.Errorf("%w: invalid subject ID", apperrors.ErrValidationFailed)
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", apperrors.ErrValidationFailed)
	}

	assignment := &models.Assignment{
		SubjectID:   subjectID,
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		CreatorID:   creatorID,
		FileName:    fileName,
		FilePath:    filePath,
	}

	if _, err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		return nil, fmt.Errorf("error creating assignment: %w", err)
	}

	return assignment, nil
}

// GetAssignment retrieves an assignment by id, nil when absent
func (s *assignmentServiceImpl) GetAssignment(ctx context.Context, id int64) (*models.Assignment, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrAssignmentNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving assignment: %w", err)
	}
	return assignment, nil
}

// ListForSubject retrieves a subject's assignments ordered by due date
func (s *assignmentServiceImpl) ListForSubject(ctx context.Context, subjectID int64) ([]*models.Assignment, error) {
	assignments, err := s.assignmentRepo.ListForSubject(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("error listing assignments: %w", err)
	}
	return assignments, nil
}

// ListAll retrieves every assignment ordered by due date
func (s *assignmentServiceImpl) ListAll(ctx context.Context) ([]*models.Assignment, error) {
	assignments, err := s.assignmentRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing assignments: %w", err)
	}
	return assignments, nil
}
