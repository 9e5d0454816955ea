package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mvidal/agenda/internal/app/models"
	"github.com/mvidal/agenda/internal/pkg/apperrors"
)

// ClassService defines the interface for class operations
type ClassService interface {
	CreateClass(ctx context.Context, name, description string) (*models.Class, error)
	ListClasses(ctx context.Context) ([]*models.Class, error)
	GetClass(ctx context.Context, id int64) (*models.Class, error)
}

// classServiceImpl implements the ClassService interface
type classServiceImpl struct {
	classRepo ClassRepository
}

// NewClassService creates a new class service instance
func NewClassService(classRepo ClassRepository) ClassService {
	return &classServiceImpl{
		classRepo: classRepo,
	}
}

// CreateClass creates a new class with a unique name
func (s *classServiceImpl) CreateClass(ctx context.Context, name, description string) (*models.Class, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}

	class := &models.Class{
		Name:        name,
		Description: description,
	}

	if _, err := s.classRepo.Create(ctx, class); err != nil {
		if errors.Is(err, apperrors.ErrClassNameTaken) {
			return nil, apperrors.ErrClassNameTaken
		}
		return nil, fmt.Errorf("error creating class: %w", err)
	}

	return class, nil
}

// ListClasses retrieves all classes ordered by name
func (s *classServiceImpl) ListClasses(ctx context.Context) ([]*models.Class, error) {
	classes, err := s.classRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing classes: %w", err)
	}
	return classes, nil
}

// GetClass retrieves a class by id, nil when absent
func (s *classServiceImpl) GetClass(ctx context.Context, id int64) (*models.Class, error) {
	class, err := s.classRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrClassNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving class: %w", err)
	}
	return class, nil
}
