package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mvidal/agenda/internal/app/models"
	"github.com/mvidal/agenda/internal/pkg/apperrors"
)

// SubjectService defines the interface for subject operations
type SubjectService interface {
	// CreateSubject creates a subject. Teacher and class ids are optional
	// and accepted without checking that they exist.
	CreateSubject(ctx context.Context, name string, teacherID *int64, room, color string, classID *int64) (*models.Subject, error)

	// DeleteSubject removes the subject row only; dependent events,
	// assignments and attendances are left in place.
	DeleteSubject(ctx context.Context, id int64) error

	GetSubject(ctx context.Context, id int64) (*models.Subject, error)
	ListSubjects(ctx context.Context) ([]*models.Subject, error)
	ListSubjectsForTeacher(ctx context.Context, teacherID int64) ([]*models.Subject, error)
}

// subjectServiceImpl implements the SubjectService interface
type subjectServiceImpl struct {
	subjectRepo SubjectRepository
}

// NewSubjectService creates a new subject service instance
func NewSubjectService(subjectRepo SubjectRepository) SubjectService {
	return &subjectServiceImpl{
		subjectRepo: subjectRepo,
	}
}

// CreateSubject creates a new subject
func (s *subjectServiceImpl) CreateSubject(ctx context.Context, name string, teacherID *int64, room, color string, classID *int64) (*models.Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}
	if color == "" {
		color = models.DefaultSubjectColor
	}

	subject := &models.Subject{
		Name:      name,
		TeacherID: teacherID,
		Room:      room,
		Color:     color,
		ClassID:   classID,
	}

	if _, err := s.subjectRepo.Create(ctx, subject); err != nil {
		return nil, fmt.Errorf("error creating subject: %w", err)
	}

	return subject, nil
}

// DeleteSubject removes a subject by id
func (s *subjectServiceImpl) DeleteSubject(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid subject ID", apperrors.ErrValidationFailed)
	}

	if err := s.subjectRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrSubjectNotFound) {
			return apperrors.ErrSubjectNotFound
		}
		return fmt.Errorf("error deleting subject: %w", err)
	}
	return nil
}

// GetSubject retrieves a subject by id, nil when absent
func (s *subjectServiceImpl) GetSubject(ctx context.Context, id int64) (*models.Subject, error) {
	subject, err := s.subjectRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrSubjectNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving subject: %w", err)
	}
	return subject, nil
}

// ListSubjects retrieves all subjects ordered by name
func (s *subjectServiceImpl) ListSubjects(ctx context.Context) ([]*models.Subject, error) {
	subjects, err := s.subjectRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing subjects: %w", err)
	}
	return subjects, nil
}

// ListSubjectsForTeacher retrieves the subjects assigned to a teacher
func (s *subjectServiceImpl) ListSubjectsForTeacher(ctx context.Context, teacherID int64) ([]*models.Subject, error) {
	subjects, err := s.subjectRepo.ListForTeacher(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("error listing subjects: %w", err)
	}
	return subjects, nil
}
