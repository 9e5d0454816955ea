package services

import (
	"context"
	"fmt"

	"github.com/mvidal/agenda/internal/app/models"
	"github.com/mvidal/agenda/internal/pkg/apperrors"
)

// AttendanceService defines the interface for RSVP operations
type AttendanceService interface {
	// SetAttendance records a user's response against exactly one of
	// eventID / assignmentID. Supplying neither or both fails. A repeated
	// submission for the same (user, target) pair overwrites the previous
	// status and refreshes the timestamp; exactly one row exists per pair.
	SetAttendance(ctx context.Context, userID int64, eventID *int64, status models.AttendanceStatus, assignmentID *int64) (*models.Attendance, error)

	// GetUserResponse returns the user's recorded response for the target,
	// nil when no response exists yet.
	GetUserResponse(ctx context.Context, userID int64, eventID, assignmentID *int64) (*models.Attendance, error)

	// ListForEvent returns all responses recorded against an event
	ListForEvent(ctx context.Context, eventID int64) ([]*models.Attendance, error)

	// ListForAssignment returns all responses recorded against an assignment
	ListForAssignment(ctx context.Context, assignmentID int64) ([]*models.Attendance, error)

	// SummaryForEvent counts the yes/no/maybe responses for an event
	SummaryForEvent(ctx context.Context, eventID int64) (models.AttendanceSummary, error)

	// SummaryForAssignment counts the yes/no/maybe responses for an assignment
	SummaryForAssignment(ctx context.Context, assignmentID int64) (models.AttendanceSummary, error)
}

// attendanceServiceImpl implements the AttendanceService interface
type attendanceServiceImpl struct {
	attendanceRepo AttendanceRepository
}

// NewAttendanceService creates a new attendance service instance
func NewAttendanceService(attendanceRepo AttendanceRepository) AttendanceService {
	return &attendanceServiceImpl{
		attendanceRepo: attendanceRepo,
	}
}

// SetAttendance upserts a user's response for one target
func (s *attendanceServiceImpl) SetAttendance(ctx context.Context, userID int64, eventID *int64, status models.AttendanceStatus, assignmentID *int64) (*models.Attendance, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: invalid user ID", apperrors.ErrValidationFailed)
	}
	if (eventID == nil) == (assignmentID == nil) {
		return nil, fmt.Errorf("%w: exactly one of event ID and assignment ID must be set", apperrors.ErrInvalidArgument)
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidStatus, status)
	}

	var att *models.Attendance
	var err error
	if eventID != nil {
		att, err = s.attendanceRepo.UpsertForEvent(ctx, userID, *eventID, status)
	} else {
		att, err = s.attendanceRepo.UpsertForAssignment(ctx, userID, *assignmentID, status)
	}
	if err != nil {
		return nil, fmt.Errorf("error recording attendance: %w", err)
	}

	return att, nil
}

// GetUserResponse returns one user's response for a target, nil when none
func (s *attendanceServiceImpl) GetUserResponse(ctx context.Context, userID int64, eventID, assignmentID *int64) (*models.Attendance, error) {
	if (eventID == nil) == (assignmentID == nil) {
		return nil, fmt.Errorf("%w: exactly one of event ID and assignment ID must be set", apperrors.ErrInvalidArgument)
	}

	if eventID != nil {
		return s.attendanceRepo.GetForUserEvent(ctx, userID, *eventID)
	}
	return s.attendanceRepo.GetForUserAssignment(ctx, userID, *assignmentID)
}

// ListForEvent returns all responses recorded against an event
func (s *attendanceServiceImpl) ListForEvent(ctx context.Context, eventID int64) ([]*models.Attendance, error) {
	attendances, err := s.attendanceRepo.ListForEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("error listing attendances: %w", err)
	}
	return attendances, nil
}

// ListForAssignment returns all responses recorded against an assignment
func (s *attendanceServiceImpl) ListForAssignment(ctx context.Context, assignmentID int64) ([]*models.Attendance, error) {
	attendances, err := s.attendanceRepo.ListForAssignment(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("error listing attendances: %w", err)
	}
	return attendances, nil
}

// SummaryForEvent counts responses by status with a linear scan
func (s *attendanceServiceImpl) SummaryForEvent(ctx context.Context, eventID int64) (models.AttendanceSummary, error) {
	attendances, err := s.ListForEvent(ctx, eventID)
	if err != nil {
		return models.AttendanceSummary{}, err
	}
	return summarize(attendances), nil
}

// SummaryForAssignment counts responses by status with a linear scan
func (s *attendanceServiceImpl) SummaryForAssignment(ctx context.Context, assignmentID int64) (models.AttendanceSummary, error) {
	attendances, err := s.ListForAssignment(ctx, assignmentID)
	if err != nil {
		return models.AttendanceSummary{}, err
	}
	return summarize(attendances), nil
}

func summarize(attendances []*models.Attendance) models.AttendanceSummary {
	var summary models.AttendanceSummary
	for _, att := range attendances {
		switch att.Status {
		case models.StatusYes:
			summary.Yes++
		case models.StatusNo:
			summary.No++
		case models.StatusMaybe:
			summary.Maybe++
		}
	}
	return summary
}
