package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/mvidal/agenda/internal/app/models"
	"github.com/mvidal/agenda/internal/pkg/apperrors"
)

// DayEvents groups one calendar day's events for the week view
type DayEvents struct {
	Date   time.Time       `json:"date"`
	Events []*models.Event `json:"events"`
}

// EventService defines the interface for event and calendar operations
type EventService interface {
	// AddEvent appends an event. Room is optional; readers fall back to the
	// subject room when it is absent.
	AddEvent(ctx context.Context, subjectID int64, start, end time.Time, description string, creatorID *int64, room *string) (*models.Event, error)

	// EventsForDate returns events starting within the inclusive calendar
	// day of date, ordered by start time.
	EventsForDate(ctx context.Context, date time.Time) ([]*models.Event, error)

	// EventsForWeek returns seven day buckets starting from the Monday of
	// the reference date's week.
	EventsForWeek(ctx context.Context, reference time.Time) ([]DayEvents, error)

	// EventsForMonth returns a map keyed by day-of-month
	EventsForMonth(ctx context.Context, year int, month time.Month) (map[int][]*models.Event, error)

	EventsForSubject(ctx context.Context, subjectID int64) ([]*models.Event, error)
	ListAllEvents(ctx context.Context) ([]*models.Event, error)

	// SearchEvents matches the query case-insensitively against subject
	// name, teacher username and event description.
	SearchEvents(ctx context.Context, query string) ([]*models.Event, error)

	// ExportTimetableCSV renders the events visible to a user as CSV rows
	// (subject, teacher, room, start, end, description). Returns nil when
	// there are no events.
	ExportTimetableCSV(ctx context.Context, userID int64) ([]byte, error)
}

// eventServiceImpl implements the EventService interface
type eventServiceImpl struct {
	eventRepo EventRepository
}

// NewEventService creates a new event service instance
func NewEventService(eventRepo EventRepository) EventService {
	return &eventServiceImpl{
		eventRepo: eventRepo,
	}
}

// AddEvent appends a new event row
func (s *eventServiceImpl) AddEvent(ctx context.Context, subjectID int64, start, end time.Time, description string, creatorID *int64, room *string) (*models.Event, error) {
	if subjectID <= 0 {
		return nil, fmt.Errorf("%w: invalid subject ID", apperrors.ErrValidationFailed)
	}
	if start.IsZero() || end.IsZero() {
		return nil, fmt.Errorf("%w: start and end times are required", apperrors.ErrValidationFailed)
	}

	event := &models.Event{
		SubjectID:   subjectID,
		StartTime:   start,
		EndTime:     end,
		Description: description,
		CreatorID:   creatorID,
		Room:        room,
	}

	if _, err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("error creating event: %w", err)
	}

	return event, nil
}

// dayBounds returns the inclusive calendar-day bounds of date in its location
func dayBounds(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.Add(24*time.Hour - time.Microsecond)
	return start, end
}

// EventsForDate returns events whose start falls within the calendar day
func (s *eventServiceImpl) EventsForDate(ctx context.Context, date time.Time) ([]*models.Event, error) {
	from, to := dayBounds(date)
	events, err := s.eventRepo.ListForDate(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("error listing events for date: %w", err)
	}
	return events, nil
}

// EventsForWeek returns day buckets for the Monday-started week of reference
func (s *eventServiceImpl) EventsForWeek(ctx context.Context, reference time.Time) ([]DayEvents, error) {
	// Monday as first day; Go's Sunday is 0
	offset := (int(reference.Weekday()) + 6) % 7
	monday := reference.AddDate(0, 0, -offset)

	week := make([]DayEvents, 0, 7)
	for i := 0; i < 7; i++ {
		day := monday.AddDate(0, 0, i)
		events, err := s.EventsForDate(ctx, day)
		if err != nil {
			return nil, err
		}
		week = append(week, DayEvents{Date: day, Events: events})
	}
	return week, nil
}

// EventsForMonth returns the month's events keyed by day-of-month
func (s *eventServiceImpl) EventsForMonth(ctx context.Context, year int, month time.Month) (map[int][]*models.Event, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	result := make(map[int][]*models.Event, daysInMonth)
	for day := 1; day <= daysInMonth; day++ {
		events, err := s.EventsForDate(ctx, time.Date(year, month, day, 0, 0, 0, 0, time.Local))
		if err != nil {
			return nil, err
		}
		result[day] = events
	}
	return result, nil
}

// EventsForSubject returns a subject's events ordered by start time
func (s *eventServiceImpl) EventsForSubject(ctx context.Context, subjectID int64) ([]*models.Event, error) {
	events, err := s.eventRepo.ListForSubject(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("error listing events for subject: %w", err)
	}
	return events, nil
}

// ListAllEvents returns every event ordered by start time
func (s *eventServiceImpl) ListAllEvents(ctx context.Context) ([]*models.Event, error) {
	events, err := s.eventRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}
	return events, nil
}

// SearchEvents filters all events by a case-insensitive substring match
func (s *eventServiceImpl) SearchEvents(ctx context.Context, query string) ([]*models.Event, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}

	events, err := s.eventRepo.ListAllDetailed(ctx)
	if err != nil {
		return nil, fmt.Errorf("error searching events: %w", err)
	}

	var results []*models.Event
	for _, e := range events {
		var subjectName, teacherName string
		if e.Subject != nil {
			subjectName = e.Subject.Name
			if e.Subject.Teacher != nil {
				teacherName = e.Subject.Teacher.Username
			}
		}

		if strings.Contains(strings.ToLower(subjectName), q) ||
			strings.Contains(strings.ToLower(teacherName), q) ||
			strings.Contains(strings.ToLower(e.Description), q) {
			results = append(results, e)
		}
	}
	return results, nil
}

// ExportTimetableCSV renders the user's visible events as CSV. All events
// are visible to every account for now; per-class restriction would hook in
// here.
func (s *eventServiceImpl) ExportTimetableCSV(ctx context.Context, userID int64) ([]byte, error) {
	events, err := s.eventRepo.ListAllDetailed(ctx)
	if err != nil {
		return nil, fmt.Errorf("error exporting timetable: %w", err)
	}
	if len(events) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Subject", "Teacher", "Room", "Start", "End", "Description"}); err != nil {
		return nil, fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, e := range events {
		var subjectName, teacherName string
		if e.Subject != nil {
			subjectName = e.Subject.Name
			if e.Subject.Teacher != nil {
				teacherName = e.Subject.Teacher.Username
			}
		}

		record := []string{
			subjectName,
			teacherName,
			e.EffectiveRoom(),
			e.StartTime.Format("2006-01-02 15:04"),
			e.EndTime.Format("2006-01-02 15:04"),
			e.Description,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("error writing CSV record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("error flushing CSV: %w", err)
	}

	return buf.Bytes(), nil
}
