package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvidal/agenda/internal/app/models"
	"github.com/mvidal/agenda/internal/pkg/apperrors"
)

func newEventFixture() (EventService, *memEventRepo) {
	repo := newMemEventRepo()
	return NewEventService(repo), repo
}

func mustAddEvent(t *testing.T, svc EventService, subjectID int64, start time.Time, description string) *models.Event {
	t.Helper()
	event, err := svc.AddEvent(context.Background(), subjectID, start, start.Add(time.Hour), description, nil, nil)
	require.NoError(t, err)
	return event
}

func TestAddEventValidation(t *testing.T) {
	svc, _ := newEventFixture()
	ctx := context.Background()

	_, err := svc.AddEvent(ctx, 0, time.Now(), time.Now().Add(time.Hour), "", nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.AddEvent(ctx, 1, time.Time{}, time.Now(), "", nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestEventsForDateBounds(t *testing.T) {
	svc, _ := newEventFixture()
	ctx := context.Background()

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)

	mustAddEvent(t, svc, 1, day, "at midnight")
	mustAddEvent(t, svc, 1, day.Add(23*time.Hour+59*time.Minute), "just inside")
	mustAddEvent(t, svc, 1, day.AddDate(0, 0, 1).Add(time.Second), "next day")
	mustAddEvent(t, svc, 1, day.Add(-time.Second), "previous day")

	events, err := svc.EventsForDate(ctx, day.Add(15*time.Hour))
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "at midnight", events[0].Description)
	assert.Equal(t, "just inside", events[1].Description)
}

func TestEventsForWeekStartsOnMonday(t *testing.T) {
	svc, _ := newEventFixture()
	ctx := context.Background()

	// 2026-03-11 is a Wednesday
	wednesday := time.Date(2026, 3, 11, 12, 0, 0, 0, time.Local)
	monday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.Local)
	sunday := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)

	mustAddEvent(t, svc, 1, monday.Add(8*time.Hour), "monday lesson")
	mustAddEvent(t, svc, 1, sunday.Add(10*time.Hour), "sunday lesson")
	mustAddEvent(t, svc, 1, monday.AddDate(0, 0, -1), "out of week")

	week, err := svc.EventsForWeek(ctx, wednesday)
	require.NoError(t, err)
	require.Len(t, week, 7)

	assert.Equal(t, monday.Day(), week[0].Date.Day())
	assert.Equal(t, time.Monday, week[0].Date.Weekday())
	assert.Equal(t, time.Sunday, week[6].Date.Weekday())

	require.Len(t, week[0].Events, 1)
	assert.Equal(t, "monday lesson", week[0].Events[0].Description)
	require.Len(t, week[6].Events, 1)
	assert.Equal(t, "sunday lesson", week[6].Events[0].Description)
	for i := 1; i < 6; i++ {
		assert.Empty(t, week[i].Events)
	}
}

func TestEventsForMonthGrouping(t *testing.T) {
	svc, _ := newEventFixture()
	ctx := context.Background()

	mustAddEvent(t, svc, 1, time.Date(2026, 2, 3, 9, 0, 0, 0, time.Local), "lesson a")
	mustAddEvent(t, svc, 1, time.Date(2026, 2, 3, 11, 0, 0, 0, time.Local), "lesson b")
	mustAddEvent(t, svc, 1, time.Date(2026, 2, 28, 9, 0, 0, 0, time.Local), "last day")
	mustAddEvent(t, svc, 1, time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local), "next month")

	grouped, err := svc.EventsForMonth(ctx, 2026, time.February)
	require.NoError(t, err)

	// 2026 is not a leap year
	assert.Len(t, grouped, 28)
	assert.Len(t, grouped[3], 2)
	assert.Len(t, grouped[28], 1)
	assert.Empty(t, grouped[14])
}

func TestSearchEvents(t *testing.T) {
	svc, repo := newEventFixture()
	ctx := context.Background()

	teacher := &models.User{ID: 5, Username: "Silva", Role: models.RoleTeacher}
	math := &models.Subject{ID: 1, Name: "Mathematics", Teacher: teacher}
	history := &models.Subject{ID: 2, Name: "History"}

	repo.events = append(repo.events,
		&models.Event{ID: 1, SubjectID: 1, StartTime: time.Now(), Description: "algebra intro", Subject: math},
		&models.Event{ID: 2, SubjectID: 2, StartTime: time.Now(), Description: "Rome", Subject: history},
	)

	byUppercasedSubject, err := svc.SearchEvents(ctx, "MATH")
	require.NoError(t, err)
	require.Len(t, byUppercasedSubject, 1)
	assert.Equal(t, int64(1), byUppercasedSubject[0].ID)

	byTeacher, err := svc.SearchEvents(ctx, "silva")
	require.NoError(t, err)
	assert.Len(t, byTeacher, 1)

	byDescription, err := svc.SearchEvents(ctx, "rome")
	require.NoError(t, err)
	require.Len(t, byDescription, 1)
	assert.Equal(t, int64(2), byDescription[0].ID)

	none, err := svc.SearchEvents(ctx, "chemistry")
	require.NoError(t, err)
	assert.Empty(t, none)

	blank, err := svc.SearchEvents(ctx, "   ")
	require.NoError(t, err)
	assert.Nil(t, blank)
}

func TestExportTimetableCSV(t *testing.T) {
	svc, repo := newEventFixture()
	ctx := context.Background()

	room := "B12"
	teacher := &models.User{ID: 5, Username: "silva", Role: models.RoleTeacher}
	subject := &models.Subject{ID: 1, Name: "Mathematics", Room: "A1", Teacher: teacher}
	repo.events = append(repo.events, &models.Event{
		ID:          1,
		SubjectID:   1,
		StartTime:   time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local),
		EndTime:     time.Date(2026, 3, 10, 10, 30, 0, 0, time.Local),
		Description: "algebra",
		Room:        &room,
		Subject:     subject,
	})

	data, err := svc.ExportTimetableCSV(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, data)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Subject,Teacher,Room,Start,End,Description", lines[0])
	assert.Equal(t, "Mathematics,silva,B12,2026-03-10 09:00,2026-03-10 10:30,algebra", lines[1])
}

func TestExportTimetableCSVEmpty(t *testing.T) {
	svc, _ := newEventFixture()

	data, err := svc.ExportTimetableCSV(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, data)
}
