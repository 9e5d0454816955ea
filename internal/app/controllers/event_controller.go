package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mvidal/agenda/internal/app/models/dto"
	"github.com/mvidal/agenda/internal/app/services"
	"github.com/mvidal/agenda/internal/middleware"
)

const dateLayout = "2006-01-02"

// EventController handles event and calendar operations
type EventController struct {
	eventService services.EventService
}

// NewEventController creates a new EventController
func NewEventController(eventService services.EventService) *EventController {
	return &EventController{
		eventService: eventService,
	}
}

// CreateEvent handles event creation
func (c *EventController) CreateEvent(ctx *gin.Context) {
	var req dto.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid event data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var creatorID *int64
	if userID, ok := middleware.CurrentUserID(ctx); ok {
		creatorID = &userID
	}

	event, err := c.eventService.AddEvent(ctx, req.SubjectID, req.StartTime, req.EndTime, req.Description, creatorID, req.Room)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(event))
}

// parseDateQuery reads the date query parameter, defaulting to today
func parseDateQuery(ctx *gin.Context) (time.Time, bool) {
	dateStr := ctx.Query("date")
	if dateStr == "" {
		return time.Now(), true
	}

	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid date")
		errorDetail = errorDetail.WithDetails("Date must use the YYYY-MM-DD format").WithField("date")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return time.Time{}, false
	}
	return date, true
}

// ListEventsForDay retrieves the events of one calendar day
func (c *EventController) ListEventsForDay(ctx *gin.Context) {
	date, ok := parseDateQuery(ctx)
	if !ok {
		return
	}

	events, err := c.eventService.EventsForDate(ctx, date)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(events))
}

// ListEventsForWeek retrieves the seven day buckets of the week containing
// the reference date, Monday first
func (c *EventController) ListEventsForWeek(ctx *gin.Context) {
	date, ok := parseDateQuery(ctx)
	if !ok {
		return
	}

	days, err := c.eventService.EventsForWeek(ctx, date)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(days))
}

// ListEventsForMonth retrieves events grouped by day of month
func (c *EventController) ListEventsForMonth(ctx *gin.Context) {
	now := time.Now()

	year := now.Year()
	if yearStr := ctx.Query("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid year")
			errorDetail = errorDetail.WithDetails("Year must be a valid number").WithField("year")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		year = parsed
	}

	month := now.Month()
	if monthStr := ctx.Query("month"); monthStr != "" {
		parsed, err := strconv.Atoi(monthStr)
		if err != nil || parsed < 1 || parsed > 12 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid month")
			errorDetail = errorDetail.WithDetails("Month must be a number between 1 and 12").WithField("month")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		month = time.Month(parsed)
	}

	grouped, err := c.eventService.EventsForMonth(ctx, year, month)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(grouped))
}

// ListEventsForSubject retrieves the events of one subject
func (c *EventController) ListEventsForSubject(ctx *gin.Context) {
	subjectID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid subject ID")
		errorDetail = errorDetail.WithDetails("Subject ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	events, err := c.eventService.EventsForSubject(ctx, subjectID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(events))
}

// SearchEvents matches events by subject, teacher or description
func (c *EventController) SearchEvents(ctx *gin.Context) {
	query := ctx.Query("q")

	events, err := c.eventService.SearchEvents(ctx, query)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(events))
}

// ExportTimetable streams the caller's timetable as a CSV download
func (c *EventController) ExportTimetable(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	data, err := c.eventService.ExportTimetableCSV(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if data == nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "No events to export")
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(errorDetail))
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="timetable.csv"`)
	ctx.Data(http.StatusOK, "text/csv", data)
}
