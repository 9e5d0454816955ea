package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mvidal/agenda/internal/app/models"
	"github.com/mvidal/agenda/internal/app/models/dto"
	"github.com/mvidal/agenda/internal/app/services"
	"github.com/mvidal/agenda/internal/middleware"
)

// AttendanceController handles RSVP operations against events and
// assignments
type AttendanceController struct {
	attendanceService services.AttendanceService
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService services.AttendanceService) *AttendanceController {
	return &AttendanceController{
		attendanceService: attendanceService,
	}
}

// SetAttendance records or overwrites the caller's response for one target
func (c *AttendanceController) SetAttendance(ctx *gin.Context) {
	var req dto.SetAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid attendance data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	attendance, err := c.attendanceService.SetAttendance(ctx, userID, req.EventID, models.AttendanceStatus(req.Status), req.AssignmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(attendance))
}

// GetMyResponse returns the caller's recorded response for the target
// named in the query
func (c *AttendanceController) GetMyResponse(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	eventID, ok := parseOptionalIDQuery(ctx, "eventId")
	if !ok {
		return
	}
	assignmentID, ok := parseOptionalIDQuery(ctx, "assignmentId")
	if !ok {
		return
	}

	attendance, err := c.attendanceService.GetUserResponse(ctx, userID, eventID, assignmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(attendance))
}

// ListForEvent returns all responses recorded against an event
func (c *AttendanceController) ListForEvent(ctx *gin.Context) {
	eventID, ok := parsePathID(ctx, "Event")
	if !ok {
		return
	}

	attendances, err := c.attendanceService.ListForEvent(ctx, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(attendances))
}

// SummaryForEvent returns the yes/no/maybe counts for an event
func (c *AttendanceController) SummaryForEvent(ctx *gin.Context) {
	eventID, ok := parsePathID(ctx, "Event")
	if !ok {
		return
	}

	summary, err := c.attendanceService.SummaryForEvent(ctx, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(summary))
}

// ListForAssignment returns all responses recorded against an assignment
func (c *AttendanceController) ListForAssignment(ctx *gin.Context) {
	assignmentID, ok := parsePathID(ctx, "Assignment")
	if !ok {
		return
	}

	attendances, err := c.attendanceService.ListForAssignment(ctx, assignmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(attendances))
}

// SummaryForAssignment returns the yes/no/maybe counts for an assignment
func (c *AttendanceController) SummaryForAssignment(ctx *gin.Context) {
	assignmentID, ok := parsePathID(ctx, "Assignment")
	if !ok {
		return
	}

	summary, err := c.attendanceService.SummaryForAssignment(ctx, assignmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(summary))
}

func parsePathID(ctx *gin.Context, label string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+label+" ID")
		errorDetail = errorDetail.WithDetails(label + " ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

func parseOptionalIDQuery(ctx *gin.Context, name string) (*int64, bool) {
	value := ctx.Query(name)
	if value == "" {
		return nil, true
	}

	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name)
		errorDetail = errorDetail.WithDetails(name + " must be a valid number").WithField(name)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return nil, false
	}
	return &id, true
}
