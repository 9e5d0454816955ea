package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mvidal/agenda/internal/app/models/dto"
	"github.com/mvidal/agenda/internal/app/services"
	"github.com/mvidal/agenda/internal/middleware"
)

// MessageController handles notification dispatch and the internal
// message inbox
type MessageController struct {
	notificationService services.NotificationService
}

// NewMessageController creates a new MessageController
func NewMessageController(notificationService services.NotificationService) *MessageController {
	return &MessageController{
		notificationService: notificationService,
	}
}

// NotifyStudents sends a message to every student account. Internal
// messages are created for all of them; email delivery is best effort and
// reported in the response.
func (c *MessageController) NotifyStudents(ctx *gin.Context) {
	var req dto.NotifyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid notification data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var fromUserID *int64
	if userID, ok := middleware.CurrentUserID(ctx); ok {
		fromUserID = &userID
	}

	report, err := c.notificationService.NotifyStudents(ctx, req.Subject, req.Content, fromUserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(report))
}

// ListMessages returns the caller's messages, newest first
func (c *MessageController) ListMessages(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	messages, err := c.notificationService.ListMessages(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(messages))
}

// UnreadCount returns how many of the caller's messages are unread
func (c *MessageController) UnreadCount(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	count, err := c.notificationService.UnreadCount(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{"unread": count}))
}

// MarkRead flags a message as read. Re-marking a read message succeeds.
func (c *MessageController) MarkRead(ctx *gin.Context) {
	messageID, ok := parsePathID(ctx, "Message")
	if !ok {
		return
	}

	if err := c.notificationService.MarkRead(ctx, messageID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Message marked as read"}))
}
