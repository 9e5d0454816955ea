package controllers

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mvidal/agenda/internal/app/models"
	"github.com/mvidal/agenda/internal/app/models/dto"
	"github.com/mvidal/agenda/internal/app/services"
	"github.com/mvidal/agenda/internal/middleware"
	"github.com/mvidal/agenda/internal/pkg/apperrors"
	"github.com/mvidal/agenda/internal/pkg/filestorage"
)

// AssignmentController handles assignment operations, including the
// optional file attachment
type AssignmentController struct {
	assignmentService services.AssignmentService
	fileStorage       filestorage.FileStorage
}

// NewAssignmentController creates a new AssignmentController
func NewAssignmentController(assignmentService services.AssignmentService, fileStorage filestorage.FileStorage) *AssignmentController {
	return &AssignmentController{
		assignmentService: assignmentService,
		fileStorage:       fileStorage,
	}
}

// CreateAssignment handles assignment creation. The request is a multipart
// form; the attachment travels in the "file" part and is optional.
func (c *AssignmentController) CreateAssignment(ctx *gin.Context) {
	var req dto.CreateAssignmentRequest
	if err := ctx.ShouldBind(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid assignment data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.DueDate)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid due date")
			errorDetail = errorDetail.WithDetails("Due date must use the RFC 3339 format").WithField("dueDate")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		dueDate = &parsed
	}

	var fileName, filePath *string
	if fileHeader, err := ctx.FormFile("file"); err == nil && fileHeader != nil {
		storedPath, err := c.fileStorage.Save(fileHeader)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		fileName = &fileHeader.Filename
		filePath = &storedPath
	}

	var creatorID *int64
	if userID, ok := middleware.CurrentUserID(ctx); ok {
		creatorID = &userID
	}

	assignment, err := c.assignmentService.AddAssignment(ctx, req.SubjectID, req.Title, req.Description, dueDate, creatorID, fileName, filePath)
	if err != nil {
		if filePath != nil {
			_ = c.fileStorage.Delete(*filePath)
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(assignment))
}

// ListAssignments retrieves assignments, optionally filtered by subject.
// Ordering is by due date with undated assignments last.
func (c *AssignmentController) ListAssignments(ctx *gin.Context) {
	if subjectIDStr := ctx.Query("subjectId"); subjectIDStr != "" {
		subjectID, err := strconv.ParseInt(subjectIDStr, 10, 64)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid subject ID")
			errorDetail = errorDetail.WithDetails("Subject ID must be a valid number").WithField("subjectId")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}

		assignments, err := c.assignmentService.ListForSubject(ctx, subjectID)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.NewAPIResponse(assignments))
		return
	}

	assignments, err := c.assignmentService.ListAll(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(assignments))
}

// GetAssignmentByID retrieves an assignment by ID
func (c *AssignmentController) GetAssignmentByID(ctx *gin.Context) {
	assignment, ok := c.loadAssignment(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(assignment))
}

// DownloadAttachment streams an assignment's stored attachment under its
// original file name
func (c *AssignmentController) DownloadAttachment(ctx *gin.Context) {
	assignment, ok := c.loadAssignment(ctx)
	if !ok {
		return
	}

	if assignment.FilePath == nil || assignment.FileName == nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Assignment has no attachment")
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(errorDetail))
		return
	}

	file, err := c.fileStorage.Open(*assignment.FilePath)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer file.Close()

	ctx.Header("Content-Disposition", `attachment; filename="`+*assignment.FileName+`"`)
	ctx.Header("Content-Type", "application/octet-stream")
	ctx.Status(http.StatusOK)
	_, _ = io.Copy(ctx.Writer, file)
}

func (c *AssignmentController) loadAssignment(ctx *gin.Context) (*models.Assignment, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid assignment ID")
		errorDetail = errorDetail.WithDetails("Assignment ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return nil, false
	}

	assignment, err := c.assignmentService.GetAssignment(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return nil, false
	}
	if assignment == nil {
		middleware.HandleAPIError(ctx, apperrors.ErrAssignmentNotFound)
		return nil, false
	}

	return assignment, true
}
