package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/mvidal/agenda/internal/app/controllers"
	"github.com/mvidal/agenda/internal/app/models"
	"github.com/mvidal/agenda/internal/app/models/dto"
	"github.com/mvidal/agenda/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	classController *controllers.ClassController,
	subjectController *controllers.SubjectController,
	eventController *controllers.EventController,
	assignmentController *controllers.AssignmentController,
	attendanceController *controllers.AttendanceController,
	messageController *controllers.MessageController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/profile", authController.GetProfile)

		// Account routes (admin only)
		accounts := authenticated.Group("/accounts")
		accounts.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			accounts.POST("", authController.Register)
			accounts.GET("", authController.ListAccounts)
		}

		// Class group routes
		classes := authenticated.Group("/classes")
		{
			classes.GET("", classController.ListClasses)
			classes.GET("/:id", classController.GetClassByID)

			classesAdminProtected := classes.Group("")
			classesAdminProtected.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				classesAdminProtected.POST("", classController.CreateClass)
			}
		}

		// Subject catalog routes
		subjects := authenticated.Group("/subjects")
		{
			subjects.GET("", subjectController.ListSubjects)
			subjects.GET("/:id", subjectController.GetSubjectByID)
			subjects.GET("/:id/events", eventController.ListEventsForSubject)

			subjectsAdminProtected := subjects.Group("")
			subjectsAdminProtected.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				subjectsAdminProtected.POST("", subjectController.CreateSubject)
				subjectsAdminProtected.DELETE("/:id", subjectController.DeleteSubject)
			}
		}

		// Event and calendar routes
		events := authenticated.Group("/events")
		{
			events.GET("", eventController.ListEventsForDay)
			events.GET("/week", eventController.ListEventsForWeek)
			events.GET("/month", eventController.ListEventsForMonth)
			events.GET("/search", eventController.SearchEvents)
			events.GET("/export", eventController.ExportTimetable)
			events.GET("/:id/attendances", attendanceController.ListForEvent)
			events.GET("/:id/attendances/summary", attendanceController.SummaryForEvent)

			eventsPublisherProtected := events.Group("")
			eventsPublisherProtected.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RoleTeacher))
			{
				eventsPublisherProtected.POST("", eventController.CreateEvent)
			}
		}

		// Assignment routes
		assignments := authenticated.Group("/assignments")
		{
			assignments.GET("", assignmentController.ListAssignments)
			assignments.GET("/:id", assignmentController.GetAssignmentByID)
			assignments.GET("/:id/file", assignmentController.DownloadAttachment)
			assignments.GET("/:id/attendances", attendanceController.ListForAssignment)
			assignments.GET("/:id/attendances/summary", attendanceController.SummaryForAssignment)

			assignmentsPublisherProtected := assignments.Group("")
			assignmentsPublisherProtected.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RoleTeacher))
			{
				assignmentsPublisherProtected.POST("", assignmentController.CreateAssignment)
			}
		}

		// Attendance routes (students respond, everyone can read their own)
		attendance := authenticated.Group("/attendance")
		{
			attendance.GET("", attendanceController.GetMyResponse)

			attendanceStudentProtected := attendance.Group("")
			attendanceStudentProtected.Use(authMiddleware.RoleRequired(models.RoleStudent))
			{
				attendanceStudentProtected.PUT("", attendanceController.SetAttendance)
			}
		}

		// Notification and inbox routes
		notifications := authenticated.Group("/notifications")
		notifications.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RoleTeacher))
		{
			notifications.POST("", messageController.NotifyStudents)
		}

		messages := authenticated.Group("/messages")
		{
			messages.GET("", messageController.ListMessages)
			messages.GET("/unread-count", messageController.UnreadCount)
			messages.PUT("/:id/read", messageController.MarkRead)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Success: true,
			Data:    gin.H{"status": "ok"},
		})
	})
}
