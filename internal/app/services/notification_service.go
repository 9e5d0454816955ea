package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/mvidal/agenda/internal/app/models"
	"github.com/mvidal/agenda/internal/pkg/apperrors"
	"github.com/mvidal/agenda/internal/pkg/email"
	"github.com/mvidal/agenda/internal/pkg/logger"
)

// DispatchReport describes the outcome of a notification fan-out.
// Message creation is transactional per recipient; email delivery is
// best effort and never blocks the dispatch.
type DispatchReport struct {
	MessagesCreated int `json:"messagesCreated"`
	EmailsSent      int `json:"emailsSent"`
	EmailsSkipped   int `json:"emailsSkipped"`
	EmailsFailed    int `json:"emailsFailed"`
}

// NotificationService defines the interface for student notifications
// and the internal message inbox
type NotificationService interface {
	// NotifyStudents creates an internal message for every student account
	// and attempts email delivery when a mailer is configured. A storage
	// failure aborts the dispatch; email failures are counted and skipped.
	NotifyStudents(ctx context.Context, subject, content string, fromUserID *int64) (*DispatchReport, error)

	// ListMessages returns a user's messages, newest first
	ListMessages(ctx context.Context, userID int64) ([]*models.Message, error)

	// UnreadCount returns how many of a user's messages are unread
	UnreadCount(ctx context.Context, userID int64) (int, error)

	// MarkRead flags a message as read. Marking an already-read message
	// succeeds; an unknown message ID fails with not found.
	MarkRead(ctx context.Context, messageID int64) error
}

// notificationServiceImpl implements the NotificationService interface
type notificationServiceImpl struct {
	userRepo    UserRepository
	messageRepo MessageRepository
	mailer      email.Mailer
}

// NewNotificationService creates a new notification service instance.
// A nil mailer disables email delivery; internal messages are still created.
func NewNotificationService(userRepo UserRepository, messageRepo MessageRepository, mailer email.Mailer) NotificationService {
	return &notificationServiceImpl{
		userRepo:    userRepo,
		messageRepo: messageRepo,
		mailer:      mailer,
	}
}

// NotifyStudents fans a message out to every student account
func (s *notificationServiceImpl) NotifyStudents(ctx context.Context, subject, content string, fromUserID *int64) (*DispatchReport, error) {
	subject = strings.TrimSpace(subject)
	content = strings.TrimSpace(content)
	if subject == "" || content == "" {
		return nil, fmt.Errorf("%w: subject and content are required", apperrors.ErrValidationFailed)
	}

	students, err := s.userRepo.ListByRole(ctx, models.RoleStudent)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}

	report := &DispatchReport{}
	for _, student := range students {
		message := &models.Message{
			ToUserID:   student.ID,
			FromUserID: fromUserID,
			Subject:    subject,
			Content:    content,
		}
		if _, err := s.messageRepo.Create(ctx, message); err != nil {
			return nil, fmt.Errorf("error creating message for user %d: %w", student.ID, err)
		}
		report.MessagesCreated++

		if s.mailer == nil {
			report.EmailsSkipped++
			continue
		}
		if err := s.mailer.Send(student.Username, subject, content); err != nil {
			logger.Warn().Err(err).Str("recipient", student.Username).Msg("Email delivery failed, continuing dispatch")
			report.EmailsFailed++
			continue
		}
		report.EmailsSent++
	}

	return report, nil
}

// ListMessages returns a user's messages, newest first
func (s *notificationServiceImpl) ListMessages(ctx context.Context, userID int64) ([]*models.Message, error) {
	messages, err := s.messageRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing messages: %w", err)
	}
	return messages, nil
}

// UnreadCount returns how many of a user's messages are unread
func (s *notificationServiceImpl) UnreadCount(ctx context.Context, userID int64) (int, error) {
	count, err := s.messageRepo.CountUnreadForUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("error counting unread messages: %w", err)
	}
	return count, nil
}

// MarkRead flags a message as read
func (s *notificationServiceImpl) MarkRead(ctx context.Context, messageID int64) error {
	found, err := s.messageRepo.MarkRead(ctx, messageID)
	if err != nil {
		return fmt.Errorf("error marking message read: %w", err)
	}
	if !found {
		return apperrors.ErrMessageNotFound
	}
	return nil
}
