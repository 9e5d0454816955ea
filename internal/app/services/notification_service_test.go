package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvidal/agenda/internal/app/models"
	"github.com/mvidal/agenda/internal/pkg/apperrors"
	"github.com/mvidal/agenda/internal/pkg/email"
)

type sentMail struct {
	to      string
	subject string
	body    string
}

// recordingMailer records every send; fail switches it to erroring
type recordingMailer struct {
	sent []sentMail
	fail bool
}

func (m *recordingMailer) Send(to, subject, body string) error {
	if m.fail {
		return errors.New("smtp connection refused")
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

var _ email.Mailer = (*recordingMailer)(nil)

func seedStudents(t *testing.T, repo *memUserRepo, usernames ...string) {
	t.Helper()
	for _, username := range usernames {
		_, err := repo.Create(context.Background(), &models.User{
			Username:     username,
			PasswordHash: "x",
			Role:         models.RoleStudent,
		})
		require.NoError(t, err)
	}
}

func TestNotifyStudentsCreatesMessagesAndSendsEmail(t *testing.T) {
	userRepo := newMemUserRepo()
	messageRepo := newMemMessageRepo()
	mailer := &recordingMailer{}
	svc := NewNotificationService(userRepo, messageRepo, mailer)
	ctx := context.Background()

	seedStudents(t, userRepo, "ana", "bruno", "carla")
	_, err := userRepo.Create(ctx, &models.User{Username: "prof", PasswordHash: "x", Role: models.RoleTeacher})
	require.NoError(t, err)

	report, err := svc.NotifyStudents(ctx, "Exam moved", "The exam moves to Friday", nil)
	require.NoError(t, err)
	assert.Equal(t, 3, report.MessagesCreated)
	assert.Equal(t, 3, report.EmailsSent)
	assert.Equal(t, 0, report.EmailsSkipped)
	assert.Equal(t, 0, report.EmailsFailed)

	// Teachers receive nothing
	assert.Len(t, mailer.sent, 3)
	assert.Len(t, messageRepo.messages, 3)
	for _, message := range messageRepo.messages {
		assert.Equal(t, "Exam moved", message.Subject)
		assert.False(t, message.Read)
	}
}

func TestNotifyStudentsWithoutMailerSkipsEmail(t *testing.T) {
	userRepo := newMemUserRepo()
	messageRepo := newMemMessageRepo()
	svc := NewNotificationService(userRepo, messageRepo, nil)
	ctx := context.Background()

	seedStudents(t, userRepo, "ana", "bruno")

	report, err := svc.NotifyStudents(ctx, "Hello", "Content", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, report.MessagesCreated)
	assert.Equal(t, 0, report.EmailsSent)
	assert.Equal(t, 2, report.EmailsSkipped)
}

func TestNotifyStudentsEmailFailureDoesNotAbort(t *testing.T) {
	userRepo := newMemUserRepo()
	messageRepo := newMemMessageRepo()
	mailer := &recordingMailer{fail: true}
	svc := NewNotificationService(userRepo, messageRepo, mailer)
	ctx := context.Background()

	seedStudents(t, userRepo, "ana", "bruno")

	report, err := svc.NotifyStudents(ctx, "Hello", "Content", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, report.MessagesCreated)
	assert.Equal(t, 2, report.EmailsFailed)
	assert.Len(t, messageRepo.messages, 2)
}

func TestNotifyStudentsValidation(t *testing.T) {
	svc := NewNotificationService(newMemUserRepo(), newMemMessageRepo(), nil)
	ctx := context.Background()

	_, err := svc.NotifyStudents(ctx, "  ", "Content", nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.NotifyStudents(ctx, "Subject", "", nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestInboxFlow(t *testing.T) {
	userRepo := newMemUserRepo()
	messageRepo := newMemMessageRepo()
	svc := NewNotificationService(userRepo, messageRepo, nil)
	ctx := context.Background()

	seedStudents(t, userRepo, "ana")

	_, err := svc.NotifyStudents(ctx, "First", "one", nil)
	require.NoError(t, err)
	_, err = svc.NotifyStudents(ctx, "Second", "two", nil)
	require.NoError(t, err)

	messages, err := svc.ListMessages(ctx, 1)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	// Newest first
	assert.Equal(t, "Second", messages[0].Subject)

	count, err := svc.UnreadCount(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, svc.MarkRead(ctx, messages[0].ID))

	count, err = svc.UnreadCount(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Marking twice is fine, unknown ids are not
	require.NoError(t, svc.MarkRead(ctx, messages[0].ID))
	assert.ErrorIs(t, svc.MarkRead(ctx, 999), apperrors.ErrMessageNotFound)
}
