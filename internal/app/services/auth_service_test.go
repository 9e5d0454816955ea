package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvidal/agenda/internal/app/models"
	"github.com/mvidal/agenda/internal/pkg/apperrors"
)

func newAuthFixture() (AuthService, *memUserRepo) {
	repo := newMemUserRepo()
	return NewAuthService(repo, zerolog.Nop()), repo
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	created, err := svc.Register(ctx, "ana", "secret123", models.RoleTeacher, "Ana Souza")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, models.RoleTeacher, created.Role)
	assert.NotEqual(t, "secret123", created.PasswordHash)

	user, err := svc.Authenticate(ctx, "ana", "secret123")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, created.ID, user.ID)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, "ana", "secret123", models.RoleStudent, "")
	require.NoError(t, err)

	// Wrong password and unknown user both come back nil without error
	user, err := svc.Authenticate(ctx, "ana", "wrong")
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = svc.Authenticate(ctx, "nobody", "secret123")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, "ana", "secret123", models.RoleStudent, "")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "ana", "other456", models.RoleTeacher, "")
	assert.ErrorIs(t, err, apperrors.ErrUsernameTaken)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, "   ", "secret123", models.RoleStudent, "")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.Register(ctx, "ana", "", models.RoleStudent, "")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.Register(ctx, "ana", "secret123", models.Role("principal"), "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidRole)
}

func TestGetUserAbsentIsNil(t *testing.T) {
	svc, _ := newAuthFixture()

	user, err := svc.GetUser(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestListByRole(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, "zilda", "pw123456", models.RoleStudent, "")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "bruno", "pw123456", models.RoleStudent, "")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "carla", "pw123456", models.RoleTeacher, "")
	require.NoError(t, err)

	students, err := svc.ListByRole(ctx, models.RoleStudent)
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, "bruno", students[0].Username)
	assert.Equal(t, "zilda", students[1].Username)

	_, err = svc.ListByRole(ctx, models.Role("ghost"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidRole)
}
