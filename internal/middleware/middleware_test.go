package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvidal/agenda/internal/app/models"
	"github.com/mvidal/agenda/internal/app/models/dto"
	"github.com/mvidal/agenda/internal/pkg/apperrors"
	"github.com/mvidal/agenda/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   dto.ErrorCode
	}{
		{apperrors.ErrUserNotFound, 404, dto.ErrorCodeResourceNotFound},
		{apperrors.ErrSubjectNotFound, 404, dto.ErrorCodeResourceNotFound},
		{apperrors.ErrMessageNotFound, 404, dto.ErrorCodeResourceNotFound},
		{apperrors.ErrUsernameTaken, 409, dto.ErrorCodeResourceAlreadyExists},
		{apperrors.ErrClassNameTaken, 409, dto.ErrorCodeResourceAlreadyExists},
		{apperrors.ErrInvalidCredentials, 401, dto.ErrorCodeInvalidCredentials},
		{apperrors.ErrPermissionDenied, 403, dto.ErrorCodeForbidden},
		{apperrors.ErrInvalidArgument, 400, dto.ErrorCodeInvalidArgument},
		{apperrors.ErrInvalidStatus, 400, dto.ErrorCodeInvalidArgument},
		{apperrors.ErrValidationFailed, 400, dto.ErrorCodeValidationFailed},
		{fmt.Errorf("wrapped: %w", apperrors.ErrValidationFailed), 400, dto.ErrorCodeValidationFailed},
		{fmt.Errorf("boom"), 500, dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			recorder := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(recorder)

			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.status, recorder.Code)

			var response dto.ErrorResponse
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
			require.NotNil(t, response.Error)
			assert.Equal(t, tt.code, response.Error.Code)
		})
	}
}

func newAuthTestRouter(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "agenda.test",
	})
	m := NewAuthMiddleware(jwtService)

	router := gin.New()
	protected := router.Group("", m.JWTAuth())
	protected.GET("/whoami", func(c *gin.Context) {
		userID, _ := CurrentUserID(c)
		role, _ := CurrentRole(c)
		c.JSON(http.StatusOK, gin.H{"userID": userID, "role": role})
	})
	protected.GET("/admin-only", m.RoleRequired(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return router, jwtService
}

func TestJWTAuthMissingHeader(t *testing.T) {
	router, _ := newAuthTestRouter(t)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestJWTAuthGarbageToken(t *testing.T) {
	router, _ := newAuthTestRouter(t)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	request.Header.Set("Authorization", "Bearer not-a-token")
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestJWTAuthValidToken(t *testing.T) {
	router, jwtService := newAuthTestRouter(t)

	token, _, err := jwtService.GenerateToken(&models.User{ID: 7, Username: "ana", Role: models.RoleStudent})
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, float64(7), body["userID"])
	assert.Equal(t, "student", body["role"])
}

func TestRoleRequired(t *testing.T) {
	router, jwtService := newAuthTestRouter(t)

	studentToken, _, err := jwtService.GenerateToken(&models.User{ID: 7, Username: "ana", Role: models.RoleStudent})
	require.NoError(t, err)
	adminToken, _, err := jwtService.GenerateToken(&models.User{ID: 1, Username: "admin", Role: models.RoleAdmin})
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	request.Header.Set("Authorization", "Bearer "+studentToken)
	router.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = httptest.NewRecorder()
	request = httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	request.Header.Set("Authorization", "Bearer "+adminToken)
	router.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
}
