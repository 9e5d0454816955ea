package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mvidal/agenda/internal/app/models"
	"github.com/mvidal/agenda/internal/app/models/dto"
	"github.com/mvidal/agenda/internal/app/services"
	"github.com/mvidal/agenda/internal/middleware"
	"github.com/mvidal/agenda/internal/pkg/auth"
)

// AuthController handles authentication and account operations
type AuthController struct {
	authService services.AuthService
	jwtService  *auth.JWTService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, jwtService *auth.JWTService) *AuthController {
	return &AuthController{
		authService: authService,
		jwtService:  jwtService,
	}
}

func toUserResponse(user *models.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	}
	if user.FullName != nil {
		resp.FullName = *user.FullName
	}
	return resp
}

// Login verifies credentials and issues an access token
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid login data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	user, err := c.authService.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if user == nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid username or password")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	token, expiresIn, err := c.jwtService.GenerateToken(user)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.LoginResponse{
		Token:     token,
		ExpiresIn: expiresIn,
		User:      toUserResponse(user),
	}))
}

// Register creates a new account. The route is admin gated.
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid account data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	user, err := c.authService.Register(ctx, req.Username, req.Password, models.Role(req.Role), req.FullName)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(toUserResponse(user)))
}

// GetProfile returns the authenticated account
func (c *AuthController) GetProfile(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	user, err := c.authService.GetUser(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if user == nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Account not found")
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(errorDetail))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(toUserResponse(user)))
}

// ListAccounts returns all accounts holding the role given in the query
func (c *AuthController) ListAccounts(ctx *gin.Context) {
	role := models.Role(ctx.Query("role"))
	if !role.Valid() {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid role")
		errorDetail = errorDetail.WithDetails("Query parameter role must be admin, teacher or student").WithField("role")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	users, err := c.authService.ListByRole(ctx, role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, toUserResponse(user))
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(responses))
}
