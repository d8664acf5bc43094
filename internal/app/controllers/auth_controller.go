package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campushub/campushub/apperrors"
	"github.com/campushub/campushub/internal/app/stores"
	"github.com/campushub/campushub/internal/middleware"
	"github.com/campushub/campushub/internal/pkg/auth"
	"github.com/campushub/campushub/models"
)

// AuthController handles signup and signin.
type AuthController struct {
	stores     *stores.Stores
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthController creates a new AuthController.
func NewAuthController(st *stores.Stores, jwtService *auth.JWTService, logger zerolog.Logger) *AuthController {
	return &AuthController{stores: st, jwtService: jwtService, logger: logger}
}

type signupRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	University string `json:"university"`
	City       string `json:"city"`
}

type signinRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Signup handles POST /auth/signup
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Success 201 {object} tokenResponse
// @Failure 422 {object} map[string]string
// @Router /auth/signup [post]
func (ac *AuthController) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	ctx := c.Request.Context()
	existing, err := ac.stores.Users.List(ctx)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	for _, user := range existing {
		if strings.EqualFold(user.Email, req.Email) {
			middleware.HandleAPIError(c, apperrors.New(apperrors.ErrEmailAlreadyExists, "email already registered"))
			return
		}
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	user, err := ac.stores.Users.Create(ctx, &models.User{
		Name:       req.Name,
		Email:      req.Email,
		Password:   hash,
		Role:       models.RoleUser,
		Status:     models.UserStatusActive,
		University: req.University,
		City:       req.City,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	ac.issueToken(c, user, http.StatusCreated)
}

// Signin handles POST /auth/signin
// @Summary Authenticate and obtain an access token
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} tokenResponse
// @Failure 401 {object} map[string]string
// @Router /auth/signin [post]
func (ac *AuthController) Signin(c *gin.Context) {
	var req signinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	users, err := ac.stores.Users.List(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	for _, user := range users {
		if strings.EqualFold(user.Email, req.Email) {
			if !auth.CheckPassword(user.Password, req.Password) {
				break
			}
			if user.Status == models.UserStatusSuspended {
				middleware.HandleAPIError(c, apperrors.New(apperrors.ErrForbidden, "account is suspended"))
				return
			}
			ac.issueToken(c, user, http.StatusOK)
			return
		}
	}

	ac.logger.Warn().Str("email", req.Email).Msg("Failed signin attempt")
	middleware.HandleAPIError(c, apperrors.New(apperrors.ErrInvalidCredentials, "invalid email or password"))
}

func (ac *AuthController) issueToken(c *gin.Context, user *models.User, status int) {
	token, expiresIn, err := ac.jwtService.GenerateToken(user)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(status, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   expiresIn,
	})
}
