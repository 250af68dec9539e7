package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dtroode/microblog-server/internal/logger"
	"github.com/dtroode/microblog-server/internal/model"
)

// AuthUserService defines the account operations the auth endpoints need.
type AuthUserService interface {
	Create(ctx context.Context, params model.CreateUserParams) (model.User, error)
	Authenticate(ctx context.Context, email, password string) (model.User, error)
}

// TokenService defines session token operations.
type TokenService interface {
	Issue(ctx context.Context, userID uuid.UUID) (accessToken string, refreshToken string, err error)
	Refresh(ctx context.Context, refreshToken string) (accessToken string, newRefreshToken string, err error)
	RevokeByToken(ctx context.Context, refreshToken string) error
}

// Auth handles signup, login, token refresh and logout.
type Auth struct {
	userService  AuthUserService
	tokenService TokenService
	logger       *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(userService AuthUserService, tokenService TokenService, logger *logger.Logger) *Auth {
	return &Auth{
		userService:  userService,
		tokenService: tokenService,
		logger:       logger,
	}
}

type signupRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type sessionResponse struct {
	User         userResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

// Signup registers a new account and signs the user in.
func (h *Auth) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	h.logger.Debug("Auth handler: processing signup request", "email", req.Email)

	user, err := h.userService.Create(c.Request.Context(), model.CreateUserParams{
		Name:                 req.Name,
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	access, refresh, err := h.tokenService.Issue(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.Error("Auth handler: failed to issue tokens after signup",
			"user_id", user.ID,
			"error", err.Error())
		handleError(c, err)
		return
	}

	h.logger.Info("Auth handler: signup completed", "user_id", user.ID)

	c.JSON(http.StatusCreated, sessionResponse{
		User:         toUserResponse(user),
		AccessToken:  access,
		RefreshToken: refresh,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates email/password credentials and starts a session.
// Unknown email and wrong password get the same response.
func (h *Auth) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.userService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email/password combination"})
		return
	}

	access, refresh, err := h.tokenService.Issue(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.Error("Auth handler: failed to issue tokens after login",
			"user_id", user.ID,
			"error", err.Error())
		handleError(c, err)
		return
	}

	h.logger.Info("Auth handler: login completed", "user_id", user.ID)

	c.JSON(http.StatusOK, sessionResponse{
		User:         toUserResponse(user),
		AccessToken:  access,
		RefreshToken: refresh,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Refresh rotates a refresh token into a new token pair.
func (h *Auth) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	access, refresh, err := h.tokenService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	c.JSON(http.StatusOK, tokenPairResponse{AccessToken: access, RefreshToken: refresh})
}

// Logout revokes the presented refresh token, ending the session.
func (h *Auth) Logout(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.tokenService.RevokeByToken(c.Request.Context(), req.RefreshToken); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	c.Status(http.StatusNoContent)
}
