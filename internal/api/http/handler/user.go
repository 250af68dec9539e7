package handler

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dtroode/microblog-server/internal/logger"
	"github.com/dtroode/microblog-server/internal/model"
	"github.com/dtroode/microblog-server/internal/pagination"
)

// UserService defines account operations for the user endpoints.
type UserService interface {
	Get(ctx context.Context, id uuid.UUID) (model.Profile, error)
	Update(ctx context.Context, actorID, targetID uuid.UUID, params model.UpdateUserParams) (model.User, error)
	Delete(ctx context.Context, actorID, targetID uuid.UUID) error
	List(ctx context.Context, page, perPage int) (pagination.Page[model.User], error)
}

// FollowListService returns the paginated follow lists shown on profiles.
type FollowListService interface {
	Following(ctx context.Context, userID uuid.UUID, page, perPage int) (pagination.Page[model.User], error)
	Followers(ctx context.Context, userID uuid.UUID, page, perPage int) (pagination.Page[model.User], error)
}

// AvatarService stores and serves uploaded profile images.
type AvatarService interface {
	Upload(ctx context.Context, actorID, targetID uuid.UUID, reader io.Reader, size int64, contentType string) (model.User, error)
	Download(ctx context.Context, userID uuid.UUID) (io.ReadCloser, error)
}

// User handles the user listing, profile, edit and deletion endpoints.
type User struct {
	userService    UserService
	followService  FollowListService
	avatarService  AvatarService
	contextManager model.ContextManager
	perPage        int
	logger         *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(
	userService UserService,
	followService FollowListService,
	avatarService AvatarService,
	contextManager model.ContextManager,
	perPage int,
	logger *logger.Logger,
) *User {
	return &User{
		userService:    userService,
		followService:  followService,
		avatarService:  avatarService,
		contextManager: contextManager,
		perPage:        perPage,
		logger:         logger,
	}
}

func (h *User) extractUserIDFromContext(ctx context.Context) (uuid.UUID, error) {
	userID, ok := h.contextManager.GetUserIDFromContext(ctx)
	if !ok {
		return uuid.Nil, model.ErrForbidden
	}
	return userID, nil
}

func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		return 1
	}
	return page
}

// List returns one page of all users ordered by name.
func (h *User) List(c *gin.Context) {
	page, err := h.userService.List(c.Request.Context(), pageParam(c), h.perPage)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": toUserResponses(page.Items),
		"meta":  toPageMeta(page),
	})
}

// Get returns a user's profile with its counters.
func (h *User) Get(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	profile, err := h.userService.Get(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toProfileResponse(profile)})
}

type updateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// Update edits a profile. The request type carries only the editable
// attributes, so extra JSON keys such as an admin flag are dropped during
// binding and can never reach the store.
func (h *User) Update(c *gin.Context) {
	actorID, err := h.extractUserIDFromContext(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.userService.Update(c.Request.Context(), actorID, targetID, model.UpdateUserParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}

// Delete removes a user account. The service enforces that only admins
// may delete, and never themselves.
func (h *User) Delete(c *gin.Context) {
	actorID, err := h.extractUserIDFromContext(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	if err := h.userService.Delete(c.Request.Context(), actorID, targetID); err != nil {
		handleError(c, err)
		return
	}

	h.logger.Info("User handler: user deleted",
		"user_id", targetID,
		"actor_id", actorID)

	c.Status(http.StatusNoContent)
}

// Following returns one page of the users this user follows.
func (h *User) Following(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	page, err := h.followService.Following(c.Request.Context(), userID, pageParam(c), h.perPage)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": toUserResponses(page.Items),
		"meta":  toPageMeta(page),
	})
}

// Followers returns one page of this user's followers.
func (h *User) Followers(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	page, err := h.followService.Followers(c.Request.Context(), userID, pageParam(c), h.perPage)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": toUserResponses(page.Items),
		"meta":  toPageMeta(page),
	})
}

// UploadAvatar replaces the user's profile image with the request body.
func (h *User) UploadAvatar(c *gin.Context) {
	actorID, err := h.extractUserIDFromContext(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	contentType := c.ContentType()
	user, err := h.avatarService.Upload(c.Request.Context(), actorID, targetID, c.Request.Body, c.Request.ContentLength, contentType)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}

// DownloadAvatar streams the user's uploaded profile image. Users without
// one get 404; clients fall back to the Gravatar URL from the profile.
func (h *User) DownloadAvatar(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	reader, err := h.avatarService.Download(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}
	defer reader.Close()

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, reader); err != nil {
		h.logger.Error("User handler: failed to stream avatar",
			"user_id", userID,
			"error", err.Error())
	}
}
