package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dtroode/microblog-server/internal/logger"
	"github.com/dtroode/microblog-server/internal/model"
)

// FollowService defines follow relationship operations.
type FollowService interface {
	Follow(ctx context.Context, followerID, followedID uuid.UUID) (model.FollowCounts, error)
	Unfollow(ctx context.Context, followerID, followedID uuid.UUID) (model.FollowCounts, error)
	IsFollowing(ctx context.Context, followerID, followedID uuid.UUID) (bool, error)
	Counts(ctx context.Context, userID uuid.UUID) (model.FollowCounts, error)
}

// Follow handles the follow/unfollow endpoints.
type Follow struct {
	followService  FollowService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewFollow creates a new Follow handler.
func NewFollow(followService FollowService, contextManager model.ContextManager, logger *logger.Logger) *Follow {
	return &Follow{
		followService:  followService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type followResponse struct {
	Following      bool  `json:"following"`
	FollowerCount  int64 `json:"follower_count"`
	FollowingCount int64 `json:"following_count"`
}

// Create makes the authenticated user follow the target and returns the
// target's fresh counters.
func (h *Follow) Create(c *gin.Context) {
	followerID, ok := h.contextManager.GetUserIDFromContext(c.Request.Context())
	if !ok {
		handleError(c, model.ErrForbidden)
		return
	}

	followedID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	counts, err := h.followService.Follow(c.Request.Context(), followerID, followedID)
	if err != nil {
		handleError(c, err)
		return
	}

	h.logger.Info("Follow handler: followed",
		"follower_id", followerID,
		"followed_id", followedID)

	c.JSON(http.StatusOK, followResponse{
		Following:      true,
		FollowerCount:  counts.Followers,
		FollowingCount: counts.Following,
	})
}

// Delete makes the authenticated user unfollow the target.
func (h *Follow) Delete(c *gin.Context) {
	followerID, ok := h.contextManager.GetUserIDFromContext(c.Request.Context())
	if !ok {
		handleError(c, model.ErrForbidden)
		return
	}

	followedID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	counts, err := h.followService.Unfollow(c.Request.Context(), followerID, followedID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, followResponse{
		Following:      false,
		FollowerCount:  counts.Followers,
		FollowingCount: counts.Following,
	})
}

// Status reports whether the authenticated user follows the target,
// together with the target's counters.
func (h *Follow) Status(c *gin.Context) {
	followerID, ok := h.contextManager.GetUserIDFromContext(c.Request.Context())
	if !ok {
		handleError(c, model.ErrForbidden)
		return
	}

	followedID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	following, err := h.followService.IsFollowing(c.Request.Context(), followerID, followedID)
	if err != nil {
		handleError(c, err)
		return
	}

	counts, err := h.followService.Counts(c.Request.Context(), followedID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, followResponse{
		Following:      following,
		FollowerCount:  counts.Followers,
		FollowingCount: counts.Following,
	})
}
