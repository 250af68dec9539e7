package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dtroode/microblog-server/internal/logger"
	"github.com/dtroode/microblog-server/internal/model"
	"github.com/dtroode/microblog-server/internal/pagination"
)

// MicropostService defines posting, deletion and feed operations.
type MicropostService interface {
	Create(ctx context.Context, userID uuid.UUID, content string) (model.Micropost, error)
	Delete(ctx context.Context, actorID, postID uuid.UUID) (int64, error)
	Feed(ctx context.Context, userID uuid.UUID, page, perPage int) (pagination.Page[model.Micropost], error)
	ByUser(ctx context.Context, userID uuid.UUID, page, perPage int) (pagination.Page[model.Micropost], error)
}

// Micropost handles the posting and feed endpoints.
type Micropost struct {
	micropostService MicropostService
	contextManager   model.ContextManager
	perPage          int
	logger           *logger.Logger
}

// NewMicropost creates a new Micropost handler.
func NewMicropost(
	micropostService MicropostService,
	contextManager model.ContextManager,
	perPage int,
	logger *logger.Logger,
) *Micropost {
	return &Micropost{
		micropostService: micropostService,
		contextManager:   contextManager,
		perPage:          perPage,
		logger:           logger,
	}
}

type createMicropostRequest struct {
	Content string `json:"content"`
}

// Create posts a new micropost owned by the authenticated user.
func (h *Micropost) Create(c *gin.Context) {
	userID, ok := h.contextManager.GetUserIDFromContext(c.Request.Context())
	if !ok {
		handleError(c, model.ErrForbidden)
		return
	}

	var req createMicropostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	post, err := h.micropostService.Create(c.Request.Context(), userID, req.Content)
	if err != nil {
		handleError(c, err)
		return
	}

	h.logger.Info("Micropost handler: post created",
		"post_id", post.ID,
		"user_id", userID)

	c.JSON(http.StatusCreated, gin.H{"micropost": toMicropostResponse(post)})
}

// Delete removes a post owned by the authenticated user and returns the
// owner's remaining post count.
func (h *Micropost) Delete(c *gin.Context) {
	userID, ok := h.contextManager.GetUserIDFromContext(c.Request.Context())
	if !ok {
		handleError(c, model.ErrForbidden)
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	remaining, err := h.micropostService.Delete(c.Request.Context(), userID, postID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"micropost_count": remaining})
}

// Feed returns one page of the authenticated user's feed: their own posts
// plus those of everyone they follow, newest first.
func (h *Micropost) Feed(c *gin.Context) {
	userID, ok := h.contextManager.GetUserIDFromContext(c.Request.Context())
	if !ok {
		handleError(c, model.ErrForbidden)
		return
	}

	page, err := h.micropostService.Feed(c.Request.Context(), userID, pageParam(c), h.perPage)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"microposts": toMicropostResponses(page.Items),
		"meta":       toPageMeta(page),
	})
}

// ByUser returns one page of a user's own posts for their profile page.
func (h *Micropost) ByUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	page, err := h.micropostService.ByUser(c.Request.Context(), userID, pageParam(c), h.perPage)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"microposts": toMicropostResponses(page.Items),
		"meta":       toPageMeta(page),
	})
}
