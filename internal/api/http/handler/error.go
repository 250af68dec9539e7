package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/microblog-server/internal/model"
)

// handleError maps domain errors to HTTP responses. Validation failures
// carry the per-field messages; everything else is a bare status so
// internals do not leak to clients.
func handleError(c *gin.Context, err error) {
	if ve, ok := model.AsValidationError(err); ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": ve.Fields})
		return
	}

	switch {
	case errors.Is(err, model.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, model.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, model.ErrTokenRevoked),
		errors.Is(err, model.ErrTokenExpired),
		errors.Is(err, model.ErrTokenMismatch):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
