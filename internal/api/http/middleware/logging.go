package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/microblog-server/internal/logger"
)

// Logging logs every HTTP request with its method, path, status and
// duration.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// Handle logs the request after the handler chain completes.
func (l *Logging) Handle(c *gin.Context) {
	start := time.Now()

	c.Next()

	duration := time.Since(start)
	l.logger.Info("HTTP request completed",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"status", c.Writer.Status(),
		"duration_ms", duration.Milliseconds())

	for _, ginErr := range c.Errors {
		l.logger.Error("HTTP request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", ginErr.Error())
	}
}
