package handlers

import (
	"net/http"
	"time"

	"github.com/iwtcode/rotaprintAdapter/internal/middleware/logging"

	"github.com/gin-gonic/gin"
)

func LoggingMiddleware(parentLogger *logging.Logger) gin.HandlerFunc {
	logger := parentLogger.WithPrefix("HTTP")

	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		start := time.Now()
		// Интерфейс опрашивает эти маршруты постоянно
		quiet := c.Request.Method == http.MethodGet
		if !quiet {
			logger.Info("Request started",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"remote_addr", c.Request.RemoteAddr,
			)
		}

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		if quiet && status < http.StatusBadRequest {
			logger.Debug("Request completed", "path", c.Request.URL.Path, "status", status, "latency", latency)
			return
		}
		logger.Info("Request completed",
			"status", status,
			"latency", latency,
			"client_ip", c.ClientIP(),
		)
	}
}
