// internal/middleware/logging.go
package middleware

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/freshcart/freshcart-backend/internal/models"
	"github.com/freshcart/freshcart-backend/internal/repository"
	"github.com/freshcart/freshcart-backend/internal/utils"
)

const auditWriteTimeout = 5 * time.Second

// RequestLogger writes one structured line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start).Milliseconds(),
			"ip":         c.ClientIP(),
			"request_id": utils.GetRequestIDFromContext(c),
		}
		if email, ok := utils.GetEmailFromContext(c); ok {
			fields["email"] = email
		}

		entry := logrus.WithFields(fields)
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			entry.Error("Request processed")
		case c.Writer.Status() >= http.StatusBadRequest:
			entry.Warn("Request processed")
		default:
			entry.Info("Request processed")
		}
	}
}

// AuditLogger records mutating requests into the audit_logs collection.
// Writes happen off the request path; Wait blocks until they finish.
type AuditLogger struct {
	repo repository.AuditLogRepository
	wg   sync.WaitGroup
}

func NewAuditLogger(repo repository.AuditLogRepository) *AuditLogger {
	return &AuditLogger{repo: repo}
}

func (a *AuditLogger) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip logging for reads and health checks
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodOptions || c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		email, _ := utils.GetEmailFromContext(c)
		entry := &models.AuditLog{
			RequestID:    utils.GetRequestIDFromContext(c),
			UserEmail:    email,
			Action:       c.Request.Method + " " + c.Request.URL.Path,
			ResourceType: extractResourceType(c.Request.URL.Path),
			ResourceID:   extractResourceID(c),
			Status:       c.Writer.Status(),
			DurationMS:   time.Since(start).Milliseconds(),
			IPAddress:    c.ClientIP(),
			UserAgent:    c.Request.UserAgent(),
			CreatedAt:    time.Now().UTC(),
		}

		// Save audit log asynchronously
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), auditWriteTimeout)
			defer cancel()

			if err := a.repo.Create(ctx, entry); err != nil {
				logrus.WithError(err).WithField("request_id", entry.RequestID).Error("Failed to create audit log")
			}
		}()
	}
}

func (a *AuditLogger) Wait() {
	a.wg.Wait()
}

func extractResourceType(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) >= 1 && parts[0] != "" {
		return parts[0]
	}
	return "unknown"
}

func extractResourceID(c *gin.Context) string {
	for _, key := range []string{"id", "email", "productId"} {
		if v := c.Param(key); v != "" {
			return v
		}
	}
	return ""
}
