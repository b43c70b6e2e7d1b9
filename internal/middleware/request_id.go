// internal/middleware/request_id.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/freshcart/freshcart-backend/internal/utils"
)

const RequestIDHeader = "X-Request-ID"

// RequestID honours an incoming X-Request-ID or generates one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}

		c.Set(utils.ContextKeyRequestID, id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}
