package middleware

import (
	"report-srv/pkg/log"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestID propagates the caller's request id, or assigns one, so every log
// line of the request carries it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}

		c.Request = c.Request.WithContext(log.SetRequestIDToContext(c.Request.Context(), id))
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
