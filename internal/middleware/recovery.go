package middleware

import (
	"runtime/debug"

	"report-srv/pkg/log"
	"report-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

// Recovery answers 500 for any panic in the chain, including errors the
// report handlers have no mapping for. Only the log sees the panic value.
func Recovery(logger log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			logger.Errorf(c.Request.Context(), "middleware.Recovery: %s %s: %v\n%s",
				c.Request.Method, c.FullPath(), rec, debug.Stack())
			response.PanicError(c)
			c.Abort()
		}()
		c.Next()
	}
}
