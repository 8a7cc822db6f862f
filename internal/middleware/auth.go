package middleware

import (
	"strings"

	"report-srv/internal/model"
	"report-srv/pkg/response"
	"report-srv/pkg/scope"

	"github.com/gin-gonic/gin"
)

// Auth requires an access token and puts the caller scope on the request
// context. Tokens without a user id, or with the reserved system id, are
// rejected.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		token := m.accessToken(c)
		if token == "" {
			m.reject(c)
			return
		}

		payload, err := m.jwtManager.Verify(token)
		if err != nil {
			m.l.Warnf(ctx, "middleware.Auth.Verify: %v", err)
			m.reject(c)
			return
		}

		sc := scope.NewScope(payload)
		if !sc.IsAuthenticated() {
			m.reject(c)
			return
		}
		// The system id is reserved for internally generated jobs.
		if sc.UserID == model.SystemUserID {
			m.l.Warnf(ctx, "middleware.Auth: token subject %q is reserved", sc.UserID)
			m.reject(c)
			return
		}

		c.Request = c.Request.WithContext(scope.SetScopeToContext(ctx, sc))
		c.Next()
	}
}

// accessToken reads the Authorization header, with or without the Bearer
// prefix, and falls back to the auth cookie.
func (m Middleware) accessToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	if header != "" {
		return header
	}

	cookie, err := c.Cookie(m.cookieConfig.Name)
	if err != nil {
		return ""
	}
	return cookie
}

func (m Middleware) reject(c *gin.Context) {
	response.Unauthorized(c)
	c.Abort()
}
