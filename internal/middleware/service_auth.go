package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	ServiceKeyHeader  = "X-Service-Key"
	ServiceNameCtxKey = "service_name"
)

var (
	errNoServiceKey       = errors.New("missing service key")
	errServiceKeyFormat   = errors.New("service key is not serviceName:key")
	errUnknownService     = errors.New("unknown service")
	errServiceKeyMismatch = errors.New("service key mismatch")
)

// ServiceAuth guards service-to-service routes. The header carries an
// encrypted "serviceName:key" pair whose key must match the bcrypt hash
// configured for serviceName.
func (m Middleware) ServiceAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		service, err := m.verifyServiceKey(c.GetHeader(ServiceKeyHeader))
		if err != nil {
			// The key itself is never logged.
			m.l.Warnf(c.Request.Context(), "middleware.ServiceAuth: %v", err)
			m.reject(c)
			return
		}

		c.Set(ServiceNameCtxKey, service)
		c.Next()
	}
}

func (m Middleware) verifyServiceKey(header string) (string, error) {
	if header == "" {
		return "", errNoServiceKey
	}

	plain, err := m.encrypter.Decrypt(header)
	if err != nil {
		return "", err
	}

	service, key, ok := strings.Cut(plain, ":")
	if !ok || service == "" || key == "" {
		return "", errServiceKeyFormat
	}

	hash, ok := m.serviceKeys[service]
	if !ok {
		return "", errUnknownService
	}
	if !m.encrypter.CheckPasswordHash(key, hash) {
		return service, errServiceKeyMismatch
	}
	return service, nil
}
