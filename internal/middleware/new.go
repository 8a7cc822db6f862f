// Package middleware holds the gin middleware of the report API.
package middleware

import (
	"report-srv/config"
	"report-srv/pkg/encrypter"
	"report-srv/pkg/log"
	"report-srv/pkg/scope"
)

type Middleware struct {
	l            log.Logger
	jwtManager   scope.Manager
	cookieConfig config.CookieConfig
	// serviceKeys maps a service name to the bcrypt hash of its key.
	serviceKeys map[string]string
	encrypter   encrypter.Encrypter
}

func New(l log.Logger, jwtManager scope.Manager, cookie config.CookieConfig, internal config.InternalConfig, enc encrypter.Encrypter) Middleware {
	keys := make(map[string]string, len(internal.ServiceKeys))
	for name, hash := range internal.ServiceKeys {
		keys[name] = hash
	}
	return Middleware{
		l:            l,
		jwtManager:   jwtManager,
		cookieConfig: cookie,
		serviceKeys:  keys,
		encrypter:    enc,
	}
}
