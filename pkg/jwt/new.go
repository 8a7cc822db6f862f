package jwt

import (
	"fmt"
	"time"
)

// Config configures a Manager. Issuer and Audience are enforced on
// verification when set. TTL is the longest lifetime (exp - iat) a token
// may carry; zero disables the check.
type Config struct {
	SecretKey string
	Issuer    string
	Audience  []string
	TTL       time.Duration
}

// minSecretLen is the shortest HS256 secret New accepts.
const minSecretLen = 32

// Manager verifies HS256 access tokens issued by the identity service.
// It is safe for concurrent use.
type Manager struct {
	secretKey []byte
	issuer    string
	audience  []string
	ttl       time.Duration
}

// New creates a new JWT manager with HS256 symmetric key.
func New(cfg Config) (*Manager, error) {
	if len(cfg.SecretKey) < minSecretLen {
		return nil, fmt.Errorf("jwt: secret key must be at least %d characters, got %d", minSecretLen, len(cfg.SecretKey))
	}

	return &Manager{
		secretKey: []byte(cfg.SecretKey),
		issuer:    cfg.Issuer,
		audience:  cfg.Audience,
		ttl:       cfg.TTL,
	}, nil
}
