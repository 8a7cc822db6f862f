package jwt

import (
	"errors"
	"fmt"

	"report-srv/pkg/scope"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("jwt: invalid token")

// Claims is the access token body shared with the identity service.
// The subject is the user id.
type Claims struct {
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
	jwt.RegisteredClaims
}

// VerifyToken verifies and parses a JWT token.
func (m *Manager) VerifyToken(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}
	if len(m.audience) > 0 {
		opts = append(opts, jwt.WithAudience(m.audience[0]))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		return m.secretKey, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if err := m.checkLifetime(claims); err != nil {
		return nil, err
	}

	return claims, nil
}

// checkLifetime rejects tokens issued for longer than the configured TTL.
func (m *Manager) checkLifetime(claims *Claims) error {
	if m.ttl <= 0 {
		return nil
	}
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return fmt.Errorf("%w: iat and exp are required", ErrInvalidToken)
	}
	if lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time); lifetime > m.ttl {
		return fmt.Errorf("%w: lifetime %s exceeds %s", ErrInvalidToken, lifetime, m.ttl)
	}
	return nil
}

// Verify implements scope.Manager.
func (m *Manager) Verify(token string) (scope.Payload, error) {
	claims, err := m.VerifyToken(token)
	if err != nil {
		return scope.Payload{}, err
	}

	p := scope.Payload{
		UserID:     claims.Subject,
		Username:   claims.Email,
		Role:       claims.Role,
		Department: claims.Department,
		Subject:    claims.Subject,
		Id:         claims.ID,
		Issuer:     claims.Issuer,
	}
	if claims.ExpiresAt != nil {
		p.ExpiresAt = claims.ExpiresAt.Unix()
	}
	if claims.IssuedAt != nil {
		p.IssuedAt = claims.IssuedAt.Unix()
	}
	return p, nil
}
