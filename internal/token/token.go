// Package token issues and verifies the bearer tokens that guard
// admin-only API operations.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the verified contents of a bearer token.
type Claims struct {
	// UserID is the id of the user the token was issued to.
	UserID string
	// IsAdmin mirrors the user's admin flag at issue time.
	IsAdmin bool
}

// JWT signs and verifies HMAC-SHA256 tokens.
type JWT struct {
	secret []byte
	ttl    time.Duration
}

// New creates a JWT issuer/verifier with the given signing secret and
// token lifetime.
func New(secret string, ttl time.Duration) *JWT {
	return &JWT{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the given user.
func (j *JWT) Issue(userID string, isAdmin bool) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"adm": isAdmin,
		"iat": now.Unix(),
		"exp": now.Add(j.ttl).Unix(),
	})
	return t.SignedString(j.secret)
}

// Verify parses and validates a signed token, returning its claims.
// Expired tokens, tokens signed with another method or secret, and
// tokens without a subject all fail.
func (j *JWT) Verify(raw string) (*Claims, error) {
	t, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return j.secret, nil
	})
	if err != nil || !t.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("subject missing")
	}
	adm, _ := claims["adm"].(bool)

	return &Claims{UserID: sub, IsAdmin: adm}, nil
}
