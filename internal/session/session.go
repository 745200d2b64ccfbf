package session

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Package session turns a bearer token into an explicit session value. The
// session is passed to whoever needs owner scoping instead of being read from
// ambient global state.

var ErrInvalidToken = errors.New("invalid session token")

// Session identifies the authenticated user for the duration of one request.
type Session struct {
	UserID string
	Email  string
}

// FromToken verifies an HS256 JWT and extracts the session identity from its
// claims. The subject claim is the owner id; tokens without one are rejected.
func FromToken(token string, secret []byte) (*Session, error) {
	tok, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	email, _ := claims["email"].(string)
	return &Session{UserID: sub, Email: email}, nil
}
