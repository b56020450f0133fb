package auth

import (
	"context"
	"errors"
)

var ErrInvalidToken = errors.New("invalid session token")

// AuthVerifier checks a bearer token and returns its claims.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
