// Package identity verifies bearer credentials against the identity authority.
package identity

import (
	"context"
	"errors"
	"strings"
)

// ErrInvalidToken is returned when the credential cannot be verified.
var ErrInvalidToken = errors.New("invalid token")

// Verifier resolves a bearer credential to a verified email.
type Verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", ErrInvalidToken
	}
	return email, nil
}
