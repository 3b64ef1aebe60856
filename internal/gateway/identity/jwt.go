package identity

import (
	"context"
	"fmt"

	"github.com/dgrijalva/jwt-go"
)

// JWTVerifier verifies HS256 tokens locally against a shared secret and
// extracts the email claim. Used when no remote verifier is deployed.
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier creates a JWTVerifier with the given shared secret.
func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

// Verify parses and validates the token and returns the email claim.
func (v *JWTVerifier) Verify(_ context.Context, token string) (string, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}

	email, _ := claims["email"].(string)
	return normalizeEmail(email)
}
