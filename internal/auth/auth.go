// Package auth verifies bearer tokens issued by the external identity
// provider. Sign-up, sign-in, and sessions live with the provider.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
)

// Identity is the authenticated caller as described by the token claims.
type Identity struct {
	Subject string
	Email   string
	Name    string
}

// Verifier checks HS256 tokens against a shared secret.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// FromHeader parses an "Authorization: Bearer <token>" value.
func (v *Verifier) FromHeader(header string) (Identity, error) {
	raw := strings.TrimSpace(header)
	if raw == "" {
		return Identity{}, ErrMissingToken
	}

	parts := strings.Fields(raw)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return Identity{}, ErrInvalidToken
	}
	return v.Verify(parts[1])
}

// Verify validates a raw token and extracts the identity. A token without an
// email claim is rejected because every downstream check keys on email.
func (v *Verifier) Verify(raw string) (Identity, error) {
	if len(v.secret) == 0 {
		return Identity{}, ErrInvalidToken
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}

	email, _ := claims["email"].(string)
	email = strings.TrimSpace(email)
	if email == "" {
		return Identity{}, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	name, _ := claims["name"].(string)
	return Identity{Subject: sub, Email: email, Name: strings.TrimSpace(name)}, nil
}

// Issue signs a token for id. The identity provider normally does this; the
// server only uses it for local tooling and tests.
func Issue(secret string, id Identity, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   id.Subject,
		"email": id.Email,
		"name":  id.Name,
		"exp":   time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
