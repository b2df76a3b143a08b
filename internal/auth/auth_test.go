package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestVerifyRoundTrip(t *testing.T) {
	token, err := Issue(secret, Identity{Subject: "u1", Email: "a@b.com", Name: "A B"}, time.Hour)
	require.NoError(t, err)

	id, err := NewVerifier(secret).FromHeader("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, Identity{Subject: "u1", Email: "a@b.com", Name: "A B"}, id)
}

func TestFromHeaderRejectsMalformed(t *testing.T) {
	v := NewVerifier(secret)

	_, err := v.FromHeader("")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = v.FromHeader("Token abc")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = v.FromHeader("Bearer not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongSecretAndExpired(t *testing.T) {
	token, err := Issue("other", Identity{Email: "a@b.com"}, time.Hour)
	require.NoError(t, err)
	_, err = NewVerifier(secret).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := Issue(secret, Identity{Email: "a@b.com"}, -time.Minute)
	require.NoError(t, err)
	_, err = NewVerifier(secret).Verify(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRequiresEmailClaim(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1"}).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = NewVerifier(secret).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyWithoutSecretRejects(t *testing.T) {
	token, err := Issue(secret, Identity{Email: "a@b.com"}, time.Hour)
	require.NoError(t, err)
	_, err = NewVerifier("").Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
