package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "42",
		"exp": exp.Unix(),
	})
	s, err := token.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return s
}

func TestExpiresAt(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	got, err := ExpiresAt(signedToken(t, exp))
	require.NoError(t, err)
	assert.WithinDuration(t, exp, got, time.Second)
}

func TestIsExpired(t *testing.T) {
	now := time.Now()

	assert.False(t, IsExpired(signedToken(t, now.Add(time.Hour)), now))
	assert.True(t, IsExpired(signedToken(t, now.Add(-time.Hour)), now))
}

func TestIsExpired_Garbage(t *testing.T) {
	assert.True(t, IsExpired("not-a-jwt", time.Now()))
}
