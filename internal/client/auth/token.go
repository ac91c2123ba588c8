// Package auth holds client-side helpers for the bearer token issued by the
// backend. The server remains the authority on token validity; the client
// only inspects claims (without signature verification) to give the user a
// friendlier "session expired, log in again" message instead of a raw 401.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ExpiresAt extracts the exp claim from a bearer token without verifying its
// signature.
func ExpiresAt(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("parsing token: %w", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, fmt.Errorf("token has no usable exp claim")
	}
	return exp.Time, nil
}

// IsExpired reports whether the token's exp claim lies in the past. A token
// whose expiry cannot be determined is treated as expired.
func IsExpired(token string, now time.Time) bool {
	exp, err := ExpiresAt(token)
	if err != nil {
		return true
	}
	return now.After(exp)
}
