package tokenstore

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/adoption-client/internal/domain"
)

// ErrMissingExpiry is returned for tokens without an exp claim.
var ErrMissingExpiry = errors.New("token has no exp claim")

// ExpiryOf decodes the exp claim of a JWT without verifying its signature.
// The client cannot verify tokens it did not sign; it only needs to know
// when to stop sending one.
func ExpiryOf(token string) (time.Time, error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, fmt.Errorf("decode token: %w", err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, ErrMissingExpiry
	}
	return claims.ExpiresAt.Time, nil
}

// NewCredential wraps a bearer token with its decoded expiry. Tokens that
// cannot be decoded get a zero expiry and are treated as expired.
func NewCredential(token string) domain.Credential {
	exp, _ := ExpiryOf(token)
	return domain.Credential{Token: token, ExpiresAt: exp}
}

// isExpiredAt fails closed: any decode failure counts as expired.
func isExpiredAt(token string, now time.Time) bool {
	exp, err := ExpiryOf(token)
	if err != nil {
		return true
	}
	return !now.Before(exp)
}
