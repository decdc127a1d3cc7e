// Package token issues and verifies booking confirmation tokens: signed,
// time-limited opaque strings proving control of the booking email address.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid or expired confirmation token")

// Signer issues and verifies confirmation tokens for an email address.
type Signer interface {
	Issue(email string) (string, error)
	Verify(token string) (string, error)
}

type jwtSigner struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewSigner creates a Signer backed by HS256 JWTs.
func NewSigner(key []byte, ttl time.Duration) Signer {
	return &jwtSigner{key: key, ttl: ttl, now: time.Now}
}

type confirmClaims struct {
	jwt.RegisteredClaims
	Purpose string `json:"purpose"`
}

const purposeConfirm = "booking-confirm"

func (s *jwtSigner) Issue(email string) (string, error) {
	now := s.now()
	claims := &confirmClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Purpose: purposeConfirm,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}

// Verify checks the token signature and expiry and returns the email it
// was issued for.
func (s *jwtSigner) Verify(tokenStr string) (string, error) {
	claims := &confirmClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return s.key, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.Purpose != purposeConfirm || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
