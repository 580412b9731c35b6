package services

import (
	stderrors "errors"
	"fmt"
	"time"

	"dochub-server/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCodec issues and verifies signed session tokens. The only claim is
// the subject user id; there is no revocation list, a stolen token stays
// valid until its expiry.
type SessionCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewSessionCodec(secret string, ttl time.Duration) *SessionCodec {
	return &SessionCodec{secret: []byte(secret), ttl: ttl}
}

func (c *SessionCodec) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", errors.NewInternalError("failed to sign session token")
	}
	return signed, nil
}

func (c *SessionCodec) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			return "", errors.NewUnauthorizedError("token expired")
		}
		return "", errors.NewUnauthorizedError("invalid token")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", errors.NewUnauthorizedError("invalid token")
	}
	return claims.Subject, nil
}
