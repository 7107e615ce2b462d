// Package token issues and verifies the signed bearer credentials used by
// the admin API. Tokens are stateless: revocation is only by expiry or by
// the client discarding the token.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers malformed, tampered and expired tokens alike.
var ErrInvalidToken = errors.New("invalid token")

// Claims embeds the registered JWT claims plus the administrator id.
type Claims struct {
	jwt.RegisteredClaims
	AdminID int64 `json:"admin_id"`
}

// Service signs and verifies HS256 tokens with a shared server-side secret.
type Service struct {
	secret []byte
	ttl    time.Duration
}

func NewService(secret string, ttl time.Duration) *Service {
	return &Service{secret: []byte(secret), ttl: ttl}
}

// Issue produces a signed credential embedding adminID with an absolute
// expiry ttl from now.
func (s *Service) Issue(adminID int64) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		AdminID: adminID,
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// Verify checks signature and expiry and returns the embedded admin id.
// It does not confirm the administrator still exists; that is the access
// guard's job.
func (s *Service) Verify(tokenString string) (int64, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}
	if claims.AdminID <= 0 {
		return 0, ErrInvalidToken
	}

	return claims.AdminID, nil
}
