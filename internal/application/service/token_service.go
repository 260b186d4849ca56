package service

import (
	"context"
	"fmt"
	"time"

	"github.com/finbook/finance-tracker/internal/domain/entity"
	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and verifies signed session tokens. Tokens are
// stateless: validity is determined purely by signature and embedded expiry,
// and there is no revocation mechanism.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a new token service. The caller supplies the token
// lifetime; the configuration layer defaults it to one hour.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue produces a signed token embedding the user id, expiring ttl after
// issuance.
func (s *TokenService) Issue(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify checks signature integrity and expiry and returns the embedded user
// id. Expired, tampered and malformed tokens all fail with
// entity.ErrInvalidToken; callers cannot distinguish the cases. Verification
// is pure; the context is accepted to satisfy the access gate's verifier
// contract.
func (s *TokenService) Verify(_ context.Context, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", entity.ErrInvalidToken
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", entity.ErrInvalidToken
	}

	return subject, nil
}
