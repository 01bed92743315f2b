package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the JWT claims structure. The userId claim is the token's
// entire payload as far as callers are concerned.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies signed session tokens. The secret and
// lifetime are injected at construction so the codec carries no process-wide
// state.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenCodec creates a TokenCodec signing with the given secret. Tokens
// expire after ttl.
func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	return &TokenCodec{secret: []byte(secret), ttl: ttl}
}

// Issue creates a signed token for the given user id.
func (c *TokenCodec) Issue(userID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify validates a token's signature and expiry and returns the user id it
// was issued for. Any failure mode (malformed token, bad signature, expired)
// comes back as an error.
func (c *TokenCodec) Verify(tokenStr string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	return claims.UserID, nil
}
