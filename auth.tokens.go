package main

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer signs short-lived access tokens with the configured secret.
// It is wired at bootstrap but no endpoint requires a token yet.
type TokenIssuer struct {
	secret []byte
	expiry time.Duration
	clock  Clocker
}

// TokenClaims is the payload carried by issued tokens.
type TokenClaims struct {
	Sub string `json:"sub"`
	jwt.RegisteredClaims
}

// NewTokenIssuer provides a ready to use TokenIssuer.
func NewTokenIssuer(config *AuthConfig, clock Clocker) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(config.TokenSecret),
		expiry: config.TokenExpiry,
		clock:  clock,
	}
}

// Sign produces a signed token string for a given subject.
func (ti *TokenIssuer) Sign(subject string) (string, error) {
	now := ti.clock.Now()
	claims := TokenClaims{
		Sub: subject,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.expiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.secret)
}

// Parse validates a token string and returns its claims.
func (ti *TokenIssuer) Parse(tokenStr string) (*TokenClaims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &TokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		return ti.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := t.Claims.(*TokenClaims)
	if !ok || !t.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
