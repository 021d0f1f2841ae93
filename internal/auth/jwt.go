// Package auth issues and verifies the bearer tokens guarding the API.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// TokenInfo is the login response payload.
type TokenInfo struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type Claims struct {
	Login string `json:"login"`
	jwt.RegisteredClaims
}

// TokenManager signs and parses access tokens with a shared secret.
type TokenManager struct {
	secret    []byte
	expiresIn time.Duration
}

func NewTokenManager(secret string, expiresInMinutes int) *TokenManager {
	return &TokenManager{
		secret:    []byte(secret),
		expiresIn: time.Duration(expiresInMinutes) * time.Minute,
	}
}

// Issue creates a signed token for the user. The subject claim carries the
// account id, the login claim the user's email.
func (m *TokenManager) Issue(userID int, login string) (TokenInfo, error) {
	now := time.Now().UTC()

	claims := Claims{
		Login: login,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiresIn)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return TokenInfo{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return TokenInfo{AccessToken: signed, TokenType: "Bearer"}, nil
}

// Verify parses and validates a token string.
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// UserID extracts the account id from the subject claim.
func (c *Claims) UserID() (int, error) {
	id, err := strconv.Atoi(c.Subject)
	if err != nil {
		return 0, ErrTokenInvalid
	}
	return id, nil
}
