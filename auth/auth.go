// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidAdminKey = errors.New("invalid admin key")
	ErrInvalidToken    = errors.New("invalid session token")
)

const tokenIssuer = "quickly-judge"

// NewID creates a random UUID for a new entity
func NewID() string {
	return uuid.NewString()
}

// ValidateAdminKey checks the provided admin key against the configured one
// in constant time
func ValidateAdminKey(provided, expected string) error {
	if provided == "" || expected == "" {
		return ErrInvalidAdminKey
	}
	if !hmac.Equal([]byte(provided), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// JudgeClaims is the payload of a judge session token
type JudgeClaims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// IssueJudgeToken signs a session token identifying the judge
func IssueJudgeToken(judgeID, name, secret string, ttl time.Duration, now time.Time) (string, error) {
	claims := JudgeClaims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   judgeID,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseJudgeToken verifies a session token and returns the judge ID
func ParseJudgeToken(tokenString, secret string) (string, error) {
	claims := &JudgeClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
