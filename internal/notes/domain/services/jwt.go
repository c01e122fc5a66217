// Package services содержит доменные типы и ошибки сервисов учетных данных и токенов.
package services

import (
	"errors"
	"time"
)

// Ошибки JWT.
var (
	ErrInvalidJWTToken    = errors.New("invalid JWT token")
	ErrExpiredJWTToken    = errors.New("JWT token has expired")
	ErrGeneratingJWTToken = errors.New("failed to generate JWT token")
)

// Фиксированные параметры выпускаемых токенов.
const (
	TokenIssuer   = "NoteTakingApp"
	TokenAudience = "NoteTakingApp"
	TokenTTL      = 2 * time.Hour
)

// JWTConfig содержит настройки JWT сервиса.
type JWTConfig struct {
	SecretKey []byte
	Issuer    string
	Audience  string
	TTL       time.Duration
}

// TokenClaims - утверждения токена о пользователе.
type TokenClaims struct {
	UserID    int
	Username  string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
