package services

import (
	"context"
	"time"

	"notetaker/internal/notes/domain/services"
)

// TokenService выпускает и проверяет bearer токены.
type TokenService interface {
	Issue(ctx context.Context, userID int, username string) (string, *services.TokenClaims, error)

	Validate(ctx context.Context, token string) (*services.TokenClaims, error)
}

// TokenRevocationStore хранит отозванные идентификаторы токенов до истечения их срока.
type TokenRevocationStore interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error

	IsRevoked(ctx context.Context, tokenID string) (bool, error)

	Close() error
}
