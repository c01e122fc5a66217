// Package cache хранит отозванные токены в Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	svc "notetaker/internal/notes/ports/services"
	pkgredis "notetaker/pkg/db/redis"
	"notetaker/pkg/logger"
)

// Константы для логирования.
const (
	LogMethodRevoke    = "revoke"
	LogMethodIsRevoked = "is_revoked"
	LogMethodClose     = "close"

	ErrorFailedToRevoke = "failed to store revoked token in redis"
	ErrorFailedToCheck  = "failed to check revoked token in redis"
	ErrorFailedToClose  = "failed to close redis connection"

	revokedKeyPrefix = "revoked:"
	revokedValue     = "1"
)

// RedisRevocationStore реализует TokenRevocationStore: ключ revoked:<jti>
// живет до истечения срока токена.
type RedisRevocationStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisRevocationStore подключается к Redis и создает хранилище.
func NewRedisRevocationStore(ctx context.Context, cfg *pkgredis.Config) (svc.TokenRevocationStore, error) {
	client, err := pkgredis.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewRevocationStore(client), nil
}

// NewRevocationStore оборачивает готовый клиент.
func NewRevocationStore(client *redis.Client) *RedisRevocationStore {
	return &RedisRevocationStore{client: client, now: time.Now}
}

// Revoke помечает токен отозванным. Уже истекшие токены не сохраняются.
func (s *RedisRevocationStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return nil
	}
	log := logger.Log(ctx).With(zap.String("method", LogMethodRevoke), zap.String("tokenID", tokenID))

	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		log.Debug(ctx, "token already expired, nothing to revoke")
		return nil
	}

	if err := s.client.Set(ctx, revokedKeyPrefix+tokenID, revokedValue, ttl).Err(); err != nil {
		log.Error(ctx, ErrorFailedToRevoke, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToRevoke, err)
	}

	log.Debug(ctx, "token revoked", zap.Duration("ttl", ttl))
	return nil
}

// IsRevoked сообщает, отозван ли токен.
func (s *RedisRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}

	_, err := s.client.Get(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		logger.Log(ctx).Error(ctx, ErrorFailedToCheck, zap.String("method", LogMethodIsRevoked), zap.Error(err))
		return false, fmt.Errorf("%s: %w", ErrorFailedToCheck, err)
	}
	return true, nil
}

// Close закрывает соединение с Redis.
func (s *RedisRevocationStore) Close() error {
	if err := s.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToClose, err)
	}
	return nil
}

// NoopRevocationStore используется, когда Redis отключен: отзыв не сохраняется.
type NoopRevocationStore struct{}

// NewNoopRevocationStore создает хранилище без состояния.
func NewNoopRevocationStore() NoopRevocationStore {
	return NoopRevocationStore{}
}

func (NoopRevocationStore) Revoke(context.Context, string, time.Time) error { return nil }

func (NoopRevocationStore) IsRevoked(context.Context, string) (bool, error) { return false, nil }

func (NoopRevocationStore) Close() error { return nil }
