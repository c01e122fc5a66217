package config

import (
	"time"

	"notetaker/internal/notes/domain/services"
)

// JWTConfig содержит настройки токенов и хеширования паролей.
type JWTConfig struct {
	SecretKey  string        `yaml:"secret_key" env:"NOTES_JWT_SECRET_KEY" env-required:"true"`
	TokenTTL   time.Duration `yaml:"token_ttl" env:"NOTES_JWT_TOKEN_TTL" env-default:"2h"`
	BCryptCost int           `yaml:"bcrypt_cost" env:"NOTES_JWT_BCRYPT_COST" env-default:"10"`
}

// ToServiceConfig переводит настройки в конфигурацию сервиса токенов.
func (c *JWTConfig) ToServiceConfig() services.JWTConfig {
	return services.JWTConfig{
		SecretKey: []byte(c.SecretKey),
		Issuer:    services.TokenIssuer,
		Audience:  services.TokenAudience,
		TTL:       c.TokenTTL,
	}
}
