package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"notetaker/pkg/retry"
)

// PostgresConfig содержит настройки подключения к базе данных.
// Пароль берется из POSTGRES_PASSWORD и никогда не логируется.
type PostgresConfig struct {
	Host            string        `yaml:"host" env:"NOTES_POSTGRES_HOST" env-default:"localhost"`
	Port            int           `yaml:"port" env:"NOTES_POSTGRES_PORT" env-default:"5432"`
	User            string        `yaml:"user" env:"NOTES_POSTGRES_USER" env-default:"postgres"`
	Password        string        `yaml:"-" env:"POSTGRES_PASSWORD" env-default:""`
	Database        string        `yaml:"database" env:"NOTES_POSTGRES_DB" env-default:"notes"`
	SSLMode         string        `yaml:"ssl_mode" env:"NOTES_POSTGRES_SSL_MODE" env-default:"disable"`
	MinConn         int           `yaml:"min_conn" env:"NOTES_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn         int           `yaml:"max_conn" env:"NOTES_POSTGRES_MAX_CONN" env-default:"10"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"NOTES_POSTGRES_MAX_CONN_LIFETIME" env-default:"1h"`
	MigrationsPath  string        `yaml:"migrations_path" env:"NOTES_POSTGRES_MIGRATIONS_PATH" env-default:"file://migrations/notes"`
	ConnectAttempts int           `yaml:"connect_attempts" env:"NOTES_POSTGRES_CONNECT_ATTEMPTS" env-default:"5"`
	ConnectBackoff  time.Duration `yaml:"connect_backoff" env:"NOTES_POSTGRES_CONNECT_BACKOFF" env-default:"500ms"`
}

// GetConnectPolicy возвращает политику повторов для подключения при старте.
func (p *PostgresConfig) GetConnectPolicy() retry.Policy {
	policy := retry.DefaultPolicy()
	policy.MaxAttempts = p.ConnectAttempts
	if p.ConnectBackoff > 0 {
		policy.InitialBackoff = p.ConnectBackoff
	}
	return policy
}

// GetDSN возвращает строку подключения к Postgres.
func (p *PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode)
}

// GetConnectionURL возвращает URL-строку подключения для миграций.
func (p *PostgresConfig) GetConnectionURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     net.JoinHostPort(p.Host, strconv.Itoa(p.Port)),
		Path:     "/" + p.Database,
		RawQuery: "sslmode=" + url.QueryEscape(p.SSLMode),
	}
	return u.String()
}
