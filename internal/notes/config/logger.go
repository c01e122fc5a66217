package config

import (
	"strings"

	"notetaker/pkg/logger"
)

// LoggingConfig содержит настройки логирования сервиса заметок.
type LoggingConfig struct {
	Level string `yaml:"level" env:"NOTES_LOGGER_LEVEL" env-default:"info"`
	Mode  string `yaml:"mode" env:"NOTES_LOGGER_MODE" env-default:"development"`
}

// GetEnvironment переводит Mode в окружение logger. Регистр не важен,
// все кроме "production" считается development.
func (l *LoggingConfig) GetEnvironment() logger.Environment {
	if strings.EqualFold(strings.TrimSpace(l.Mode), string(logger.Production)) {
		return logger.Production
	}
	return logger.Development
}
