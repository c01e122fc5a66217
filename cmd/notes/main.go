// Package main реализует точку входа HTTP сервиса заметок.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notetaker/internal/notes/adapters/cache"
	notehttp "notetaker/internal/notes/adapters/http"
	"notetaker/internal/notes/adapters/postgres"
	"notetaker/internal/notes/adapters/services"
	"notetaker/internal/notes/app"
	"notetaker/internal/notes/config"
	svc "notetaker/internal/notes/ports/services"
	pgdb "notetaker/pkg/db/postgres"
	"notetaker/pkg/logger"
	"notetaker/pkg/retry"
	"notetaker/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "NOTES_LOGGER_MODE"
	EnvLoggerLevel = "NOTES_LOGGER_LEVEL"
	EnvFile        = "NOTES_ENV_FILE"
	defaultEnvFile = ".env"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDB               = "failed to initialize database"
	ErrMigrateDB            = "failed to apply migrations"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "note service started"
	LogServiceShutdownDone = "note service shutdown complete"
	LogClosingDB           = "closing database connections"
	LogClosingRedis        = "closing Redis connection"
	LogStoppingHTTP        = "stopping HTTP server"
	LogInitRevocations     = "initializing token revocation store"
	LogRevocationsDisabled = "Redis disabled, logout will not persist revocations"
	LogInitServices        = "initializing services"
	LogInitUseCases        = "initializing use cases"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		envFile := os.Getenv(EnvFile)
		if envFile == "" {
			envFile = defaultEnvFile
		}

		cfg, err := config.Load(ctx, envFile)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		var database *pgdb.Database
		err = retry.Do(ctx, "postgres startup", cfg.Postgres.GetConnectPolicy(), func(ctx context.Context) error {
			if err := pgdb.MigrateDSN(ctx, cfg.Postgres.GetConnectionURL(), cfg.Postgres.MigrationsPath); err != nil {
				return fmt.Errorf("%s: %w", ErrMigrateDB, err)
			}
			db, err := pgdb.New(ctx, cfg.Postgres.GetDSN(), pgdb.PoolOptions{
				MinConns:        int32(cfg.Postgres.MinConn), //nolint:gosec
				MaxConns:        int32(cfg.Postgres.MaxConn), //nolint:gosec
				MaxConnLifetime: cfg.Postgres.MaxConnLifetime,
			})
			if err != nil {
				return err
			}
			database = db
			return nil
		})
		if err != nil {
			log.Error(ctx, ErrInitDB, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitRevocations)
		var revocations svc.TokenRevocationStore = cache.NewNoopRevocationStore()
		if cfg.Redis.Enabled {
			revocations, err = cache.NewRedisRevocationStore(ctx, cfg.Redis.ToClientConfig())
			if err != nil {
				log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
				database.Close(ctx)
				exitCode = 1
				return
			}
		} else {
			log.Warn(ctx, LogRevocationsDisabled)
		}

		log.Info(ctx, LogInitServices)
		serviceFactory := services.NewServiceFactory(cfg.JWT.ToServiceConfig(), cfg.JWT.BCryptCost)

		log.Info(ctx, LogInitUseCases)
		uow := postgres.NewUnitOfWorkManager(database.Pool())
		validator := app.NewValidator()
		userUseCase := app.NewUserUseCase(uow, serviceFactory.PasswordService(), serviceFactory.TokenService(), revocations, validator)

		log.Info(ctx, LogInitHTTPServer)
		server := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
			IdleTimeout:  cfg.HTTP.IdleTimeout,
		})

		notehttp.SetupRouter(server, notehttp.RouterConfig{
			Projects:    app.NewProjectUseCase(uow, validator),
			Notes:       app.NewNoteUseCase(uow, validator),
			Attributes:  app.NewAttributeUseCase(uow, validator),
			Users:       userUseCase,
			Auth:        userUseCase,
			Health:      database,
			MetricsPath: cfg.HTTP.MetricsPath,
		})

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := server.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				if err := server.ShutdownWithContext(ctx); err != nil {
					return fmt.Errorf("%s: %w", LogStoppingHTTP, err)
				}
				log.Info(ctx, LogClosingDB)
				database.Close(ctx)
				return nil
			},
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingRedis)
				return revocations.Close()
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
