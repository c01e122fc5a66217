package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notetaker/internal/notes/ports/api"
	"notetaker/pkg/logger"
)

// Константы для логирования.
const (
	LogAuthMiddleware = "auth middleware"

	ErrorNoAuthHeader       = "no authorization header provided"
	ErrorInvalidTokenFormat = "invalid token format"
	ErrorInvalidToken       = "invalid or expired token"

	bearerPrefix = "Bearer "
	eventBearer  = "bearer"
)

// NewAuthMiddleware проверяет bearer токен и кладет его утверждения в Locals.
func NewAuthMiddleware(auth api.Authenticator) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := UserContext(ctx)
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))
		log.Debug(requestCtx, LogAuthMiddleware)

		authHeader := ctx.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			log.Debug(requestCtx, ErrorNoAuthHeader)
			return unauthorized(ctx, ErrorNoAuthHeader)
		}

		if !strings.HasPrefix(authHeader, bearerPrefix) {
			log.Debug(requestCtx, ErrorInvalidTokenFormat)
			return unauthorized(ctx, ErrorInvalidTokenFormat)
		}

		claims, err := auth.Authenticate(requestCtx, strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix)))
		if err != nil {
			RecordAuthAttempt(eventBearer, false)
			log.Debug(requestCtx, ErrorInvalidToken, zap.Error(err))
			return unauthorized(ctx, ErrorInvalidToken)
		}
		RecordAuthAttempt(eventBearer, true)

		ctx.Locals(LocalClaims, claims)
		return ctx.Next()
	}
}

func unauthorized(ctx fiber.Ctx, msg string) error {
	if err := ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": msg}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}
