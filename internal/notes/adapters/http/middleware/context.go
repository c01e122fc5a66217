// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"notetaker/internal/notes/domain/services"
)

// Ключи Locals, общие для middleware и обработчиков.
const (
	LocalUserContext = "userContext"
	LocalClaims      = "claims"
	HeaderRequestID  = "X-Request-ID"
)

// UserContext возвращает context запроса с request_id и logger.
func UserContext(ctx fiber.Ctx) context.Context {
	if userCtx, ok := ctx.Locals(LocalUserContext).(context.Context); ok {
		return userCtx
	}
	return context.Background()
}

// Claims возвращает утверждения проверенного токена или nil.
func Claims(ctx fiber.Ctx) *services.TokenClaims {
	claims, _ := ctx.Locals(LocalClaims).(*services.TokenClaims)
	return claims
}
