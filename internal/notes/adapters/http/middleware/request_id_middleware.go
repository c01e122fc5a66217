package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"notetaker/pkg/logger"
)

// NewRequestIDMiddleware создает context запроса с request_id. Входящий
// X-Request-ID сохраняется, иначе генерируется новый.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := logger.NewRequestIDContext(context.Background(), ctx.Get(HeaderRequestID))
		if id, ok := logger.GetRequestID(requestCtx); ok {
			ctx.Set(HeaderRequestID, id)
		}
		ctx.Locals(LocalUserContext, requestCtx)
		return ctx.Next()
	}
}
