package handlers

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notetaker/internal/notes/adapters/http/middleware"
)

// Pinger проверяет доступность хранилища.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler отвечает на /health.
type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health возвращает 200, если база отвечает на ping, иначе 503.
func (h *HealthHandler) Health(ctx fiber.Ctx) error {
	userCtx := middleware.UserContext(ctx)
	if err := h.db.Ping(userCtx); err != nil {
		handlerLog(ctx, "HealthHandler.Health").Warn(userCtx, "database ping failed", zap.Error(err))
		return sendJSON(ctx, fiber.StatusServiceUnavailable, HealthResponse{Status: "unavailable"})
	}
	return sendJSON(ctx, fiber.StatusOK, HealthResponse{Status: "ok"})
}
