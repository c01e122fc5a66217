// Package handlers содержит HTTP-обработчики ресурсов сервиса заметок.
package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notetaker/internal/notes/adapters/http/middleware"
	"notetaker/internal/notes/app"
	"notetaker/pkg/logger"
)

// Сообщения об ошибках в теле ответа.
const (
	ErrMsgInvalidID          = "invalid id"
	ErrMsgInvalidQuery       = "invalid query parameter"
	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgInvalidRequest     = "Invalid request."
	ErrMsgMissingTarget      = "Target does not exist."
	ErrMsgUsernameTaken      = "Username already taken."
	ErrMsgUserIDMismatch     = "User id does not match the route."
	ErrMsgNotFound           = "Not found."
	ErrMsgMissingIdentity    = "User not found in token."
	ErrMsgInvalidCredentials = "Invalid credentials."
	ErrMsgUnauthorized       = "Unauthorized."
	ErrMsgInternal           = "Internal server error"
)

// statusFor выбирает HTTP статус и сообщение по ошибке бизнес-логики.
func statusFor(err error) (int, string) {
	var verr *app.ValidationError
	switch {
	case errors.As(err, &verr):
		return fiber.StatusBadRequest, verr.Reason
	case errors.Is(err, app.ErrValidation):
		return fiber.StatusBadRequest, ErrMsgInvalidRequest
	case errors.Is(err, app.ErrMissingTarget):
		return fiber.StatusBadRequest, ErrMsgMissingTarget
	case errors.Is(err, app.ErrUsernameTaken):
		return fiber.StatusBadRequest, ErrMsgUsernameTaken
	case errors.Is(err, app.ErrUserIDMismatch):
		return fiber.StatusBadRequest, ErrMsgUserIDMismatch
	case errors.Is(err, app.ErrNotFound):
		return fiber.StatusNotFound, ErrMsgNotFound
	case errors.Is(err, app.ErrMissingIdentity):
		return fiber.StatusUnauthorized, ErrMsgMissingIdentity
	case errors.Is(err, app.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, ErrMsgInvalidCredentials
	case errors.Is(err, app.ErrUnauthorized):
		return fiber.StatusUnauthorized, ErrMsgUnauthorized
	default:
		return fiber.StatusInternalServerError, ErrMsgInternal
	}
}

// handleError отправляет ответ {"error": msg}. Ошибки 5xx логируются как error,
// остальные как debug.
func handleError(ctx fiber.Ctx, log *logger.Logger, err error) error {
	userCtx := middleware.UserContext(ctx)
	status, msg := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		log.Error(userCtx, "request failed", zap.Error(err))
	} else {
		log.Debug(userCtx, "request rejected", zap.Int("status", status), zap.Error(err))
	}
	return sendError(ctx, status, msg)
}

func sendError(ctx fiber.Ctx, status int, msg string) error {
	if err := ctx.Status(status).JSON(fiber.Map{"error": msg}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

func sendJSON(ctx fiber.Ctx, status int, body any) error {
	if err := ctx.Status(status).JSON(body); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// sendCreated отвечает 201 с Location на созданный ресурс.
func sendCreated(ctx fiber.Ctx, basePath string, id int, body any) error {
	ctx.Location(basePath + "/" + strconv.Itoa(id))
	return sendJSON(ctx, fiber.StatusCreated, body)
}

func sendNoContent(ctx fiber.Ctx) error {
	if err := ctx.SendStatus(fiber.StatusNoContent); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// pathID разбирает параметр :id. При ошибке ответ 400 уже отправлен.
func pathID(ctx fiber.Ctx) (int, bool, error) {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return 0, false, sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidID)
	}
	return id, true, nil
}

// bindBody декодирует JSON тело в dst. При ошибке ответ 400 уже отправлен.
func bindBody(ctx fiber.Ctx, log *logger.Logger, dst any) (bool, error) {
	if err := ctx.Bind().JSON(dst); err != nil {
		log.Debug(middleware.UserContext(ctx), ErrMsgInvalidRequestBody, zap.Error(err))
		return false, sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}
	return true, nil
}

func handlerLog(ctx fiber.Ctx, name string) *logger.Logger {
	return logger.Log(middleware.UserContext(ctx)).With(zap.String("handler", name))
}
