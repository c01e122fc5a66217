package handlers

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notetaker/internal/notes/adapters/http/middleware"
	"notetaker/internal/notes/app"
	"notetaker/internal/notes/ports/api"
)

// UsersPath - базовый путь ресурса пользователей.
const UsersPath = "/api/User"

// События для счетчика попыток аутентификации.
const (
	eventRegister = "register"
	eventLogin    = "login"
)

// UserHandler обслуживает /api/User: открытые register и login и
// защищенные операции администрирования.
type UserHandler struct {
	users api.UserUseCase
}

// NewUserHandler создает обработчик пользователей.
func NewUserHandler(users api.UserUseCase) *UserHandler {
	return &UserHandler{users: users}
}

// Register создает пользователя и возвращает его без хеша пароля.
func (h *UserHandler) Register(ctx fiber.Ctx) error {
	log := handlerLog(ctx, "UserHandler.Register")

	var req CredentialsRequest
	if ok, err := bindBody(ctx, log, &req); !ok {
		return err
	}

	user, err := h.users.Register(middleware.UserContext(ctx), app.Credentials{Username: req.Username, Password: req.Password})
	middleware.RecordAuthAttempt(eventRegister, err == nil)
	if err != nil {
		return handleError(ctx, log, err)
	}
	return sendCreated(ctx, UsersPath, user.ID, user)
}

// Login проверяет пароль и выдает bearer токен.
func (h *UserHandler) Login(ctx fiber.Ctx) error {
	log := handlerLog(ctx, "UserHandler.Login")

	var req CredentialsRequest
	if ok, err := bindBody(ctx, log, &req); !ok {
		return err
	}

	result, err := h.users.Login(middleware.UserContext(ctx), app.Credentials{Username: req.Username, Password: req.Password})
	middleware.RecordAuthAttempt(eventLogin, err == nil)
	if err != nil {
		return handleError(ctx, log, err)
	}

	if result.Claims != nil {
		log.Debug(middleware.UserContext(ctx), "token issued", zap.Time("expiresAt", result.Claims.ExpiresAt))
	}
	return sendJSON(ctx, fiber.StatusOK, TokenResponse{Token: result.Token})
}

// Logout отзывает предъявленный токен.
func (h *UserHandler) Logout(ctx fiber.Ctx) error {
	log := handlerLog(ctx, "UserHandler.Logout")

	if err := h.users.Logout(middleware.UserContext(ctx), middleware.Claims(ctx)); err != nil {
		return handleError(ctx, log, err)
	}
	return sendNoContent(ctx)
}

func (h *UserHandler) ListUsers(ctx fiber.Ctx) error {
	log := handlerLog(ctx, "UserHandler.ListUsers")

	users, err := h.users.ListUsers(middleware.UserContext(ctx))
	if err != nil {
		return handleError(ctx, log, err)
	}
	return sendJSON(ctx, fiber.StatusOK, users)
}

func (h *UserHandler) GetUser(ctx fiber.Ctx) error {
	log := handlerLog(ctx, "UserHandler.GetUser")

	id, ok, err := pathID(ctx)
	if !ok {
		return err
	}

	user, err := h.users.GetUser(middleware.UserContext(ctx), id)
	if err != nil {
		return handleError(ctx, log, err)
	}
	return sendJSON(ctx, fiber.StatusOK, user)
}

func (h *UserHandler) UpdateUser(ctx fiber.Ctx) error {
	log := handlerLog(ctx, "UserHandler.UpdateUser")

	id, ok, err := pathID(ctx)
	if !ok {
		return err
	}

	var req UserUpdateRequest
	if ok, err := bindBody(ctx, log, &req); !ok {
		return err
	}

	err = h.users.UpdateUser(middleware.UserContext(ctx), id, app.UserUpdate{
		UserID:   req.UserID,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return handleError(ctx, log, err)
	}
	return sendNoContent(ctx)
}

func (h *UserHandler) DeleteUser(ctx fiber.Ctx) error {
	log := handlerLog(ctx, "UserHandler.DeleteUser")

	id, ok, err := pathID(ctx)
	if !ok {
		return err
	}

	if err := h.users.DeleteUser(middleware.UserContext(ctx), id); err != nil {
		return handleError(ctx, log, err)
	}
	return sendNoContent(ctx)
}
