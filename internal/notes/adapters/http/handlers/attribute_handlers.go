package handlers

import (
	"github.com/gofiber/fiber/v3"

	"notetaker/internal/notes/adapters/http/middleware"
	"notetaker/internal/notes/app"
	"notetaker/internal/notes/ports/api"
)

// AttributesPath - базовый путь ресурса атрибутов.
const AttributesPath = "/api/Attribute"

// AttributeHandler обслуживает /api/Attribute.
type AttributeHandler struct {
	attributes api.AttributeUseCase
}

func NewAttributeHandler(attributes api.AttributeUseCase) *AttributeHandler {
	return &AttributeHandler{attributes: attributes}
}

func (h *AttributeHandler) ListAttributes(ctx fiber.Ctx) error {
	log := handlerLog(ctx, "AttributeHandler.ListAttributes")

	attrs, err := h.attributes.ListAttributes(middleware.UserContext(ctx))
	if err != nil {
		return handleError(ctx, log, err)
	}
	return sendJSON(ctx, fiber.StatusOK, attrs)
}

func (h *AttributeHandler) GetAttribute(ctx fiber.Ctx) error {
	log := handlerLog(ctx, "AttributeHandler.GetAttribute")

	id, ok, err := pathID(ctx)
	if !ok {
		return err
	}

	attr, err := h.attributes.GetAttribute(middleware.UserContext(ctx), id)
	if err != nil {
		return handleError(ctx, log, err)
	}
	return sendJSON(ctx, fiber.StatusOK, attr)
}

func (h *AttributeHandler) CreateAttribute(ctx fiber.Ctx) error {
	log := handlerLog(ctx, "AttributeHandler.CreateAttribute")

	var req AttributeRequest
	if ok, err := bindBody(ctx, log, &req); !ok {
		return err
	}

	attr, err := h.attributes.CreateAttribute(middleware.UserContext(ctx), app.AttributeInput{Name: req.AttributeName})
	if err != nil {
		return handleError(ctx, log, err)
	}
	return sendCreated(ctx, AttributesPath, attr.ID, attr)
}

func (h *AttributeHandler) UpdateAttribute(ctx fiber.Ctx) error {
	log := handlerLog(ctx, "AttributeHandler.UpdateAttribute")

	id, ok, err := pathID(ctx)
	if !ok {
		return err
	}

	var req AttributeRequest
	if ok, err := bindBody(ctx, log, &req); !ok {
		return err
	}

	if err := h.attributes.UpdateAttribute(middleware.UserContext(ctx), id, app.AttributeInput{Name: req.AttributeName}); err != nil {
		return handleError(ctx, log, err)
	}
	return sendNoContent(ctx)
}

func (h *AttributeHandler) DeleteAttribute(ctx fiber.Ctx) error {
	log := handlerLog(ctx, "AttributeHandler.DeleteAttribute")

	id, ok, err := pathID(ctx)
	if !ok {
		return err
	}

	if err := h.attributes.DeleteAttribute(middleware.UserContext(ctx), id); err != nil {
		return handleError(ctx, log, err)
	}
	return sendNoContent(ctx)
}
