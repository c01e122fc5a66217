package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"notetaker/internal/notes/adapters/http/middleware"
	"notetaker/internal/notes/app"
	"notetaker/internal/notes/ports/api"
	"notetaker/internal/notes/ports/repositories"
)

// NotesPath - базовый путь ресурса заметок.
const NotesPath = "/api/Note"

// Параметры строки запроса.
const (
	queryProjectID    = "projectId"
	queryAttributeIDs = "attributeIds"
)

// NoteHandler обслуживает /api/Note.
type NoteHandler struct {
	notes api.NoteUseCase
}

// NewNoteHandler создает обработчик заметок.
func NewNoteHandler(notes api.NoteUseCase) *NoteHandler {
	return &NoteHandler{notes: notes}
}

// ListNotes возвращает заметки с фильтрами projectId и attributeIds.
// attributeIds можно повторять или перечислять через запятую.
func (h *NoteHandler) ListNotes(ctx fiber.Ctx) error {
	log := handlerLog(ctx, "NoteHandler.ListNotes")

	projectID, err := optionalInt(ctx.Query(queryProjectID))
	if err != nil {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidQuery)
	}
	attributeIDs, err := attributeIDsQuery(ctx)
	if err != nil {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidQuery)
	}

	callerID := 0
	if claims := middleware.Claims(ctx); claims != nil {
		callerID = claims.UserID
	}

	notes, err := h.notes.ListNotes(middleware.UserContext(ctx), callerID, repositories.NoteFilter{
		ProjectID:    projectID,
		AttributeIDs: attributeIDs,
	})
	if err != nil {
		return handleError(ctx, log, err)
	}
	return sendJSON(ctx, fiber.StatusOK, notes)
}

// GetAttributeNoteCounts возвращает число заметок на атрибут и запись для заметок без атрибутов.
func (h *NoteHandler) GetAttributeNoteCounts(ctx fiber.Ctx) error {
	log := handlerLog(ctx, "NoteHandler.GetAttributeNoteCounts")

	counts, err := h.notes.GetAttributeNoteCounts(middleware.UserContext(ctx))
	if err != nil {
		return handleError(ctx, log, err)
	}
	return sendJSON(ctx, fiber.StatusOK, counts)
}

func (h *NoteHandler) GetNote(ctx fiber.Ctx) error {
	log := handlerLog(ctx, "NoteHandler.GetNote")

	id, ok, err := pathID(ctx)
	if !ok {
		return err
	}

	note, err := h.notes.GetNote(middleware.UserContext(ctx), id)
	if err != nil {
		return handleError(ctx, log, err)
	}
	return sendJSON(ctx, fiber.StatusOK, note)
}

// CreateNote создает заметку. projectId берется из строки запроса.
func (h *NoteHandler) CreateNote(ctx fiber.Ctx) error {
	log := handlerLog(ctx, "NoteHandler.CreateNote")

	projectID, err := optionalInt(ctx.Query(queryProjectID))
	if err != nil {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidQuery)
	}

	var req NoteRequest
	if ok, err := bindBody(ctx, log, &req); !ok {
		return err
	}

	note, err := h.notes.CreateNote(middleware.UserContext(ctx), noteInput(req), projectID)
	if err != nil {
		return handleError(ctx, log, err)
	}
	return sendCreated(ctx, NotesPath, note.ID, note)
}

func (h *NoteHandler) UpdateNote(ctx fiber.Ctx) error {
	log := handlerLog(ctx, "NoteHandler.UpdateNote")

	id, ok, err := pathID(ctx)
	if !ok {
		return err
	}

	var req NoteRequest
	if ok, err := bindBody(ctx, log, &req); !ok {
		return err
	}

	if err := h.notes.UpdateNote(middleware.UserContext(ctx), id, noteInput(req)); err != nil {
		return handleError(ctx, log, err)
	}
	return sendNoContent(ctx)
}

func (h *NoteHandler) DeleteNote(ctx fiber.Ctx) error {
	log := handlerLog(ctx, "NoteHandler.DeleteNote")

	id, ok, err := pathID(ctx)
	if !ok {
		return err
	}

	if err := h.notes.DeleteNote(middleware.UserContext(ctx), id); err != nil {
		return handleError(ctx, log, err)
	}
	return sendNoContent(ctx)
}

func noteInput(req NoteRequest) app.NoteInput {
	return app.NoteInput{Text: req.NoteText, AttributeIDs: req.AttributeIDs}
}

func optionalInt(raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func attributeIDsQuery(ctx fiber.Ctx) ([]int, error) {
	var ids []int
	for _, raw := range ctx.Request().URI().QueryArgs().PeekMulti(queryAttributeIDs) {
		for _, part := range strings.Split(string(raw), ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.Atoi(part)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}
