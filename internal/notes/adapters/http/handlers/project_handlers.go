package handlers

import (
	"github.com/gofiber/fiber/v3"

	"notetaker/internal/notes/adapters/http/middleware"
	"notetaker/internal/notes/app"
	"notetaker/internal/notes/ports/api"
)

// ProjectsPath - базовый путь ресурса проектов.
const ProjectsPath = "/api/Project"

// ProjectHandler обслуживает /api/Project.
type ProjectHandler struct {
	projects api.ProjectUseCase
}

// NewProjectHandler создает обработчик проектов.
func NewProjectHandler(projects api.ProjectUseCase) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// ListProjects возвращает все проекты с заметками.
func (h *ProjectHandler) ListProjects(ctx fiber.Ctx) error {
	log := handlerLog(ctx, "ProjectHandler.ListProjects")

	projects, err := h.projects.ListProjects(middleware.UserContext(ctx))
	if err != nil {
		return handleError(ctx, log, err)
	}
	return sendJSON(ctx, fiber.StatusOK, projects)
}

// GetProjectNoteCounts возвращает число заметок по проектам, включая заметки без проекта.
func (h *ProjectHandler) GetProjectNoteCounts(ctx fiber.Ctx) error {
	log := handlerLog(ctx, "ProjectHandler.GetProjectNoteCounts")

	counts, err := h.projects.GetProjectNoteCounts(middleware.UserContext(ctx))
	if err != nil {
		return handleError(ctx, log, err)
	}
	return sendJSON(ctx, fiber.StatusOK, counts)
}

func (h *ProjectHandler) GetProject(ctx fiber.Ctx) error {
	log := handlerLog(ctx, "ProjectHandler.GetProject")

	id, ok, err := pathID(ctx)
	if !ok {
		return err
	}

	project, err := h.projects.GetProject(middleware.UserContext(ctx), id)
	if err != nil {
		return handleError(ctx, log, err)
	}
	return sendJSON(ctx, fiber.StatusOK, project)
}

func (h *ProjectHandler) CreateProject(ctx fiber.Ctx) error {
	log := handlerLog(ctx, "ProjectHandler.CreateProject")

	var req ProjectRequest
	if ok, err := bindBody(ctx, log, &req); !ok {
		return err
	}

	project, err := h.projects.CreateProject(middleware.UserContext(ctx), app.ProjectInput{Name: req.Name})
	if err != nil {
		return handleError(ctx, log, err)
	}
	return sendCreated(ctx, ProjectsPath, project.ID, project)
}

func (h *ProjectHandler) UpdateProject(ctx fiber.Ctx) error {
	log := handlerLog(ctx, "ProjectHandler.UpdateProject")

	id, ok, err := pathID(ctx)
	if !ok {
		return err
	}

	var req ProjectRequest
	if ok, err := bindBody(ctx, log, &req); !ok {
		return err
	}

	if err := h.projects.UpdateProject(middleware.UserContext(ctx), id, app.ProjectInput{Name: req.Name}); err != nil {
		return handleError(ctx, log, err)
	}
	return sendNoContent(ctx)
}

func (h *ProjectHandler) DeleteProject(ctx fiber.Ctx) error {
	log := handlerLog(ctx, "ProjectHandler.DeleteProject")

	id, ok, err := pathID(ctx)
	if !ok {
		return err
	}

	if err := h.projects.DeleteProject(middleware.UserContext(ctx), id); err != nil {
		return handleError(ctx, log, err)
	}
	return sendNoContent(ctx)
}
