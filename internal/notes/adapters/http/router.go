// Package http собирает fiber приложение сервиса заметок.
package http

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"notetaker/internal/notes/adapters/http/handlers"
	"notetaker/internal/notes/adapters/http/middleware"
	"notetaker/internal/notes/ports/api"
)

// DefaultMetricsPath используется, если путь метрик не задан.
const DefaultMetricsPath = "/metrics"

// RouterConfig - зависимости маршрутизатора.
type RouterConfig struct {
	Projects    api.ProjectUseCase
	Notes       api.NoteUseCase
	Attributes  api.AttributeUseCase
	Users       api.UserUseCase
	Auth        api.Authenticator
	Health      handlers.Pinger
	MetricsPath string
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, cfg RouterConfig) {
	projectHandler := handlers.NewProjectHandler(cfg.Projects)
	noteHandler := handlers.NewNoteHandler(cfg.Notes)
	attributeHandler := handlers.NewAttributeHandler(cfg.Attributes)
	userHandler := handlers.NewUserHandler(cfg.Users)
	healthHandler := handlers.NewHealthHandler(cfg.Health)
	authMiddleware := middleware.NewAuthMiddleware(cfg.Auth)

	metricsPath := cfg.MetricsPath
	if metricsPath == "" {
		metricsPath = DefaultMetricsPath
	}

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewMetricsMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	app.Get("/health", healthHandler.Health)
	app.Get(metricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	apiGroup := app.Group("/api")

	// Пользователи: register и login открыты, остальное требует токен.
	users := apiGroup.Group("/User")
	users.Post("/register", userHandler.Register)
	users.Post("/login", userHandler.Login)
	users.Post("/logout", authMiddleware, userHandler.Logout)
	users.Get("", authMiddleware, userHandler.ListUsers)
	users.Get("/:id", authMiddleware, userHandler.GetUser)
	users.Put("/:id", authMiddleware, userHandler.UpdateUser)
	users.Delete("/:id", authMiddleware, userHandler.DeleteUser)

	// Статические пути регистрируются раньше "/:id".
	projects := apiGroup.Group("/Project", authMiddleware)
	projects.Get("", projectHandler.ListProjects)
	projects.Get("/ProjectNoteCounts", projectHandler.GetProjectNoteCounts)
	projects.Get("/:id", projectHandler.GetProject)
	projects.Post("", projectHandler.CreateProject)
	projects.Put("/:id", projectHandler.UpdateProject)
	projects.Delete("/:id", projectHandler.DeleteProject)

	notes := apiGroup.Group("/Note", authMiddleware)
	notes.Get("", noteHandler.ListNotes)
	notes.Get("/AttributeNoteCounts", noteHandler.GetAttributeNoteCounts)
	notes.Get("/:id", noteHandler.GetNote)
	notes.Post("", noteHandler.CreateNote)
	notes.Put("/:id", noteHandler.UpdateNote)
	notes.Delete("/:id", noteHandler.DeleteNote)

	attributes := apiGroup.Group("/Attribute", authMiddleware)
	attributes.Get("", attributeHandler.ListAttributes)
	attributes.Get("/:id", attributeHandler.GetAttribute)
	attributes.Post("", attributeHandler.CreateAttribute)
	attributes.Put("/:id", attributeHandler.UpdateAttribute)
	attributes.Delete("/:id", attributeHandler.DeleteAttribute)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
