// Package api описывает порты, через которые HTTP слой вызывает бизнес-логику.
package api

import (
	"context"

	"notetaker/internal/notes/app"
	"notetaker/internal/notes/domain/entities"
)

// ProjectUseCase определяет операции над проектами.
type ProjectUseCase interface {
	ListProjects(ctx context.Context) ([]*entities.Project, error)

	GetProjectNoteCounts(ctx context.Context) ([]entities.ProjectNoteCount, error)

	GetProject(ctx context.Context, id int) (*entities.Project, error)

	CreateProject(ctx context.Context, in app.ProjectInput) (*entities.Project, error)

	UpdateProject(ctx context.Context, id int, in app.ProjectInput) error

	DeleteProject(ctx context.Context, id int) error
}
