package repositories

import (
	"context"

	"notetaker/internal/notes/domain/entities"
)

// ProjectRepository работает с проектами. Заметки проектов загружает NoteRepository.
type ProjectRepository interface {
	List(ctx context.Context) ([]*entities.Project, error)

	// GetByID возвращает (nil, nil), если проекта нет.
	GetByID(ctx context.Context, id int) (*entities.Project, error)

	Create(ctx context.Context, project *entities.Project) error

	Update(ctx context.Context, project *entities.Project) (entities.UpdateOutcome, error)

	Delete(ctx context.Context, id int) error

	Exists(ctx context.Context, id int) (bool, error)
}
