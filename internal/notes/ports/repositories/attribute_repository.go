package repositories

import (
	"context"

	"notetaker/internal/notes/domain/entities"
)

// AttributeRepository работает с атрибутами заметок.
type AttributeRepository interface {
	List(ctx context.Context) ([]*entities.Attribute, error)

	// GetByID возвращает (nil, nil), если атрибута нет.
	GetByID(ctx context.Context, id int) (*entities.Attribute, error)

	// FindByIDs возвращает существующие атрибуты из ids; отсутствующие пропускаются.
	FindByIDs(ctx context.Context, ids []int) ([]*entities.Attribute, error)

	Create(ctx context.Context, attribute *entities.Attribute) error

	Update(ctx context.Context, attribute *entities.Attribute) (entities.UpdateOutcome, error)

	Delete(ctx context.Context, id int) error

	Exists(ctx context.Context, id int) (bool, error)
}
