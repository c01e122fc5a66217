// Package repositories определяет интерфейсы хранилища сервиса заметок.
package repositories

import (
	"context"
	"errors"

	"notetaker/internal/notes/domain/entities"
)

// Ошибки хранилища.
var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrInvalidReference  = errors.New("referenced record does not exist")
	ErrConflict          = errors.New("concurrent modification detected")
)

// NoteFilter ограничивает выборку заметок. Пустой AttributeIDs не фильтрует,
// иначе заметка попадает в выборку при наличии хотя бы одного атрибута из списка.
type NoteFilter struct {
	ProjectID    *int
	AttributeIDs []int
}

// NoteRepository работает с заметками и таблицей связей заметка-атрибут.
type NoteRepository interface {
	List(ctx context.Context, filter NoteFilter) ([]*entities.Note, error)

	ListByProjectIDs(ctx context.Context, projectIDs []int) ([]*entities.Note, error)

	// GetByID возвращает (nil, nil), если заметки нет.
	GetByID(ctx context.Context, id int) (*entities.Note, error)

	// Create заполняет ID и CreatedAt переданной заметки.
	Create(ctx context.Context, note *entities.Note) error

	UpdateText(ctx context.Context, id int, text string) (entities.UpdateOutcome, error)

	Delete(ctx context.Context, id int) error

	Exists(ctx context.Context, id int) (bool, error)

	AttributeIDs(ctx context.Context, noteID int) ([]int, error)

	AddAttributes(ctx context.Context, noteID int, attributeIDs []int) error

	RemoveAttributes(ctx context.Context, noteID int, attributeIDs []int) error

	CountByProject(ctx context.Context) ([]entities.ProjectNoteCount, error)

	CountByAttribute(ctx context.Context) ([]entities.AttributeNoteCount, error)

	CountWithoutAttributes(ctx context.Context) (int, error)
}
