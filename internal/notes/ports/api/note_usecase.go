package api

import (
	"context"

	"notetaker/internal/notes/app"
	"notetaker/internal/notes/domain/entities"
	"notetaker/internal/notes/ports/repositories"
)

// NoteUseCase определяет операции над заметками.
type NoteUseCase interface {
	ListNotes(ctx context.Context, callerID int, filter repositories.NoteFilter) ([]*entities.Note, error)

	GetAttributeNoteCounts(ctx context.Context) ([]entities.AttributeNoteCount, error)

	GetNote(ctx context.Context, id int) (*entities.Note, error)

	CreateNote(ctx context.Context, in app.NoteInput, projectID *int) (*entities.Note, error)

	UpdateNote(ctx context.Context, id int, in app.NoteInput) error

	DeleteNote(ctx context.Context, id int) error
}
