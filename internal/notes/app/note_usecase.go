package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"notetaker/internal/notes/domain/entities"
	"notetaker/internal/notes/ports/repositories"
	"notetaker/pkg/logger"
)

// NoteUseCase представляет собой бизнес-логику работы с заметками.
type NoteUseCase struct {
	uow       repositories.UnitOfWorkManager
	validator *Validator
}

// NewNoteUseCase создает новый экземпляр NoteUseCase.
func NewNoteUseCase(uow repositories.UnitOfWorkManager, validator *Validator) *NoteUseCase {
	return &NoteUseCase{uow: uow, validator: validator}
}

// ListNotes возвращает заметки с атрибутами. callerID - userId из токена;
// ноль означает, что claim отсутствует.
func (uc *NoteUseCase) ListNotes(ctx context.Context, callerID int, filter repositories.NoteFilter) ([]*entities.Note, error) {
	if callerID == 0 {
		return nil, ErrMissingIdentity
	}

	filter.AttributeIDs = entities.UniqueIDs(filter.AttributeIDs)

	var notes []*entities.Note
	err := uc.uow.Do(ctx, func(ctx context.Context, uow repositories.UnitOfWork) error {
		var err error
		notes, err = uow.Notes().List(ctx, filter)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

// GetAttributeNoteCounts возвращает число заметок на каждый используемый атрибут
// и одну запись с пустым AttributeIDs для заметок без атрибутов.
func (uc *NoteUseCase) GetAttributeNoteCounts(ctx context.Context) ([]entities.AttributeNoteCount, error) {
	var counts []entities.AttributeNoteCount
	err := uc.uow.Do(ctx, func(ctx context.Context, uow repositories.UnitOfWork) error {
		byAttribute, err := uow.Notes().CountByAttribute(ctx)
		if err != nil {
			return err
		}
		without, err := uow.Notes().CountWithoutAttributes(ctx)
		if err != nil {
			return err
		}
		counts = append(byAttribute, entities.AttributeNoteCount{AttributeIDs: []int{}, Count: without})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count attribute notes: %w", err)
	}
	return counts, nil
}

// GetNote возвращает заметку по ID.
func (uc *NoteUseCase) GetNote(ctx context.Context, id int) (*entities.Note, error) {
	var note *entities.Note
	err := uc.uow.Do(ctx, func(ctx context.Context, uow repositories.UnitOfWork) error {
		var err error
		note, err = uow.Notes().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if note == nil {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	return note, nil
}

// CreateNote создает заметку. Несуществующие атрибуты молча отбрасываются,
// projectID == nil создает заметку без проекта.
func (uc *NoteUseCase) CreateNote(ctx context.Context, in NoteInput, projectID *int) (*entities.Note, error) {
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}

	note := entities.NewNote(in.Text, projectID)
	err := uc.uow.Do(ctx, func(ctx context.Context, uow repositories.UnitOfWork) error {
		attrs, err := resolveAttributes(ctx, uow, in.AttributeIDs)
		if err != nil {
			return err
		}

		if err := uow.Notes().Create(ctx, note); err != nil {
			if errors.Is(err, repositories.ErrInvalidReference) {
				return newValidationError("ProjectId", "project %d does not exist", derefID(projectID))
			}
			return err
		}

		note.Attributes = attrs
		return uow.Notes().AddAttributes(ctx, note.ID, note.AttributeIDs())
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	logger.Log(ctx).Info(ctx, "note created", zap.Int("noteID", note.ID), zap.Int("attributes", len(note.Attributes)))
	return note, nil
}

// UpdateNote перезаписывает текст и полностью заменяет набор атрибутов.
func (uc *NoteUseCase) UpdateNote(ctx context.Context, id int, in NoteInput) error {
	if err := uc.validator.Struct(in); err != nil {
		return err
	}

	err := uc.uow.Do(ctx, func(ctx context.Context, uow repositories.UnitOfWork) error {
		note, err := uow.Notes().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if note == nil {
			return ErrNotFound
		}

		attrs, err := resolveAttributes(ctx, uow, in.AttributeIDs)
		if err != nil {
			return err
		}
		target := make([]int, 0, len(attrs))
		for _, a := range attrs {
			target = append(target, a.ID)
		}
		toAdd, toRemove := entities.DiffIDs(note.AttributeIDs(), target)

		outcome, err := uow.Notes().UpdateText(ctx, id, in.Text)
		if err != nil {
			return err
		}
		if err := outcomeError(outcome); err != nil {
			return err
		}

		if err := uow.Notes().RemoveAttributes(ctx, id, toRemove); err != nil {
			return err
		}
		return uow.Notes().AddAttributes(ctx, id, toAdd)
	})
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	return nil
}

// DeleteNote удаляет заметку. Атрибуты остаются.
func (uc *NoteUseCase) DeleteNote(ctx context.Context, id int) error {
	err := uc.uow.Do(ctx, func(ctx context.Context, uow repositories.UnitOfWork) error {
		return uow.Notes().Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", translateNotFound(err))
	}
	return nil
}

func resolveAttributes(ctx context.Context, uow repositories.UnitOfWork, ids []int) ([]*entities.Attribute, error) {
	ids = entities.UniqueIDs(ids)
	if len(ids) == 0 {
		return make([]*entities.Attribute, 0), nil
	}
	return uow.Attributes().FindByIDs(ctx, ids)
}

func derefID(id *int) int {
	if id == nil {
		return 0
	}
	return *id
}
