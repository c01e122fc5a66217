package app

import (
	"context"
	"fmt"

	"notetaker/internal/notes/domain/entities"
	"notetaker/internal/notes/ports/repositories"
)

// AttributeUseCase управляет атрибутами заметок.
type AttributeUseCase struct {
	uow       repositories.UnitOfWorkManager
	validator *Validator
}

// NewAttributeUseCase создает новый экземпляр AttributeUseCase.
func NewAttributeUseCase(uow repositories.UnitOfWorkManager, validator *Validator) *AttributeUseCase {
	return &AttributeUseCase{uow: uow, validator: validator}
}

func (uc *AttributeUseCase) ListAttributes(ctx context.Context) ([]*entities.Attribute, error) {
	var attrs []*entities.Attribute
	err := uc.uow.Do(ctx, func(ctx context.Context, uow repositories.UnitOfWork) error {
		var err error
		attrs, err = uow.Attributes().List(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list attributes: %w", err)
	}
	return attrs, nil
}

func (uc *AttributeUseCase) GetAttribute(ctx context.Context, id int) (*entities.Attribute, error) {
	var attr *entities.Attribute
	err := uc.uow.Do(ctx, func(ctx context.Context, uow repositories.UnitOfWork) error {
		var err error
		attr, err = uow.Attributes().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if attr == nil {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get attribute: %w", err)
	}
	return attr, nil
}

func (uc *AttributeUseCase) CreateAttribute(ctx context.Context, in AttributeInput) (*entities.Attribute, error) {
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}

	attr := &entities.Attribute{Name: in.Name}
	err := uc.uow.Do(ctx, func(ctx context.Context, uow repositories.UnitOfWork) error {
		return uow.Attributes().Create(ctx, attr)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create attribute: %w", err)
	}
	return attr, nil
}

// UpdateAttribute переименовывает атрибут. Как и у проектов, отсутствующий
// атрибут дает ErrMissingTarget.
func (uc *AttributeUseCase) UpdateAttribute(ctx context.Context, id int, in AttributeInput) error {
	if err := uc.validator.Struct(in); err != nil {
		return err
	}

	err := uc.uow.Do(ctx, func(ctx context.Context, uow repositories.UnitOfWork) error {
		attr, err := uow.Attributes().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if attr == nil {
			return fmt.Errorf("%w: attribute %d", ErrMissingTarget, id)
		}

		attr.Name = in.Name
		outcome, err := uow.Attributes().Update(ctx, attr)
		if err != nil {
			return err
		}
		return outcomeError(outcome)
	})
	if err != nil {
		return fmt.Errorf("failed to update attribute: %w", err)
	}
	return nil
}

// DeleteAttribute удаляет атрибут и его связи с заметками.
func (uc *AttributeUseCase) DeleteAttribute(ctx context.Context, id int) error {
	err := uc.uow.Do(ctx, func(ctx context.Context, uow repositories.UnitOfWork) error {
		return uow.Attributes().Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete attribute: %w", translateNotFound(err))
	}
	return nil
}
