package api

import (
	"context"

	"notetaker/internal/notes/app"
	"notetaker/internal/notes/domain/entities"
)

// AttributeUseCase определяет операции над атрибутами.
type AttributeUseCase interface {
	ListAttributes(ctx context.Context) ([]*entities.Attribute, error)

	GetAttribute(ctx context.Context, id int) (*entities.Attribute, error)

	CreateAttribute(ctx context.Context, in app.AttributeInput) (*entities.Attribute, error)

	UpdateAttribute(ctx context.Context, id int, in app.AttributeInput) error

	DeleteAttribute(ctx context.Context, id int) error
}
