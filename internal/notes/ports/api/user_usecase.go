package api

import (
	"context"

	"notetaker/internal/notes/app"
	"notetaker/internal/notes/domain/entities"
	"notetaker/internal/notes/domain/services"
)

// UserUseCase определяет регистрацию, вход и администрирование пользователей.
type UserUseCase interface {
	Register(ctx context.Context, in app.Credentials) (*entities.User, error)

	Login(ctx context.Context, in app.Credentials) (*app.LoginResult, error)

	Logout(ctx context.Context, claims *services.TokenClaims) error

	ListUsers(ctx context.Context) ([]*entities.User, error)

	GetUser(ctx context.Context, id int) (*entities.User, error)

	UpdateUser(ctx context.Context, id int, in app.UserUpdate) error

	DeleteUser(ctx context.Context, id int) error
}

// Authenticator проверяет bearer токен для middleware.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*services.TokenClaims, error)
}
