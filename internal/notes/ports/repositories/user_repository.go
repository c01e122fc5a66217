package repositories

import (
	"context"
	"time"

	"notetaker/internal/notes/domain/entities"
)

// UserRepository работает с учетными записями.
// Find* возвращают entities.ErrUserNotFound, Create и Update - ErrDuplicateUsername.
type UserRepository interface {
	List(ctx context.Context) ([]*entities.User, error)

	FindByID(ctx context.Context, id int) (*entities.User, error)

	FindByUsername(ctx context.Context, username string) (*entities.User, error)

	ExistsByUsername(ctx context.Context, username string) (bool, error)

	Create(ctx context.Context, user *entities.User) error

	Update(ctx context.Context, user *entities.User) (entities.UpdateOutcome, error)

	TouchLastLogin(ctx context.Context, id int, at time.Time) (entities.UpdateOutcome, error)

	Delete(ctx context.Context, id int) error

	Exists(ctx context.Context, id int) (bool, error)
}
