package repositories

import "context"

// UnitOfWork дает репозитории, привязанные к одной транзакции запроса.
type UnitOfWork interface {
	Projects() ProjectRepository
	Notes() NoteRepository
	Attributes() AttributeRepository
	Users() UserRepository
}

// UnitOfWorkManager открывает unit of work, передает его в fn и
// фиксирует изменения, если fn вернула nil; иначе откатывает их.
type UnitOfWorkManager interface {
	Do(ctx context.Context, fn func(ctx context.Context, uow UnitOfWork) error) error
}
