package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"notetaker/internal/notes/ports/repositories"
	"notetaker/pkg/logger"
)

// Сообщения unit of work.
const (
	errBeginTx    = "failed to begin transaction"
	errCommitTx   = "failed to commit transaction"
	msgRollbackTx = "failed to roll back transaction"
)

// unitOfWork создает репозитории поверх одной транзакции.
type unitOfWork struct {
	projects   repositories.ProjectRepository
	notes      repositories.NoteRepository
	attributes repositories.AttributeRepository
	users      repositories.UserRepository
}

func newUnitOfWork(q Querier) *unitOfWork {
	return &unitOfWork{
		projects:   NewProjectRepository(q),
		notes:      NewNoteRepository(q),
		attributes: NewAttributeRepository(q),
		users:      NewUserRepository(q),
	}
}

func (u *unitOfWork) Projects() repositories.ProjectRepository     { return u.projects }
func (u *unitOfWork) Notes() repositories.NoteRepository           { return u.notes }
func (u *unitOfWork) Attributes() repositories.AttributeRepository { return u.attributes }
func (u *unitOfWork) Users() repositories.UserRepository           { return u.users }

// UnitOfWorkManager открывает транзакцию на каждый вызов Do.
type UnitOfWorkManager struct {
	pool PgxPoolInterface
}

// NewUnitOfWorkManager создает менеджер поверх пула.
func NewUnitOfWorkManager(pool PgxPoolInterface) repositories.UnitOfWorkManager {
	return &UnitOfWorkManager{pool: pool}
}

// Do выполняет fn в транзакции. Транзакция откатывается при ошибке или панике fn.
func (m *UnitOfWorkManager) Do(ctx context.Context, fn func(ctx context.Context, uow repositories.UnitOfWork) error) error {
	log := logger.Log(ctx).With(zap.String("component", "UnitOfWorkManager"))

	tx, err := m.pool.Begin(ctx)
	if err != nil {
		log.Error(ctx, errBeginTx, zap.Error(err))
		return fmt.Errorf("%s: %w", errBeginTx, err)
	}

	finished := false
	defer func() {
		if finished {
			return
		}
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			log.Warn(ctx, msgRollbackTx, zap.Error(rbErr))
		}
	}()

	if err := fn(ctx, newUnitOfWork(tx)); err != nil {
		return err
	}

	finished = true
	if err := tx.Commit(ctx); err != nil {
		if isConcurrencyFailure(err) {
			log.Warn(ctx, errCommitTx, zap.Error(err))
			return fmt.Errorf("%s: %w", errCommitTx, repositories.ErrConflict)
		}
		log.Error(ctx, errCommitTx, zap.Error(err))
		return fmt.Errorf("%s: %w", errCommitTx, err)
	}
	return nil
}
