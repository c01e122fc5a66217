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

// ProjectUseCase управляет проектами.
type ProjectUseCase struct {
	uow       repositories.UnitOfWorkManager
	validator *Validator
}

// NewProjectUseCase создает новый экземпляр ProjectUseCase.
func NewProjectUseCase(uow repositories.UnitOfWorkManager, validator *Validator) *ProjectUseCase {
	return &ProjectUseCase{uow: uow, validator: validator}
}

// ListProjects возвращает все проекты вместе с заметками.
func (uc *ProjectUseCase) ListProjects(ctx context.Context) ([]*entities.Project, error) {
	var projects []*entities.Project
	err := uc.uow.Do(ctx, func(ctx context.Context, uow repositories.UnitOfWork) error {
		var err error
		projects, err = uow.Projects().List(ctx)
		if err != nil {
			return err
		}
		return attachProjectNotes(ctx, uow, projects)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// GetProjectNoteCounts считает заметки по проектам, включая заметки без проекта.
func (uc *ProjectUseCase) GetProjectNoteCounts(ctx context.Context) ([]entities.ProjectNoteCount, error) {
	var counts []entities.ProjectNoteCount
	err := uc.uow.Do(ctx, func(ctx context.Context, uow repositories.UnitOfWork) error {
		var err error
		counts, err = uow.Notes().CountByProject(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count project notes: %w", err)
	}
	return counts, nil
}

// GetProject возвращает проект с заметками.
func (uc *ProjectUseCase) GetProject(ctx context.Context, id int) (*entities.Project, error) {
	var project *entities.Project
	err := uc.uow.Do(ctx, func(ctx context.Context, uow repositories.UnitOfWork) error {
		var err error
		project, err = uow.Projects().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if project == nil {
			return ErrNotFound
		}
		return attachProjectNotes(ctx, uow, []*entities.Project{project})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}

// CreateProject создает проект.
func (uc *ProjectUseCase) CreateProject(ctx context.Context, in ProjectInput) (*entities.Project, error) {
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}

	project := entities.NewProject(in.Name)
	err := uc.uow.Do(ctx, func(ctx context.Context, uow repositories.UnitOfWork) error {
		return uow.Projects().Create(ctx, project)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	logger.Log(ctx).Info(ctx, "project created", zap.Int("projectID", project.ID))
	return project, nil
}

// UpdateProject переименовывает проект. Отсутствующий проект дает ErrMissingTarget,
// а исчезнувший во время записи - ErrNotFound.
func (uc *ProjectUseCase) UpdateProject(ctx context.Context, id int, in ProjectInput) error {
	if err := uc.validator.Struct(in); err != nil {
		return err
	}

	err := uc.uow.Do(ctx, func(ctx context.Context, uow repositories.UnitOfWork) error {
		project, err := uow.Projects().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if project == nil {
			return fmt.Errorf("%w: project %d", ErrMissingTarget, id)
		}

		project.Name = in.Name
		outcome, err := uow.Projects().Update(ctx, project)
		if err != nil {
			return err
		}
		return outcomeError(outcome)
	})
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	return nil
}

// DeleteProject удаляет проект; его заметки остаются без проекта.
func (uc *ProjectUseCase) DeleteProject(ctx context.Context, id int) error {
	err := uc.uow.Do(ctx, func(ctx context.Context, uow repositories.UnitOfWork) error {
		return uow.Projects().Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", translateNotFound(err))
	}
	return nil
}

func attachProjectNotes(ctx context.Context, uow repositories.UnitOfWork, projects []*entities.Project) error {
	if len(projects) == 0 {
		return nil
	}

	byID := make(map[int]*entities.Project, len(projects))
	ids := make([]int, 0, len(projects))
	for _, p := range projects {
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}

	notes, err := uow.Notes().ListByProjectIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, n := range notes {
		if n.ProjectID == nil {
			continue
		}
		if p, ok := byID[*n.ProjectID]; ok {
			p.Notes = append(p.Notes, n)
		}
	}
	return nil
}

// outcomeError переводит неуспешный UpdateOutcome в ошибку бизнес-логики.
func outcomeError(outcome entities.UpdateOutcome) error {
	switch outcome {
	case entities.UpdateSucceeded:
		return nil
	case entities.UpdateNotFound:
		return ErrNotFound
	default:
		return ErrConcurrencyConflict
	}
}

func translateNotFound(err error) error {
	if errors.Is(err, repositories.ErrNotFound) || errors.Is(err, entities.ErrUserNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}
