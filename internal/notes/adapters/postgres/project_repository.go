package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"notetaker/internal/notes/domain/entities"
	"notetaker/internal/notes/ports/repositories"
	"notetaker/pkg/logger"
)

const (
	queryListProjects  = `SELECT project_id, name FROM projects ORDER BY project_id`
	queryGetProject    = `SELECT project_id, name FROM projects WHERE project_id = $1`
	queryInsertProject = `INSERT INTO projects (name) VALUES ($1) RETURNING project_id`
	queryUpdateProject = `UPDATE projects SET name = $2 WHERE project_id = $1`
	queryDeleteProject = `DELETE FROM projects WHERE project_id = $1`
	queryProjectExists = `SELECT EXISTS (SELECT 1 FROM projects WHERE project_id = $1)`
	repoProject        = "project"
)

// ProjectRepository реализует repositories.ProjectRepository.
type ProjectRepository struct {
	q Querier
}

// NewProjectRepository создает репозиторий проектов.
func NewProjectRepository(q Querier) repositories.ProjectRepository {
	return &ProjectRepository{q: q}
}

// List возвращает все проекты без заметок.
func (r *ProjectRepository) List(ctx context.Context) ([]*entities.Project, error) {
	log := logger.Log(ctx).With(zap.String("repository", repoProject), zap.String("method", "List"))

	rows, err := r.q.Query(ctx, queryListProjects)
	if err != nil {
		log.Error(ctx, "failed to list projects", zap.Error(err))
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]*entities.Project, 0)
	for rows.Next() {
		p := entities.NewProject("")
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			log.Error(ctx, "failed to scan project", zap.Error(err))
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	log.Debug(ctx, "projects listed", zap.Int("count", len(projects)))
	return projects, nil
}

// GetByID возвращает проект без заметок.
func (r *ProjectRepository) GetByID(ctx context.Context, id int) (*entities.Project, error) {
	log := logger.Log(ctx).With(zap.String("repository", repoProject), zap.String("method", "GetByID"))

	p := entities.NewProject("")
	err := r.q.QueryRow(ctx, queryGetProject, id).Scan(&p.ID, &p.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "project not found", zap.Int("projectID", id))
			return nil, nil
		}
		log.Error(ctx, "failed to get project", zap.Error(err))
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return p, nil
}

// Create сохраняет проект и заполняет его ID.
func (r *ProjectRepository) Create(ctx context.Context, project *entities.Project) error {
	log := logger.Log(ctx).With(zap.String("repository", repoProject), zap.String("method", "Create"))

	if err := r.q.QueryRow(ctx, queryInsertProject, project.Name).Scan(&project.ID); err != nil {
		log.Error(ctx, "failed to create project", zap.Error(err))
		return fmt.Errorf("failed to create project: %w", err)
	}

	log.Debug(ctx, "project created", zap.Int("projectID", project.ID))
	return nil
}

// Update перезаписывает имя проекта.
func (r *ProjectRepository) Update(ctx context.Context, project *entities.Project) (entities.UpdateOutcome, error) {
	log := logger.Log(ctx).With(zap.String("repository", repoProject), zap.String("method", "Update"))

	tag, err := r.q.Exec(ctx, queryUpdateProject, project.ID, project.Name)
	outcome, err := resolveUpdate(ctx, tag, err, func(ctx context.Context) (bool, error) {
		return r.Exists(ctx, project.ID)
	})
	if err != nil {
		log.Error(ctx, "failed to update project", zap.Error(err))
		return outcome, fmt.Errorf("failed to update project: %w", err)
	}

	log.Debug(ctx, "project update finished", zap.Int("projectID", project.ID), zap.Stringer("outcome", outcome))
	return outcome, nil
}

// Delete удаляет проект; заметки остаются с project_id = NULL.
func (r *ProjectRepository) Delete(ctx context.Context, id int) error {
	log := logger.Log(ctx).With(zap.String("repository", repoProject), zap.String("method", "Delete"))

	tag, err := r.q.Exec(ctx, queryDeleteProject, id)
	if err != nil {
		log.Error(ctx, "failed to delete project", zap.Error(err))
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		log.Debug(ctx, "project not found for deletion", zap.Int("projectID", id))
		return repositories.ErrNotFound
	}
	return nil
}

// Exists проверяет наличие проекта.
func (r *ProjectRepository) Exists(ctx context.Context, id int) (bool, error) {
	exists, err := existsQuery(ctx, r.q, queryProjectExists, id)
	if err != nil {
		return false, fmt.Errorf("failed to check project existence: %w", err)
	}
	return exists, nil
}
