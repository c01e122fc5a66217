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
	queryListAttributes  = `SELECT attribute_id, attribute_name FROM note_attributes ORDER BY attribute_id`
	queryGetAttribute    = `SELECT attribute_id, attribute_name FROM note_attributes WHERE attribute_id = $1`
	queryFindAttributes  = `SELECT attribute_id, attribute_name FROM note_attributes WHERE attribute_id = ANY($1) ORDER BY attribute_id`
	queryInsertAttribute = `INSERT INTO note_attributes (attribute_name) VALUES ($1) RETURNING attribute_id`
	queryUpdateAttribute = `UPDATE note_attributes SET attribute_name = $2 WHERE attribute_id = $1`
	queryDeleteAttribute = `DELETE FROM note_attributes WHERE attribute_id = $1`
	queryAttributeExists = `SELECT EXISTS (SELECT 1 FROM note_attributes WHERE attribute_id = $1)`
	repoAttribute        = "attribute"
)

// AttributeRepository реализует repositories.AttributeRepository.
type AttributeRepository struct {
	q Querier
}

// NewAttributeRepository создает репозиторий атрибутов.
func NewAttributeRepository(q Querier) repositories.AttributeRepository {
	return &AttributeRepository{q: q}
}

func (r *AttributeRepository) List(ctx context.Context) ([]*entities.Attribute, error) {
	log := logger.Log(ctx).With(zap.String("repository", repoAttribute), zap.String("method", "List"))

	attrs, err := r.queryAttributes(ctx, queryListAttributes)
	if err != nil {
		log.Error(ctx, "failed to list attributes", zap.Error(err))
		return nil, fmt.Errorf("failed to list attributes: %w", err)
	}
	return attrs, nil
}

func (r *AttributeRepository) GetByID(ctx context.Context, id int) (*entities.Attribute, error) {
	log := logger.Log(ctx).With(zap.String("repository", repoAttribute), zap.String("method", "GetByID"))

	var a entities.Attribute
	if err := r.q.QueryRow(ctx, queryGetAttribute, id).Scan(&a.ID, &a.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "attribute not found", zap.Int("attributeID", id))
			return nil, nil
		}
		log.Error(ctx, "failed to get attribute", zap.Error(err))
		return nil, fmt.Errorf("failed to get attribute: %w", err)
	}
	return &a, nil
}

// FindByIDs возвращает только существующие атрибуты из ids.
func (r *AttributeRepository) FindByIDs(ctx context.Context, ids []int) ([]*entities.Attribute, error) {
	if len(ids) == 0 {
		return make([]*entities.Attribute, 0), nil
	}
	log := logger.Log(ctx).With(zap.String("repository", repoAttribute), zap.String("method", "FindByIDs"))

	attrs, err := r.queryAttributes(ctx, queryFindAttributes, ids)
	if err != nil {
		log.Error(ctx, "failed to find attributes", zap.Error(err))
		return nil, fmt.Errorf("failed to find attributes: %w", err)
	}
	return attrs, nil
}

func (r *AttributeRepository) Create(ctx context.Context, attribute *entities.Attribute) error {
	log := logger.Log(ctx).With(zap.String("repository", repoAttribute), zap.String("method", "Create"))

	if err := r.q.QueryRow(ctx, queryInsertAttribute, attribute.Name).Scan(&attribute.ID); err != nil {
		log.Error(ctx, "failed to create attribute", zap.Error(err))
		return fmt.Errorf("failed to create attribute: %w", err)
	}

	log.Debug(ctx, "attribute created", zap.Int("attributeID", attribute.ID))
	return nil
}

func (r *AttributeRepository) Update(ctx context.Context, attribute *entities.Attribute) (entities.UpdateOutcome, error) {
	log := logger.Log(ctx).With(zap.String("repository", repoAttribute), zap.String("method", "Update"))

	tag, err := r.q.Exec(ctx, queryUpdateAttribute, attribute.ID, attribute.Name)
	outcome, err := resolveUpdate(ctx, tag, err, func(ctx context.Context) (bool, error) {
		return r.Exists(ctx, attribute.ID)
	})
	if err != nil {
		log.Error(ctx, "failed to update attribute", zap.Error(err))
		return outcome, fmt.Errorf("failed to update attribute: %w", err)
	}
	return outcome, nil
}

// Delete удаляет атрибут; связи с заметками удаляются каскадно.
func (r *AttributeRepository) Delete(ctx context.Context, id int) error {
	log := logger.Log(ctx).With(zap.String("repository", repoAttribute), zap.String("method", "Delete"))

	tag, err := r.q.Exec(ctx, queryDeleteAttribute, id)
	if err != nil {
		log.Error(ctx, "failed to delete attribute", zap.Error(err))
		return fmt.Errorf("failed to delete attribute: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *AttributeRepository) Exists(ctx context.Context, id int) (bool, error) {
	exists, err := existsQuery(ctx, r.q, queryAttributeExists, id)
	if err != nil {
		return false, fmt.Errorf("failed to check attribute existence: %w", err)
	}
	return exists, nil
}

func (r *AttributeRepository) queryAttributes(ctx context.Context, query string, args ...any) ([]*entities.Attribute, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attrs := make([]*entities.Attribute, 0)
	for rows.Next() {
		var a entities.Attribute
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, fmt.Errorf("failed to scan attribute: %w", err)
		}
		attrs = append(attrs, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return attrs, nil
}
