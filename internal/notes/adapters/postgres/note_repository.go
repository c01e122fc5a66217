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
	queryListNotes = `SELECT n.note_id, n.created_at, n.note_text, n.project_id
         FROM notes n
         WHERE ($1::int IS NULL OR n.project_id = $1)
           AND (cardinality($2::int[]) = 0 OR EXISTS (
                SELECT 1 FROM note_attribute_mapping m
                WHERE m.note_id = n.note_id AND m.attribute_id = ANY($2)))
         ORDER BY n.note_id`
	queryListNotesByProjects = `SELECT note_id, created_at, note_text, project_id
         FROM notes
         WHERE project_id = ANY($1)
         ORDER BY note_id`
	queryGetNote = `SELECT note_id, created_at, note_text, project_id
         FROM notes
         WHERE note_id = $1`
	queryNoteAttributes = `SELECT m.note_id, a.attribute_id, a.attribute_name
         FROM note_attribute_mapping m
         JOIN note_attributes a ON a.attribute_id = m.attribute_id
         WHERE m.note_id = ANY($1)
         ORDER BY m.note_id, a.attribute_id`
	queryInsertNote       = `INSERT INTO notes (note_text, project_id) VALUES ($1, $2) RETURNING note_id, created_at`
	queryUpdateNoteText   = `UPDATE notes SET note_text = $2 WHERE note_id = $1`
	queryDeleteNote       = `DELETE FROM notes WHERE note_id = $1`
	queryNoteExists       = `SELECT EXISTS (SELECT 1 FROM notes WHERE note_id = $1)`
	queryNoteAttributeIDs = `SELECT attribute_id FROM note_attribute_mapping WHERE note_id = $1 ORDER BY attribute_id`
	queryAddNoteAttrs     = `INSERT INTO note_attribute_mapping (note_id, attribute_id)
         SELECT $1, unnest($2::int[])
         ON CONFLICT DO NOTHING`
	queryRemoveNoteAttrs = `DELETE FROM note_attribute_mapping WHERE note_id = $1 AND attribute_id = ANY($2)`
	queryCountByProject  = `SELECT project_id, COUNT(*)
         FROM notes
         GROUP BY project_id
         ORDER BY project_id NULLS FIRST`
	queryCountByAttribute = `SELECT attribute_id, COUNT(DISTINCT note_id)
         FROM note_attribute_mapping
         GROUP BY attribute_id
         ORDER BY attribute_id`
	queryCountWithoutAttributes = `SELECT COUNT(*)
         FROM notes n
         WHERE NOT EXISTS (SELECT 1 FROM note_attribute_mapping m WHERE m.note_id = n.note_id)`

	repoNote = "note"
)

// NoteRepository реализует repositories.NoteRepository.
type NoteRepository struct {
	q Querier
}

// NewNoteRepository создает репозиторий заметок.
func NewNoteRepository(q Querier) repositories.NoteRepository {
	return &NoteRepository{q: q}
}

// List возвращает заметки с атрибутами, отфильтрованные по проекту и атрибутам.
func (r *NoteRepository) List(ctx context.Context, filter repositories.NoteFilter) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", repoNote), zap.String("method", "List"))
	log.Debug(ctx, "listing notes", zap.Intp("projectID", filter.ProjectID), zap.Ints("attributeIDs", filter.AttributeIDs))

	notes, err := r.queryNotes(ctx, queryListNotes, filter.ProjectID, nonNilIDs(filter.AttributeIDs))
	if err != nil {
		log.Error(ctx, "failed to list notes", zap.Error(err))
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	if err := r.attachAttributes(ctx, notes); err != nil {
		log.Error(ctx, "failed to load note attributes", zap.Error(err))
		return nil, fmt.Errorf("failed to load note attributes: %w", err)
	}
	return notes, nil
}

// ListByProjectIDs возвращает заметки с атрибутами для набора проектов.
func (r *NoteRepository) ListByProjectIDs(ctx context.Context, projectIDs []int) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", repoNote), zap.String("method", "ListByProjectIDs"))

	if len(projectIDs) == 0 {
		return make([]*entities.Note, 0), nil
	}

	notes, err := r.queryNotes(ctx, queryListNotesByProjects, projectIDs)
	if err != nil {
		log.Error(ctx, "failed to list project notes", zap.Error(err))
		return nil, fmt.Errorf("failed to list project notes: %w", err)
	}
	if err := r.attachAttributes(ctx, notes); err != nil {
		log.Error(ctx, "failed to load note attributes", zap.Error(err))
		return nil, fmt.Errorf("failed to load note attributes: %w", err)
	}
	return notes, nil
}

// GetByID возвращает заметку с атрибутами.
func (r *NoteRepository) GetByID(ctx context.Context, id int) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", repoNote), zap.String("method", "GetByID"))

	note := entities.NewNote("", nil)
	err := r.q.QueryRow(ctx, queryGetNote, id).Scan(&note.ID, &note.CreatedAt, &note.Text, &note.ProjectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found", zap.Int("noteID", id))
			return nil, nil
		}
		log.Error(ctx, "failed to get note", zap.Error(err))
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	if err := r.attachAttributes(ctx, []*entities.Note{note}); err != nil {
		log.Error(ctx, "failed to load note attributes", zap.Error(err))
		return nil, fmt.Errorf("failed to load note attributes: %w", err)
	}
	return note, nil
}

// Create сохраняет заметку без атрибутов; связи добавляет AddAttributes.
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) error {
	log := logger.Log(ctx).With(zap.String("repository", repoNote), zap.String("method", "Create"))

	err := r.q.QueryRow(ctx, queryInsertNote, note.Text, note.ProjectID).Scan(&note.ID, &note.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Debug(ctx, "note references missing project", zap.Intp("projectID", note.ProjectID))
			return fmt.Errorf("failed to create note: %w", repositories.ErrInvalidReference)
		}
		log.Error(ctx, "failed to create note", zap.Error(err))
		return fmt.Errorf("failed to create note: %w", err)
	}

	log.Debug(ctx, "note created", zap.Int("noteID", note.ID))
	return nil
}

// UpdateText перезаписывает текст заметки.
func (r *NoteRepository) UpdateText(ctx context.Context, id int, text string) (entities.UpdateOutcome, error) {
	log := logger.Log(ctx).With(zap.String("repository", repoNote), zap.String("method", "UpdateText"))

	tag, err := r.q.Exec(ctx, queryUpdateNoteText, id, text)
	outcome, err := resolveUpdate(ctx, tag, err, func(ctx context.Context) (bool, error) {
		return r.Exists(ctx, id)
	})
	if err != nil {
		log.Error(ctx, "failed to update note", zap.Error(err))
		return outcome, fmt.Errorf("failed to update note: %w", err)
	}

	log.Debug(ctx, "note update finished", zap.Int("noteID", id), zap.Stringer("outcome", outcome))
	return outcome, nil
}

// Delete удаляет заметку вместе с ее строками в таблице связей.
func (r *NoteRepository) Delete(ctx context.Context, id int) error {
	log := logger.Log(ctx).With(zap.String("repository", repoNote), zap.String("method", "Delete"))

	tag, err := r.q.Exec(ctx, queryDeleteNote, id)
	if err != nil {
		log.Error(ctx, "failed to delete note", zap.Error(err))
		return fmt.Errorf("failed to delete note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		log.Debug(ctx, "note not found for deletion", zap.Int("noteID", id))
		return repositories.ErrNotFound
	}
	return nil
}

// Exists проверяет наличие заметки.
func (r *NoteRepository) Exists(ctx context.Context, id int) (bool, error) {
	exists, err := existsQuery(ctx, r.q, queryNoteExists, id)
	if err != nil {
		return false, fmt.Errorf("failed to check note existence: %w", err)
	}
	return exists, nil
}

// AttributeIDs возвращает текущие атрибуты заметки.
func (r *NoteRepository) AttributeIDs(ctx context.Context, noteID int) ([]int, error) {
	log := logger.Log(ctx).With(zap.String("repository", repoNote), zap.String("method", "AttributeIDs"))

	rows, err := r.q.Query(ctx, queryNoteAttributeIDs, noteID)
	if err != nil {
		log.Error(ctx, "failed to query note attribute ids", zap.Error(err))
		return nil, fmt.Errorf("failed to query note attribute ids: %w", err)
	}
	defer rows.Close()

	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan attribute id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return ids, nil
}

// AddAttributes добавляет связи; уже существующие пары пропускаются.
func (r *NoteRepository) AddAttributes(ctx context.Context, noteID int, attributeIDs []int) error {
	if len(attributeIDs) == 0 {
		return nil
	}
	log := logger.Log(ctx).With(zap.String("repository", repoNote), zap.String("method", "AddAttributes"))

	if _, err := r.q.Exec(ctx, queryAddNoteAttrs, noteID, attributeIDs); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("failed to add note attributes: %w", repositories.ErrInvalidReference)
		}
		log.Error(ctx, "failed to add note attributes", zap.Error(err))
		return fmt.Errorf("failed to add note attributes: %w", err)
	}

	log.Debug(ctx, "note attributes added", zap.Int("noteID", noteID), zap.Ints("attributeIDs", attributeIDs))
	return nil
}

// RemoveAttributes удаляет связи заметки с указанными атрибутами.
func (r *NoteRepository) RemoveAttributes(ctx context.Context, noteID int, attributeIDs []int) error {
	if len(attributeIDs) == 0 {
		return nil
	}
	log := logger.Log(ctx).With(zap.String("repository", repoNote), zap.String("method", "RemoveAttributes"))

	if _, err := r.q.Exec(ctx, queryRemoveNoteAttrs, noteID, attributeIDs); err != nil {
		log.Error(ctx, "failed to remove note attributes", zap.Error(err))
		return fmt.Errorf("failed to remove note attributes: %w", err)
	}

	log.Debug(ctx, "note attributes removed", zap.Int("noteID", noteID), zap.Ints("attributeIDs", attributeIDs))
	return nil
}

// CountByProject считает заметки по проектам, включая группу без проекта.
func (r *NoteRepository) CountByProject(ctx context.Context) ([]entities.ProjectNoteCount, error) {
	log := logger.Log(ctx).With(zap.String("repository", repoNote), zap.String("method", "CountByProject"))

	rows, err := r.q.Query(ctx, queryCountByProject)
	if err != nil {
		log.Error(ctx, "failed to count notes by project", zap.Error(err))
		return nil, fmt.Errorf("failed to count notes by project: %w", err)
	}
	defer rows.Close()

	counts := make([]entities.ProjectNoteCount, 0)
	for rows.Next() {
		var c entities.ProjectNoteCount
		if err := rows.Scan(&c.ProjectID, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan project note count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return counts, nil
}

// CountByAttribute считает различные заметки для каждого используемого атрибута.
func (r *NoteRepository) CountByAttribute(ctx context.Context) ([]entities.AttributeNoteCount, error) {
	log := logger.Log(ctx).With(zap.String("repository", repoNote), zap.String("method", "CountByAttribute"))

	rows, err := r.q.Query(ctx, queryCountByAttribute)
	if err != nil {
		log.Error(ctx, "failed to count notes by attribute", zap.Error(err))
		return nil, fmt.Errorf("failed to count notes by attribute: %w", err)
	}
	defer rows.Close()

	counts := make([]entities.AttributeNoteCount, 0)
	for rows.Next() {
		var (
			attributeID int
			count       int
		)
		if err := rows.Scan(&attributeID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan attribute note count: %w", err)
		}
		counts = append(counts, entities.AttributeNoteCount{AttributeIDs: []int{attributeID}, Count: count})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return counts, nil
}

// CountWithoutAttributes считает заметки без атрибутов.
func (r *NoteRepository) CountWithoutAttributes(ctx context.Context) (int, error) {
	var count int
	if err := r.q.QueryRow(ctx, queryCountWithoutAttributes).Scan(&count); err != nil {
		logger.Log(ctx).Error(ctx, "failed to count notes without attributes", zap.Error(err))
		return 0, fmt.Errorf("failed to count notes without attributes: %w", err)
	}
	return count, nil
}

func (r *NoteRepository) queryNotes(ctx context.Context, query string, args ...any) ([]*entities.Note, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]*entities.Note, 0)
	for rows.Next() {
		note := entities.NewNote("", nil)
		if err := rows.Scan(&note.ID, &note.CreatedAt, &note.Text, &note.ProjectID); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return notes, nil
}

// attachAttributes загружает атрибуты всех notes одним запросом.
func (r *NoteRepository) attachAttributes(ctx context.Context, notes []*entities.Note) error {
	if len(notes) == 0 {
		return nil
	}

	byID := make(map[int]*entities.Note, len(notes))
	ids := make([]int, 0, len(notes))
	for _, n := range notes {
		byID[n.ID] = n
		ids = append(ids, n.ID)
	}

	rows, err := r.q.Query(ctx, queryNoteAttributes, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			noteID int
			attr   entities.Attribute
		)
		if err := rows.Scan(&noteID, &attr.ID, &attr.Name); err != nil {
			return fmt.Errorf("failed to scan note attribute: %w", err)
		}
		if n, ok := byID[noteID]; ok {
			n.Attributes = append(n.Attributes, &attr)
		}
	}
	return rows.Err()
}
