// Package entities описывает доменные сущности сервиса заметок.
package entities

import "time"

// Note представляет заметку. ProjectID == nil означает заметку без проекта.
type Note struct {
	ID         int          `json:"noteId"`
	CreatedAt  time.Time    `json:"createdAt"`
	Text       string       `json:"noteText"`
	ProjectID  *int         `json:"projectId"`
	Attributes []*Attribute `json:"attributes"`
}

// NewNote создает заметку с пустым набором атрибутов.
func NewNote(text string, projectID *int) *Note {
	return &Note{
		Text:       text,
		ProjectID:  projectID,
		Attributes: make([]*Attribute, 0),
	}
}

// AttributeIDs возвращает идентификаторы атрибутов заметки.
func (n *Note) AttributeIDs() []int {
	ids := make([]int, 0, len(n.Attributes))
	for _, a := range n.Attributes {
		ids = append(ids, a.ID)
	}
	return ids
}
