package entities

// ProjectNoteCount - число заметок в проекте; ProjectID == nil для заметок без проекта.
type ProjectNoteCount struct {
	ProjectID *int `json:"projectId"`
	Count     int  `json:"count"`
}

// AttributeNoteCount - число заметок с атрибутом. Пустой AttributeIDs
// обозначает заметки без атрибутов.
type AttributeNoteCount struct {
	AttributeIDs []int `json:"attributeIds"`
	Count        int   `json:"count"`
}
