package entities

// MaxProjectNameLength - ограничение длины имени проекта.
const MaxProjectNameLength = 255

// Project группирует заметки.
type Project struct {
	ID    int     `json:"projectId"`
	Name  string  `json:"name"`
	Notes []*Note `json:"notes"`
}

// NewProject создает проект без заметок.
func NewProject(name string) *Project {
	return &Project{Name: name, Notes: make([]*Note, 0)}
}
