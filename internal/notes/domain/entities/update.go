package entities

// UpdateOutcome - результат сохранения изменений существующей записи.
type UpdateOutcome int

const (
	// UpdateSucceeded - запись обновлена.
	UpdateSucceeded UpdateOutcome = iota
	// UpdateNotFound - запись исчезла между чтением и записью.
	UpdateNotFound
	// UpdateConflict - запись существует, но изменение не применилось.
	UpdateConflict
)

func (o UpdateOutcome) String() string {
	switch o {
	case UpdateSucceeded:
		return "succeeded"
	case UpdateNotFound:
		return "not_found"
	case UpdateConflict:
		return "conflict"
	default:
		return "unknown"
	}
}
