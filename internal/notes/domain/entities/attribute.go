package entities

// Attribute - метка, которую можно назначить нескольким заметкам.
type Attribute struct {
	ID   int    `json:"attributeId"`
	Name string `json:"attributeName"`
}

// UniqueIDs убирает дубликаты, сохраняя порядок первого вхождения.
func UniqueIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// DiffIDs возвращает идентификаторы, которые нужно добавить и удалить,
// чтобы множество current стало равным target.
func DiffIDs(current, target []int) (toAdd, toRemove []int) {
	cur := make(map[int]struct{}, len(current))
	for _, id := range current {
		cur[id] = struct{}{}
	}
	tgt := make(map[int]struct{}, len(target))
	for _, id := range target {
		tgt[id] = struct{}{}
		if _, ok := cur[id]; !ok {
			toAdd = append(toAdd, id)
		}
	}
	for _, id := range current {
		if _, ok := tgt[id]; !ok {
			toRemove = append(toRemove, id)
		}
	}
	return UniqueIDs(toAdd), UniqueIDs(toRemove)
}
