package featuremodel

import "sort"

// Model is a parsed feature model. It owns the feature tree and a flat
// id index over it. A Model is never modified after parsing.
type Model struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Features    []*Feature `json:"features"`

	index map[int64]*Feature
}

// Lookup returns the feature with the given ID.
func (m *Model) Lookup(id int64) (*Feature, error) {
	f, ok := m.index[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return f, nil
}

// Has reports whether the model contains a feature with the given ID.
func (m *Model) Has(id int64) bool {
	_, ok := m.index[id]
	return ok
}

// Root returns the root feature.
func (m *Model) Root() *Feature {
	return m.index[RootID]
}

// Len returns the number of features in the model.
func (m *Model) Len() int {
	return len(m.index)
}

// All returns every feature ordered by ascending ID.
func (m *Model) All() []*Feature {
	all := make([]*Feature, 0, len(m.index))
	for _, f := range m.index {
		all = append(all, f)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

// Walk visits every feature breadth-first starting at the declared roots.
// Walking stops early when fn returns false.
func (m *Model) Walk(fn func(*Feature) bool) {
	queue := append([]*Feature(nil), m.Features...)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if !fn(current) {
			return
		}
		queue = append(queue, current.Features...)
	}
}

// buildIndex assigns parent IDs and fills the id index in one
// breadth-first pass over the decoded tree. It reports the first duplicate
// ID it meets.
func (m *Model) buildIndex() (dup int64, ok bool) {
	m.index = make(map[int64]*Feature)

	queue := append([]*Feature(nil), m.Features...)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if _, exists := m.index[current.ID]; exists {
			return current.ID, false
		}
		m.index[current.ID] = current

		for _, child := range current.Features {
			child.ParentID = current.ID
			queue = append(queue, child)
		}
	}
	return 0, true
}
