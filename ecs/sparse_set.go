package ecs

// store is the type-erased view of a SparseSet used by the world for
// removal and queries.
type store interface {
	has(e Entity) bool
	remove(e Entity)
	entities() []Entity
}

// SparseSet is a cache-friendly storage for one component kind keyed by
// entity id. Values are kept densely packed; removal swaps the last element
// into the hole.
type SparseSet[T any] struct {
	denseEntities []Entity
	denseValues   []*T
	sparse        []int
}

func (s *SparseSet[T]) index(e Entity) int {
	id := int(e.id())
	if id <= 0 || id-1 >= len(s.sparse) {
		return -1
	}
	idx := s.sparse[id-1]
	if idx < 0 || idx >= len(s.denseEntities) || s.denseEntities[idx] != e {
		return -1
	}
	return idx
}

func (s *SparseSet[T]) has(e Entity) bool {
	return s.index(e) >= 0
}

// Get returns the component for e, or nil.
func (s *SparseSet[T]) Get(e Entity) *T {
	idx := s.index(e)
	if idx < 0 {
		return nil
	}
	return s.denseValues[idx]
}

// Set inserts or replaces the component for e.
func (s *SparseSet[T]) Set(e Entity, v *T) {
	id := int(e.id())
	if id <= 0 {
		return
	}
	for id-1 >= len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if idx := s.sparse[id-1]; idx >= 0 && idx < len(s.denseEntities) && s.denseEntities[idx].id() == e.id() {
		s.denseEntities[idx] = e
		s.denseValues[idx] = v
		return
	}
	s.denseEntities = append(s.denseEntities, e)
	s.denseValues = append(s.denseValues, v)
	s.sparse[id-1] = len(s.denseEntities) - 1
}

func (s *SparseSet[T]) remove(e Entity) {
	idx := s.index(e)
	if idx < 0 {
		return
	}
	last := len(s.denseEntities) - 1
	moved := s.denseEntities[last]

	s.denseEntities[idx] = moved
	s.denseValues[idx] = s.denseValues[last]
	s.sparse[moved.id()-1] = idx

	s.denseEntities = s.denseEntities[:last]
	s.denseValues[last] = nil
	s.denseValues = s.denseValues[:last]
	s.sparse[e.id()-1] = -1
}

func (s *SparseSet[T]) entities() []Entity {
	return s.denseEntities
}

// Len is the number of stored components, dead-but-unflushed included.
func (s *SparseSet[T]) Len() int {
	return len(s.denseEntities)
}
