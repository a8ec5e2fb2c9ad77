package ecs

// store is the type-erased view of a component set the world needs to clean
// up destroyed entities.
type store interface {
	has(id entityID) bool
	remove(id entityID) bool
	size() int
}

// sparseSet keeps components densely packed and indexed by slot id.
type sparseSet[T any] struct {
	sparse []int32 // slot-1 -> dense index+1, 0 = absent
	ids    []entityID
	values []*T
}

func (s *sparseSet[T]) has(id entityID) bool {
	i := int(id) - 1
	return i >= 0 && i < len(s.sparse) && s.sparse[i] != 0
}

func (s *sparseSet[T]) get(id entityID) (*T, bool) {
	if !s.has(id) {
		return nil, false
	}
	return s.values[s.sparse[id-1]-1], true
}

func (s *sparseSet[T]) set(id entityID, v *T) {
	if s.has(id) {
		s.values[s.sparse[id-1]-1] = v
		return
	}
	for int(id) > len(s.sparse) {
		s.sparse = append(s.sparse, 0)
	}
	s.ids = append(s.ids, id)
	s.values = append(s.values, v)
	s.sparse[id-1] = int32(len(s.ids))
}

func (s *sparseSet[T]) remove(id entityID) bool {
	if !s.has(id) {
		return false
	}
	idx := s.sparse[id-1] - 1
	last := int32(len(s.ids) - 1)
	moved := s.ids[last]

	s.ids[idx] = moved
	s.values[idx] = s.values[last]
	s.sparse[moved-1] = idx + 1

	s.values[last] = nil
	s.ids = s.ids[:last]
	s.values = s.values[:last]
	s.sparse[id-1] = 0
	return true
}

func (s *sparseSet[T]) size() int {
	return len(s.ids)
}

// snapshot copies the dense ids so callbacks may add, remove or destroy.
func (s *sparseSet[T]) snapshot() []entityID {
	return append([]entityID(nil), s.ids...)
}
