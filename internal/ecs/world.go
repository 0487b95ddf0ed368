package ecs

// Store is an arena of values of one entity kind. Entities keep a stable
// EntityID for their whole life and are iterated in insertion order, so a
// tick over the same store always visits entities in the same order.
//
// Removal only marks a slot dead; Compact reclaims dead slots between ticks
// so that pointers handed out by Get stay valid for the current tick.
type Store[T any] struct {
	nextID EntityID
	slots  []slot[T]
	index  map[EntityID]int
	live   int
}

type slot[T any] struct {
	id    EntityID
	alive bool
	val   T
}

// NewStore creates an empty Store.
func NewStore[T any]() *Store[T] {
	return &Store[T]{
		nextID: 1,
		index:  make(map[EntityID]int),
	}
}

// Add stores v and returns its new ID.
func (s *Store[T]) Add(v T) EntityID {
	id := s.nextID
	s.nextID++
	s.index[id] = len(s.slots)
	s.slots = append(s.slots, slot[T]{id: id, alive: true, val: v})
	s.live++
	return id
}

// Get returns a pointer to the value stored under id, or nil.
func (s *Store[T]) Get(id EntityID) *T {
	i, ok := s.index[id]
	if !ok || !s.slots[i].alive {
		return nil
	}
	return &s.slots[i].val
}

// Alive reports whether id refers to a live entity.
func (s *Store[T]) Alive(id EntityID) bool {
	i, ok := s.index[id]
	return ok && s.slots[i].alive
}

// Remove marks the entity dead. Removing an unknown or dead ID is a no-op.
func (s *Store[T]) Remove(id EntityID) {
	i, ok := s.index[id]
	if !ok || !s.slots[i].alive {
		return
	}
	s.slots[i].alive = false
	s.live--
}

// Len returns the number of live entities.
func (s *Store[T]) Len() int { return s.live }

// Each calls fn for every live entity in insertion order until fn returns
// false. fn may Remove entities (including the current one) and Add new
// ones; entities added during iteration are not visited.
func (s *Store[T]) Each(fn func(id EntityID, v *T) bool) {
	n := len(s.slots)
	for i := 0; i < n; i++ {
		if !s.slots[i].alive {
			continue
		}
		if !fn(s.slots[i].id, &s.slots[i].val) {
			return
		}
	}
}

// IDs returns the live entity IDs in insertion order.
func (s *Store[T]) IDs() []EntityID {
	ids := make([]EntityID, 0, s.live)
	for i := range s.slots {
		if s.slots[i].alive {
			ids = append(ids, s.slots[i].id)
		}
	}
	return ids
}

// Compact drops dead slots. Pointers previously returned by Get or Each are
// invalidated.
func (s *Store[T]) Compact() {
	if s.live == len(s.slots) {
		return
	}
	kept := s.slots[:0]
	for _, sl := range s.slots {
		if sl.alive {
			kept = append(kept, sl)
		}
	}
	var zero slot[T]
	for i := len(kept); i < len(s.slots); i++ {
		s.slots[i] = zero
	}
	s.slots = kept
	clear(s.index)
	for i, sl := range s.slots {
		s.index[sl.id] = i
	}
}
