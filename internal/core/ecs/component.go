package ecs

import "fmt"

// Removable is implemented by all component storages so the ComponentManager
// can drop an entity's data from every storage on destroy and on world reset.
type Removable interface {
	Remove(e Entity)
	Has(e Entity) bool
	Clear()
	Len() int
}

// Storage is a generic typed map store for one component type.
// Entries are heap allocated so pointers handed out stay valid until removal.
type Storage[T any] struct {
	data map[Entity]*T
}

func NewStorage[T any]() *Storage[T] {
	return &Storage[T]{
		data: make(map[Entity]*T, 64),
	}
}

// Add inserts or overwrites the value for e and returns the stored value.
// Overwriting reuses the existing slot, so earlier pointers observe the new value.
func (s *Storage[T]) Add(e Entity, v T) *T {
	if c, ok := s.data[e]; ok {
		*c = v
		return c
	}
	c := new(T)
	*c = v
	s.data[e] = c
	return c
}

// Get returns the component of e. A missing entry is a caller bug and panics.
func (s *Storage[T]) Get(e Entity) *T {
	c, ok := s.data[e]
	if !ok {
		panic(fmt.Sprintf("ecs: entity %d has no %s", e, typeOf[T]()))
	}
	return c
}

// Lookup is the optional form of Get.
func (s *Storage[T]) Lookup(e Entity) (*T, bool) {
	c, ok := s.data[e]
	return c, ok
}

func (s *Storage[T]) Remove(e Entity) {
	delete(s.data, e)
}

func (s *Storage[T]) Has(e Entity) bool {
	_, ok := s.data[e]
	return ok
}

func (s *Storage[T]) Len() int {
	return len(s.data)
}

// Clear drops every entry but keeps the storage registered.
func (s *Storage[T]) Clear() {
	clear(s.data)
}

// Each visits entries in map order. Use the World views for creation order.
func (s *Storage[T]) Each(fn func(Entity, *T)) {
	for e, c := range s.data {
		fn(e, c)
	}
}
