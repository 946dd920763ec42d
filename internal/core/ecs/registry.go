package ecs

import (
	"fmt"
	"reflect"
)

// ComponentManager owns one Storage per registered component type.
// Storages are keyed by reflect.Type and reached through the generic helpers
// below, so value access stays fully typed.
type ComponentManager struct {
	stores map[reflect.Type]Removable
	order  []Removable
}

func NewComponentManager() *ComponentManager {
	return &ComponentManager{
		stores: make(map[reflect.Type]Removable, 32),
		order:  make([]Removable, 0, 32),
	}
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Register creates the storage for T if it does not exist yet. Re-registering
// returns the existing storage.
func Register[T any](m *ComponentManager) *Storage[T] {
	t := typeOf[T]()
	if s, ok := m.stores[t]; ok {
		return s.(*Storage[T])
	}
	s := NewStorage[T]()
	m.stores[t] = s
	m.order = append(m.order, s)
	return s
}

// StorageOf returns the storage for T. Asking for a type that was never
// registered is a programmer error and panics.
func StorageOf[T any](m *ComponentManager) *Storage[T] {
	s, ok := lookupStorage[T](m)
	if !ok {
		panic(fmt.Sprintf("ecs: component %s is not registered", typeOf[T]()))
	}
	return s
}

func lookupStorage[T any](m *ComponentManager) (*Storage[T], bool) {
	s, ok := m.stores[typeOf[T]()]
	if !ok {
		return nil, false
	}
	return s.(*Storage[T]), true
}

// Registered reports whether T has a storage.
func Registered[T any](m *ComponentManager) bool {
	_, ok := m.stores[typeOf[T]()]
	return ok
}

// RemoveAll clears the given entity from every registered storage.
func (m *ComponentManager) RemoveAll(e Entity) {
	for _, s := range m.order {
		s.Remove(e)
	}
}

// ClearAll empties every storage without unregistering any type.
func (m *ComponentManager) ClearAll() {
	for _, s := range m.order {
		s.Clear()
	}
}
