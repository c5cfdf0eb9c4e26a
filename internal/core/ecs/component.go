package ecs

import (
	"fmt"
	"reflect"
)

// AnyStore is implemented by all component stores so the Manager can handle
// every store uniformly: fan-out removal on destroy, membership probes for
// joins, and reporting.
type AnyStore interface {
	Type() reflect.Type
	Has(id EntityID) bool
	Remove(id EntityID) bool
	Len() int
	IDs() []EntityID
	Clear()
	Stamp() uint64
}

// Store is packed storage for one component type. components[i] and ids[i]
// always describe the same entity and index maps each id to its i.
//
// Every structural change (add, remove, clear) draws a new stamp from clock.
// Stores owned by a Manager share its clock, so stamps are unique across types.
type Store[T any] struct {
	components []T
	ids        []EntityID
	index      map[EntityID]int
	clock      *uint64
	stamp      uint64
}

func NewStore[T any]() *Store[T] {
	return newStore[T](new(uint64))
}

func newStore[T any](clock *uint64) *Store[T] {
	s := &Store[T]{
		components: make([]T, 0, 64),
		ids:        make([]EntityID, 0, 64),
		index:      make(map[EntityID]int, 64),
		clock:      clock,
	}
	s.bump()
	return s
}

// Stamp returns the clock value of the store's last structural change.
func (s *Store[T]) Stamp() uint64 {
	return s.stamp
}

func (s *Store[T]) bump() {
	*s.clock++
	s.stamp = *s.clock
}

func (s *Store[T]) Type() reflect.Type {
	return reflect.TypeFor[T]()
}

// Add appends c for id. Adding to an id that already has a component of this
// type is a programming error and panics; use Set to overwrite.
func (s *Store[T]) Add(id EntityID, c T) {
	if _, ok := s.index[id]; ok {
		panic(fmt.Sprintf("ecs: entity %s already has a %s component", id, s.Type()))
	}
	s.components = append(s.components, c)
	s.ids = append(s.ids, id)
	s.index[id] = len(s.ids) - 1
	s.bump()
}

// Set overwrites id's component in place, or adds it. It reports whether the
// store changed shape.
func (s *Store[T]) Set(id EntityID, c T) bool {
	if i, ok := s.index[id]; ok {
		s.components[i] = c
		return false
	}
	s.Add(id, c)
	return true
}

// Remove swap-removes id's component. The entity that was in the last slot is
// moved into the hole and its index entry rewritten.
func (s *Store[T]) Remove(id EntityID) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	last := len(s.ids) - 1
	if i != last {
		moved := s.ids[last]
		s.components[i] = s.components[last]
		s.ids[i] = moved
		s.index[moved] = i
	}
	var zero T
	s.components[last] = zero
	s.components = s.components[:last]
	s.ids = s.ids[:last]
	delete(s.index, id)
	s.bump()
	return true
}

func (s *Store[T]) Get(id EntityID) (T, bool) {
	i, ok := s.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return s.components[i], true
}

// GetMut returns a pointer into the packed slice. It is invalidated by the next
// Add or Remove on this store.
func (s *Store[T]) GetMut(id EntityID) (*T, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return &s.components[i], true
}

func (s *Store[T]) Has(id EntityID) bool {
	_, ok := s.index[id]
	return ok
}

func (s *Store[T]) Len() int {
	return len(s.ids)
}

// All returns the packed components, index aligned with IDs.
func (s *Store[T]) All() []T {
	return s.components
}

// IDs returns the packed entity ids, index aligned with All.
func (s *Store[T]) IDs() []EntityID {
	return s.ids
}

func (s *Store[T]) Clear() {
	if len(s.ids) == 0 {
		return
	}
	clear(s.components)
	s.components = s.components[:0]
	s.ids = s.ids[:0]
	clear(s.index)
	s.bump()
}

// Each calls fn for every component in packed order. fn must not add or
// remove components of this type.
func (s *Store[T]) Each(fn func(EntityID, *T)) {
	for i := range s.components {
		fn(s.ids[i], &s.components[i])
	}
}
