package ecs

import (
	"fmt"
	"reflect"
)

// Manager is the component manager registry. It owns the entity pool and one
// type-erased store per registered component type.
//
// Its stores stamp themselves from the shared sequence seq on every register,
// add, remove and clear, including changes made directly through a *Store, so
// no two shape changes share a stamp even inside a single system update. The
// tick counter is separate and advances once per scheduler tick.
type Manager struct {
	pool    *EntityPool
	stores  map[reflect.Type]AnyStore
	order   []reflect.Type
	seq     uint64
	frame   uint64
	pending []EntityID
}

func NewManager() *Manager {
	return &Manager{
		pool:    NewEntityPool(),
		stores:  make(map[reflect.Type]AnyStore, 16),
		order:   make([]reflect.Type, 0, 16),
		pending: make([]EntityID, 0, 64),
	}
}

func (m *Manager) Pool() *EntityPool { return m.pool }

func (m *Manager) CreateEntity() EntityID {
	return m.pool.Create()
}

func (m *Manager) Alive(id EntityID) bool {
	return m.pool.Alive(id)
}

// RemoveEntity clears id from every registered store, then frees the id.
// Dead and unknown ids are ignored.
func (m *Manager) RemoveEntity(id EntityID) {
	if !m.pool.Alive(id) {
		return
	}
	for _, t := range m.order {
		m.stores[t].Remove(id)
	}
	m.pool.Destroy(id)
}

// MarkForRemoval queues id for FlushRemovals. Systems use it to destroy
// entities they are still iterating over.
func (m *Manager) MarkForRemoval(id EntityID) {
	m.pending = append(m.pending, id)
}

// FlushRemovals removes every queued entity.
func (m *Manager) FlushRemovals() int {
	n := 0
	for _, id := range m.pending {
		if m.pool.Alive(id) {
			m.RemoveEntity(id)
			n++
		}
	}
	m.pending = m.pending[:0]
	return n
}

// Frame returns the tick counter.
func (m *Manager) Frame() uint64 { return m.frame }

// AdvanceFrame moves the tick counter forward by one.
func (m *Manager) AdvanceFrame() uint64 {
	m.frame++
	return m.frame
}

// Types returns the registered component types in registration order.
func (m *Manager) Types() []reflect.Type {
	out := make([]reflect.Type, len(m.order))
	copy(out, m.order)
	return out
}

// Store returns the type-erased store for t.
func (m *Manager) Store(t reflect.Type) (AnyStore, bool) {
	s, ok := m.stores[t]
	return s, ok
}

// Stamp returns the last structural change stamp for t, 0 if unregistered.
func (m *Manager) Stamp(t reflect.Type) uint64 {
	s, ok := m.stores[t]
	if !ok {
		return 0
	}
	return s.Stamp()
}

// Register creates the store for T if it does not exist yet. Registering an
// existing type returns the store already in place.
func Register[T any](m *Manager) *Store[T] {
	t := reflect.TypeFor[T]()
	if s, ok := m.stores[t]; ok {
		return mustStore[T](s)
	}
	s := newStore[T](&m.seq)
	m.stores[t] = s
	m.order = append(m.order, t)
	return s
}

// StoreOf returns the typed store for T without registering it.
func StoreOf[T any](m *Manager) (*Store[T], bool) {
	s, ok := m.stores[reflect.TypeFor[T]()]
	if !ok {
		return nil, false
	}
	return mustStore[T](s), true
}

// Add attaches c to id, registering T on first use. It returns false and
// stores nothing when id is not alive.
func Add[T any](m *Manager, id EntityID, c T) bool {
	if !m.pool.Alive(id) {
		return false
	}
	Register[T](m).Add(id, c)
	return true
}

// Set overwrites id's T or attaches it. Only an attach counts as a structural
// change.
func Set[T any](m *Manager, id EntityID, c T) bool {
	if !m.pool.Alive(id) {
		return false
	}
	Register[T](m).Set(id, c)
	return true
}

func Remove[T any](m *Manager, id EntityID) bool {
	s, ok := StoreOf[T](m)
	return ok && s.Remove(id)
}

func Get[T any](m *Manager, id EntityID) (T, bool) {
	s, ok := StoreOf[T](m)
	if !ok {
		var zero T
		return zero, false
	}
	return s.Get(id)
}

func GetMut[T any](m *Manager, id EntityID) (*T, bool) {
	s, ok := StoreOf[T](m)
	if !ok {
		return nil, false
	}
	return s.GetMut(id)
}

func Has[T any](m *Manager, id EntityID) bool {
	s, ok := StoreOf[T](m)
	return ok && s.Has(id)
}

// All returns T's packed components, nil when T is unregistered.
func All[T any](m *Manager) []T {
	s, ok := StoreOf[T](m)
	if !ok {
		return nil
	}
	return s.All()
}

// IDs returns T's packed entity ids, nil when T is unregistered.
func IDs[T any](m *Manager) []EntityID {
	s, ok := StoreOf[T](m)
	if !ok {
		return nil
	}
	return s.IDs()
}

// First returns the first entity owning T, for singletons such as the arena.
func First[T any](m *Manager) (EntityID, *T, bool) {
	s, ok := StoreOf[T](m)
	if !ok || s.Len() == 0 {
		return 0, nil, false
	}
	return s.ids[0], &s.components[0], true
}

// Pair returns mutable views of two different component types on id. Asking
// for the same type twice panics.
func Pair[T1, T2 any](m *Manager, id EntityID) (*T1, *T2, bool) {
	t1, t2 := reflect.TypeFor[T1](), reflect.TypeFor[T2]()
	if t1 == t2 {
		panic(fmt.Sprintf("ecs: Pair called with the same component type %s twice", t1))
	}
	a, ok := GetMut[T1](m, id)
	if !ok {
		return nil, nil, false
	}
	b, ok := GetMut[T2](m, id)
	if !ok {
		return nil, nil, false
	}
	return a, b, true
}

// MutationFrame returns the stamp of T's last structural change, 0 if T is
// unregistered.
func MutationFrame[T any](m *Manager) uint64 {
	return m.Stamp(reflect.TypeFor[T]())
}

func mustStore[T any](s AnyStore) *Store[T] {
	typed, ok := s.(*Store[T])
	if !ok {
		panic(fmt.Sprintf("ecs: store for %s has type %T", reflect.TypeFor[T](), s))
	}
	return typed
}
