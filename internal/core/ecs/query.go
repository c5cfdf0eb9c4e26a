package ecs

import "reflect"

// CacheStats counts QueryCache lookups served from cache and recomputed.
type CacheStats struct {
	Hits   uint64
	Misses uint64
}

type pairKey struct {
	lo, hi int
}

type queryEntry struct {
	stamps [2]uint64
	ids    []EntityID
}

// QueryCache memoizes, per unordered pair of component types, the entities
// that own both. An entry is served while the stamps it was computed against
// still match both stores; otherwise it is rebuilt from the smaller store.
//
// Dropping entries is always safe: Reset only costs recomputation.
type QueryCache struct {
	typeIDs map[reflect.Type]int
	entries map[pairKey]*queryEntry
	stats   CacheStats
}

func NewQueryCache() *QueryCache {
	return &QueryCache{
		typeIDs: make(map[reflect.Type]int, 16),
		entries: make(map[pairKey]*queryEntry, 16),
	}
}

// WithBoth returns the entities owning both T1 and T2. The slice belongs to
// the cache and must not be modified; it is never rewritten in place, so it
// stays a consistent snapshot while the caller mutates the world.
//
// Results follow the packed order of whichever of the two stores was smaller
// when the entry was computed, not necessarily T1's. Callers must not depend
// on the order.
func WithBoth[T1, T2 any](q *QueryCache, m *Manager) []EntityID {
	return q.lookup(m, reflect.TypeFor[T1](), reflect.TypeFor[T2]())
}

// With returns a snapshot of the entities owning T, cached like WithBoth.
func With[T any](q *QueryCache, m *Manager) []EntityID {
	t := reflect.TypeFor[T]()
	return q.lookup(m, t, t)
}

func (q *QueryCache) Stats() CacheStats { return q.stats }

// Len returns the number of cached pairs.
func (q *QueryCache) Len() int { return len(q.entries) }

// Reset drops every cached entry.
func (q *QueryCache) Reset() {
	clear(q.entries)
}

func (q *QueryCache) typeID(t reflect.Type) int {
	id, ok := q.typeIDs[t]
	if !ok {
		id = len(q.typeIDs)
		q.typeIDs[t] = id
	}
	return id
}

func (q *QueryCache) lookup(m *Manager, t1, t2 reflect.Type) []EntityID {
	s1, ok1 := m.Store(t1)
	s2, ok2 := m.Store(t2)
	if !ok1 || !ok2 {
		return nil
	}

	a, b := q.typeID(t1), q.typeID(t2)
	key := pairKey{lo: a, hi: b}
	if a > b {
		key = pairKey{lo: b, hi: a}
		t1, t2 = t2, t1
		s1, s2 = s2, s1
	}

	e, ok := q.entries[key]
	if ok && e.stamps[0] == m.Stamp(t1) && e.stamps[1] == m.Stamp(t2) {
		q.stats.Hits++
		return e.ids
	}
	q.stats.Misses++
	if !ok {
		e = &queryEntry{}
		q.entries[key] = e
	}
	e.ids = join(s1, s2)
	e.stamps = [2]uint64{m.Stamp(t1), m.Stamp(t2)}
	return e.ids
}

// join drives from the smaller store and probes the other one.
func join(s1, s2 AnyStore) []EntityID {
	if s2.Len() < s1.Len() {
		s1, s2 = s2, s1
	}
	src := s1.IDs()
	out := make([]EntityID, 0, len(src))
	if s1 == s2 {
		return append(out, src...)
	}
	for _, id := range src {
		if s2.Has(id) {
			out = append(out, id)
		}
	}
	return out
}
