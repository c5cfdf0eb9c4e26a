package ecs

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryMoveScenario(t *testing.T) {
	m := NewManager()
	q := NewQueryCache()
	e := m.CreateEntity()
	Add(m, e, position{0, 0})
	Add(m, e, velocity{1, 0})

	for _, id := range WithBoth[position, velocity](q, m) {
		p, v, ok := Pair[position, velocity](m, id)
		require.True(t, ok)
		p.X += v.X
		p.Y += v.Y
	}
	got, _ := Get[position](m, e)
	assert.Equal(t, position{1, 0}, got)
}

func TestQueryTagScenario(t *testing.T) {
	m := NewManager()
	q := NewQueryCache()
	e0, e1 := m.CreateEntity(), m.CreateEntity()
	Add(m, e0, tag{})
	Add(m, e0, position{})
	Add(m, e1, position{})

	assert.Equal(t, []EntityID{e0}, WithBoth[tag, position](q, m))
}

func TestQueryUnregisteredTypeIsEmpty(t *testing.T) {
	m := NewManager()
	q := NewQueryCache()
	Add(m, m.CreateEntity(), position{})
	assert.Empty(t, WithBoth[position, velocity](q, m))
}

func TestQueryOrderOfTypesIsIrrelevant(t *testing.T) {
	m := NewManager()
	q := NewQueryCache()
	for i := 0; i < 4; i++ {
		e := m.CreateEntity()
		Add(m, e, position{})
		if i%2 == 0 {
			Add(m, e, velocity{})
		}
	}
	a := WithBoth[position, velocity](q, m)
	b := WithBoth[velocity, position](q, m)
	assert.ElementsMatch(t, a, b)
	assert.Equal(t, 1, q.Len(), "both orders share one entry")
	assert.Equal(t, CacheStats{Hits: 1, Misses: 1}, q.Stats())
}

func TestQueryCacheHitUntilShapeChanges(t *testing.T) {
	m := NewManager()
	q := NewQueryCache()
	e := m.CreateEntity()
	Add(m, e, position{})
	Add(m, e, velocity{})

	WithBoth[position, velocity](q, m)
	WithBoth[position, velocity](q, m)
	assert.Equal(t, uint64(1), q.Stats().Hits)

	p, _ := GetMut[position](m, e)
	p.X = 10
	WithBoth[position, velocity](q, m)
	assert.Equal(t, uint64(2), q.Stats().Hits, "value writes keep the entry")

	f := m.CreateEntity()
	Add(m, f, position{})
	Add(m, f, velocity{})
	ids := WithBoth[position, velocity](q, m)
	assert.Equal(t, uint64(2), q.Stats().Misses)
	assert.ElementsMatch(t, []EntityID{e, f}, ids)
}

func TestQuerySnapshotSurvivesMutation(t *testing.T) {
	m := NewManager()
	q := NewQueryCache()
	var all []EntityID
	for i := 0; i < 3; i++ {
		e := m.CreateEntity()
		Add(m, e, position{})
		Add(m, e, velocity{})
		all = append(all, e)
	}

	snap := WithBoth[position, velocity](q, m)
	for _, id := range snap {
		m.RemoveEntity(id)
	}
	assert.ElementsMatch(t, all, snap, "snapshot is not rewritten")
	assert.Empty(t, WithBoth[position, velocity](q, m))
}

func TestQueryWithSingleType(t *testing.T) {
	m := NewManager()
	q := NewQueryCache()
	a, b := m.CreateEntity(), m.CreateEntity()
	Add(m, a, tag{})
	Add(m, b, tag{})

	ids := With[tag](q, m)
	assert.ElementsMatch(t, []EntityID{a, b}, ids)
	Remove[tag](m, a)
	assert.ElementsMatch(t, []EntityID{a, b}, ids)
	assert.Equal(t, []EntityID{b}, With[tag](q, m))
}

func TestQueryResetOnlyCostsRecompute(t *testing.T) {
	m := NewManager()
	q := NewQueryCache()
	e := m.CreateEntity()
	Add(m, e, position{})
	Add(m, e, velocity{})

	before := WithBoth[position, velocity](q, m)
	q.Reset()
	assert.Equal(t, 0, q.Len())
	assert.Equal(t, before, WithBoth[position, velocity](q, m))
}

// Random add/remove/destroy sequences must never leave the cache serving a
// result that differs from a brute-force scan.
func TestQueryCoherence(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	m := NewManager()
	q := NewQueryCache()
	var live []EntityID

	for step := 0; step < 2000; step++ {
		switch op := rng.Intn(6); {
		case op == 0 || len(live) == 0:
			live = append(live, m.CreateEntity())
		case op == 1:
			i := rng.Intn(len(live))
			m.RemoveEntity(live[i])
			live = append(live[:i], live[i+1:]...)
		case op == 2:
			Set(m, live[rng.Intn(len(live))], position{X: step})
		case op == 3:
			Set(m, live[rng.Intn(len(live))], velocity{Y: step})
		case op == 4:
			Remove[position](m, live[rng.Intn(len(live))])
		default:
			Remove[velocity](m, live[rng.Intn(len(live))])
		}

		var want []EntityID
		for _, id := range live {
			if Has[position](m, id) && Has[velocity](m, id) {
				want = append(want, id)
			}
		}
		got := WithBoth[position, velocity](q, m)
		if len(want) == 0 {
			require.Empty(t, got, "step %d", step)
			continue
		}
		require.ElementsMatch(t, want, got, "step %d", step)
	}
	assert.NotZero(t, q.Stats().Hits)
}

func TestQueryFreshAfterDirectStoreChanges(t *testing.T) {
	m := NewManager()
	q := NewQueryCache()
	a, b := m.CreateEntity(), m.CreateEntity()
	Add(m, a, position{})
	Add(m, a, velocity{})
	Add(m, b, position{})
	require.Equal(t, []EntityID{a}, WithBoth[position, velocity](q, m))

	vel, ok := StoreOf[velocity](m)
	require.True(t, ok)
	vel.Add(b, velocity{X: 1})
	assert.ElementsMatch(t, []EntityID{a, b}, WithBoth[position, velocity](q, m))

	vel.Remove(a)
	assert.Equal(t, []EntityID{b}, WithBoth[position, velocity](q, m))

	Register[position](m).Clear()
	assert.Empty(t, WithBoth[position, velocity](q, m))
	assert.Equal(t, uint64(4), q.Stats().Misses)
}
