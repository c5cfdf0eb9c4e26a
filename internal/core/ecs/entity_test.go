package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityIDPacking(t *testing.T) {
	id := NewEntityID(7, 3)
	assert.Equal(t, uint32(7), id.Index())
	assert.Equal(t, uint32(3), id.Generation())
	assert.Equal(t, "7:3", id.String())
}

func TestEntityPoolSequentialIDs(t *testing.T) {
	p := NewEntityPool()
	for i := uint32(0); i < 5; i++ {
		id := p.Create()
		assert.Equal(t, i, id.Index())
		assert.Equal(t, uint32(0), id.Generation())
	}
	assert.Equal(t, 5, p.Len())
	assert.Equal(t, 5, p.Slots())
}

func TestEntityPoolReusesSmallestFreeIndex(t *testing.T) {
	p := NewEntityPool()
	ids := make([]EntityID, 6)
	for i := range ids {
		ids[i] = p.Create()
	}
	require.True(t, p.Destroy(ids[4]))
	require.True(t, p.Destroy(ids[1]))
	require.True(t, p.Destroy(ids[3]))

	assert.Equal(t, uint32(1), p.Create().Index())
	assert.Equal(t, uint32(3), p.Create().Index())
	assert.Equal(t, uint32(4), p.Create().Index())
	assert.Equal(t, uint32(6), p.Create().Index(), "fresh slot only after the free list drains")
}

func TestEntityPoolStaleIDsAreDead(t *testing.T) {
	p := NewEntityPool()
	old := p.Create()
	require.True(t, p.Destroy(old))
	assert.False(t, p.Alive(old))
	assert.False(t, p.Destroy(old), "double destroy is ignored")

	reused := p.Create()
	assert.Equal(t, old.Index(), reused.Index())
	assert.Equal(t, old.Generation()+1, reused.Generation())
	assert.True(t, p.Alive(reused))
	assert.False(t, p.Alive(old))
	assert.False(t, p.Alive(NewEntityID(99, 0)))
}

func TestEntityPoolReset(t *testing.T) {
	p := NewEntityPool()
	a := p.Create()
	b := p.Create()
	p.Reset()

	assert.Equal(t, 0, p.Len())
	assert.False(t, p.Alive(a))
	assert.False(t, p.Alive(b))
	c := p.Create()
	assert.Equal(t, uint32(0), c.Index())
	assert.Equal(t, uint32(1), c.Generation())
}
