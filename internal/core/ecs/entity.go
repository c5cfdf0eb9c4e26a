package ecs

import (
	"container/heap"
	"fmt"
)

// EntityID encodes a 32-bit slot index in the lower bits and a 32-bit generation
// in the upper bits. Generation increments on destroy to invalidate stale refs.
type EntityID uint64

func NewEntityID(index uint32, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }

func (id EntityID) String() string {
	return fmt.Sprintf("%d:%d", id.Index(), id.Generation())
}

// EntityPool manages entity allocation with per-slot liveness, generations and
// a free list. Released slots are handed out again smallest index first, before
// any fresh slot is appended.
type EntityPool struct {
	alive       []bool
	generations []uint32
	freeList    indexHeap
	live        int
}

func NewEntityPool() *EntityPool {
	return &EntityPool{
		alive:       make([]bool, 0, 1024),
		generations: make([]uint32, 0, 1024),
		freeList:    make(indexHeap, 0, 256),
	}
}

func (p *EntityPool) Create() EntityID {
	p.live++
	if p.freeList.Len() > 0 {
		idx := heap.Pop(&p.freeList).(uint32)
		p.alive[idx] = true
		return NewEntityID(idx, p.generations[idx])
	}
	idx := uint32(len(p.alive))
	p.alive = append(p.alive, true)
	p.generations = append(p.generations, 0)
	return NewEntityID(idx, 0)
}

// Alive reports whether id refers to a live slot of the same generation.
// Out-of-range and stale ids are simply not alive.
func (p *EntityPool) Alive(id EntityID) bool {
	idx := id.Index()
	if int(idx) >= len(p.alive) {
		return false
	}
	return p.alive[idx] && p.generations[idx] == id.Generation()
}

// Destroy releases id. Unknown, dead and stale ids are ignored.
func (p *EntityPool) Destroy(id EntityID) bool {
	if !p.Alive(id) {
		return false
	}
	idx := id.Index()
	p.alive[idx] = false
	p.generations[idx]++
	heap.Push(&p.freeList, idx)
	p.live--
	return true
}

// Len returns the number of live entities.
func (p *EntityPool) Len() int { return p.live }

// Slots returns the number of slots ever allocated. Every live index is below it.
func (p *EntityPool) Slots() int { return len(p.alive) }

// Reset forgets every entity. Generations are kept so old handles stay dead.
func (p *EntityPool) Reset() {
	p.freeList = p.freeList[:0]
	for i := range p.alive {
		if p.alive[i] {
			p.alive[i] = false
			p.generations[i]++
		}
		p.freeList = append(p.freeList, uint32(i))
	}
	heap.Init(&p.freeList)
	p.live = 0
}

// indexHeap is a min-heap of free slot indices.
type indexHeap []uint32

func (h indexHeap) Len() int           { return len(h) }
func (h indexHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h indexHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *indexHeap) Push(x any) { *h = append(*h, x.(uint32)) }

func (h *indexHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
