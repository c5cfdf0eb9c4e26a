package system

import (
	"math/rand"

	"github.com/snekecs/snek/internal/component"
	"github.com/snekecs/snek/internal/core/ecs"
	"github.com/snekecs/snek/internal/core/event"
)

const spawnAttempts = 32

// AppleSpawnSystem keeps Target apples on the board. Dead apples are placed
// on a random free cell; missing apples are created first.
type AppleSpawnSystem struct {
	Target int
	debug  bool
	rng    *rand.Rand
	taken  map[component.Position]struct{}
}

func NewAppleSpawnSystem(target int, rng *rand.Rand, debug bool) *AppleSpawnSystem {
	return &AppleSpawnSystem{
		Target: target,
		debug:  debug,
		rng:    rng,
		taken:  make(map[component.Position]struct{}, 256),
	}
}

func (s *AppleSpawnSystem) Update(m *ecs.Manager, q *ecs.QueryCache, _ event.Action) {
	_, arena, ok := ecs.First[component.Arena](m)
	if !ok {
		return
	}
	if snakeDead(m) {
		return
	}
	for n := len(ecs.IDs[component.Apple](m)); n < s.Target; n++ {
		SpawnApple(m, s.debug)
	}

	var dead []ecs.EntityID
	for _, id := range ecs.WithBoth[component.Apple, component.Position](q, m) {
		if a, _ := ecs.Get[component.Apple](m, id); !a.Alive {
			dead = append(dead, id)
		}
	}
	if len(dead) == 0 {
		return
	}

	clear(s.taken)
	for _, p := range ecs.All[component.Position](m) {
		s.taken[p] = struct{}{}
	}
	for _, id := range dead {
		p, ok := s.freeCell(*arena)
		if !ok {
			return
		}
		apple, pos, _ := ecs.Pair[component.Apple, component.Position](m, id)
		apple.Alive = true
		*pos = p
		s.taken[p] = struct{}{}
	}
}

// freeCell tries random cells first and falls back to a scan, so a nearly
// full board still finds its last free cell.
func (s *AppleSpawnSystem) freeCell(a component.Arena) (component.Position, bool) {
	for i := 0; i < spawnAttempts; i++ {
		p := component.Position{X: int16(s.rng.Intn(int(a.Width))), Y: int16(s.rng.Intn(int(a.Height)))}
		if _, ok := s.taken[p]; !ok {
			return p, true
		}
	}
	for y := int16(0); y < a.Height; y++ {
		for x := int16(0); x < a.Width; x++ {
			p := component.Position{X: x, Y: y}
			if _, ok := s.taken[p]; !ok {
				return p, true
			}
		}
	}
	return component.Position{}, false
}

func snakeDead(m *ecs.Manager) bool {
	snakes := ecs.All[component.Snake](m)
	for i := range snakes {
		if snakes[i].Alive {
			return false
		}
	}
	return len(snakes) > 0
}
