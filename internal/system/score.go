package system

import (
	"github.com/snekecs/snek/internal/component"
	"github.com/snekecs/snek/internal/core/ecs"
	"github.com/snekecs/snek/internal/core/event"
)

// Rules computes points for a meal. Implemented by scripting.Engine.
type Rules interface {
	AppleScore(length, speed int) int
}

// ScoreSystem books AppleEaten events onto the eater's Score and raises its
// speed one step every applesPerLevel apples.
type ScoreSystem struct {
	rules          Rules
	applesPerLevel int
	maxSpeed       int
	meals          []event.AppleEaten
}

func NewScoreSystem(bus *event.Bus, rules Rules, applesPerLevel, maxSpeed int) *ScoreSystem {
	s := &ScoreSystem{
		rules:          rules,
		applesPerLevel: max(applesPerLevel, 1),
		maxSpeed:       maxSpeed,
	}
	event.Subscribe(bus, func(ev event.AppleEaten) {
		s.meals = append(s.meals, ev)
	})
	return s
}

func (s *ScoreSystem) Update(m *ecs.Manager, _ *ecs.QueryCache, _ event.Action) {
	for _, meal := range s.meals {
		score, ok := ecs.GetMut[component.Score](m, meal.Snake)
		if !ok {
			continue
		}
		score.Points += s.rules.AppleScore(meal.Length, score.Speed)
		score.Apples++
		score.Speed = min(score.Apples/s.applesPerLevel, s.maxSpeed)
	}
	s.meals = s.meals[:0]
}
