package system

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/snekecs/snek/internal/component"
	"github.com/snekecs/snek/internal/core/ecs"
	"github.com/snekecs/snek/internal/core/event"
	"github.com/snekecs/snek/internal/render"
)

var (
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	textStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	alertStyle  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// RenderSystem draws the arena, every entity with Render and Position, the
// status line and, for entities carrying Debug, one line of state each.
type RenderSystem struct {
	screen *render.Screen
	window render.Window
	level  string
}

// NewRenderSystem lays the arena out one cell in from the top-left corner to
// leave room for the border.
func NewRenderSystem(screen *render.Screen, arena component.Arena, level string) *RenderSystem {
	return &RenderSystem{
		screen: screen,
		window: render.NewWindow(1, 1, int(arena.Width), int(arena.Height)),
		level:  level,
	}
}

func (s *RenderSystem) Window() render.Window { return s.window }

func (s *RenderSystem) Update(m *ecs.Manager, q *ecs.QueryCache, action event.Action) {
	s.screen.Clear()
	s.window.Border(s.screen, borderStyle)

	for _, id := range ecs.WithBoth[component.Render, component.Position](q, m) {
		r, _ := ecs.Get[component.Render](m, id)
		p, _ := ecs.Get[component.Position](m, id)
		s.window.Put(s.screen, int(p.X), int(p.Y), r.Sprite, render.StyleFor(r.Color))
	}

	line := s.window.Height + 1
	status := fmt.Sprintf("%s  frame %d", s.level, m.Frame())
	if _, score, ok := ecs.First[component.Score](m); ok {
		status = fmt.Sprintf("%s  score %d  apples %d  speed %d  frame %d",
			s.level, score.Points, score.Apples, score.Speed, m.Frame())
	}
	s.window.Print(s.screen, -1, line, status, textStyle)
	if snakeDead(m) {
		s.window.Print(s.screen, -1, line+1, "GAME OVER", alertStyle)
		line++
	}

	for _, dbg := range ecs.All[component.Debug](m) {
		line++
		s.window.Print(s.screen, -1, line, fmt.Sprintf(
			"name: %s, position.x: %d, position.y: %d, is_alive: %t, collided: %t",
			dbg.Name, dbg.X, dbg.Y, dbg.Alive, dbg.Collided), textStyle)
	}

	if action == event.ActionExit {
		s.window.Print(s.screen, -1, line+1, "bye", textStyle)
	}
	s.screen.Show()
}
