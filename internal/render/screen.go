package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Screen wraps a tcell screen. tcell keeps the front and back cell buffers
// and Show only flushes cells that changed since the previous frame.
type Screen struct {
	tcell.Screen
}

// NewScreen opens the real terminal.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("new screen: %w", err)
	}
	return Open(s)
}

// Open initialises an existing tcell screen, such as a simulation screen.
func Open(s tcell.Screen) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	s.HideCursor()
	s.Clear()
	return &Screen{Screen: s}, nil
}

// Close restores the terminal.
func (s *Screen) Close() {
	s.Fini()
}

// Contains reports whether (x, y) is on screen.
func (s *Screen) Contains(x, y int) bool {
	w, h := s.Size()
	return x >= 0 && y >= 0 && x < w && y < h
}

// EraseRegion blanks a rectangle clipped to the screen.
func (s *Screen) EraseRegion(x, y, w, h int) {
	for cy := y; cy < y+h; cy++ {
		for cx := x; cx < x+w; cx++ {
			if s.Contains(cx, cy) {
				s.SetContent(cx, cy, ' ', nil, tcell.StyleDefault)
			}
		}
	}
}

// StyleFor builds a foreground style from a tcell color name. Unknown names
// fall back to the default style.
func StyleFor(color string) tcell.Style {
	if color == "" {
		return tcell.StyleDefault
	}
	c := tcell.GetColor(color)
	if c == tcell.ColorDefault {
		return tcell.StyleDefault
	}
	return tcell.StyleDefault.Foreground(c)
}
