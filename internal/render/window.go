package render

import (
	"github.com/gdamore/tcell/v2"
	"golang.org/x/text/width"
)

// Window maps grid cells to screen cells. Each grid column is two terminal
// columns wide so that cells look square.
type Window struct {
	X, Y          int // screen origin
	Width, Height int // size in grid cells
}

func NewWindow(x, y, w, h int) Window {
	return Window{X: x, Y: y, Width: w, Height: h}
}

// RuneWidth is the number of terminal columns r occupies.
func RuneWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	return 1
}

// Put draws a sprite on grid cell (x, y). Cells outside the window are
// ignored.
func (w Window) Put(s *Screen, x, y int, r rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= w.Width || y >= w.Height {
		return
	}
	sx, sy := w.X+x*2, w.Y+y
	if !s.Contains(sx, sy) {
		return
	}
	s.SetContent(sx, sy, r, nil, style)
	if RuneWidth(r) == 1 && s.Contains(sx+1, sy) {
		s.SetContent(sx+1, sy, ' ', nil, style)
	}
}

// Print writes text starting at screen column x of line y, relative to the
// window origin, without column doubling.
func (w Window) Print(s *Screen, x, y int, text string, style tcell.Style) {
	sx, sy := w.X+x, w.Y+y
	for _, r := range text {
		if s.Contains(sx, sy) {
			s.SetContent(sx, sy, r, nil, style)
		}
		sx += RuneWidth(r)
	}
}

// Clear blanks the window's interior.
func (w Window) Clear(s *Screen) {
	s.EraseRegion(w.X, w.Y, w.Width*2, w.Height)
}

// Border draws a frame one cell outside the window.
func (w Window) Border(s *Screen, style tcell.Style) {
	left, right := w.X-1, w.X+w.Width*2
	top, bottom := w.Y-1, w.Y+w.Height
	for x := left; x <= right; x++ {
		s.SetContent(x, top, '─', nil, style)
		s.SetContent(x, bottom, '─', nil, style)
	}
	for y := top; y <= bottom; y++ {
		s.SetContent(left, y, '│', nil, style)
		s.SetContent(right, y, '│', nil, style)
	}
	s.SetContent(left, top, '┌', nil, style)
	s.SetContent(right, top, '┐', nil, style)
	s.SetContent(left, bottom, '└', nil, style)
	s.SetContent(right, bottom, '┘', nil, style)
}
