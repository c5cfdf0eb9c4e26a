package data

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidLevel is wrapped by every Level.Validate failure.
var ErrInvalidLevel = errors.New("invalid level")

// Level is the static layout a game starts from.
type Level struct {
	Name   string     `yaml:"name"`
	Width  int16      `yaml:"width"`
	Height int16      `yaml:"height"`
	Snake  SnakeStart `yaml:"snake"`
	Apples int        `yaml:"apples"`
	Walls  []WallRect `yaml:"walls"`
}

type SnakeStart struct {
	X         int16  `yaml:"x"`
	Y         int16  `yaml:"y"`
	Direction string `yaml:"direction"`
	Length    int    `yaml:"length"` // head included
}

// WallRect is a filled rectangle of wall cells.
type WallRect struct {
	X int16 `yaml:"x"`
	Y int16 `yaml:"y"`
	W int16 `yaml:"w"`
	H int16 `yaml:"h"`
}

// LoadLevel reads and validates a level YAML file.
func LoadLevel(path string) (*Level, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return ParseLevel(raw)
}

func ParseLevel(raw []byte) (*Level, error) {
	lv := &Level{
		Apples: 1,
		Snake:  SnakeStart{Direction: "right", Length: 1},
	}
	if err := yaml.Unmarshal(raw, lv); err != nil {
		return nil, fmt.Errorf("parse level: %w", err)
	}
	if err := lv.Validate(); err != nil {
		return nil, err
	}
	return lv, nil
}

func (lv *Level) Validate() error {
	if lv.Width < 4 || lv.Height < 4 {
		return fmt.Errorf("%w: arena %dx%d is smaller than 4x4", ErrInvalidLevel, lv.Width, lv.Height)
	}
	if lv.Snake.X < 0 || lv.Snake.Y < 0 || lv.Snake.X >= lv.Width || lv.Snake.Y >= lv.Height {
		return fmt.Errorf("%w: snake start (%d,%d) outside arena", ErrInvalidLevel, lv.Snake.X, lv.Snake.Y)
	}
	if lv.Snake.Length < 1 {
		return fmt.Errorf("%w: snake length %d", ErrInvalidLevel, lv.Snake.Length)
	}
	if _, ok := directionSteps[lv.Snake.Direction]; !ok {
		return fmt.Errorf("%w: snake direction %q", ErrInvalidLevel, lv.Snake.Direction)
	}
	if lv.Apples < 1 {
		return fmt.Errorf("%w: at least one apple is required", ErrInvalidLevel)
	}
	for i, w := range lv.Walls {
		if w.W < 1 || w.H < 1 || w.X < 0 || w.Y < 0 || w.X+w.W > lv.Width || w.Y+w.H > lv.Height {
			return fmt.Errorf("%w: wall %d out of bounds", ErrInvalidLevel, i)
		}
	}
	for k, c := range lv.SnakeCells() {
		if c[0] < 0 || c[1] < 0 || c[0] >= lv.Width || c[1] >= lv.Height {
			return fmt.Errorf("%w: snake cell %d at (%d,%d) outside arena", ErrInvalidLevel, k, c[0], c[1])
		}
		for i, w := range lv.Walls {
			if w.contains(c[0], c[1]) {
				return fmt.Errorf("%w: wall %d covers snake cell %d at (%d,%d)", ErrInvalidLevel, i, k, c[0], c[1])
			}
		}
	}
	return nil
}

// directionSteps maps a start direction to its unit step.
var directionSteps = map[string][2]int16{
	"up":    {0, -1},
	"down":  {0, 1},
	"left":  {-1, 0},
	"right": {1, 0},
}

// SnakeCells returns the starting cells head first, the body laid out straight
// behind the head. It returns nil for an unknown direction.
func (lv *Level) SnakeCells() [][2]int16 {
	step, ok := directionSteps[lv.Snake.Direction]
	if !ok || lv.Snake.Length < 1 {
		return nil
	}
	cells := make([][2]int16, lv.Snake.Length)
	for k := range cells {
		cells[k] = [2]int16{lv.Snake.X - int16(k)*step[0], lv.Snake.Y - int16(k)*step[1]}
	}
	return cells
}

func (w WallRect) contains(x, y int16) bool {
	return x >= w.X && x < w.X+w.W && y >= w.Y && y < w.Y+w.H
}

// WallCells expands every wall rectangle into its cells.
func (lv *Level) WallCells() [][2]int16 {
	var cells [][2]int16
	for _, w := range lv.Walls {
		for y := w.Y; y < w.Y+w.H; y++ {
			for x := w.X; x < w.X+w.W; x++ {
				cells = append(cells, [2]int16{x, y})
			}
		}
	}
	return cells
}
