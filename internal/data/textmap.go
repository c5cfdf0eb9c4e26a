package data

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Text map cells. The head marker sets the starting direction; '@' heads right.
const (
	cellWall  = '#'
	cellApple = '*'
	cellBody  = 'o'
)

var headMarkers = map[rune]string{
	'@': "right",
	'>': "right",
	'<': "left",
	'^': "up",
	'v': "down",
}

// LoadTextMap reads a text map file. The level is named after the file.
func LoadTextMap(path string) (*Level, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read text map: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ParseTextMap(name, raw)
}

// ParseTextMap builds a Level from an ASCII drawing: one line per row, '#'
// for walls, a head marker for the snake start, 'o' for body cells and '*'
// per apple. Horizontal wall runs become one WallRect each. The body must be
// drawn as a straight line directly behind the head, since levels only
// record its length.
func ParseTextMap(name string, raw []byte) (*Level, error) {
	lv := &Level{Name: name, Snake: SnakeStart{Length: 1}}
	heads := 0
	body := make(map[[2]int16]bool)
	var y int16

	sc := bufio.NewScanner(bytes.NewReader(raw))
	for sc.Scan() {
		line := []rune(sc.Text())
		lv.Width = max(lv.Width, int16(len(line)))

		runStart := int16(-1)
		flush := func(end int16) {
			if runStart >= 0 {
				lv.Walls = append(lv.Walls, WallRect{X: runStart, Y: y, W: end - runStart, H: 1})
				runStart = -1
			}
		}
		for i, r := range line {
			x := int16(i)
			if r == cellWall {
				if runStart < 0 {
					runStart = x
				}
				continue
			}
			flush(x)
			switch r {
			case cellApple:
				lv.Apples++
			case cellBody:
				lv.Snake.Length++
				body[[2]int16{x, y}] = true
			default:
				if dir, ok := headMarkers[r]; ok {
					heads++
					lv.Snake.X, lv.Snake.Y, lv.Snake.Direction = x, y, dir
				}
			}
		}
		flush(int16(len(line)))
		y++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read text map: %w", err)
	}
	lv.Height = y

	if heads != 1 {
		return nil, fmt.Errorf("%w: text map needs exactly one snake head, found %d", ErrInvalidLevel, heads)
	}
	cells := lv.SnakeCells()
	for k := 1; k < len(cells); k++ {
		if c := cells[k]; !body[c] {
			return nil, fmt.Errorf("%w: text map body is not a straight line behind the head, missing (%d,%d)",
				ErrInvalidLevel, c[0], c[1])
		}
	}
	if lv.Apples == 0 {
		lv.Apples = 1
	}
	if err := lv.Validate(); err != nil {
		return nil, err
	}
	return lv, nil
}

// MarshalLevel encodes lv in the level file format read by LoadLevel.
func MarshalLevel(lv *Level) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(lv); err != nil {
		return nil, fmt.Errorf("encode level: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode level: %w", err)
	}
	return buf.Bytes(), nil
}
