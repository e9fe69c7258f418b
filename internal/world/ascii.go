package world

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBadLayout is returned by FromRows for malformed layouts.
var ErrBadLayout = errors.New("world: bad layout")

var asciiCells = map[rune]Cell{
	' ': CellUnused,
	'#': CellWall,
	'.': CellFloor,
	',': CellCorridor,
	'+': CellDoor,
	'<': CellUpStairs,
	'>': CellDownStairs,
}

func (c Cell) ascii() rune {
	switch c {
	case CellWall:
		return '#'
	case CellFloor:
		return '.'
	case CellCorridor:
		return ','
	case CellDoor:
		return '+'
	case CellUpStairs:
		return '<'
	case CellDownStairs:
		return '>'
	default:
		return ' '
	}
}

// String dumps the map one row per line using the debug alphabet
// (' ' unused, '#' wall, '.' floor, ',' corridor, '+' door, '<' up, '>' down).
func (m *Map) String() string {
	var b strings.Builder
	b.Grow((m.Width + 1) * m.Height)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			b.WriteRune(m.cells[x+m.Width*y].ascii())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// FromRows builds a map from rows written in the String alphabet.
// All rows must have the same width.
func FromRows(rows ...string) (*Map, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrBadLayout)
	}
	width := len([]rune(rows[0]))
	m := NewMap(width, len(rows))
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != width {
			return nil, fmt.Errorf("%w: row %d has width %d, want %d", ErrBadLayout, y, len(runes), width)
		}
		for x, r := range runes {
			cell, ok := asciiCells[r]
			if !ok {
				return nil, fmt.Errorf("%w: unknown cell %q at (%d,%d)", ErrBadLayout, r, x, y)
			}
			m.set(x, y, cell)
		}
	}
	return m, nil
}

// MustFromRows is FromRows that panics on error, for fixtures.
func MustFromRows(rows ...string) *Map {
	m, err := FromRows(rows...)
	if err != nil {
		panic(err)
	}
	return m
}
