package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/tinyrogue/internal/world"
)

// Map glyphs.
const (
	RuneUnused     = ' '
	RuneFloor      = '·'
	RuneWall       = '#'
	RuneCorridor   = '•'
	RuneDoorH      = '─'
	RuneDoorV      = '|'
	RuneUpStairs   = '<'
	RuneDownStairs = '>'
	RuneRupee      = '◊'
	RuneTorch      = 't'
)

// Glyph is one actor to draw on top of the map.
type Glyph struct {
	X, Y  int
	Rune  rune
	Style tcell.Style
}

// Frame is everything needed to draw one screen.
type Frame struct {
	Map *world.Map
	// Visible decides which map cells and glyphs are drawn. Nil draws everything.
	Visible func(world.Point) bool
	Glyphs  []Glyph
	Status  string
	Message string
}

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws the map, the glyphs and the two text lines below the map.
func (r *Renderer) Render(f Frame) {
	r.screen.Clear()

	visible := f.Visible
	if visible == nil {
		visible = func(world.Point) bool { return true }
	}

	m := f.Map
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if !visible(world.Pt(x, y)) {
				continue
			}
			cell := m.At(x, y)
			r.screen.SetContent(x, y, CellRune(m, x, y), cellStyle(cell))
		}
	}

	for _, g := range f.Glyphs {
		if !visible(world.Pt(g.X, g.Y)) {
			continue
		}
		r.screen.SetContent(g.X, g.Y, g.Rune, g.Style)
	}

	r.RenderMessage(f.Status, m.Height+1)
	r.RenderMessage(f.Message, m.Height+2)

	r.screen.Show()
}

// CellRune returns the glyph for the cell at (x, y). Doors take their
// orientation from the surrounding cells.
func CellRune(m *world.Map, x, y int) rune {
	switch m.At(x, y) {
	case world.CellFloor:
		return RuneFloor
	case world.CellWall:
		return RuneWall
	case world.CellCorridor:
		return RuneCorridor
	case world.CellDoor:
		return doorRune(m, x, y)
	case world.CellUpStairs:
		return RuneUpStairs
	case world.CellDownStairs:
		return RuneDownStairs
	default:
		return RuneUnused
	}
}

// doorRune is vertical when the door sits in a vertical wall or joins a
// corridor horizontally, otherwise horizontal.
func doorRune(m *world.Map, x, y int) rune {
	left, right := m.At(x-1, y), m.At(x+1, y)
	switch {
	case m.At(x, y-1) == world.CellWall && m.At(x, y+1) == world.CellWall:
		return RuneDoorV
	case right == world.CellCorridor && left == world.CellCorridor:
		return RuneDoorV
	case right == world.CellCorridor && left == world.CellFloor:
		return RuneDoorV
	case right == world.CellFloor && left == world.CellCorridor:
		return RuneDoorV
	default:
		return RuneDoorH
	}
}

// cellStyle returns the appropriate style for a cell type.
func cellStyle(cell world.Cell) tcell.Style {
	switch cell {
	case world.CellWall:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	case world.CellFloor, world.CellCorridor:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	case world.CellDoor:
		return tcell.StyleDefault.Foreground(tcell.ColorOlive)
	case world.CellUpStairs, world.CellDownStairs:
		return tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	default:
		return tcell.StyleDefault
	}
}

// RenderMessage displays a message on row y.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	x := 0
	for _, ch := range msg {
		r.screen.SetContent(x, y, ch, style)
		x++
	}
}
