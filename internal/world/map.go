package world

import (
	"github.com/zyedidia/generic/mapset"
)

const (
	// Default map dimensions, sized to fit a 32x30 console with borders and a status line.
	DefaultWidth  = 28
	DefaultHeight = 24
)

// Map is a fixed-size grid of cells. Only the generator mutates it;
// once Generate returns, a Map is read-only.
type Map struct {
	Width  int
	Height int
	Rooms  []Room // Rooms[0] is the seed room
	// Features counts carved rooms and corridors, the seed room included.
	Features int
	cells  []Cell
}

// NewMap creates a map with every cell unused.
func NewMap(width, height int) *Map {
	return &Map{
		Width:  width,
		Height: height,
		Rooms:  make([]Room, 0),
		cells:  make([]Cell, width*height),
	}
}

// InBounds returns true if the coordinate lies on the grid.
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// At returns the cell at the given position. Off-grid reads return CellWall.
func (m *Map) At(x, y int) Cell {
	return m.GetOr(x, y, CellWall)
}

// GetOr returns the cell at the given position, or def if it is off the grid.
func (m *Map) GetOr(x, y int, def Cell) Cell {
	if !m.InBounds(x, y) {
		return def
	}
	return m.cells[x+m.Width*y]
}

// IsPlayable returns true if the given position can be walked on.
func (m *Map) IsPlayable(x, y int) bool {
	return m.At(x, y).IsPlayable()
}

// IsAdjacent returns true if any orthogonal neighbour holds the given cell.
func (m *Map) IsAdjacent(x, y int, cell Cell) bool {
	return m.At(x-1, y) == cell || m.At(x+1, y) == cell ||
		m.At(x, y-1) == cell || m.At(x, y+1) == cell
}

// IsStairs returns true if the position holds either staircase.
func (m *Map) IsStairs(x, y int) bool {
	return m.At(x, y).IsStairs()
}

// IsDoor returns true if the position holds a door.
func (m *Map) IsDoor(x, y int) bool {
	return m.At(x, y) == CellDoor
}

// FindFirst scans row by row and returns the first position holding cell.
func (m *Map) FindFirst(cell Cell) (Point, bool) {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.cells[x+m.Width*y] == cell {
				return Point{X: x, Y: y}, true
			}
		}
	}
	return Point{}, false
}

// Count returns how many cells hold the given state.
func (m *Map) Count(cell Cell) int {
	n := 0
	for _, c := range m.cells {
		if c == cell {
			n++
		}
	}
	return n
}

// ReachableFrom returns every playable cell connected to start through
// orthogonal steps over playable cells.
func (m *Map) ReachableFrom(start Point) mapset.Set[Point] {
	visited := mapset.New[Point]()
	if !m.IsPlayable(start.X, start.Y) {
		return visited
	}
	visited.Put(start)
	queue := []Point{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, n := range current.Neighbors() {
			if visited.Has(n) || !m.IsPlayable(n.X, n.Y) {
				continue
			}
			visited.Put(n)
			queue = append(queue, n)
		}
	}
	return visited
}

// Connected reports whether every playable cell is reachable from the
// interior of the seed room.
func (m *Map) Connected() bool {
	if len(m.Rooms) == 0 {
		return false
	}
	cx, cy := m.Rooms[0].Center()
	reached := m.ReachableFrom(Point{X: cx, Y: cy})
	playable := 0
	for _, c := range m.cells {
		if c.IsPlayable() {
			playable++
		}
	}
	return playable > 0 && reached.Size() == playable
}

func (m *Map) set(x, y int, cell Cell) {
	m.cells[x+m.Width*y] = cell
}

// fill sets every cell in the inclusive rectangle.
func (m *Map) fill(xbeg, ybeg, xend, yend int, cell Cell) {
	for y := ybeg; y <= yend; y++ {
		for x := xbeg; x <= xend; x++ {
			m.set(x, y, cell)
		}
	}
}

// isAreaUnused returns true if every cell in the inclusive rectangle is unused.
func (m *Map) isAreaUnused(xbeg, ybeg, xend, yend int) bool {
	for y := ybeg; y <= yend; y++ {
		for x := xbeg; x <= xend; x++ {
			if m.cells[x+m.Width*y] != CellUnused {
				return false
			}
		}
	}
	return true
}
