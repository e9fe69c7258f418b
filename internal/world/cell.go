// Package world provides the dungeon grid and its procedural generator.
package world

// Cell represents the state of a single map cell.
type Cell uint8

const (
	// CellUnused is solid rock that no feature has claimed.
	CellUnused Cell = iota
	// CellWall is the rim of a room.
	CellWall
	// CellFloor is the walkable interior of a room.
	CellFloor
	// CellCorridor is a walkable corridor segment.
	CellCorridor
	// CellDoor joins two features.
	CellDoor
	// CellUpStairs leads to the next floor.
	CellUpStairs
	// CellDownStairs leads to the previous floor.
	CellDownStairs
)

// IsPlayable returns true if actors may stand on the cell.
func (c Cell) IsPlayable() bool {
	return c != CellWall && c != CellUnused
}

// IsStairs returns true for either staircase.
func (c Cell) IsStairs() bool {
	return c == CellUpStairs || c == CellDownStairs
}

// String returns a human-readable cell name.
func (c Cell) String() string {
	switch c {
	case CellUnused:
		return "unused"
	case CellWall:
		return "wall"
	case CellFloor:
		return "floor"
	case CellCorridor:
		return "corridor"
	case CellDoor:
		return "door"
	case CellUpStairs:
		return "upstairs"
	case CellDownStairs:
		return "downstairs"
	default:
		return "unknown"
	}
}
