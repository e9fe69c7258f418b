package world

// Room represents a rectangular room in the dungeon, walls included.
type Room struct {
	X, Y          int // Top-left corner position
	Width, Height int // Dimensions of the room
}

// roomFromCorners builds a room from inclusive corner coordinates.
func roomFromCorners(xbeg, ybeg, xend, yend int) Room {
	return Room{X: xbeg, Y: ybeg, Width: xend - xbeg + 1, Height: yend - ybeg + 1}
}

// Center returns the center coordinates of the room.
func (r Room) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Contains returns true if the given point is inside the room.
func (r Room) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Interior returns true if the point lies strictly inside the walls.
func (r Room) Interior(x, y int) bool {
	return x > r.X && x < r.X+r.Width-1 && y > r.Y && y < r.Y+r.Height-1
}

// Intersects returns true if this room overlaps with another room.
func (r Room) Intersects(other Room) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}
