// Package vision answers what can be seen: blocking line of sight between two
// cells and the lit disks around the player and torches.
package vision

import "github.com/samdwyer/tinyrogue/internal/world"

// Line rasterizes the segment between a and b with Bresenham's integer
// algorithm. Points run along the dominant axis in increasing order, so the
// slice may start at b rather than a.
func Line(a, b world.Point) []world.Point {
	x0, y0, x1, y1 := a.X, a.Y, b.X, b.Y

	steep := abs(y1-y0) > abs(x1-x0)
	if steep {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	dx := x1 - x0
	dy := abs(y1 - y0)
	ystep := -1
	if y0 < y1 {
		ystep = 1
	}

	points := make([]world.Point, 0, dx+1)
	errTerm := dx / 2
	y := y0
	for x := x0; x <= x1; x++ {
		if steep {
			points = append(points, world.Point{X: y, Y: x})
		} else {
			points = append(points, world.Point{X: x, Y: y})
		}
		errTerm -= dy
		if errTerm < 0 {
			y += ystep
			errTerm += dx
		}
	}
	return points
}

// LineOfSight reports whether every cell on the line between a and b is
// playable. Walls, unused rock and off-grid cells block sight.
func LineOfSight(m *world.Map, a, b world.Point) bool {
	for _, p := range Line(a, b) {
		if !m.IsPlayable(p.X, p.Y) {
			return false
		}
	}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
