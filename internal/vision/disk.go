package vision

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/tinyrogue/internal/world"
)

// spans walks the midpoint circle recurrence for radius and calls visit with
// the half-width and row offset of every horizontal span of the filled disk
// (each pair covers rows ±dy, columns ±dx). Walking stops early when visit
// returns false.
func spans(radius int, visit func(dx, dy int) bool) {
	if radius < 0 {
		return
	}
	x, y := radius, 0
	xChange := 1 - 2*radius
	yChange := 0
	errTerm := 0
	for x >= y {
		if !visit(x, y) || !visit(y, x) {
			return
		}
		y++
		errTerm += yChange
		yChange += 2
		if 2*errTerm+xChange > 0 {
			x--
			errTerm += xChange
			xChange += 2
		}
	}
}

// InDisk reports whether p lies in the filled disk of the given radius around
// center. A negative radius contains nothing.
func InDisk(center world.Point, radius int, p world.Point) bool {
	ox, oy := p.X-center.X, abs(p.Y-center.Y)
	inside := false
	spans(radius, func(dx, dy int) bool {
		if oy == dy && ox >= -dx && ox <= dx {
			inside = true
		}
		return !inside
	})
	return inside
}

// Disk is the membership set of one radius, computed once.
type Disk struct {
	radius  int
	offsets mapset.Set[world.Point]
}

// NewDisk precomputes the offsets covered by a disk of the given radius.
func NewDisk(radius int) Disk {
	offsets := mapset.New[world.Point]()
	spans(radius, func(dx, dy int) bool {
		for x := -dx; x <= dx; x++ {
			offsets.Put(world.Point{X: x, Y: dy})
			offsets.Put(world.Point{X: x, Y: -dy})
		}
		return true
	})
	return Disk{radius: radius, offsets: offsets}
}

// Radius returns the radius the disk was built for.
func (d Disk) Radius() int {
	return d.radius
}

// Size returns the number of cells in the disk.
func (d Disk) Size() int {
	return d.offsets.Size()
}

// Contains reports whether p lies in the disk placed on center.
func (d Disk) Contains(center, p world.Point) bool {
	return d.offsets.Has(world.Point{X: p.X - center.X, Y: p.Y - center.Y})
}
