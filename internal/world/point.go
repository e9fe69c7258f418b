package world

// Direction is one of the four cardinal directions.
// The declaration order is the tie-break order used by searches.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists the cardinal directions in search order.
var Directions = [4]Direction{North, East, South, West}

// Delta returns the unit offset of the direction. Screen coordinates: north is -y.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// Point is an (x, y) grid coordinate.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Step returns the neighbouring point in the given direction.
func (p Point) Step(d Direction) Point {
	dx, dy := d.Delta()
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Neighbors returns the four orthogonal neighbours in search order.
func (p Point) Neighbors() [4]Point {
	var out [4]Point
	for i, d := range Directions {
		out[i] = p.Step(d)
	}
	return out
}

// Manhattan returns the taxicab distance between two points.
func (p Point) Manhattan(q Point) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
