package entity

import "github.com/samdwyer/tinyrogue/internal/world"

// Rupee is a coin waiting to be collected.
type Rupee struct {
	X, Y int
}

// Actor returns the rupee's snapshot.
func (r Rupee) Actor() Actor {
	return Actor{Kind: KindPickup, X: r.X, Y: r.Y}
}

// Position returns the rupee's coordinates.
func (r Rupee) Position() world.Point {
	return world.Point{X: r.X, Y: r.Y}
}

// Torch is a light source dropped by the player.
type Torch struct {
	X, Y int
}

// Actor returns the torch's snapshot.
func (t Torch) Actor() Actor {
	return Actor{Kind: KindTorch, X: t.X, Y: t.Y}
}
