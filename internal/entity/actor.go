// Package entity provides the actors that occupy the dungeon.
package entity

import "github.com/samdwyer/tinyrogue/internal/world"

// Kind discriminates what an actor is.
type Kind int

const (
	KindPlayer Kind = iota
	KindEnemy
	KindPickup // a rupee lying on the floor
	KindTorch  // a dropped light source
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindPickup:
		return "pickup"
	case KindTorch:
		return "torch"
	default:
		return "unknown"
	}
}

// Actor is a read-only snapshot of one occupant's kind and position.
// The pathfinder and the lighting code work on slices of these.
type Actor struct {
	Kind Kind
	X, Y int
}

// Position returns the actor's coordinates as a point.
func (a Actor) Position() world.Point {
	return world.Point{X: a.X, Y: a.Y}
}

// At returns the first actor standing on p.
func At(actors []Actor, p world.Point) (Actor, bool) {
	for _, a := range actors {
		if a.X == p.X && a.Y == p.Y {
			return a, true
		}
	}
	return Actor{}, false
}
