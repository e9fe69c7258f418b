package vision

import (
	"github.com/samdwyer/tinyrogue/internal/entity"
	"github.com/samdwyer/tinyrogue/internal/world"
)

// Lighting decides which cells the renderer may draw.
type Lighting struct {
	// Reveal shows enemies, pickups, torches and stairs anywhere on the floor.
	Reveal bool
	disk   Disk
}

// NewLighting creates a lighting policy where the player and every torch
// light a disk of the given radius.
func NewLighting(radius int) *Lighting {
	return &Lighting{disk: NewDisk(radius)}
}

// Radius returns the light radius.
func (l *Lighting) Radius() int {
	return l.disk.Radius()
}

// Visible reports whether p is lit by the player or a torch, or revealed.
func (l *Lighting) Visible(m *world.Map, actors []entity.Actor, p world.Point) bool {
	for _, a := range actors {
		switch a.Kind {
		case entity.KindPlayer, entity.KindTorch:
			if l.disk.Contains(a.Position(), p) {
				return true
			}
		}
	}

	if !l.Reveal {
		return false
	}
	if m.IsStairs(p.X, p.Y) {
		return true
	}
	a, ok := entity.At(actors, p)
	return ok && a.Kind != entity.KindPlayer
}
