package entity

import "github.com/samdwyer/tinyrogue/internal/world"

// Player is the adventurer controlled from the keyboard.
type Player struct {
	X, Y    int
	Symbol  rune
	HP      int
	Damage  int // upper bound of a randomized hit
	Kills   int
	Rupees  int
	Torches int
	Maps    int
}

// NewPlayer creates a player with the given starting stats at the origin.
func NewPlayer(hp, damage int) *Player {
	return &Player{
		Symbol: '@',
		HP:     hp,
		Damage: damage,
	}
}

// Move updates the player position by the given direction.
func (p *Player) Move(d world.Direction) {
	dx, dy := d.Delta()
	p.X += dx
	p.Y += dy
}

// Place puts the player on the given point.
func (p *Player) Place(pt world.Point) {
	p.X, p.Y = pt.X, pt.Y
}

// Position returns the current coordinates.
func (p *Player) Position() world.Point {
	return world.Point{X: p.X, Y: p.Y}
}

// IsAlive returns true while the player has HP remaining.
func (p *Player) IsAlive() bool {
	return p.HP > 0
}

// TakeDamage reduces HP and returns actual damage taken.
func (p *Player) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := min(amount, p.HP)
	p.HP -= actual
	return actual
}

// Actor returns the player's snapshot.
func (p *Player) Actor() Actor {
	return Actor{Kind: KindPlayer, X: p.X, Y: p.Y}
}
