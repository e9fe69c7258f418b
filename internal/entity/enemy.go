package entity

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/tinyrogue/internal/gamedata"
	"github.com/samdwyer/tinyrogue/internal/world"
)

// Enemy represents a hostile creature in the dungeon.
type Enemy struct {
	Def    *gamedata.EnemyDef // Reference to the enemy definition
	Name   string
	Symbol rune
	X, Y   int
	HP     int
	Damage int // upper bound of a randomized hit
}

// NewEnemyFromDef creates a new enemy from a data-driven definition.
func NewEnemyFromDef(def *gamedata.EnemyDef, weapon *gamedata.WeaponDef, x, y int) *Enemy {
	e := &Enemy{
		Def:    def,
		Name:   def.Name,
		Symbol: def.GlyphRune(),
		X:      x,
		Y:      y,
		HP:     def.HP,
	}
	if weapon != nil {
		e.Damage = weapon.Damage
	}
	return e
}

// Position returns the enemy's current coordinates.
func (e *Enemy) Position() world.Point {
	return world.Point{X: e.X, Y: e.Y}
}

// Move updates the enemy position by the given direction.
func (e *Enemy) Move(d world.Direction) {
	dx, dy := d.Delta()
	e.X += dx
	e.Y += dy
}

// IsAlive returns true if the enemy has HP remaining.
func (e *Enemy) IsAlive() bool {
	return e.HP > 0
}

// TakeDamage reduces HP and returns actual damage taken.
func (e *Enemy) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := min(amount, e.HP)
	e.HP -= actual
	return actual
}

// Color returns the tcell color for this enemy.
func (e *Enemy) Color() tcell.Color {
	if e.Def != nil {
		return e.Def.TCellColor()
	}
	return tcell.ColorPurple
}

// Actor returns the enemy's snapshot.
func (e *Enemy) Actor() Actor {
	return Actor{Kind: KindEnemy, X: e.X, Y: e.Y}
}
