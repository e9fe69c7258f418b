package gamedata

import (
	"errors"
	"fmt"

	"github.com/samdwyer/tinyrogue/internal/rng"
)

// EnemyRegistry holds loaded enemy and weapon definitions and provides spawning utilities.
type EnemyRegistry struct {
	enemies     []EnemyDef
	weapons     map[string]*WeaponDef
	totalWeight int
}

// NewEnemyRegistry creates a registry from loaded definitions.
// Every enemy must reference a known weapon.
func NewEnemyRegistry(enemies []EnemyDef, weapons []WeaponDef) (*EnemyRegistry, error) {
	registry := &EnemyRegistry{
		enemies: enemies,
		weapons: make(map[string]*WeaponDef, len(weapons)),
	}
	for i := range weapons {
		registry.weapons[weapons[i].ID] = &weapons[i]
	}
	for _, e := range enemies {
		if _, ok := registry.weapons[e.Weapon]; !ok {
			return nil, fmt.Errorf("enemy %q references unknown weapon %q", e.ID, e.Weapon)
		}
		registry.totalWeight += e.SpawnWeight
	}
	return registry, nil
}

// LoadEnemyRegistry loads and creates a registry from the embedded JSON files.
func LoadEnemyRegistry() (*EnemyRegistry, error) {
	enemies, err := LoadEnemies()
	if err != nil {
		return nil, err
	}
	if len(enemies) == 0 {
		return nil, errors.New("no enemies loaded from enemies.json")
	}
	weapons, err := LoadWeapons()
	if err != nil {
		return nil, err
	}
	return NewEnemyRegistry(enemies, weapons)
}

// MustLoadEnemyRegistry loads a registry, panicking on error.
func MustLoadEnemyRegistry() *EnemyRegistry {
	registry, err := LoadEnemyRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// SpawnRandom selects a random enemy definition using weighted probability.
// Enemies with higher spawnWeight are more likely to be selected.
func (r *EnemyRegistry) SpawnRandom(rnd *rng.Lehmer) *EnemyDef {
	if r.totalWeight <= 0 || len(r.enemies) == 0 {
		return nil
	}

	roll := rnd.NextInRange(0, r.totalWeight-1)

	cumulative := 0
	for i := range r.enemies {
		cumulative += r.enemies[i].SpawnWeight
		if roll < cumulative {
			return &r.enemies[i]
		}
	}

	return &r.enemies[len(r.enemies)-1]
}

// GetByID returns the enemy definition with the given ID, or nil if not found.
func (r *EnemyRegistry) GetByID(id string) *EnemyDef {
	for i := range r.enemies {
		if r.enemies[i].ID == id {
			return &r.enemies[i]
		}
	}
	return nil
}

// Weapon returns the weapon definition with the given ID, or nil if not found.
func (r *EnemyRegistry) Weapon(id string) *WeaponDef {
	return r.weapons[id]
}

// All returns all enemy definitions.
func (r *EnemyRegistry) All() []EnemyDef {
	return r.enemies
}

// Count returns the number of enemy types in the registry.
func (r *EnemyRegistry) Count() int {
	return len(r.enemies)
}
