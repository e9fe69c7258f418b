// Package ai moves enemies toward the player with a breadth-first search.
// Boards are small and movement is four-way, so BFS is enough; the search is
// rebuilt on every call because other actors move between turns.
package ai

import (
	"github.com/samdwyer/tinyrogue/internal/entity"
	"github.com/samdwyer/tinyrogue/internal/world"
)

// tag is the search state of one scratch cell.
type tag uint8

const (
	tagEmpty tag = iota
	tagObstacle
	tagGoal
	tagVisited
)

// node is a queued search position and the moves that led to it.
type node struct {
	at   world.Point
	path []world.Direction
}

// FindPath returns a shortest sequence of moves from `from` onto any free
// cell orthogonally adjacent to a player. Ties between equal paths are broken
// by trying North, East, South, West in order. The second result is false
// when no such cell can be reached. An actor that already stands next to the
// player gets an empty path.
func FindPath(m *world.Map, actors []entity.Actor, from world.Point) ([]world.Direction, bool) {
	grid := newScratch(m, actors)
	if grid.isGoalOrigin(from) {
		return []world.Direction{}, true
	}
	grid.set(from, tagVisited)

	queue := []node{{at: from}}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, d := range world.Directions {
			next := current.at.Step(d)
			switch grid.get(next) {
			case tagGoal:
				return extend(current.path, d), true
			case tagEmpty:
				grid.set(next, tagVisited)
				queue = append(queue, node{at: next, path: extend(current.path, d)})
			}
		}
	}
	return nil, false
}

// FindStep returns only the first move of FindPath. It reports false when the
// actor cannot reach the player or is already next to them.
func FindStep(m *world.Map, actors []entity.Actor, from world.Point) (world.Direction, bool) {
	path, ok := FindPath(m, actors, from)
	if !ok || len(path) == 0 {
		return 0, false
	}
	return path[0], true
}

func extend(path []world.Direction, d world.Direction) []world.Direction {
	out := make([]world.Direction, len(path), len(path)+1)
	copy(out, path)
	return append(out, d)
}

// scratch is the per-call search grid, discarded on return.
type scratch struct {
	width, height int
	tags          []tag
	goals         []world.Point
}

func newScratch(m *world.Map, actors []entity.Actor) *scratch {
	s := &scratch{
		width:  m.Width,
		height: m.Height,
		tags:   make([]tag, m.Width*m.Height),
	}

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if !m.IsPlayable(x, y) {
				s.tags[x+s.width*y] = tagObstacle
			}
		}
	}

	// Every actor blocks its own cell, the player included, so the search
	// ends beside the player rather than on top of them.
	for _, a := range actors {
		s.set(a.Position(), tagObstacle)
	}

	for _, a := range actors {
		if a.Kind != entity.KindPlayer {
			continue
		}
		for _, n := range a.Position().Neighbors() {
			if s.get(n) == tagEmpty {
				s.set(n, tagGoal)
			}
			s.goals = append(s.goals, n)
		}
	}
	return s
}

// isGoalOrigin reports whether p is already orthogonally adjacent to a player.
func (s *scratch) isGoalOrigin(p world.Point) bool {
	for _, g := range s.goals {
		if g == p {
			return true
		}
	}
	return false
}

// get returns the tag at p; off-grid cells are obstacles.
func (s *scratch) get(p world.Point) tag {
	if p.X < 0 || p.X >= s.width || p.Y < 0 || p.Y >= s.height {
		return tagObstacle
	}
	return s.tags[p.X+s.width*p.Y]
}

func (s *scratch) set(p world.Point, t tag) {
	if p.X < 0 || p.X >= s.width || p.Y < 0 || p.Y >= s.height {
		return
	}
	s.tags[p.X+s.width*p.Y] = t
}
