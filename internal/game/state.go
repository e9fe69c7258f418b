// Package game provides the turn engine and the interactive game loop.
package game

// State represents the current game state.
type State int

const (
	// StatePlaying accepts movement and item commands.
	StatePlaying State = iota
	// StateOver is entered when the player dies; only a restart is accepted.
	StateOver
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateOver:
		return "over"
	default:
		return "unknown"
	}
}

// Outcome classifies what a single Move did.
type Outcome int

const (
	OutcomeNone     Outcome = iota // game over, nothing happened
	OutcomeBlocked                 // target cell is not playable; no turn passes
	OutcomeMoved
	OutcomeAttacked // bumped into an enemy that survived
	OutcomeKilled   // bumped into an enemy and killed it
	OutcomeDied     // the counter-attack killed the player
	OutcomeStairs   // took a staircase to another floor
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeBlocked:
		return "blocked"
	case OutcomeMoved:
		return "moved"
	case OutcomeAttacked:
		return "attacked"
	case OutcomeKilled:
		return "killed"
	case OutcomeDied:
		return "died"
	case OutcomeStairs:
		return "stairs"
	default:
		return "unknown"
	}
}

// TurnResult reports what happened during one player action.
type TurnResult struct {
	Outcome Outcome
	Enemy   string // name of the enemy fought, if any
	Dealt   int
	Taken   int
	Rupee   bool // a rupee was collected
	Message string
}
