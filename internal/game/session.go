package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/samdwyer/tinyrogue/internal/ai"
	"github.com/samdwyer/tinyrogue/internal/config"
	"github.com/samdwyer/tinyrogue/internal/entity"
	"github.com/samdwyer/tinyrogue/internal/gamedata"
	"github.com/samdwyer/tinyrogue/internal/rng"
	"github.com/samdwyer/tinyrogue/internal/telemetry"
	"github.com/samdwyer/tinyrogue/internal/vision"
	"github.com/samdwyer/tinyrogue/internal/world"
)

// ErrNotStarted is returned by operations that need a floor before Begin.
var ErrNotStarted = errors.New("game: session not started")

// Session is the turn engine. It owns the current floor and everything on
// it, and advances one player action at a time. It does no I/O.
type Session struct {
	cfg      config.Config
	registry *gamedata.EnemyRegistry
	gen      *world.Generator
	logger   zerolog.Logger
	rnd      *rng.Lehmer

	turns metric.Int64Counter
	kills metric.Int64Counter

	runID   string
	offset  int64
	floor   int
	m       *world.Map
	player  *entity.Player
	enemies []*entity.Enemy
	rupees  []entity.Rupee
	torches []entity.Torch
	light   *vision.Lighting
	state   State
	message string
	turn    int
}

// NewSession prepares a session. Call Begin before the first Move.
func NewSession(cfg config.Config, registry *gamedata.EnemyRegistry, logger zerolog.Logger) (*Session, error) {
	if registry == nil || registry.Count() == 0 {
		return nil, errors.New("game: enemy registry is empty")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	gen, err := world.NewGenerator(cfg.Generator.Options(), logger)
	if err != nil {
		return nil, fmt.Errorf("create generator: %w", err)
	}

	meter := telemetry.Meter("game")
	turns, err := meter.Int64Counter("game.turns",
		metric.WithDescription("Player actions that consumed a turn"))
	if err != nil {
		return nil, fmt.Errorf("create turns counter: %w", err)
	}
	kills, err := meter.Int64Counter("game.kills",
		metric.WithDescription("Enemies killed by the player"))
	if err != nil {
		return nil, fmt.Errorf("create kills counter: %w", err)
	}

	runID := uuid.NewString()
	return &Session{
		cfg:      cfg,
		registry: registry,
		gen:      gen,
		logger:   logger.With().Str("component", "session").Str("run_id", runID).Logger(),
		rnd:      rng.New(cfg.Seed),
		turns:    turns,
		kills:    kills,
		runID:    runID,
		light:    vision.NewLighting(cfg.LightRadius),
	}, nil
}

// Begin starts a new run on floor 0 with a fresh player. It is also used to
// restart after StateOver; the session's stream keeps advancing, so a
// restart plays a different dungeon.
func (s *Session) Begin(ctx context.Context) error {
	ctx, span := telemetry.Tracer("game").Start(ctx, "game.begin")
	defer span.End()

	s.floor = 0
	s.offset = s.rnd.Next()
	s.turn = 0
	s.message = ""
	s.player = entity.NewPlayer(s.cfg.Player.HP, s.cfg.Player.Damage)
	s.player.Torches = s.cfg.Player.Torches
	s.player.Maps = s.cfg.Player.Maps
	s.state = StatePlaying

	if err := s.enterFloor(ctx, nil); err != nil {
		span.RecordError(err)
		return err
	}

	span.SetAttributes(
		attribute.String("game.run_id", s.runID),
		attribute.Int64("game.seed", s.cfg.Seed),
		attribute.Int("game.enemies", len(s.enemies)),
		attribute.Int("game.rupees", len(s.rupees)),
	)
	s.logger.Info().
		Int64("seed", s.cfg.Seed).
		Int64("offset", s.offset).
		Msg("run started")
	return nil
}

// enterFloor generates the current floor and repopulates it. When arrival is
// set the player is placed on the first cell of that kind, otherwise on a
// random free cell away from enemies.
func (s *Session) enterFloor(ctx context.Context, arrival *world.Cell) error {
	m, err := s.gen.Generate(ctx, int64(s.floor)+s.offset)
	if err != nil {
		return fmt.Errorf("generate floor %d: %w", s.floor, err)
	}
	s.m = m
	s.enemies = nil
	s.rupees = nil
	s.torches = nil
	s.light.Reveal = false

	free := s.freeCells()

	pop := s.cfg.Population
	rupeeCount := s.rnd.NextInRange(pop.RupeeMin, pop.RupeeMax)
	for i := 0; i < rupeeCount; i++ {
		p, ok := s.takeCell(&free)
		if !ok {
			break
		}
		s.rupees = append(s.rupees, entity.Rupee{X: p.X, Y: p.Y})
	}
	enemyCount := s.rnd.NextInRange(pop.EnemyMin, pop.EnemyMax)
	for i := 0; i < enemyCount; i++ {
		def := s.registry.SpawnRandom(s.rnd)
		p, ok := s.takeCell(&free)
		if !ok {
			break
		}
		s.enemies = append(s.enemies, entity.NewEnemyFromDef(def, s.registry.Weapon(def.Weapon), p.X, p.Y))
	}

	if arrival != nil {
		if p, ok := m.FindFirst(*arrival); ok {
			s.player.Place(p)
			return nil
		}
	}

	spawn := free[:0:0]
	for _, p := range free {
		if !s.enemyNear(p) {
			spawn = append(spawn, p)
		}
	}
	if len(spawn) == 0 {
		spawn = free
	}
	if len(spawn) == 0 {
		return fmt.Errorf("floor %d has no free cell for the player", s.floor)
	}
	s.player.Place(spawn[s.rnd.NextInRange(0, len(spawn)-1)])
	return nil
}

// freeCells lists playable cells that are neither stairs nor doors, in
// row-major order.
func (s *Session) freeCells() []world.Point {
	var cells []world.Point
	for y := 0; y < s.m.Height; y++ {
		for x := 0; x < s.m.Width; x++ {
			if !s.m.IsPlayable(x, y) || s.m.IsStairs(x, y) || s.m.IsDoor(x, y) {
				continue
			}
			cells = append(cells, world.Pt(x, y))
		}
	}
	return cells
}

// takeCell removes a random cell from free so no two actors share a cell.
func (s *Session) takeCell(free *[]world.Point) (world.Point, bool) {
	cells := *free
	if len(cells) == 0 {
		return world.Point{}, false
	}
	i := s.rnd.NextInRange(0, len(cells)-1)
	p := cells[i]
	*free = append(cells[:i], cells[i+1:]...)
	return p, true
}

func (s *Session) enemyNear(p world.Point) bool {
	for _, e := range s.enemies {
		if e.Position().Manhattan(p) <= 1 {
			return true
		}
	}
	return false
}

// Move performs one player action in direction dir: attack an enemy standing
// there, or step onto the cell. Every action that consumes a turn is
// followed by the enemies' moves.
func (s *Session) Move(ctx context.Context, dir world.Direction) (TurnResult, error) {
	if s.m == nil {
		return TurnResult{}, ErrNotStarted
	}
	if s.state == StateOver {
		return TurnResult{Outcome: OutcomeNone, Message: "Game over"}, nil
	}

	ctx, span := telemetry.Tracer("game").Start(ctx, "game.turn")
	defer span.End()

	target := s.player.Position().Step(dir)

	var res TurnResult
	if i := s.enemyAt(target); i >= 0 {
		res = s.fight(ctx, i)
	} else if !s.m.IsPlayable(target.X, target.Y) {
		res = TurnResult{Outcome: OutcomeBlocked, Message: "Cannot go that way"}
		s.message = res.Message
		span.SetAttributes(attribute.String("turn.outcome", res.Outcome.String()))
		return res, nil
	} else {
		s.player.Move(dir)
		res = TurnResult{Outcome: OutcomeMoved}
		if s.collectRupee(target) {
			res.Rupee = true
			res.Message = "+1 Rupee"
		}
		if s.m.IsStairs(target.X, target.Y) {
			if err := s.takeStairs(ctx); err != nil {
				span.RecordError(err)
				return TurnResult{}, err
			}
			res.Outcome = OutcomeStairs
			res.Message = fmt.Sprintf("Floor %d", s.floor)
		}
	}

	s.turn++
	s.turns.Add(ctx, 1)

	if s.state == StatePlaying {
		s.updateAI()
		if res.Message == "" {
			if e := s.adjacentEnemy(); e != nil {
				res.Message = "Enc: " + e.Name
			}
		}
	}
	s.message = res.Message

	span.SetAttributes(
		attribute.Int("turn.number", s.turn),
		attribute.String("turn.outcome", res.Outcome.String()),
		attribute.Int("turn.floor", s.floor),
	)
	return res, nil
}

// fight resolves a bump attack against enemy i. The player always strikes
// first; a surviving enemy strikes back.
func (s *Session) fight(ctx context.Context, i int) TurnResult {
	e := s.enemies[i]
	res := TurnResult{Outcome: OutcomeAttacked, Enemy: e.Name}

	res.Dealt = e.TakeDamage(s.rnd.NextInRange(0, s.player.Damage))
	if !e.IsAlive() {
		s.enemies = append(s.enemies[:i], s.enemies[i+1:]...)
		s.player.Kills++
		s.player.HP = s.player.HP * 9 / 8
		s.kills.Add(ctx, 1)
		res.Outcome = OutcomeKilled
		res.Message = "Kill: " + e.Name
		s.logger.Debug().Str("enemy", e.Name).Int("kills", s.player.Kills).Msg("enemy killed")
		return res
	}

	res.Taken = s.player.TakeDamage(s.rnd.NextInRange(0, e.Damage))
	if !s.player.IsAlive() {
		s.state = StateOver
		res.Outcome = OutcomeDied
		res.Message = "Killed by " + e.Name
		s.logger.Info().
			Str("enemy", e.Name).
			Int("floor", s.floor).
			Int("kills", s.player.Kills).
			Int("rupees", s.player.Rupees).
			Msg("player died")
		return res
	}
	res.Message = "Atk: " + e.Name
	return res
}

func (s *Session) collectRupee(p world.Point) bool {
	for i, r := range s.rupees {
		if r.Position() == p {
			s.rupees = append(s.rupees[:i], s.rupees[i+1:]...)
			s.player.Rupees++
			return true
		}
	}
	return false
}

// takeStairs moves the player to the adjacent floor. Going up arrives on the
// new floor's down staircase and vice versa.
func (s *Session) takeStairs(ctx context.Context) error {
	p := s.player.Position()
	arrival := world.CellUpStairs
	if s.m.At(p.X, p.Y) == world.CellUpStairs {
		s.floor++
		arrival = world.CellDownStairs
	} else {
		s.floor--
	}
	s.logger.Debug().Int("floor", s.floor).Msg("changed floor")
	return s.enterFloor(ctx, &arrival)
}

// updateAI advances every enemy that can see the player by one step toward
// them. Each enemy plans against the positions left by the ones before it.
func (s *Session) updateAI() {
	pp := s.player.Position()
	for _, e := range s.enemies {
		if !vision.LineOfSight(s.m, pp, e.Position()) {
			continue
		}
		dir, ok := ai.FindStep(s.m, s.Actors(), e.Position())
		if !ok {
			continue
		}
		e.Move(dir)
	}
}

func (s *Session) enemyAt(p world.Point) int {
	for i, e := range s.enemies {
		if e.Position() == p {
			return i
		}
	}
	return -1
}

func (s *Session) adjacentEnemy() *entity.Enemy {
	for _, n := range s.player.Position().Neighbors() {
		if i := s.enemyAt(n); i >= 0 {
			return s.enemies[i]
		}
	}
	return nil
}

// DropTorch leaves a lit torch on the player's cell. It reports false when
// the player has none left or a torch already burns there.
func (s *Session) DropTorch() bool {
	if s.player == nil || s.state != StatePlaying || s.player.Torches <= 0 {
		return false
	}
	p := s.player.Position()
	for _, t := range s.torches {
		if t.X == p.X && t.Y == p.Y {
			return false
		}
	}
	s.player.Torches--
	s.torches = append(s.torches, entity.Torch{X: p.X, Y: p.Y})
	s.message = "Torch placed"
	return true
}

// ReadMap reveals the enemies, pickups and stairs of the current floor.
// It reports false when the player has no map or the floor is already revealed.
func (s *Session) ReadMap() bool {
	if s.player == nil || s.state != StatePlaying || s.player.Maps <= 0 || s.light.Reveal {
		return false
	}
	s.player.Maps--
	s.light.Reveal = true
	s.message = "Map read"
	return true
}

// Actors returns a snapshot of everything standing on the floor, player first.
func (s *Session) Actors() []entity.Actor {
	if s.player == nil {
		return nil
	}
	actors := make([]entity.Actor, 0, 1+len(s.enemies)+len(s.rupees)+len(s.torches))
	actors = append(actors, s.player.Actor())
	for _, e := range s.enemies {
		actors = append(actors, e.Actor())
	}
	for _, r := range s.rupees {
		actors = append(actors, r.Actor())
	}
	for _, t := range s.torches {
		actors = append(actors, t.Actor())
	}
	return actors
}

// Visible reports whether the cell at p may be drawn.
func (s *Session) Visible(p world.Point) bool {
	if s.m == nil {
		return false
	}
	return s.light.Visible(s.m, s.Actors(), p)
}

func (s *Session) Map() *world.Map         { return s.m }
func (s *Session) Player() *entity.Player   { return s.player }
func (s *Session) Enemies() []*entity.Enemy { return s.enemies }
func (s *Session) Rupees() []entity.Rupee   { return s.rupees }
func (s *Session) Torches() []entity.Torch  { return s.torches }
func (s *Session) Floor() int               { return s.floor }
func (s *Session) State() State             { return s.state }
func (s *Session) Message() string          { return s.message }
func (s *Session) Turn() int                { return s.turn }
func (s *Session) RunID() string            { return s.runID }
func (s *Session) Revealed() bool           { return s.light.Reveal }
