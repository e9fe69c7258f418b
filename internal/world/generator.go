package world

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"

	"github.com/samdwyer/tinyrogue/internal/rng"
	"github.com/samdwyer/tinyrogue/internal/telemetry"
)

const (
	DefaultFeatures    = 10
	DefaultRoomChance  = 75   // percent
	DefaultQuality     = 1000 // random candidates per growth or stair pass
	DefaultMaxAttempts = 100

	minRoomSize       = 4
	maxRoomWidth      = 8
	maxRoomHeight     = 6
	minCorridorLength = 2
	maxCorridorLength = 6
)

var (
	// ErrGenerationExhausted matches any *ExhaustedError.
	ErrGenerationExhausted = errors.New("world: generation exhausted")
	// ErrInvalidOptions is returned for generator options that can never succeed.
	ErrInvalidOptions = errors.New("world: invalid generator options")
)

// ExhaustedError reports that no attempt produced both staircases.
// Usually the feature count is too high for the map size.
type ExhaustedError struct {
	Attempts int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("world: no valid dungeon after %d attempts", e.Attempts)
}

// Is makes errors.Is(err, ErrGenerationExhausted) work.
func (e *ExhaustedError) Is(target error) bool {
	return target == ErrGenerationExhausted
}

// Options tune the generator. Every field is used as given; start from
// DefaultOptions and override what differs.
type Options struct {
	Width       int
	Height      int
	Features    int // rooms and corridors to grow, the seed room included
	RoomChance  int // percentage chance that a feature is a room rather than a corridor
	Quality     int
	MaxAttempts int
}

// DefaultOptions returns a 28x24 map with 10 features and a 75% room chance.
func DefaultOptions() Options {
	return Options{
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Features:    DefaultFeatures,
		RoomChance:  DefaultRoomChance,
		Quality:     DefaultQuality,
		MaxAttempts: DefaultMaxAttempts,
	}
}

func (o Options) validate() error {
	switch {
	case o.Width < 3 || o.Height < 3:
		return fmt.Errorf("%w: map %dx%d is smaller than 3x3", ErrInvalidOptions, o.Width, o.Height)
	case o.Features < 1:
		return fmt.Errorf("%w: features %d", ErrInvalidOptions, o.Features)
	case o.RoomChance < 0 || o.RoomChance > 100:
		return fmt.Errorf("%w: room chance %d outside 0..100", ErrInvalidOptions, o.RoomChance)
	case o.Quality < 1:
		return fmt.Errorf("%w: quality %d", ErrInvalidOptions, o.Quality)
	case o.MaxAttempts < 1:
		return fmt.Errorf("%w: max attempts %d", ErrInvalidOptions, o.MaxAttempts)
	}
	return nil
}

// Generator grows connected dungeons from a seed room.
type Generator struct {
	opts           Options
	logger         zerolog.Logger
	failedAttempts metric.Int64Counter
	exhausted      metric.Int64Counter
}

// NewGenerator validates the options and prepares the generator's counters.
func NewGenerator(opts Options, logger zerolog.Logger) (*Generator, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	meter := telemetry.Meter("world")
	failed, err := meter.Int64Counter("dungeon.generate.failed_attempts",
		metric.WithDescription("Generation attempts discarded because a staircase could not be placed"))
	if err != nil {
		return nil, fmt.Errorf("create failed attempts counter: %w", err)
	}
	exhausted, err := meter.Int64Counter("dungeon.generate.exhausted",
		metric.WithDescription("Generate calls that ran out of attempts"))
	if err != nil {
		return nil, fmt.Errorf("create exhausted counter: %w", err)
	}

	return &Generator{
		opts:           opts,
		logger:         logger.With().Str("component", "generator").Logger(),
		failedAttempts: failed,
		exhausted:      exhausted,
	}, nil
}

// Options returns the options the generator was created with.
func (g *Generator) Options() Options {
	return g.opts
}

// Generate builds a dungeon with the default map size and retry budget.
func Generate(ctx context.Context, seed int64, features, roomChance int) (*Map, error) {
	opts := DefaultOptions()
	opts.Features = features
	opts.RoomChance = roomChance
	g, err := NewGenerator(opts, zerolog.Nop())
	if err != nil {
		return nil, err
	}
	return g.Generate(ctx, seed)
}

// Generate builds a dungeon from a fresh generator seeded with seed.
// Equal seeds and options always produce identical maps.
func (g *Generator) Generate(ctx context.Context, seed int64) (*Map, error) {
	return g.GenerateFrom(ctx, rng.New(seed))
}

// GenerateFrom builds a dungeon drawing from r. Failed attempts are
// discarded and retried with the same advancing stream.
func (g *Generator) GenerateFrom(ctx context.Context, r *rng.Lehmer) (*Map, error) {
	tracer := telemetry.Tracer("world")
	ctx, span := tracer.Start(ctx, "dungeon.generate")
	defer span.End()

	startTime := time.Now()

	for attempt := 1; attempt <= g.opts.MaxAttempts; attempt++ {
		c := &carver{
			m:    NewMap(g.opts.Width, g.opts.Height),
			rng:  r,
			opts: g.opts,
		}
		if c.makeDungeon() {
			span.SetAttributes(
				attribute.Int("dungeon.width", c.m.Width),
				attribute.Int("dungeon.height", c.m.Height),
				attribute.Int("dungeon.room_count", len(c.m.Rooms)),
				attribute.Int("dungeon.feature_count", c.m.Features),
				attribute.Int("dungeon.attempts", attempt),
				attribute.Int64("dungeon.generation_ms", time.Since(startTime).Milliseconds()),
			)
			return c.m, nil
		}

		g.failedAttempts.Add(ctx, 1)
		g.logger.Warn().
			Int("attempt", attempt).
			Int("features", c.m.Features).
			Msg("failed to make beatable map, trying again")
	}

	g.exhausted.Add(ctx, 1)
	err := &ExhaustedError{Attempts: g.opts.MaxAttempts}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	g.logger.Error().Err(err).Msg("dungeon generation exhausted")
	return nil, err
}

// carver holds the state of a single generation attempt.
type carver struct {
	m    *Map
	rng  *rng.Lehmer
	opts Options
}

// makeDungeon grows the seed room, then features, then both staircases.
func (c *carver) makeDungeon() bool {
	dir := Direction(c.rng.NextInRange(0, 3))
	if !c.makeRoom(c.m.Width/2, c.m.Height/2, maxRoomWidth, maxRoomHeight, dir) {
		return false
	}

	for features := 1; features < c.opts.Features; features++ {
		if !c.makeFeatures() {
			break
		}
	}

	return c.makeStairs(CellUpStairs) && c.makeStairs(CellDownStairs)
}

// makeFeatures searches for a pivot and grows one feature from it.
// Returns false when the try budget runs out.
func (c *carver) makeFeatures() bool {
	for tries := 0; tries < c.opts.Quality; tries++ {
		x := c.rng.NextInRange(1, c.m.Width-2)
		y := c.rng.NextInRange(1, c.m.Height-2)

		cell := c.m.At(x, y)
		if cell != CellWall && cell != CellCorridor {
			continue
		}
		if c.m.IsAdjacent(x, y, CellDoor) {
			continue
		}

		dir, ok := c.growthDirection(x, y)
		if !ok {
			continue
		}
		if c.makeFeature(x, y, dir) {
			return true
		}
	}
	return false
}

// growthDirection points away from the single carved neighbour of (x, y).
func (c *carver) growthDirection(x, y int) (Direction, bool) {
	carved := 0
	var from Direction
	for _, d := range Directions {
		n := Pt(x, y).Step(d)
		switch c.m.At(n.X, n.Y) {
		case CellFloor, CellCorridor:
			carved++
			from = d
		}
	}
	if carved != 1 {
		return 0, false
	}
	return from.Opposite(), true
}

// makeFeature attaches a room or a corridor to the pivot at (x, y).
func (c *carver) makeFeature(x, y int, dir Direction) bool {
	dx, dy := dir.Delta()
	ex, ey := x+dx, y+dy

	chance := c.rng.NextInRange(0, 100)
	if chance <= c.opts.RoomChance {
		if c.makeRoom(ex, ey, maxRoomWidth, maxRoomHeight, dir) {
			c.m.set(x, y, CellDoor)
			c.m.set(ex, ey, CellFloor) // open the new room's entry wall
			return true
		}
		return false
	}

	if c.makeCorridor(ex, ey, maxCorridorLength, dir) {
		c.m.set(x, y, CellDoor)
		return true
	}
	return false
}

// makeCorridor carves a straight corridor starting at (x, y).
func (c *carver) makeCorridor(x, y, maxLength int, dir Direction) bool {
	length := c.rng.NextInRange(minCorridorLength, maxLength)

	xbeg, ybeg := x, y
	xend, yend := x, y

	switch dir {
	case North:
		ybeg = y - length
	case East:
		xend = x + length
	case South:
		yend = y + length
	case West:
		xbeg = x - length
	}

	if !c.m.InBounds(xbeg, ybeg) || !c.m.InBounds(xend, yend) {
		return false
	}
	if !c.m.isAreaUnused(xbeg, ybeg, xend, yend) {
		return false
	}

	c.m.fill(xbeg, ybeg, xend, yend, CellCorridor)
	c.m.Features++
	return true
}

// makeRoom carves a walled room whose entry wall contains (x, y).
func (c *carver) makeRoom(x, y, xmax, ymax int, dir Direction) bool {
	xlen := c.rng.NextInRange(minRoomSize, xmax)
	ylen := c.rng.NextInRange(minRoomSize, ymax)

	xbeg, ybeg := x, y
	xend, yend := x, y

	switch dir {
	case North:
		ybeg = y - ylen
		xbeg = x - xlen/2
		xend = x + (xlen+1)/2
	case East:
		ybeg = y - ylen/2
		yend = y + (ylen+1)/2
		xend = x + xlen
	case South:
		yend = y + ylen
		xbeg = x - xlen/2
		xend = x + (xlen+1)/2
	case West:
		ybeg = y - ylen/2
		yend = y + (ylen+1)/2
		xbeg = x - xlen
	}

	if !c.m.InBounds(xbeg, ybeg) || !c.m.InBounds(xend, yend) {
		return false
	}
	if !c.m.isAreaUnused(xbeg, ybeg, xend, yend) {
		return false
	}

	c.m.fill(xbeg, ybeg, xend, yend, CellWall)
	c.m.fill(xbeg+1, ybeg+1, xend-1, yend-1, CellFloor)
	c.m.Rooms = append(c.m.Rooms, roomFromCorners(xbeg, ybeg, xend, yend))
	c.m.Features++
	return true
}

// makeStairs places one staircase next to walkable ground, away from doors.
func (c *carver) makeStairs(stairs Cell) bool {
	for tries := 0; tries < c.opts.Quality; tries++ {
		x := c.rng.NextInRange(1, c.m.Width-2)
		y := c.rng.NextInRange(1, c.m.Height-2)

		if !c.m.IsAdjacent(x, y, CellFloor) && !c.m.IsAdjacent(x, y, CellCorridor) {
			continue
		}
		if c.m.IsAdjacent(x, y, CellDoor) {
			continue
		}
		if c.m.IsStairs(x, y) {
			continue
		}

		c.m.set(x, y, stairs)
		return true
	}
	return false
}
