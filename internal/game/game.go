package game

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/samdwyer/tinyrogue/internal/entity"
	"github.com/samdwyer/tinyrogue/internal/ui"
	"github.com/samdwyer/tinyrogue/internal/world"
)

// command is one decoded key press.
type command int

const (
	cmdNone command = iota
	cmdQuit
	cmdNorth
	cmdEast
	cmdSouth
	cmdWest
	cmdTorch
	cmdMap
	cmdRestart
)

var moveCommands = map[command]world.Direction{
	cmdNorth: world.North,
	cmdEast:  world.East,
	cmdSouth: world.South,
	cmdWest:  world.West,
}

// Game drives a Session from the keyboard and draws it with tcell.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	session  *Session
	logger   zerolog.Logger
	running  bool
}

// New creates a game on the given screen.
func New(session *Session, screen *ui.Screen, logger zerolog.Logger) *Game {
	return &Game{
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		session:  session,
		logger:   logger.With().Str("component", "game").Logger(),
		running:  true,
	}
}

// Run starts a run and executes the main game loop until the player quits.
func (g *Game) Run(ctx context.Context) error {
	defer g.screen.Close()

	if err := g.session.Begin(ctx); err != nil {
		return err
	}

	for g.running {
		g.renderer.Render(g.frame())

		switch ev := g.screen.PollEvent().(type) {
		case *tcell.EventKey:
			if err := g.apply(ctx, keyCommand(ev)); err != nil {
				return err
			}
		case *tcell.EventResize:
			g.screen.Sync()
		case nil:
			// screen finalized
			g.running = false
		}
	}
	return nil
}

// keyCommand maps arrows and wasd to moves.
func keyCommand(ev *tcell.EventKey) command {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return cmdQuit
	case tcell.KeyUp:
		return cmdNorth
	case tcell.KeyDown:
		return cmdSouth
	case tcell.KeyLeft:
		return cmdWest
	case tcell.KeyRight:
		return cmdEast
	case tcell.KeyRune:
		return runeCommand(ev.Rune())
	}
	return cmdNone
}

func runeCommand(r rune) command {
	switch r {
	case 'q', 'Q':
		return cmdQuit
	case 'w', 'W':
		return cmdNorth
	case 'a', 'A':
		return cmdWest
	case 's', 'S':
		return cmdSouth
	case 'd', 'D':
		return cmdEast
	case 't', 'T':
		return cmdTorch
	case 'm', 'M':
		return cmdMap
	case 'n', 'N':
		return cmdRestart
	}
	return cmdNone
}

// apply executes one command against the session.
func (g *Game) apply(ctx context.Context, cmd command) error {
	if cmd == cmdQuit {
		g.running = false
		return nil
	}

	if g.session.State() == StateOver {
		if cmd == cmdRestart {
			return g.session.Begin(ctx)
		}
		return nil
	}

	if dir, ok := moveCommands[cmd]; ok {
		res, err := g.session.Move(ctx, dir)
		if err != nil {
			return err
		}
		g.logger.Debug().
			Str("dir", dir.String()).
			Str("outcome", res.Outcome.String()).
			Int("dealt", res.Dealt).
			Int("taken", res.Taken).
			Msg("turn")
		return nil
	}

	switch cmd {
	case cmdTorch:
		g.session.DropTorch()
	case cmdMap:
		g.session.ReadMap()
	}
	return nil
}

// frame converts the session into something the renderer can draw.
func (g *Game) frame() ui.Frame {
	s := g.session
	p := s.Player()

	glyphs := make([]ui.Glyph, 0, len(s.Actors()))
	for _, t := range s.Torches() {
		glyphs = append(glyphs, ui.Glyph{X: t.X, Y: t.Y, Rune: ui.RuneTorch,
			Style: tcell.StyleDefault.Foreground(tcell.ColorOrange)})
	}
	for _, r := range s.Rupees() {
		glyphs = append(glyphs, ui.Glyph{X: r.X, Y: r.Y, Rune: ui.RuneRupee,
			Style: tcell.StyleDefault.Foreground(tcell.ColorGreen)})
	}
	for _, e := range s.Enemies() {
		glyphs = append(glyphs, ui.Glyph{X: e.X, Y: e.Y, Rune: e.Symbol,
			Style: tcell.StyleDefault.Foreground(e.Color()).Bold(true)})
	}
	glyphs = append(glyphs, ui.Glyph{X: p.X, Y: p.Y, Rune: p.Symbol,
		Style: tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)})

	msg := s.Message()
	if s.State() == StateOver {
		msg = fmt.Sprintf("%s. Press n for a new run, q to quit", msg)
	}

	return ui.Frame{
		Map:     s.Map(),
		Visible: s.Visible,
		Glyphs:  glyphs,
		Status:  statusLine(p, s.Floor()),
		Message: msg,
	}
}

func statusLine(p *entity.Player, floor int) string {
	return fmt.Sprintf("%d KM | %d HP | %d Ks | %d ◊ | %d t | %d maps",
		floor, p.HP, p.Kills, p.Rupees, p.Torches, p.Maps)
}
