package game

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/samdwyer/tinyrogue/internal/world"
)

func TestRuneCommand(t *testing.T) {
	tests := []struct {
		r    rune
		want command
	}{
		{'w', cmdNorth},
		{'A', cmdWest},
		{'s', cmdSouth},
		{'d', cmdEast},
		{'t', cmdTorch},
		{'m', cmdMap},
		{'n', cmdRestart},
		{'q', cmdQuit},
		{'x', cmdNone},
	}
	for _, tt := range tests {
		if got := runeCommand(tt.r); got != tt.want {
			t.Errorf("runeCommand(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	return &Game{
		session: newTestSession(t, seed),
		logger:  zerolog.Nop(),
		running: true,
	}
}

func TestApplyCommands(t *testing.T) {
	g := newTestGame(t, 8)
	arrange(g.session, world.Pt(1, 1), hall...)
	g.session.player.Torches = 1
	ctx := context.Background()

	if err := g.apply(ctx, cmdEast); err != nil {
		t.Fatal(err)
	}
	if got := g.session.Player().Position(); got != world.Pt(2, 1) {
		t.Errorf("player at %v after moving east", got)
	}

	if err := g.apply(ctx, cmdTorch); err != nil {
		t.Fatal(err)
	}
	if len(g.session.Torches()) != 1 {
		t.Error("torch command did not drop a torch")
	}

	if err := g.apply(ctx, cmdQuit); err != nil {
		t.Fatal(err)
	}
	if g.running {
		t.Error("quit should stop the loop")
	}
}

func TestApplyRestartOnlyWhenOver(t *testing.T) {
	g := newTestGame(t, 9)
	ctx := context.Background()
	g.session.message = "still here"

	if err := g.apply(ctx, cmdRestart); err != nil {
		t.Fatal(err)
	}
	if g.session.Message() != "still here" {
		t.Error("restart while playing should be ignored")
	}

	g.session.state = StateOver
	g.session.player.HP = 0
	if err := g.apply(ctx, cmdNorth); err != nil {
		t.Fatal(err)
	}
	if g.session.State() != StateOver {
		t.Error("moves should be ignored after death")
	}
	if err := g.apply(ctx, cmdRestart); err != nil {
		t.Fatal(err)
	}
	if g.session.State() != StatePlaying || g.session.Player().HP != 100 {
		t.Error("restart did not begin a new run")
	}
}

func TestFrame(t *testing.T) {
	g := newTestGame(t, 10)
	f := g.frame()

	if f.Map != g.session.Map() {
		t.Error("frame should draw the session's map")
	}
	last := f.Glyphs[len(f.Glyphs)-1]
	p := g.session.Player()
	if last.Rune != '@' || last.X != p.X || last.Y != p.Y {
		t.Errorf("player glyph should be drawn last, got %+v", last)
	}
	if !strings.HasPrefix(f.Status, "0 KM | 100 HP") {
		t.Errorf("Status = %q", f.Status)
	}
	if !f.Visible(p.Position()) {
		t.Error("the player's own cell should be visible")
	}

	g.session.state = StateOver
	if !strings.Contains(g.frame().Message, "Press n") {
		t.Error("game over frame should explain how to restart")
	}
}
