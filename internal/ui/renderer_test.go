package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/tinyrogue/internal/world"
)

func newTestScreen(t *testing.T) *Screen {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := NewScreenFrom(sim)
	if err != nil {
		t.Fatalf("NewScreenFrom: %v", err)
	}
	sim.SetSize(40, 20)
	t.Cleanup(screen.Close)
	return screen
}

func TestDoorOrientation(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		want rune
	}{
		{"walls above and below", []string{"#", "+", "#"}, RuneDoorV},
		{"corridor on both sides", []string{"   ", ",+,", "   "}, RuneDoorV},
		{"floor left corridor right", []string{"   ", ".+,", "   "}, RuneDoorV},
		{"corridor left floor right", []string{"   ", ",+.", "   "}, RuneDoorV},
		{"room below corridor above", []string{"#,#", "#+#", "#.#"}, RuneDoorH},
		{"floor on both sides", []string{"   ", ".+.", "   "}, RuneDoorH},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := world.MustFromRows(tt.rows...)
			x, y := 0, 1
			if m.Width == 3 {
				x = 1
			}
			if got := CellRune(m, x, y); got != tt.want {
				t.Errorf("CellRune = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCellRune(t *testing.T) {
	m := world.MustFromRows(" #.,<>")
	want := []rune{RuneUnused, RuneWall, RuneFloor, RuneCorridor, RuneUpStairs, RuneDownStairs}
	for x, w := range want {
		if got := CellRune(m, x, 0); got != w {
			t.Errorf("CellRune(%d,0) = %q, want %q", x, got, w)
		}
	}
}

func TestRenderHidesInvisibleCells(t *testing.T) {
	screen := newTestScreen(t)
	r := NewRenderer(screen)

	m := world.MustFromRows(
		"#####",
		"#...#",
		"#####",
	)
	lit := world.Pt(1, 1)
	r.Render(Frame{
		Map:     m,
		Visible: func(p world.Point) bool { return p.Manhattan(lit) <= 1 },
		Glyphs: []Glyph{
			{X: 1, Y: 1, Rune: '@'},
			{X: 3, Y: 1, Rune: 'E'},
		},
		Status:  "0 KM | 100 HP",
		Message: "hello",
	})

	tests := []struct {
		x, y int
		want rune
	}{
		{1, 1, '@'},
		{2, 1, RuneFloor},
		{1, 0, RuneWall},
		{3, 1, ' '}, // enemy outside the light
		{4, 1, ' '},
		{0, 4, '0'},
		{0, 5, 'h'},
	}
	for _, tt := range tests {
		if got := screen.RuneAt(tt.x, tt.y); got != tt.want {
			t.Errorf("RuneAt(%d,%d) = %q, want %q", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRenderNilVisibleDrawsAll(t *testing.T) {
	screen := newTestScreen(t)
	NewRenderer(screen).Render(Frame{Map: world.MustFromRows("#.>")})

	if got := screen.RuneAt(2, 0); got != RuneDownStairs {
		t.Errorf("RuneAt(2,0) = %q, want %q", got, RuneDownStairs)
	}
}
