package terminal

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/pang/config"
	"github.com/pthm-cable/pang/game"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func newGame(t *testing.T) *game.Game {
	t.Helper()
	g, err := game.NewGame(config.MustLoad(""), game.DefaultOptions())
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	g.Start()
	return g
}

func row(s tcell.Screen, y, w int) string {
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func count(s tcell.Screen, w, h int, glyph rune) int {
	n := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if r, _, _, _ := s.GetContent(x, y); r == glyph {
				n++
			}
		}
	}
	return n
}

func TestKeysHoldAndEdges(t *testing.T) {
	var k Keys

	k.Handle(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	k.Handle(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))

	in := k.Next()
	if in.MoveX != -1 || !in.Fire {
		t.Fatalf("first tick = %+v, want left + fire", in)
	}
	if in = k.Next(); in.Fire {
		t.Error("fire repeated on second tick")
	}

	for i := 0; i < holdTicks; i++ {
		in = k.Next()
	}
	if in.MoveX != 0 {
		t.Errorf("move still held after %d ticks: %v", holdTicks+1, in.MoveX)
	}

	k.Handle(tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone))
	k.Handle(tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone))
	if in = k.Next(); in.MoveX != 0 {
		t.Errorf("stop key left MoveX = %v", in.MoveX)
	}
}

func TestKeysCommands(t *testing.T) {
	tests := []struct {
		name  string
		ev    *tcell.EventKey
		check func(game.Input) bool
	}{
		{"pause", tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone), func(in game.Input) bool { return in.Pause }},
		{"escape pauses", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), func(in game.Input) bool { return in.Pause }},
		{"restart", tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), func(in game.Input) bool { return in.Restart }},
		{"up fires", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), func(in game.Input) bool { return in.Fire }},
		{"right", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), func(in game.Input) bool { return in.MoveX == 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var k Keys
			if !k.Handle(tt.ev) {
				t.Fatal("Handle returned quit")
			}
			if in := k.Next(); !tt.check(in) {
				t.Errorf("input = %+v", in)
			}
		})
	}

	var k Keys
	k.Handle(tcell.NewEventKey(tcell.KeyRune, '+', tcell.ModNone))
	k.Handle(tcell.NewEventKey(tcell.KeyRune, '+', tcell.ModNone))
	k.Handle(tcell.NewEventKey(tcell.KeyRune, '-', tcell.ModNone))
	if d := k.SpeedDelta(); d != 1 {
		t.Errorf("SpeedDelta = %d, want 1", d)
	}
	if d := k.SpeedDelta(); d != 0 {
		t.Errorf("SpeedDelta not cleared: %d", d)
	}
	if k.Handle(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) || !k.Quit() {
		t.Error("q did not quit")
	}
}

func TestViewDrawsArena(t *testing.T) {
	const w, h = 80, 24
	screen := newScreen(t, w, h)
	g := newGame(t)
	hud := game.NewHUD(g.Events(), g.Session())
	defer hud.Close()

	v := NewView(screen, g.Arena(), float32(g.Config().Arena.WallThickness))
	v.Draw(g, hud, helpLine)

	top := row(screen, 0, w)
	for _, want := range []string{"Score: 000000", "Lives: 3", "Level: 1", "Time: 02:00"} {
		if !strings.Contains(top, want) {
			t.Errorf("HUD row %q missing %q", top, want)
		}
	}
	if n := count(screen, w, h, glyphBall); n == 0 {
		t.Error("no ball cells drawn")
	}
	if floor := row(screen, h-2, w); !strings.ContainsRune(floor, glyphSolid) {
		t.Errorf("floor row %q has no wall cells", floor)
	}
	if status := row(screen, h-1, w); !strings.Contains(status, "fire") {
		t.Errorf("status row %q", status)
	}
}

func TestViewShowsPauseBanner(t *testing.T) {
	const w, h = 60, 20
	screen := newScreen(t, w, h)
	g := newGame(t)
	hud := game.NewHUD(g.Events(), g.Session())
	defer hud.Close()

	g.Update(game.Input{Pause: true})
	v := NewView(screen, g.Arena(), float32(g.Config().Arena.WallThickness))
	v.Draw(g, hud, "")

	if mid := row(screen, h/2, w); !strings.Contains(mid, "PAUSED") {
		t.Errorf("middle row %q has no pause banner", mid)
	}
}

func TestLoopStopsAtMaxTicks(t *testing.T) {
	screen := newScreen(t, 80, 24)
	g := newGame(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	Loop(ctx, screen, g, 10)
	if g.Tick() < 10 {
		t.Errorf("Tick = %d, want >= 10", g.Tick())
	}
	if top := row(screen, 0, 80); !strings.Contains(top, "Score:") {
		t.Errorf("HUD row %q", top)
	}
}
