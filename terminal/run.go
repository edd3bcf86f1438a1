package terminal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/pang/game"
)

const helpLine = " ←/→ move  ↑/space fire  p pause  r restart  +/- speed  o stats  q quit"

// Run opens the terminal, plays until the user quits, ctx is cancelled or
// maxTicks (if > 0) is reached, and restores the terminal.
func Run(ctx context.Context, g *game.Game, maxTicks int) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	defer screen.Fini()

	screen.HideCursor()
	Loop(ctx, screen, g, maxTicks)
	return nil
}

// Loop drives g from screen events at the configured tick rate. The
// caller owns the screen.
func Loop(ctx context.Context, screen tcell.Screen, g *game.Game, maxTicks int) {
	cfg := g.Config()
	view := NewView(screen, g.Arena(), float32(cfg.Arena.WallThickness))
	hud := game.NewHUD(g.Events(), g.Session())
	defer hud.Close()

	events := make(chan tcell.Event, 32)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			default:
				// Drop input rather than block PollEvent
			}
		}
	}()

	ticker := time.NewTicker(time.Duration(cfg.Physics.DT * float64(time.Second)))
	defer ticker.Stop()

	var keys Keys
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !keys.Handle(ev) {
					slog.Info("terminal_quit", "tick", g.Tick())
					return
				}
				if d := keys.SpeedDelta(); d != 0 {
					g.SetStepsPerUpdate(g.StepsPerUpdate() + d)
				}
			case *tcell.EventResize:
				screen.Sync()
				view.Resize()
			}
		case <-ticker.C:
			g.Update(keys.Next())

			status := helpLine
			if keys.ShowStats() {
				status = fmt.Sprintf(" balls %d  harpoons %d  tick %d  speed %dx  best %d",
					g.BallCount(), g.HarpoonCount(), g.Tick(), g.StepsPerUpdate(), g.HighScores().Best())
			}
			view.Draw(g, hud, status)
			screen.Show()

			if maxTicks > 0 && int(g.Tick()) >= maxTicks {
				slog.Info("max ticks reached", "tick", g.Tick())
				return
			}
		}
	}
}
