package main

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pang/camera"
	"github.com/pthm-cable/pang/config"
	"github.com/pthm-cable/pang/game"
	"github.com/pthm-cable/pang/renderer"
	"github.com/pthm-cable/pang/ui"
)

var keyHelp = []string{
	"Left/Right or A/D  move",
	"Space/Up           fire",
	"P/Esc              pause",
	"R                  restart",
	"Tab                controls panel",
	"Wheel/0            zoom/reset view",
	"B G F T L H        overlays",
}

// runGraphical opens a raylib window and plays until it is closed or
// maxTicks (if > 0) is reached.
func runGraphical(g *game.Game, cfg *config.Config, maxTicks int, autoplay bool) {
	screenW, screenH := int32(cfg.Screen.Width), int32(cfg.Screen.Height)

	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(screenW, screenH, "Pang")
	defer rl.CloseWindow()

	// Esc pauses instead of closing the window
	rl.SetExitKey(0)
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	arena := g.Arena()
	wall := float32(cfg.Arena.WallThickness)
	cam := camera.New(float32(screenW), float32(screenH), 2*(arena.HalfWidth+wall), 2*(arena.HalfHeight+wall))

	background := renderer.NewBackgroundRenderer(screenW, screenH)
	arenaRenderer := renderer.NewArenaRenderer(cam)

	model := game.NewHUD(g.Events(), g.Session())
	defer model.Close()

	hud := ui.NewHUD()
	overlays := ui.NewOverlayRegistry()
	controls := ui.NewControlsPanel(10, 70, 220)
	perfPanel := ui.NewPerfPanel(10, 0)
	scores := ui.NewScoresPanel(340)

	var pilot *game.Autopilot
	if autoplay {
		pilot = game.NewAutopilot(cfg.Autopilot)
	}

	pending := ui.ActionNone
	for !rl.WindowShouldClose() {
		if rl.IsWindowResized() {
			screenW, screenH = int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
			cam.Resize(float32(screenW), float32(screenH))
			background.Resize(screenW, screenH)
		}

		overlays.HandleKeys()
		if rl.IsKeyPressed(rl.KeyTab) {
			controls.Toggle()
		}
		if wheel := rl.GetMouseWheelMove(); wheel != 0 {
			cam.ZoomBy(1 + 0.1*wheel)
		}
		if rl.IsKeyPressed(rl.KeyZero) {
			cam.Reset()
		}

		in := readInput()
		if pilot != nil {
			auto := pilot.Decide(g)
			in.MoveX, in.Fire = auto.MoveX, auto.Fire
		}
		switch pending {
		case ui.ActionTogglePause:
			in.Pause = true
		case ui.ActionRestart:
			in.Restart = true
		}
		g.Update(in)

		rl.BeginDrawing()
		background.Draw(g.BackgroundColor())
		if overlays.IsEnabled(ui.OverlayGrid) {
			arenaRenderer.DrawGrid(arena)
		}
		arenaRenderer.Draw(g)
		if overlays.IsEnabled(ui.OverlayHitboxes) {
			arenaRenderer.DrawHitboxes(g)
		}

		data := ui.HUDData{
			Model:        model,
			Remaining:    g.Session().RemainingTime,
			LevelTime:    cfg.Session.LevelTime,
			Balls:        g.BallCount(),
			Tick:         g.Tick(),
			Speed:        g.StepsPerUpdate(),
			FPS:          rl.GetFPS(),
			Paused:       g.Paused(),
			ScreenWidth:  screenW,
			ScreenHeight: screenH,
		}
		hud.Draw(data)

		var speed int
		pending, speed = controls.Draw(g.Paused(), g.StepsPerUpdate(), overlays)
		if speed != g.StepsPerUpdate() {
			g.SetStepsPerUpdate(speed)
		}

		if overlays.IsEnabled(ui.OverlayPerf) {
			perfPanel.SetPosition(10, screenH-200)
			perfPanel.Draw(g.PerfStats())
		}
		if overlays.IsEnabled(ui.OverlayHighScores) {
			scores.DrawHighScores(screenW, screenH, g.HighScores().Entries())
		}
		if overlays.IsEnabled(ui.OverlayLevelHistory) {
			scores.DrawLevelHistory(screenW, screenH, g.LevelHistory(), 10)
		}
		if overlays.IsEnabled(ui.OverlayControls) {
			hud.DrawControls(screenW, screenH, keyHelp)
		}
		hud.DrawBanners(data)
		rl.EndDrawing()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			break
		}
	}
}

// readInput samples the keyboard for one frame.
func readInput() game.Input {
	var in game.Input
	if rl.IsKeyDown(rl.KeyLeft) || rl.IsKeyDown(rl.KeyA) {
		in.MoveX--
	}
	if rl.IsKeyDown(rl.KeyRight) || rl.IsKeyDown(rl.KeyD) {
		in.MoveX++
	}
	in.Fire = rl.IsKeyPressed(rl.KeySpace) || rl.IsKeyPressed(rl.KeyUp)
	in.Pause = rl.IsKeyPressed(rl.KeyP) || rl.IsKeyPressed(rl.KeyEscape)
	in.Restart = rl.IsKeyPressed(rl.KeyR)
	return in
}
