package main

import (
	"fmt"
	"image/color"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewW     = 600
	previewH     = 340
	panelWidth   = windowWidth - previewW - 30
)

var arcColors = []color.RGBA{
	{R: 230, G: 80, B: 80, A: 255},
	{R: 80, G: 170, B: 230, A: 255},
	{R: 90, G: 200, B: 110, A: 255},
	{R: 220, G: 180, B: 60, A: 255},
}

// runPreview opens an interactive window that redraws every ball size's
// bounce arc as the parameter sliders move.
func runPreview(e *Evaluator) {
	rl.InitWindow(windowWidth, windowHeight, "Bounce Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	values := e.params.ExtractFromConfig(e.base)
	var arcs []Arc
	var fitness float64
	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			cfg := e.Config(values)
			arcs = arcs[:0]
			for size := 1; size <= cfg.Ball.MaxSize; size++ {
				arcs = append(arcs, SimulateArc(cfg, size))
			}
			fitness = e.Evaluate(values)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		drawArena(e, arcs)

		statsY := int32(previewH + 30)
		rl.DrawText(fmt.Sprintf("Squared error: %.5f", fitness), 15, statsY, 16, rl.DarkGray)
		for i, a := range arcs {
			target := e.targets[i]
			rl.DrawText(fmt.Sprintf("Size %d  apex %.3f  target %.3f", a.Size, a.Apex, target),
				15, statsY+22*int32(i+1), 16, arcColors[i%len(arcColors)])
		}

		panelX := float32(previewW + 20)
		panelY := float32(10)
		rl.DrawText("Bounce Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		for i, spec := range e.params.Specs {
			rl.DrawText(spec.Path, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			v := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				fmt.Sprintf("%.1f", spec.Min), fmt.Sprintf("%.1f", spec.Max),
				float32(values[i]), float32(spec.Min), float32(spec.Max),
			)
			rl.DrawText(fmt.Sprintf("%.2f", values[i]), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if float64(v) != values[i] {
				values[i] = float64(v)
				needsRegen = true
			}
			panelY += 35
		}

		rl.DrawLine(int32(panelX), int32(panelY), int32(panelX)+int32(panelWidth)-20, int32(panelY), rl.LightGray)
		panelY += 15

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 28}, "Reset") {
			copy(values, e.params.ExtractFromConfig(e.base))
			needsRegen = true
		}
		panelY += 45

		rl.DrawText("Copy these into config.yaml:", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 20
		rl.DrawText("ball:", int32(panelX), int32(panelY), 14, rl.DarkGray)
		for i, spec := range e.params.Specs {
			panelY += 18
			rl.DrawText(fmt.Sprintf("  %s: %.3f", spec.Name, values[i]), int32(panelX), int32(panelY), 14, rl.DarkGray)
		}

		rl.EndDrawing()
	}
}

// drawArena draws the arena box, the target heights and each arc.
func drawArena(e *Evaluator, arcs []Arc) {
	halfW := float32(e.base.Arena.HalfWidth)
	halfH := float32(e.base.Arena.HalfHeight)
	scale := min(previewW/(2*halfW), previewH/(2*halfH))
	ox := float32(10) + previewW/2
	oy := float32(10) + previewH/2
	toScreen := func(x, y float32) rl.Vector2 {
		return rl.Vector2{X: ox + x*scale, Y: oy - y*scale}
	}

	rl.DrawRectangleLinesEx(rl.Rectangle{
		X: ox - halfW*scale, Y: oy - halfH*scale,
		Width: 2 * halfW * scale, Height: 2 * halfH * scale,
	}, 2, rl.DarkGray)

	for i, t := range e.targets {
		y := -halfH + float32(t)*2*halfH
		c := arcColors[i%len(arcColors)]
		c.A = 90
		rl.DrawLineEx(toScreen(-halfW, y), toScreen(halfW, y), 1, c)
	}

	for i, a := range arcs {
		c := arcColors[i%len(arcColors)]
		for j := 1; j < len(a.Points); j++ {
			p0, p1 := a.Points[j-1], a.Points[j]
			rl.DrawLineEx(toScreen(p0.X, p0.Y), toScreen(p1.X, p1.Y), 2, c)
		}
	}
}
