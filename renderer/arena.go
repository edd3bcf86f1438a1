package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pang/camera"
	"github.com/pthm-cable/pang/components"
	"github.com/pthm-cable/pang/game"
	"github.com/pthm-cable/pang/systems"
)

var (
	wallColor     = rl.Color{R: 70, G: 60, B: 55, A: 255}
	platformColor = rl.Color{R: 150, G: 110, B: 70, A: 255}
	ceilingColor  = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ropeColor     = rl.Color{R: 220, G: 220, B: 200, A: 255}
	tipColor      = rl.Color{R: 255, G: 240, B: 120, A: 255}
	playerColor   = rl.Color{R: 80, G: 170, B: 255, A: 255}
	hitboxColor   = rl.Color{R: 0, G: 255, B: 120, A: 200}
	gridColor     = rl.Color{R: 255, G: 255, B: 255, A: 30}
)

// ArenaRenderer draws the level geometry and entities through a camera.
// Scratch slices are reused across frames.
type ArenaRenderer struct {
	cam *camera.Camera

	balls    []game.BallView
	harpoons []game.HarpoonView
	surfaces []systems.SurfaceBox
}

// NewArenaRenderer creates a renderer for the given camera.
func NewArenaRenderer(cam *camera.Camera) *ArenaRenderer {
	return &ArenaRenderer{cam: cam}
}

// Draw renders surfaces, harpoons, balls and the player, in that order.
func (r *ArenaRenderer) Draw(g *game.Game) {
	r.surfaces = g.Surfaces(r.surfaces[:0])
	r.harpoons = g.Harpoons(r.harpoons[:0])
	r.balls = g.Balls(r.balls[:0])

	for _, s := range r.surfaces {
		r.drawSurface(s)
	}
	for _, h := range r.harpoons {
		r.drawHarpoon(h)
	}
	for _, b := range r.balls {
		r.drawBall(b)
	}
	if p, ok := g.Player(); ok && p.Visible {
		r.drawPlayer(p)
	}
}

// DrawHitboxes outlines everything the collision code tests against.
// Call after Draw so the scratch slices are current.
func (r *ArenaRenderer) DrawHitboxes(g *game.Game) {
	for _, s := range r.surfaces {
		rl.DrawRectangleLinesEx(r.boxRect(s.X, s.Y, s.HalfW, s.HalfH), 1, hitboxColor)
	}
	for _, b := range r.balls {
		sx, sy := r.cam.WorldToScreen(b.X, b.Y)
		rl.DrawCircleLines(int32(sx), int32(sy), r.cam.ScaleY(b.Radius), hitboxColor)
	}
	for _, h := range r.harpoons {
		cy := (h.Bottom + h.Top) * 0.5
		rl.DrawRectangleLinesEx(r.boxRect(h.X, cy, h.Width*0.5, (h.Top-h.Bottom)*0.5), 1, hitboxColor)
	}
	if p, ok := g.Player(); ok {
		rl.DrawRectangleLinesEx(r.boxRect(p.X, p.Y, p.HalfWidth, p.HalfHeight), 1, hitboxColor)
	}
}

// DrawGrid draws one-unit grid lines across the arena.
func (r *ArenaRenderer) DrawGrid(arena systems.Arena) {
	for x := float32(math.Ceil(float64(-arena.HalfWidth))); x <= arena.HalfWidth; x++ {
		x0, y0 := r.cam.WorldToScreen(x, -arena.HalfHeight)
		x1, y1 := r.cam.WorldToScreen(x, arena.HalfHeight)
		rl.DrawLineV(rl.Vector2{X: x0, Y: y0}, rl.Vector2{X: x1, Y: y1}, gridColor)
	}
	for y := float32(math.Ceil(float64(-arena.HalfHeight))); y <= arena.HalfHeight; y++ {
		x0, y0 := r.cam.WorldToScreen(-arena.HalfWidth, y)
		x1, y1 := r.cam.WorldToScreen(arena.HalfWidth, y)
		rl.DrawLineV(rl.Vector2{X: x0, Y: y0}, rl.Vector2{X: x1, Y: y1}, gridColor)
	}
}

func (r *ArenaRenderer) drawSurface(s systems.SurfaceBox) {
	color := platformColor
	if s.Tag == components.TagCeiling {
		color = ceilingColor
	} else if s.HalfW > 4 || s.HalfH > 4 {
		color = wallColor
	}
	rl.DrawRectangleRec(r.boxRect(s.X, s.Y, s.HalfW, s.HalfH), color)
}

func (r *ArenaRenderer) drawBall(b game.BallView) {
	sx, sy := r.cam.WorldToScreen(b.X, b.Y)
	if !r.cam.IsVisible(b.X, b.Y, b.Radius) {
		return
	}
	radius := r.cam.ScaleY(b.Radius)
	base := rl.Color{R: b.Color.R, G: b.Color.G, B: b.Color.B, A: 255}
	rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, radius, base)

	// Highlight up and to the left
	hl := rl.Color{R: 255, G: 255, B: 255, A: 110}
	rl.DrawCircleV(rl.Vector2{X: sx - radius*0.35, Y: sy - radius*0.35}, radius*0.3, hl)
}

func (r *ArenaRenderer) drawHarpoon(h game.HarpoonView) {
	x0, y0 := r.cam.WorldToScreen(h.X, h.Bottom)
	x1, y1 := r.cam.WorldToScreen(h.X, h.Top)
	thick := r.cam.ScaleX(h.Width)
	if thick < 1 {
		thick = 1
	}
	rl.DrawLineEx(rl.Vector2{X: x0, Y: y0}, rl.Vector2{X: x1, Y: y1}, thick, ropeColor)
	rl.DrawTriangle(
		rl.Vector2{X: x1, Y: y1 - thick*2},
		rl.Vector2{X: x1 - thick*1.5, Y: y1 + thick},
		rl.Vector2{X: x1 + thick*1.5, Y: y1 + thick},
		tipColor,
	)
}

func (r *ArenaRenderer) drawPlayer(p game.PlayerView) {
	rect := r.boxRect(p.X, p.Y, p.HalfWidth, p.HalfHeight)
	rl.DrawRectangleRounded(rect, 0.3, 6, playerColor)
}

// boxRect converts a centred world box to a screen rectangle.
func (r *ArenaRenderer) boxRect(cx, cy, halfW, halfH float32) rl.Rectangle {
	x, y := r.cam.WorldToScreen(cx-halfW, cy+halfH)
	return rl.Rectangle{X: x, Y: y, Width: r.cam.ScaleX(halfW * 2), Height: r.cam.ScaleY(halfH * 2)}
}
