// Package terminal runs the game in a character terminal through tcell.
package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/pang/camera"
	"github.com/pthm-cable/pang/components"
	"github.com/pthm-cable/pang/game"
	"github.com/pthm-cable/pang/systems"
)

// cellAspect is how many times taller a terminal cell is than it is wide.
const cellAspect = 2

const (
	glyphBall   = '●'
	glyphSolid  = '█'
	glyphRope   = '|'
	glyphTip    = '^'
	glyphPlayer = '▓'
	hudRows     = 1
	statusRows  = 1
)

// View draws a game onto a tcell screen. Scratch slices are reused across
// frames.
type View struct {
	screen tcell.Screen
	cam    *camera.Camera
	worldW float32
	worldH float32
	cols   int
	rows   int

	balls    []game.BallView
	harpoons []game.HarpoonView
	surfaces []systems.SurfaceBox
}

// NewView creates a view sized to the screen. The camera fits the arena
// plus its walls.
func NewView(screen tcell.Screen, arena systems.Arena, wallThickness float32) *View {
	v := &View{
		screen: screen,
		worldW: 2 * (arena.HalfWidth + wallThickness),
		worldH: 2 * (arena.HalfHeight + wallThickness),
	}
	v.Resize()
	return v
}

// Resize refits the camera to the current screen size.
func (v *View) Resize() {
	v.cols, v.rows = v.screen.Size()
	arenaRows := max(v.rows-hudRows-statusRows, 1)
	v.cam = camera.NewCells(v.cols, arenaRows, v.worldW, v.worldH, cellAspect)
}

// Camera returns the cell camera.
func (v *View) Camera() *camera.Camera { return v.cam }

// Draw renders one frame without calling Show.
func (v *View) Draw(g *game.Game, hud *game.HUD, status string) {
	bg := tcell.StyleDefault.Background(toColor(g.BackgroundColor()))
	v.screen.SetStyle(bg)
	v.screen.Clear()

	v.surfaces = g.Surfaces(v.surfaces[:0])
	v.harpoons = g.Harpoons(v.harpoons[:0])
	v.balls = g.Balls(v.balls[:0])

	wall := bg.Foreground(tcell.NewRGBColor(120, 110, 100))
	for _, s := range v.surfaces {
		v.fillBox(s.X, s.Y, s.HalfW, s.HalfH, glyphSolid, wall)
	}

	rope := bg.Foreground(tcell.ColorWhite)
	for _, h := range v.harpoons {
		v.drawHarpoon(h, rope)
	}

	for _, b := range v.balls {
		v.drawBall(b, bg)
	}

	if p, ok := g.Player(); ok && p.Visible {
		v.fillBox(p.X, p.Y, p.HalfWidth, p.HalfHeight, glyphPlayer, bg.Foreground(tcell.ColorDodgerBlue))
	}

	v.drawHUD(g, hud, bg)
	if status != "" {
		v.text(0, v.rows-1, status, bg.Foreground(tcell.ColorGray))
	}
}

func (v *View) drawHUD(g *game.Game, hud *game.HUD, bg tcell.Style) {
	white := bg.Foreground(tcell.ColorWhite).Bold(true)
	v.text(1, 0, hud.ScoreText(), white)

	level := hud.LevelText()
	v.text((v.cols-len(level))/2-8, 0, level, bg.Foreground(tcell.ColorYellow).Bold(true))

	timeStyle := white
	remaining := g.Session().RemainingTime
	if remaining < 10 {
		timeStyle = bg.Foreground(tcell.ColorRed).Bold(true)
	}
	v.text((v.cols)/2+2, 0, game.TimeText(remaining), timeStyle)

	lives := hud.LivesText()
	v.text(v.cols-len(lives)-1, 0, lives, white)

	banner := ""
	switch {
	case hud.ShowGameOver:
		banner = fmt.Sprintf(" GAME OVER  %06d ", hud.Score)
	case hud.ShowLevelComplete:
		banner = fmt.Sprintf(" LEVEL %d COMPLETE ", hud.CompletedLevel)
	case g.Paused():
		banner = " PAUSED "
	}
	if banner != "" {
		style := tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorBlack).Bold(true)
		v.text((v.cols-len([]rune(banner)))/2, v.rows/2, banner, style)
	}
}

// cell converts a world point to screen coordinates below the HUD row.
func (v *View) cell(wx, wy float32) (int, int) {
	col, row := v.cam.WorldToCell(wx, wy)
	return col, row + hudRows
}

func (v *View) fillBox(cx, cy, halfW, halfH float32, glyph rune, style tcell.Style) {
	c0, r0 := v.cell(cx-halfW, cy+halfH)
	c1, r1 := v.cell(cx+halfW, cy-halfH)
	// Boxes thinner than a cell still get one
	c1 = max(c1, c0)
	r1 = max(r1, r0)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			v.set(col, row, glyph, style)
		}
	}
}

func (v *View) drawBall(b game.BallView, bg tcell.Style) {
	style := bg.Foreground(toColor(b.Color))
	c0, r0 := v.cell(b.X-b.Radius, b.Y+b.Radius)
	c1, r1 := v.cell(b.X+b.Radius, b.Y-b.Radius)
	drawn := false
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			wx, wy := v.cam.ScreenToWorld(float32(col)+0.5, float32(row-hudRows)+0.5)
			dx, dy := wx-b.X, wy-b.Y
			if dx*dx+dy*dy <= b.Radius*b.Radius {
				v.set(col, row, glyphBall, style)
				drawn = true
			}
		}
	}
	if !drawn {
		col, row := v.cell(b.X, b.Y)
		v.set(col, row, glyphBall, style)
	}
}

func (v *View) drawHarpoon(h game.HarpoonView, style tcell.Style) {
	col, bottom := v.cell(h.X, h.Bottom)
	_, top := v.cell(h.X, h.Top)
	for row := top + 1; row <= bottom; row++ {
		v.set(col, row, glyphRope, style)
	}
	v.set(col, top, glyphTip, style)
}

func (v *View) set(col, row int, glyph rune, style tcell.Style) {
	if col < 0 || col >= v.cols || row < hudRows || row >= v.rows-statusRows {
		return
	}
	v.screen.SetContent(col, row, glyph, nil, style)
}

func (v *View) text(col, row int, s string, style tcell.Style) {
	for _, r := range s {
		if col >= 0 && col < v.cols && row >= 0 && row < v.rows {
			v.screen.SetContent(col, row, r, nil, style)
		}
		col++
	}
}

func toColor(c components.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
