// Package renderer draws the arena contents with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pang/components"
)

// BackgroundRenderer fills the screen with the level backdrop as a soft
// vertical gradient.
type BackgroundRenderer struct {
	screenW, screenH int32
}

// NewBackgroundRenderer creates a new background renderer.
func NewBackgroundRenderer(screenW, screenH int32) *BackgroundRenderer {
	return &BackgroundRenderer{screenW: screenW, screenH: screenH}
}

// Resize updates the screen size.
func (b *BackgroundRenderer) Resize(screenW, screenH int32) {
	b.screenW = screenW
	b.screenH = screenH
}

// Draw renders the backdrop. The bottom of the gradient is the base colour
// at 45% brightness.
func (b *BackgroundRenderer) Draw(base components.Color) {
	top := rl.Color{R: base.R, G: base.G, B: base.B, A: 255}
	bottom := rl.Color{
		R: uint8(float32(base.R) * 0.45),
		G: uint8(float32(base.G) * 0.45),
		B: uint8(float32(base.B) * 0.45),
		A: 255,
	}
	rl.DrawRectangleGradientV(0, 0, b.screenW, b.screenH, top, bottom)
}
