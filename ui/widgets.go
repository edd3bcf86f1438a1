package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight + 2
}

// DrawLabelValue draws a label and value on the same line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawTimeBar draws the remaining-time bar, coloured by how much is left.
func (r *Renderer) DrawTimeBar(x, y int32, label string, current, max float32, width int32) int32 {
	ratio := float32(0)
	if max > 0 {
		ratio = current / max
		if ratio > 1 {
			ratio = 1
		}
		if ratio < 0 {
			ratio = 0
		}
	}

	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - 50

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)

	barColor := r.Theme.BarFillHigh
	if ratio < 0.2 {
		barColor = r.Theme.BarFillLow
	} else if ratio < 0.5 {
		barColor = r.Theme.BarFillMedium
	}

	fillWidth := int32(float32(barWidth) * ratio)
	rl.DrawRectangle(barX, y+2, fillWidth, r.Theme.BarHeight, barColor)

	rl.DrawText(fmt.Sprintf("%.0fs", current), barX+barWidth+5, y, r.Theme.FontSize, r.Theme.ValueColor)

	return y + r.Theme.LineHeight + 2
}

// DrawBanner draws large centred text with a smaller caption below it.
func (r *Renderer) DrawBanner(screenW, screenH int32, title, caption string, color rl.Color) {
	size := r.Theme.BannerFontSize
	tw := rl.MeasureText(title, size)
	cw := rl.MeasureText(caption, r.Theme.HeaderFontSize)

	w := max(tw, cw) + r.Theme.Padding*4
	h := size + r.Theme.HeaderFontSize + r.Theme.Padding*4
	x, y := Anchor(AnchorCenter, screenW, screenH, w, h, 0)
	r.DrawPanel(x, y, w, h)

	rl.DrawText(title, (screenW-tw)/2, y+r.Theme.Padding, size, color)
	if caption != "" {
		rl.DrawText(caption, (screenW-cw)/2, y+r.Theme.Padding*2+size, r.Theme.HeaderFontSize, r.Theme.LabelColor)
	}
}
