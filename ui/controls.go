package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Action is a request from the controls panel to the game loop.
type Action int

const (
	ActionNone Action = iota
	ActionTogglePause
	ActionRestart
)

// ControlsPanel renders the pause/restart buttons, the speed slider and
// the overlay toggles.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the panel and returns the button pressed this frame and the
// possibly changed steps-per-update value.
func (c *ControlsPanel) Draw(paused bool, speed int, overlays *OverlayRegistry) (Action, int) {
	if !c.visible {
		return ActionNone, speed
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight
	buttonH := float32(26)

	categories := overlays.Categories()
	totalItems := 0
	for _, cat := range categories {
		totalItems += len(overlays.ByCategory(cat)) + 1
	}
	panelHeight := int32(totalItems)*(lineHeight+4) + padding*4 + int32(buttonH)*2 + lineHeight*2
	r.DrawPanel(c.x, c.y, c.width, panelHeight)

	x := float32(c.x + padding)
	y := float32(c.y + padding)
	inner := float32(c.width - padding*2)
	half := (inner - float32(padding)) / 2

	action := ActionNone
	pauseLabel := "Pause"
	if paused {
		pauseLabel = "Resume"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: buttonH}, pauseLabel) {
		action = ActionTogglePause
	}
	if gui.Button(rl.Rectangle{X: x + half + float32(padding), Y: y, Width: half, Height: buttonH}, "Restart") {
		action = ActionRestart
	}
	y += buttonH + float32(padding)

	rl.DrawText(fmt.Sprintf("Speed: %dx", speed), int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
	y += float32(lineHeight)
	newSpeed := gui.SliderBar(
		rl.Rectangle{X: x + 16, Y: y, Width: inner - 40, Height: 16},
		"1", "10",
		float32(speed), 1, 10,
	)
	y += float32(lineHeight + padding)

	for _, category := range categories {
		rl.DrawText(categoryLabel(category), int32(x), int32(y), r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += float32(lineHeight + 4)

		for _, desc := range overlays.ByCategory(category) {
			label := fmt.Sprintf("%s [%s]", desc.Name, desc.KeyLabel)
			if overlays.IsEnabled(desc.ID) {
				label = "* " + label
			}
			if gui.Button(rl.Rectangle{X: x, Y: y, Width: inner, Height: float32(lineHeight)}, label) {
				overlays.Toggle(desc.ID)
			}
			y += float32(lineHeight + 4)
		}
	}

	return action, int(newSpeed + 0.5)
}

// categoryLabel returns a display label for a category.
func categoryLabel(cat string) string {
	switch cat {
	case "debug":
		return "Debug"
	case "stats":
		return "Stats"
	default:
		return cat
	}
}
