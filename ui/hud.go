package ui

import (
	"fmt"
	"sort"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pang/game"
	"github.com/pthm-cable/pang/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Model        *game.HUD
	Remaining    float64
	LevelTime    float64
	Balls        int
	Tick         int32
	Speed        int
	FPS          int32
	Paused       bool
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders score, lives, level and time along the top edge.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	m := data.Model
	size := r.Theme.HeaderFontSize + 4

	rl.DrawText(m.ScoreText(), 10, 10, size, rl.White)

	lives := m.LivesText()
	lw := rl.MeasureText(lives, size)
	rl.DrawText(lives, data.ScreenWidth-lw-10, 10, size, rl.White)

	level := m.LevelText()
	lvw := rl.MeasureText(level, size)
	rl.DrawText(level, (data.ScreenWidth-lvw)/2, 10, size, rl.Yellow)

	timeText := game.TimeText(data.Remaining)
	color := rl.White
	if data.Remaining < 10 {
		color = rl.Red
	}
	tw := rl.MeasureText(timeText, size)
	rl.DrawText(timeText, (data.ScreenWidth-tw)/2, 34, size, color)

	r.DrawTimeBar(10, 38, "Time", float32(data.Remaining), float32(data.LevelTime), 260)

	rl.DrawText(
		fmt.Sprintf("Balls: %d | Tick: %d | Speed: %dx | FPS: %d", data.Balls, data.Tick, data.Speed, data.FPS),
		10, data.ScreenHeight-22, r.Theme.FontSize, rl.Gray,
	)
}

// DrawBanners renders the game over, level complete and pause panels.
func (h *HUD) DrawBanners(data HUDData) {
	r := h.renderer
	m := data.Model
	switch {
	case m.ShowGameOver:
		r.DrawBanner(data.ScreenWidth, data.ScreenHeight, "GAME OVER", fmt.Sprintf("Final score %06d", m.Score), rl.Red)
	case m.ShowLevelComplete:
		r.DrawBanner(data.ScreenWidth, data.ScreenHeight, fmt.Sprintf("LEVEL %d COMPLETE", m.CompletedLevel), m.ScoreText(), rl.Green)
	case data.Paused:
		r.DrawBanner(data.ScreenWidth, data.ScreenHeight, "PAUSED", "P or Esc to resume", rl.Yellow)
	}
}

// DrawControls renders the key legend.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls []string) {
	r := h.renderer
	lineHeight := r.Theme.LineHeight
	height := int32(len(controls))*lineHeight + r.Theme.Padding*2
	width := int32(260)
	x, y := Anchor(AnchorBottomRight, screenWidth, screenHeight, width, height, 30)
	r.DrawPanel(x, y, width, height)
	y += r.Theme.Padding
	for _, line := range controls {
		rl.DrawText(line, x+r.Theme.Padding, y, r.Theme.FontSize, r.Theme.LabelColor)
		y += lineHeight
	}
}

// PerfPanel renders the per-phase tick timing panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	names := make([]string, 0, len(stats.PhaseAvg))
	for name := range stats.PhaseAvg {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return stats.PhaseAvg[names[i]] > stats.PhaseAvg[names[j]]
	})

	height := int32(len(names)+3)*14 + r.Theme.Padding*2
	r.DrawPanel(p.x, p.y, 300, height)

	x := p.x + r.Theme.Padding
	y := p.y + r.Theme.Padding

	rl.DrawText("Tick Timing", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg: %s  Max: %s  %.0f tps",
		stats.AvgTickDuration.Round(time.Microsecond),
		stats.MaxTickDuration.Round(time.Microsecond),
		stats.TicksPerSecond), x, y, 12, rl.Yellow)
	y += 16

	for _, name := range names {
		pct := stats.PhasePct[name]
		color := rl.LightGray
		if pct > 40 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", name, stats.PhaseAvg[name].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}

// ScoresPanel lists the session's high scores or its recent level attempts.
type ScoresPanel struct {
	renderer *Renderer
	width    int32
}

// NewScoresPanel creates a scores panel of the given width.
func NewScoresPanel(width int32) *ScoresPanel {
	return &ScoresPanel{renderer: NewRenderer(), width: width}
}

// DrawHighScores renders the high score table.
func (s *ScoresPanel) DrawHighScores(screenW, screenH int32, entries []telemetry.HighScore) {
	r := s.renderer
	rows := max(len(entries), 1)
	height := int32(rows+1)*r.Theme.LineHeight + r.Theme.Padding*3
	x, y := Anchor(AnchorTopRight, screenW, screenH, s.width, height, 60)
	r.DrawPanel(x, y, s.width, height)

	x += r.Theme.Padding
	y = r.DrawSectionHeader(x, y+r.Theme.Padding, "High Scores")
	if len(entries) == 0 {
		r.DrawLabelValue(x, y, "-", "no games finished")
		return
	}
	for i, e := range entries {
		y = r.DrawLabelValue(x, y, fmt.Sprintf("#%d", i+1), fmt.Sprintf("%06d  level %d", e.Score, e.Level))
	}
}

// DrawLevelHistory renders the most recent level attempts, newest first.
func (s *ScoresPanel) DrawLevelHistory(screenW, screenH int32, history []telemetry.LevelStats, limit int) {
	r := s.renderer
	n := min(len(history), limit)
	height := int32(max(n, 1)+1)*r.Theme.LineHeight + r.Theme.Padding*3
	x, y := Anchor(AnchorTopRight, screenW, screenH, s.width, height, 60)
	r.DrawPanel(x, y, s.width, height)

	x += r.Theme.Padding
	y = r.DrawSectionHeader(x, y+r.Theme.Padding, "Level History")
	if n == 0 {
		r.DrawLabelValue(x, y, "-", "no levels finished")
		return
	}
	for i := len(history) - 1; i >= len(history)-n; i-- {
		st := history[i]
		y = r.DrawLabelValue(x, y, fmt.Sprintf("L%d", st.Level),
			fmt.Sprintf("%-8s %5.1fs  %d/%d hits", st.Outcome, st.DurationSec, st.Hits, st.Shots))
	}
}
