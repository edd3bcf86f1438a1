package game

import (
	"fmt"
	"math"
)

// HUD is the presentation model shared by the front ends. It follows the
// session through the event bus and must be closed to unsubscribe.
type HUD struct {
	bus *EventBus
	sub SubscriptionID

	Score int
	Lives int
	Level int

	ShowGameOver      bool
	ShowLevelComplete bool
	CompletedLevel    int
}

// NewHUD subscribes a HUD to bus, seeded from the current session state.
func NewHUD(bus *EventBus, s *Session) *HUD {
	h := &HUD{
		bus:   bus,
		Score: s.Score,
		Lives: s.Lives,
		Level: s.Level,
	}
	h.sub = bus.SubscribeAll(h.onEvent)
	return h
}

func (h *HUD) onEvent(e Event) {
	h.Score = e.Score
	h.Lives = e.Lives
	h.Level = e.Level

	switch e.Kind {
	case EventGameStart:
		h.ShowGameOver = false
		h.ShowLevelComplete = false
	case EventGameOver:
		h.ShowGameOver = true
	case EventLevelComplete:
		h.ShowLevelComplete = true
		h.CompletedLevel = e.Level
	}
}

// Close unsubscribes the HUD. Safe to call more than once.
func (h *HUD) Close() {
	if h.bus == nil {
		return
	}
	h.bus.Unsubscribe(h.sub)
	h.bus = nil
}

// ScoreText formats the score as six zero-padded digits.
func (h *HUD) ScoreText() string {
	return fmt.Sprintf("Score: %06d", h.Score)
}

// LivesText formats the remaining lives.
func (h *HUD) LivesText() string {
	return fmt.Sprintf("Lives: %d", h.Lives)
}

// LevelText formats the current level.
func (h *HUD) LevelText() string {
	return fmt.Sprintf("Level: %d", h.Level)
}

// TimeText formats seconds as MM:SS, rounding down.
func TimeText(remaining float64) string {
	if remaining < 0 {
		remaining = 0
	}
	minutes := int(math.Floor(remaining / 60))
	seconds := int(math.Floor(math.Mod(remaining, 60)))
	return fmt.Sprintf("Time: %02d:%02d", minutes, seconds)
}
