// Package audio plays the game's synthesized sound cues through the speaker.
package audio

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/pthm-cable/pang/config"
)

// Cue ids used by the game.
const (
	CueHarpoon = 0
	CueBubble  = 1
)

// SoundManager owns the speaker mixer and the configured cue list.
type SoundManager struct {
	mu          sync.Mutex
	cues        []config.SoundConfig
	rate        beep.SampleRate
	bufferMs    int
	mixer       *beep.Mixer
	rng         *rand.Rand
	initialized bool
	muted       bool
	played      int
	warned      map[int]bool
}

// NewSoundManager creates a sound manager for the configured cues.
// Nothing is audible until Initialize succeeds.
func NewSoundManager(cfg config.AudioConfig, muted bool) *SoundManager {
	rate := cfg.SampleRate
	if rate <= 0 {
		rate = 44100
	}
	return &SoundManager{
		cues:     cfg.Sounds,
		rate:     beep.SampleRate(rate),
		bufferMs: cfg.BufferMs,
		mixer:    &beep.Mixer{},
		rng:      rand.New(rand.NewSource(1)),
		muted:    muted,
		warned:   make(map[int]bool),
	}
}

// Initialize opens the speaker and starts the mixer. Muted managers skip
// the device entirely.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || sm.muted {
		return nil
	}

	bufferMs := sm.bufferMs
	if bufferMs <= 0 {
		bufferMs = 100
	}
	if err := speaker.Init(sm.rate, sm.rate.N(time.Duration(bufferMs)*time.Millisecond)); err != nil {
		return fmt.Errorf("initializing speaker: %w", err)
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	slog.Info("audio_ready", "sample_rate", int(sm.rate), "cues", len(sm.cues))
	return nil
}

// Cleanup drops any queued cues.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// SetMuted toggles output without touching the device.
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	sm.muted = muted
	sm.mu.Unlock()
}

// Muted reports whether cues are suppressed.
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// Played returns how many cues were queued on the mixer.
func (sm *SoundManager) Played() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played
}

// PlaySoundByID queues the cue at index id. Unknown ids log a warning
// once and are otherwise ignored.
func (sm *SoundManager) PlaySoundByID(id int) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if id < 0 || id >= len(sm.cues) {
		if !sm.warned[id] {
			sm.warned[id] = true
			slog.Warn("sound id out of range", "id", id, "cues", len(sm.cues))
		}
		return
	}
	if !sm.initialized || sm.muted {
		return
	}

	cue, err := NewCue(sm.cues[id], sm.rate, sm.rng)
	if err != nil {
		if !sm.warned[id] {
			sm.warned[id] = true
			slog.Warn("invalid sound", "id", id, "error", err)
		}
		return
	}

	speaker.Lock()
	sm.mixer.Add(cue)
	speaker.Unlock()
	sm.played++
}

// PlaySoundByName plays a cue addressed by its configured name.
func (sm *SoundManager) PlaySoundByName(name string) {
	for i, c := range sm.cues {
		if c.Name == name {
			sm.PlaySoundByID(i)
			return
		}
	}
	slog.Warn("unknown sound", "name", name)
}

// HarpoonFired plays the firing cue.
func (sm *SoundManager) HarpoonFired() { sm.PlaySoundByID(CueHarpoon) }

// BallPopped plays the pop cue.
func (sm *SoundManager) BallPopped() { sm.PlaySoundByID(CueBubble) }
