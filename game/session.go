package game

import "github.com/pthm-cable/pang/config"

// State is the session's lifecycle state.
type State uint8

const (
	StateRunning State = iota
	StateLevelTransition
	StateGameOver
	StateRestarting
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateLevelTransition:
		return "level_transition"
	case StateGameOver:
		return "game_over"
	case StateRestarting:
		return "restarting"
	default:
		return "unknown"
	}
}

// Session holds score, lives, the level clock and the current level.
// It is restarted in place rather than replaced on game over.
type Session struct {
	State         State
	Score         int
	Lives         int
	Level         int
	RemainingTime float64

	levelTime float64
	lives     int
	maxLevel  int
}

// NewSession creates a session at its initial values.
func NewSession(cfg config.SessionConfig) *Session {
	s := &Session{
		levelTime: cfg.LevelTime,
		lives:     cfg.Lives,
		maxLevel:  cfg.MaxLevel,
	}
	s.Reset()
	return s
}

// Reset restores score, lives, time and level to their initial values.
func (s *Session) Reset() {
	s.Score = 0
	s.Lives = s.lives
	s.Level = 1
	s.RemainingTime = s.levelTime
}

// Running reports whether the clock and ball-count poll are live.
func (s *Session) Running() bool {
	return s.State == StateRunning
}

// AdvanceLevel moves to the next level, wrapping to 1 past the maximum.
func (s *Session) AdvanceLevel() {
	s.Level++
	if s.Level > s.maxLevel {
		s.Level = 1
	}
}

// ResetClock refills the level timer.
func (s *Session) ResetClock() {
	s.RemainingTime = s.levelTime
}

// AddScore adds points. Negative amounts are ignored.
func (s *Session) AddScore(points int) {
	if points > 0 {
		s.Score += points
	}
}

// LoseLife removes one life and returns the lives left.
func (s *Session) LoseLife() int {
	if s.Lives > 0 {
		s.Lives--
	}
	return s.Lives
}

// event builds an event carrying the current session state.
func (s *Session) event(kind EventKind) Event {
	return Event{Kind: kind, Score: s.Score, Lives: s.Lives, Level: s.Level}
}
