package game

import (
	"testing"

	"github.com/pthm-cable/pang/config"
)

func TestSchedulerFiresInDeadlineOrder(t *testing.T) {
	s := NewScheduler()
	s.After(2.0, TaskRestartGame)
	s.After(0.5, TaskLoadFirstLevel)
	s.After(2.0, TaskLoadNextLevel)

	if got := s.Advance(0.25); len(got) != 0 {
		t.Fatalf("fired early: %v", got)
	}
	got := s.Advance(0.25)
	if len(got) != 1 || got[0] != TaskLoadFirstLevel {
		t.Fatalf("at 0.5s fired %v, want [load_first_level]", got)
	}

	got = s.Advance(2.0)
	if len(got) != 2 || got[0] != TaskRestartGame || got[1] != TaskLoadNextLevel {
		t.Errorf("equal deadlines fired %v, want [restart_game load_next_level]", got)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", s.Pending())
	}
}

func TestSchedulerFiresOnce(t *testing.T) {
	s := NewScheduler()
	s.After(0.1, TaskLoadNextLevel)

	fired := 0
	for i := 0; i < 60; i++ {
		fired += len(s.Advance(1.0 / 60.0))
	}
	if fired != 1 {
		t.Errorf("fired %d times, want 1", fired)
	}
}

func TestSchedulerCancelAll(t *testing.T) {
	s := NewScheduler()
	s.After(1, TaskLoadNextLevel)
	s.After(2, TaskRestartGame)
	s.CancelAll()

	if got := s.Advance(5); len(got) != 0 {
		t.Errorf("cancelled tasks fired: %v", got)
	}
}

func TestSessionLevelWraps(t *testing.T) {
	s := NewSession(config.SessionConfig{LevelTime: 120, Lives: 3, MaxLevel: 4})
	want := []int{2, 3, 4, 1, 2}
	for i, w := range want {
		s.AdvanceLevel()
		if s.Level != w {
			t.Errorf("advance %d: level = %d, want %d", i+1, s.Level, w)
		}
	}
}

func TestSessionReset(t *testing.T) {
	s := NewSession(config.SessionConfig{LevelTime: 90, Lives: 3, MaxLevel: 4})
	s.AddScore(700)
	s.AddScore(-50)
	s.LoseLife()
	s.AdvanceLevel()
	s.RemainingTime = 12

	if s.Score != 700 || s.Lives != 2 {
		t.Fatalf("score/lives = %d/%d, want 700/2", s.Score, s.Lives)
	}

	s.Reset()
	if s.Score != 0 || s.Lives != 3 || s.Level != 1 || s.RemainingTime != 90 {
		t.Errorf("after reset: %+v", s)
	}
}
