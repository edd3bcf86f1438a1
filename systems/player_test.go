package systems

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/pang/config"
)

func testPlayerParams(t *testing.T) PlayerParams {
	t.Helper()
	return NewPlayerParams(config.MustLoad(""))
}

func TestMovePlayer_ReachesSpeedAndClamps(t *testing.T) {
	p := testPlayerParams(t)
	pos, vel, pl := p.NewPlayer(0, p.SpawnY)
	dt := float32(1.0 / 60.0)

	for i := 0; i < 30; i++ {
		MovePlayer(&pos, &vel, &pl, 1, p, dt)
	}
	if math.Abs(float64(vel.X-p.MoveSpeed)) > 0.05 {
		t.Errorf("vx = %f, want ~%f", vel.X, p.MoveSpeed)
	}
	if pos.Y != p.SpawnY {
		t.Errorf("player moved vertically: y = %f", pos.Y)
	}

	for i := 0; i < 600; i++ {
		MovePlayer(&pos, &vel, &pl, 1, p, dt)
		if pos.X > p.BoundaryX {
			t.Fatalf("x = %f beyond boundary %f", pos.X, p.BoundaryX)
		}
	}
	if pos.X != p.BoundaryX {
		t.Errorf("x = %f, want clamped at %f", pos.X, p.BoundaryX)
	}
}

func TestTickPlayerTimers(t *testing.T) {
	p := testPlayerParams(t)
	_, _, pl := p.NewPlayer(0, 0)
	pl.FireCooldown = p.FireCooldown

	if !pl.Invulnerable {
		t.Fatal("new player should start invulnerable")
	}

	dt := float32(0.1)
	steps := int(math.Ceil(float64(p.Invulnerable/dt))) + 1
	for i := 0; i < steps; i++ {
		TickPlayerTimers(&pl, dt)
	}
	if pl.Invulnerable || pl.InvulnRemaining != 0 {
		t.Errorf("still invulnerable after window: %v %f", pl.Invulnerable, pl.InvulnRemaining)
	}
	if pl.FireCooldown != 0 {
		t.Errorf("fire cooldown = %f, want 0", pl.FireCooldown)
	}
}

func TestResetPlayer(t *testing.T) {
	p := testPlayerParams(t)
	pos, vel, pl := p.NewPlayer(3, p.SpawnY)
	vel.X = 4
	pl.SmoothVel = 2
	pl.Invulnerable = false

	p.ResetPlayer(&pos, &vel, &pl)
	if pos.X != p.SpawnX || pos.Y != p.SpawnY {
		t.Errorf("pos = (%f, %f), want spawn (%f, %f)", pos.X, pos.Y, p.SpawnX, p.SpawnY)
	}
	if vel.X != 0 || pl.SmoothVel != 0 {
		t.Errorf("velocity not cleared: %f %f", vel.X, pl.SmoothVel)
	}
	if !pl.Invulnerable || pl.InvulnRemaining != p.Invulnerable {
		t.Errorf("invulnerability = %v %f, want true %f", pl.Invulnerable, pl.InvulnRemaining, p.Invulnerable)
	}
}

func TestFirstBallContact(t *testing.T) {
	p := testPlayerParams(t)
	pos, _, pl := p.NewPlayer(0, p.SpawnY)
	balls := []BallRef{
		{Entity: ecs.Entity{}, X: 4, Y: 0, Radius: 0.5},
		{Entity: ecs.Entity{}, X: 0.3, Y: p.SpawnY + p.HalfHeight + 0.2, Radius: 0.5},
	}

	if _, hit := FirstBallContact(&pos, &pl, balls); hit {
		t.Error("invulnerable player reported contact")
	}

	pl.Invulnerable = false
	if _, hit := FirstBallContact(&pos, &pl, balls); !hit {
		t.Error("expected contact with overlapping ball")
	}
	if _, hit := FirstBallContact(&pos, &pl, balls[:1]); hit {
		t.Error("unexpected contact with distant ball")
	}
}

func TestPlayerVisibleBlinks(t *testing.T) {
	p := testPlayerParams(t)
	_, _, pl := p.NewPlayer(0, 0)

	visible, hidden := 0, 0
	for pl.Invulnerable {
		if p.Visible(&pl) {
			visible++
		} else {
			hidden++
		}
		TickPlayerTimers(&pl, 1.0/60.0)
	}
	if visible == 0 || hidden == 0 {
		t.Errorf("no blinking: visible=%d hidden=%d", visible, hidden)
	}
	if !p.Visible(&pl) {
		t.Error("player hidden after invulnerability ended")
	}
}
