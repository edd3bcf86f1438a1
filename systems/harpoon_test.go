package systems

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/pang/components"
	"github.com/pthm-cable/pang/config"
)

func TestExtendHarpoon(t *testing.T) {
	cfg := config.MustLoad("")
	hp := NewHarpoonParams(cfg)
	arena := NewArena(cfg)
	dt := float32(1.0 / 60.0)

	t.Run("grows and tracks centre", func(t *testing.T) {
		pos, h := hp.NewHarpoon(1, -3.5)
		if ExtendHarpoon(&pos, &h, arena, dt) {
			t.Fatal("expired after one tick")
		}
		wantLen := hp.InitialLength + hp.Speed*dt
		if math.Abs(float64(h.Length-wantLen)) > 1e-5 {
			t.Errorf("length = %f, want %f", h.Length, wantLen)
		}
		if pos.X != 1 || math.Abs(float64(pos.Y-(-3.5+wantLen/2))) > 1e-5 {
			t.Errorf("centre = (%f, %f), want (1, %f)", pos.X, pos.Y, -3.5+wantLen/2)
		}
	})

	t.Run("expires at arena top", func(t *testing.T) {
		pos, h := hp.NewHarpoon(0, -3.5)
		ticks := 0
		for !ExtendHarpoon(&pos, &h, arena, dt) {
			ticks++
			if ticks > 1000 {
				t.Fatal("harpoon never expired")
			}
		}
		if h.Tip() < arena.HalfHeight && h.Length < h.MaxLength {
			t.Errorf("expired early: tip %f length %f", h.Tip(), h.Length)
		}
		if h.Length > h.MaxLength {
			t.Errorf("length %f exceeds max %f", h.Length, h.MaxLength)
		}
	})

	t.Run("expires at max length in a tall arena", func(t *testing.T) {
		tall := Arena{HalfWidth: 8, HalfHeight: 100}
		pos, h := hp.NewHarpoon(0, 0)
		for i := 0; i < 10000 && !ExtendHarpoon(&pos, &h, tall, dt); i++ {
		}
		if h.Length != h.MaxLength {
			t.Errorf("length = %f, want %f", h.Length, h.MaxLength)
		}
	})
}

func TestHarpoonSystem_FirstHitOnly(t *testing.T) {
	cfg := config.MustLoad("")
	bp := NewBallParams(cfg)
	hp := NewHarpoonParams(cfg)
	arena := NewArena(cfg)

	w := ecs.NewWorld()
	balls := ecs.NewMap4[components.Position, components.Velocity, components.Body, components.Ball](w)
	harpoons := ecs.NewMap2[components.Position, components.Harpoon](w)

	spawnBall := func(x, y float32) ecs.Entity {
		vel, body, ball := bp.NewBall(2, 1, components.Color{})
		pos := components.Position{X: x, Y: y}
		return balls.NewEntity(&pos, &vel, &body, &ball)
	}
	spawnHarpoon := func(x, y float32) ecs.Entity {
		pos, h := hp.NewHarpoon(x, y)
		return harpoons.NewEntity(&pos, &h)
	}

	// Two balls within reach of both nearby harpoons; one ball far away.
	low := spawnBall(0, -3.2)
	spawnBall(0.6, -3.3)
	spawnBall(5, 0)
	h1 := spawnHarpoon(0, -3.5)
	h2 := spawnHarpoon(0.1, -3.5)
	miss := spawnHarpoon(-5, -3.5)

	sys := NewHarpoonSystem(w, arena)
	res := sys.Update(1.0 / 60.0)

	if len(res.Hits) != 2 {
		t.Fatalf("got %d hits, want 2", len(res.Hits))
	}
	seen := map[ecs.Entity]bool{}
	for _, hit := range res.Hits {
		if hit.Harpoon != h1 && hit.Harpoon != h2 {
			t.Errorf("unexpected harpoon in hits: %v", hit.Harpoon)
		}
		if seen[hit.Ball] {
			t.Errorf("ball %v struck twice in one tick", hit.Ball)
		}
		seen[hit.Ball] = true
	}
	if !seen[low] {
		t.Error("lowest ball was not struck")
	}
	for _, e := range res.Expired {
		if e == miss {
			t.Error("harpoon expired on its first tick")
		}
	}
}
