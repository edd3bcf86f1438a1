// Package systems contains ECS systems for the simulation.
package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/pang/components"
	"github.com/pthm-cable/pang/config"
)

// BallParams holds the ball tuning values as float32, read once from config.
type BallParams struct {
	MaxSize            int
	BasePoints         int
	BaseSpeed          float32
	BaseSize           float32
	BaseJumpHeight     float32
	SizeJumpMultiplier float32
	Gravity            float32 // gravity * gravity_scale
	MinHorizontalSpeed float32
	WallCheckDistance  float32
	StuckCheckInterval float32
	Offset             float32 // Clamp offset keeping balls off the boundary
	SplitOffset        float32
	SplitJitter        float32
	MinSplitVY         float32
}

// NewBallParams extracts ball parameters from config.
func NewBallParams(cfg *config.Config) BallParams {
	b := cfg.Ball
	return BallParams{
		MaxSize:            b.MaxSize,
		BasePoints:         b.BasePoints,
		BaseSpeed:          float32(b.BaseSpeed),
		BaseSize:           float32(b.BaseSize),
		BaseJumpHeight:     float32(b.BaseJumpHeight),
		SizeJumpMultiplier: float32(b.SizeJumpMultiplier),
		Gravity:            float32(cfg.Physics.Gravity * b.GravityScale),
		MinHorizontalSpeed: float32(b.MinHorizontalSpeed),
		WallCheckDistance:  float32(b.WallCheckDistance),
		StuckCheckInterval: float32(b.StuckCheckInterval),
		Offset:             float32(b.BoundaryOffset),
		SplitOffset:        float32(b.SplitOffset),
		SplitJitter:        float32(b.SplitJitter),
		MinSplitVY:         float32(b.MinSplitVerticalSpeed),
	}
}

// Speed returns the horizontal speed of a ball of the given size.
// Smaller balls move faster.
func (p BallParams) Speed(size int) float32 {
	return p.BaseSpeed * (1 + float32(p.MaxSize+1-size)*0.25)
}

// JumpForce returns the floor bounce speed of a ball of the given size.
// Larger balls bounce higher.
func (p BallParams) JumpForce(size int) float32 {
	return p.BaseJumpHeight * (1 + float32(size)*p.SizeJumpMultiplier)
}

// Radius returns the collision radius of a ball of the given size.
func (p BallParams) Radius(size int) float32 {
	return p.BaseSize * float32(size) * 0.25
}

// NewBall builds the components of a fresh ball moving in direction dir (-1 or +1).
func (p BallParams) NewBall(size int, dir float32, color components.Color) (components.Velocity, components.Body, components.Ball) {
	ball := components.Ball{
		Size:      size,
		Speed:     p.Speed(size),
		JumpForce: p.JumpForce(size),
		Color:     color,
	}
	vel := components.Velocity{X: signf(dir) * ball.Speed, Y: ball.JumpForce}
	return vel, components.Body{Radius: p.Radius(size)}, ball
}

// StepBall advances one ball by dt: integrate under gravity, bounce off
// surfaces, then apply stuck recovery, the speed floor and the boundary clamp.
// After it returns the ball lies inside the arena.
func StepBall(pos *components.Position, vel *components.Velocity, body *components.Body, ball *components.Ball,
	surfaces []SurfaceBox, arena Arena, p BallParams, dt float32, rng *rand.Rand) {
	vel.Y -= p.Gravity * dt
	pos.X += vel.X * dt
	pos.Y += vel.Y * dt

	BounceOffSurfaces(pos, vel, body.Radius, ball, surfaces, p)
	RecoverStuck(pos, vel, body.Radius, ball, arena, p, dt)
	EnforceMinSpeed(vel, ball, p, rng)
	ClampToArena(pos, vel, body.Radius, ball, arena, p)
}

// BounceOffSurfaces separates the ball from every surface it overlaps and
// applies a single bounce. An upward-facing contact relaunches the ball;
// anything else reverses its horizontal direction. Returns true on contact.
func BounceOffSurfaces(pos *components.Position, vel *components.Velocity, r float32, ball *components.Ball,
	surfaces []SurfaceBox, p BallParams) bool {
	touched, ground, under := false, false, false
	for i := range surfaces {
		s := &surfaces[i]
		c, ok := CircleAABB(pos.X, pos.Y, r, s.X, s.Y, s.HalfW, s.HalfH)
		if !ok {
			continue
		}
		touched = true
		pos.X += c.NX * c.Depth
		pos.Y += c.NY * c.Depth
		if c.NY > 0.5 {
			ground = true
		} else if c.NY < -0.5 {
			under = true
		}
	}
	if !touched {
		return false
	}

	if ground {
		vel.Y = ball.JumpForce
		return true
	}
	speed := ball.Speed
	if speed < p.MinHorizontalSpeed {
		speed = p.MinHorizontalSpeed
	}
	dir := float32(1)
	if vel.X > 0 {
		dir = -1
	}
	vel.X = dir * speed
	if under {
		// Underside of a platform
		vel.Y = -absf(vel.Y)
	}
	return true
}

// RecoverStuck kicks a slow ball away from a side wall once per check interval.
func RecoverStuck(pos *components.Position, vel *components.Velocity, r float32, ball *components.Ball,
	arena Arena, p BallParams, dt float32) {
	ball.StuckTimer += dt
	if ball.StuckTimer < p.StuckCheckInterval {
		return
	}
	ball.StuckTimer = 0

	if absf(vel.X) >= p.MinHorizontalSpeed {
		return
	}
	if pos.X < -arena.HalfWidth+r+p.WallCheckDistance {
		vel.X = ball.Speed
	} else if pos.X > arena.HalfWidth-r-p.WallCheckDistance {
		vel.X = -ball.Speed
	}
}

// EnforceMinSpeed restores the ball's horizontal speed when it drops below the
// floor, keeping its direction. A ball at exactly zero picks a random direction.
func EnforceMinSpeed(vel *components.Velocity, ball *components.Ball, p BallParams, rng *rand.Rand) {
	if absf(vel.X) >= p.MinHorizontalSpeed {
		return
	}
	dir := signf(vel.X)
	if vel.X == 0 && rng != nil && rng.Intn(2) == 0 {
		dir = -1
	}
	vel.X = dir * ball.Speed
}

// ClampToArena pushes the ball back inside the arena, reflecting velocity on
// the clamped axis. A floor clamp relaunches the ball at its jump force.
func ClampToArena(pos *components.Position, vel *components.Velocity, r float32, ball *components.Ball,
	arena Arena, p BallParams) {
	w, h := arena.HalfWidth, arena.HalfHeight

	if pos.X < -w+r {
		pos.X = -w + r + p.Offset
		vel.X = absf(vel.X)
		if vel.X < p.MinHorizontalSpeed {
			vel.X = ball.Speed
		}
	} else if pos.X > w-r {
		pos.X = w - r - p.Offset
		vel.X = -absf(vel.X)
		if vel.X > -p.MinHorizontalSpeed {
			vel.X = -ball.Speed
		}
	}

	if pos.Y < -h+r {
		pos.Y = -h + r + p.Offset
		vel.Y = ball.JumpForce
	} else if pos.Y > h-r {
		pos.Y = h - r - p.Offset
		vel.Y = -absf(vel.Y)
	}
}

// BallSystem moves every ball once per fixed tick.
type BallSystem struct {
	balls    *ecs.Filter4[components.Position, components.Velocity, components.Body, components.Ball]
	surfaces *ecs.Filter2[components.Position, components.Surface]
	params   BallParams
	arena    Arena

	scratch []SurfaceBox
}

// NewBallSystem creates a new ball system.
func NewBallSystem(w *ecs.World, params BallParams, arena Arena) *BallSystem {
	return &BallSystem{
		balls:    ecs.NewFilter4[components.Position, components.Velocity, components.Body, components.Ball](w),
		surfaces: ecs.NewFilter2[components.Position, components.Surface](w),
		params:   params,
		arena:    arena,
	}
}

// Update runs the ball system.
func (s *BallSystem) Update(dt float32, rng *rand.Rand) {
	s.scratch = CollectSurfaces(s.surfaces, s.scratch[:0])

	query := s.balls.Query()
	for query.Next() {
		pos, vel, body, ball := query.Get()
		StepBall(pos, vel, body, ball, s.scratch, s.arena, s.params, dt, rng)
	}
}

// CollectSurfaces appends a snapshot of every surface entity to dst.
func CollectSurfaces(f *ecs.Filter2[components.Position, components.Surface], dst []SurfaceBox) []SurfaceBox {
	query := f.Query()
	for query.Next() {
		pos, surf := query.Get()
		dst = append(dst, SurfaceBox{X: pos.X, Y: pos.Y, HalfW: surf.HalfW, HalfH: surf.HalfH, Tag: surf.Tag})
	}
	return dst
}
