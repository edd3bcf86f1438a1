package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/pang/components"
	"github.com/pthm-cable/pang/config"
)

// PlayerParams holds player controller tuning values.
type PlayerParams struct {
	MoveSpeed     float32
	SmoothTime    float32
	BoundaryX     float32
	SpawnX        float32
	SpawnY        float32
	HalfWidth     float32
	HalfHeight    float32
	FireCooldown  float32
	Invulnerable  float32
	FiringOffsetY float32
	BlinkInterval float32
}

// NewPlayerParams extracts player parameters from config.
func NewPlayerParams(cfg *config.Config) PlayerParams {
	p := cfg.Player
	return PlayerParams{
		MoveSpeed:     float32(p.MoveSpeed),
		SmoothTime:    float32(p.SmoothTime),
		BoundaryX:     float32(p.BoundaryX),
		SpawnX:        float32(p.SpawnX),
		SpawnY:        float32(p.SpawnY),
		HalfWidth:     float32(p.Width * 0.5),
		HalfHeight:    float32(p.Height * 0.5),
		FireCooldown:  float32(p.FireCooldown),
		Invulnerable:  float32(p.Invulnerable),
		FiringOffsetY: float32(p.FiringOffsetY),
		BlinkInterval: float32(p.BlinkInterval),
	}
}

// NewPlayer builds the components of a player standing at (x, y), invulnerable.
func (p PlayerParams) NewPlayer(x, y float32) (components.Position, components.Velocity, components.Player) {
	pl := components.Player{HalfWidth: p.HalfWidth, HalfHeight: p.HalfHeight}
	p.MakeInvulnerable(&pl)
	return components.Position{X: x, Y: y}, components.Velocity{}, pl
}

// ResetPlayer returns the player to the spawn point, stopped and invulnerable.
func (p PlayerParams) ResetPlayer(pos *components.Position, vel *components.Velocity, pl *components.Player) {
	pos.X, pos.Y = p.SpawnX, p.SpawnY
	vel.X, vel.Y = 0, 0
	pl.SmoothVel = 0
	p.MakeInvulnerable(pl)
}

// MakeInvulnerable starts a fresh invulnerability window.
func (p PlayerParams) MakeInvulnerable(pl *components.Player) {
	pl.Invulnerable = true
	pl.InvulnRemaining = p.Invulnerable
}

// FiringPoint returns where a harpoon launched by the player is anchored.
func (p PlayerParams) FiringPoint(pos *components.Position) (float32, float32) {
	return pos.X, pos.Y + p.FiringOffsetY
}

// Visible reports whether the player should be drawn this frame.
// Invulnerable players blink.
func (p PlayerParams) Visible(pl *components.Player) bool {
	if !pl.Invulnerable || p.BlinkInterval <= 0 {
		return true
	}
	phase := int(pl.InvulnRemaining / p.BlinkInterval)
	return phase%2 == 0
}

// MovePlayer steers the player towards moveX*MoveSpeed and keeps it inside ±BoundaryX.
func MovePlayer(pos *components.Position, vel *components.Velocity, pl *components.Player, moveX float32, p PlayerParams, dt float32) {
	moveX = clampFloat(moveX, -1, 1)
	vel.X = SmoothDamp(vel.X, moveX*p.MoveSpeed, &pl.SmoothVel, p.SmoothTime, dt)
	vel.Y = 0
	pos.X += vel.X * dt
	if pos.X < -p.BoundaryX {
		pos.X = -p.BoundaryX
		vel.X = 0
	} else if pos.X > p.BoundaryX {
		pos.X = p.BoundaryX
		vel.X = 0
	}
}

// TickPlayerTimers counts down invulnerability and the fire cooldown.
func TickPlayerTimers(pl *components.Player, dt float32) {
	if pl.Invulnerable {
		pl.InvulnRemaining -= dt
		if pl.InvulnRemaining <= 0 {
			pl.InvulnRemaining = 0
			pl.Invulnerable = false
		}
	}
	if pl.FireCooldown > 0 {
		pl.FireCooldown -= dt
		if pl.FireCooldown < 0 {
			pl.FireCooldown = 0
		}
	}
}

// PlayerTouchesBall reports whether a ball overlaps the player's box.
func PlayerTouchesBall(pos *components.Position, pl *components.Player, b *BallRef) bool {
	return BoxCircleOverlap(pos.X, pos.Y, pl.HalfWidth, pl.HalfHeight, b.X, b.Y, b.Radius)
}

// PlayerSystem moves the player and runs its timers.
type PlayerSystem struct {
	filter *ecs.Filter3[components.Position, components.Velocity, components.Player]
	params PlayerParams
}

// NewPlayerSystem creates a new player system.
func NewPlayerSystem(w *ecs.World, params PlayerParams) *PlayerSystem {
	return &PlayerSystem{
		filter: ecs.NewFilter3[components.Position, components.Velocity, components.Player](w),
		params: params,
	}
}

// Update runs the player system.
func (s *PlayerSystem) Update(moveX, dt float32) {
	query := s.filter.Query()
	for query.Next() {
		pos, vel, pl := query.Get()
		MovePlayer(pos, vel, pl, moveX, s.params, dt)
		TickPlayerTimers(pl, dt)
	}
}

// FirstBallContact returns the first ball overlapping the player, if any.
// Invulnerable players never report contact.
func FirstBallContact(pos *components.Position, pl *components.Player, balls []BallRef) (ecs.Entity, bool) {
	if pl.Invulnerable {
		return ecs.Entity{}, false
	}
	for i := range balls {
		if PlayerTouchesBall(pos, pl, &balls[i]) {
			return balls[i].Entity, true
		}
	}
	return ecs.Entity{}, false
}
