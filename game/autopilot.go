package game

import "github.com/pthm-cable/pang/config"

// Autopilot drives the player for headless runs: it steps away from balls
// falling onto it, otherwise walks under the lowest ball and fires once aligned.
type Autopilot struct {
	fireAlignment float32
	dangerRadius  float32
}

// NewAutopilot creates an autopilot from config.
func NewAutopilot(cfg config.AutopilotConfig) *Autopilot {
	return &Autopilot{
		fireAlignment: float32(cfg.FireAlignment),
		dangerRadius:  float32(cfg.DangerRadius),
	}
}

// Decide returns the input for the next tick.
func (a *Autopilot) Decide(g *Game) Input {
	if !g.session.Running() || !g.hasPlayer {
		return Input{}
	}
	ppos, _, pl := g.playerMapper.Get(g.player)
	top := ppos.Y + pl.HalfHeight

	var (
		target    float32
		hasTarget bool
		lowest    float32
	)
	for e := range g.balls {
		pos, vel, body, _ := g.ballMapper.Get(e)
		dx := pos.X - ppos.X
		reach := body.Radius + pl.HalfWidth + a.dangerRadius

		// Falling onto us: step away
		if vel.Y < 0 && pos.Y-body.Radius < top+a.dangerRadius*2 && absf32(dx) < reach {
			move := float32(-1)
			if dx < 0 {
				move = 1
			}
			if dx == 0 && ppos.X < 0 {
				move = 1
			}
			return Input{MoveX: move}
		}

		if !hasTarget || pos.Y < lowest {
			target, lowest, hasTarget = pos.X, pos.Y, true
		}
	}
	if !hasTarget {
		return Input{}
	}

	dx := target - ppos.X
	in := Input{MoveX: clampMove(dx * 2)}
	if absf32(dx) < a.fireAlignment && len(g.harpoons) == 0 {
		in.Fire = true
	}
	return in
}

func absf32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
