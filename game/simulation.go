package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/pang/systems"
	"github.com/pthm-cable/pang/telemetry"
)

// Step runs one fixed simulation tick.
//
// Order: restart and pause input, player movement and firing, ball motion,
// harpoon extension and hits, player contact, then the timer phase
// (scheduled tasks, session clock, level-complete and timeout checks).
func (g *Game) Step(in Input) {
	if in.Restart {
		g.ManualRestart()
	}
	if in.Pause {
		g.paused = !g.paused
	}
	if g.paused {
		return
	}

	g.tick++
	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhasePlayer)
	if g.session.Running() && g.hasPlayer {
		g.playerSystem.Update(clampMove(in.MoveX), g.dt)
		if in.Fire {
			g.tryFire()
		}
	}

	g.perfCollector.StartPhase(telemetry.PhaseBalls)
	g.ballSystem.Update(g.dt, g.rng)

	g.perfCollector.StartPhase(telemetry.PhaseHarpoons)
	g.updateHarpoons()

	g.perfCollector.StartPhase(telemetry.PhaseContacts)
	g.updatePlayerContact()

	g.perfCollector.StartPhase(telemetry.PhaseTimers)
	g.updateTimers()

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushPerf()

	g.perfCollector.EndTick()
}

// tryFire launches a harpoon from the player's firing point if the cooldown allows.
func (g *Game) tryFire() {
	pos, _, pl := g.playerMapper.Get(g.player)
	if pl.FireCooldown > 0 {
		return
	}
	pl.FireCooldown = g.playerParams.FireCooldown

	x, y := g.playerParams.FiringPoint(pos)
	g.launchHarpoon(x, y)
	g.collector.RecordShot()
	g.audio.HarpoonFired()
}

// updateHarpoons extends harpoons and resolves their hits after the query
// completes. Outside the running state a hit only removes the harpoon.
func (g *Game) updateHarpoons() {
	res := g.harpoonSystem.Update(g.dt)

	for _, hit := range res.Hits {
		g.destroyHarpoon(hit.Harpoon)
		if g.session.Running() {
			g.hitBall(hit.Ball)
		}
	}
	for _, e := range res.Expired {
		g.destroyHarpoon(e)
	}
}

// hitBall splits or pops a ball, awards its points and destroys it.
func (g *Game) hitBall(e ecs.Entity) {
	if _, ok := g.balls[e]; !ok {
		return
	}
	pos, vel, _, ball := g.ballMapper.Get(e)
	children, points := systems.SplitBall(*pos, *vel, *ball, g.ballParams, g.rng)

	g.audio.BallPopped()
	g.destroyBall(e)
	for _, c := range children {
		g.spawnChild(c)
	}
	g.collector.RecordHit(len(children) > 0)
	g.AddScore(points)
}

// AddScore adds points to the session and publishes ScoreChanged.
func (g *Game) AddScore(points int) {
	if points <= 0 {
		return
	}
	g.session.AddScore(points)
	ev := g.session.event(EventScoreChanged)
	ev.Points = points
	g.events.Publish(ev)
}

// updatePlayerContact checks the player against every ball while running.
func (g *Game) updatePlayerContact() {
	if !g.session.Running() || !g.hasPlayer {
		return
	}
	pos, _, pl := g.playerMapper.Get(g.player)
	g.ballRefs = systems.CollectBalls(g.ballFilter, g.ballRefs[:0])
	if _, hit := systems.FirstBallContact(pos, pl, g.ballRefs); hit {
		g.playerHit()
	}
}

// playerHit removes a life. The player is reset while lives remain;
// otherwise the session ends.
func (g *Game) playerHit() {
	lives := g.session.LoseLife()
	g.collector.RecordLifeLost()
	g.events.Publish(g.session.event(EventLifeLost))
	slog.Info("life_lost", "tick", g.tick, "lives", lives, "level", g.session.Level)

	if lives <= 0 {
		g.gameOver(telemetry.OutcomeDead)
		return
	}
	pos, vel, pl := g.playerMapper.Get(g.player)
	g.playerParams.ResetPlayer(pos, vel, pl)
}

// updateTimers fires due tasks, then advances the session clock. With the
// clock running, an empty ball set completes the level; otherwise an
// exhausted clock ends the game. Level completion wins a same-tick tie.
func (g *Game) updateTimers() {
	for _, tag := range g.scheduler.Advance(float64(g.dt)) {
		g.runTask(tag)
	}

	if !g.session.Running() {
		return
	}
	g.session.RemainingTime -= float64(g.dt)

	switch {
	case len(g.balls) == 0:
		g.levelComplete()
	case g.session.RemainingTime <= 0:
		g.session.RemainingTime = 0
		g.gameOver(telemetry.OutcomeTimeout)
	}
}

// runTask dispatches a scheduled task.
func (g *Game) runTask(tag TaskTag) {
	switch tag {
	case TaskLoadNextLevel:
		g.loadNextLevel()
	case TaskRestartGame:
		g.restartGame()
	case TaskLoadFirstLevel:
		g.loadFirstLevel()
	default:
		slog.Warn("unknown scheduled task", "tag", tag)
	}
}
