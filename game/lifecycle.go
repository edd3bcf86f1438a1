package game

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/pang/telemetry"
)

// levelComplete stops the clock, announces the cleared level, advances to the
// next one and schedules it to load.
func (g *Game) levelComplete() {
	g.finishLevel(telemetry.OutcomeCleared)

	g.session.State = StateLevelTransition
	g.events.Publish(g.session.event(EventLevelComplete))
	slog.Info("level_complete",
		"tick", g.tick,
		"level", g.session.Level,
		"score", g.session.Score,
		"time_left", g.session.RemainingTime,
	)

	g.session.AdvanceLevel()
	g.scheduler.After(g.cfg.Session.TransitionDelay, TaskLoadNextLevel)
}

// gameOver stops the clock, records the result and schedules a restart.
func (g *Game) gameOver(outcome telemetry.Outcome) {
	g.finishLevel(outcome)

	g.session.State = StateGameOver
	g.events.Publish(g.session.event(EventGameOver))
	slog.Info("game_over",
		"tick", g.tick,
		"reason", string(outcome),
		"level", g.session.Level,
		"score", g.session.Score,
	)

	if rank := g.highScores.Consider(telemetry.HighScore{
		Score:     g.session.Score,
		Level:     g.session.Level,
		Ticks:     g.tick,
		Seed:      g.rngSeed,
		Timestamp: time.Now(),
	}); rank >= 0 {
		slog.Info("high_score", "rank", rank+1, "score", g.session.Score)
	}
	if g.snapshotDir != "" {
		g.saveSnapshot(nil)
	}

	g.scheduler.After(g.cfg.Session.RestartDelay, TaskRestartGame)
}

// loadNextLevel clears the previous level, re-centres the player, refills the
// clock and spawns one large ball per level number.
func (g *Game) loadNextLevel() {
	g.destroyBallsAndHarpoons()
	if g.hasPlayer {
		pos, vel, pl := g.playerMapper.Get(g.player)
		g.playerParams.ResetPlayer(pos, vel, pl)
	}
	g.beginLevel()
	g.spawnLevelBalls(g.session.Level)
	g.resume()
}

// restartGame resets the session, removes every entity and schedules the
// first level to load.
func (g *Game) restartGame() {
	g.destroyBallsAndHarpoons()
	g.destroyPlayer()
	g.session.Reset()
	g.session.State = StateRestarting
	g.scheduler.After(g.cfg.Session.RespawnDelay, TaskLoadFirstLevel)
	slog.Info("restart", "tick", g.tick)
}

// loadFirstLevel respawns the player and spawns the level-1 ball set.
func (g *Game) loadFirstLevel() {
	g.SpawnPlayer(g.playerParams.SpawnX, g.playerParams.SpawnY)
	g.beginLevel()
	g.spawnLevelBalls(g.session.Level)
	g.resume()
}

// ManualRestart abandons the current session immediately. Pending level
// transitions and restarts are cancelled.
func (g *Game) ManualRestart() {
	if g.collector.Active() {
		g.finishLevel(telemetry.OutcomeAborted)
	}
	g.scheduler.CancelAll()
	g.paused = false
	g.restartGame()
}

// beginLevel refills the clock, builds the level geometry and starts
// collecting stats for the attempt.
func (g *Game) beginLevel() {
	g.session.ResetClock()
	g.buildLevel(g.session.Level)
	g.collector.StartLevel(g.tick, g.session.Level, g.session.Score)
}

// resume starts the clock and announces the level.
func (g *Game) resume() {
	g.session.State = StateRunning
	g.events.Publish(g.session.event(EventGameStart))
	slog.Info("game_start",
		"tick", g.tick,
		"level", g.session.Level,
		"balls", len(g.balls),
		"lives", g.session.Lives,
	)
}
