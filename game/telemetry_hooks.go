package game

import (
	"log/slog"

	"github.com/pthm-cable/pang/telemetry"
)

// finishLevel flushes the level attempt's stats and handles bookmarks.
func (g *Game) finishLevel(outcome telemetry.Outcome) {
	if !g.collector.Active() {
		return
	}
	stats := g.collector.Flush(g.tick, g.session.Score, outcome, g.session.RemainingTime)
	g.levelHistory = append(g.levelHistory, stats)

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
	}

	if err := g.outputManager.WriteLevel(stats); err != nil {
		slog.Error("failed to write level stats", "error", err)
	}

	// Check for bookmarks
	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if err := g.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
		if g.snapshotDir != "" {
			g.saveSnapshot(&bm)
		}
	}
}

// flushPerf writes the rolling perf window once per window of ticks.
func (g *Game) flushPerf() {
	window := int32(g.cfg.Telemetry.PerfCollectorWindow)
	if window <= 0 || g.tick%window != 0 {
		return
	}
	perfStats := g.perfCollector.Stats()
	if g.logStats {
		perfStats.LogStats()
	}
	if err := g.outputManager.WritePerf(perfStats, g.tick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// saveSnapshot creates and saves a snapshot to disk.
func (g *Game) saveSnapshot(bookmark *telemetry.Bookmark) {
	snapshot := g.createSnapshot(bookmark)

	path, err := telemetry.SaveSnapshot(snapshot, g.snapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}

	slog.Info("snapshot saved", "path", path, "tick", g.tick)
}

// createSnapshot builds a snapshot from the current state.
func (g *Game) createSnapshot(bookmark *telemetry.Bookmark) *telemetry.Snapshot {
	snapshot := &telemetry.Snapshot{
		Version:         telemetry.SnapshotVersion,
		RNGSeed:         g.rngSeed,
		ArenaHalfWidth:  g.arena.HalfWidth,
		ArenaHalfHeight: g.arena.HalfHeight,
		Tick:            g.tick,
		State:           g.session.State.String(),
		Level:           g.session.Level,
		Score:           g.session.Score,
		Lives:           g.session.Lives,
		RemainingTime:   g.session.RemainingTime,
		Bookmark:        bookmark,
	}

	if g.hasPlayer {
		pos, vel, pl := g.playerMapper.Get(g.player)
		snapshot.Player = &telemetry.PlayerState{
			X:               pos.X,
			Y:               pos.Y,
			VelX:            vel.X,
			Invulnerable:    pl.Invulnerable,
			InvulnRemaining: pl.InvulnRemaining,
		}
	}

	for e := range g.balls {
		pos, vel, body, ball := g.ballMapper.Get(e)
		snapshot.Balls = append(snapshot.Balls, telemetry.BallState{
			Size:   ball.Size,
			X:      pos.X,
			Y:      pos.Y,
			VelX:   vel.X,
			VelY:   vel.Y,
			Radius: body.Radius,
		})
	}

	for e := range g.harpoons {
		_, h := g.harpoonMapper.Get(e)
		snapshot.Harpoons = append(snapshot.Harpoons, telemetry.HarpoonState{
			OriginX: h.OriginX,
			OriginY: h.OriginY,
			Length:  h.Length,
		})
	}

	return snapshot
}
