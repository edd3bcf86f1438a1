package game

import (
	"log/slog"

	"github.com/pthm-cable/pang/telemetry"
)

// LogState logs the current session and entity counts.
func (g *Game) LogState() {
	sizes := make([]int, g.ballParams.MaxSize+1)
	for e := range g.balls {
		_, _, _, ball := g.ballMapper.Get(e)
		if ball.Size >= 0 && ball.Size < len(sizes) {
			sizes[ball.Size]++
		}
	}

	slog.Info("state",
		"tick", g.tick,
		"state", g.session.State.String(),
		"level", g.session.Level,
		"score", g.session.Score,
		"lives", g.session.Lives,
		"time_left", g.session.RemainingTime,
		"balls", len(g.balls),
		"balls_by_size", sizes[1:],
		"harpoons", len(g.harpoons),
		"pending_tasks", g.scheduler.Pending(),
	)
}

// LogSummary logs the distribution of finished level attempts and the best scores.
func (g *Game) LogSummary() {
	if len(g.levelHistory) > 0 {
		telemetry.SummarizeLevels(g.levelHistory).LogStats()
	}
	for i, hs := range g.highScores.Entries() {
		slog.Info("high_score_entry", "rank", i+1, "score", hs.Score, "level", hs.Level, "ticks", hs.Ticks)
	}
}
