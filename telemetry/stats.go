package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// LevelStats holds aggregated statistics for one level attempt.
type LevelStats struct {
	Level       int     `csv:"level"`
	Outcome     Outcome `csv:"outcome"`
	StartTick   int32   `csv:"-"`
	EndTick     int32   `csv:"end_tick"`
	DurationSec float64 `csv:"duration_sec"`
	TimeLeftSec float64 `csv:"time_left_sec"`

	// Shooting
	Shots   int     `csv:"shots"`
	Hits    int     `csv:"hits"`
	HitRate float64 `csv:"hit_rate"`

	// Ball resolution
	Splits       int `csv:"splits"`
	Pops         int `csv:"pops"`
	BallsSpawned int `csv:"balls_spawned"`

	LivesLost   int `csv:"lives_lost"`
	ScoreGained int `csv:"score_gained"`
	Score       int `csv:"score"`
}

// Cleared reports whether the level ended with every ball destroyed.
func (s LevelStats) Cleared() bool {
	return s.Outcome == OutcomeCleared
}

// LogValue implements slog.LogValuer for structured logging.
func (s LevelStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("level", s.Level),
		slog.String("outcome", string(s.Outcome)),
		slog.Int("end_tick", int(s.EndTick)),
		slog.Float64("duration_sec", s.DurationSec),
		slog.Float64("time_left_sec", s.TimeLeftSec),
		slog.Int("shots", s.Shots),
		slog.Int("hits", s.Hits),
		slog.Float64("hit_rate", s.HitRate),
		slog.Int("splits", s.Splits),
		slog.Int("pops", s.Pops),
		slog.Int("lives_lost", s.LivesLost),
		slog.Int("score_gained", s.ScoreGained),
		slog.Int("score", s.Score),
	)
}

// LogStats logs the level stats using slog.
func (s LevelStats) LogStats() {
	slog.Info("level_stats",
		"level", s.Level,
		"outcome", string(s.Outcome),
		"end_tick", s.EndTick,
		"duration_sec", s.DurationSec,
		"time_left_sec", s.TimeLeftSec,
		"shots", s.Shots,
		"hits", s.Hits,
		"hit_rate", s.HitRate,
		"splits", s.Splits,
		"pops", s.Pops,
		"lives_lost", s.LivesLost,
		"score_gained", s.ScoreGained,
		"score", s.Score,
	)
}

// Summary describes a sample with mean, spread and quantiles.
type Summary struct {
	N    int
	Mean float64
	Std  float64
	P10  float64
	P50  float64
	P90  float64
}

// Summarize computes a Summary of values. The input is not modified.
// Returns the zero Summary for an empty sample.
func Summarize(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	s := Summary{
		N:    n,
		Mean: stat.Mean(sorted, nil),
		P10:  stat.Quantile(0.10, stat.Empirical, sorted, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.90, stat.Empirical, sorted, nil),
	}
	if n > 1 {
		s.Std = stat.StdDev(sorted, nil)
	}
	return s
}

// SessionSummary aggregates the level attempts of a run.
type SessionSummary struct {
	Levels         int
	Cleared        int
	ClearTime      Summary // Seconds taken by cleared levels
	ScoreGained    Summary // Points per level attempt
	HitRate        Summary
	TotalLivesLost int
}

// SummarizeLevels builds a SessionSummary from level stats.
func SummarizeLevels(levels []LevelStats) SessionSummary {
	var clearTimes, scores, hitRates []float64
	out := SessionSummary{Levels: len(levels)}
	for _, l := range levels {
		if l.Cleared() {
			out.Cleared++
			clearTimes = append(clearTimes, l.DurationSec)
		}
		scores = append(scores, float64(l.ScoreGained))
		if l.Shots > 0 {
			hitRates = append(hitRates, l.HitRate)
		}
		out.TotalLivesLost += l.LivesLost
	}
	out.ClearTime = Summarize(clearTimes)
	out.ScoreGained = Summarize(scores)
	out.HitRate = Summarize(hitRates)
	return out
}

// LogStats logs the session summary using slog.
func (s SessionSummary) LogStats() {
	slog.Info("session_summary",
		"levels", s.Levels,
		"cleared", s.Cleared,
		"clear_time_mean", s.ClearTime.Mean,
		"clear_time_std", s.ClearTime.Std,
		"clear_time_p50", s.ClearTime.P50,
		"score_mean", s.ScoreGained.Mean,
		"score_p90", s.ScoreGained.P90,
		"hit_rate_mean", s.HitRate.Mean,
		"lives_lost", s.TotalLivesLost,
	)
}
