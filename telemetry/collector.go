package telemetry

// Outcome describes how a level attempt ended.
type Outcome string

const (
	OutcomeCleared Outcome = "cleared" // All balls destroyed
	OutcomeTimeout Outcome = "timeout" // Level timer ran out
	OutcomeDead    Outcome = "dead"    // Last life lost
	OutcomeAborted Outcome = "restart" // Manual restart mid-level
)

// Collector accumulates gameplay events for the level in progress and
// produces LevelStats when the level ends.
type Collector struct {
	dt float32

	// Current level tracking
	levelStartTick int32
	level          int
	scoreAtStart   int
	started        bool

	// Event counters for current level
	shots        int
	hits         int
	splits       int
	pops         int
	livesLost    int
	ballsSpawned int
}

// NewCollector creates a new stats collector.
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(dt float32) *Collector {
	return &Collector{dt: dt}
}

// StartLevel resets the counters for a new level attempt.
func (c *Collector) StartLevel(tick int32, level, score int) {
	c.reset()
	c.levelStartTick = tick
	c.level = level
	c.scoreAtStart = score
	c.started = true
}

// Active reports whether a level attempt is being tracked.
func (c *Collector) Active() bool {
	return c.started
}

// RecordShot records a harpoon launch.
func (c *Collector) RecordShot() {
	c.shots++
}

// RecordHit records a harpoon striking a ball. split is false when the ball
// was at minimum size and simply popped.
func (c *Collector) RecordHit(split bool) {
	c.hits++
	if split {
		c.splits++
	} else {
		c.pops++
	}
}

// RecordLifeLost records the player being hit.
func (c *Collector) RecordLifeLost() {
	c.livesLost++
}

// RecordBallSpawned records a ball entering play.
func (c *Collector) RecordBallSpawned() {
	c.ballsSpawned++
}

// Flush produces LevelStats for the attempt and stops tracking until the next StartLevel.
func (c *Collector) Flush(tick int32, score int, outcome Outcome, timeLeft float64) LevelStats {
	var hitRate float64
	if c.shots > 0 {
		hitRate = float64(c.hits) / float64(c.shots)
	}

	stats := LevelStats{
		Level:        c.level,
		Outcome:      outcome,
		StartTick:    c.levelStartTick,
		EndTick:      tick,
		DurationSec:  float64(tick-c.levelStartTick) * float64(c.dt),
		TimeLeftSec:  timeLeft,
		Shots:        c.shots,
		Hits:         c.hits,
		HitRate:      hitRate,
		Splits:       c.splits,
		Pops:         c.pops,
		BallsSpawned: c.ballsSpawned,
		LivesLost:    c.livesLost,
		ScoreGained:  score - c.scoreAtStart,
		Score:        score,
	}

	c.reset()
	c.started = false
	return stats
}

func (c *Collector) reset() {
	c.shots = 0
	c.hits = 0
	c.splits = 0
	c.pops = 0
	c.livesLost = 0
	c.ballsSpawned = 0
}
