package game

// AudioSink receives fire-and-forget sound cues.
type AudioSink interface {
	HarpoonFired()
	BallPopped()
}

type silentAudio struct{}

func (silentAudio) HarpoonFired() {}
func (silentAudio) BallPopped()   {}

// Options holds configuration for game initialization.
type Options struct {
	Seed           int64  // RNG seed
	LogStats       bool   // Log level and perf stats via slog
	SnapshotDir    string // Directory for snapshot files (empty = disabled)
	OutputDir      string // Directory for CSV output (empty = disabled)
	StepsPerUpdate int    // Simulation ticks per Update call
	Audio          AudioSink
}

// DefaultOptions returns options for a silent, unlogged game.
func DefaultOptions() Options {
	return Options{
		Seed:           42,
		StepsPerUpdate: 1,
	}
}
