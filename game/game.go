package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/pang/components"
	"github.com/pthm-cable/pang/config"
	"github.com/pthm-cable/pang/systems"
	"github.com/pthm-cable/pang/telemetry"
)

// Game holds the complete game state.
type Game struct {
	cfg     *config.Config
	world   *ecs.World
	rng     *rand.Rand
	rngSeed int64
	dt      float32

	// Entity mappers
	ballMapper    *ecs.Map4[components.Position, components.Velocity, components.Body, components.Ball]
	harpoonMapper *ecs.Map2[components.Position, components.Harpoon]
	playerMapper  *ecs.Map3[components.Position, components.Velocity, components.Player]
	surfaceMapper *ecs.Map2[components.Position, components.Surface]

	ballFilter *ecs.Filter3[components.Position, components.Body, components.Ball]

	// Systems
	arena         systems.Arena
	ballParams    systems.BallParams
	harpoonParams systems.HarpoonParams
	playerParams  systems.PlayerParams
	ballSystem    *systems.BallSystem
	harpoonSystem *systems.HarpoonSystem
	playerSystem  *systems.PlayerSystem

	// Session
	session   *Session
	events    *EventBus
	scheduler *Scheduler
	audio     AudioSink

	// Owned entities. The ball set drives the level-complete poll.
	balls      map[ecs.Entity]struct{}
	harpoons   map[ecs.Entity]struct{}
	surfaces   []ecs.Entity
	player     ecs.Entity
	hasPlayer  bool
	background int

	ballRefs []systems.BallRef

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	highScores       *telemetry.HighScores
	outputManager    *telemetry.OutputManager
	levelHistory     []telemetry.LevelStats
	logStats         bool
	snapshotDir      string

	// State
	tick           int32
	paused         bool
	stepsPerUpdate int

	warnedPalette    bool
	warnedBackground bool
}

// NewGame creates a game from cfg. The session is not started until Start.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	world := ecs.NewWorld()

	g := &Game{
		cfg:     cfg,
		world:   world,
		rng:     rand.New(rand.NewSource(opts.Seed)),
		rngSeed: opts.Seed,
		dt:      cfg.Derived.DT32,

		ballMapper:    ecs.NewMap4[components.Position, components.Velocity, components.Body, components.Ball](world),
		harpoonMapper: ecs.NewMap2[components.Position, components.Harpoon](world),
		playerMapper:  ecs.NewMap3[components.Position, components.Velocity, components.Player](world),
		surfaceMapper: ecs.NewMap2[components.Position, components.Surface](world),
		ballFilter:    ecs.NewFilter3[components.Position, components.Body, components.Ball](world),

		arena:         systems.NewArena(cfg),
		ballParams:    systems.NewBallParams(cfg),
		harpoonParams: systems.NewHarpoonParams(cfg),
		playerParams:  systems.NewPlayerParams(cfg),

		session:   NewSession(cfg.Session),
		events:    NewEventBus(),
		scheduler: NewScheduler(),
		audio:     opts.Audio,

		balls:      make(map[ecs.Entity]struct{}),
		harpoons:   make(map[ecs.Entity]struct{}),
		background: -1,

		collector:     telemetry.NewCollector(cfg.Derived.DT32),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		bookmarkDetector: telemetry.NewBookmarkDetector(10,
			cfg.Telemetry.Bookmarks.FastClearSec, cfg.Telemetry.Bookmarks.LastSecondSec),
		highScores:     telemetry.NewHighScores(cfg.Telemetry.HighScoreSize),
		logStats:       opts.LogStats,
		snapshotDir:    opts.SnapshotDir,
		stepsPerUpdate: max(opts.StepsPerUpdate, 1),
	}
	if g.audio == nil {
		g.audio = silentAudio{}
	}

	g.ballSystem = systems.NewBallSystem(world, g.ballParams, g.arena)
	g.harpoonSystem = systems.NewHarpoonSystem(world, g.arena)
	g.playerSystem = systems.NewPlayerSystem(world, g.playerParams)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	return g, nil
}

// Start begins the first session: player, level geometry and the opening ball set.
func (g *Game) Start() {
	g.SpawnPlayer(g.playerParams.SpawnX, g.playerParams.SpawnY)
	g.beginLevel()
	g.spawnInitialBalls()
	g.resume()
}

// Update runs StepsPerUpdate simulation ticks with the same input.
// Edge-triggered actions apply on the first tick only.
func (g *Game) Update(in Input) {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.Step(in)
		in.Fire, in.Pause, in.Restart = false, false, false
	}
	g.perfCollector.RecordFrame()
}

// Unload flushes telemetry and closes output files.
func (g *Game) Unload() {
	if g.collector.Active() {
		g.finishLevel(telemetry.OutcomeAborted)
	}
	if g.logStats {
		g.LogSummary()
	}
	if err := g.outputManager.WriteHighScores(g.highScores); err != nil {
		slog.Error("failed to write high scores", "error", err)
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// Events returns the session event bus.
func (g *Game) Events() *EventBus {
	return g.events
}

// Session returns the live session state. Callers must not mutate it.
func (g *Game) Session() *Session {
	return g.session
}

// Tick returns the number of simulation ticks run.
func (g *Game) Tick() int32 {
	return g.tick
}

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool {
	return g.paused
}

// SetPaused pauses or resumes the simulation.
func (g *Game) SetPaused(p bool) {
	g.paused = p
}

// StepsPerUpdate returns how many ticks Update runs.
func (g *Game) StepsPerUpdate() int {
	return g.stepsPerUpdate
}

// SetStepsPerUpdate sets how many ticks Update runs, clamped to [1, 10].
func (g *Game) SetStepsPerUpdate(n int) {
	g.stepsPerUpdate = min(max(n, 1), 10)
}

// BallCount returns the number of live balls.
func (g *Game) BallCount() int {
	return len(g.balls)
}

// HarpoonCount returns the number of live harpoons.
func (g *Game) HarpoonCount() int {
	return len(g.harpoons)
}

// Arena returns the playable bounds.
func (g *Game) Arena() systems.Arena {
	return g.arena
}

// Config returns the game configuration.
func (g *Game) Config() *config.Config {
	return g.cfg
}

// Background returns the selected background index, or -1 for none.
func (g *Game) Background() int {
	return g.background
}

// HighScores returns the in-memory high score table.
func (g *Game) HighScores() *telemetry.HighScores {
	return g.highScores
}

// PerfStats returns the rolling per-phase timing.
func (g *Game) PerfStats() telemetry.PerfStats {
	return g.perfCollector.Stats()
}

// LevelHistory returns the stats of every finished level attempt.
func (g *Game) LevelHistory() []telemetry.LevelStats {
	return g.levelHistory
}
