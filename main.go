package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/pthm-cable/pang/audio"
	"github.com/pthm-cable/pang/config"
	"github.com/pthm-cable/pang/game"
	"github.com/pthm-cable/pang/terminal"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics, driven by the autopilot")
	terminalMode := flag.Bool("terminal", false, "Play in the terminal instead of a window")
	autoplay := flag.Bool("autoplay", false, "Let the autopilot play in graphical or terminal mode")
	logStats := flag.Bool("log-stats", false, "Output level and perf stats via slog")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for snapshot files")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster headless runs)")
	mute := flag.Bool("mute", false, "Disable sound")

	flag.Parse()

	if err := run(runOptions{
		configPath:     *configPath,
		headless:       *headless,
		terminal:       *terminalMode,
		autoplay:       *autoplay,
		logStats:       *logStats,
		snapshotDir:    *snapshotDir,
		outputDir:      *outputDir,
		seed:           *seed,
		maxTicks:       *maxTicks,
		stepsPerUpdate: *stepsPerUpdate,
		mute:           *mute,
	}); err != nil {
		slog.Error("pang failed", "error", err)
		os.Exit(1)
	}
}

type runOptions struct {
	configPath     string
	headless       bool
	terminal       bool
	autoplay       bool
	logStats       bool
	snapshotDir    string
	outputDir      string
	seed           int64
	maxTicks       int
	stepsPerUpdate int
	mute           bool
}

func run(o runOptions) error {
	if o.headless && o.terminal {
		return errors.New("--headless and --terminal are mutually exclusive")
	}

	closeLog, err := setupLogging(o)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Set up seed
	rngSeed := o.seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	sound := audio.NewSoundManager(cfg.Audio, o.mute || o.headless)
	if err := sound.Initialize(); err != nil {
		// Non-fatal, the game runs silently
		slog.Warn("audio unavailable", "error", err)
	}
	defer sound.Cleanup()

	g, err := game.NewGame(cfg, game.Options{
		Seed:           rngSeed,
		LogStats:       o.logStats,
		SnapshotDir:    o.snapshotDir,
		OutputDir:      o.outputDir,
		StepsPerUpdate: o.stepsPerUpdate,
		Audio:          sound,
	})
	if err != nil {
		return err
	}
	defer g.Unload()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	slog.Info("starting",
		"seed", rngSeed,
		"headless", o.headless,
		"terminal", o.terminal,
		"max_ticks", o.maxTicks,
		"steps_per_update", o.stepsPerUpdate,
	)
	g.Start()

	switch {
	case o.headless:
		runHeadless(ctx, g, o.maxTicks)
	case o.terminal:
		return terminal.Run(ctx, g, o.maxTicks)
	default:
		runGraphical(g, cfg, o.maxTicks, o.autoplay)
	}
	return nil
}

// setupLogging installs the default slog handler. Headless runs log JSON to
// stdout; the window logs text; the terminal owns the tty, so its logs go
// to output-dir/pang.log or nowhere.
func setupLogging(o runOptions) (func(), error) {
	switch {
	case o.headless:
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	case o.terminal:
		if o.outputDir == "" {
			slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
			return func() {}, nil
		}
		if err := os.MkdirAll(o.outputDir, 0755); err != nil {
			return nil, fmt.Errorf("creating output dir: %w", err)
		}
		f, err := os.Create(filepath.Join(o.outputDir, "pang.log"))
		if err != nil {
			return nil, fmt.Errorf("creating log file: %w", err)
		}
		slog.SetDefault(slog.New(slog.NewJSONHandler(f, nil)))
		return func() { f.Close() }, nil
	default:
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}
	return func() {}, nil
}

// runHeadless lets the autopilot play as fast as the CPU allows.
func runHeadless(ctx context.Context, g *game.Game, maxTicks int) {
	pilot := game.NewAutopilot(g.Config().Autopilot)
	for {
		select {
		case <-ctx.Done():
			slog.Info("interrupted", "tick", g.Tick())
			return
		default:
		}

		g.Update(pilot.Decide(g))

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			g.LogState()
			return
		}
	}
}
