// Package config provides configuration loading for the game.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all game configuration parameters.
type Config struct {
	Screen      ScreenConfig       `yaml:"screen"`
	Arena       ArenaConfig        `yaml:"arena"`
	Physics     PhysicsConfig      `yaml:"physics"`
	Ball        BallConfig         `yaml:"ball"`
	Harpoon     HarpoonConfig      `yaml:"harpoon"`
	Player      PlayerConfig       `yaml:"player"`
	Session     SessionConfig      `yaml:"session"`
	Levels      []LevelConfig      `yaml:"levels"`
	Palette     []ColorConfig      `yaml:"palette"`
	Backgrounds []BackgroundConfig `yaml:"backgrounds"`
	Audio       AudioConfig        `yaml:"audio"`
	Telemetry   TelemetryConfig    `yaml:"telemetry"`
	Autopilot   AutopilotConfig    `yaml:"autopilot"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// ArenaConfig describes the playable region in world units.
// The arena is centred on the origin with +Y pointing up.
type ArenaConfig struct {
	HalfWidth     float64 `yaml:"half_width"`
	HalfHeight    float64 `yaml:"half_height"`
	WallThickness float64 `yaml:"wall_thickness"`
	MaxObstacles  int     `yaml:"max_obstacles"` // Random obstacles per level = min(level, this)
	ObstacleSize  float64 `yaml:"obstacle_size"`
}

// PhysicsConfig holds simulation stepping parameters.
type PhysicsConfig struct {
	DT      float64 `yaml:"dt"`      // Seconds per fixed tick
	Gravity float64 `yaml:"gravity"` // Downward acceleration in units/s^2
}

// BallConfig holds ball physics and scoring parameters.
type BallConfig struct {
	MaxSize               int     `yaml:"max_size"`
	BaseSpeed             float64 `yaml:"base_speed"`
	BaseSize              float64 `yaml:"base_size"`
	BasePoints            int     `yaml:"base_points"`
	BaseJumpHeight        float64 `yaml:"base_jump_height"`
	SizeJumpMultiplier    float64 `yaml:"size_jump_multiplier"`
	GravityScale          float64 `yaml:"gravity_scale"`
	MinHorizontalSpeed    float64 `yaml:"min_horizontal_speed"`
	WallCheckDistance     float64 `yaml:"wall_check_distance"`
	StuckCheckInterval    float64 `yaml:"stuck_check_interval"`
	BoundaryOffset        float64 `yaml:"boundary_offset"`
	SplitOffset           float64 `yaml:"split_offset"`
	SplitJitter           float64 `yaml:"split_jitter"`             // Child vy = parent vy + U[-j, j]
	MinSplitVerticalSpeed float64 `yaml:"min_split_vertical_speed"` // Replaces a non-positive child vy
	SpawnHeight           float64 `yaml:"spawn_height"`
	SpawnSpan             float64 `yaml:"spawn_span"` // Horizontal span level balls are spread over
}

// HarpoonConfig holds projectile parameters.
type HarpoonConfig struct {
	Speed         float64 `yaml:"speed"`
	MaxLength     float64 `yaml:"max_length"`
	Width         float64 `yaml:"width"`
	InitialLength float64 `yaml:"initial_length"`
}

// PlayerConfig holds player movement and combat parameters.
type PlayerConfig struct {
	MoveSpeed     float64 `yaml:"move_speed"`
	SmoothTime    float64 `yaml:"smooth_time"`
	BoundaryX     float64 `yaml:"boundary_x"`
	SpawnX        float64 `yaml:"spawn_x"`
	SpawnY        float64 `yaml:"spawn_y"`
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	FireCooldown  float64 `yaml:"fire_cooldown"`
	Invulnerable  float64 `yaml:"invulnerable"` // Seconds of invulnerability after a hit or reset
	FiringOffsetY float64 `yaml:"firing_offset_y"`
	BlinkInterval float64 `yaml:"blink_interval"`
}

// SessionConfig holds score/lives/timer bookkeeping parameters.
type SessionConfig struct {
	LevelTime        float64 `yaml:"level_time"`
	Lives            int     `yaml:"lives"`
	MaxLevel         int     `yaml:"max_level"`
	InitialBallCount int     `yaml:"initial_ball_count"`
	TransitionDelay  float64 `yaml:"transition_delay"` // Level complete -> next level
	RestartDelay     float64 `yaml:"restart_delay"`    // Game over -> restart
	RespawnDelay     float64 `yaml:"respawn_delay"`    // Restart -> first level loaded
}

// LevelConfig holds optional per-level geometry.
type LevelConfig struct {
	Level     int          `yaml:"level"`
	Platforms []RectConfig `yaml:"platforms"`
}

// RectConfig is an axis-aligned rectangle given by centre and size.
type RectConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ColorConfig is an 8-bit RGB colour.
type ColorConfig struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
}

// BackgroundConfig names a level backdrop.
type BackgroundConfig struct {
	Name  string      `yaml:"name"`
	Color ColorConfig `yaml:"color"`
}

// AudioConfig holds synthesized sound cue parameters.
type AudioConfig struct {
	SampleRate int           `yaml:"sample_rate"`
	BufferMs   int           `yaml:"buffer_ms"`
	Sounds     []SoundConfig `yaml:"sounds"`
}

// SoundConfig describes one synthesized cue. Cues are addressed by index.
type SoundConfig struct {
	Name       string  `yaml:"name"`
	Wave       string  `yaml:"wave"` // sine, square, saw, noise
	Frequency  float64 `yaml:"frequency"`
	Sweep      float64 `yaml:"sweep"` // Frequency change over the cue, in Hz
	DurationMs int     `yaml:"duration_ms"`
	Volume     float64 `yaml:"volume"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfCollectorWindow int             `yaml:"perf_collector_window"`
	HighScoreSize       int             `yaml:"high_score_size"`
	Bookmarks           BookmarksConfig `yaml:"bookmarks"`
}

// BookmarksConfig holds bookmark detection thresholds.
type BookmarksConfig struct {
	FastClearSec  float64 `yaml:"fast_clear_sec"`  // Level cleared within this many seconds
	LastSecondSec float64 `yaml:"last_second_sec"` // Level cleared with at most this much time left
}

// AutopilotConfig tunes the headless driver.
type AutopilotConfig struct {
	FireAlignment float64 `yaml:"fire_alignment"` // Max |dx| to a target ball before firing
	DangerRadius  float64 `yaml:"danger_radius"`  // Extra margin kept from descending balls
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32         float32 // Physics.DT as float32
	ArenaW32     float32 // Arena.HalfWidth as float32
	ArenaH32     float32 // Arena.HalfHeight as float32
	LevelsByID   map[int]*LevelConfig
	SoundsByName map[string]int
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// MustLoad is like Load but panics on error. Intended for tests and tools.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(fmt.Sprintf("config: failed to load: %v", err))
	}
	return cfg
}

// validate rejects values the simulation cannot run with.
func (c *Config) validate() error {
	switch {
	case c.Physics.DT <= 0:
		return fmt.Errorf("physics.dt must be positive, got %v", c.Physics.DT)
	case c.Arena.HalfWidth <= 0 || c.Arena.HalfHeight <= 0:
		return fmt.Errorf("arena half extents must be positive, got %vx%v", c.Arena.HalfWidth, c.Arena.HalfHeight)
	case c.Ball.MaxSize < 1:
		return fmt.Errorf("ball.max_size must be at least 1, got %d", c.Ball.MaxSize)
	case c.Session.MaxLevel < 1:
		return fmt.Errorf("session.max_level must be at least 1, got %d", c.Session.MaxLevel)
	case c.Session.Lives < 1:
		return fmt.Errorf("session.lives must be at least 1, got %d", c.Session.Lives)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.ArenaW32 = float32(c.Arena.HalfWidth)
	c.Derived.ArenaH32 = float32(c.Arena.HalfHeight)

	c.Derived.LevelsByID = make(map[int]*LevelConfig, len(c.Levels))
	for i := range c.Levels {
		c.Derived.LevelsByID[c.Levels[i].Level] = &c.Levels[i]
	}

	c.Derived.SoundsByName = make(map[string]int, len(c.Audio.Sounds))
	for i, s := range c.Audio.Sounds {
		c.Derived.SoundsByName[s.Name] = i
	}

	if c.Telemetry.PerfCollectorWindow < 1 {
		c.Telemetry.PerfCollectorWindow = 60
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
