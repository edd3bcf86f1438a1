package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the session state at one tick, for post-mortem inspection.
type Snapshot struct {
	Version int   `json:"version"`
	RNGSeed int64 `json:"rng_seed"`

	ArenaHalfWidth  float32 `json:"arena_half_width"`
	ArenaHalfHeight float32 `json:"arena_half_height"`

	Tick          int32   `json:"tick"`
	State         string  `json:"state"`
	Level         int     `json:"level"`
	Score         int     `json:"score"`
	Lives         int     `json:"lives"`
	RemainingTime float64 `json:"remaining_time"`

	Player   *PlayerState   `json:"player,omitempty"`
	Balls    []BallState    `json:"balls"`
	Harpoons []HarpoonState `json:"harpoons"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// BallState holds one ball's state.
type BallState struct {
	Size   int     `json:"size"`
	X      float32 `json:"x"`
	Y      float32 `json:"y"`
	VelX   float32 `json:"vel_x"`
	VelY   float32 `json:"vel_y"`
	Radius float32 `json:"radius"`
}

// HarpoonState holds one harpoon's state.
type HarpoonState struct {
	OriginX float32 `json:"origin_x"`
	OriginY float32 `json:"origin_y"`
	Length  float32 `json:"length"`
}

// PlayerState holds the player's state.
type PlayerState struct {
	X               float32 `json:"x"`
	Y               float32 `json:"y"`
	VelX            float32 `json:"vel_x"`
	Invulnerable    bool    `json:"invulnerable"`
	InvulnRemaining float32 `json:"invuln_remaining"`
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Bookmark != nil {
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Tick, sanitized)
	} else if snapshot.State != "" {
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Tick, strings.ReplaceAll(snapshot.State, " ", "_"))
	}
	name += ".json"

	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	return &snapshot, nil
}
