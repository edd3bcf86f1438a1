package telemetry

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()

	snapshot := &Snapshot{
		Version:         SnapshotVersion,
		RNGSeed:         42,
		ArenaHalfWidth:  8,
		ArenaHalfHeight: 4.5,
		Tick:            1000,
		State:           "game_over",
		Level:           3,
		Score:           4200,
		Lives:           0,
		RemainingTime:   31.5,
		Player: &PlayerState{
			X:               1.5,
			Y:               -4,
			VelX:            -2,
			Invulnerable:    true,
			InvulnRemaining: 1.25,
		},
		Balls: []BallState{
			{Size: 3, X: -3, Y: 2, VelX: 6.25, VelY: 7.5, Radius: 0.75},
			{Size: 1, X: 2, Y: -1, VelX: -8.75, VelY: 1, Radius: 0.25},
		},
		Harpoons: []HarpoonState{{OriginX: 1.5, OriginY: -3.5, Length: 4}},
		Bookmark: &Bookmark{
			Type:        BookmarkFlawless,
			Tick:        1000,
			Level:       3,
			Description: "Test bookmark",
		},
	}

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Snapshot file not created at %s", path)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	if loaded.Version != snapshot.Version {
		t.Errorf("Version mismatch: got %d, want %d", loaded.Version, snapshot.Version)
	}
	if loaded.Tick != snapshot.Tick || loaded.Score != snapshot.Score || loaded.Level != snapshot.Level {
		t.Errorf("session mismatch: got tick %d score %d level %d", loaded.Tick, loaded.Score, loaded.Level)
	}
	if len(loaded.Balls) != 2 || loaded.Balls[1].Size != 1 {
		t.Errorf("Balls mismatch: got %+v", loaded.Balls)
	}
	if loaded.Player == nil || !loaded.Player.Invulnerable {
		t.Errorf("Player mismatch: got %+v", loaded.Player)
	}
	if loaded.Bookmark == nil {
		t.Error("Bookmark not loaded")
	} else if loaded.Bookmark.Type != snapshot.Bookmark.Type {
		t.Errorf("Bookmark type mismatch: got %s, want %s", loaded.Bookmark.Type, snapshot.Bookmark.Type)
	}
}

func TestSnapshotFilename(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name     string
		snapshot *Snapshot
		want     string
	}{
		{
			name: "with bookmark",
			snapshot: &Snapshot{
				Tick:     5000,
				State:    "running",
				Bookmark: &Bookmark{Type: BookmarkFastClear, Tick: 5000},
			},
			want: "snapshot_5000_fast_clear.json",
		},
		{
			name:     "with state",
			snapshot: &Snapshot{Tick: 4000, State: "game_over"},
			want:     "snapshot_4000_game_over.json",
		},
		{
			name:     "bare",
			snapshot: &Snapshot{Tick: 3000},
			want:     "snapshot_3000.json",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path, err := SaveSnapshot(tc.snapshot, tmpDir)
			if err != nil {
				t.Fatalf("SaveSnapshot failed: %v", err)
			}
			if want := filepath.Join(tmpDir, tc.want); path != want {
				t.Errorf("Path mismatch: got %s, want %s", path, want)
			}
		})
	}
}
