package telemetry

import (
	"encoding/json"
	"sort"
	"time"
)

// HighScore is one finished game.
type HighScore struct {
	Score     int       `json:"score"`
	Level     int       `json:"level"` // Level reached
	Ticks     int32     `json:"ticks"` // Session length in simulation ticks
	Seed      int64     `json:"seed"`
	Timestamp time.Time `json:"timestamp"`
}

// HighScores keeps the best finished games, highest score first.
type HighScores struct {
	entries []HighScore
	maxSize int
}

// NewHighScores creates an empty table holding at most maxSize entries.
func NewHighScores(maxSize int) *HighScores {
	if maxSize < 1 {
		maxSize = 10
	}
	return &HighScores{entries: make([]HighScore, 0, maxSize), maxSize: maxSize}
}

// Consider offers a finished game to the table.
// Returns the entry's rank (0-based) or -1 if it did not qualify.
func (hs *HighScores) Consider(entry HighScore) int {
	if entry.Score <= 0 {
		return -1
	}
	if len(hs.entries) == hs.maxSize && entry.Score <= hs.entries[len(hs.entries)-1].Score {
		return -1
	}

	// Ties keep earlier entries ahead
	idx := sort.Search(len(hs.entries), func(i int) bool {
		return hs.entries[i].Score < entry.Score
	})
	hs.entries = append(hs.entries, HighScore{})
	copy(hs.entries[idx+1:], hs.entries[idx:])
	hs.entries[idx] = entry
	if len(hs.entries) > hs.maxSize {
		hs.entries = hs.entries[:hs.maxSize]
	}
	return idx
}

// Best returns the top score, or 0 when the table is empty.
func (hs *HighScores) Best() int {
	if len(hs.entries) == 0 {
		return 0
	}
	return hs.entries[0].Score
}

// Entries returns the table, highest score first.
func (hs *HighScores) Entries() []HighScore {
	return hs.entries
}

// Len returns the number of entries.
func (hs *HighScores) Len() int {
	return len(hs.entries)
}

// MarshalJSON serializes the table.
func (hs *HighScores) MarshalJSON() ([]byte, error) {
	return json.MarshalIndent(struct {
		MaxSize int         `json:"max_size"`
		Entries []HighScore `json:"entries"`
	}{hs.maxSize, hs.entries}, "", "  ")
}
