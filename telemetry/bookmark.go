package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkFastClear       BookmarkType = "fast_clear"
	BookmarkLastSecondClear BookmarkType = "last_second_clear"
	BookmarkFlawless        BookmarkType = "flawless_level"
	BookmarkScoreSurge      BookmarkType = "score_surge"
	BookmarkSharpshooter    BookmarkType = "sharpshooter"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type" json:"type"`
	Tick        int32        `csv:"tick" json:"tick"`
	Level       int          `csv:"level" json:"level"`
	Description string       `csv:"description" json:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"level", b.Level,
		"description", b.Description,
	)
}

// BookmarkDetector detects notable level attempts.
type BookmarkDetector struct {
	fastClearSec  float64
	lastSecondSec float64

	// Rolling history (circular buffer)
	history     []LevelStats
	historySize int
	historyIdx  int
	historyFull bool
}

// NewBookmarkDetector creates a detector with the given history size and thresholds.
func NewBookmarkDetector(historySize int, fastClearSec, lastSecondSec float64) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{
		fastClearSec:  fastClearSec,
		lastSecondSec: lastSecondSec,
		history:       make([]LevelStats, historySize),
		historySize:   historySize,
	}
}

// Check analyzes a finished level and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats LevelStats) []Bookmark {
	var bookmarks []Bookmark
	mark := func(t BookmarkType, format string, args ...any) {
		bookmarks = append(bookmarks, Bookmark{
			Type:        t,
			Tick:        stats.EndTick,
			Level:       stats.Level,
			Description: fmt.Sprintf(format, args...),
		})
	}

	if stats.Cleared() {
		if stats.DurationSec <= bd.fastClearSec {
			mark(BookmarkFastClear, "Level %d cleared in %.1fs", stats.Level, stats.DurationSec)
		}
		if stats.TimeLeftSec <= bd.lastSecondSec {
			mark(BookmarkLastSecondClear, "Level %d cleared with %.1fs left", stats.Level, stats.TimeLeftSec)
		}
		if stats.LivesLost == 0 {
			mark(BookmarkFlawless, "Level %d cleared without losing a life", stats.Level)
		}
		if stats.Shots >= 5 && stats.Hits == stats.Shots {
			mark(BookmarkSharpshooter, "Level %d cleared with %d/%d hits", stats.Level, stats.Hits, stats.Shots)
		}
	}

	if b := bd.checkScoreSurge(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	return bookmarks
}

// checkScoreSurge fires when a level scores more than twice the rolling average.
func (bd *BookmarkDetector) checkScoreSurge(stats LevelStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.ScoreGained
	}
	avg := float64(total) / float64(len(history))
	if avg <= 0 {
		return nil
	}

	if float64(stats.ScoreGained) > avg*2.0 {
		return &Bookmark{
			Type:        BookmarkScoreSurge,
			Tick:        stats.EndTick,
			Level:       stats.Level,
			Description: fmt.Sprintf("Scored %d, %.1fx the average (%.0f)", stats.ScoreGained, float64(stats.ScoreGained)/avg, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) addToHistory(stats LevelStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []LevelStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}
