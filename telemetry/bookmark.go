package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkRecordPace BookmarkType = "record_pace"
	BookmarkDynasty    BookmarkType = "dynasty"
	BookmarkStalemate  BookmarkType = "stalemate"
	BookmarkConverging BookmarkType = "converging"
)

// convergenceThreshold is the roster similarity above which the gene pool is
// considered collapsed.
const convergenceThreshold = 0.9

// Bookmark represents an automatically triggered league milestone.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Season      int          `csv:"season"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"season", b.Season,
		"description", b.Description,
	)
}

// BookmarkDetector detects notable seasons.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []SeasonStats
	historySize int
	historyIdx  int
	historyFull bool

	dynastyLength int // Consecutive titles that trigger a dynasty bookmark

	// State tracking
	bestTick      int    // Fastest winning finish ever seen
	streakHolder  string // Champion ID of the current streak
	streak        int
	wasConverging bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize, dynastyLength int) *BookmarkDetector {
	if historySize < 1 {
		historySize = 1
	}
	if dynastyLength < 2 {
		dynastyLength = 2
	}
	return &BookmarkDetector{
		history:       make([]SeasonStats, historySize),
		historySize:   historySize,
		dynastyLength: dynastyLength,
	}
}

// Check analyzes the latest season and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats SeasonStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkRecordPace(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkDynasty(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkStalemate(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkConverging(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)

	return bookmarks
}

// History returns the retained seasons, oldest first.
func (bd *BookmarkDetector) History() []SeasonStats {
	if !bd.historyFull {
		return append([]SeasonStats(nil), bd.history[:bd.historyIdx]...)
	}
	out := make([]SeasonStats, 0, bd.historySize)
	out = append(out, bd.history[bd.historyIdx:]...)
	return append(out, bd.history[:bd.historyIdx]...)
}

func (bd *BookmarkDetector) addToHistory(stats SeasonStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// checkRecordPace fires when a heat is won faster than ever before. The
// first finish sets the record without firing.
func (bd *BookmarkDetector) checkRecordPace(stats SeasonStats) *Bookmark {
	if stats.BestTick == 0 {
		return nil
	}
	if bd.bestTick == 0 {
		bd.bestTick = stats.BestTick
		return nil
	}
	if stats.BestTick >= bd.bestTick {
		return nil
	}

	prev := bd.bestTick
	bd.bestTick = stats.BestTick
	return &Bookmark{
		Type:        BookmarkRecordPace,
		Season:      stats.Season,
		Description: fmt.Sprintf("heat won in %d ticks (previous record %d)", stats.BestTick, prev),
	}
}

// checkDynasty fires once when the same turtle takes the title for
// dynastyLength seasons in a row.
func (bd *BookmarkDetector) checkDynasty(stats SeasonStats) *Bookmark {
	if stats.ChampionID == "" {
		bd.streakHolder = ""
		bd.streak = 0
		return nil
	}
	if stats.ChampionID == bd.streakHolder {
		bd.streak++
	} else {
		bd.streakHolder = stats.ChampionID
		bd.streak = 1
	}
	if bd.streak != bd.dynastyLength {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkDynasty,
		Season:      stats.Season,
		Description: fmt.Sprintf("%s champion %d seasons running", stats.Champion, bd.streak),
	}
}

// checkStalemate fires when no heat in the season had a finisher.
func (bd *BookmarkDetector) checkStalemate(stats SeasonStats) *Bookmark {
	if stats.Heats == 0 || stats.Draws < stats.Heats {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkStalemate,
		Season:      stats.Season,
		Description: fmt.Sprintf("all %d heats hit the tick cap", stats.Heats),
	}
}

// checkConverging fires when roster similarity crosses the threshold upward.
func (bd *BookmarkDetector) checkConverging(stats SeasonStats) *Bookmark {
	converging := stats.Active > 1 && stats.Similarity >= convergenceThreshold
	fire := converging && !bd.wasConverging
	bd.wasConverging = converging
	if !fire {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkConverging,
		Season:      stats.Season,
		Description: fmt.Sprintf("roster similarity %.2f", stats.Similarity),
	}
}
