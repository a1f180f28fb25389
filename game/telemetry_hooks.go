package game

import (
	"log/slog"

	"github.com/pthm-cable/shells/telemetry"
)

// flushTelemetry closes the season's stats window, writes the season's
// records and checks for milestones.
func (g *Game) flushTelemetry(champion telemetry.Standing, races []telemetry.RaceRecord, lineage []telemetry.LineageRecord) telemetry.SeasonStats {
	stats := g.collector.Flush(champion, telemetry.Roster{
		Active:     len(g.active),
		Retired:    len(g.retired),
		Similarity: g.rosterSimilarity(),
	})

	// Call stats callback if provided
	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	// Log stats if enabled
	if g.logStats {
		stats.LogStats()
		g.logStandings()
	}

	if err := g.outputManager.WriteRaces(races); err != nil {
		slog.Error("failed to write races", "error", err)
	}
	if err := g.outputManager.WriteSeason(stats); err != nil {
		slog.Error("failed to write season", "error", err)
	}
	if err := g.outputManager.WriteLineage(lineage); err != nil {
		slog.Error("failed to write lineage", "error", err)
	}

	// Check for milestones
	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if err := g.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
	}

	return stats
}

// flushPerf writes timing for the season that just ended.
func (g *Game) flushPerf() {
	perfStats := g.perfCollector.Stats()
	if g.logStats {
		perfStats.LogStats()
	}
	if err := g.outputManager.WritePerf(perfStats, g.season); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}
