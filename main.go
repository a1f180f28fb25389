package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/shells/config"
	"github.com/pthm-cable/shells/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	logStats := flag.Bool("log-stats", false, "Output season stats, standings and milestones via slog (overrides telemetry.log_seasons)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = run.seed, then time-based)")
	seasons := flag.Int("seasons", 0, "Seasons to run (0 = run.seasons)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = cfg.Run.Seed
	}
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	numSeasons := *seasons
	if numSeasons == 0 {
		numSeasons = cfg.Run.Seasons
	}

	g, err := game.NewGameWithOptions(game.Options{
		Seed:      rngSeed,
		LogStats:  *logStats || cfg.Telemetry.LogSeasons,
		OutputDir: *outputDir,
	})
	if err != nil {
		slog.Error("failed to create league", "error", err)
		os.Exit(1)
	}

	slog.Info("starting league",
		"seed", rngSeed,
		"seasons", numSeasons,
		"roster", cfg.League.RosterSize,
		"heats", cfg.League.Heats,
	)

	for i := 0; i < numSeasons; i++ {
		g.RunSeason()
	}

	if err := g.Unload(); err != nil {
		slog.Error("failed to write output", "error", err)
		os.Exit(1)
	}

	if best := g.HallOfFame().Entries(); len(best) > 0 {
		slog.Info("league finished",
			"seasons", g.Season(),
			"hall_of_fame", len(best),
			"top", best[0].Name,
			"top_fitness", best[0].Fitness,
		)
	}
}
