// Package game runs a turtle racing league: a stable of turtles stored in an
// ECS world races seasons of concurrent heats, and the best turtles breed.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/shells/components"
	"github.com/pthm-cable/shells/config"
	"github.com/pthm-cable/shells/genetics"
	"github.com/pthm-cable/shells/stats"
	"github.com/pthm-cable/shells/telemetry"
)

// Options configures a Game.
type Options struct {
	Config        *config.Config     // nil uses config.Cfg()
	Registry      *genetics.Registry // nil uses genetics.DefaultRegistry()
	Seed          int64              // 0 uses run.seed from config
	OutputDir     string             // Overrides run.output_dir when set
	LogStats      bool               // Log season stats, perf and milestones
	StatsCallback func(telemetry.SeasonStats)
}

// Game holds the complete league state.
type Game struct {
	world    *ecs.World
	rng      *rand.Rand
	cfg      *config.Config
	registry *genetics.Registry

	// Entity mappers
	turtleMapper *ecs.Map4[
		components.Identity,
		components.Attributes,
		components.Genome,
		components.Record,
	]
	turtleFilter *ecs.Filter4[
		components.Identity,
		components.Attributes,
		components.Genome,
		components.Record,
	]

	// Individual component mappers for lookups
	idMap     *ecs.Map1[components.Identity]
	recordMap *ecs.Map1[components.Record]

	// Stable, in roster order
	active  []ecs.Entity
	retired []ecs.Entity
	byID    map[string]ecs.Entity
	names   map[string]int // Uses of each name, for disambiguation

	// Heat workers
	pool *heatPool

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	hallOfFame       *telemetry.HallOfFame
	outputManager    *telemetry.OutputManager
	statsCallback    func(telemetry.SeasonStats)
	logStats         bool
	logHeats         bool

	// State
	season int
	seed   int64
}

// NewGame creates a league from the global configuration.
func NewGame() (*Game, error) {
	return NewGameWithOptions(Options{})
}

// NewGameWithOptions creates a league and spawns its founders.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}
	reg := opts.Registry
	if reg == nil {
		reg = genetics.DefaultRegistry()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = cfg.Run.Seed
	}
	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = cfg.Run.OutputDir
	}

	world := ecs.NewWorld()

	g := &Game{
		world:    world,
		rng:      rand.New(rand.NewSource(seed)),
		cfg:      cfg,
		registry: reg,
		seed:     seed,
		turtleMapper: ecs.NewMap4[
			components.Identity,
			components.Attributes,
			components.Genome,
			components.Record,
		](world),
		turtleFilter: ecs.NewFilter4[
			components.Identity,
			components.Attributes,
			components.Genome,
			components.Record,
		](world),
		idMap:     ecs.NewMap1[components.Identity](world),
		recordMap: ecs.NewMap1[components.Record](world),
		byID:      make(map[string]ecs.Entity),
		names:     make(map[string]int),
		pool:      newHeatPool(),

		collector:        telemetry.NewCollector(),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.MilestoneWindow),
		bookmarkDetector: telemetry.NewBookmarkDetector(cfg.Telemetry.MilestoneWindow, cfg.Telemetry.DynastySeasons),
		hallOfFame:       telemetry.NewHallOfFame(cfg.League.HallOfFameSize),
		statsCallback:    opts.StatsCallback,
		logStats:         opts.LogStats,
		logHeats:         cfg.Telemetry.LogHeats,
	}

	if err := g.spawnFounders(); err != nil {
		return nil, err
	}

	om, err := telemetry.NewOutputManager(outputDir)
	if err != nil {
		return nil, fmt.Errorf("initializing output: %w", err)
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	slog.Info("league created",
		"seed", seed,
		"active", len(g.active),
		"genes", reg.Len(),
		"output_dir", om.Dir(),
	)

	return g, nil
}

// Unload records every remaining career in the hall of fame, writes it, and
// closes output files.
func (g *Game) Unload() error {
	for _, e := range g.active {
		g.hallOfFame.Consider(g.hallEntry(e))
	}
	for _, e := range g.retired {
		g.hallOfFame.Consider(g.hallEntry(e))
	}

	var firstErr error
	if err := g.outputManager.WriteHallOfFame(g.hallOfFame); err != nil {
		firstErr = err
	}
	if err := g.outputManager.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// Season returns the number of seasons completed.
func (g *Game) Season() int {
	return g.season
}

// Seed returns the seed the league was created with.
func (g *Game) Seed() int64 {
	return g.seed
}

// Registry returns the gene registry.
func (g *Game) Registry() *genetics.Registry {
	return g.registry
}

// HallOfFame returns the hall of fame.
func (g *Game) HallOfFame() *telemetry.HallOfFame {
	return g.hallOfFame
}

// Turtle is a read-only view of one stable member.
type Turtle struct {
	components.Identity
	Stats  stats.Stats
	Traits genetics.TraitSet
	Record components.Record
}

// Active returns the racing roster in roster order.
func (g *Game) Active() []Turtle {
	return g.views(g.active)
}

// Retired returns the retired pool, oldest first.
func (g *Game) Retired() []Turtle {
	return g.views(g.retired)
}

// Lookup returns the turtle with the given ID.
func (g *Game) Lookup(id string) (Turtle, bool) {
	e, ok := g.byID[id]
	if !ok || !g.world.Alive(e) {
		return Turtle{}, false
	}
	return g.view(e), true
}

func (g *Game) views(entities []ecs.Entity) []Turtle {
	out := make([]Turtle, len(entities))
	for i, e := range entities {
		out[i] = g.view(e)
	}
	return out
}

func (g *Game) view(e ecs.Entity) Turtle {
	id, attrs, genome, rec := g.turtleMapper.Get(e)
	return Turtle{
		Identity: *id,
		Stats:    attrs.Stats,
		Traits:   genome.Traits.Clone(),
		Record:   *rec,
	}
}
