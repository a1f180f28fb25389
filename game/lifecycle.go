package game

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/shells/components"
	"github.com/pthm-cable/shells/genetics"
	"github.com/pthm-cable/shells/stats"
	"github.com/pthm-cable/shells/telemetry"
)

// spawnFounders creates the starting stable: the configured roster seeds
// first, then random turtles until the roster is full.
func (g *Game) spawnFounders() error {
	cfg := g.config()

	for _, seed := range cfg.Roster {
		traits, err := g.founderTraits(seed.Genetics)
		if err != nil {
			return fmt.Errorf("roster seed %q: %w", seed.Name, err)
		}
		g.spawnTurtle(turtleSpec{
			Name:   seed.Name,
			Stats:  seed.Stats,
			Traits: traits,
		})
	}

	for i := 0; i < cfg.Derived.RandomFounders; i++ {
		g.spawnTurtle(turtleSpec{
			Name:   g.randomName(),
			Stats:  stats.Random(cfg.League.FounderLevel, g.rng),
			Traits: g.registry.Random(g.rng),
		})
	}

	return nil
}

// beginSeason clears every turtle's season counters.
func (g *Game) beginSeason() {
	query := g.turtleFilter.Query()
	for query.Next() {
		_, _, _, rec := query.Get()
		rec.BeginSeason()
	}
}

// rankSeason returns the active roster ordered by season standing. The sort
// is stable so ties keep roster order.
func (g *Game) rankSeason() []ecs.Entity {
	ranked := append([]ecs.Entity(nil), g.active...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return g.recordMap.Get(ranked[i]).Outranks(g.recordMap.Get(ranked[j]))
	})
	return ranked
}

// rankCareer returns active and retired turtles ordered by career record.
func (g *Game) rankCareer() []ecs.Entity {
	ranked := make([]ecs.Entity, 0, len(g.active)+len(g.retired))
	ranked = append(ranked, g.active...)
	ranked = append(ranked, g.retired...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return g.recordMap.Get(ranked[i]).OutranksCareer(g.recordMap.Get(ranked[j]))
	})
	return ranked
}

// makeRoom retires the weakest active turtle when the roster is full.
// Turtles born this season have not raced and are never chosen.
func (g *Game) makeRoom() {
	if len(g.active) < g.config().League.RosterSize {
		return
	}
	ranked := g.rankSeason()
	for i := len(ranked) - 1; i >= 0; i-- {
		if g.idMap.Get(ranked[i]).BornSeason < g.season {
			g.retire(ranked[i])
			return
		}
	}
}

// retire moves a turtle from the active roster to the retired pool and
// enforces the pool cap.
func (g *Game) retire(e ecs.Entity) {
	id := g.idMap.Get(e)
	id.Status = components.StatusRetired

	g.active = removeEntity(g.active, e)
	g.retired = append(g.retired, e)
	g.collector.RecordRetirement()

	if g.logStats {
		rec := g.recordMap.Get(e)
		slog.Info("retire",
			"season", g.season,
			"name", id.Name,
			"id", id.ID,
			"races", rec.Races,
			"wins", rec.Wins,
		)
	}

	g.pruneRetired()
}

// pruneRetired removes the oldest retirees past the cap. Each removed career
// is offered to the hall of fame first.
func (g *Game) pruneRetired() {
	limit := g.config().League.RetiredCap
	for len(g.retired) > limit {
		oldest := g.retired[0]
		g.retired = g.retired[1:]

		g.hallOfFame.Consider(g.hallEntry(oldest))
		delete(g.byID, g.idMap.Get(oldest).ID)
		g.world.RemoveEntity(oldest)
	}
}

// hallEntry builds a hall of fame entry from a turtle's components.
func (g *Game) hallEntry(e ecs.Entity) telemetry.HallEntry {
	id, attrs, genome, rec := g.turtleMapper.Get(e)
	return telemetry.HallEntry{
		ID:            id.ID,
		Name:          id.Name,
		Generation:    id.Generation,
		Races:         rec.Races,
		Wins:          rec.Wins,
		Podiums:       rec.Podiums,
		Championships: rec.Championships,
		Children:      rec.Children,
		BestTick:      rec.BestTick,
		Stats:         attrs.Stats,
		Genetics:      genetics.Encode(genome.Traits),
	}
}

func removeEntity(entities []ecs.Entity, e ecs.Entity) []ecs.Entity {
	for i, x := range entities {
		if x == e {
			return append(entities[:i], entities[i+1:]...)
		}
	}
	return entities
}
