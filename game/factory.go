package game

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/shells/components"
	"github.com/pthm-cable/shells/genetics"
	"github.com/pthm-cable/shells/stats"
)

// founderNames is the pool random founders and walk-ons are named from.
var founderNames = []string{
	"Speedy", "Flash", "Tank", "Rocky", "Splash",
	"Bolt", "Zoom", "Crush", "Snap", "Drift",
	"Turbo", "Nitro", "Apex", "Vortex", "Titan",
	"Goliath", "Dash", "Sprint", "Marathon", "Iron",
}

// newID returns an 8-character id drawn from the league rng, so ids repeat
// for a given seed.
func (g *Game) newID() string {
	id, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		return uuid.NewString()[:8]
	}
	return id.String()[:8]
}

// randomName picks a founder name.
func (g *Game) randomName() string {
	return founderNames[g.rng.Intn(len(founderNames))]
}

// uniqueName suffixes repeated names with a counter ("Bolt", "Bolt 2").
func (g *Game) uniqueName(name string) string {
	g.names[name]++
	if n := g.names[name]; n > 1 {
		return fmt.Sprintf("%s %d", name, n)
	}
	return name
}

// turtleSpec describes a turtle about to enter the stable.
type turtleSpec struct {
	Name       string
	Stats      stats.Stats
	Traits     genetics.TraitSet
	Generation int
	ParentA    string
	ParentB    string
}

// spawnTurtle creates a turtle entity and registers it as active.
func (g *Game) spawnTurtle(spec turtleSpec) ecs.Entity {
	id := components.Identity{
		ID:         g.newID(),
		Name:       g.uniqueName(spec.Name),
		Generation: spec.Generation,
		ParentA:    spec.ParentA,
		ParentB:    spec.ParentB,
		BornSeason: g.season,
		Status:     components.StatusActive,
	}
	attrs := components.Attributes{Stats: spec.Stats}
	genome := components.Genome{Traits: spec.Traits}
	rec := components.Record{}

	entity := g.turtleMapper.NewEntity(&id, &attrs, &genome, &rec)
	g.byID[id.ID] = entity
	g.active = append(g.active, entity)

	return entity
}

// founderTraits returns a complete trait set: random genes overlaid with
// whatever the seed specifies.
func (g *Game) founderTraits(raw map[string]any) (genetics.TraitSet, error) {
	traits := g.registry.Random(g.rng)
	if len(raw) == 0 {
		return traits, nil
	}
	seeded, err := g.registry.Decode(raw)
	if err != nil {
		return nil, err
	}
	for name, v := range seeded {
		traits[name] = v
	}
	return traits, nil
}
