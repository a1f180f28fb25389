package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/shells/genetics"
	"github.com/pthm-cable/shells/stats"
	"github.com/pthm-cable/shells/telemetry"
)

// shellColorGene is the gene reported in lineage records.
const shellColorGene = "shell_base_color"

// breedSeason pairs the two best careers across the active and retired pools
// once per configured offspring.
func (g *Game) breedSeason() []telemetry.LineageRecord {
	cfg := g.config()
	if !cfg.Breeding.Enabled {
		return nil
	}

	var lineage []telemetry.LineageRecord
	for i := 0; i < cfg.Breeding.Offspring; i++ {
		ranked := g.rankCareer()
		if len(ranked) < 2 {
			break
		}
		lineage = append(lineage, g.breed(ranked[0], ranked[1]))
	}
	return lineage
}

// breed creates a child of a and b, retiring the weakest active turtle first
// if the roster is full.
func (g *Game) breed(a, b ecs.Entity) telemetry.LineageRecord {
	cfg := g.config()

	// Copy parent state: component pointers do not survive entity creation
	// or removal.
	idA, attrsA, genA, recA := g.turtleMapper.Get(a)
	idB, attrsB, genB, recB := g.turtleMapper.Get(b)
	parentA, parentB := *idA, *idB
	recA.Children++
	recB.Children++

	similarity := g.registry.Similarity(genA.Traits, genB.Traits)

	var traits genetics.TraitSet
	if cfg.Derived.Blended {
		traits = g.registry.InheritBlended(genA.Traits, genB.Traits, g.rng)
	} else {
		traits = g.registry.Inherit(genA.Traits, genB.Traits, g.rng)
	}

	rate := cfg.Breeding.MutationRate
	if cfg.Derived.Adaptive {
		rate = genetics.AdaptiveRate(similarity)
	}
	traits = g.registry.Mutate(traits, rate, g.rng)

	childStats := stats.Breed(attrsA.Stats, attrsB.Stats, g.rng)

	g.makeRoom()
	child := g.spawnTurtle(turtleSpec{
		Name:       childName(parentA.Name, parentB.Name),
		Stats:      childStats,
		Traits:     traits,
		Generation: max(parentA.Generation, parentB.Generation) + 1,
		ParentA:    parentA.ID,
		ParentB:    parentB.ID,
	})
	childID := g.idMap.Get(child)
	g.collector.RecordBirth()

	record := telemetry.LineageRecord{
		Season:       g.season,
		ChildID:      childID.ID,
		Child:        childID.Name,
		ParentAID:    parentA.ID,
		ParentA:      parentA.Name,
		ParentBID:    parentB.ID,
		ParentB:      parentB.Name,
		Generation:   childID.Generation,
		Policy:       cfg.Breeding.Policy,
		Similarity:   similarity,
		MutationRate: rate,
		Points:       childStats.Points(),
	}
	if v, ok := traits[shellColorGene]; ok && v.Kind == genetics.KindRGB {
		record.ShellColor = v.Color.Hex()
	}

	if g.logStats {
		record.LogBirth()
	}
	return record
}

// childName joins the first half of a with the last half of b.
func childName(a, b string) string {
	ra, rb := []rune(a), []rune(b)
	return string(ra[:len(ra)/2]) + string(rb[len(rb)/2:])
}
