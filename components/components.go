// Package components defines ECS components for the league.
package components

import (
	"github.com/pthm-cable/shells/genetics"
	"github.com/pthm-cable/shells/stats"
)

// Status is where a turtle sits in the stable.
type Status uint8

const (
	StatusActive  Status = iota // Races every season
	StatusRetired               // Kept only as breeding stock
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusRetired:
		return "retired"
	}
	return "unknown"
}

// Identity names a turtle and records its lineage.
type Identity struct {
	ID         string // 8-char id, shared with race.Turtle
	Name       string
	Generation int    // 0 for founders
	ParentA    string // Parent IDs, empty for founders
	ParentB    string
	BornSeason int
	Status     Status
}

// Founder reports whether the turtle has no parents.
func (id *Identity) Founder() bool {
	return id.ParentA == "" && id.ParentB == ""
}

// Attributes holds the fixed stat block a turtle races with.
type Attributes struct {
	Stats stats.Stats
}

// Genome holds a turtle's appearance genes.
type Genome struct {
	Traits genetics.TraitSet
}

// Record tracks race results. Season fields are cleared at the start of
// every season; career fields accumulate.
type Record struct {
	SeasonRaces    int
	SeasonWins     int
	SeasonPodiums  int
	SeasonDistance float64

	Races         int
	Wins          int
	Podiums       int
	Distance      float64
	BestTick      int // Fastest finish, 0 if never finished
	Children      int
	Championships int
}

// BeginSeason clears the season counters.
func (r *Record) BeginSeason() {
	r.SeasonRaces = 0
	r.SeasonWins = 0
	r.SeasonPodiums = 0
	r.SeasonDistance = 0
}

// AddResult records one heat. place is 1-based; finishTick is 0 when the
// turtle did not finish.
func (r *Record) AddResult(place int, distance float64, finishTick int) {
	r.SeasonRaces++
	r.Races++
	r.SeasonDistance += distance
	r.Distance += distance
	if place == 1 {
		r.SeasonWins++
		r.Wins++
	}
	if place <= 3 {
		r.SeasonPodiums++
		r.Podiums++
	}
	if finishTick > 0 && (r.BestTick == 0 || finishTick < r.BestTick) {
		r.BestTick = finishTick
	}
}

// WinRate returns career wins per race.
func (r *Record) WinRate() float64 {
	if r.Races == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Races)
}

// Outranks orders turtles for a season: more wins first, then more distance.
func (r *Record) Outranks(other *Record) bool {
	if r.SeasonWins != other.SeasonWins {
		return r.SeasonWins > other.SeasonWins
	}
	return r.SeasonDistance > other.SeasonDistance
}

// OutranksCareer orders turtles over their whole career, used for breeding
// across the active and retired pools.
func (r *Record) OutranksCareer(other *Record) bool {
	if r.Wins != other.Wins {
		return r.Wins > other.Wins
	}
	return r.Distance > other.Distance
}
