package race

import (
	"github.com/google/uuid"

	"github.com/pthm-cable/shells/stats"
)

// Physics constants
const (
	terrainDifficulty = 0.8 // Scales the base energy drain
	baseDrain         = 0.5 // Energy spent per moving tick on neutral terrain
	recoveryRate      = 0.1 // Fraction of the recovery stat regained per resting tick
	staminaDivisor    = 20  // Stamina bonus to recovery is stamina/20
	recoveryThreshold = 0.5 // Fraction of max energy needed to start moving again
	swimDivisor       = 10
	climbDivisor      = 10
	sandDivisor       = 15
	boostFactor       = 1.2
)

// State is a turtle's physics state.
type State uint8

const (
	Moving State = iota
	Resting
	Finished
)

func (s State) String() string {
	switch s {
	case Moving:
		return "moving"
	case Resting:
		return "resting"
	case Finished:
		return "finished"
	}
	return "unknown"
}

// Turtle is a racer: fixed stats plus per-race state.
type Turtle struct {
	ID    string
	Name  string
	Stats stats.Stats

	Energy     float64 // In [0, Stats.MaxEnergy]
	Distance   float64 // Never decreases during a race
	Resting    bool
	Finished   bool // Set by the race, never cleared until Reset
	FinishTick int  // Tick on which Finished was set, 0 if not finished
}

// NewTurtle creates a turtle with a fresh short ID and full energy.
func NewTurtle(name string, s stats.Stats) *Turtle {
	return NewTurtleWithID(uuid.NewString()[:8], name, s)
}

// NewTurtleWithID creates a turtle with a caller-chosen ID.
func NewTurtleWithID(id, name string, s stats.Stats) *Turtle {
	t := &Turtle{
		ID:    id,
		Name:  name,
		Stats: s,
	}
	t.Reset()
	return t
}

// Reset restores full energy and clears race progress.
func (t *Turtle) Reset() {
	t.Energy = t.Stats.MaxEnergy
	t.Distance = 0
	t.Resting = false
	t.Finished = false
	t.FinishTick = 0
}

// State reports the current physics state.
func (t *Turtle) State() State {
	switch {
	case t.Finished:
		return Finished
	case t.Resting:
		return Resting
	default:
		return Moving
	}
}

// Update advances the turtle by one tick on the given segment and returns the
// distance covered. The caller adds it to Distance.
func (t *Turtle) Update(seg Segment) float64 {
	switch t.State() {
	case Finished:
		return 0
	case Resting:
		t.recover()
		return 0
	}

	move := t.Stats.Speed * t.terrainFactor(seg)

	t.Energy -= baseDrain * terrainDifficulty * seg.EnergyDrain
	if t.Energy <= 0 {
		t.Energy = 0
		t.Resting = true
	}
	return move
}

func (t *Turtle) recover() {
	staminaBonus := t.Stats.Stamina / staminaDivisor
	t.Energy += t.Stats.Recovery * recoveryRate * (1 + staminaBonus)
	if t.Energy > t.Stats.MaxEnergy {
		t.Energy = t.Stats.MaxEnergy
	}
	if t.Energy >= t.Stats.MaxEnergy*recoveryThreshold {
		t.Resting = false
	}
}

// terrainFactor is the multiplier applied to the speed stat on seg.
func (t *Turtle) terrainFactor(seg Segment) float64 {
	switch seg.Kind {
	case Water:
		return t.Stats.Swim / swimDivisor * seg.SpeedModifier
	case Rocks:
		return t.Stats.Climb / climbDivisor * seg.SpeedModifier
	case Sand:
		return (1 + t.Stats.Recovery/sandDivisor) * seg.SpeedModifier
	case Mud:
		return t.Energy / t.Stats.MaxEnergy * seg.SpeedModifier
	case Boost:
		return seg.SpeedModifier * boostFactor
	default:
		return seg.SpeedModifier
	}
}
