// Package stats defines the fixed numeric attributes that drive a turtle's
// race physics, and the budget rules used to roll and breed them.
package stats

import (
	"fmt"
	"math"
	"math/rand"
)

// Defaults for optional stats.
const (
	DefaultStamina = 3.0
	DefaultLuck    = 3.0
)

// Budget rules
const (
	baseSpeed     = 1
	baseEnergy    = 50
	baseRecovery  = 1
	baseSwim      = 1
	baseClimb     = 1
	energyPerPt   = 10 // One budget point buys this much max energy
	levelBudget   = 10 // Extra points per level
	founderBudget = 15 // Points every random turtle gets
	basePoints    = 9  // Points() of the base block
	speedBias     = 0.15
	maxBreedBoost = 3
)

// Stats is a turtle's immutable stat block. All values are positive.
type Stats struct {
	Speed     float64 `yaml:"speed" json:"speed" csv:"speed"`
	MaxEnergy float64 `yaml:"max_energy" json:"max_energy" csv:"max_energy"`
	Recovery  float64 `yaml:"recovery" json:"recovery" csv:"recovery"`
	Swim      float64 `yaml:"swim" json:"swim" csv:"swim"`
	Climb     float64 `yaml:"climb" json:"climb" csv:"climb"`
	Stamina   float64 `yaml:"stamina" json:"stamina" csv:"stamina"`
	Luck      float64 `yaml:"luck" json:"luck" csv:"luck"`
}

// Default returns the reference stat block.
func Default() Stats {
	return Stats{
		Speed:     5,
		MaxEnergy: 100,
		Recovery:  5,
		Swim:      5,
		Climb:     5,
		Stamina:   DefaultStamina,
		Luck:      DefaultLuck,
	}
}

// Option overrides an optional stat.
type Option func(*Stats)

// WithStamina sets stamina.
func WithStamina(v float64) Option {
	return func(s *Stats) { s.Stamina = v }
}

// WithLuck sets luck.
func WithLuck(v float64) Option {
	return func(s *Stats) { s.Luck = v }
}

// New builds a stat block. Stamina and luck default to 3.0.
func New(speed, maxEnergy, recovery, swim, climb float64, opts ...Option) Stats {
	s := Stats{
		Speed:     speed,
		MaxEnergy: maxEnergy,
		Recovery:  recovery,
		Swim:      swim,
		Climb:     climb,
		Stamina:   DefaultStamina,
		Luck:      DefaultLuck,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithDefaults fills unset stamina and luck.
func (s Stats) WithDefaults() Stats {
	if s.Stamina == 0 {
		s.Stamina = DefaultStamina
	}
	if s.Luck == 0 {
		s.Luck = DefaultLuck
	}
	return s
}

// Validate checks that every stat is positive and finite.
func (s Stats) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"speed", s.Speed},
		{"max_energy", s.MaxEnergy},
		{"recovery", s.Recovery},
		{"swim", s.Swim},
		{"climb", s.Climb},
		{"stamina", s.Stamina},
		{"luck", s.Luck},
	}
	for _, f := range fields {
		if !(f.v > 0) || math.IsInf(f.v, 0) {
			return fmt.Errorf("stat %s must be positive, got %v", f.name, f.v)
		}
	}
	return nil
}

// Points returns the budget value of the block. Energy is counted per 10.
func (s Stats) Points() int {
	return int(s.Speed) + int(s.Recovery) + int(s.Swim) + int(s.Climb) + int(s.MaxEnergy)/energyPerPt
}

// Random rolls a turtle for the given level. Starting from the base block,
// 15 + 10*level points are spent one at a time on a uniformly chosen stat.
func Random(level int, rng *rand.Rand) Stats {
	s := base()
	budget := founderBudget + level*levelBudget
	for ; budget > 0; budget-- {
		s.spend(rng.Intn(5))
	}
	return s
}

// Opponent rolls a turtle worth roughly the given number of points, spending
// only 15% of the budget on speed.
func Opponent(points int, rng *rand.Rand) Stats {
	s := base()
	for budget := points - basePoints; budget > 0; budget-- {
		if rng.Float64() < speedBias {
			s.spend(0)
			continue
		}
		s.spend(1 + rng.Intn(4))
	}
	return s
}

// Breed combines two parents: each stat is the floored mean of the parents
// plus a shared boost of 0..3 (x10 for energy), so children never regress
// below the mean.
func Breed(a, b Stats, rng *rand.Rand) Stats {
	boost := float64(rng.Intn(maxBreedBoost + 1))
	return Stats{
		Speed:     math.Max(baseSpeed, mean(a.Speed, b.Speed)+boost),
		MaxEnergy: math.Max(baseEnergy, mean(a.MaxEnergy, b.MaxEnergy)+boost*energyPerPt),
		Recovery:  math.Max(baseRecovery, mean(a.Recovery, b.Recovery)+boost),
		Swim:      math.Max(baseSwim, mean(a.Swim, b.Swim)+boost),
		Climb:     math.Max(baseClimb, mean(a.Climb, b.Climb)+boost),
		Stamina:   (a.Stamina + b.Stamina) / 2,
		Luck:      (a.Luck + b.Luck) / 2,
	}.WithDefaults()
}

// Allocation is a number of budget points per stat, in spend order: speed,
// max energy, recovery, swim, climb.
type Allocation [5]int

// Allocate builds a turtle from the base block plus the allocated points.
// Negative counts are ignored.
func Allocate(a Allocation) Stats {
	s := base()
	for i, n := range a {
		for ; n > 0; n-- {
			s.spend(i)
		}
	}
	return s
}

// BasePoints is Points() of a turtle with nothing allocated.
const BasePoints = basePoints

func base() Stats {
	return New(baseSpeed, baseEnergy, baseRecovery, baseSwim, baseClimb)
}

// spend puts one budget point into stat i: speed, energy, recovery, swim, climb.
func (s *Stats) spend(i int) {
	switch i {
	case 0:
		s.Speed++
	case 1:
		s.MaxEnergy += energyPerPt
	case 2:
		s.Recovery++
	case 3:
		s.Swim++
	case 4:
		s.Climb++
	}
}

func mean(a, b float64) float64 {
	return math.Floor((a + b) / 2)
}
