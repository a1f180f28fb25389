// Package main provides CMA-ES search for the stat build that wins most
// often for a given point budget.
package main

import (
	"sort"

	"github.com/pthm-cable/shells/config"
	"github.com/pthm-cable/shells/stats"
)

// ParamSpec defines a single optimizable allocation weight.
type ParamSpec struct {
	Name    string  // Stat the weight buys
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds one weight per stat, in stats.Allocation order.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of allocation weights. The
// defaults spread points evenly.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "speed", Min: 0, Max: 1, Default: 0.5},
			{Name: "max_energy", Min: 0, Max: 1, Default: 0.5},
			{Name: "recovery", Min: 0, Max: 1, Default: 0.5},
			{Name: "swim", Min: 0, Max: 1, Default: 0.5},
			{Name: "climb", Min: 0, Max: 1, Default: 0.5},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default weights as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// Allocation splits budget points across stats in proportion to the clamped
// weights, handing leftover points to the largest remainders. All-zero
// weights spread the budget evenly.
func (pv *ParamVector) Allocation(x []float64, budget int) stats.Allocation {
	var a stats.Allocation
	if budget <= 0 {
		return a
	}

	w := pv.Clamp(x)
	var sum float64
	for _, v := range w {
		sum += v
	}
	if sum <= 0 {
		for i := 0; i < budget; i++ {
			a[i%len(a)]++
		}
		return a
	}

	type remainder struct {
		stat int
		frac float64
	}
	rems := make([]remainder, len(a))
	used := 0
	for i := range a {
		share := w[i] / sum * float64(budget)
		a[i] = int(share)
		used += a[i]
		rems[i] = remainder{stat: i, frac: share - float64(a[i])}
	}
	sort.SliceStable(rems, func(i, j int) bool {
		return rems[i].frac > rems[j].frac
	})
	for k := 0; used < budget; k++ {
		a[rems[k%len(rems)].stat]++
		used++
	}
	return a
}

// ApplyToConfig seeds the roster with a turtle built from the weights,
// replacing a seed of the same name or, when the roster is full, the last
// seed.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, name string, values []float64, budget int) {
	seed := config.TurtleConfig{
		Name:  name,
		Stats: stats.Allocate(pv.Allocation(values, budget)),
	}

	for i := range cfg.Roster {
		if cfg.Roster[i].Name == name {
			cfg.Roster[i] = seed
			return
		}
	}
	if len(cfg.Roster) < cfg.League.RosterSize {
		cfg.Roster = append(cfg.Roster, seed)
		return
	}
	cfg.Roster[len(cfg.Roster)-1] = seed
}
