package genetics

import (
	"math"
	"math/rand"
)

// Mutation constants
const (
	colorNoise      = 30  // Max per-channel color jitter
	continuousSigma = 0.1 // Gaussian std dev as a fraction of the range width
)

// Adaptive mutation breakpoints: the closer the parents, the higher the rate.
var adaptiveRates = []struct {
	above float64
	rate  float64
}{
	{0.9, 0.3},
	{0.7, 0.2},
	{0.5, 0.1},
}

const adaptiveFloorRate = 0.05

// Mutate returns a copy of traits where each registered gene present in the
// input is independently replaced with probability rate. Genes the registry
// does not know, and values of the wrong kind, are copied unchanged.
func (r *Registry) Mutate(traits TraitSet, rate float64, rng *rand.Rand) TraitSet {
	out := traits.Clone()
	for i := range r.defs {
		d := &r.defs[i]
		v, ok := lookup(traits, d)
		if !ok {
			continue
		}
		if rng.Float64() >= rate {
			continue
		}
		out[d.Name] = mutateValue(d, v, rng)
	}
	return out
}

// AdaptiveRate maps parent similarity to a mutation rate.
func AdaptiveRate(similarity float64) float64 {
	for _, bp := range adaptiveRates {
		if similarity > bp.above {
			return bp.rate
		}
	}
	return adaptiveFloorRate
}

// AdaptiveMutate mutates traits at the rate AdaptiveRate picks for similarity.
func (r *Registry) AdaptiveMutate(traits TraitSet, similarity float64, rng *rand.Rand) TraitSet {
	return r.Mutate(traits, AdaptiveRate(similarity), rng)
}

func mutateValue(d *Definition, v Value, rng *rand.Rand) Value {
	switch d.Kind {
	case KindRGB:
		return RGBValue(Color{
			R: jitterChannel(v.Color.R, rng),
			G: jitterChannel(v.Color.G, rng),
			B: jitterChannel(v.Color.B, rng),
		})
	case KindDiscrete:
		return DiscreteValue(resampleOption(d.Options, v.Option, rng))
	case KindContinuous:
		sigma := d.Width() * continuousSigma
		return ContinuousValue(clamp(v.Number+gaussian(rng)*sigma, d.Min, d.Max))
	}
	return v
}

// jitterChannel adds uniform integer noise in [-colorNoise, colorNoise].
func jitterChannel(c uint8, rng *rand.Rand) uint8 {
	delta := rng.Intn(2*colorNoise+1) - colorNoise
	return clampChannel(float64(int(c) + delta))
}

// resampleOption picks uniformly among the options other than current.
// With nothing else to pick, current is kept.
func resampleOption(options []string, current string, rng *rand.Rand) string {
	alternatives := make([]string, 0, len(options))
	for _, o := range options {
		if o != current {
			alternatives = append(alternatives, o)
		}
	}
	if len(alternatives) == 0 {
		return current
	}
	return alternatives[rng.Intn(len(alternatives))]
}

// gaussian draws a standard normal sample with the Box-Muller transform.
// A zero first sample would take log(0), so it is drawn again.
func gaussian(rng *rand.Rand) float64 {
	u1 := rng.Float64()
	for u1 == 0 {
		u1 = rng.Float64()
	}
	u2 := rng.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}
