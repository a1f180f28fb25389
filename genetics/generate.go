package genetics

import "math/rand"

// Random returns a complete trait set with every gene drawn independently
// and uniformly over its domain.
func (r *Registry) Random(rng *rand.Rand) TraitSet {
	t := make(TraitSet, len(r.defs))
	for i := range r.defs {
		d := &r.defs[i]
		t[d.Name] = randomValue(d, rng)
	}
	return t
}

func randomValue(d *Definition, rng *rand.Rand) Value {
	switch d.Kind {
	case KindRGB:
		return RGBValue(Color{
			R: uint8(rng.Intn(256)),
			G: uint8(rng.Intn(256)),
			B: uint8(rng.Intn(256)),
		})
	case KindDiscrete:
		return DiscreteValue(d.Options[rng.Intn(len(d.Options))])
	case KindContinuous:
		return ContinuousValue(d.Min + rng.Float64()*d.Width())
	}
	return d.Default
}
