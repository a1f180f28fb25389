package genetics

import "math/rand"

// Blend bias bounds. Extremes are excluded so a blended child never clones
// either parent's color.
const (
	blendBiasMin = 0.3
	blendBiasMax = 0.7
)

// Inherit combines two parents by Mendelian inheritance: for every registered
// gene the child takes one parent's value with equal probability. A gene
// supplied by one parent only is copied from it; a gene supplied by neither
// gets the registry default. Unregistered names are dropped.
func (r *Registry) Inherit(p1, p2 TraitSet, rng *rand.Rand) TraitSet {
	child := make(TraitSet, len(r.defs))
	for i := range r.defs {
		d := &r.defs[i]
		v1, ok1 := lookup(p1, d)
		v2, ok2 := lookup(p2, d)
		child[d.Name] = pick(d, v1, ok1, v2, ok2, rng)
	}
	return child
}

// InheritBlended is like Inherit but mixes numeric genes: colors are
// interpolated with a random bias in [0.3, 0.7] and continuous values are
// averaged. Discrete genes keep the 50/50 pick.
func (r *Registry) InheritBlended(p1, p2 TraitSet, rng *rand.Rand) TraitSet {
	child := make(TraitSet, len(r.defs))
	for i := range r.defs {
		d := &r.defs[i]
		v1, ok1 := lookup(p1, d)
		v2, ok2 := lookup(p2, d)
		if !ok1 || !ok2 {
			child[d.Name] = pick(d, v1, ok1, v2, ok2, rng)
			continue
		}

		switch d.Kind {
		case KindRGB:
			bias := blendBiasMin + rng.Float64()*(blendBiasMax-blendBiasMin)
			child[d.Name] = RGBValue(v1.Color.Lerp(v2.Color, bias))
		case KindContinuous:
			child[d.Name] = ContinuousValue((v1.Number + v2.Number) / 2)
		default:
			child[d.Name] = pick(d, v1, ok1, v2, ok2, rng)
		}
	}
	return child
}

func pick(d *Definition, v1 Value, ok1 bool, v2 Value, ok2 bool, rng *rand.Rand) Value {
	switch {
	case ok1 && ok2:
		if rng.Float64() < 0.5 {
			return v1
		}
		return v2
	case ok1:
		return v1
	case ok2:
		return v2
	default:
		return d.Default
	}
}
