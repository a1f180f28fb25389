package genetics

import "math"

// Similarity scores how alike two trait sets are, in [0, 1].
//
// Every registered gene counts towards the denominator. A gene that is
// missing from either set, or carries the wrong kind, adds nothing to the
// numerator, so incomplete trait sets score lower.
func (r *Registry) Similarity(g1, g2 TraitSet) float64 {
	if len(r.defs) == 0 {
		return 0
	}

	var similar float64
	for i := range r.defs {
		d := &r.defs[i]
		v1, ok1 := lookup(g1, d)
		v2, ok2 := lookup(g2, d)
		if !ok1 || !ok2 {
			continue
		}
		similar += geneSimilarity(d, v1, v2)
	}
	return similar / float64(len(r.defs))
}

func geneSimilarity(d *Definition, v1, v2 Value) float64 {
	switch d.Kind {
	case KindRGB:
		return 1 - v1.Color.Distance(v2.Color)/MaxColorDistance
	case KindContinuous:
		width := d.Width()
		if width == 0 {
			if v1.Number == v2.Number {
				return 1
			}
			return 0
		}
		return 1 - math.Abs(v1.Number-v2.Number)/width
	case KindDiscrete:
		if v1.Option == v2.Option {
			return 1
		}
	}
	return 0
}
