package genetics

import (
	"errors"
	"fmt"
	"math"
)

// Ingestion errors.
var (
	ErrKindMismatch    = errors.New("gene value kind mismatch")
	ErrDomainViolation = errors.New("gene value outside domain")
)

// Decode converts loosely typed host data (decoded YAML or JSON, or values
// built in Go) into a TraitSet.
//
// Names the registry does not know are skipped. Continuous values and color
// channels out of range are clamped; a discrete value outside its option set
// is rejected with ErrDomainViolation, and a value of the wrong shape with
// ErrKindMismatch. All failing genes are reported together.
func (r *Registry) Decode(raw map[string]any) (TraitSet, error) {
	out := make(TraitSet, len(raw))
	var errs []error
	for i := range r.defs {
		d := &r.defs[i]
		rv, ok := raw[d.Name]
		if !ok {
			continue
		}
		v, err := decodeValue(d, rv)
		if err != nil {
			errs = append(errs, fmt.Errorf("gene %q: %w", d.Name, err))
			continue
		}
		out[d.Name] = v
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}

// Encode converts a TraitSet into host data: [3]int for colors, string for
// discrete genes and float64 for continuous genes.
func Encode(t TraitSet) map[string]any {
	out := make(map[string]any, len(t))
	for name, v := range t {
		switch v.Kind {
		case KindRGB:
			out[name] = [3]int{int(v.Color.R), int(v.Color.G), int(v.Color.B)}
		case KindDiscrete:
			out[name] = v.Option
		case KindContinuous:
			out[name] = v.Number
		}
	}
	return out
}

func decodeValue(d *Definition, raw any) (Value, error) {
	switch d.Kind {
	case KindRGB:
		c, err := decodeColor(raw)
		if err != nil {
			return Value{}, err
		}
		return RGBValue(c), nil

	case KindDiscrete:
		s, ok := raw.(string)
		if !ok {
			return Value{}, fmt.Errorf("%w: want string, got %T", ErrKindMismatch, raw)
		}
		if !d.HasOption(s) {
			return Value{}, fmt.Errorf("%w: %q not in %v", ErrDomainViolation, s, d.Options)
		}
		return DiscreteValue(s), nil

	case KindContinuous:
		f, ok := toFloat(raw)
		if !ok {
			return Value{}, fmt.Errorf("%w: want number, got %T", ErrKindMismatch, raw)
		}
		if math.IsNaN(f) {
			return Value{}, fmt.Errorf("%w: NaN", ErrDomainViolation)
		}
		return ContinuousValue(clamp(f, d.Min, d.Max)), nil
	}
	return Value{}, fmt.Errorf("%w: unsupported kind %s", ErrKindMismatch, d.Kind)
}

func decodeColor(raw any) (Color, error) {
	switch v := raw.(type) {
	case Color:
		return v, nil
	case [3]uint8:
		return Color{R: v[0], G: v[1], B: v[2]}, nil
	case [3]int:
		return channels(v[:])
	case []int:
		return channels(v)
	case []any:
		return channels(v)
	case string:
		c, err := ParseHex(v)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %v", ErrKindMismatch, err)
		}
		return c, nil
	}
	return Color{}, fmt.Errorf("%w: want RGB triplet, got %T", ErrKindMismatch, raw)
}

func channels[T any](vals []T) (Color, error) {
	if len(vals) != 3 {
		return Color{}, fmt.Errorf("%w: want 3 channels, got %d", ErrKindMismatch, len(vals))
	}
	var rgb [3]uint8
	for i, v := range vals {
		f, ok := toFloat(v)
		if !ok || math.IsNaN(f) {
			return Color{}, fmt.Errorf("%w: channel %d is %T", ErrKindMismatch, i, any(v))
		}
		rgb[i] = clampChannel(f)
	}
	return Color{R: rgb[0], G: rgb[1], B: rgb[2]}, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
