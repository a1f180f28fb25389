// Package genetics implements heritable turtle traits: a gene registry,
// random generation, Mendelian and blended inheritance, mutation and
// similarity scoring.
package genetics

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
)

// Kind is the value kind of a gene.
type Kind uint8

const (
	KindInvalid    Kind = iota
	KindRGB             // Color triplet
	KindDiscrete        // One of a fixed option set
	KindContinuous      // Float in an inclusive range
)

func (k Kind) String() string {
	switch k {
	case KindRGB:
		return "rgb"
	case KindDiscrete:
		return "discrete"
	case KindContinuous:
		return "continuous"
	default:
		return "invalid"
	}
}

// Value is a tagged gene value. Only the field matching Kind is meaningful.
type Value struct {
	Kind   Kind
	Color  Color
	Option string
	Number float64
}

// RGBValue wraps a color.
func RGBValue(c Color) Value {
	return Value{Kind: KindRGB, Color: c}
}

// DiscreteValue wraps a discrete option.
func DiscreteValue(s string) Value {
	return Value{Kind: KindDiscrete, Option: s}
}

// ContinuousValue wraps a float.
func ContinuousValue(f float64) Value {
	return Value{Kind: KindContinuous, Number: f}
}

func (v Value) String() string {
	switch v.Kind {
	case KindRGB:
		return v.Color.Hex()
	case KindDiscrete:
		return v.Option
	case KindContinuous:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	default:
		return "<invalid>"
	}
}

// TraitSet maps gene names to values. It may be partial.
type TraitSet map[string]Value

// Clone returns a shallow copy; values are plain data so the copy is independent.
func (t TraitSet) Clone() TraitSet {
	if t == nil {
		return TraitSet{}
	}
	return maps.Clone(t)
}

// Definition describes one gene: its kind, default and domain.
type Definition struct {
	Name        string
	Kind        Kind
	Default     Value
	Description string

	// Domain. Options is set for discrete genes, Min/Max for continuous genes.
	Options []string
	Min     float64
	Max     float64
}

// RGBGene defines a color gene.
func RGBGene(name string, def Color, description string) Definition {
	return Definition{
		Name:        name,
		Kind:        KindRGB,
		Default:     RGBValue(def),
		Description: description,
	}
}

// DiscreteGene defines a categorical gene.
func DiscreteGene(name string, options []string, def, description string) Definition {
	return Definition{
		Name:        name,
		Kind:        KindDiscrete,
		Default:     DiscreteValue(def),
		Description: description,
		Options:     slices.Clone(options),
	}
}

// ContinuousGene defines a gene over the inclusive range [min, max].
func ContinuousGene(name string, min, max, def float64, description string) Definition {
	return Definition{
		Name:        name,
		Kind:        KindContinuous,
		Default:     ContinuousValue(def),
		Description: description,
		Min:         min,
		Max:         max,
	}
}

// Width returns the size of a continuous domain.
func (d *Definition) Width() float64 {
	return d.Max - d.Min
}

// HasOption reports whether s is an allowed discrete option.
func (d *Definition) HasOption(s string) bool {
	return slices.Contains(d.Options, s)
}

// Contains reports whether v has the right kind and lies within the domain.
func (d *Definition) Contains(v Value) bool {
	if v.Kind != d.Kind {
		return false
	}
	switch d.Kind {
	case KindRGB:
		return true
	case KindDiscrete:
		return d.HasOption(v.Option)
	case KindContinuous:
		return v.Number >= d.Min && v.Number <= d.Max
	}
	return false
}

func (d *Definition) validate() error {
	if d.Name == "" {
		return fmt.Errorf("gene definition without name")
	}
	switch d.Kind {
	case KindRGB:
	case KindDiscrete:
		if len(d.Options) == 0 {
			return fmt.Errorf("gene %q: no discrete options", d.Name)
		}
	case KindContinuous:
		if d.Max < d.Min {
			return fmt.Errorf("gene %q: inverted range [%v, %v]", d.Name, d.Min, d.Max)
		}
	default:
		return fmt.Errorf("gene %q: unknown kind %d", d.Name, d.Kind)
	}
	if !d.Contains(d.Default) {
		return fmt.Errorf("gene %q: default %s outside domain", d.Name, d.Default)
	}
	return nil
}
