package genetics

import (
	"fmt"
	"slices"
)

// Registry is an immutable, ordered catalog of gene definitions.
// It is safe to share between goroutines.
type Registry struct {
	defs  []Definition
	index map[string]int
}

// NewRegistry builds a registry. Definitions keep the order they are given in.
func NewRegistry(defs ...Definition) (*Registry, error) {
	r := &Registry{
		defs:  make([]Definition, 0, len(defs)),
		index: make(map[string]int, len(defs)),
	}
	for _, d := range defs {
		if err := d.validate(); err != nil {
			return nil, err
		}
		if _, dup := r.index[d.Name]; dup {
			return nil, fmt.Errorf("gene %q registered twice", d.Name)
		}
		d.Options = slices.Clone(d.Options)
		r.index[d.Name] = len(r.defs)
		r.defs = append(r.defs, d)
	}
	return r, nil
}

// MustRegistry is like NewRegistry but panics on error.
func MustRegistry(defs ...Definition) *Registry {
	r, err := NewRegistry(defs...)
	if err != nil {
		panic(fmt.Sprintf("genetics: %v", err))
	}
	return r
}

// DefaultRegistry builds the turtle gene catalog.
func DefaultRegistry() *Registry {
	return MustRegistry(
		// Shell
		RGBGene("shell_base_color", RGB(34, 139, 34), "Primary shell color"),
		DiscreteGene("shell_pattern_type", []string{"hex", "spots", "stripes", "rings"}, "hex", "Shell pattern type"),
		RGBGene("shell_pattern_color", RGB(255, 255, 255), "Shell pattern color"),
		RGBGene("pattern_color", RGB(255, 255, 255), "Pattern color (renderer alias)"),
		ContinuousGene("shell_pattern_density", 0.1, 1.0, 0.5, "Pattern density/intensity"),
		ContinuousGene("shell_pattern_opacity", 0.3, 1.0, 0.8, "Pattern transparency"),
		ContinuousGene("shell_size_modifier", 0.5, 1.5, 1.0, "Shell size scaling"),

		// Body
		RGBGene("body_base_color", RGB(107, 142, 35), "Primary body color"),
		DiscreteGene("body_pattern_type", []string{"solid", "mottled", "speckled", "marbled"}, "solid", "Body pattern type"),
		RGBGene("body_pattern_color", RGB(85, 107, 47), "Body pattern color"),
		ContinuousGene("body_pattern_density", 0.1, 1.0, 0.3, "Body pattern density"),

		// Head
		ContinuousGene("head_size_modifier", 0.7, 1.3, 1.0, "Head size scaling"),
		RGBGene("head_color", RGB(139, 90, 43), "Head color"),

		// Legs
		ContinuousGene("leg_length", 0.5, 1.5, 1.0, "Leg length scaling"),
		DiscreteGene("limb_shape", []string{"flippers", "feet", "fins"}, "flippers", "Limb shape type"),
		ContinuousGene("leg_thickness_modifier", 0.7, 1.3, 1.0, "Leg thickness"),
		RGBGene("leg_color", RGB(101, 67, 33), "Leg color"),

		// Eyes
		RGBGene("eye_color", RGB(0, 0, 0), "Eye color"),
		ContinuousGene("eye_size_modifier", 0.8, 1.2, 1.0, "Eye size scaling"),
	)
}

// Get returns the definition for name.
func (r *Registry) Get(name string) (Definition, bool) {
	i, ok := r.index[name]
	if !ok {
		return Definition{}, false
	}
	d := r.defs[i]
	d.Options = slices.Clone(d.Options)
	return d, true
}

// Names returns gene names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.defs))
	for i := range r.defs {
		names[i] = r.defs[i].Name
	}
	return names
}

// Len returns the number of registered genes.
func (r *Registry) Len() int {
	return len(r.defs)
}

// Defaults returns a complete trait set of default values.
func (r *Registry) Defaults() TraitSet {
	t := make(TraitSet, len(r.defs))
	for i := range r.defs {
		t[r.defs[i].Name] = r.defs[i].Default
	}
	return t
}

// Validate checks every registered gene present in t against its definition.
// Unregistered names are ignored.
func (r *Registry) Validate(t TraitSet) error {
	for i := range r.defs {
		d := &r.defs[i]
		v, ok := t[d.Name]
		if !ok {
			continue
		}
		if v.Kind != d.Kind {
			return fmt.Errorf("gene %q: %w: got %s, want %s", d.Name, ErrKindMismatch, v.Kind, d.Kind)
		}
		if !d.Contains(v) {
			return fmt.Errorf("gene %q: %w: %s", d.Name, ErrDomainViolation, v)
		}
	}
	return nil
}

// lookup returns the value of gene d in t when present with the right kind.
func lookup(t TraitSet, d *Definition) (Value, bool) {
	v, ok := t[d.Name]
	if !ok || v.Kind != d.Kind {
		return Value{}, false
	}
	return v, true
}
