package genetics

import (
	"math"
	"math/rand"
	"testing"
)

func newRNG() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

// ---------- Registry ----------

func TestDefaultRegistryOrder(t *testing.T) {
	reg := DefaultRegistry()
	names := reg.Names()

	if len(names) != 19 {
		t.Fatalf("expected 19 genes, got %d", len(names))
	}
	if names[0] != "shell_base_color" {
		t.Errorf("first gene = %q, want shell_base_color", names[0])
	}
	if names[len(names)-1] != "eye_size_modifier" {
		t.Errorf("last gene = %q, want eye_size_modifier", names[len(names)-1])
	}
}

func TestRegistryGet(t *testing.T) {
	reg := DefaultRegistry()

	d, ok := reg.Get("limb_shape")
	if !ok {
		t.Fatal("limb_shape not registered")
	}
	if d.Kind != KindDiscrete {
		t.Errorf("limb_shape kind = %s, want discrete", d.Kind)
	}

	// Mutating the returned options must not leak into the registry.
	d.Options[0] = "wheels"
	again, _ := reg.Get("limb_shape")
	if again.Options[0] != "flippers" {
		t.Errorf("registry options modified through Get: %v", again.Options)
	}

	if _, ok := reg.Get("wings"); ok {
		t.Error("unexpected definition for unregistered gene")
	}
}

func TestNewRegistryRejectsBadDefinitions(t *testing.T) {
	tests := []struct {
		name string
		defs []Definition
	}{
		{"duplicate", []Definition{
			ContinuousGene("a", 0, 1, 0.5, ""),
			ContinuousGene("a", 0, 1, 0.5, ""),
		}},
		{"empty options", []Definition{DiscreteGene("a", nil, "x", "")}},
		{"default not an option", []Definition{DiscreteGene("a", []string{"x"}, "y", "")}},
		{"inverted range", []Definition{ContinuousGene("a", 1, 0, 0.5, "")}},
		{"default out of range", []Definition{ContinuousGene("a", 0, 1, 2, "")}},
		{"missing name", []Definition{RGBGene("", RGB(0, 0, 0), "")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRegistry(tt.defs...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDefaultsComplete(t *testing.T) {
	reg := DefaultRegistry()
	defaults := reg.Defaults()

	if len(defaults) != reg.Len() {
		t.Fatalf("defaults has %d genes, want %d", len(defaults), reg.Len())
	}
	if err := reg.Validate(defaults); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
	if defaults["shell_base_color"].Color != RGB(34, 139, 34) {
		t.Errorf("shell_base_color default = %v", defaults["shell_base_color"])
	}
}

func TestRandomWithinDomain(t *testing.T) {
	reg := DefaultRegistry()
	rng := newRNG()

	for i := 0; i < 1000; i++ {
		traits := reg.Random(rng)
		if len(traits) != reg.Len() {
			t.Fatalf("random set has %d genes, want %d", len(traits), reg.Len())
		}
		if err := reg.Validate(traits); err != nil {
			t.Fatalf("random set invalid: %v", err)
		}
	}
}

// ---------- Color ----------

func TestColorDistance(t *testing.T) {
	black := RGB(0, 0, 0)
	white := RGB(255, 255, 255)

	if d := black.Distance(white); math.Abs(d-MaxColorDistance) > 1e-9 {
		t.Errorf("black-white distance = %v, want %v", d, MaxColorDistance)
	}
	if math.Abs(MaxColorDistance-441.67) > 0.01 {
		t.Errorf("MaxColorDistance = %v, want ~441.67", MaxColorDistance)
	}
	if d := white.Distance(white); d != 0 {
		t.Errorf("self distance = %v, want 0", d)
	}
}

func TestColorLerp(t *testing.T) {
	a := RGB(0, 100, 200)
	b := RGB(100, 200, 0)

	if got := a.Lerp(b, 0); got != a {
		t.Errorf("bias 0 = %v, want %v", got, a)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("bias 1 = %v, want %v", got, b)
	}
	if got := a.Lerp(b, 0.5); got != RGB(50, 150, 100) {
		t.Errorf("bias 0.5 = %v, want #329664", got)
	}
	// Bias is clamped.
	if got := a.Lerp(b, 7); got != b {
		t.Errorf("bias 7 = %v, want %v", got, b)
	}
}

func TestColorHexRoundTrip(t *testing.T) {
	c := RGB(34, 139, 34)
	if c.Hex() != "#228b22" {
		t.Errorf("Hex() = %q, want #228b22", c.Hex())
	}
	parsed, err := ParseHex(c.Hex())
	if err != nil {
		t.Fatalf("ParseHex: %v", err)
	}
	if parsed != c {
		t.Errorf("round trip = %v, want %v", parsed, c)
	}
	if _, err := ParseHex("green"); err == nil {
		t.Error("expected error for non-hex color")
	}
}

// ---------- Inheritance ----------

func TestInheritIdenticalParents(t *testing.T) {
	reg := DefaultRegistry()
	rng := newRNG()

	for i := 0; i < 100; i++ {
		parent := reg.Random(rng)
		if child := reg.Inherit(parent, parent, rng); !equalTraits(child, parent) {
			t.Fatalf("Inherit(t, t) differs from t")
		}
		if child := reg.InheritBlended(parent, parent, rng); !equalTraits(child, parent) {
			t.Fatalf("InheritBlended(t, t) differs from t")
		}
	}
}

func TestInheritPicksFromParents(t *testing.T) {
	reg := DefaultRegistry()
	rng := newRNG()
	p1 := reg.Random(rng)
	p2 := reg.Random(rng)

	fromP1, fromP2 := 0, 0
	for i := 0; i < 200; i++ {
		child := reg.Inherit(p1, p2, rng)
		for name, v := range child {
			if p1[name] == p2[name] {
				continue
			}
			switch v {
			case p1[name]:
				fromP1++
			case p2[name]:
				fromP2++
			default:
				t.Fatalf("gene %s = %v came from neither parent", name, v)
			}
		}
	}
	// Both parents should contribute roughly half the genes.
	total := float64(fromP1 + fromP2)
	if share := float64(fromP1) / total; share < 0.4 || share > 0.6 {
		t.Errorf("parent 1 share = %.2f, want ~0.5", share)
	}
}

func TestInheritMissingGenes(t *testing.T) {
	reg := DefaultRegistry()
	rng := newRNG()

	p1 := TraitSet{
		"leg_length": ContinuousValue(1.4),
		"wing_span":  ContinuousValue(3.0), // unregistered
	}
	p2 := TraitSet{
		"limb_shape": DiscreteValue("fins"),
	}

	for _, child := range []TraitSet{reg.Inherit(p1, p2, rng), reg.InheritBlended(p1, p2, rng)} {
		if len(child) != reg.Len() {
			t.Errorf("child has %d genes, want %d", len(child), reg.Len())
		}
		if child["leg_length"].Number != 1.4 {
			t.Errorf("leg_length = %v, want 1.4 (only parent 1 has it)", child["leg_length"])
		}
		if child["limb_shape"].Option != "fins" {
			t.Errorf("limb_shape = %v, want fins (only parent 2 has it)", child["limb_shape"])
		}
		if child["eye_color"] != reg.Defaults()["eye_color"] {
			t.Errorf("eye_color = %v, want default", child["eye_color"])
		}
		if _, ok := child["wing_span"]; ok {
			t.Error("unregistered gene leaked into child")
		}
	}
}

func TestInheritBlendedContinuousMean(t *testing.T) {
	reg := DefaultRegistry()
	rng := newRNG()

	for i := 0; i < 100; i++ {
		p1 := reg.Random(rng)
		p2 := reg.Random(rng)
		child := reg.InheritBlended(p1, p2, rng)

		for _, name := range reg.Names() {
			d, _ := reg.Get(name)
			if d.Kind != KindContinuous {
				continue
			}
			want := (p1[name].Number + p2[name].Number) / 2
			if math.Abs(child[name].Number-want) > 1e-6 {
				t.Errorf("%s = %v, want mean %v", name, child[name].Number, want)
			}
		}
	}
}

func TestInheritBlendedColorBias(t *testing.T) {
	reg := MustRegistry(RGBGene("c", RGB(0, 0, 0), ""))
	rng := newRNG()
	p1 := TraitSet{"c": RGBValue(RGB(0, 0, 0))}
	p2 := TraitSet{"c": RGBValue(RGB(200, 200, 200))}

	for i := 0; i < 1000; i++ {
		c := reg.InheritBlended(p1, p2, rng)["c"].Color
		// Bias in [0.3, 0.7] puts every channel in [60, 140].
		if c.R < 60 || c.R > 140 {
			t.Fatalf("blended channel %d outside [60, 140]", c.R)
		}
	}
}

// ---------- Similarity ----------

func TestSimilaritySelfAndSymmetry(t *testing.T) {
	reg := DefaultRegistry()
	rng := newRNG()

	for i := 0; i < 100; i++ {
		a := reg.Random(rng)
		b := reg.Random(rng)

		if s := reg.Similarity(a, a); math.Abs(s-1) > 1e-9 {
			t.Fatalf("Similarity(a, a) = %v, want 1", s)
		}
		ab := reg.Similarity(a, b)
		ba := reg.Similarity(b, a)
		if math.Abs(ab-ba) > 1e-12 {
			t.Fatalf("Similarity not symmetric: %v vs %v", ab, ba)
		}
		if ab < 0 || ab > 1 {
			t.Fatalf("Similarity out of range: %v", ab)
		}
	}
}

func TestSimilarityPenalizesMissingGenes(t *testing.T) {
	reg := MustRegistry(
		DiscreteGene("a", []string{"x", "y"}, "x", ""),
		DiscreteGene("b", []string{"x", "y"}, "x", ""),
	)
	full := TraitSet{"a": DiscreteValue("x"), "b": DiscreteValue("x")}
	partial := TraitSet{"a": DiscreteValue("x")}

	if s := reg.Similarity(partial, partial); s != 0.5 {
		t.Errorf("partial self similarity = %v, want 0.5", s)
	}
	if s := reg.Similarity(full, partial); s != 0.5 {
		t.Errorf("full vs partial = %v, want 0.5", s)
	}

	mismatched := TraitSet{"a": ContinuousValue(1), "b": DiscreteValue("x")}
	if s := reg.Similarity(full, mismatched); s != 0.5 {
		t.Errorf("kind mismatch should score 0 for that gene, got %v", s)
	}
}

func TestSimilarityPerKind(t *testing.T) {
	reg := MustRegistry(
		RGBGene("c", RGB(0, 0, 0), ""),
		ContinuousGene("f", 0, 2, 1, ""),
	)
	a := TraitSet{"c": RGBValue(RGB(0, 0, 0)), "f": ContinuousValue(0)}
	b := TraitSet{"c": RGBValue(RGB(255, 255, 255)), "f": ContinuousValue(1)}

	// Color contributes 0, continuous contributes 1 - 1/2.
	if s := reg.Similarity(a, b); math.Abs(s-0.25) > 1e-9 {
		t.Errorf("Similarity = %v, want 0.25", s)
	}
}

func TestSimilarityEmptyRegistry(t *testing.T) {
	reg := MustRegistry()
	if s := reg.Similarity(TraitSet{}, TraitSet{}); s != 0 {
		t.Errorf("empty registry similarity = %v, want 0", s)
	}
}

func equalTraits(a, b TraitSet) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
