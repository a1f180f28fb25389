package genetics

import (
	"errors"
	"testing"
)

func TestDecodeAcceptsHostShapes(t *testing.T) {
	reg := DefaultRegistry()

	raw := map[string]any{
		"shell_base_color":  []any{34, 139.0, uint8(34)}, // YAML/JSON style
		"head_color":        "#8b5a2b",
		"leg_color":         [3]int{101, 67, 33},
		"eye_color":         RGB(1, 2, 3),
		"limb_shape":        "fins",
		"leg_length":        1,
		"eye_size_modifier": float32(1.1),
		"tail_length":       3.0, // unknown, ignored
	}

	traits, err := reg.Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if got := traits["shell_base_color"].Color; got != RGB(34, 139, 34) {
		t.Errorf("shell_base_color = %v", got)
	}
	if got := traits["head_color"].Color; got != RGB(139, 90, 43) {
		t.Errorf("head_color = %v", got)
	}
	if got := traits["leg_color"].Color; got != RGB(101, 67, 33) {
		t.Errorf("leg_color = %v", got)
	}
	if got := traits["eye_color"].Color; got != RGB(1, 2, 3) {
		t.Errorf("eye_color = %v", got)
	}
	if got := traits["limb_shape"].Option; got != "fins" {
		t.Errorf("limb_shape = %q", got)
	}
	if got := traits["leg_length"].Number; got != 1 {
		t.Errorf("leg_length = %v", got)
	}
	if _, ok := traits["tail_length"]; ok {
		t.Error("unknown gene should be ignored")
	}
	if len(traits) != 7 {
		t.Errorf("decoded %d genes, want 7", len(traits))
	}
}

func TestDecodeClampsNumbers(t *testing.T) {
	reg := DefaultRegistry()

	traits, err := reg.Decode(map[string]any{
		"leg_length":        9.0,
		"head_color":        []int{-20, 300, 128},
		"eye_size_modifier": -1,
	})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if got := traits["leg_length"].Number; got != 1.5 {
		t.Errorf("leg_length = %v, want clamp to 1.5", got)
	}
	if got := traits["eye_size_modifier"].Number; got != 0.8 {
		t.Errorf("eye_size_modifier = %v, want clamp to 0.8", got)
	}
	if got := traits["head_color"].Color; got != RGB(0, 255, 128) {
		t.Errorf("head_color = %v, want saturated channels", got)
	}
}

func TestDecodeErrors(t *testing.T) {
	reg := DefaultRegistry()

	tests := []struct {
		name string
		raw  map[string]any
		want error
	}{
		{"discrete not string", map[string]any{"limb_shape": 3}, ErrKindMismatch},
		{"discrete unknown option", map[string]any{"limb_shape": "wheels"}, ErrDomainViolation},
		{"continuous not number", map[string]any{"leg_length": "long"}, ErrKindMismatch},
		{"color wrong arity", map[string]any{"leg_color": []int{1, 2}}, ErrKindMismatch},
		{"color not hex", map[string]any{"leg_color": "brown"}, ErrKindMismatch},
		{"color wrong type", map[string]any{"leg_color": 0.5}, ErrKindMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reg.Decode(tt.raw)
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	reg := DefaultRegistry()
	rng := newRNG()
	traits := reg.Random(rng)

	decoded, err := reg.Decode(Encode(traits))
	if err != nil {
		t.Fatalf("Decode(Encode(t)): %v", err)
	}
	if !equalTraits(decoded, traits) {
		t.Error("round trip changed the trait set")
	}
}
