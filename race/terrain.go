package race

import (
	"math"
	"math/rand"
	"strings"
)

// Kind is the type of a track segment.
type Kind uint8

const (
	Normal Kind = iota
	Water       // Swim-driven
	Rocks       // Climb-driven
	Sand        // Recovery helps
	Mud         // Slows with fatigue
	Boost       // Fast and cheap
)

var kindNames = [...]string{"normal", "water", "rocks", "sand", "mud", "boost"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind parses a terrain name case-insensitively. Unknown names are Normal.
func ParseKind(s string) Kind {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range kindNames {
		if name == s {
			return Kind(i)
		}
	}
	return Normal
}

// Segment is one fixed-length slice of track.
type Segment struct {
	Kind          Kind
	SpeedModifier float64
	EnergyDrain   float64
}

// segments holds the fixed (speed, drain) pair of every kind.
var segments = [...]Segment{
	Normal: {Normal, 1.0, 1.0},
	Water:  {Water, 0.7, 1.2},
	Rocks:  {Rocks, 0.6, 1.3},
	Sand:   {Sand, 0.8, 1.1},
	Mud:    {Mud, 0.5, 1.5},
	Boost:  {Boost, 1.5, 0.8},
}

// SegmentOf returns the canonical segment for k.
func SegmentOf(k Kind) Segment {
	if int(k) < len(segments) {
		return segments[k]
	}
	return segments[Normal]
}

// trackDistribution is the cumulative probability of each kind on a
// generated track.
var trackDistribution = []struct {
	below float64
	kind  Kind
}{
	{0.60, Normal},
	{0.75, Water},
	{0.85, Rocks},
	{0.93, Sand},
	{0.97, Mud},
}

// GenerateTrack draws ceil(length/segmentSize) independent segments.
func GenerateTrack(length, segmentSize float64, rng *rand.Rand) []Segment {
	if length <= 0 || segmentSize <= 0 {
		return nil
	}
	n := int(math.Ceil(length / segmentSize))
	track := make([]Segment, n)
	for i := range track {
		track[i] = SegmentOf(rollKind(rng.Float64()))
	}
	return track
}

func rollKind(roll float64) Kind {
	for _, d := range trackDistribution {
		if roll < d.below {
			return d.kind
		}
	}
	return Boost
}
