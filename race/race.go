// Package race simulates a tick-based race over generated terrain. A race is
// synchronous and exclusively owns its turtles and its random source.
package race

import (
	"math"
	"math/rand"
	"sort"
)

const (
	// SegmentSize is the length of one terrain segment.
	SegmentSize = 50.0
	// MaxTicks bounds every race.
	MaxTicks = 5000
	// NoWinner is returned by Run when there is nobody to race.
	NoWinner = "DRAW"
)

// Race is one track, a roster, and a tick counter.
type Race struct {
	length  float64
	track   []Segment
	turtles []*Turtle
	tick    int
}

// Standing is a turtle's final placement.
type Standing struct {
	Place      int
	ID         string
	Name       string
	Distance   float64
	Finished   bool
	FinishTick int
}

// New creates a race over a freshly generated track.
func New(length float64, rng *rand.Rand) *Race {
	return NewWithTrack(length, GenerateTrack(length, SegmentSize, rng))
}

// NewWithTrack creates a race over a caller-supplied track. An empty track
// behaves as all Normal terrain.
func NewWithTrack(length float64, track []Segment) *Race {
	return &Race{
		length: length,
		track:  track,
	}
}

// AddTurtle appends t to the roster. Duplicates are not detected.
func (r *Race) AddTurtle(t *Turtle) {
	r.turtles = append(r.turtles, t)
}

// Length returns the track length.
func (r *Race) Length() float64 { return r.length }

// Ticks returns the number of ticks run so far.
func (r *Race) Ticks() int { return r.tick }

// Track returns the segments of the track.
func (r *Race) Track() []Segment { return r.track }

// Turtles returns the roster in insertion order.
func (r *Race) Turtles() []*Turtle { return r.turtles }

// segmentAt returns the segment under distance d.
func (r *Race) segmentAt(d float64) Segment {
	if len(r.track) == 0 {
		return SegmentOf(Normal)
	}
	i := int(math.Floor(d / SegmentSize))
	if i >= len(r.track) {
		i = len(r.track) - 1
	}
	if i < 0 {
		i = 0
	}
	return r.track[i]
}

// Tick advances every unfinished turtle by one step. It reports whether the
// race is over: any turtle has finished or the tick cap was reached.
func (r *Race) Tick() bool {
	r.tick++

	done := false
	for _, t := range r.turtles {
		if t.Finished {
			done = true
			continue
		}
		t.Distance += t.Update(r.segmentAt(t.Distance))
		if t.Distance >= r.length {
			t.Finished = true
			t.FinishTick = r.tick
			done = true
		}
	}
	return done || r.tick >= MaxTicks
}

// Run resets the roster and ticks until the race is over. It returns the name
// of the furthest turtle, the earliest in the roster on ties.
func (r *Race) Run() string {
	if len(r.turtles) == 0 {
		return NoWinner
	}

	r.tick = 0
	for _, t := range r.turtles {
		t.Reset()
	}
	for !r.Tick() {
	}

	winner := r.turtles[0]
	for _, t := range r.turtles[1:] {
		if t.Distance > winner.Distance {
			winner = t
		}
	}
	return winner.Name
}

// Positions returns the roster sorted by distance, furthest first. Ties keep
// roster order.
func (r *Race) Positions() []*Turtle {
	out := make([]*Turtle, len(r.turtles))
	copy(out, r.turtles)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Distance > out[j].Distance
	})
	return out
}

// Results returns the current standings.
func (r *Race) Results() []Standing {
	pos := r.Positions()
	out := make([]Standing, len(pos))
	for i, t := range pos {
		out[i] = Standing{
			Place:      i + 1,
			ID:         t.ID,
			Name:       t.Name,
			Distance:   t.Distance,
			Finished:   t.Finished,
			FinishTick: t.FinishTick,
		}
	}
	return out
}
