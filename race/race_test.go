package race

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/shells/stats"
)

const tolerance = 1e-9

func normalTrack(n int) []Segment {
	track := make([]Segment, n)
	for i := range track {
		track[i] = SegmentOf(Normal)
	}
	return track
}

func TestGenerateTrackLength(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	tests := []struct {
		length float64
		want   int
	}{
		{500, 10},
		{520, 11},
		{50, 1},
		{1, 1},
		{0, 0},
	}
	for _, tt := range tests {
		if got := len(GenerateTrack(tt.length, SegmentSize, rng)); got != tt.want {
			t.Errorf("GenerateTrack(%v) = %d segments, want %d", tt.length, got, tt.want)
		}
	}
}

func TestGenerateTrackDistribution(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	track := GenerateTrack(50*20000, SegmentSize, rng)

	counts := map[Kind]int{}
	for _, seg := range track {
		if seg != SegmentOf(seg.Kind) {
			t.Fatalf("segment %+v does not match its kind", seg)
		}
		counts[seg.Kind]++
	}

	want := map[Kind]float64{
		Normal: 0.60,
		Water:  0.15,
		Rocks:  0.10,
		Sand:   0.08,
		Mud:    0.04,
		Boost:  0.03,
	}
	for k, p := range want {
		got := float64(counts[k]) / float64(len(track))
		if math.Abs(got-p) > 0.015 {
			t.Errorf("%s frequency = %.3f, want ~%.2f", k, got, p)
		}
	}
}

func TestParseKind(t *testing.T) {
	tests := map[string]Kind{
		"normal": Normal,
		"WATER":  Water,
		"Rocks":  Rocks,
		" sand ": Sand,
		"mud":    Mud,
		"boost":  Boost,
		"lava":   Normal,
		"":       Normal,
	}
	for in, want := range tests {
		if got := ParseKind(in); got != want {
			t.Errorf("ParseKind(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestUpdateNormal(t *testing.T) {
	turtle := NewTurtle("Speedy", stats.Default())

	move := turtle.Update(SegmentOf(Normal))
	if math.Abs(move-5.0) > tolerance {
		t.Errorf("movement = %v, want 5.0", move)
	}
	if math.Abs(turtle.Energy-99.6) > tolerance {
		t.Errorf("energy = %v, want 99.6", turtle.Energy)
	}
	if turtle.State() != Moving {
		t.Errorf("state = %s, want moving", turtle.State())
	}
}

func TestUpdateTerrainMultipliers(t *testing.T) {
	tests := []struct {
		kind Kind
		want float64
	}{
		{Normal, 5.0},
		{Water, 5 * 0.5 * 0.7},
		{Rocks, 5 * 0.5 * 0.6},
		{Sand, 5 * (1 + 5.0/15) * 0.8},
		{Mud, 5 * 1.0 * 0.5},
		{Boost, 5 * 1.5 * 1.2},
	}
	for _, tt := range tests {
		turtle := NewTurtle("T", stats.Default())
		if got := turtle.Update(SegmentOf(tt.kind)); math.Abs(got-tt.want) > tolerance {
			t.Errorf("%s: movement = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestRestingCycle(t *testing.T) {
	turtle := NewTurtle("Sleepy", stats.Default())
	turtle.Energy = 0.3

	if move := turtle.Update(SegmentOf(Normal)); move <= 0 {
		t.Fatalf("last moving tick should still move, got %v", move)
	}
	if turtle.Energy != 0 || turtle.State() != Resting {
		t.Fatalf("energy = %v state = %s, want 0 resting", turtle.Energy, turtle.State())
	}

	// 5 * 0.1 * (1 + 3/20) = 0.575 per tick; 50 energy needs 87 ticks.
	ticks := 0
	for turtle.State() == Resting {
		if move := turtle.Update(SegmentOf(Normal)); move != 0 {
			t.Fatalf("resting turtle moved %v", move)
		}
		ticks++
		if ticks > 1000 {
			t.Fatal("turtle never recovered")
		}
	}
	if ticks != 87 {
		t.Errorf("recovered after %d ticks, want 87", ticks)
	}
	if turtle.Energy < 50 {
		t.Errorf("energy after recovery = %v, want >= 50", turtle.Energy)
	}
}

func TestFinishedTurtleIsInert(t *testing.T) {
	turtle := NewTurtle("Done", stats.Default())
	turtle.Finished = true
	energy := turtle.Energy

	if move := turtle.Update(SegmentOf(Boost)); move != 0 {
		t.Errorf("finished turtle moved %v", move)
	}
	if turtle.Energy != energy {
		t.Errorf("finished turtle energy changed to %v", turtle.Energy)
	}
}

func TestNewTurtleID(t *testing.T) {
	a := NewTurtle("A", stats.Default())
	b := NewTurtle("B", stats.Default())
	if len(a.ID) != 8 {
		t.Errorf("ID %q should be 8 characters", a.ID)
	}
	if a.ID == b.ID {
		t.Errorf("IDs should differ, both %q", a.ID)
	}
}

func TestRaceFinishes(t *testing.T) {
	r := NewWithTrack(100, normalTrack(2))
	turtle := NewTurtleWithID("t1", "Speedy", stats.Default())
	r.AddTurtle(turtle)

	if got := r.Run(); got != "Speedy" {
		t.Errorf("winner = %q, want Speedy", got)
	}
	if !turtle.Finished || turtle.FinishTick != 20 {
		t.Errorf("finished = %v at tick %d, want true at 20", turtle.Finished, turtle.FinishTick)
	}
	if r.Ticks() != 20 {
		t.Errorf("ticks = %d, want 20", r.Ticks())
	}
	// Finished stays set and the race stays over.
	if !r.Tick() || !turtle.Finished {
		t.Error("finish should be sticky")
	}
}

func TestRunHitsTickCap(t *testing.T) {
	r := New(1e6, rand.New(rand.NewSource(42)))
	// Drains in three ticks and never recovers within the cap.
	s := stats.New(1, 1, 1e-9, 1, 1)
	r.AddTurtle(NewTurtle("Tired", s))
	r.AddTurtle(NewTurtle("Also Tired", s))

	r.Run()
	if r.Ticks() != MaxTicks {
		t.Errorf("ticks = %d, want %d", r.Ticks(), MaxTicks)
	}
	for _, turtle := range r.Turtles() {
		if turtle.Finished {
			t.Errorf("%s should not finish", turtle.Name)
		}
		if turtle.State() != Resting {
			t.Errorf("%s state = %s, want resting", turtle.Name, turtle.State())
		}
	}
}

func TestRunEmptyRoster(t *testing.T) {
	r := New(500, rand.New(rand.NewSource(42)))
	if got := r.Run(); got != NoWinner {
		t.Errorf("Run() = %q, want %q", got, NoWinner)
	}
}

func TestRunTieGoesToFirstInRoster(t *testing.T) {
	r := NewWithTrack(100, normalTrack(2))
	r.AddTurtle(NewTurtleWithID("a", "Alpha", stats.Default()))
	r.AddTurtle(NewTurtleWithID("b", "Beta", stats.Default()))

	if got := r.Run(); got != "Alpha" {
		t.Errorf("winner = %q, want Alpha", got)
	}

	pos := r.Positions()
	if pos[0].Name != "Alpha" || pos[1].Name != "Beta" {
		t.Errorf("positions = %s, %s; want Alpha, Beta", pos[0].Name, pos[1].Name)
	}
}

func TestRunResetsBetweenRuns(t *testing.T) {
	r := NewWithTrack(100, normalTrack(2))
	turtle := NewTurtle("Again", stats.Default())
	r.AddTurtle(turtle)

	r.Run()
	first := r.Ticks()
	r.Run()
	if r.Ticks() != first {
		t.Errorf("second run took %d ticks, first %d", r.Ticks(), first)
	}
	if turtle.Distance < 100 {
		t.Errorf("distance = %v after rerun", turtle.Distance)
	}
}

func TestResults(t *testing.T) {
	r := NewWithTrack(100, normalTrack(2))
	r.AddTurtle(NewTurtleWithID("s", "Slow", stats.New(2, 100, 5, 5, 5)))
	r.AddTurtle(NewTurtleWithID("f", "Fast", stats.New(10, 100, 5, 5, 5)))

	if got := r.Run(); got != "Fast" {
		t.Fatalf("winner = %q, want Fast", got)
	}

	res := r.Results()
	if len(res) != 2 {
		t.Fatalf("len(results) = %d", len(res))
	}
	if res[0].Name != "Fast" || res[0].Place != 1 || !res[0].Finished || res[0].FinishTick != 10 {
		t.Errorf("first = %+v", res[0])
	}
	if res[1].Name != "Slow" || res[1].Place != 2 || res[1].Finished {
		t.Errorf("second = %+v", res[1])
	}
	if math.Abs(res[1].Distance-20) > tolerance {
		t.Errorf("slow distance = %v, want 20", res[1].Distance)
	}
}

func TestEmptyTrackIsNormal(t *testing.T) {
	r := NewWithTrack(10, nil)
	turtle := NewTurtle("Solo", stats.Default())
	r.AddTurtle(turtle)

	r.Run()
	if r.Ticks() != 2 || !turtle.Finished {
		t.Errorf("ticks = %d finished = %v, want 2 true", r.Ticks(), turtle.Finished)
	}
}

func TestDistanceMonotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	r := New(2000, rng)
	for i := 0; i < 6; i++ {
		r.AddTurtle(NewTurtle("T", stats.Random(i, rng)))
	}

	prev := make([]float64, len(r.Turtles()))
	for !r.Tick() {
		for i, turtle := range r.Turtles() {
			if turtle.Distance < prev[i] {
				t.Fatalf("distance decreased for turtle %d", i)
			}
			if turtle.Energy < 0 || turtle.Energy > turtle.Stats.MaxEnergy {
				t.Fatalf("energy %v out of range", turtle.Energy)
			}
			prev[i] = turtle.Distance
		}
	}
}
