package main

import (
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/pthm-cable/shells/race"
	"github.com/pthm-cable/shells/stats"
)

// Fitness weights: a win is worth 1, and the distance fraction of a lost
// heat breaks ties between builds that win equally often.
const distanceWeight = 0.1

// FitnessEvaluator races candidate builds against opponent fields.
type FitnessEvaluator struct {
	params      *ParamVector
	budget      int
	seeds       []int64
	heats       int
	fieldSize   int
	trackLength float64

	// Most recent evaluation
	mu          sync.Mutex
	lastWinRate float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, budget int, seeds []int64, heats, fieldSize int, trackLength float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		budget:      budget,
		seeds:       seeds,
		heats:       heats,
		fieldSize:   fieldSize,
		trackLength: trackLength,
	}
}

// LastWinRate returns the win rate from the most recent evaluation.
func (fe *FitnessEvaluator) LastWinRate() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastWinRate
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	wins     int
	distance float64 // Summed distance fraction of lost heats
}

// Evaluate computes fitness for a weight vector (lower = better).
// Fitness is the negated win rate plus a small distance term.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	build := stats.Allocate(fe.params.Allocation(x, fe.budget))

	// Run all seeds in parallel
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSeed(build, s)
		}(i, seed)
	}
	wg.Wait()

	// Aggregate results
	var wins int
	var distance float64
	for _, r := range results {
		wins += r.wins
		distance += r.distance
	}

	n := float64(len(fe.seeds) * fe.heats)
	if n == 0 {
		return 0
	}
	winRate := float64(wins) / n

	fe.mu.Lock()
	fe.lastWinRate = winRate
	fe.mu.Unlock()

	return -(winRate + distanceWeight*distance/n)
}

// runSeed races the build in fe.heats heats. Every build sees the same
// tracks and opponents for a given seed.
func (fe *FitnessEvaluator) runSeed(build stats.Stats, seed int64) seedResult {
	rng := rand.New(rand.NewSource(seed))
	points := build.Points()

	var result seedResult
	for h := 0; h < fe.heats; h++ {
		r := race.New(fe.trackLength, rng)
		challenger := race.NewTurtleWithID("build", "Build", build)
		r.AddTurtle(challenger)
		for i := 1; i < fe.fieldSize; i++ {
			r.AddTurtle(race.NewTurtleWithID(fmt.Sprintf("opp%d", i), "Opponent", stats.Opponent(points, rng)))
		}

		r.Run()
		if r.Results()[0].ID == challenger.ID {
			result.wins++
			continue
		}
		result.distance += math.Min(challenger.Distance/fe.trackLength, 1)
	}
	return result
}
