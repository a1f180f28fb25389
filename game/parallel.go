package game

import (
	"math/rand"
	"runtime"
	"sync"

	"github.com/pthm-cable/shells/race"
	"github.com/pthm-cable/shells/stats"
)

// parallelThreshold is the minimum heat count to use the worker pool.
// Below this, running inline is faster than starting goroutines.
const parallelThreshold = 2

// entrant captures the read-only state a heat needs from one turtle.
type entrant struct {
	ID    string
	Name  string
	Stats stats.Stats
}

// heatJob is one scheduled heat.
type heatJob struct {
	Heat        int
	Seed        int64
	TrackLength float64
	Entrants    []entrant
}

// heatResult is a finished heat.
type heatResult struct {
	Winner    string
	Standings []race.Standing
	Ticks     int
	Segments  int
}

// heatPool runs heats on a bounded set of workers.
type heatPool struct {
	numWorkers int
}

func newHeatPool() *heatPool {
	return &heatPool{numWorkers: runtime.GOMAXPROCS(0)}
}

// run executes every job and returns results in job order. Each heat owns
// its rng and its turtles, so workers share nothing.
func (p *heatPool) run(jobs []heatJob) []heatResult {
	results := make([]heatResult, len(jobs))

	if len(jobs) < parallelThreshold || p.numWorkers < 2 {
		for i := range jobs {
			results[i] = runHeat(&jobs[i])
		}
		return results
	}

	work := make(chan int, len(jobs))
	for i := range jobs {
		work <- i
	}
	close(work)

	var wg sync.WaitGroup
	for w := 0; w < min(p.numWorkers, len(jobs)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range work {
				results[i] = runHeat(&jobs[i])
			}
		}()
	}
	wg.Wait()

	return results
}

// runHeat builds a race for the job and runs it to completion.
func runHeat(job *heatJob) heatResult {
	rng := rand.New(rand.NewSource(job.Seed))
	r := race.New(job.TrackLength, rng)
	for _, e := range job.Entrants {
		r.AddTurtle(race.NewTurtleWithID(e.ID, e.Name, e.Stats))
	}

	winner := r.Run()
	return heatResult{
		Winner:    winner,
		Standings: r.Results(),
		Ticks:     r.Ticks(),
		Segments:  len(r.Track()),
	}
}
