package telemetry

import (
	"encoding/json"
	"sort"

	"github.com/pthm-cable/shells/stats"
)

// Fitness weights
const (
	winWeight          = 3.0
	podiumWeight       = 1.0
	championshipWeight = 5.0
	childWeight        = 2.0
)

// minRaces is the career length required before a turtle is considered.
const minRaces = 3

// HallEntry is one turtle's career.
type HallEntry struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Generation    int            `json:"generation"`
	Fitness       float64        `json:"fitness"`
	Races         int            `json:"races"`
	Wins          int            `json:"wins"`
	Podiums       int            `json:"podiums"`
	Championships int            `json:"championships"`
	Children      int            `json:"children"`
	BestTick      int            `json:"best_tick"`
	Stats         stats.Stats    `json:"stats"`
	Genetics      map[string]any `json:"genetics"`
}

// HallOfFame keeps the best careers seen, sorted by fitness.
type HallOfFame struct {
	entries []HallEntry
	maxSize int
}

// NewHallOfFame creates a new hall of fame with the given capacity.
func NewHallOfFame(maxSize int) *HallOfFame {
	if maxSize < 1 {
		maxSize = 1
	}
	return &HallOfFame{
		entries: make([]HallEntry, 0, maxSize),
		maxSize: maxSize,
	}
}

// Fitness scores a career.
func Fitness(e HallEntry) float64 {
	return float64(e.Wins)*winWeight +
		float64(e.Podiums)*podiumWeight +
		float64(e.Championships)*championshipWeight +
		float64(e.Children)*childWeight
}

// Consider evaluates a turtle for the hall. A turtle already in the hall is
// replaced by its newer career. Returns true if the turtle is in the hall
// afterwards.
func (hof *HallOfFame) Consider(entry HallEntry) bool {
	if entry.Races < minRaces {
		return false
	}
	entry.Fitness = Fitness(entry)

	for i := range hof.entries {
		if hof.entries[i].ID == entry.ID {
			hof.entries = append(hof.entries[:i], hof.entries[i+1:]...)
			break
		}
	}

	var added bool
	hof.entries, added = hof.insertEntry(hof.entries, entry)
	return added
}

// insertEntry adds an entry to the hall, maintaining sorted order by fitness.
// If the hall is full, the lowest-fitness entry is removed.
func (hof *HallOfFame) insertEntry(hall []HallEntry, entry HallEntry) ([]HallEntry, bool) {
	// Find insertion point (sorted descending by fitness, ties keep arrival order)
	idx := sort.Search(len(hall), func(i int) bool {
		return hall[i].Fitness < entry.Fitness
	})

	// If hall is full and entry would be last (lowest), skip it
	if len(hall) >= hof.maxSize && idx >= hof.maxSize {
		return hall, false
	}

	hall = append(hall, HallEntry{})
	copy(hall[idx+1:], hall[idx:])
	hall[idx] = entry

	// Trim if over capacity
	if len(hall) > hof.maxSize {
		hall = hall[:hof.maxSize]
	}

	return hall, true
}

// Entries returns the hall, best first.
func (hof *HallOfFame) Entries() []HallEntry {
	return append([]HallEntry(nil), hof.entries...)
}

// Size returns the number of entries.
func (hof *HallOfFame) Size() int {
	return len(hof.entries)
}

// TopFitness returns the highest fitness in the hall, or 0 if empty.
func (hof *HallOfFame) TopFitness() float64 {
	if len(hof.entries) == 0 {
		return 0
	}
	return hof.entries[0].Fitness
}

// MarshalJSON serializes the hall of fame to JSON.
func (hof *HallOfFame) MarshalJSON() ([]byte, error) {
	export := struct {
		Entries []HallEntry `json:"entries"`
	}{Entries: hof.entries}
	if export.Entries == nil {
		export.Entries = []HallEntry{}
	}
	return json.MarshalIndent(export, "", "  ")
}
