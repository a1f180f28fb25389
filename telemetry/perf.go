package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for a season.
const (
	PhaseHeats     = "heats"
	PhaseResults   = "results"
	PhaseBreeding  = "breeding"
	PhaseTelemetry = "telemetry"
)

var phases = []string{PhaseHeats, PhaseResults, PhaseBreeding, PhaseTelemetry}

// PerfSample holds timing data for a single season.
type PerfSample struct {
	SeasonDuration time.Duration
	RaceTicks      int
	Phases         map[string]time.Duration
}

// PerfCollector tracks performance metrics over a rolling window of seasons.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	currentTicks  int
	seasonStart   time.Time
	phaseStart    time.Time
	lastPhase     string
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of seasons to average over.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 10
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartSeason begins timing a new season.
func (p *PerfCollector) StartSeason() {
	p.seasonStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.currentTicks = 0
	p.lastPhase = ""
}

// StartPhase begins timing a specific phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	// End previous phase if any
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// AddTicks counts simulated race ticks toward the current season.
func (p *PerfCollector) AddTicks(n int) {
	p.currentTicks += n
}

// EndSeason finishes timing the current season and records the sample.
func (p *PerfCollector) EndSeason() {
	now := time.Now()
	// End final phase
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		SeasonDuration: now.Sub(p.seasonStart),
		RaceTicks:      p.currentTicks,
		Phases:         p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgSeasonDuration time.Duration
	MinSeasonDuration time.Duration
	MaxSeasonDuration time.Duration

	// Phase breakdown (average durations)
	PhaseAvg map[string]time.Duration

	// Phase percentages of total season time
	PhasePct map[string]float64

	// Throughput
	TicksPerSecond float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	if p.sampleCount == 0 {
		return PerfStats{
			PhaseAvg: make(map[string]time.Duration),
			PhasePct: make(map[string]float64),
		}
	}

	var total time.Duration
	var minDur, maxDur time.Duration
	var ticks int
	phaseSum := make(map[string]time.Duration)

	// Iterate over valid samples
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.SeasonDuration
		ticks += s.RaceTicks

		if i == 0 || s.SeasonDuration < minDur {
			minDur = s.SeasonDuration
		}
		if s.SeasonDuration > maxDur {
			maxDur = s.SeasonDuration
		}

		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	avg := total / time.Duration(p.sampleCount)

	phaseAvg := make(map[string]time.Duration)
	phasePct := make(map[string]float64)
	for phase, sum := range phaseSum {
		phaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if avg > 0 {
			phasePct[phase] = float64(phaseAvg[phase]) / float64(avg) * 100
		}
	}

	var ticksPerSec float64
	if total > 0 {
		ticksPerSec = float64(ticks) / total.Seconds()
	}

	return PerfStats{
		AvgSeasonDuration: avg,
		MinSeasonDuration: minDur,
		MaxSeasonDuration: maxDur,
		PhaseAvg:          phaseAvg,
		PhasePct:          phasePct,
		TicksPerSecond:    ticksPerSec,
	}
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_season_us", s.AvgSeasonDuration.Microseconds(),
		"min_season_us", s.MinSeasonDuration.Microseconds(),
		"max_season_us", s.MaxSeasonDuration.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	}

	for _, phase := range phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", int(pct*10)/10.0)
		}
	}

	slog.Info("perf", attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	Season       int     `csv:"season"`
	AvgSeasonUS  int64   `csv:"avg_season_us"`
	MinSeasonUS  int64   `csv:"min_season_us"`
	MaxSeasonUS  int64   `csv:"max_season_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	HeatsPct     float64 `csv:"heats_pct"`
	ResultsPct   float64 `csv:"results_pct"`
	BreedingPct  float64 `csv:"breeding_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(season int) PerfStatsCSV {
	return PerfStatsCSV{
		Season:       season,
		AvgSeasonUS:  s.AvgSeasonDuration.Microseconds(),
		MinSeasonUS:  s.MinSeasonDuration.Microseconds(),
		MaxSeasonUS:  s.MaxSeasonDuration.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		HeatsPct:     s.PhasePct[PhaseHeats],
		ResultsPct:   s.PhasePct[PhaseResults],
		BreedingPct:  s.PhasePct[PhaseBreeding],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
