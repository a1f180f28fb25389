package telemetry

// Collector accumulates heat results and stable events within a season and
// produces SeasonStats.
type Collector struct {
	season int

	// Event counters for the current season
	heats       int
	draws       int
	births      int
	retirements int
	bestTick    int

	distances []float64
	ticks     []float64
}

// NewCollector creates a new season collector starting at season 1.
func NewCollector() *Collector {
	return &Collector{season: 1}
}

// Season returns the season currently being collected.
func (c *Collector) Season() int {
	return c.season
}

// RecordHeat records a heat and the final distance of every entrant.
func (c *Collector) RecordHeat(r RaceRecord, distances []float64) {
	c.heats++
	if !r.Finished {
		c.draws++
	} else if c.bestTick == 0 || r.Ticks < c.bestTick {
		c.bestTick = r.Ticks
	}
	c.ticks = append(c.ticks, float64(r.Ticks))
	c.distances = append(c.distances, distances...)
}

// RecordBirth records a birth event.
func (c *Collector) RecordBirth() {
	c.births++
}

// RecordRetirement records a retirement event.
func (c *Collector) RecordRetirement() {
	c.retirements++
}

// Standing identifies the season champion.
type Standing struct {
	Name string
	ID   string
	Wins int
}

// Roster describes the stable at season end.
type Roster struct {
	Active     int
	Retired    int
	Similarity float64
}

// Flush produces the SeasonStats for the current season and resets counters
// for the next one.
func (c *Collector) Flush(champion Standing, roster Roster) SeasonStats {
	dist := Summarize(c.distances)
	ticks := Summarize(c.ticks)

	stats := SeasonStats{
		Season: c.season,
		Heats:  c.heats,
		Draws:  c.draws,

		Champion:     champion.Name,
		ChampionID:   champion.ID,
		ChampionWins: champion.Wins,

		DistanceMean: dist.Mean,
		DistanceStd:  dist.Std,
		DistanceP10:  dist.P10,
		DistanceP50:  dist.P50,
		DistanceP90:  dist.P90,

		TicksMean: ticks.Mean,
		TicksP50:  ticks.P50,
		BestTick:  c.bestTick,

		Births:      c.births,
		Retirements: c.retirements,
		Active:      roster.Active,
		Retired:     roster.Retired,
		Similarity:  roster.Similarity,
	}

	// Reset for next season
	c.season++
	c.heats = 0
	c.draws = 0
	c.births = 0
	c.retirements = 0
	c.bestTick = 0
	c.distances = c.distances[:0]
	c.ticks = c.ticks[:0]

	return stats
}
