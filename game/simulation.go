package game

import (
	"github.com/pthm-cable/shells/stats"
	"github.com/pthm-cable/shells/telemetry"
)

// RunSeason races one season: heats run concurrently, results are applied
// to the stable, a champion is crowned, the best turtles breed, and season
// telemetry is emitted.
func (g *Game) RunSeason() telemetry.SeasonStats {
	g.perfCollector.StartSeason()
	g.season++
	g.beginSeason()

	g.perfCollector.StartPhase(telemetry.PhaseHeats)
	jobs := g.scheduleHeats()
	results := g.pool.run(jobs)

	g.perfCollector.StartPhase(telemetry.PhaseResults)
	races := g.applyHeats(jobs, results)
	champion := g.crownChampion()

	g.perfCollector.StartPhase(telemetry.PhaseBreeding)
	lineage := g.breedSeason()

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	season := g.flushTelemetry(champion, races, lineage)

	g.perfCollector.EndSeason()
	g.flushPerf()

	return season
}

// scheduleHeats draws each heat's field from a shuffled roster and fills
// any remaining places with walk-ons. All randomness is drawn here, on the
// calling goroutine, so a season depends only on the seed.
func (g *Game) scheduleHeats() []heatJob {
	cfg := g.config()
	n := min(cfg.Derived.HeatSize, len(g.active))

	jobs := make([]heatJob, cfg.League.Heats)
	for h := range jobs {
		entrants := make([]entrant, 0, n+cfg.Derived.WalkOns)
		points := 0
		for _, idx := range g.rng.Perm(len(g.active))[:n] {
			id, attrs, _, _ := g.turtleMapper.Get(g.active[idx])
			entrants = append(entrants, entrant{
				ID:    id.ID,
				Name:  id.Name,
				Stats: attrs.Stats,
			})
			points += attrs.Stats.Points()
		}
		if n > 0 {
			points /= n
		}

		for i := 0; i < cfg.Derived.WalkOns; i++ {
			entrants = append(entrants, entrant{
				ID:    g.newID(),
				Name:  g.randomName() + " (walk-on)",
				Stats: stats.Opponent(points, g.rng),
			})
		}

		jobs[h] = heatJob{
			Heat:        h + 1,
			Seed:        g.rng.Int63(),
			TrackLength: cfg.Race.TrackLength,
			Entrants:    entrants,
		}
	}
	return jobs
}

// applyHeats records every stable member's result and builds race records.
// Walk-ons take places but are not tracked.
func (g *Game) applyHeats(jobs []heatJob, results []heatResult) []telemetry.RaceRecord {
	records := make([]telemetry.RaceRecord, 0, len(results))

	for i, res := range results {
		rec := telemetry.RaceRecord{
			Season:   g.season,
			Heat:     jobs[i].Heat,
			Field:    len(jobs[i].Entrants),
			Segments: res.Segments,
			Winner:   res.Winner,
			Ticks:    res.Ticks,
		}

		distances := make([]float64, len(res.Standings))
		for j, s := range res.Standings {
			distances[j] = s.Distance
			if s.Finished {
				rec.Finished = true
			}

			e, ok := g.byID[s.ID]
			if !ok {
				continue
			}
			finishTick := 0
			if s.Finished {
				finishTick = s.FinishTick
			}
			g.recordMap.Get(e).AddResult(s.Place, s.Distance, finishTick)
		}

		if len(res.Standings) > 0 {
			rec.WinnerID = res.Standings[0].ID
			rec.WinnerDistance = res.Standings[0].Distance
		}
		if len(res.Standings) > 1 {
			rec.Margin = res.Standings[0].Distance - res.Standings[1].Distance
		}

		g.collector.RecordHeat(rec, distances)
		g.perfCollector.AddTicks(res.Ticks)
		if g.logHeats {
			rec.LogRace()
		}
		records = append(records, rec)
	}

	return records
}

// crownChampion awards the season to the best active turtle.
func (g *Game) crownChampion() telemetry.Standing {
	ranked := g.rankSeason()
	if len(ranked) == 0 {
		return telemetry.Standing{}
	}

	id, _, _, rec := g.turtleMapper.Get(ranked[0])
	rec.Championships++
	return telemetry.Standing{
		Name: id.Name,
		ID:   id.ID,
		Wins: rec.SeasonWins,
	}
}

// rosterSimilarity is the mean pairwise genetic similarity of the active
// roster, 0 with fewer than two turtles.
func (g *Game) rosterSimilarity() float64 {
	if len(g.active) < 2 {
		return 0
	}

	var sum float64
	var pairs int
	for i := 0; i < len(g.active); i++ {
		_, _, gi, _ := g.turtleMapper.Get(g.active[i])
		for j := i + 1; j < len(g.active); j++ {
			_, _, gj, _ := g.turtleMapper.Get(g.active[j])
			sum += g.registry.Similarity(gi.Traits, gj.Traits)
			pairs++
		}
	}
	return sum / float64(pairs)
}
