package game

import "log/slog"

// logStandings logs the active roster in season order.
func (g *Game) logStandings() {
	for place, e := range g.rankSeason() {
		id, attrs, _, rec := g.turtleMapper.Get(e)
		slog.Info("standing",
			"season", g.season,
			"place", place+1,
			"name", id.Name,
			"generation", id.Generation,
			"wins", rec.SeasonWins,
			"podiums", rec.SeasonPodiums,
			"distance", rec.SeasonDistance,
			"points", attrs.Stats.Points(),
		)
	}
}
