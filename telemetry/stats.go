package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// SeasonStats holds aggregated statistics for one season.
type SeasonStats struct {
	Season int `csv:"season"`
	Heats  int `csv:"heats"`
	Draws  int `csv:"draws"` // Heats ended by the tick cap

	Champion     string `csv:"champion"`
	ChampionID   string `csv:"champion_id"`
	ChampionWins int    `csv:"champion_wins"`

	// Final distance of every entrant in every heat
	DistanceMean float64 `csv:"distance_mean"`
	DistanceStd  float64 `csv:"distance_std"`
	DistanceP10  float64 `csv:"distance_p10"`
	DistanceP50  float64 `csv:"distance_p50"`
	DistanceP90  float64 `csv:"distance_p90"`

	// Heat lengths
	TicksMean float64 `csv:"ticks_mean"`
	TicksP50  float64 `csv:"ticks_p50"`
	BestTick  int     `csv:"best_tick"` // Fastest winning finish, 0 if none

	// Stable
	Births      int     `csv:"births"`
	Retirements int     `csv:"retirements"`
	Active      int     `csv:"active"`
	Retired     int     `csv:"retired"`
	Similarity  float64 `csv:"similarity"` // Mean pairwise genetic similarity of the active roster
}

// Summary holds the distribution summary of a sample.
type Summary struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// Summarize computes mean, sample standard deviation, and empirical
// percentiles. An empty sample summarizes to zeros.
func Summarize(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	s := Summary{
		Mean: stat.Mean(sorted, nil),
		P10:  stat.Quantile(0.10, stat.Empirical, sorted, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.90, stat.Empirical, sorted, nil),
	}
	if n > 1 {
		s.Std = stat.StdDev(sorted, nil)
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s SeasonStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("season", s.Season),
		slog.Int("heats", s.Heats),
		slog.Int("draws", s.Draws),
		slog.String("champion", s.Champion),
		slog.Int("champion_wins", s.ChampionWins),
		slog.Float64("distance_mean", s.DistanceMean),
		slog.Float64("distance_std", s.DistanceStd),
		slog.Float64("distance_p50", s.DistanceP50),
		slog.Float64("ticks_mean", s.TicksMean),
		slog.Int("best_tick", s.BestTick),
		slog.Int("births", s.Births),
		slog.Int("retirements", s.Retirements),
		slog.Int("active", s.Active),
		slog.Int("retired", s.Retired),
		slog.Float64("similarity", s.Similarity),
	)
}

// LogStats logs the season stats using slog.
func (s SeasonStats) LogStats() {
	slog.Info("season",
		"season", s.Season,
		"heats", s.Heats,
		"draws", s.Draws,
		"champion", s.Champion,
		"champion_wins", s.ChampionWins,
		"distance_mean", s.DistanceMean,
		"distance_std", s.DistanceStd,
		"distance_p10", s.DistanceP10,
		"distance_p50", s.DistanceP50,
		"distance_p90", s.DistanceP90,
		"ticks_mean", s.TicksMean,
		"ticks_p50", s.TicksP50,
		"best_tick", s.BestTick,
		"births", s.Births,
		"retirements", s.Retirements,
		"active", s.Active,
		"retired", s.Retired,
		"similarity", s.Similarity,
	)
}
