// Package telemetry provides season statistics, milestones, lineage and
// race records, and the files they are written to.
package telemetry

import "log/slog"

// RaceRecord is one heat's outcome.
type RaceRecord struct {
	Season         int     `csv:"season"`
	Heat           int     `csv:"heat"`
	Field          int     `csv:"field"`
	Segments       int     `csv:"segments"`
	Winner         string  `csv:"winner"`
	WinnerID       string  `csv:"winner_id"`
	WinnerDistance float64 `csv:"winner_distance"`
	Ticks          int     `csv:"ticks"`
	Finished       bool    `csv:"finished"` // False when the tick cap ended the heat
	Margin         float64 `csv:"margin"`   // Distance between first and second
}

// LogRace logs the heat using slog.
func (r RaceRecord) LogRace() {
	slog.Info("heat",
		"season", r.Season,
		"heat", r.Heat,
		"field", r.Field,
		"winner", r.Winner,
		"ticks", r.Ticks,
		"finished", r.Finished,
		"margin", r.Margin,
	)
}

// LineageRecord describes one birth.
type LineageRecord struct {
	Season       int     `csv:"season"`
	ChildID      string  `csv:"child_id"`
	Child        string  `csv:"child"`
	ParentAID    string  `csv:"parent_a_id"`
	ParentA      string  `csv:"parent_a"`
	ParentBID    string  `csv:"parent_b_id"`
	ParentB      string  `csv:"parent_b"`
	Generation   int     `csv:"generation"`
	Policy       string  `csv:"policy"`
	Similarity   float64 `csv:"similarity"`    // Parent genetic similarity
	MutationRate float64 `csv:"mutation_rate"` // Rate actually applied
	Points       int     `csv:"points"`
	ShellColor   string  `csv:"shell_color"`
}

// LogBirth logs the birth using slog.
func (l LineageRecord) LogBirth() {
	slog.Info("birth",
		"season", l.Season,
		"child", l.Child,
		"parent_a", l.ParentA,
		"parent_b", l.ParentB,
		"generation", l.Generation,
		"similarity", l.Similarity,
		"mutation_rate", l.MutationRate,
		"points", l.Points,
	)
}
