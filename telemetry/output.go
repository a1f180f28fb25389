package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/shells/config"
)

// csvFile is one CSV output that writes its header with the first record.
type csvFile struct {
	name          string
	file          *os.File
	headerWritten bool
}

func createCSV(dir, name string) (*csvFile, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvFile{name: name, file: f}, nil
}

// write appends records, a slice of csv-tagged structs.
func (c *csvFile) write(records any) error {
	if !c.headerWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, c.file); err != nil {
			return fmt.Errorf("writing %s: %w", c.name, err)
		}
		c.headerWritten = true
		return nil
	}
	// Subsequent writes skip headers
	if err := gocsv.MarshalWithoutHeaders(records, c.file); err != nil {
		return fmt.Errorf("writing %s: %w", c.name, err)
	}
	return nil
}

// OutputManager handles structured league output with CSV logging.
type OutputManager struct {
	dir        string
	races      *csvFile
	seasons    *csvFile
	lineage    *csvFile
	milestones *csvFile
	perf       *csvFile
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	// Create output directory
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	files := []struct {
		dst  **csvFile
		name string
	}{
		{&om.races, "races.csv"},
		{&om.seasons, "seasons.csv"},
		{&om.lineage, "lineage.csv"},
		{&om.milestones, "milestones.csv"},
		{&om.perf, "perf.csv"},
	}
	for _, f := range files {
		c, err := createCSV(dir, f.name)
		if err != nil {
			om.Close()
			return nil, err
		}
		*f.dst = c
	}

	return om, nil
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteRaces appends heat records to races.csv.
func (om *OutputManager) WriteRaces(records []RaceRecord) error {
	if om == nil || len(records) == 0 {
		return nil
	}
	return om.races.write(records)
}

// WriteSeason appends a season record to seasons.csv.
func (om *OutputManager) WriteSeason(stats SeasonStats) error {
	if om == nil {
		return nil
	}
	return om.seasons.write([]SeasonStats{stats})
}

// WriteLineage appends birth records to lineage.csv.
func (om *OutputManager) WriteLineage(records []LineageRecord) error {
	if om == nil || len(records) == 0 {
		return nil
	}
	return om.lineage.write(records)
}

// WriteBookmark appends a bookmark record to milestones.csv.
func (om *OutputManager) WriteBookmark(b Bookmark) error {
	if om == nil {
		return nil
	}
	return om.milestones.write([]Bookmark{b})
}

// WritePerf appends a performance record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, season int) error {
	if om == nil {
		return nil
	}
	return om.perf.write([]PerfStatsCSV{stats.ToCSV(season)})
}

// WriteHallOfFame saves the hall of fame as JSON.
func (om *OutputManager) WriteHallOfFame(hof *HallOfFame) error {
	if om == nil || hof == nil {
		return nil
	}

	data, err := hof.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshaling hall of fame: %w", err)
	}

	if err := os.WriteFile(filepath.Join(om.dir, "hall_of_fame.json"), data, 0644); err != nil {
		return fmt.Errorf("writing hall_of_fame.json: %w", err)
	}

	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var errs []error
	for _, c := range []*csvFile{om.races, om.seasons, om.lineage, om.milestones, om.perf} {
		if c == nil {
			continue
		}
		if err := c.file.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing %s: %w", c.name, err))
		}
	}
	return errors.Join(errs...)
}
