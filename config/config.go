// Package config provides configuration loading and access for the league.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/shells/stats"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Breeding policies.
const (
	PolicyBlended   = "blended"
	PolicyMendelian = "mendelian"
)

// Mutation modes.
const (
	MutationAdaptive = "adaptive"
	MutationFixed    = "fixed"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all league configuration parameters.
type Config struct {
	Run       RunConfig       `yaml:"run"`
	Race      RaceConfig      `yaml:"race"`
	League    LeagueConfig    `yaml:"league"`
	Breeding  BreedingConfig  `yaml:"breeding"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Roster    []TurtleConfig  `yaml:"roster"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// RunConfig holds top-level run settings. Fields tagged env can be
// overridden from the environment.
type RunConfig struct {
	Seed      int64  `yaml:"seed" env:"SHELLS_SEED"`             // 0 = time-based
	Seasons   int    `yaml:"seasons" env:"SHELLS_SEASONS"`       // Seasons to run
	OutputDir string `yaml:"output_dir" env:"SHELLS_OUTPUT_DIR"` // Empty disables file output
}

// RaceConfig holds per-heat settings.
type RaceConfig struct {
	TrackLength float64 `yaml:"track_length" env:"SHELLS_TRACK_LENGTH"`
	FieldSize   int     `yaml:"field_size"` // Turtles per heat
}

// LeagueConfig holds stable and season settings.
type LeagueConfig struct {
	RosterSize     int `yaml:"roster_size"`       // Active turtles
	Heats          int `yaml:"heats"`             // Heats per season
	RetiredCap     int `yaml:"retired_cap"`       // Retired turtles kept for breeding
	FounderLevel   int `yaml:"founder_level"`     // Level of randomly rolled founders
	HallOfFameSize int `yaml:"hall_of_fame_size"` // Entries kept in the hall of fame
}

// BreedingConfig controls how champions produce offspring.
type BreedingConfig struct {
	Enabled      bool    `yaml:"enabled"`
	Policy       string  `yaml:"policy"`        // blended or mendelian
	Mutation     string  `yaml:"mutation"`      // adaptive or fixed
	MutationRate float64 `yaml:"mutation_rate"` // Used when mutation is fixed
	Offspring    int     `yaml:"offspring"`     // Children per season
}

// TelemetryConfig controls logging and output.
type TelemetryConfig struct {
	LogSeasons      bool `yaml:"log_seasons"`
	LogHeats        bool `yaml:"log_heats"`
	MilestoneWindow int  `yaml:"milestone_window"` // Seasons of history kept for milestones
	DynastySeasons  int  `yaml:"dynasty_seasons"`  // Consecutive titles that make a dynasty
}

// TurtleConfig seeds a named founder. Genetics are decoded through the gene
// codec, so colors may be given as [r, g, b] or "#rrggbb".
type TurtleConfig struct {
	Name     string         `yaml:"name"`
	Stats    stats.Stats    `yaml:"stats"`
	Genetics map[string]any `yaml:"genetics,omitempty"`
}

// seedStats returns the seed's stat block. A seed without stats races on the
// reference block; stamina and luck are optional.
func (t TurtleConfig) seedStats() stats.Stats {
	if t.Stats == (stats.Stats{}) {
		return stats.Default()
	}
	return t.Stats.WithDefaults()
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Segments       int  // Track segments per heat
	HeatSize       int  // min(field size, roster size)
	WalkOns        int  // Unaffiliated entrants filling the field past the roster
	Blended        bool // Breeding policy is blended
	Adaptive       bool // Mutation is adaptive
	RandomFounders int  // Founders rolled at random after the roster seeds
}

// segmentSize mirrors the race package's segment length.
const segmentSize = 50.0

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used. Environment overrides
// are applied last.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.computeDerived()

	return cfg, nil
}

// applyEnv overlays SHELLS_* environment variables. Unset variables leave
// the loaded value untouched.
func (c *Config) applyEnv() error {
	if err := env.Parse(&c.Run); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if err := env.Parse(&c.Race); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks that the configuration can drive a league.
func (c *Config) Validate() error {
	switch {
	case c.Run.Seasons < 0:
		return fmt.Errorf("%w: run.seasons must be >= 0, got %d", ErrInvalid, c.Run.Seasons)
	case !(c.Race.TrackLength > 0) || math.IsInf(c.Race.TrackLength, 0):
		return fmt.Errorf("%w: race.track_length must be positive, got %v", ErrInvalid, c.Race.TrackLength)
	case c.Race.FieldSize < 1:
		return fmt.Errorf("%w: race.field_size must be >= 1, got %d", ErrInvalid, c.Race.FieldSize)
	case c.League.RosterSize < 2:
		return fmt.Errorf("%w: league.roster_size must be >= 2, got %d", ErrInvalid, c.League.RosterSize)
	case c.League.Heats < 1:
		return fmt.Errorf("%w: league.heats must be >= 1, got %d", ErrInvalid, c.League.Heats)
	case c.League.RetiredCap < 0:
		return fmt.Errorf("%w: league.retired_cap must be >= 0, got %d", ErrInvalid, c.League.RetiredCap)
	case c.League.FounderLevel < 0:
		return fmt.Errorf("%w: league.founder_level must be >= 0, got %d", ErrInvalid, c.League.FounderLevel)
	case len(c.Roster) > c.League.RosterSize:
		return fmt.Errorf("%w: %d roster seeds exceed league.roster_size %d", ErrInvalid, len(c.Roster), c.League.RosterSize)
	}

	switch c.Breeding.Policy {
	case PolicyBlended, PolicyMendelian:
	default:
		return fmt.Errorf("%w: unknown breeding.policy %q", ErrInvalid, c.Breeding.Policy)
	}
	switch c.Breeding.Mutation {
	case MutationAdaptive, MutationFixed:
	default:
		return fmt.Errorf("%w: unknown breeding.mutation %q", ErrInvalid, c.Breeding.Mutation)
	}
	if c.Breeding.MutationRate < 0 || c.Breeding.MutationRate > 1 {
		return fmt.Errorf("%w: breeding.mutation_rate must be in [0, 1], got %v", ErrInvalid, c.Breeding.MutationRate)
	}
	if c.Breeding.Offspring < 0 || c.Breeding.Offspring >= c.League.RosterSize {
		return fmt.Errorf("%w: breeding.offspring must be in [0, league.roster_size), got %d", ErrInvalid, c.Breeding.Offspring)
	}

	for i, t := range c.Roster {
		if t.Name == "" {
			return fmt.Errorf("%w: roster[%d] has no name", ErrInvalid, i)
		}
		if err := t.seedStats().Validate(); err != nil {
			return fmt.Errorf("%w: roster %q: %w", ErrInvalid, t.Name, err)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Segments = int(math.Ceil(c.Race.TrackLength / segmentSize))
	c.Derived.HeatSize = min(c.Race.FieldSize, c.League.RosterSize)
	c.Derived.WalkOns = c.Race.FieldSize - c.Derived.HeatSize
	c.Derived.Blended = c.Breeding.Policy == PolicyBlended
	c.Derived.Adaptive = c.Breeding.Mutation == MutationAdaptive
	c.Derived.RandomFounders = c.League.RosterSize - len(c.Roster)

	for i := range c.Roster {
		c.Roster[i].Stats = c.Roster[i].seedStats()
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
