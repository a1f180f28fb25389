package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/shells/config"
	"github.com/pthm-cable/shells/stats"
)

// evalRecord is one row of optimize_log.csv.
type evalRecord struct {
	Eval      int     `csv:"eval"`
	Fitness   float64 `csv:"fitness"`
	WinRate   float64 `csv:"win_rate"`
	Speed     int     `csv:"speed"`
	MaxEnergy int     `csv:"max_energy"`
	Recovery  int     `csv:"recovery"`
	Swim      int     `csv:"swim"`
	Climb     int     `csv:"climb"`
}

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	budget := flag.Int("budget", 21, "Stat points to allocate on top of the base block")
	seeds := flag.Int("seeds", 4, "Number of seeds per evaluation")
	heats := flag.Int("heats", 25, "Heats per seed")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	name := flag.String("name", "Optimized", "Roster name for the best build")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if *budget < 0 || *seeds < 1 || *heats < 1 {
		log.Fatal("--budget must be >= 0, --seeds and --heats >= 1")
	}

	// Create output directory
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	// Load base config
	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	params := NewParamVector()

	// Generate seeds for evaluation
	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	evaluator := NewFitnessEvaluator(params, *budget, evalSeeds, *heats, baseCfg.Race.FieldSize, baseCfg.Race.TrackLength)

	dim := params.Dim()
	problem := optimize.Problem{
		Func: evaluator.Evaluate,
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // Sequential evaluation
	}

	// Population size
	popSize := *population
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(dim)/2.0)
	}

	method := &optimize.CmaEsChol{
		InitStepSize: 0.2,
		Population:   popSize,
	}

	// Open log file
	logFile, err := os.Create(filepath.Join(*outputDir, "optimize_log.csv"))
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	// Track evaluations and timing
	evalCount := 0
	bestFitness := 1e9
	var bestParams []float64
	startTime := time.Now()

	// Wrap the function to log evaluations
	originalFunc := problem.Func
	problem.Func = func(x []float64) float64 {
		fitness := originalFunc(x)
		evalCount++

		clamped := params.Clamp(x)
		if fitness < bestFitness {
			bestFitness = fitness
			bestParams = clamped
		}

		a := params.Allocation(clamped, *budget)
		row := []evalRecord{{
			Eval:      evalCount,
			Fitness:   fitness,
			WinRate:   evaluator.LastWinRate(),
			Speed:     a[0],
			MaxEnergy: a[1],
			Recovery:  a[2],
			Swim:      a[3],
			Climb:     a[4],
		}}
		if evalCount == 1 {
			err = gocsv.Marshal(row, logFile)
		} else {
			err = gocsv.MarshalWithoutHeaders(row, logFile)
		}
		if err != nil {
			log.Printf("failed to log evaluation: %v", err)
		}

		// Calculate timing
		elapsed := time.Since(startTime)
		avgPerEval := elapsed / time.Duration(evalCount)
		remaining := time.Duration(*maxEvals-evalCount) * avgPerEval

		fmt.Printf("Eval %d/%d: win_rate=%.2f alloc=%v (best=%.3f) | elapsed: %s, ETA: %s\n",
			evalCount, *maxEvals, evaluator.LastWinRate(), a, bestFitness,
			formatDuration(elapsed), formatDuration(remaining))

		return fitness
	}

	fmt.Printf("Starting CMA-ES build search: budget=%d, population=%d, max_evals=%d\n",
		*budget, popSize, *maxEvals)
	fmt.Printf("Seeds per evaluation: %d, heats per seed: %d, field: %d\n",
		*seeds, *heats, baseCfg.Race.FieldSize)

	result, err := optimize.Minimize(problem, params.DefaultVector(), settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}

	// Use best params found (may be from any evaluation, not just final)
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(result.X)
	}
	if bestParams == nil {
		log.Fatal("no evaluations completed")
	}

	totalTime := time.Since(startTime)
	best := stats.Allocate(params.Allocation(bestParams, *budget))
	fmt.Printf("\nOptimization complete after %d evaluations in %s\n", evalCount, formatDuration(totalTime))
	fmt.Printf("Best fitness: %.3f\n", bestFitness)
	fmt.Printf("\nBest build (%d points):\n", best.Points())
	fmt.Printf("  speed: %.0f\n  max_energy: %.0f\n  recovery: %.0f\n  swim: %.0f\n  climb: %.0f\n",
		best.Speed, best.MaxEnergy, best.Recovery, best.Swim, best.Climb)

	// Save config with the build seeded into the roster
	bestCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to reload config: %v", err)
	}
	params.ApplyToConfig(bestCfg, *name, bestParams, *budget)

	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}
