// Package main tunes the ball bounce parameters with CMA-ES so each ball
// size peaks at a target fraction of the arena height.
//
// Usage: go run ./cmd/tune --output runs/tune [--targets 0.35,0.5,0.65] [--preview]
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/pang/config"
)

// evalRecord is one row of tune_log.csv.
type evalRecord struct {
	Eval               int     `csv:"eval"`
	Fitness            float64 `csv:"fitness"`
	BaseJumpHeight     float64 `csv:"base_jump_height"`
	SizeJumpMultiplier float64 `csv:"size_jump_multiplier"`
	GravityScale       float64 `csv:"gravity_scale"`
	Apex               string  `csv:"apex"`
}

// formatDuration formats a duration as MM:SS or HH:MM:SS.
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

func formatApex(apex []float64) string {
	parts := make([]string, len(apex))
	for i, a := range apex {
		parts[i] = fmt.Sprintf("%.3f", a)
	}
	return strings.Join(parts, ";")
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxEvals := flag.Int("max-evals", 300, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	targetsFlag := flag.String("targets", "0.35,0.5,0.65", "Apex height per ball size, as fractions of arena height")
	preview := flag.Bool("preview", false, "Open the interactive slider preview instead of optimizing")
	flag.Parse()

	baseCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	targets, err := ParseTargets(*targetsFlag)
	if err != nil {
		log.Fatalf("invalid --targets: %v", err)
	}

	params := NewParamVector()
	evaluator, err := NewEvaluator(params, baseCfg, targets)
	if err != nil {
		log.Fatalf("invalid --targets: %v", err)
	}

	if *preview {
		runPreview(evaluator)
		return
	}

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	dim := params.Dim()
	initX := params.Normalize(params.ExtractFromConfig(baseCfg))

	popSize := *population
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(dim)/2.0)
	}

	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}
	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0,
	}

	logPath := filepath.Join(*outputDir, "tune_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()
	headerWritten := false

	evalCount := 0
	bestFitness := 1e9
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			clamped := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(clamped)
			evalCount++

			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = append([]float64(nil), clamped...)
			}

			apex := evaluator.LastApex()
			rec := []evalRecord{{
				Eval:               evalCount,
				Fitness:            fitness,
				BaseJumpHeight:     clamped[0],
				SizeJumpMultiplier: clamped[1],
				GravityScale:       clamped[2],
				Apex:               formatApex(apex),
			}}
			if headerWritten {
				err = gocsv.MarshalWithoutHeaders(rec, logFile)
			} else {
				err = gocsv.Marshal(rec, logFile)
				headerWritten = true
			}
			if err != nil {
				log.Printf("failed to write log row: %v", err)
			}

			elapsed := time.Since(startTime)
			avgPerEval := elapsed / time.Duration(evalCount)
			remaining := time.Duration(*maxEvals-evalCount) * avgPerEval
			fmt.Printf("Eval %d/%d: error=%.5f apex=[%s] (best=%.5f) | elapsed: %s, ETA: %s\n",
				evalCount, *maxEvals, fitness, formatApex(apex), bestFitness,
				formatDuration(elapsed), formatDuration(remaining))

			return fitness
		},
	}

	fmt.Printf("Starting CMA-ES tuning with %d parameters, population=%d, max_evals=%d\n",
		dim, popSize, *maxEvals)
	fmt.Printf("Targets: %s\n", formatApex(targets))

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		log.Fatal("no evaluations completed")
	}

	fmt.Printf("\nTuning complete after %d evaluations in %s\n", evalCount, formatDuration(time.Since(startTime)))
	fmt.Printf("Best error: %.6f\n", bestFitness)
	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.6f\n", spec.Path, bestParams[i])
	}

	bestCfg := evaluator.Config(bestParams)
	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}
