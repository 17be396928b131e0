package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/splat/config"
	"github.com/pthm-cable/splat/telemetry"
	"github.com/pthm-cable/splat/viewer"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output perf stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed for the emitter jitter (0 = time-based)")
	maxSteps := flag.Int("max-steps", 0, "Stop after N simulation steps (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 0, "Simulation steps per update call (0 = use config)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	collector := telemetry.NewStepCollector(cfg.Telemetry.PerfWindow)

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Warn("failed to write config snapshot", "error", err)
	}

	if *headless {
		runHeadless(rngSeed, *stepsPerUpdate, *maxSteps, *logStats, collector, output)
	} else {
		runGraphical(rngSeed, *maxSteps, *logStats, collector, output)
	}
}

// runHeadless drives the simulation without raylib, for benchmark and
// measurement runs.
func runHeadless(seed int64, stepsPerUpdate, maxSteps int, logStats bool, collector *telemetry.StepCollector, output *telemetry.OutputManager) {
	cfg := config.Cfg()

	v, err := viewer.New(viewer.Options{Seed: seed, Headless: true}, collector)
	if err != nil {
		slog.Error("failed to build simulation", "error", err)
		os.Exit(1)
	}
	if stepsPerUpdate > 0 {
		v.SetStepsPerFrame(stepsPerUpdate)
	}

	slog.Info("starting headless run",
		"seed", seed,
		"grid_w", cfg.Grid.Width,
		"grid_h", cfg.Grid.Height,
		"particles", len(v.Simulation().Particles()),
		"max_steps", maxSteps,
	)

	lastLogged := 0
	for {
		v.UpdateHeadless()

		lastLogged = logWindow(v.StepsRun(), lastLogged, logStats, collector, output)

		if maxSteps > 0 && v.StepsRun() >= maxSteps {
			break
		}
	}

	finishRun(v, collector, output)
}

// runGraphical opens the raylib window and runs the interactive loop.
func runGraphical(seed int64, maxSteps int, logStats bool, collector *telemetry.StepCollector, output *telemetry.OutputManager) {
	cfg := config.Cfg()

	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "splat - MLS-MPM fluid")
	defer rl.CloseWindow()
	rl.SetWindowState(rl.FlagWindowResizable)
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	v, err := viewer.New(viewer.Options{Seed: seed}, collector)
	if err != nil {
		slog.Error("failed to build simulation", "error", err)
		os.Exit(1)
	}

	lastLogged := 0
	for !rl.WindowShouldClose() {
		v.Update()
		v.Draw()

		lastLogged = logWindow(v.StepsRun(), lastLogged, logStats, collector, output)

		if maxSteps > 0 && v.StepsRun() >= maxSteps {
			break
		}
	}

	finishRun(v, collector, output)
}

// logWindow emits perf stats every config.Telemetry.LogIntervalSteps
// steps and returns the updated watermark.
func logWindow(steps, lastLogged int, logStats bool, collector *telemetry.StepCollector, output *telemetry.OutputManager) int {
	interval := config.Cfg().Telemetry.LogIntervalSteps
	if interval <= 0 || steps-lastLogged < interval {
		return lastLogged
	}

	stats := collector.Stats()
	if logStats {
		stats.LogStats()
	}
	if err := output.WritePerf(stats.ToCSV(steps)); err != nil {
		slog.Warn("failed to write perf stats", "error", err)
	}
	return steps
}

// finishRun logs the final state and writes the particle snapshot.
func finishRun(v *viewer.Viewer, collector *telemetry.StepCollector, output *telemetry.OutputManager) {
	slog.Info("run complete",
		"steps", v.StepsRun(),
		"particles", len(v.Simulation().Particles()),
		"perf", collector.Stats(),
	)

	records := telemetry.CaptureParticles(v.Simulation().Particles())
	if err := output.WriteParticles(records); err != nil {
		slog.Warn("failed to write particle snapshot", "error", err)
	}
}
