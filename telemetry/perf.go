// Package telemetry collects step timing and particle state for
// benchmark and measurement runs.
package telemetry

import (
	"log/slog"
	"slices"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase names for one viewer frame.
const (
	PhaseStep      = "step"
	PhaseRender    = "render"
	PhaseTelemetry = "telemetry"
)

// StepSample holds timing data for a single simulation step.
type StepSample struct {
	StepDuration time.Duration
	Phases       map[string]time.Duration
}

// StepCollector tracks step performance over a rolling window.
type StepCollector struct {
	windowSize    int
	samples       []StepSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	stepStart     time.Time
	phaseStart    time.Time
	lastPhase     string

	// Frame timing (for graphics mode)
	lastFrameTime time.Time
	frameDuration time.Duration
}

// NewStepCollector creates a new step collector.
// windowSize: number of steps to aggregate over (e.g. 120 for 2
// seconds at 60 steps/sec).
func NewStepCollector(windowSize int) *StepCollector {
	if windowSize < 1 {
		windowSize = 120
	}
	return &StepCollector{
		windowSize:    windowSize,
		samples:       make([]StepSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartStep begins timing a new simulation step.
func (c *StepCollector) StartStep() {
	c.stepStart = time.Now()
	c.currentPhases = make(map[string]time.Duration)
	c.lastPhase = ""
}

// StartPhase begins timing a specific phase.
func (c *StepCollector) StartPhase(phase string) {
	now := time.Now()
	// End previous phase if any
	if c.lastPhase != "" {
		c.currentPhases[c.lastPhase] += now.Sub(c.phaseStart)
	}
	c.phaseStart = now
	c.lastPhase = phase
}

// EndStep finishes timing the current step and records the sample.
func (c *StepCollector) EndStep() {
	now := time.Now()
	// End final phase
	if c.lastPhase != "" {
		c.currentPhases[c.lastPhase] += now.Sub(c.phaseStart)
	}

	sample := StepSample{
		StepDuration: now.Sub(c.stepStart),
		Phases:       c.currentPhases,
	}

	c.samples[c.writeIndex] = sample
	c.writeIndex = (c.writeIndex + 1) % c.windowSize
	if c.sampleCount < c.windowSize {
		c.sampleCount++
	}
}

// RecordFrame records frame timing for graphics mode.
func (c *StepCollector) RecordFrame() {
	now := time.Now()
	if !c.lastFrameTime.IsZero() {
		c.frameDuration = now.Sub(c.lastFrameTime)
	}
	c.lastFrameTime = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	// Step timing
	AvgStepDuration time.Duration
	MinStepDuration time.Duration
	MaxStepDuration time.Duration

	// Step time distribution
	P50StepDuration time.Duration
	P95StepDuration time.Duration
	P99StepDuration time.Duration

	// Phase breakdown (average durations)
	PhaseAvg map[string]time.Duration

	// Phase percentages of total step time
	PhasePct map[string]float64

	// Throughput
	StepsPerSecond float64

	// Frame timing (graphics mode)
	FrameDuration time.Duration
	FPS           float64
}

// Stats computes aggregated statistics over the current window.
func (c *StepCollector) Stats() PerfStats {
	// Frame timing is always available (independent of step samples)
	var fps float64
	if c.frameDuration > 0 {
		fps = float64(time.Second) / float64(c.frameDuration)
	}

	if c.sampleCount == 0 {
		return PerfStats{
			PhaseAvg:      make(map[string]time.Duration),
			PhasePct:      make(map[string]float64),
			FrameDuration: c.frameDuration,
			FPS:           fps,
		}
	}

	var totalStep time.Duration
	var minStep, maxStep time.Duration
	phaseSum := make(map[string]time.Duration)
	durations := make([]float64, 0, c.sampleCount)

	// Iterate over valid samples
	for i := 0; i < c.sampleCount; i++ {
		s := c.samples[i]
		totalStep += s.StepDuration
		durations = append(durations, float64(s.StepDuration))

		if i == 0 || s.StepDuration < minStep {
			minStep = s.StepDuration
		}
		if s.StepDuration > maxStep {
			maxStep = s.StepDuration
		}

		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	avgStep := totalStep / time.Duration(c.sampleCount)

	// Step time distribution
	slices.Sort(durations)
	p50 := time.Duration(stat.Quantile(0.50, stat.Empirical, durations, nil))
	p95 := time.Duration(stat.Quantile(0.95, stat.Empirical, durations, nil))
	p99 := time.Duration(stat.Quantile(0.99, stat.Empirical, durations, nil))

	// Calculate phase averages and percentages
	phaseAvg := make(map[string]time.Duration)
	phasePct := make(map[string]float64)
	for phase, sum := range phaseSum {
		phaseAvg[phase] = sum / time.Duration(c.sampleCount)
		if avgStep > 0 {
			phasePct[phase] = float64(phaseAvg[phase]) / float64(avgStep) * 100
		}
	}

	// Calculate throughput
	var stepsPerSec float64
	if avgStep > 0 {
		stepsPerSec = float64(time.Second) / float64(avgStep)
	}

	return PerfStats{
		AvgStepDuration: avgStep,
		MinStepDuration: minStep,
		MaxStepDuration: maxStep,
		P50StepDuration: p50,
		P95StepDuration: p95,
		P99StepDuration: p99,
		PhaseAvg:        phaseAvg,
		PhasePct:        phasePct,
		StepsPerSecond:  stepsPerSec,
		FrameDuration:   c.frameDuration,
		FPS:             fps,
	}
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_step_us", s.AvgStepDuration.Microseconds(),
		"min_step_us", s.MinStepDuration.Microseconds(),
		"max_step_us", s.MaxStepDuration.Microseconds(),
		"p50_step_us", s.P50StepDuration.Microseconds(),
		"p95_step_us", s.P95StepDuration.Microseconds(),
		"p99_step_us", s.P99StepDuration.Microseconds(),
		"steps_per_sec", int(s.StepsPerSecond),
	}

	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}

	// Add phase breakdowns
	phases := []string{PhaseStep, PhaseRender, PhaseTelemetry}
	for _, phase := range phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", int(pct*10)/10.0)
		}
	}

	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_step_us", s.AvgStepDuration.Microseconds()),
		slog.Int64("min_step_us", s.MinStepDuration.Microseconds()),
		slog.Int64("max_step_us", s.MaxStepDuration.Microseconds()),
		slog.Int64("p99_step_us", s.P99StepDuration.Microseconds()),
		slog.Float64("steps_per_sec", s.StepsPerSecond),
	}

	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}

	for phase, pct := range s.PhasePct {
		attrs = append(attrs, slog.Float64(phase+"_pct", pct))
	}

	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd    int     `csv:"window_end"`
	AvgStepUS    int64   `csv:"avg_step_us"`
	MinStepUS    int64   `csv:"min_step_us"`
	MaxStepUS    int64   `csv:"max_step_us"`
	P50StepUS    int64   `csv:"p50_step_us"`
	P95StepUS    int64   `csv:"p95_step_us"`
	P99StepUS    int64   `csv:"p99_step_us"`
	StepsPerSec  float64 `csv:"steps_per_sec"`
	FPS          float64 `csv:"fps"`
	StepPct      float64 `csv:"step_pct"`
	RenderPct    float64 `csv:"render_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgStepUS:    s.AvgStepDuration.Microseconds(),
		MinStepUS:    s.MinStepDuration.Microseconds(),
		MaxStepUS:    s.MaxStepDuration.Microseconds(),
		P50StepUS:    s.P50StepDuration.Microseconds(),
		P95StepUS:    s.P95StepDuration.Microseconds(),
		P99StepUS:    s.P99StepDuration.Microseconds(),
		StepsPerSec:  s.StepsPerSecond,
		FPS:          s.FPS,
		StepPct:      s.PhasePct[PhaseStep],
		RenderPct:    s.PhasePct[PhaseRender],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
