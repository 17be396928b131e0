package telemetry

import (
	"testing"
	"time"
)

func TestStepCollectorWindow(t *testing.T) {
	c := NewStepCollector(4)

	// Record more samples than the window holds
	for i := 0; i < 10; i++ {
		c.StartStep()
		c.StartPhase(PhaseStep)
		time.Sleep(time.Millisecond)
		c.EndStep()
	}

	if c.sampleCount != 4 {
		t.Errorf("sampleCount = %d, want window size 4", c.sampleCount)
	}

	stats := c.Stats()
	if stats.AvgStepDuration <= 0 {
		t.Errorf("AvgStepDuration = %v, want > 0", stats.AvgStepDuration)
	}
	if stats.MinStepDuration > stats.MaxStepDuration {
		t.Errorf("min %v > max %v", stats.MinStepDuration, stats.MaxStepDuration)
	}
	if stats.StepsPerSecond <= 0 {
		t.Errorf("StepsPerSecond = %v, want > 0", stats.StepsPerSecond)
	}
}

func TestStepCollectorQuantiles(t *testing.T) {
	c := NewStepCollector(8)

	for i := 0; i < 8; i++ {
		c.StartStep()
		c.StartPhase(PhaseStep)
		time.Sleep(time.Millisecond)
		c.EndStep()
	}

	stats := c.Stats()
	if stats.P50StepDuration < stats.MinStepDuration || stats.P50StepDuration > stats.MaxStepDuration {
		t.Errorf("p50 %v outside [%v, %v]", stats.P50StepDuration, stats.MinStepDuration, stats.MaxStepDuration)
	}
	if stats.P99StepDuration < stats.P50StepDuration {
		t.Errorf("p99 %v < p50 %v", stats.P99StepDuration, stats.P50StepDuration)
	}
}

func TestStepCollectorPhases(t *testing.T) {
	c := NewStepCollector(2)

	c.StartStep()
	c.StartPhase(PhaseStep)
	time.Sleep(2 * time.Millisecond)
	c.StartPhase(PhaseRender)
	time.Sleep(time.Millisecond)
	c.EndStep()

	stats := c.Stats()
	if stats.PhaseAvg[PhaseStep] <= 0 {
		t.Errorf("step phase avg = %v, want > 0", stats.PhaseAvg[PhaseStep])
	}
	if stats.PhaseAvg[PhaseRender] <= 0 {
		t.Errorf("render phase avg = %v, want > 0", stats.PhaseAvg[PhaseRender])
	}

	// Percentages of a two-phase step should roughly cover the total
	total := stats.PhasePct[PhaseStep] + stats.PhasePct[PhaseRender]
	if total < 50 || total > 110 {
		t.Errorf("phase pct sum = %v, want near 100", total)
	}
}

func TestStepCollectorEmpty(t *testing.T) {
	c := NewStepCollector(16)
	stats := c.Stats()

	if stats.AvgStepDuration != 0 || stats.StepsPerSecond != 0 {
		t.Errorf("empty collector stats = %+v, want zeros", stats)
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("empty collector should still return initialized maps")
	}
}

func TestToCSV(t *testing.T) {
	c := NewStepCollector(4)
	c.StartStep()
	c.StartPhase(PhaseStep)
	time.Sleep(time.Millisecond)
	c.EndStep()

	row := c.Stats().ToCSV(42)
	if row.WindowEnd != 42 {
		t.Errorf("WindowEnd = %d, want 42", row.WindowEnd)
	}
	if row.AvgStepUS <= 0 {
		t.Errorf("AvgStepUS = %d, want > 0", row.AvgStepUS)
	}
}
