package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("NewOutputManager(\"\") error = %v", err)
	}
	if om != nil {
		t.Fatal("expected nil manager when dir is empty")
	}

	// All writes on a nil manager are no-ops
	if err := om.WritePerf(PerfStatsCSV{}); err != nil {
		t.Errorf("WritePerf on nil = %v", err)
	}
	if err := om.WriteParticles(nil); err != nil {
		t.Errorf("WriteParticles on nil = %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("Close on nil = %v", err)
	}
}

func TestOutputManagerPerfCSV(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := om.WritePerf(PerfStatsCSV{WindowEnd: 100, AvgStepUS: 250}); err != nil {
		t.Fatal(err)
	}
	if err := om.WritePerf(PerfStatsCSV{WindowEnd: 200, AvgStepUS: 240}); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "perf.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("perf.csv has %d lines, want header + 2 rows:\n%s", len(lines), data)
	}
	if !strings.Contains(lines[0], "avg_step_us") {
		t.Errorf("missing header: %q", lines[0])
	}
	// Header must not repeat on the second write
	if strings.Contains(lines[2], "avg_step_us") {
		t.Errorf("repeated header: %q", lines[2])
	}
}

func TestOutputManagerParticlesCSV(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer om.Close()

	records := []ParticleRecord{
		{Index: 0, X: 10, Y: 12, Mass: 1},
		{Index: 1, X: 11, Y: 13, Mass: 1},
	}
	if err := om.WriteParticles(records); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "particles.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("particles.csv has %d lines, want header + 2 rows", len(lines))
	}
}
