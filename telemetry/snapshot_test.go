package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/splat/mpm"
)

func TestCaptureParticles(t *testing.T) {
	particles := []mpm.Particle{
		{Position: mpm.Vec2{X: 10, Y: 12}, Velocity: mpm.Vec2{X: 3, Y: 4}, Mass: 1.5},
		{Position: mpm.Vec2{X: 2, Y: 7}, Mass: 1},
	}

	records := CaptureParticles(particles)
	if len(records) != 2 {
		t.Fatalf("len = %d, want 2", len(records))
	}

	r := records[0]
	if r.Index != 0 || r.X != 10 || r.Y != 12 || r.VelX != 3 || r.VelY != 4 || r.Mass != 1.5 {
		t.Errorf("record 0 = %+v", r)
	}
	if math.Abs(float64(r.Speed)-5.0) > 1e-5 {
		t.Errorf("speed = %v, want 5", r.Speed)
	}

	if records[1].Index != 1 || records[1].Speed != 0 {
		t.Errorf("record 1 = %+v", records[1])
	}
}

func TestCaptureParticlesEmpty(t *testing.T) {
	records := CaptureParticles(nil)
	if len(records) != 0 {
		t.Errorf("len = %d, want 0", len(records))
	}
}
