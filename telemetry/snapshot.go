package telemetry

import (
	"math"

	"github.com/pthm-cable/splat/mpm"
)

// ParticleRecord is one particle's observable state, flattened for CSV
// export. Measurement output only; not reloadable simulation state.
type ParticleRecord struct {
	Index int     `csv:"index"`
	X     float32 `csv:"x"`
	Y     float32 `csv:"y"`
	VelX  float32 `csv:"vel_x"`
	VelY  float32 `csv:"vel_y"`
	Mass  float32 `csv:"mass"`
	Speed float32 `csv:"speed"`
}

// CaptureParticles snapshots the particle set into flat records.
// Call between steps, never during one.
func CaptureParticles(particles []mpm.Particle) []ParticleRecord {
	records := make([]ParticleRecord, len(particles))
	for i := range particles {
		p := &particles[i]
		records[i] = ParticleRecord{
			Index: i,
			X:     p.Position.X,
			Y:     p.Position.Y,
			VelX:  p.Velocity.X,
			VelY:  p.Velocity.Y,
			Mass:  p.Mass,
			Speed: float32(math.Hypot(float64(p.Velocity.X), float64(p.Velocity.Y))),
		}
	}
	return records
}
