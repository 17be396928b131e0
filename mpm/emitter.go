package mpm

import "math/rand"

// SpawnBlock builds a cols by rows lattice of particles starting at
// origin with the given spacing, all sharing the same initial velocity
// and mass. Momentum starts at zero. The caller is responsible for
// keeping the block inside the simulation domain.
func SpawnBlock(origin Vec2, cols, rows int, spacing float32, velocity Vec2, mass float32) []Particle {
	particles := make([]Particle, 0, cols*rows)
	for x := 0; x < cols; x++ {
		for y := 0; y < rows; y++ {
			particles = append(particles, Particle{
				Position: Vec2{
					X: origin.X + spacing*float32(x),
					Y: origin.Y + spacing*float32(y),
				},
				Velocity: velocity,
				Mass:     mass,
			})
		}
	}
	return particles
}

// SpawnBlockJittered is SpawnBlock with each particle's velocity drawn
// uniformly from [-jitter/2, jitter/2] around the base velocity on
// each axis. Used by the viewer to seed a splashing blob.
func SpawnBlockJittered(rng *rand.Rand, origin Vec2, cols, rows int, spacing float32, velocity Vec2, jitter, mass float32) []Particle {
	particles := SpawnBlock(origin, cols, rows, spacing, velocity, mass)
	for i := range particles {
		particles[i].Velocity.X += jitter * (rng.Float32() - 0.5)
		particles[i].Velocity.Y += jitter * (rng.Float32() - 0.5)
	}
	return particles
}
