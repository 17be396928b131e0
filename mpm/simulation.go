package mpm

import "fmt"

// MinGridSize is the smallest legal grid dimension. The two-cell wall
// margin plus the [1, size-2] position clamp need at least this much
// room on each axis.
const MinGridSize = 5

// Particle is a material point carrying mass through the grid.
type Particle struct {
	Position Vec2
	Velocity Vec2
	// Momentum is the APIC affine momentum matrix B, encoding the
	// local velocity gradient around the particle.
	Momentum Mat2
	Mass     float32
}

// cell is a per-step grid accumulator. During P2G its velocity field
// holds momentum; the grid update divides by mass to turn it into
// velocity.
type cell struct {
	velocity Vec2
	mass     float32
}

// Simulation owns a particle set and advances it over a fixed
// background grid using MLS-MPM with APIC transfer.
//
// Step mutates the particle set in place; it is not safe for
// concurrent use. Independent Simulations share nothing and can run in
// parallel.
type Simulation struct {
	xSize, ySize int
	particles    []Particle

	// gravity * dt, precomputed once: both are fixed for the
	// lifetime of the simulation.
	gravityTimesDT Vec2
	dt             float32

	stepsRun int

	// grid is scratch space zeroed at the start of every step. It
	// carries no state between steps; keeping the allocation around
	// just avoids per-step churn.
	grid []cell
}

// New creates a simulation over an xSize by ySize grid. The particle
// slice is owned by the simulation from here on.
//
// All particles must already lie inside [1, size-2] on each axis with
// positive mass; the first step's 3x3 stencil reads would otherwise
// leave the grid. Violations are reported as errors rather than
// deferred to a mid-step panic.
func New(xSize, ySize int, particles []Particle, gravity Vec2, dt float32) (*Simulation, error) {
	if xSize < MinGridSize || ySize < MinGridSize {
		return nil, fmt.Errorf("mpm: grid %dx%d too small, need at least %dx%d", xSize, ySize, MinGridSize, MinGridSize)
	}
	if dt <= 0 {
		return nil, fmt.Errorf("mpm: dt must be positive, got %v", dt)
	}
	for i := range particles {
		p := &particles[i]
		if p.Mass <= 0 {
			return nil, fmt.Errorf("mpm: particle %d has non-positive mass %v", i, p.Mass)
		}
		if p.Position.X < 1 || p.Position.X > float32(xSize)-2 ||
			p.Position.Y < 1 || p.Position.Y > float32(ySize)-2 {
			return nil, fmt.Errorf("mpm: particle %d at (%v, %v) outside domain [1, %d]x[1, %d]",
				i, p.Position.X, p.Position.Y, xSize-2, ySize-2)
		}
	}

	return &Simulation{
		xSize:          xSize,
		ySize:          ySize,
		particles:      particles,
		gravityTimesDT: gravity.Scale(dt),
		dt:             dt,
		grid:           make([]cell, xSize*ySize),
	}, nil
}

// Particles returns the simulation's particle set. The slice stays
// index-stable across steps; callers read it between Step calls, never
// during one.
func (s *Simulation) Particles() []Particle { return s.particles }

// StepsRun returns how many steps have been executed.
func (s *Simulation) StepsRun() int { return s.stepsRun }

// Width returns the grid width in cells.
func (s *Simulation) Width() int { return s.xSize }

// Height returns the grid height in cells.
func (s *Simulation) Height() int { return s.ySize }

// DT returns the fixed time step.
func (s *Simulation) DT() float32 { return s.dt }

// Step advances the simulation by one time step: scatter particle
// mass and momentum onto the grid (P2G), resolve grid velocities with
// gravity and wall boundary conditions, then gather back to particles
// with APIC reconstruction (G2P) and advect.
func (s *Simulation) Step() {
	s.stepsRun++

	for i := range s.grid {
		s.grid[i] = cell{}
	}

	half := Vec2{0.5, 0.5}

	// P2G: scatter mass and momentum onto each particle's 3x3
	// neighborhood, weighted by the quadratic B-spline kernel.
	for i := range s.particles {
		p := &s.particles[i]
		cx, cy := s.stencilBase(i, p.Position)
		wx := quadraticWeights(p.Position.X)
		wy := quadraticWeights(p.Position.Y)

		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				gx, gy := cx+dx, cy+dy
				cellDist := Vec2{float32(gx), float32(gy)}.Sub(p.Position).Add(half)

				// APIC correction: the particle's affine
				// velocity field evaluated at the cell center.
				q := p.Momentum.MulVec(cellDist)

				massContrib := wx[dx+1] * wy[dy+1] * p.Mass

				c := &s.grid[gy*s.xSize+gx]
				c.mass += massContrib
				c.velocity = c.velocity.Add(p.Velocity.Add(q).Scale(massContrib))
			}
		}
	}

	// Grid update: momentum to velocity, gravity, and a no-slip wall
	// two cells thick around the domain perimeter. Empty cells are
	// skipped, which also guards the division.
	for i := range s.grid {
		c := &s.grid[i]
		if c.mass <= 0 {
			continue
		}

		c.velocity = c.velocity.Scale(1 / c.mass).Add(s.gravityTimesDT)

		x := i % s.xSize
		y := i / s.xSize

		if x < 2 || x > s.xSize-3 {
			c.velocity.X = 0
		}
		if y < 2 || y > s.ySize-3 {
			c.velocity.Y = 0
		}
	}

	// G2P: gather interpolated velocity and reconstruct the affine
	// matrix B from the same stencil, then advect. Positions have not
	// moved since P2G, so the weights are identical.
	for i := range s.particles {
		p := &s.particles[i]
		p.Velocity = Vec2{}

		cx, cy := s.stencilBase(i, p.Position)
		wx := quadraticWeights(p.Position.X)
		wy := quadraticWeights(p.Position.Y)

		var b Mat2

		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				gx, gy := cx+dx, cy+dy
				weight := wx[dx+1] * wy[dy+1]
				cellDist := Vec2{float32(gx), float32(gy)}.Sub(p.Position).Add(half)

				weightedVelocity := s.grid[gy*s.xSize+gx].velocity.Scale(weight)

				// APIC paper eq. 10: B accumulates
				// Σ w·v ⊗ (x_i - x_p).
				b = b.Add(outer(weightedVelocity, cellDist))

				p.Velocity = p.Velocity.Add(weightedVelocity)
			}
		}

		// The factor 4 is D^-1 for the quadratic B-spline at unit
		// cell spacing. It belongs to this kernel exactly; do not
		// re-derive it.
		p.Momentum = b.Scale(4.0)

		p.Position = p.Position.Add(p.Velocity.Scale(s.dt))

		// Keep the next step's stencil inside the grid.
		p.Position.X = clampf(p.Position.X, 1.0, float32(s.xSize)-2.0)
		p.Position.Y = clampf(p.Position.Y, 1.0, float32(s.ySize)-2.0)
	}
}

// stencilBase returns the integer cell containing pos, panicking if
// the surrounding 3x3 stencil would leave the grid. The constructor
// and the per-step clamp keep this from firing; it turns a corrupted
// position (NaN, external mutation) into an immediate failure instead
// of a silent bad read.
func (s *Simulation) stencilBase(i int, pos Vec2) (int, int) {
	cx := int(pos.X)
	cy := int(pos.Y)
	if cx < 1 || cx > s.xSize-2 || cy < 1 || cy > s.ySize-2 {
		panic(fmt.Sprintf("mpm: particle %d at (%v, %v) outside domain [1, %d]x[1, %d]",
			i, pos.X, pos.Y, s.xSize-2, s.ySize-2))
	}
	return cx, cy
}

// quadraticWeights returns the quadratic B-spline weights for the
// three cells at offsets {-1, 0, +1} along one axis, given the
// particle's position on that axis. The kernel is evaluated at the
// offset from the containing cell center, which lies in [-0.5, 0.5].
func quadraticWeights(pos float32) [3]float32 {
	cellDiff := pos - floorf(pos) - 0.5
	return [3]float32{
		0.5 * (0.5 - cellDiff) * (0.5 - cellDiff),
		0.75 - cellDiff*cellDiff,
		0.5 * (0.5 + cellDiff) * (0.5 + cellDiff),
	}
}
