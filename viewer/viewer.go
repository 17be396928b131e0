// Package viewer drives the simulation loop and renders the particle
// set. It is a pure consumer of the core: once per frame it reads
// particle state, draws it, and calls Step.
package viewer

import (
	"fmt"
	"math/rand"

	"github.com/pthm-cable/splat/camera"
	"github.com/pthm-cable/splat/config"
	"github.com/pthm-cable/splat/mpm"
	"github.com/pthm-cable/splat/telemetry"
)

// Viewer owns the simulation, camera and telemetry for one run.
type Viewer struct {
	sim       *mpm.Simulation
	cam       *camera.Camera
	collector *telemetry.StepCollector
	rng       *rand.Rand

	paused        bool
	stepsPerFrame int
	pointSize     float32
	colorBySpeed  bool
	speedFull     float32
	showControls  bool

	screenW, screenH float32
}

// Options configures a new Viewer.
type Options struct {
	Seed     int64
	Headless bool
}

// New creates a viewer with a freshly seeded simulation built from the
// global config.
func New(opts Options, collector *telemetry.StepCollector) (*Viewer, error) {
	cfg := config.Cfg()
	rng := rand.New(rand.NewSource(opts.Seed))

	sim, err := NewSimulation(cfg, rng)
	if err != nil {
		return nil, err
	}

	v := &Viewer{
		sim:           sim,
		collector:     collector,
		rng:           rng,
		stepsPerFrame: cfg.Viewer.StepsPerFrame,
		pointSize:     cfg.Derived.PointSize32,
		colorBySpeed:  cfg.Viewer.ColorBySpeed,
		speedFull:     float32(cfg.Viewer.SpeedColorFull),
		screenW:       float32(cfg.Screen.Width),
		screenH:       float32(cfg.Screen.Height),
	}

	if !opts.Headless {
		v.cam = camera.New(v.screenW, v.screenH, cfg.Derived.WorldW32, cfg.Derived.WorldH32)
	}

	return v, nil
}

// NewSimulation builds a simulation from config: the emitter block,
// gravity and dt. Shared by the graphical and headless paths.
func NewSimulation(cfg *config.Config, rng *rand.Rand) (*mpm.Simulation, error) {
	em := &cfg.Emitter

	origin := mpm.Vec2{X: float32(em.Origin.X), Y: float32(em.Origin.Y)}
	velocity := mpm.Vec2{X: float32(em.Velocity.X), Y: float32(em.Velocity.Y)}

	var particles []mpm.Particle
	if em.VelocityJitter > 0 {
		particles = mpm.SpawnBlockJittered(rng, origin, em.Cols, em.Rows,
			float32(em.Spacing), velocity, float32(em.VelocityJitter), float32(em.Mass))
	} else {
		particles = mpm.SpawnBlock(origin, em.Cols, em.Rows,
			float32(em.Spacing), velocity, float32(em.Mass))
	}

	gravity := mpm.Vec2{X: cfg.Derived.GravityX32, Y: cfg.Derived.GravityY32}
	sim, err := mpm.New(cfg.Grid.Width, cfg.Grid.Height, particles, gravity, cfg.Derived.DT32)
	if err != nil {
		return nil, fmt.Errorf("building simulation: %w", err)
	}
	return sim, nil
}

// Simulation exposes the underlying simulation for measurement.
func (v *Viewer) Simulation() *mpm.Simulation { return v.sim }

// StepsRun returns the simulation step counter.
func (v *Viewer) StepsRun() int { return v.sim.StepsRun() }

// Update runs one frame of the graphical loop: input, then the
// configured number of simulation steps.
func (v *Viewer) Update() {
	v.handleInput()

	v.collector.StartStep()
	v.collector.StartPhase(telemetry.PhaseStep)

	if !v.paused {
		for i := 0; i < v.stepsPerFrame; i++ {
			v.sim.Step()
		}
	}
}

// UpdateHeadless runs the configured number of simulation steps with
// no input or rendering.
func (v *Viewer) UpdateHeadless() {
	v.collector.StartStep()
	v.collector.StartPhase(telemetry.PhaseStep)

	for i := 0; i < v.stepsPerFrame; i++ {
		v.sim.Step()
	}

	v.collector.EndStep()
}

// reset replaces the simulation with a freshly seeded one. Grid size,
// gravity and dt are fixed per simulation, so changing them means
// building a new one anyway.
func (v *Viewer) reset() {
	sim, err := NewSimulation(config.Cfg(), v.rng)
	if err != nil {
		// Config was already validated at startup; a failure here
		// means it was edited into an invalid state mid-run.
		panic(fmt.Sprintf("viewer: reset failed: %v", err))
	}
	v.sim = sim
}

// SetStepsPerFrame overrides the per-update step count (used by the
// headless -steps-per-update flag).
func (v *Viewer) SetStepsPerFrame(n int) {
	if n >= 1 {
		v.stepsPerFrame = n
	}
}
