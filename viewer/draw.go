package viewer

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/splat/telemetry"
)

// Draw renders the particle set, domain walls, HUD and controls.
func (v *Viewer) Draw() {
	v.collector.StartPhase(telemetry.PhaseRender)

	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 12, G: 14, B: 24, A: 255})

	v.drawWalls()
	v.drawParticles()
	v.drawHUD()
	if v.showControls {
		v.drawControls()
	}

	rl.EndDrawing()

	v.collector.RecordFrame()
	v.collector.EndStep()
}

// drawWalls outlines the usable particle domain. The two outermost
// cell rings are the no-slip wall margin.
func (v *Viewer) drawWalls() {
	sim := v.sim
	x0, y0 := v.cam.WorldToScreen(1, float32(sim.Height())-2)
	x1, y1 := v.cam.WorldToScreen(float32(sim.Width())-2, 1)

	rl.DrawRectangleLines(int32(x0), int32(y0), int32(x1-x0), int32(y1-y0),
		rl.Color{R: 60, G: 70, B: 90, A: 255})
}

// drawParticles renders every particle as a point, colored by speed.
func (v *Viewer) drawParticles() {
	particles := v.sim.Particles()

	for i := range particles {
		p := &particles[i]
		sx, sy := v.cam.WorldToScreen(p.Position.X, p.Position.Y)

		color := rl.SkyBlue
		if v.colorBySpeed {
			speedSq := p.Velocity.X*p.Velocity.X + p.Velocity.Y*p.Velocity.Y
			color = speedColor(speedSq, v.speedFull*v.speedFull)
		}

		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, v.pointSize/2, color)
	}
}

// speedColor maps squared speed onto a cold-to-hot ramp. fullSq is the
// squared speed that saturates the ramp.
func speedColor(speedSq, fullSq float32) rl.Color {
	t := speedSq / fullSq
	if t > 1 {
		t = 1
	}
	return rl.Color{
		R: uint8(60 + 195*t),
		G: uint8(130 + 110*t),
		B: 255,
		A: 255,
	}
}

// drawHUD renders the status line and perf summary.
func (v *Viewer) drawHUD() {
	stats := v.collector.Stats()

	line := fmt.Sprintf("particles: %d | steps: %d | %d fps | frame avg %dus",
		len(v.sim.Particles()), v.sim.StepsRun(), rl.GetFPS(), stats.AvgStepDuration.Microseconds())
	rl.DrawText(line, 10, 10, 18, rl.RayWhite)

	state := fmt.Sprintf("%dx steps/frame [< >] | R reset | C controls", v.stepsPerFrame)
	if v.paused {
		state = "PAUSED [space] | " + state
	}
	rl.DrawText(state, 10, 32, 14, rl.Gray)
}

// drawControls renders the raygui panel with live tweakables.
func (v *Viewer) drawControls() {
	panelX := v.screenW - 230
	panelY := float32(10)

	rl.DrawRectangle(int32(panelX-10), int32(panelY-5), 230, 150, rl.Color{R: 20, G: 22, B: 34, A: 220})

	pauseLabel := "Pause"
	if v.paused {
		pauseLabel = "Resume"
	}
	if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 100, Height: 26}, pauseLabel) {
		v.paused = !v.paused
	}
	if gui.Button(rl.Rectangle{X: panelX + 110, Y: panelY, Width: 100, Height: 26}, "Reset") {
		v.reset()
	}
	panelY += 40

	rl.DrawText("Point size", int32(panelX), int32(panelY), 14, rl.Gray)
	panelY += 18
	v.pointSize = gui.SliderBar(
		rl.Rectangle{X: panelX, Y: panelY, Width: 170, Height: 18},
		"1", "8",
		v.pointSize, 1, 8,
	)
	rl.DrawText(fmt.Sprintf("%.1f", v.pointSize), int32(panelX+180), int32(panelY+2), 14, rl.Gray)
	panelY += 30

	rl.DrawText("Steps per frame", int32(panelX), int32(panelY), 14, rl.Gray)
	panelY += 18
	steps := gui.SliderBar(
		rl.Rectangle{X: panelX, Y: panelY, Width: 170, Height: 18},
		"1", "10",
		float32(v.stepsPerFrame), 1, 10,
	)
	rl.DrawText(fmt.Sprintf("%d", v.stepsPerFrame), int32(panelX+180), int32(panelY+2), 14, rl.Gray)
	v.stepsPerFrame = int(steps)
	if v.stepsPerFrame < 1 {
		v.stepsPerFrame = 1
	}
}
