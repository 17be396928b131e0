package camera

import (
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	cam := New(1024, 768, 32, 32)

	// Should be centered on world
	if cam.X != 16 || cam.Y != 16 {
		t.Errorf("expected camera at (16, 16), got (%f, %f)", cam.X, cam.Y)
	}
	// Fit zoom is limited by the short screen axis: 768/32 * 0.9
	want := float32(768.0 / 32.0 * 0.9)
	if math.Abs(float64(cam.Zoom-want)) > 0.01 {
		t.Errorf("expected zoom %f, got %f", want, cam.Zoom)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(1024, 768, 32, 32)

	// Camera center should map to screen center
	sx, sy := cam.WorldToScreen(16, 16)
	if math.Abs(float64(sx-512)) > 0.01 || math.Abs(float64(sy-384)) > 0.01 {
		t.Errorf("expected screen center (512, 384), got (%f, %f)", sx, sy)
	}
}

func TestYFlip(t *testing.T) {
	cam := New(1024, 768, 32, 32)

	// A point above the camera center in world space (y up) must land
	// above the screen center (smaller y, since screen y points down).
	_, sy := cam.WorldToScreen(16, 24)
	if sy >= 384 {
		t.Errorf("world point above center mapped to screen y=%f, want < 384", sy)
	}
	_, sy = cam.WorldToScreen(16, 8)
	if sy <= 384 {
		t.Errorf("world point below center mapped to screen y=%f, want > 384", sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1024, 768, 32, 32)

	testCases := []struct{ sx, sy float32 }{
		{512, 384}, // center
		{100, 100}, // top-left
		{900, 700}, // near bottom-right
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if math.Abs(float64(sx-tc.sx)) > 0.01 || math.Abs(float64(sy-tc.sy)) > 0.01 {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestPanClamps(t *testing.T) {
	cam := New(1024, 768, 32, 32)

	// Pan far past the left edge; center must stop at the world bound
	cam.Pan(-1e6, 0)
	if cam.X != 0 {
		t.Errorf("expected camera clamped at X=0, got %f", cam.X)
	}

	// Pan down in screen space moves the center down in world space
	cam.Pan(0, 1e6)
	if cam.Y != 0 {
		t.Errorf("expected camera clamped at Y=0, got %f", cam.Y)
	}
}

func TestZoomClamped(t *testing.T) {
	cam := New(1024, 768, 32, 32)

	cam.SetZoom(1e9)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("expected zoom clamped to max %f, got %f", cam.MaxZoom, cam.Zoom)
	}
	cam.SetZoom(0)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom clamped to min %f, got %f", cam.MinZoom, cam.Zoom)
	}
}

func TestReset(t *testing.T) {
	cam := New(1024, 768, 32, 32)
	initial := *cam

	cam.Pan(200, -100)
	cam.ZoomBy(2)
	cam.Reset()

	if cam.X != initial.X || cam.Y != initial.Y {
		t.Errorf("reset position = (%f, %f), want (%f, %f)", cam.X, cam.Y, initial.X, initial.Y)
	}
	if math.Abs(float64(cam.Zoom-initial.Zoom)) > 0.001 {
		t.Errorf("reset zoom = %f, want %f", cam.Zoom, initial.Zoom)
	}
}
