// Package camera provides a 2D camera mapping the simulation domain
// onto the screen.
package camera

// Camera controls the viewport into the simulation world. World
// coordinates are grid cells with y pointing up; screen coordinates
// are pixels with y pointing down, so the mapping flips y. The domain
// has walls, so panning clamps instead of wrapping.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float32

	// Zoom in pixels per world unit
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// World dimensions (grid size in cells)
	WorldW, WorldH float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera centered on the world, zoomed so the whole
// domain fits the viewport with a small margin.
func New(viewportW, viewportH, worldW, worldH float32) *Camera {
	fit := viewportW / worldW
	if fitY := viewportH / worldH; fitY < fit {
		fit = fitY
	}

	return &Camera{
		X:         worldW / 2,
		Y:         worldH / 2,
		Zoom:      fit * 0.9,
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldW:    worldW,
		WorldH:    worldH,
		MinZoom:   fit * 0.5,
		MaxZoom:   fit * 16,
	}
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 - (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wy = c.Y - (sy-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// Pan moves the camera by the given delta in screen pixels. The
// center stays inside the world bounds.
func (c *Camera) Pan(dx, dy float32) {
	c.X = clamp(c.X+dx/c.Zoom, 0, c.WorldW)
	c.Y = clamp(c.Y-dy/c.Zoom, 0, c.WorldH)
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Resize updates viewport dimensions and recalculates zoom constraints.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH

	fit := viewportW / c.WorldW
	if fitY := viewportH / c.WorldH; fitY < fit {
		fit = fitY
	}
	c.MinZoom = fit * 0.5
	c.MaxZoom = fit * 16
	c.Zoom = clamp(c.Zoom, c.MinZoom, c.MaxZoom)
}

// Reset returns the camera to the default position and zoom.
func (c *Camera) Reset() {
	c.X = c.WorldW / 2
	c.Y = c.WorldH / 2

	fit := c.ViewportW / c.WorldW
	if fitY := c.ViewportH / c.WorldH; fitY < fit {
		fit = fitY
	}
	c.Zoom = fit * 0.9
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
