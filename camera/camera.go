// Package camera maps the arena (origin-centred, +Y up) onto a screen
// (pixels or terminal cells, +Y down).
package camera

// Camera controls the viewport into the arena.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float32

	// Zoom is screen units per world unit along Y
	Zoom float32

	// Aspect stretches X relative to Y. 1 for square pixels; terminal
	// cells are roughly twice as tall as they are wide, so 2 there.
	Aspect float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// World extents the fit zoom keeps on screen
	WorldW, WorldH float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera centred on the origin that fits a world of the
// given full width and height into the viewport.
func New(viewportW, viewportH, worldW, worldH float32) *Camera {
	c := &Camera{
		Aspect:    1,
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldW:    worldW,
		WorldH:    worldH,
	}
	c.fit()
	return c
}

// NewCells creates a camera for a character grid whose cells are
// aspect times taller than wide.
func NewCells(cols, rows int, worldW, worldH, aspect float32) *Camera {
	c := &Camera{
		Aspect:    aspect,
		ViewportW: float32(cols),
		ViewportH: float32(rows),
		WorldW:    worldW,
		WorldH:    worldH,
	}
	c.fit()
	return c
}

// fit sets MinZoom to the largest zoom that shows the whole world and
// resets the view to it.
func (c *Camera) fit() {
	zx := c.ViewportW / (c.WorldW * c.Aspect)
	zy := c.ViewportH / c.WorldH
	c.MinZoom = zx
	if zy < c.MinZoom {
		c.MinZoom = zy
	}
	c.MaxZoom = c.MinZoom * 4
	c.Reset()
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom*c.Aspect
	sy = c.ViewportH/2 - (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = c.X + (sx-c.ViewportW/2)/(c.Zoom*c.Aspect)
	wy = c.Y - (sy-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// WorldToCell converts world coordinates to an integer cell.
func (c *Camera) WorldToCell(wx, wy float32) (col, row int) {
	sx, sy := c.WorldToScreen(wx, wy)
	return floor(sx), floor(sy)
}

// ScaleX converts a horizontal world length to screen units.
func (c *Camera) ScaleX(l float32) float32 { return l * c.Zoom * c.Aspect }

// ScaleY converts a vertical world length to screen units.
func (c *Camera) ScaleY(l float32) float32 { return l * c.Zoom }

// IsVisible returns true if a circle at (wx, wy) with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	minX, minY, maxX, maxY := c.VisibleWorldBounds()
	return wx+radius >= minX && wx-radius <= maxX &&
		wy+radius >= minY && wy-radius <= maxY
}

// Resize updates viewport dimensions and refits the world.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.fit()
}

// Pan moves the camera by the given delta in screen units.
func (c *Camera) Pan(dx, dy float32) {
	c.X += dx / (c.Zoom * c.Aspect)
	c.Y -= dy / c.Zoom
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset centres the camera on the origin at the fit zoom.
func (c *Camera) Reset() {
	c.X = 0
	c.Y = 0
	c.Zoom = c.MinZoom
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	halfW := c.ViewportW / (2 * c.Zoom * c.Aspect)
	halfH := c.ViewportH / (2 * c.Zoom)

	minX = c.X - halfW
	maxX = c.X + halfW
	minY = c.Y - halfH
	maxY = c.Y + halfH
	return
}

func floor(x float32) int {
	i := int(x)
	if x < 0 && float32(i) != x {
		i--
	}
	return i
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
