package battleground

import "math"

// MinZoom is the smallest zoom factor a controller lets either axis reach.
const MinZoom = 1.0

// CameraView is the read-only view of a camera handed to renderers.
type CameraView interface {
	// Pose returns the world-space origin and per-axis zoom.
	Pose() (position, zoom Vec2)
	// ViewMatrix returns the world-to-screen affine matrix.
	ViewMatrix() [6]float64
	// VisibleBounds returns the world-space rectangle covered by the viewport.
	VisibleBounds() Rect
	WorldToScreen(wx, wy float64) (sx, sy float64)
	ScreenToWorld(sx, sy float64) (wx, wy float64)
}

// Camera is an orthographic camera. Position is the world-space point drawn
// at the viewport's top-left corner; Zoom scales world units to pixels
// independently per axis.
type Camera struct {
	Position Vec2
	Zoom     Vec2
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect

	// BoundsEnabled clamps Position so the visible area stays within Bounds.
	BoundsEnabled bool
	// Bounds is the world-space rectangle the camera is clamped to when
	// BoundsEnabled is true.
	Bounds Rect

	viewMatrix    [6]float64
	invViewMatrix [6]float64
	cached        cameraKey
	valid         bool
}

// cameraKey is the input of the cached view matrix.
type cameraKey struct {
	pos, zoom Vec2
	vp        Rect
}

// NewCamera creates a camera at the world origin with zoom 1 on both axes.
func NewCamera(viewport Rect) *Camera {
	return &Camera{
		Zoom:     Vec2{X: MinZoom, Y: MinZoom},
		Viewport: viewport,
	}
}

// Pose returns the camera position and zoom.
func (c *Camera) Pose() (position, zoom Vec2) {
	return c.Position, c.Zoom
}

// SetBounds enables bounds clamping.
func (c *Camera) SetBounds(bounds Rect) {
	c.BoundsEnabled = true
	c.Bounds = bounds
}

// ClearBounds disables bounds clamping.
func (c *Camera) ClearBounds() {
	c.BoundsEnabled = false
}

// ClampToBounds clamps Position so the visible area stays within Bounds.
// No-op if BoundsEnabled is false.
func (c *Camera) ClampToBounds() {
	if !c.BoundsEnabled {
		return
	}
	visW := c.Viewport.Width / c.Zoom.X
	visH := c.Viewport.Height / c.Zoom.Y
	c.Position.X = clampAxis(c.Position.X, c.Bounds.X, c.Bounds.Width, visW)
	c.Position.Y = clampAxis(c.Position.Y, c.Bounds.Y, c.Bounds.Height, visH)
}

// clampAxis keeps [pos, pos+visible] inside [lo, lo+extent]. When the bounds
// are smaller than the visible span the view is centred on them.
func clampAxis(pos, lo, extent, visible float64) float64 {
	maxPos := lo + extent - visible
	if maxPos < lo {
		return lo + (extent-visible)/2
	}
	return math.Max(lo, math.Min(pos, maxPos))
}

// ViewMatrix returns the world-to-screen matrix:
//
//	Translate(viewport.X, viewport.Y) * Scale(zoom) * Translate(-position)
func (c *Camera) ViewMatrix() [6]float64 {
	c.refresh()
	return c.viewMatrix
}

// refresh recomputes the cached matrices when pose or viewport changed.
func (c *Camera) refresh() {
	key := cameraKey{pos: c.Position, zoom: c.Zoom, vp: c.Viewport}
	if c.valid && key == c.cached {
		return
	}
	zx, zy := c.Zoom.X, c.Zoom.Y
	c.viewMatrix = [6]float64{
		zx, 0, 0, zy,
		c.Viewport.X - zx*c.Position.X,
		c.Viewport.Y - zy*c.Position.Y,
	}
	c.invViewMatrix = invertAffine(c.viewMatrix)
	c.cached = key
	c.valid = true
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	c.refresh()
	return transformPoint(c.viewMatrix, wx, wy)
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	c.refresh()
	return transformPoint(c.invViewMatrix, sx, sy)
}

// VisibleBounds returns the world-space rectangle covered by the viewport.
func (c *Camera) VisibleBounds() Rect {
	c.refresh()
	x0, y0 := transformPoint(c.invViewMatrix, c.Viewport.X, c.Viewport.Y)
	x1, y1 := transformPoint(c.invViewMatrix, c.Viewport.X+c.Viewport.Width, c.Viewport.Y+c.Viewport.Height)
	return Rect{
		X:      math.Min(x0, x1),
		Y:      math.Min(y0, y1),
		Width:  math.Abs(x1 - x0),
		Height: math.Abs(y1 - y0),
	}
}
