package battleground

import "fmt"

// DefaultZoomStep is the zoom change applied per wheel notch.
const DefaultZoomStep = 0.04

// dragState is either dragIdle or dragActive.
type dragState interface {
	isDragState()
}

type dragIdle struct{}

// dragActive holds the last pointer position seen during a drag gesture.
type dragActive struct {
	anchor Vec2
}

func (dragIdle) isDragState()   {}
func (dragActive) isDragState() {}

// CameraController pans the camera while the pan button is held, zooms it on
// wheel notches, and renders the map, background, and overlay through it.
// It implements every handler interface, so Dispatcher.Bind wires it
// completely.
type CameraController struct {
	camera    *Camera
	drag      dragState
	zoomStep  float64
	panButton MouseButton

	frame      Frame
	tiles      MapRenderer
	background BackgroundLayer
	overlay    OverlayLayer
}

// ControllerOption configures a CameraController.
type ControllerOption func(*CameraController)

// WithZoomStep overrides DefaultZoomStep. Non-positive steps are ignored.
func WithZoomStep(step float64) ControllerOption {
	return func(c *CameraController) {
		if step > 0 {
			c.zoomStep = step
		}
	}
}

// WithPanButton selects the button that starts a drag. Default left.
func WithPanButton(b MouseButton) ControllerOption {
	return func(c *CameraController) {
		c.panButton = b
	}
}

// WithBounds clamps panning to a world-space rectangle.
func WithBounds(bounds Rect) ControllerOption {
	return func(c *CameraController) {
		c.camera.SetBounds(bounds)
	}
}

// NewCameraController creates a controller rendering into frame. Any of the
// layers may be nil, in which case it is skipped.
func NewCameraController(frame Frame, tiles MapRenderer, background BackgroundLayer, overlay OverlayLayer, opts ...ControllerOption) *CameraController {
	var vp Rect
	if frame != nil {
		vp = frame.Viewport()
	}
	c := &CameraController{
		camera:     NewCamera(vp),
		drag:       dragIdle{},
		zoomStep:   DefaultZoomStep,
		panButton:  MouseButtonLeft,
		frame:      frame,
		tiles:      tiles,
		background: background,
		overlay:    overlay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Camera returns a read-only view of the controlled camera.
func (c *CameraController) Camera() CameraView {
	return c.camera
}

// ZoomStep returns the zoom change applied per wheel notch.
func (c *CameraController) ZoomStep() float64 {
	return c.zoomStep
}

// SetZoomStep changes the zoom step. Non-positive steps are ignored.
func (c *CameraController) SetZoomStep(step float64) {
	if step > 0 {
		c.zoomStep = step
	}
}

// SetPanButton changes the drag button. An active drag is cancelled.
func (c *CameraController) SetPanButton(b MouseButton) {
	if b != c.panButton {
		c.panButton = b
		c.drag = dragIdle{}
	}
}

// SetBounds clamps panning to a world-space rectangle.
func (c *CameraController) SetBounds(bounds Rect) {
	c.camera.SetBounds(bounds)
}

// ClearBounds lifts the panning limits.
func (c *CameraController) ClearBounds() {
	c.camera.ClearBounds()
}

// MoveTo places the camera at a world position, applying bounds clamping.
func (c *CameraController) MoveTo(x, y float64) {
	c.camera.Position = Vec2{X: x, Y: y}
	c.camera.ClampToBounds()
}

// Dragging reports whether a drag gesture is active and its current anchor.
func (c *CameraController) Dragging() (anchor Vec2, ok bool) {
	if d, ok := c.drag.(dragActive); ok {
		return d.anchor, true
	}
	return Vec2{}, false
}

// OnUpdate advances the background layer.
func (c *CameraController) OnUpdate(dt float64) {
	if c.background != nil {
		c.background.Update(dt)
	}
}

// OnButtonDown starts a drag gesture anchored at the press position.
func (c *CameraController) OnButtonDown(x, y float64, button MouseButton) {
	if button != c.panButton {
		return
	}
	c.drag = dragActive{anchor: Vec2{X: x, Y: y}}
}

// OnButtonUp ends the drag gesture.
func (c *CameraController) OnButtonUp(x, y float64, button MouseButton) {
	if button != c.panButton {
		return
	}
	c.drag = dragIdle{}
}

// OnPointerMove pans the camera by the pointer delta since the last anchor.
// Motion while idle is ignored.
func (c *CameraController) OnPointerMove(x, y float64) {
	switch d := c.drag.(type) {
	case dragIdle:
		return
	case dragActive:
		delta := Vec2{X: x, Y: y}.Sub(d.anchor)
		c.camera.Position.X -= delta.X
		c.camera.Position.Y -= delta.Y
		c.camera.ClampToBounds()
		c.drag = dragActive{anchor: Vec2{X: x, Y: y}}
	}
}

// OnWheel zooms in on +1 and out on -1, never letting an axis drop below
// MinZoom. Other values are ignored.
func (c *CameraController) OnWheel(y int) {
	switch y {
	case 1:
		c.camera.Zoom.X += c.zoomStep
		c.camera.Zoom.Y += c.zoomStep
	case -1:
		c.camera.Zoom.X = zoomOut(c.camera.Zoom.X, c.zoomStep)
		c.camera.Zoom.Y = zoomOut(c.camera.Zoom.Y, c.zoomStep)
	default:
		return
	}
	c.camera.ClampToBounds()
}

func zoomOut(axis, step float64) float64 {
	if axis-step <= MinZoom {
		return MinZoom
	}
	return axis - step
}

// OnRender draws the map, then the background, then the overlay. The first
// layer error aborts the frame and is returned.
func (c *CameraController) OnRender(dt float64) error {
	if c.frame == nil {
		return ErrNoRenderTarget
	}
	target := c.frame.Target()
	if target == nil {
		return ErrNoRenderTarget
	}
	vp := c.frame.Viewport()
	if vp != c.camera.Viewport {
		c.camera.Viewport = vp
		c.camera.ClampToBounds()
	}

	if c.tiles != nil {
		if err := c.tiles.Render(target, c.camera); err != nil {
			return fmt.Errorf("render map: %w", err)
		}
	}
	if c.background != nil {
		if err := c.background.Render(target, vp); err != nil {
			return fmt.Errorf("render background: %w", err)
		}
	}
	if c.overlay != nil {
		if err := c.overlay.Render(target, vp); err != nil {
			return fmt.Errorf("render overlay: %w", err)
		}
	}
	return nil
}
