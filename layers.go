package battleground

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrNoRenderTarget is returned by render handlers when the frame has no
// target image to draw into.
var ErrNoRenderTarget = errors.New("battleground: render target unavailable")

// Frame is the engine-side surface a render handler draws into.
type Frame interface {
	// Target returns the image for the current frame, or nil outside Draw.
	Target() *ebiten.Image
	// Viewport returns the screen-space rectangle of the current frame.
	Viewport() Rect
}

// MapRenderer draws the tile map as seen by a camera.
type MapRenderer interface {
	Render(target *ebiten.Image, cam CameraView) error
}

// BackgroundLayer is a time-animated layer drawn in screen space.
type BackgroundLayer interface {
	Update(dt float64)
	Render(target *ebiten.Image, viewport Rect) error
}

// OverlayLayer is drawn last, on top of everything else.
type OverlayLayer interface {
	Render(target *ebiten.Image, viewport Rect) error
}
