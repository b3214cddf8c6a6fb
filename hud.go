package battleground

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gomono"
)

// HUD draws the viewport frame, a centre crosshair and a status line with
// the camera pose. It is the overlay pass of the camera controller.
type HUD struct {
	BorderColor    color.Color
	CrosshairColor color.Color
	TextColor      color.Color
	FontSize       float64

	camera CameraView
	face   *text.GoTextFace
}

// NewHUD creates an overlay that reports cam's pose. cam may be set later
// with Attach.
func NewHUD(cam CameraView) *HUD {
	return &HUD{
		BorderColor:    color.RGBA{R: 0x30, G: 0x30, B: 0x38, A: 0xff},
		CrosshairColor: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x80},
		TextColor:      color.White,
		FontSize:       12,
		camera:         cam,
	}
}

// Attach points the HUD at cam.
func (h *HUD) Attach(cam CameraView) {
	h.camera = cam
}

// Load implements Loader. The font is embedded, so res is unused.
func (h *HUD) Load(*Resources) error {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return fmt.Errorf("load hud font: %w", err)
	}
	h.face = &text.GoTextFace{Source: src, Size: h.FontSize}
	return nil
}

// status formats the camera pose line.
func (h *HUD) status() string {
	if h.camera == nil {
		return "no camera"
	}
	pos, zoom := h.camera.Pose()
	return fmt.Sprintf("pos %.1f,%.1f  zoom %.2f,%.2f", pos.X, pos.Y, zoom.X, zoom.Y)
}

// Render implements OverlayLayer.
func (h *HUD) Render(target *ebiten.Image, viewport Rect) error {
	if target == nil {
		return ErrNoRenderTarget
	}
	if viewport.Empty() {
		return nil
	}
	x, y := float32(viewport.X), float32(viewport.Y)
	w, hgt := float32(viewport.Width), float32(viewport.Height)

	vector.StrokeRect(target, x+1, y+1, w-2, hgt-2, 2, h.BorderColor, false)

	cx, cy := x+w/2, y+hgt/2
	vector.StrokeLine(target, cx-6, cy, cx+6, cy, 1, h.CrosshairColor, false)
	vector.StrokeLine(target, cx, cy-6, cx, cy+6, 1, h.CrosshairColor, false)

	if h.face == nil {
		return nil
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(viewport.X+8, viewport.Y+viewport.Height-h.FontSize-8)
	op.ColorScale.ScaleWithColor(h.TextColor)
	text.Draw(target, h.status(), h.face, op)
	return nil
}
