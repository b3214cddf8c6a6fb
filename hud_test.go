package battleground

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestHUDStatus(t *testing.T) {
	h := NewHUD(nil)
	if got := h.status(); got != "no camera" {
		t.Errorf("status = %q, want %q", got, "no camera")
	}
	cam := NewCamera(Rect{Width: 100, Height: 100})
	cam.Position = Vec2{X: 12.34, Y: -5}
	cam.Zoom = Vec2{X: 1.5, Y: 2.25}
	h.Attach(cam)
	if got, want := h.status(), "pos 12.3,-5.0  zoom 1.50,2.25"; got != want {
		t.Errorf("status = %q, want %q", got, want)
	}
}

func TestHUDRender(t *testing.T) {
	h := NewHUD(NewCamera(Rect{Width: 200, Height: 100}))
	if err := h.Render(nil, Rect{Width: 200, Height: 100}); !errors.Is(err, ErrNoRenderTarget) {
		t.Errorf("Render(nil) = %v, want ErrNoRenderTarget", err)
	}
	target := ebiten.NewImage(200, 100)
	// Without a loaded font only the frame and crosshair are drawn.
	if err := h.Render(target, Rect{Width: 200, Height: 100}); err != nil {
		t.Fatal(err)
	}
	if err := LoadView(h, nil); err != nil {
		t.Fatal(err)
	}
	if h.face == nil {
		t.Fatal("Load did not build a font face")
	}
	if err := h.Render(target, Rect{Width: 200, Height: 100}); err != nil {
		t.Fatal(err)
	}
	if err := h.Render(target, Rect{}); err != nil {
		t.Errorf("empty viewport: %v", err)
	}
}
