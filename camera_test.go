package battleground

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestCameraDefaults(t *testing.T) {
	cam := NewCamera(Rect{Width: 800, Height: 600})
	if cam.Zoom != (Vec2{X: 1, Y: 1}) {
		t.Errorf("Zoom = %v, want (1,1)", cam.Zoom)
	}
	if cam.Position != (Vec2{}) {
		t.Errorf("Position = %v, want origin", cam.Position)
	}
	if cam.BoundsEnabled {
		t.Error("BoundsEnabled = true, want false")
	}
}

func TestCameraIdentityViewMatrix(t *testing.T) {
	cam := NewCamera(Rect{Width: 800, Height: 600})
	vm := cam.ViewMatrix()
	if vm != identityTransform {
		t.Errorf("ViewMatrix = %v, want identity", vm)
	}
}

func TestCameraTranslation(t *testing.T) {
	cam := NewCamera(Rect{Width: 800, Height: 600})
	cam.Position = Vec2{X: 100, Y: 50}
	sx, sy := cam.WorldToScreen(100, 50)
	if !approxEqual(sx, 0, epsilon) || !approxEqual(sy, 0, epsilon) {
		t.Errorf("WorldToScreen(100,50) with cam at (100,50) = (%f,%f), want (0,0)", sx, sy)
	}
}

func TestCameraViewportOffset(t *testing.T) {
	cam := NewCamera(Rect{X: 20, Y: 10, Width: 800, Height: 600})
	sx, sy := cam.WorldToScreen(0, 0)
	if !approxEqual(sx, 20, epsilon) || !approxEqual(sy, 10, epsilon) {
		t.Errorf("WorldToScreen(0,0) = (%f,%f), want (20,10)", sx, sy)
	}
}

func TestCameraZoom(t *testing.T) {
	cam := NewCamera(Rect{Width: 800, Height: 600})
	cam.Zoom = Vec2{X: 2, Y: 3}

	sx1, sy1 := cam.WorldToScreen(1, 1)
	sx0, sy0 := cam.WorldToScreen(0, 0)
	if !approxEqual(sx1-sx0, 2, epsilon) {
		t.Errorf("zoom x: 1 world unit = %f screen pixels, want 2", sx1-sx0)
	}
	if !approxEqual(sy1-sy0, 3, epsilon) {
		t.Errorf("zoom y: 1 world unit = %f screen pixels, want 3", sy1-sy0)
	}
}

func TestCameraCacheInvalidatesOnChange(t *testing.T) {
	cam := NewCamera(Rect{Width: 800, Height: 600})
	_ = cam.ViewMatrix()
	cam.Position.X = 10
	sx, _ := cam.WorldToScreen(10, 0)
	if !approxEqual(sx, 0, epsilon) {
		t.Errorf("after move: WorldToScreen(10,0).x = %f, want 0", sx)
	}
	cam.Zoom.X = 2
	sx, _ = cam.WorldToScreen(11, 0)
	if !approxEqual(sx, 2, epsilon) {
		t.Errorf("after zoom: WorldToScreen(11,0).x = %f, want 2", sx)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := NewCamera(Rect{X: 5, Y: 7, Width: 800, Height: 600})
	cam.Position = Vec2{X: 123, Y: -45}
	cam.Zoom = Vec2{X: 1.5, Y: 2.25}

	points := [][2]float64{{0, 0}, {100, 200}, {-50, 75}, {999, -999}}
	for _, p := range points {
		sx, sy := cam.WorldToScreen(p[0], p[1])
		wx, wy := cam.ScreenToWorld(sx, sy)
		if !approxEqual(wx, p[0], 1e-6) || !approxEqual(wy, p[1], 1e-6) {
			t.Errorf("roundtrip (%f,%f) -> (%f,%f)", p[0], p[1], wx, wy)
		}
	}
}

func TestVisibleBounds_Zoom1(t *testing.T) {
	cam := NewCamera(Rect{Width: 800, Height: 600})
	cam.Position = Vec2{X: 400, Y: 300}
	want := Rect{X: 400, Y: 300, Width: 800, Height: 600}
	if got := cam.VisibleBounds(); got != want {
		t.Errorf("VisibleBounds = %v, want %v", got, want)
	}
}

func TestVisibleBounds_Zoom2(t *testing.T) {
	cam := NewCamera(Rect{Width: 800, Height: 600})
	cam.Zoom = Vec2{X: 2, Y: 2}
	b := cam.VisibleBounds()
	if !approxEqual(b.Width, 400, epsilon) || !approxEqual(b.Height, 300, epsilon) {
		t.Errorf("VisibleBounds = %v, want 400x300", b)
	}
}

func TestCameraBounds(t *testing.T) {
	cam := NewCamera(Rect{Width: 800, Height: 600})
	cam.SetBounds(Rect{Width: 2000, Height: 1500})

	cam.Position = Vec2{X: -100, Y: -100}
	cam.ClampToBounds()
	if cam.Position != (Vec2{}) {
		t.Errorf("clamped low = %v, want (0,0)", cam.Position)
	}

	cam.Position = Vec2{X: 5000, Y: 5000}
	cam.ClampToBounds()
	if cam.Position != (Vec2{X: 1200, Y: 900}) {
		t.Errorf("clamped high = %v, want (1200,900)", cam.Position)
	}
}

func TestCameraBoundsZoomed(t *testing.T) {
	cam := NewCamera(Rect{Width: 800, Height: 600})
	cam.SetBounds(Rect{Width: 2000, Height: 1500})
	cam.Zoom = Vec2{X: 2, Y: 2}
	cam.Position = Vec2{X: 5000, Y: 5000}
	cam.ClampToBounds()
	if cam.Position != (Vec2{X: 1600, Y: 1200}) {
		t.Errorf("clamped = %v, want (1600,1200)", cam.Position)
	}
}

func TestCameraClearBounds(t *testing.T) {
	cam := NewCamera(Rect{Width: 800, Height: 600})
	cam.SetBounds(Rect{Width: 1000, Height: 1000})
	cam.ClearBounds()
	cam.Position = Vec2{X: -500, Y: 9000}
	cam.ClampToBounds()
	if cam.Position != (Vec2{X: -500, Y: 9000}) {
		t.Errorf("Position = %v, want unclamped", cam.Position)
	}
}

func TestCameraBoundsSmallWorld(t *testing.T) {
	cam := NewCamera(Rect{Width: 800, Height: 600})
	cam.SetBounds(Rect{Width: 400, Height: 300})
	cam.Position = Vec2{X: 77, Y: 77}
	cam.ClampToBounds()
	// Smaller than the view: centred.
	if cam.Position != (Vec2{X: -200, Y: -150}) {
		t.Errorf("Position = %v, want (-200,-150)", cam.Position)
	}
}

func TestCameraImplementsCameraView(t *testing.T) {
	var _ CameraView = NewCamera(Rect{})
}
