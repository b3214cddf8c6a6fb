package battleground

import (
	"path/filepath"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"after-drag", "after-drag"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"back\\slash", "back_slash"},
		{"special!@#$%", "special_____"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"MixedCase123", "MixedCase123"},
	}
	for _, tt := range tests {
		got := sanitizeLabel(tt.in)
		if got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotQueueAppend(t *testing.T) {
	g := NewGame(320, 240, nil)
	g.Screenshot("a")
	g.Screenshot("b")
	g.Screenshot("c")
	if len(g.screenshots) != 3 {
		t.Fatalf("queue len = %d, want 3", len(g.screenshots))
	}
	if g.screenshots[0] != "a" || g.screenshots[1] != "b" || g.screenshots[2] != "c" {
		t.Errorf("queue = %v, want [a b c]", g.screenshots)
	}
}

func TestScreenshotDirDefault(t *testing.T) {
	g := NewGame(320, 240, nil)
	if g.ScreenshotDir != "screenshots" {
		t.Errorf("ScreenshotDir = %q, want %q", g.ScreenshotDir, "screenshots")
	}
}

func TestScreenshotPath(t *testing.T) {
	got := screenshotPath("out", "20260101_120000", "after zoom")
	want := filepath.Join("out", "20260101_120000_after_zoom.png")
	if got != want {
		t.Errorf("screenshotPath = %q, want %q", got, want)
	}
}

func TestUnpremultiply(t *testing.T) {
	pixels := []byte{
		128, 64, 0, 128, // half-transparent
		10, 20, 30, 255, // opaque, unchanged
		0, 0, 0, 0, // fully transparent, unchanged
	}
	img := unpremultiply(pixels, 3, 1)
	want := []byte{255, 127, 0, 128, 10, 20, 30, 255, 0, 0, 0, 0}
	for i := range want {
		if img.Pix[i] != want[i] {
			t.Fatalf("Pix = %v, want %v", img.Pix, want)
		}
	}
}
