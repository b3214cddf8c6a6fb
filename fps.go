package battleground

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefresh is how often, in seconds, the readout text is regenerated.
const fpsRefresh = 0.5

// fpsCounter draws the current FPS and TPS into a small cached image.
type fpsCounter struct {
	img     *ebiten.Image
	elapsed float64
	stale   bool
}

func newFPSCounter() *fpsCounter {
	return &fpsCounter{stale: true}
}

// tick advances the refresh timer and reports whether the text should be
// redrawn this frame.
func (c *fpsCounter) tick(dt float64) bool {
	c.elapsed += dt
	if !c.stale && c.elapsed < fpsRefresh {
		return false
	}
	c.elapsed = 0
	c.stale = false
	return true
}

func (c *fpsCounter) draw(screen *ebiten.Image, dt float64) {
	if c.img == nil {
		// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
		c.img = ebiten.NewImage(100, 32)
	}
	if c.tick(dt) {
		c.img.Clear()
		c.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(c.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	screen.DrawImage(c.img, nil)
}
