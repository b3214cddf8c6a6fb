package battleground

import (
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// NoiseParams holds configurable parameters for fractal value noise.
type NoiseParams struct {
	Octaves     int
	Frequency   float64
	Amplitude   float64
	Persistence float64
	Lacunarity  float64
}

// DefaultNoiseParams returns a soft four-octave configuration.
func DefaultNoiseParams() NoiseParams {
	return NoiseParams{
		Octaves:     4,
		Frequency:   0.05,
		Amplitude:   1,
		Persistence: 0.5,
		Lacunarity:  2,
	}
}

// ValueNoise is deterministic 2D fractal value noise. The same seed and
// params always produce the same field.
type ValueNoise struct {
	params NoiseParams
	perm   [512]uint8
	values [256]float64
}

// NewValueNoise builds a noise field from seed. Non-positive octaves are
// treated as one.
func NewValueNoise(seed uint64, params NoiseParams) *ValueNoise {
	if params.Octaves < 1 {
		params.Octaves = 1
	}
	if params.Amplitude == 0 {
		params.Amplitude = 1
	}
	n := &ValueNoise{params: params}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for i := range n.values {
		n.values[i] = rng.Float64()
	}
	p := rng.Perm(256)
	for i := 0; i < 256; i++ {
		n.perm[i] = uint8(p[i])
		n.perm[i+256] = uint8(p[i])
	}
	return n
}

// Params returns the params the field was built with.
func (n *ValueNoise) Params() NoiseParams {
	return n.params
}

func (n *ValueNoise) lattice(ix, iy int) float64 {
	return n.values[n.perm[int(n.perm[ix&255])+iy&255]]
}

func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

func (n *ValueNoise) single(x, y float64) float64 {
	fx, fy := math.Floor(x), math.Floor(y)
	ix, iy := int(fx), int(fy)
	tx := smoothstep(x - fx)
	ty := smoothstep(y - fy)

	v00 := n.lattice(ix, iy)
	v10 := n.lattice(ix+1, iy)
	v01 := n.lattice(ix, iy+1)
	v11 := n.lattice(ix+1, iy+1)

	top := v00 + (v10-v00)*tx
	bottom := v01 + (v11-v01)*tx
	return top + (bottom-top)*ty
}

// Sample returns the fractal noise value at (x, y), normalised to [0, 1].
func (n *ValueNoise) Sample(x, y float64) float64 {
	freq := n.params.Frequency
	amp := n.params.Amplitude
	var sum, norm float64
	for o := 0; o < n.params.Octaves; o++ {
		sum += n.single(x*freq, y*freq) * amp
		norm += amp
		freq *= n.params.Lacunarity
		amp *= n.params.Persistence
	}
	if norm == 0 {
		return 0
	}
	return min(max(sum/norm, 0), 1)
}

// noiseTextureSize is the edge length of the tiled noise texture.
const noiseTextureSize = 128

// pulsePeriod is the duration of one half of the opacity pulse, in seconds.
const pulsePeriod = 2.5

// NoiseLayer is a translucent, slowly drifting noise texture drawn over the
// map. Its opacity pulses between 60% and 100% of Opacity.
type NoiseLayer struct {
	Opacity float64
	DriftX  float64
	DriftY  float64

	noise   *ValueNoise
	texture *ebiten.Image

	offsetX, offsetY float64
	alpha            float64
	pulse            *gween.Tween
	rising           bool
}

// NewNoiseLayer creates a layer sampling n.
func NewNoiseLayer(n *ValueNoise, opacity, driftX, driftY float64) *NoiseLayer {
	l := &NoiseLayer{
		Opacity: opacity,
		DriftX:  driftX,
		DriftY:  driftY,
		noise:   n,
	}
	l.alpha = l.low()
	l.startPulse()
	return l
}

func (l *NoiseLayer) low() float64 { return l.Opacity * 0.6 }

func (l *NoiseLayer) startPulse() {
	from, to := l.Opacity, l.low()
	if !l.rising {
		from, to = to, l.Opacity
	}
	l.rising = !l.rising
	l.pulse = gween.New(float32(from), float32(to), pulsePeriod, ease.InOutSine)
}

// Offset returns the accumulated drift.
func (l *NoiseLayer) Offset() (x, y float64) {
	return l.offsetX, l.offsetY
}

// Alpha returns the current opacity.
func (l *NoiseLayer) Alpha() float64 {
	return l.alpha
}

// Update implements BackgroundLayer.
func (l *NoiseLayer) Update(dt float64) {
	if dt <= 0 {
		return
	}
	l.offsetX = math.Mod(l.offsetX+l.DriftX*dt, noiseTextureSize)
	l.offsetY = math.Mod(l.offsetY+l.DriftY*dt, noiseTextureSize)

	v, done := l.pulse.Update(float32(dt))
	l.alpha = float64(v)
	if done {
		l.startPulse()
	}
}

func (l *NoiseLayer) ensureTexture() {
	if l.texture != nil {
		return
	}
	pix := make([]byte, 4*noiseTextureSize*noiseTextureSize)
	for y := 0; y < noiseTextureSize; y++ {
		for x := 0; x < noiseTextureSize; x++ {
			v := uint8(l.noise.Sample(float64(x), float64(y)) * 255)
			i := 4 * (y*noiseTextureSize + x)
			pix[i], pix[i+1], pix[i+2], pix[i+3] = v, v, v, 255
		}
	}
	l.texture = ebiten.NewImage(noiseTextureSize, noiseTextureSize)
	l.texture.WritePixels(pix)
}

// Render implements BackgroundLayer. The texture is tiled in screen space so
// it stays put while the camera pans.
func (l *NoiseLayer) Render(target *ebiten.Image, viewport Rect) error {
	if target == nil {
		return ErrNoRenderTarget
	}
	if l.alpha <= 0 || viewport.Empty() {
		return nil
	}
	l.ensureTexture()

	var op ebiten.DrawImageOptions
	op.ColorScale.ScaleAlpha(float32(l.alpha))
	op.Blend = ebiten.BlendSourceOver

	startX := viewport.X - positiveMod(l.offsetX, noiseTextureSize)
	startY := viewport.Y - positiveMod(l.offsetY, noiseTextureSize)
	for y := startY; y < viewport.Y+viewport.Height; y += noiseTextureSize {
		for x := startX; x < viewport.X+viewport.Width; x += noiseTextureSize {
			op.GeoM.Reset()
			op.GeoM.Translate(x, y)
			target.DrawImage(l.texture, &op)
		}
	}
	return nil
}

func positiveMod(v, m float64) float64 {
	r := math.Mod(v, m)
	if r < 0 {
		r += m
	}
	return r
}
