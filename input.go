package battleground

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// pointerSource is the slice of ebiten's input API the poller reads.
type pointerSource interface {
	CursorPosition() (x, y int)
	ButtonJustPressed(b MouseButton) bool
	ButtonJustReleased(b MouseButton) bool
	Wheel() (xoff, yoff float64)
}

// ebitenSource reads the live ebiten input state.
type ebitenSource struct{}

var polledButtons = [...]MouseButton{MouseButtonLeft, MouseButtonRight, MouseButtonMiddle}

func toEbitenButton(b MouseButton) ebiten.MouseButton {
	switch b {
	case MouseButtonRight:
		return ebiten.MouseButtonRight
	case MouseButtonMiddle:
		return ebiten.MouseButtonMiddle
	default:
		return ebiten.MouseButtonLeft
	}
}

func (ebitenSource) CursorPosition() (int, int) { return ebiten.CursorPosition() }

func (ebitenSource) ButtonJustPressed(b MouseButton) bool {
	return inpututil.IsMouseButtonJustPressed(toEbitenButton(b))
}

func (ebitenSource) ButtonJustReleased(b MouseButton) bool {
	return inpututil.IsMouseButtonJustReleased(toEbitenButton(b))
}

func (ebitenSource) Wheel() (float64, float64) { return ebiten.Wheel() }

// inputPoller turns per-frame input state into discrete events. Button
// transitions are queued before motion so a press and a move in the same
// frame anchor the drag at the press position first.
type inputPoller struct {
	src       pointerSource
	lastX     float64
	lastY     float64
	seen      bool
	wheelAcc  float64
	maxWheels int
}

// maxWheelTicksPerFrame bounds the notches emitted from one frame's offset.
const maxWheelTicksPerFrame = 8

func newInputPoller(src pointerSource) *inputPoller {
	if src == nil {
		src = ebitenSource{}
	}
	return &inputPoller{src: src, maxWheels: maxWheelTicksPerFrame}
}

// poll reads the source once and pushes the resulting events onto q.
func (p *inputPoller) poll(q *EventQueue) {
	mx, my := p.src.CursorPosition()
	x, y := float64(mx), float64(my)

	for _, b := range polledButtons {
		if p.src.ButtonJustPressed(b) {
			q.Push(ButtonEvent(TransitionDown, x, y, b))
		}
	}

	if !p.seen || x != p.lastX || y != p.lastY {
		if p.seen {
			q.Push(MoveEvent(x, y))
		}
		p.lastX, p.lastY = x, y
		p.seen = true
	}

	for _, b := range polledButtons {
		if p.src.ButtonJustReleased(b) {
			q.Push(ButtonEvent(TransitionUp, x, y, b))
		}
	}

	_, wy := p.src.Wheel()
	for _, tick := range p.wheelTicks(wy) {
		q.Push(WheelEvent(tick))
	}
}

// wheelTicks quantises a wheel offset into unit notches. Trackpads report
// fractional offsets; the remainder carries over to later frames. A change of
// direction discards the carried remainder.
func (p *inputPoller) wheelTicks(offset float64) []int {
	if offset == 0 {
		return nil
	}
	if (offset > 0) != (p.wheelAcc > 0) && p.wheelAcc != 0 {
		p.wheelAcc = 0
	}
	p.wheelAcc += offset

	var ticks []int
	for p.wheelAcc >= 1 && len(ticks) < p.maxWheels {
		ticks = append(ticks, 1)
		p.wheelAcc--
	}
	for p.wheelAcc <= -1 && len(ticks) < p.maxWheels {
		ticks = append(ticks, -1)
		p.wheelAcc++
	}
	if len(ticks) == p.maxWheels {
		p.wheelAcc = 0
	}
	return ticks
}
