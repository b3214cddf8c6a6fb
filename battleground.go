package battleground

import (
	"fmt"
	"strings"
)

// Vec2 is a 2D vector used for positions, zoom factors, and pointer coordinates.
type Vec2 struct {
	X, Y float64
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Key identifies a phase or input event that handlers can be bound to.
type Key uint8

const (
	KeyUpdate      Key = iota // once per simulated frame, carries Delta
	KeyRender                 // once per drawn frame, carries Delta
	KeyPointerMove            // pointer moved, carries X, Y
	KeyWheel                  // wheel notch, carries WheelY
	KeyButton                 // button transition, carries Transition, X, Y, Button

	keyCount
)

var keyNames = [keyCount]string{
	KeyUpdate:      "update",
	KeyRender:      "render",
	KeyPointerMove: "pointer-move",
	KeyWheel:       "wheel",
	KeyButton:      "button",
}

// Valid reports whether k is a key the dispatcher recognises.
func (k Key) Valid() bool {
	return k < keyCount
}

// IsPhase reports whether k is a recurring frame phase rather than an input event.
func (k Key) IsPhase() bool {
	return k == KeyUpdate || k == KeyRender
}

func (k Key) String() string {
	if !k.Valid() {
		return "unknown"
	}
	return keyNames[k]
}

// Transition discriminates button events. Bindings on other keys use
// TransitionAny.
type Transition uint8

const (
	TransitionAny  Transition = iota // matches every event of the key
	TransitionDown                   // button pressed
	TransitionUp                     // button released
)

func (t Transition) String() string {
	switch t {
	case TransitionDown:
		return "down"
	case TransitionUp:
		return "up"
	default:
		return "any"
	}
}

// matches reports whether a binding registered for t receives an event
// carrying ev.
func (t Transition) matches(ev Transition) bool {
	return t == TransitionAny || t == ev
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

var mouseButtonNames = [...]string{"left", "right", "middle"}

func (b MouseButton) String() string {
	if int(b) < len(mouseButtonNames) {
		return mouseButtonNames[b]
	}
	return fmt.Sprintf("MouseButton(%d)", uint8(b))
}

// ParseMouseButton parses "left", "right" or "middle", case-insensitively.
func ParseMouseButton(s string) (MouseButton, error) {
	for i, name := range mouseButtonNames {
		if strings.EqualFold(s, name) {
			return MouseButton(i), nil
		}
	}
	return 0, fmt.Errorf("unknown mouse button %q", s)
}

// Event is the payload passed to every handler. Which fields are meaningful
// depends on Key.
type Event struct {
	Key Key
	// Delta is the elapsed time in seconds (KeyUpdate, KeyRender).
	Delta float64
	// X and Y are screen-space pointer coordinates (KeyPointerMove, KeyButton).
	X, Y float64
	// WheelY is the discrete wheel tick, normally -1, 0 or +1 (KeyWheel).
	WheelY int
	// Transition and Button describe a button event (KeyButton).
	Transition Transition
	Button     MouseButton
}

// UpdateEvent builds a KeyUpdate event.
func UpdateEvent(dt float64) Event { return Event{Key: KeyUpdate, Delta: dt} }

// RenderEvent builds a KeyRender event.
func RenderEvent(dt float64) Event { return Event{Key: KeyRender, Delta: dt} }

// MoveEvent builds a KeyPointerMove event.
func MoveEvent(x, y float64) Event { return Event{Key: KeyPointerMove, X: x, Y: y} }

// WheelEvent builds a KeyWheel event.
func WheelEvent(y int) Event { return Event{Key: KeyWheel, WheelY: y} }

// ButtonEvent builds a KeyButton event.
func ButtonEvent(tr Transition, x, y float64, b MouseButton) Event {
	return Event{Key: KeyButton, Transition: tr, X: x, Y: y, Button: b}
}
