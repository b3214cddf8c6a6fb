package battleground

import "testing"

// fakePointer is a scripted pointerSource for one frame at a time.
type fakePointer struct {
	x, y     int
	pressed  map[MouseButton]bool
	released map[MouseButton]bool
	wheel    float64
}

func (f *fakePointer) CursorPosition() (int, int)            { return f.x, f.y }
func (f *fakePointer) ButtonJustPressed(b MouseButton) bool  { return f.pressed[b] }
func (f *fakePointer) ButtonJustReleased(b MouseButton) bool { return f.released[b] }
func (f *fakePointer) Wheel() (float64, float64)             { return 0, f.wheel }

// next clears the per-frame edges.
func (f *fakePointer) next() {
	f.pressed = map[MouseButton]bool{}
	f.released = map[MouseButton]bool{}
	f.wheel = 0
}

func newFakePointer() *fakePointer {
	f := &fakePointer{}
	f.next()
	return f
}

func keysOf(evs []Event) []Key {
	keys := make([]Key, len(evs))
	for i, ev := range evs {
		keys[i] = ev.Key
	}
	return keys
}

func TestPollFirstFrameEmitsNoMove(t *testing.T) {
	src := newFakePointer()
	src.x, src.y = 50, 60
	p := newInputPoller(src)
	var q EventQueue
	p.poll(&q)
	if q.Len() != 0 {
		t.Errorf("first poll queued %d events, want 0", q.Len())
	}
}

func TestPollMoveOnlyWhenChanged(t *testing.T) {
	src := newFakePointer()
	p := newInputPoller(src)
	var q EventQueue
	p.poll(&q)

	p.poll(&q)
	if q.Len() != 0 {
		t.Errorf("stationary cursor queued %d events", q.Len())
	}

	src.x, src.y = 10, 20
	p.poll(&q)
	evs := q.Drain()
	if len(evs) != 1 || evs[0].Key != KeyPointerMove || evs[0].X != 10 || evs[0].Y != 20 {
		t.Errorf("events = %+v, want one move to (10,20)", evs)
	}
}

func TestPollOrder(t *testing.T) {
	src := newFakePointer()
	p := newInputPoller(src)
	var q EventQueue
	p.poll(&q)

	src.x, src.y = 5, 5
	src.pressed[MouseButtonLeft] = true
	src.released[MouseButtonRight] = true
	src.wheel = 1
	p.poll(&q)

	evs := q.Drain()
	want := []Key{KeyButton, KeyPointerMove, KeyButton, KeyWheel}
	got := keysOf(evs)
	if len(got) != len(want) {
		t.Fatalf("keys = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("keys = %v, want %v", got, want)
		}
	}
	if evs[0].Transition != TransitionDown || evs[0].Button != MouseButtonLeft {
		t.Errorf("press = %+v", evs[0])
	}
	if evs[2].Transition != TransitionUp || evs[2].Button != MouseButtonRight {
		t.Errorf("release = %+v", evs[2])
	}
}

func TestWheelTicks(t *testing.T) {
	tests := []struct {
		name    string
		offsets []float64
		want    []int
	}{
		{"notch up", []float64{1}, []int{1}},
		{"notch down", []float64{-1}, []int{-1}},
		{"two notches", []float64{2}, []int{1, 1}},
		{"fractional carry", []float64{0.4, 0.4, 0.4}, []int{1}},
		{"direction change drops carry", []float64{0.6, -0.6, -0.6}, []int{-1}},
		{"capped", []float64{50}, []int{1, 1, 1, 1, 1, 1, 1, 1}},
		{"zero", []float64{0}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newInputPoller(newFakePointer())
			var got []int
			for _, off := range tt.offsets {
				got = append(got, p.wheelTicks(off)...)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ticks = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("ticks = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestWheelTicksCapDiscardsRemainder(t *testing.T) {
	p := newInputPoller(newFakePointer())
	p.wheelTicks(50)
	if got := p.wheelTicks(0.5); len(got) != 0 {
		t.Errorf("ticks after cap = %v, want none", got)
	}
}

func TestMouseButtonParse(t *testing.T) {
	for _, s := range []string{"left", "Right", "MIDDLE"} {
		b, err := ParseMouseButton(s)
		if err != nil {
			t.Errorf("ParseMouseButton(%q): %v", s, err)
			continue
		}
		if b.String() == "" {
			t.Errorf("String() empty for %q", s)
		}
	}
	if _, err := ParseMouseButton("thumb"); err == nil {
		t.Error("ParseMouseButton(thumb) succeeded")
	}
	if MouseButton(9).String() != "MouseButton(9)" {
		t.Errorf("String = %q", MouseButton(9).String())
	}
}
