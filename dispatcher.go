package battleground

import (
	"errors"
	"fmt"
	"log"
)

var (
	// ErrUnknownKey is returned when registering for a key (or key and
	// transition pair) the dispatcher does not recognise.
	ErrUnknownKey = errors.New("battleground: unknown event key")
	// ErrNilHandler is returned when registering a nil handler.
	ErrNilHandler = errors.New("battleground: nil handler")
	// ErrNoCapabilities is returned by Bind when the target implements none of
	// the handler interfaces.
	ErrNoCapabilities = errors.New("battleground: target declares no handlers")
)

// Handler reacts to a dispatched event. A returned error is reported as a
// Fault; it never stops the remaining handlers.
type Handler func(ev Event) error

// --- Capability interfaces discovered by Bind ---

// Updater receives the update phase once per simulated frame.
type Updater interface {
	OnUpdate(dt float64)
}

// FrameRenderer receives the render phase once per drawn frame.
type FrameRenderer interface {
	OnRender(dt float64) error
}

// PointerMover receives screen-space pointer motion.
type PointerMover interface {
	OnPointerMove(x, y float64)
}

// WheelScroller receives discrete wheel ticks.
type WheelScroller interface {
	OnWheel(y int)
}

// ButtonPresser receives button-down transitions.
type ButtonPresser interface {
	OnButtonDown(x, y float64, button MouseButton)
}

// ButtonReleaser receives button-up transitions.
type ButtonReleaser interface {
	OnButtonUp(x, y float64, button MouseButton)
}

// Fault describes a handler that failed during Dispatch.
type Fault struct {
	Key        Key
	Transition Transition
	HandlerID  uint32
	Target     any
	Err        error
	// Panicked is true when the handler panicked instead of returning an error.
	Panicked bool
}

func (f Fault) Error() string {
	kind := "failed"
	if f.Panicked {
		kind = "panicked"
	}
	if f.Key == KeyButton {
		return fmt.Sprintf("handler %d for %s/%s %s: %v", f.HandlerID, f.Key, f.Transition, kind, f.Err)
	}
	return fmt.Sprintf("handler %d for %s %s: %v", f.HandlerID, f.Key, kind, f.Err)
}

func (f Fault) Unwrap() error {
	return f.Err
}

func logFault(f Fault) {
	log.Printf("battleground: %v", f)
}

// --- Registry ---

type binding struct {
	id         uint32
	target     any
	transition Transition
	fn         Handler
	// quarantined bindings stay registered but are skipped by Dispatch.
	quarantined bool
}

// Dispatcher routes phase and input events to the handlers bound to them.
// Handlers for a key run in registration order. A Dispatcher is not safe for
// concurrent use; events produced on other goroutines go through an
// EventQueue drained on the frame goroutine.
type Dispatcher struct {
	bindings [keyCount][]binding
	nextID   uint32
	report   func(Fault)

	scratch []binding
	depth   int
	stats   dispatchStats
}

// NewDispatcher creates an empty dispatcher that logs faults with the
// standard logger.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{report: logFault}
}

// SetFaultReporter replaces the fault sink. Passing nil restores logging.
func (d *Dispatcher) SetFaultReporter(fn func(Fault)) {
	if fn == nil {
		fn = logFault
	}
	d.report = fn
}

// Handle allows removing a registered handler.
type Handle struct {
	id  uint32
	key Key
	d   *Dispatcher
}

// ID returns the binding's identifier, as reported in Fault.HandlerID.
func (h Handle) ID() uint32 {
	return h.id
}

// Remove unregisters the handler so it no longer fires. Removing twice is a
// no-op.
func (h Handle) Remove() {
	if h.d == nil {
		return
	}
	h.d.bindings[h.key] = removeBinding(h.d.bindings[h.key], h.id)
}

func removeBinding(s []binding, id uint32) []binding {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = binding{}
			return s[:len(s)-1]
		}
	}
	return s
}

// Register binds fn to key. target identifies the owner for Unbind and fault
// reports and may be nil. transition must be TransitionAny except for
// KeyButton, where TransitionDown or TransitionUp narrows the binding.
// Registering the same handler twice keeps both bindings.
func (d *Dispatcher) Register(target any, key Key, transition Transition, fn Handler) (Handle, error) {
	if !key.Valid() {
		return Handle{}, fmt.Errorf("%w: %d", ErrUnknownKey, key)
	}
	if key != KeyButton && transition != TransitionAny {
		return Handle{}, fmt.Errorf("%w: %s does not take transition %s", ErrUnknownKey, key, transition)
	}
	if transition > TransitionUp {
		return Handle{}, fmt.Errorf("%w: transition %d", ErrUnknownKey, transition)
	}
	if fn == nil {
		return Handle{}, ErrNilHandler
	}
	d.nextID++
	id := d.nextID
	d.bindings[key] = append(d.bindings[key], binding{
		id:         id,
		target:     target,
		transition: transition,
		fn:         fn,
	})
	return Handle{id: id, key: key, d: d}, nil
}

// OnUpdate registers an update-phase callback. A nil fn registers nothing
// and returns the zero Handle; the same holds for the other On helpers.
func (d *Dispatcher) OnUpdate(fn func(dt float64)) Handle {
	if fn == nil {
		return Handle{}
	}
	h, _ := d.Register(nil, KeyUpdate, TransitionAny, func(ev Event) error {
		fn(ev.Delta)
		return nil
	})
	return h
}

// OnRender registers a render-phase callback.
func (d *Dispatcher) OnRender(fn func(dt float64) error) Handle {
	if fn == nil {
		return Handle{}
	}
	h, _ := d.Register(nil, KeyRender, TransitionAny, func(ev Event) error {
		return fn(ev.Delta)
	})
	return h
}

// OnPointerMove registers a pointer-move callback.
func (d *Dispatcher) OnPointerMove(fn func(x, y float64)) Handle {
	if fn == nil {
		return Handle{}
	}
	h, _ := d.Register(nil, KeyPointerMove, TransitionAny, func(ev Event) error {
		fn(ev.X, ev.Y)
		return nil
	})
	return h
}

// OnWheel registers a wheel-tick callback.
func (d *Dispatcher) OnWheel(fn func(y int)) Handle {
	if fn == nil {
		return Handle{}
	}
	h, _ := d.Register(nil, KeyWheel, TransitionAny, func(ev Event) error {
		fn(ev.WheelY)
		return nil
	})
	return h
}

// OnButton registers a callback for button events with the given transition.
// TransitionAny receives both presses and releases.
func (d *Dispatcher) OnButton(tr Transition, fn func(ev Event)) (Handle, error) {
	if fn == nil {
		return Handle{}, ErrNilHandler
	}
	return d.Register(nil, KeyButton, tr, func(ev Event) error {
		fn(ev)
		return nil
	})
}

type capability struct {
	key Key
	tr  Transition
	fn  Handler
}

// capabilities lists the handlers target declares, in the order Bind
// registers them.
func capabilities(target any) []capability {
	var caps []capability
	if t, ok := target.(Updater); ok {
		caps = append(caps, capability{KeyUpdate, TransitionAny, func(ev Event) error {
			t.OnUpdate(ev.Delta)
			return nil
		}})
	}
	if t, ok := target.(FrameRenderer); ok {
		caps = append(caps, capability{KeyRender, TransitionAny, func(ev Event) error {
			return t.OnRender(ev.Delta)
		}})
	}
	if t, ok := target.(PointerMover); ok {
		caps = append(caps, capability{KeyPointerMove, TransitionAny, func(ev Event) error {
			t.OnPointerMove(ev.X, ev.Y)
			return nil
		}})
	}
	if t, ok := target.(WheelScroller); ok {
		caps = append(caps, capability{KeyWheel, TransitionAny, func(ev Event) error {
			t.OnWheel(ev.WheelY)
			return nil
		}})
	}
	if t, ok := target.(ButtonPresser); ok {
		caps = append(caps, capability{KeyButton, TransitionDown, func(ev Event) error {
			t.OnButtonDown(ev.X, ev.Y, ev.Button)
			return nil
		}})
	}
	if t, ok := target.(ButtonReleaser); ok {
		caps = append(caps, capability{KeyButton, TransitionUp, func(ev Event) error {
			t.OnButtonUp(ev.X, ev.Y, ev.Button)
			return nil
		}})
	}
	return caps
}

// Bind registers every handler interface target implements. Targets bound
// earlier run before targets bound later for the same key.
func (d *Dispatcher) Bind(target any) error {
	caps := capabilities(target)
	if len(caps) == 0 {
		return fmt.Errorf("%w: %T", ErrNoCapabilities, target)
	}
	for _, c := range caps {
		if _, err := d.Register(target, c.key, c.tr, c.fn); err != nil {
			d.Unbind(target)
			return fmt.Errorf("bind %T: %w", target, err)
		}
	}
	return nil
}

// Unbind removes every binding registered with target as owner and returns
// how many were removed.
func (d *Dispatcher) Unbind(target any) int {
	if target == nil {
		return 0
	}
	removed := 0
	for k := range d.bindings {
		kept := d.bindings[k][:0]
		for _, b := range d.bindings[k] {
			if sameTarget(b.target, target) {
				removed++
				continue
			}
			kept = append(kept, b)
		}
		for i := len(kept); i < len(d.bindings[k]); i++ {
			d.bindings[k][i] = binding{}
		}
		d.bindings[k] = kept
	}
	return removed
}

// sameTarget compares two owners, treating uncomparable dynamic types as
// different instead of panicking.
func sameTarget(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}

// Len returns the number of active (non-quarantined) bindings for key.
func (d *Dispatcher) Len(key Key) int {
	if !key.Valid() {
		return 0
	}
	n := 0
	for _, b := range d.bindings[key] {
		if !b.quarantined {
			n++
		}
	}
	return n
}

// Dispatch invokes, in registration order, every binding for ev.Key whose
// transition matches. Faults are reported and do not stop later handlers.
// Bindings added or removed by a handler take effect from the next Dispatch.
// Unknown keys and keys with no bindings are no-ops.
func (d *Dispatcher) Dispatch(ev Event) {
	if !ev.Key.Valid() {
		return
	}
	live := d.bindings[ev.Key]
	if len(live) == 0 {
		return
	}

	var snapshot []binding
	if d.depth == 0 {
		d.scratch = append(d.scratch[:0], live...)
		snapshot = d.scratch
	} else {
		snapshot = append([]binding(nil), live...)
	}
	d.depth++
	defer func() { d.depth-- }()

	for i := range snapshot {
		b := &snapshot[i]
		if b.quarantined || !b.transition.matches(ev.Transition) {
			continue
		}
		d.stats.invocations++
		panicked, err := invoke(b.fn, ev)
		if err == nil {
			continue
		}
		d.stats.faults++
		if panicked && !ev.Key.IsPhase() {
			d.quarantine(ev.Key, b.id)
		}
		d.report(Fault{
			Key:        ev.Key,
			Transition: ev.Transition,
			HandlerID:  b.id,
			Target:     b.target,
			Err:        err,
			Panicked:   panicked,
		})
	}
}

// quarantine stops a binding from receiving further events.
func (d *Dispatcher) quarantine(key Key, id uint32) {
	for i := range d.bindings[key] {
		if d.bindings[key][i].id == id {
			d.bindings[key][i].quarantined = true
			return
		}
	}
}

// invoke calls fn, converting a panic into an error.
func invoke(fn Handler, ev Event) (panicked bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			panicked = true
			if e, ok := r.(error); ok {
				err = e
			} else {
				err = fmt.Errorf("panic: %v", r)
			}
		}
	}()
	return false, fn(ev)
}
