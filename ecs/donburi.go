package ecs

import (
	"github.com/phanxgames/battleground"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InputEventType is the Donburi event type for battleground input events.
// Subscribe to this in your ECS systems to receive pointer, button and wheel
// events after the dispatcher has handled them.
var InputEventType = events.NewEventType[battleground.Event]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Events are published to InputEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) battleground.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(ev battleground.Event) {
	InputEventType.Publish(s.world, ev)
}

// ProcessOnUpdate registers an update handler on d that delivers the queued
// events of world to subscribers once per frame.
func ProcessOnUpdate(d *battleground.Dispatcher, world donburi.World) battleground.Handle {
	return d.OnUpdate(func(float64) {
		InputEventType.ProcessEvents(world)
	})
}
