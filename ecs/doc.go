// Package ecs bridges battleground input events into an ECS world.
//
// [NewDonburiSink] publishes every dispatched input event into a [Donburi]
// world as a typed event. Subscribe to [InputEventType] in your systems and
// call ProcessEvents once per frame to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	game.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
