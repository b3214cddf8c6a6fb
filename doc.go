// Package battleground is the runtime core of a 2D tile-map viewer built on
// [Ebitengine].
//
// It has two halves: a [Dispatcher] that routes frame phases and input
// events to registered handlers, and a [CameraController] that pans and
// zooms an orthographic [Camera] over a tile map and renders the frame.
//
// # Quick start
//
// [Game] implements [ebiten.Game]. Build the views, mount the controller and
// hand the game to [Run]:
//
//	game := battleground.NewGame(1280, 720, battleground.NewResources("assets"))
//	tiles, _ := battleground.NewTileMap(64, 64, 32, 32, data)
//	tiles.UseTileset("tiles.png")
//	ctrl := battleground.NewCameraController(game, tiles, nil, battleground.NewHUD(nil))
//	_ = battleground.LoadView(tiles, game.Resources())
//	_ = game.Mount(ctrl)
//	_ = battleground.Run(game, battleground.RunConfig{Title: "viewer"})
//
// # Dispatch
//
// Handlers are bound to a [Key]: the update and render phases, pointer
// motion, wheel ticks and button transitions. [Dispatcher.Bind] discovers
// the handler interfaces a value implements ([Updater], [FrameRenderer],
// [PointerMover], [WheelScroller], [ButtonPresser], [ButtonReleaser]) and
// registers one binding per interface. Closures can be registered directly
// with [Dispatcher.OnUpdate] and friends.
//
// Handlers for one key run in registration order. A handler that returns an
// error or panics is reported as a [Fault] and the remaining handlers still
// run. An input handler that panics is quarantined and receives no further
// events; phase handlers are kept.
//
// Input produced off the frame goroutine goes through an [EventQueue], which
// [Game] drains once per Update before firing the update phase.
//
// # Camera
//
// The controller starts a drag when the pan button goes down, moves the
// camera opposite to pointer motion while dragging, and ends the drag on
// release. Each wheel notch changes zoom by [DefaultZoomStep] (configurable)
// and zoom never drops below [MinZoom]. Rendering draws the map, then the
// background layer, then the overlay.
//
// # Testing
//
// [LoadTestScript] reads a YAML or JSON list of input actions and
// screenshots; attach it with [Game.SetTestRunner] to drive the viewer
// without a human.
//
// [Ebitengine]: https://ebitengine.org
package battleground
