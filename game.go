package battleground

import (
	"errors"
	"fmt"
	"image"
	"log"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// EventSink receives every input event after it has been dispatched.
// It is the optional bridge to an ECS world.
type EventSink interface {
	EmitEvent(ev Event)
}

// RunConfig holds window settings for Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// ShowFPS draws an FPS/TPS readout in the top-left corner.
	ShowFPS bool
	// Debug logs per-frame dispatch stats to stderr.
	Debug bool
}

// Game implements ebiten.Game. Each Update it drains queued input into the
// dispatcher and fires the update phase; each Draw it fires the render phase
// with the screen as the frame target.
type Game struct {
	dispatcher *Dispatcher
	queue      EventQueue
	poller     *inputPoller
	resources  *Resources
	sink       EventSink

	width, height int

	target   *ebiten.Image
	viewport Rect
	lastDraw time.Time

	debug   bool
	showFPS bool
	fps     *fpsCounter
	stats   frameStats
	faults  faultLog
	frame   int

	tasksMu sync.Mutex
	tasks   []func()

	testRunner *TestRunner
	exitOnDone bool

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string
	screenshots   []string
}

// NewGame creates a game whose logical screen is width x height pixels. A
// zero size follows the window size. res may be nil when no view needs
// assets.
func NewGame(width, height int, res *Resources) *Game {
	g := &Game{
		dispatcher:    NewDispatcher(),
		poller:        newInputPoller(nil),
		resources:     res,
		width:         width,
		height:        height,
		viewport:      Rect{Width: float64(width), Height: float64(height)},
		fps:           newFPSCounter(),
		ScreenshotDir: "screenshots",
	}
	g.dispatcher.SetFaultReporter(g.faults.report)
	return g
}

// Dispatcher returns the game's dispatcher.
func (g *Game) Dispatcher() *Dispatcher {
	return g.dispatcher
}

// Queue returns the input queue. It is safe to push from any goroutine.
func (g *Game) Queue() *EventQueue {
	return &g.queue
}

// Resources returns the resource resolver passed to NewGame.
func (g *Game) Resources() *Resources {
	return g.resources
}

// Mount runs target's Load hook, if any, then binds its handlers.
func (g *Game) Mount(target any) error {
	if err := LoadView(target, g.resources); err != nil {
		return err
	}
	return g.dispatcher.Bind(target)
}

// SetEventSink sets the optional ECS bridge.
func (g *Game) SetEventSink(sink EventSink) {
	g.sink = sink
}

// SetDebugMode enables or disables per-frame dispatch stats on stderr.
func (g *Game) SetDebugMode(enabled bool) {
	g.debug = enabled
}

// SetShowFPS toggles the FPS/TPS readout.
func (g *Game) SetShowFPS(enabled bool) {
	g.showFPS = enabled
}

// SetTestRunner attaches a scripted input runner. When exitOnDone is true,
// Update returns ebiten.Termination once the script has finished.
func (g *Game) SetTestRunner(runner *TestRunner, exitOnDone bool) {
	g.testRunner = runner
	g.exitOnDone = exitOnDone
}

// Post schedules fn to run on the update goroutine at the start of the next
// Update. Safe to call from any goroutine.
func (g *Game) Post(fn func()) {
	g.tasksMu.Lock()
	g.tasks = append(g.tasks, fn)
	g.tasksMu.Unlock()
}

func (g *Game) runTasks() {
	g.tasksMu.Lock()
	tasks := g.tasks
	g.tasks = nil
	g.tasksMu.Unlock()
	for _, fn := range tasks {
		fn()
	}
}

// Target implements Frame. It is nil outside Draw.
func (g *Game) Target() *ebiten.Image {
	return g.target
}

// Viewport implements Frame.
func (g *Game) Viewport() Rect {
	return g.viewport
}

// tickDelta returns the seconds per update at tps. ebiten.SyncWithFPS and
// other non-positive rates fall back to 60 ticks per second.
func tickDelta(tps int) float64 {
	if tps <= 0 {
		return 1.0 / 60
	}
	return 1.0 / float64(tps)
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	g.frame++
	dt := tickDelta(ebiten.TPS())

	g.runTasks()

	scripted := false
	if g.testRunner != nil {
		if g.testRunner.Done() {
			if g.exitOnDone && g.queue.Len() == 0 {
				return ebiten.Termination
			}
		} else {
			g.testRunner.step(g)
			scripted = true
		}
	}
	if !scripted {
		g.poller.poll(&g.queue)
	}

	return g.step(dt)
}

// step dispatches queued input followed by the update phase.
func (g *Game) step(dt float64) error {
	var t0 time.Time
	if g.debug {
		t0 = time.Now()
	}
	before := g.dispatcher.stats

	events := g.queue.Drain()
	for _, ev := range events {
		g.dispatcher.Dispatch(ev)
		if g.sink != nil {
			g.sink.EmitEvent(ev)
		}
	}
	g.dispatcher.Dispatch(UpdateEvent(dt))

	if g.debug {
		g.stats = frameStats{
			events:     len(events),
			updateTime: time.Since(t0),
			dispatch:   g.dispatcher.stats.sub(before),
		}
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	now := time.Now()
	dt := 0.0
	if !g.lastDraw.IsZero() {
		dt = now.Sub(g.lastDraw).Seconds()
	}
	g.lastDraw = now

	b := screen.Bounds()
	g.target = screen
	g.viewport = rectFromImage(b)

	before := g.dispatcher.stats
	g.dispatcher.Dispatch(RenderEvent(dt))

	if g.showFPS {
		g.fps.draw(screen, dt)
	}
	g.flushScreenshots(screen)
	g.target = nil

	if g.debug {
		g.stats.renderTime = time.Since(now)
		g.stats.dispatch = g.stats.dispatch.add(g.dispatcher.stats.sub(before))
		g.debugLog(g.stats)
	}
}

func rectFromImage(b image.Rectangle) Rect {
	return Rect{
		X:      float64(b.Min.X),
		Y:      float64(b.Min.Y),
		Width:  float64(b.Dx()),
		Height: float64(b.Dy()),
	}
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.width > 0 && g.height > 0 {
		return g.width, g.height
	}
	return outsideWidth, outsideHeight
}

// Run opens a window and runs the game loop until the window is closed or
// the game terminates.
func Run(g *Game, cfg RunConfig) error {
	if g == nil {
		return errors.New("battleground: nil game")
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	g.SetShowFPS(cfg.ShowFPS)
	g.SetDebugMode(cfg.Debug)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

// faultLog reports handler faults, collapsing identical consecutive faults
// (a render error repeats every frame) into a single line.
type faultLog struct {
	last    string
	repeats int
}

func (l *faultLog) report(f Fault) {
	msg := f.Error()
	if msg == l.last {
		l.repeats++
		return
	}
	if l.repeats > 0 {
		log.Printf("battleground: previous fault repeated %d more times", l.repeats)
	}
	l.last = msg
	l.repeats = 0
	log.Printf("battleground: %s", msg)
}
