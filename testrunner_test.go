package battleground

import "testing"

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{
  "steps": [
    {"action": "screenshot", "label": "initial"},
    {"action": "click", "x": 100, "y": 200},
    {"action": "wait", "frames": 3},
    {"action": "screenshot", "label": "after-click"}
  ]
}`)

	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "screenshot" || runner.steps[0].Label != "initial" {
		t.Error("step 0 mismatch")
	}
	if runner.steps[1].Action != "click" || runner.steps[1].X != 100 || runner.steps[1].Y != 200 {
		t.Error("step 1 mismatch")
	}
	if runner.steps[2].Action != "wait" || runner.steps[2].Frames != 3 {
		t.Error("step 2 mismatch")
	}
}

func TestLoadTestScript_YAML(t *testing.T) {
	data := []byte(`
steps:
  - action: press
    x: 10
    y: 20
  - {action: wheel, ticks: -2}
  - {action: drag, fromX: 0, fromY: 0, toX: 30, toY: 40, steps: 3}
`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].X != 10 || runner.steps[0].Y != 20 {
		t.Errorf("press step = %+v", runner.steps[0])
	}
	if runner.steps[1].Ticks != -2 {
		t.Errorf("wheel ticks = %d, want -2", runner.steps[1].Ticks)
	}
	if runner.steps[2].ToY != 40 || runner.steps[2].Steps != 3 {
		t.Errorf("drag step = %+v", runner.steps[2])
	}
}

func TestLoadTestScript_Invalid(t *testing.T) {
	_, err := LoadTestScript([]byte(`{not json`))
	if err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadTestScript_Empty(t *testing.T) {
	_, err := LoadTestScript([]byte(`{"steps": []}`))
	if err == nil {
		t.Error("expected error for empty steps")
	}
}

func TestLoadTestScript_UnknownAction(t *testing.T) {
	_, err := LoadTestScript([]byte(`steps: [{action: teleport}]`))
	if err == nil {
		t.Error("expected error for unknown action")
	}
}

func TestRunnerStep_Click(t *testing.T) {
	g := NewGame(320, 240, nil)

	var pressed, released int
	g.Dispatcher().OnButton(TransitionDown, func(Event) { pressed++ })
	g.Dispatcher().OnButton(TransitionUp, func(Event) { released++ })

	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "click", "x": 50, "y": 50}]}`))
	if err != nil {
		t.Fatal(err)
	}

	runner.step(g)
	if g.queue.Len() != 2 {
		t.Fatalf("expected 2 queued events, got %d", g.queue.Len())
	}
	if runner.Done() {
		t.Error("runner should not be done while the queue has events")
	}

	g.queue.DispatchTo(g.dispatcher)
	if pressed != 1 || released != 1 {
		t.Errorf("pressed=%d released=%d, want 1 and 1", pressed, released)
	}

	runner.step(g)
	if !runner.Done() {
		t.Error("runner should be done after all steps executed and queue drained")
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	g := NewGame(320, 240, nil)

	runner, err := LoadTestScript([]byte(`{"steps": [
  {"action": "wait", "frames": 3},
  {"action": "screenshot", "label": "done"}
]}`))
	if err != nil {
		t.Fatal(err)
	}

	// Frame 1: execute wait (waitCount becomes 2).
	runner.step(g)
	if runner.Done() {
		t.Error("should not be done during wait")
	}
	// Frame 2: waitCount 2→1.
	runner.step(g)
	// Frame 3: waitCount 1→0.
	runner.step(g)
	if runner.Done() {
		t.Error("should not be done before the screenshot step ran")
	}
	// Frame 4: screenshot step, runner finishes.
	runner.step(g)
	if !runner.Done() {
		t.Error("runner should be done after screenshot step")
	}
	if len(g.screenshots) != 1 || g.screenshots[0] != "done" {
		t.Errorf("expected screenshot 'done', got %v", g.screenshots)
	}
}

func TestRunnerStep_DragPansCamera(t *testing.T) {
	g := NewGame(320, 240, nil)
	ctrl := NewCameraController(g, nil, nil, nil)
	if err := g.Mount(ctrl); err != nil {
		t.Fatal(err)
	}

	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "drag", "fromX": 10, "fromY": 10, "toX": 40, "toY": 50, "steps": 3}]}`))
	if err != nil {
		t.Fatal(err)
	}

	runner.step(g)
	// press + 3 moves + release
	if g.queue.Len() != 5 {
		t.Fatalf("expected 5 queued events for drag, got %d", g.queue.Len())
	}
	g.queue.DispatchTo(g.dispatcher)

	pos, _ := ctrl.Camera().Pose()
	if !approxEqual(pos.X, -30, epsilon) || !approxEqual(pos.Y, -40, epsilon) {
		t.Errorf("position after drag = %v, want (-30,-40)", pos)
	}
	if _, dragging := ctrl.Dragging(); dragging {
		t.Error("drag should have ended on release")
	}
}

func TestRunnerStep_Wheel(t *testing.T) {
	g := NewGame(320, 240, nil)
	ctrl := NewCameraController(g, nil, nil, nil)
	if err := g.Mount(ctrl); err != nil {
		t.Fatal(err)
	}

	runner, err := LoadTestScript([]byte(`steps: [{action: wheel, ticks: 5}]`))
	if err != nil {
		t.Fatal(err)
	}
	runner.step(g)
	g.queue.DispatchTo(g.dispatcher)

	_, zoom := ctrl.Camera().Pose()
	want := 1 + 5*DefaultZoomStep
	if !approxEqual(zoom.X, want, 1e-9) || !approxEqual(zoom.Y, want, 1e-9) {
		t.Errorf("zoom = %v, want (%v,%v)", zoom, want, want)
	}
}

func TestRunnerWaitsForQueue(t *testing.T) {
	g := NewGame(320, 240, nil)

	runner, err := LoadTestScript([]byte(`{"steps": [
  {"action": "click", "x": 50, "y": 50},
  {"action": "screenshot", "label": "after"}
]}`))
	if err != nil {
		t.Fatal(err)
	}

	runner.step(g)
	if g.queue.Len() != 2 {
		t.Fatalf("expected 2 events, got %d", g.queue.Len())
	}

	// Should NOT advance while the queue still holds the click.
	runner.step(g)
	if runner.cursor != 1 {
		t.Errorf("cursor should still be 1, got %d", runner.cursor)
	}

	g.queue.Drain()

	runner.step(g)
	if len(g.screenshots) != 1 || g.screenshots[0] != "after" {
		t.Errorf("expected screenshot 'after', got %v", g.screenshots)
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}
