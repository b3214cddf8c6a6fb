package battleground

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action" yaml:"action"`
	Label  string  `json:"label,omitempty" yaml:"label,omitempty"`
	X      float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y      float64 `json:"y,omitempty" yaml:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty" yaml:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty" yaml:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty" yaml:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty" yaml:"toY,omitempty"`
	Steps  int     `json:"steps,omitempty" yaml:"steps,omitempty"`
	Ticks  int     `json:"ticks,omitempty" yaml:"ticks,omitempty"`
	Frames int     `json:"frames,omitempty" yaml:"frames,omitempty"`
}

// testScript is the top-level structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps" yaml:"steps"`
}

var knownActions = map[string]bool{
	"screenshot": true,
	"press":      true,
	"move":       true,
	"release":    true,
	"click":      true,
	"drag":       true,
	"wheel":      true,
	"wait":       true,
}

// TestRunner sequences injected input events and screenshots across frames
// for automated visual testing. Attach to a Game via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a YAML or JSON test script.
//
//	steps:
//	  - {action: press, x: 100, y: 100}
//	  - {action: move, x: 160, y: 120}
//	  - {action: release, x: 160, y: 120}
//	  - {action: wheel, ticks: -3}
//	  - {action: wait, frames: 2}
//	  - {action: screenshot, label: after-zoom}
func LoadTestScript(data []byte) (*TestRunner, error) {
	var script testScript
	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("{")) {
		if err := json.Unmarshal(trimmed, &script); err != nil {
			return nil, fmt.Errorf("parse test script: %w", err)
		}
	} else if err := yaml.Unmarshal(trimmed, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame, queueing the input for the current
// step on g. Called from Game.Update before the queue is drained.
func (r *TestRunner) step(g *Game) {
	if r.done {
		return
	}
	// Wait for pending input to be dispatched before advancing.
	if g.queue.Len() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	q := &g.queue
	switch st.Action {
	case "screenshot":
		g.Screenshot(st.Label)
	case "press":
		q.InjectPress(st.X, st.Y)
	case "move":
		q.InjectMove(st.X, st.Y)
	case "release":
		q.InjectRelease(st.X, st.Y)
	case "click":
		q.InjectClick(st.X, st.Y)
	case "drag":
		q.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Steps)
	case "wheel":
		q.InjectWheel(st.Ticks)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && g.queue.Len() == 0 {
		r.done = true
	}
}
