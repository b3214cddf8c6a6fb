package battleground

import (
	"fmt"
	"os"
	"time"
)

// dispatchStats counts handler invocations and faults. The dispatcher keeps
// running totals; per-frame numbers are differences between snapshots.
type dispatchStats struct {
	invocations int
	faults      int
}

func (s dispatchStats) sub(o dispatchStats) dispatchStats {
	return dispatchStats{invocations: s.invocations - o.invocations, faults: s.faults - o.faults}
}

func (s dispatchStats) add(o dispatchStats) dispatchStats {
	return dispatchStats{invocations: s.invocations + o.invocations, faults: s.faults + o.faults}
}

// frameStats holds per-frame timing and dispatch metrics.
// Only populated when Game.debug is true.
type frameStats struct {
	events     int
	updateTime time.Duration
	renderTime time.Duration
	dispatch   dispatchStats
}

// debugLog prints the frame's stats to stderr.
func (g *Game) debugLog(stats frameStats) {
	if !g.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[battleground] frame %d | update: %v | render: %v | total: %v\n",
		g.frame, stats.updateTime, stats.renderTime, stats.updateTime+stats.renderTime)
	_, _ = fmt.Fprintf(os.Stderr,
		"[battleground] events: %d | handlers run: %d | faults: %d\n",
		stats.events, stats.dispatch.invocations, stats.dispatch.faults)
}
