//go:build !linux

package perf

import (
	"log/slog"
	"time"
)

// Without perf_event_open there are no hardware counters and no
// process-scoped CPU clock; snapshots fall back to the monotonic wall
// clock, which is still usable for single-threaded timing.
var processStart = time.Now()

// Open returns an empty group: hardware counters are unavailable on
// this platform.
func Open(log *slog.Logger) *Group {
	log.Warn("hardware counters unsupported on this platform, timing only")
	return &Group{leader: -1}
}

// Snapshot captures a timing-only point from the monotonic clock.
func (g *Group) Snapshot() (Point, error) {
	d := time.Since(processStart)
	return Point{Sec: int64(d / time.Second), Nsec: int64(d % time.Second)}, nil
}

// Close is a no-op: there are no descriptors to release.
func (g *Group) Close() {}
