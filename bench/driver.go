package bench

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"benchkit/perf"
)

// DefaultGoal is the minimum CPU time a pass must consume before its
// numbers are trusted.
const DefaultGoal = 2 * time.Second

// Routine is the pluggable candidate under test: validate the buffer
// and return the number of code units processed.
type Routine func(p []uint16) int

// Case is one (routine, input) pair. Data is the decoded input buffer
// and N the declared byte length of the source file. A Case is built
// once, run once, and discarded.
type Case struct {
	Label   string
	Path    string
	Routine Routine
	Data    []uint16
	N       int64
}

// Sampler captures one measurement point: clock first, then one atomic
// grouped counter read.
type Sampler interface {
	Snapshot() (perf.Point, error)
}

// Result is the accepted measurement for one Case.
type Result struct {
	Start perf.Point
	End   perf.Point
	M     uint64 // iteration multiplier of the accepted pass
	N     int64  // declared input bytes per iteration
}

// Warm-up bookkeeping for the adaptive loop. The first completed pass,
// whatever its duration, is never the one reported.
type passState int

const (
	statePending passState = iota // no pass completed yet
	stateWarmed                   // warm-up consumed, next qualifying pass wins
)

// Driver owns the adaptive measurement loop.
type Driver struct {
	Sampler Sampler
	Goal    time.Duration // zero means DefaultGoal
	Log     *slog.Logger  // diagnostics only, never results
}

func (d *Driver) goalSeconds() float64 {
	if d.Goal <= 0 {
		return DefaultGoal.Seconds()
	}
	return d.Goal.Seconds()
}

func (d *Driver) logger() *slog.Logger {
	if d.Log == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return d.Log
}

// Run measures c, growing the iteration multiplier until a warmed pass
// meets the time goal. Snapshot failures abort the case. The multiplier
// never decreases and is never reset between passes.
func (d *Driver) Run(c Case) (Result, error) {
	goal := d.goalSeconds()
	m := uint64(1)
	state := statePending

	for {
		start, err := d.Sampler.Snapshot()
		if err != nil {
			return Result{}, fmt.Errorf("%s: start snapshot: %w", c.Label, err)
		}

		var sum uint64
		for i := uint64(0); i < m; i++ {
			sum += uint64(c.Routine(c.Data))
		}

		end, err := d.Sampler.Snapshot()
		if err != nil {
			return Result{}, fmt.Errorf("%s: end snapshot: %w", c.Label, err)
		}

		elapsed := perf.Elapsed(start, end)
		if elapsed < goal {
			if elapsed < goal/2 {
				m *= 2
			} else {
				// Aim slightly past the goal so a near miss is not
				// followed by another near miss.
				next := uint64(math.Ceil(float64(m) * goal * 1.05 / elapsed))
				if next > m {
					m = next
				} else {
					m++
				}
			}
			state = stateWarmed
			continue
		}

		if state == statePending {
			// The very first pass met the goal on its own. Discard it
			// anyway and rerun at the same multiplier: at least two
			// passes always happen, so first-touch effects never leak
			// into the report.
			state = stateWarmed
			continue
		}

		if want := uint64(len(c.Data)) * m; sum != want {
			d.logger().Warn("validation count mismatch",
				"case", c.Label, "file", c.Path, "got", sum, "want", want)
		}
		return Result{Start: start, End: end, M: m, N: c.N}, nil
	}
}
