package perf

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// NumEvents is the number of hardware event categories the group is
// configured for: CPU cycles and retired instructions, in that order.
const NumEvents = 2

// Point is the state of the clock and counters at one instant: process
// CPU time plus the raw cumulative counter values for every open event,
// in open order. The counter slice is empty when no counters are open.
type Point struct {
	Sec      int64
	Nsec     int64
	Counters []uint64
}

// Elapsed returns end minus start in seconds, borrowing from the seconds
// field when the nanosecond difference is negative.
func Elapsed(start, end Point) float64 {
	sec := end.Sec - start.Sec
	nsec := end.Nsec - start.Nsec
	if nsec < 0 {
		sec--
		nsec += 1_000_000_000
	}
	return float64(sec) + float64(nsec)*1e-9
}

// Deltas returns the per-counter difference end minus start, in open
// order. Both points must come from the same Group.
func Deltas(start, end Point) []uint64 {
	n := min(len(start.Counters), len(end.Counters))
	out := make([]uint64, n)
	for i := range out {
		out[i] = end.Counters[i] - start.Counters[i]
	}
	return out
}

// event is one configured hardware category and its open descriptor.
type event struct {
	label string
	fd    int
}

// Group is the process-wide counter group. Construct it once with Open,
// pass it by pointer, and only read it afterwards.
type Group struct {
	events  []event
	leader  int
	scratch []byte
}

// Complete reports whether every configured event opened successfully,
// i.e. whether hardware-derived metrics may be emitted at all.
func (g *Group) Complete() bool {
	return len(g.events) == NumEvents
}

// NumOpen returns how many counters actually opened.
func (g *Group) NumOpen() int {
	return len(g.events)
}

// decodeGroupRead parses the PERF_FORMAT_GROUP|PERF_FORMAT_ID read
// format: a u64 member count followed by {value, id} u64 pairs.
func decodeGroupRead(buf []byte, want int) ([]uint64, error) {
	if len(buf) < 8 {
		return nil, errors.New("counter group read truncated")
	}
	nr := binary.LittleEndian.Uint64(buf)
	if nr != uint64(want) {
		return nil, fmt.Errorf("counter group read returned %d members, want %d", nr, want)
	}
	if len(buf) < 8+16*want {
		return nil, fmt.Errorf("counter group read truncated: %d bytes for %d members", len(buf), want)
	}
	counts := make([]uint64, want)
	for i := range counts {
		counts[i] = binary.LittleEndian.Uint64(buf[8+16*i:])
	}
	return counts, nil
}
