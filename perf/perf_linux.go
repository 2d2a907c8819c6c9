//go:build linux

package perf

import (
	"fmt"
	"log/slog"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Fixed event list. Order matters: Deltas and the reporter rely on
// cycles first, instructions second.
var hardwareEvents = [NumEvents]struct {
	label  string
	config uint64
}{
	{"cpu-cycles", unix.PERF_COUNT_HW_CPU_CYCLES},
	{"instructions", unix.PERF_COUNT_HW_INSTRUCTIONS},
}

// Open acquires the hardware counter group for the calling process.
// Each counter counts user-mode activity only, continuously (no
// sampling). Per-event open failures are logged and skipped; the
// returned group may be partial or empty, never nil.
func Open(log *slog.Logger) *Group {
	g := &Group{leader: -1}

	attr := unix.PerfEventAttr{
		Type:        unix.PERF_TYPE_HARDWARE,
		Size:        uint32(unsafe.Sizeof(unix.PerfEventAttr{})),
		Bits:        unix.PerfBitExcludeKernel | unix.PerfBitExcludeHv,
		Read_format: unix.PERF_FORMAT_GROUP | unix.PERF_FORMAT_ID,
	}

	for _, spec := range hardwareEvents {
		attr.Config = spec.config
		fd, err := unix.PerfEventOpen(&attr, 0, -1, g.leader, unix.PERF_FLAG_FD_CLOEXEC)
		if err != nil {
			log.Warn("perf_event_open failed, counter disabled",
				"event", spec.label, "err", err)
			continue
		}
		if g.leader == -1 {
			g.leader = fd
		}
		g.events = append(g.events, event{label: spec.label, fd: fd})
	}

	// One read returns {nr, {value, id} x nr}.
	g.scratch = make([]byte, 8*(2*len(g.events)+1))
	return g
}

// Snapshot captures process CPU time immediately followed by one grouped
// counter read. An empty group yields a timing-only point. Any read
// error is returned to the caller, which must abandon the measurement.
func (g *Group) Snapshot() (Point, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_PROCESS_CPUTIME_ID, &ts); err != nil {
		return Point{}, fmt.Errorf("clock_gettime: %w", err)
	}
	p := Point{Sec: int64(ts.Sec), Nsec: int64(ts.Nsec)}

	if len(g.events) == 0 {
		return p, nil
	}

	n, err := unix.Read(g.leader, g.scratch)
	if err != nil {
		return Point{}, fmt.Errorf("read counter group: %w", err)
	}
	counts, err := decodeGroupRead(g.scratch[:n], len(g.events))
	if err != nil {
		return Point{}, err
	}
	p.Counters = counts
	return p, nil
}

// Close releases the counter descriptors. The group must not be
// snapshotted afterwards.
func (g *Group) Close() {
	for _, ev := range g.events {
		_ = unix.Close(ev.fd)
	}
	g.events = nil
	g.leader = -1
}
