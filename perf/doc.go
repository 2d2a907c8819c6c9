// Package perf reads grouped hardware performance counters alongside
// process CPU time.
//
// A Group owns a small fixed set of counter file descriptors (CPU cycles
// and retired instructions) opened at process start. The first counter
// that opens successfully becomes the group leader; later counters join
// its group so that one read(2) on the leader returns every member value
// from the same instant. Counters that fail to open (typically for lack
// of privilege) are simply left out: a partially-open or empty group
// still produces valid CPU-time snapshots, and callers decide whether
// hardware-derived metrics can be reported at all via Complete.
//
// On platforms without perf_event_open the package degrades to
// timing-only snapshots.
package perf
