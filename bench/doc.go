// Package bench drives one candidate routine over one input buffer
// until the measurement is statistically meaningful, then reports it.
//
// The driver grows an iteration multiplier until a measured pass takes
// at least the configured time goal, always discarding the first pass
// so cold-cache and branch-predictor effects never reach the reported
// numbers. Counter and clock snapshots come from a Sampler, which in
// production is a *perf.Group; tests substitute scripted samplers.
package bench
