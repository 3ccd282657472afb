// Package schedule turns a batch of dependent tasks into a calendar-anchored
// plan.
//
// Scheduling is a single pure call: build the dependency graph, order it with
// Kahn's algorithm, run an earliest-start pass over a work-hours calendar, and
// compress durations uniformly when a deadline would be missed. Nothing is
// shared between calls, so concurrent callers need no locking.
package schedule
