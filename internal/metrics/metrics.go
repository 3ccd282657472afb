// Package metrics publishes scheduling counters through expvar.
package metrics

import (
	"expvar"
	"strings"
	"time"
)

var (
	scheduleRequests     = expvar.NewMap("schedule_requests")
	scheduleErrors       = expvar.NewMap("schedule_errors")
	scheduleCompressions = expvar.NewMap("schedule_compressions")
	scheduleInfeasible   = expvar.NewMap("schedule_infeasible")
	scheduleLatency      = expvar.NewMap("schedule_latency_ms")
)

// Outcome summarizes one scheduling call.
type Outcome struct {
	Source     string // "cli", "http", ...
	ErrorCode  string // empty on success
	Compressed bool
	Infeasible bool
	Duration   time.Duration
}

// ObserveSchedule records a scheduling call.
func ObserveSchedule(o Outcome) {
	key := normalize(o.Source)
	scheduleRequests.Add(key, 1)
	scheduleLatency.Add(key, o.Duration.Milliseconds())
	if o.ErrorCode != "" {
		scheduleErrors.Add(normalize(o.ErrorCode), 1)
		return
	}
	if o.Compressed {
		scheduleCompressions.Add(key, 1)
	}
	if o.Infeasible {
		scheduleInfeasible.Add(key, 1)
	}
}

func normalize(kind string) string {
	if strings.TrimSpace(kind) == "" {
		return "unknown"
	}
	return kind
}
