package schedule

import (
	"slices"
	"time"
)

// Entry is one scheduled task.
type Entry struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	DurationHours float64   `json:"duration_hours"`
	OriginalHours float64   `json:"original_hours"`
}

// Result is the outcome of one scheduling call.
type Result struct {
	Entries          []Entry    `json:"schedule"`
	Order            []string   `json:"order"`
	CompressionRatio float64    `json:"compression_ratio"`
	DeadlineFeasible bool       `json:"deadline_feasible"`
	Start            time.Time  `json:"start"`
	Deadline         *time.Time `json:"deadline,omitempty"`
	End              time.Time  `json:"end"`
	NaiveEnd         time.Time  `json:"naive_end"`
	TotalHours       float64    `json:"total_hours"`
	WorkHoursPerDay  float64    `json:"work_hours_per_day"`
}

// Compressed reports whether durations were scaled to chase the deadline.
func (r *Result) Compressed() bool {
	return r.CompressionRatio < 1
}

// Entry returns the entry for the given task ID.
func (r *Result) Entry(id string) (Entry, bool) {
	for _, e := range r.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// assemble converts spans to wall-clock entries sorted by start time. Ties keep
// topological order.
func assemble(g *Graph, order []int, spans []span, original, final []float64, cal calendar) ([]Entry, []string) {
	entries := make([]Entry, 0, len(order))
	ids := make([]string, 0, len(order))
	for _, i := range order {
		t := g.tasks[i]
		s := spans[i]
		zero := s.start == s.end
		name := t.Name
		if name == "" {
			name = t.ID
		}
		entries = append(entries, Entry{
			ID:   t.ID,
			Name: name,
			// A zero-length task sits on its dependency's end instant.
			Start:         cal.at(s.start, zero),
			End:           cal.at(s.end, true),
			DurationHours: final[i],
			OriginalHours: original[i],
		})
		ids = append(ids, t.ID)
	}

	slices.SortStableFunc(entries, func(a, b Entry) int {
		return a.Start.Compare(b.Start)
	})
	return entries, ids
}
