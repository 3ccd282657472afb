package schedule

import (
	"math"
	"time"
)

// Context anchors a scheduling call on the calendar.
type Context struct {
	Start           time.Time  // only the calendar date is used
	Deadline        *time.Time // nil disables compression
	WorkHoursPerDay float64
	DayStartHour    int // wall-clock hour at which each working day begins
}

func (c Context) validate() error {
	w := c.WorkHoursPerDay
	if math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
		return workHoursError("work hours per day must be positive, got %v", w)
	}
	if w > 24 {
		return workHoursError("work hours per day cannot exceed 24, got %v", w)
	}
	if hoursToWork(w) == 0 {
		return workHoursError("work hours per day too small, got %v", w)
	}
	if c.DayStartHour < 0 || c.DayStartHour > 23 {
		return workHoursError("day start hour must be within 0-23, got %d", c.DayStartHour)
	}
	return nil
}

// Schedule orders tasks by their dependencies and lays them out on the work
// calendar described by c.
//
// When a deadline is set and the plain schedule overruns it, every estimate
// is scaled by the same ratio (never below MinCompressionRatio) and the plan
// is laid out once more. A plan that still overruns is returned with
// DeadlineFeasible set to false. All validation happens before any output is
// produced; on error the result is nil.
func Schedule(tasks []Task, c Context) (*Result, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}

	g, err := BuildGraph(tasks)
	if err != nil {
		return nil, err
	}
	order, err := g.topoOrder()
	if err != nil {
		return nil, err
	}

	cal := newCalendar(c)
	original := make([]float64, g.Len())
	for i, t := range g.tasks {
		original[i] = t.EstimatedHours
	}
	total := sumHours(original)

	spans := earliestStart(g, order, toWork(original), cal)
	naiveEnd := latestEnd(spans)

	final := original
	ratio := 1.0
	feasible := true
	if c.Deadline != nil {
		days := deadlineDays(c.Start, *c.Deadline)
		limit := workTime(days) * cal.day
		if naiveEnd > limit {
			ratio = compressionRatio(c.WorkHoursPerDay*float64(days), total)
			final = scaleHours(original, ratio)
			spans = earliestStart(g, order, toWork(final), cal)
			feasible = latestEnd(spans) <= limit
		}
	}

	entries, ids := assemble(g, order, spans, original, final, cal)
	res := &Result{
		Entries:          entries,
		Order:            ids,
		CompressionRatio: ratio,
		DeadlineFeasible: feasible,
		Start:            cal.origin,
		End:              cal.at(latestEnd(spans), true),
		NaiveEnd:         cal.at(naiveEnd, true),
		TotalHours:       total,
		WorkHoursPerDay:  c.WorkHoursPerDay,
	}
	if c.Deadline != nil {
		d := *c.Deadline
		res.Deadline = &d
	}
	return res, nil
}

func toWork(hours []float64) []workTime {
	out := make([]workTime, len(hours))
	for i, h := range hours {
		out[i] = hoursToWork(h)
	}
	return out
}
