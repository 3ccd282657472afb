package schedule

import (
	"math"
	"time"
)

// workTime is an offset in seconds of work from the start of the plan. Day k
// of the calendar covers [k*day, (k+1)*day).
type workTime int64

func hoursToWork(h float64) workTime {
	return workTime(math.Round(h * 3600))
}

type span struct {
	start, end workTime
}

// calendar maps work offsets onto wall-clock time. Each calendar day offers
// day seconds of work beginning at origin's time of day.
type calendar struct {
	origin time.Time
	day    workTime
}

func newCalendar(c Context) calendar {
	y, m, d := c.Start.Date()
	return calendar{
		origin: time.Date(y, m, d, c.DayStartHour, 0, 0, 0, c.Start.Location()),
		day:    hoursToWork(c.WorkHoursPerDay),
	}
}

// at converts an offset to wall-clock time. With closing set, an offset that
// falls on a day boundary is reported as the end of the previous working day
// rather than the start of the next one.
func (cal calendar) at(t workTime, closing bool) time.Time {
	day := t / cal.day
	rem := t % cal.day
	if closing && rem == 0 && day > 0 {
		day--
		rem = cal.day
	}
	return cal.origin.AddDate(0, 0, int(day)).Add(time.Duration(rem) * time.Second)
}

// nextDay rounds t up to the following day boundary unless it already sits on
// one.
func (cal calendar) nextDay(t workTime) workTime {
	if rem := t % cal.day; rem != 0 {
		return t + cal.day - rem
	}
	return t
}

// earliestStart computes each task's span in topological order. A task is
// ready once all its dependencies have ended. A task with work to do starts at
// the first day boundary at or after that point and consumes at most one
// day's budget per calendar day. A zero-length task occupies the instant it
// becomes ready.
func earliestStart(g *Graph, order []int, durations []workTime, cal calendar) []span {
	spans := make([]span, g.Len())
	for _, i := range order {
		var ready workTime
		for _, j := range g.prev[i] {
			if spans[j].end > ready {
				ready = spans[j].end
			}
		}
		start := ready
		if durations[i] > 0 {
			start = cal.nextDay(ready)
		}
		spans[i] = span{start: start, end: start + durations[i]}
	}
	return spans
}

func latestEnd(spans []span) workTime {
	var end workTime
	for _, s := range spans {
		if s.end > end {
			end = s.end
		}
	}
	return end
}
