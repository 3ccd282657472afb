package schedule

import (
	"math"
	"time"
)

// MinCompressionRatio is the smallest fraction of an estimate a task can be
// squeezed to. Anything tighter is reported as infeasible instead.
const MinCompressionRatio = 0.25

// compressionRatio returns the uniform factor that fits total hours into the
// available budget, clamped to [MinCompressionRatio, 1].
func compressionRatio(available, total float64) float64 {
	if total <= 0 {
		return 1
	}
	return math.Min(math.Max(available/total, MinCompressionRatio), 1)
}

func scaleHours(hours []float64, ratio float64) []float64 {
	out := make([]float64, len(hours))
	for i, h := range hours {
		out[i] = h * ratio
	}
	return out
}

func sumHours(hours []float64) float64 {
	var total float64
	for _, h := range hours {
		total += h
	}
	return total
}

// deadlineDays counts the calendar days between start and deadline, using
// each value's own calendar date. A deadline on or before the start still
// leaves the start day itself.
func deadlineDays(start, deadline time.Time) int {
	sy, sm, sd := start.Date()
	dy, dm, dd := deadline.Date()
	a := time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC)
	b := time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC)
	days := int(b.Sub(a).Hours() / 24)
	return max(days, 1)
}
