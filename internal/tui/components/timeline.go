package components

import (
	"strings"
	"time"
)

const (
	barChar       = "■"
	gapChar       = "·"
	milestoneChar = "◆"
)

// Timeline maps wall-clock intervals onto a fixed number of columns so that
// every task in a plan can be drawn as a bar on a shared axis:
//
//	■■■■······
//	····■■■···
//	·······■■■
type Timeline struct {
	Start time.Time
	End   time.Time
	Width int // character width of the bar
}

// NewTimeline creates a Timeline spanning [start, end].
func NewTimeline(start, end time.Time, width int) Timeline {
	return Timeline{Start: start, End: end, Width: width}
}

// Bar renders the interval [from, to]. Non-empty intervals always occupy at
// least one column; empty ones are drawn as a milestone marker.
func (tl Timeline) Bar(from, to time.Time) string {
	if tl.Width <= 0 || !tl.End.After(tl.Start) {
		return ""
	}

	a := tl.column(from)
	if !to.After(from) {
		if a == tl.Width {
			a--
		}
		return strings.Repeat(gapChar, a) + milestoneChar + strings.Repeat(gapChar, tl.Width-a-1)
	}

	b := tl.column(to)
	if b <= a {
		if a == tl.Width {
			a--
		}
		b = a + 1
	}
	return strings.Repeat(gapChar, a) + strings.Repeat(barChar, b-a) + strings.Repeat(gapChar, tl.Width-b)
}

// column returns the column boundary for t, clamped to [0, Width].
func (tl Timeline) column(t time.Time) int {
	span := float64(tl.End.Sub(tl.Start))
	c := int(float64(t.Sub(tl.Start)) / span * float64(tl.Width))
	if c < 0 {
		return 0
	}
	if c > tl.Width {
		return tl.Width
	}
	return c
}
