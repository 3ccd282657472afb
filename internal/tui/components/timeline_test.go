package components

import (
	"testing"
	"time"
)

func TestTimeline_Bar(t *testing.T) {
	start := time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC)
	tl := NewTimeline(start, start.Add(10*time.Hour), 10)

	tests := []struct {
		name     string
		from, to time.Duration
		expected string
	}{
		{"first half", 0, 5 * time.Hour, "■■■■■·····"},
		{"second half", 5 * time.Hour, 10 * time.Hour, "·····■■■■■"},
		{"whole span", 0, 10 * time.Hour, "■■■■■■■■■■"},
		{"short interval gets one column", 0, time.Minute, "■·········"},
		{"short interval at the end", 10*time.Hour - time.Minute, 10 * time.Hour, "·········■"},
		{"milestone at start", 0, 0, "◆·········"},
		{"milestone at end", 10 * time.Hour, 10 * time.Hour, "·········◆"},
		{"clamped before start", -2 * time.Hour, 3 * time.Hour, "■■■·······"},
		{"clamped after end", 8 * time.Hour, 12 * time.Hour, "········■■"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tl.Bar(start.Add(tt.from), start.Add(tt.to))
			if result != tt.expected {
				t.Errorf("Bar() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestTimeline_Bar_Degenerate(t *testing.T) {
	start := time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC)

	if got := NewTimeline(start, start.Add(time.Hour), 0).Bar(start, start.Add(time.Hour)); got != "" {
		t.Errorf("expected empty bar for zero width, got %q", got)
	}
	if got := NewTimeline(start, start, 10).Bar(start, start); got != "" {
		t.Errorf("expected empty bar for empty span, got %q", got)
	}
}
