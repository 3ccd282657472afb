package display

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/pablasso/tempo/internal/schedule"
)

var monday = time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)

func mustSchedule(t *testing.T, tasks []schedule.Task, deadline *time.Time) *schedule.Result {
	t.Helper()
	res, err := schedule.Schedule(tasks, schedule.Context{
		Start:           monday,
		Deadline:        deadline,
		WorkHoursPerDay: 6,
		DayStartHour:    9,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return res
}

func TestRenderTable(t *testing.T) {
	res := mustSchedule(t, []schedule.Task{
		{ID: "T1", Name: "Research", EstimatedHours: 6},
		{ID: "T2", Name: "Draft", EstimatedHours: 4, DependsOn: []string{"T1"}},
	}, nil)

	var out bytes.Buffer
	if err := RenderTable(&out, "launch", res); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := out.String()

	for _, want := range []string{
		"launch",
		"TASK",
		"Research",
		"Mon Jan 05 09:00",
		"Mon Jan 05 15:00",
		"Tue Jan 06 09:00",
		"Tue Jan 06 13:00",
		"6.0",
		"2 tasks, 10.0h of work at 6h/day",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Deadline") {
		t.Errorf("expected no deadline line without a deadline, got:\n%s", got)
	}
}

func TestRenderTable_Compressed(t *testing.T) {
	deadline := monday.AddDate(0, 0, 2)
	res := mustSchedule(t, []schedule.Task{
		{ID: "A", EstimatedHours: 20},
		{ID: "B", EstimatedHours: 20},
	}, &deadline)

	var out bytes.Buffer
	if err := RenderTable(&out, "", res); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := out.String()

	for _, want := range []string{
		"20.0 → 6.0",
		"12.0h (40.0h estimated)",
		"Deadline 2026-01-07 met by compressing estimates to 30%",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, got)
		}
	}
}

func TestSummary_Infeasible(t *testing.T) {
	deadline := monday.AddDate(0, 0, 1)
	res := mustSchedule(t, []schedule.Task{{ID: "big", EstimatedHours: 100}}, &deadline)

	got := Summary(res)
	if !strings.Contains(got, "Deadline 2026-01-06 missed even at 25% of estimates") {
		t.Errorf("unexpected summary:\n%s", got)
	}
}

func TestSummary_DeadlineMet(t *testing.T) {
	deadline := monday.AddDate(0, 0, 10)
	res := mustSchedule(t, []schedule.Task{{ID: "small", EstimatedHours: 1}}, &deadline)

	if got := Summary(res); !strings.Contains(got, "Deadline 2026-01-15 met") {
		t.Errorf("unexpected summary:\n%s", got)
	}
}

func TestFormatHours(t *testing.T) {
	tests := []struct {
		entry schedule.Entry
		want  string
	}{
		{schedule.Entry{DurationHours: 4, OriginalHours: 4}, "4.0"},
		{schedule.Entry{DurationHours: 1.2, OriginalHours: 4}, "4.0 → 1.2"},
		{schedule.Entry{}, "0.0"},
	}
	for _, tt := range tests {
		if got := FormatHours(tt.entry); got != tt.want {
			t.Errorf("FormatHours(%+v) = %q, want %q", tt.entry, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("expected unchanged, got %q", got)
	}
	if got := truncate("ünïcödé-heavy-name", 10); got != "ünïcödé..." {
		t.Errorf("expected rune-safe truncation, got %q", got)
	}
}

func TestRenderJSON(t *testing.T) {
	res := mustSchedule(t, []schedule.Task{{ID: "T1", EstimatedHours: 3}}, nil)

	var out bytes.Buffer
	if err := RenderJSON(&out, res); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if decoded["compression_ratio"] != 1.0 || decoded["deadline_feasible"] != true {
		t.Errorf("unexpected fields: %v", decoded)
	}
	if _, ok := decoded["deadline"]; ok {
		t.Error("expected deadline omitted when unset")
	}
	if !strings.Contains(out.String(), "\n  \"schedule\"") {
		t.Errorf("expected indented output, got %s", out.String())
	}
}
