package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pablasso/tempo/internal/dates"
	"github.com/pablasso/tempo/internal/plan"
	"github.com/pablasso/tempo/internal/planner"
	"github.com/pablasso/tempo/internal/schedule"
	"github.com/pablasso/tempo/internal/server"
	"github.com/pablasso/tempo/internal/testutil"
)

func fixedNow() time.Time {
	return time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC)
}

func testOptions(file string) ScheduleOptions {
	return ScheduleOptions{
		File:         file,
		Start:        "2026-11-02",
		HoursPerDay:  6,
		DayStartHour: 9,
		Format:       FormatTable,
		Location:     time.UTC,
		Now:          fixedNow,
	}
}

func TestSchedule_Table(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "launch.json", testutil.ChainBatchJSON)

	var stdout, stderr bytes.Buffer
	if err := Schedule(context.Background(), &stdout, &stderr, testOptions(path)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := stdout.String()
	for _, want := range []string{
		"launch",
		"Research",
		"Mon Nov 02 09:00",
		"Thu Nov 05 15:00",
		"3 tasks, 22.0h of work at 6h/day",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, got)
		}
	}
	if stderr.Len() != 0 {
		t.Errorf("expected empty stderr, got %q", stderr.String())
	}
}

func TestSchedule_JSON(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "launch.json", testutil.ChainBatchJSON)

	opts := testOptions(path)
	opts.Format = FormatJSON
	opts.Deadline = "in 1 week"

	var stdout, stderr bytes.Buffer
	if err := Schedule(context.Background(), &stdout, &stderr, opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var res schedule.Result
	if err := json.Unmarshal(stdout.Bytes(), &res); err != nil {
		t.Fatalf("failed to decode output: %v\n%s", err, stdout.String())
	}
	if len(res.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(res.Entries))
	}
	if !res.DeadlineFeasible || res.CompressionRatio != 1 {
		t.Errorf("expected feasible uncompressed plan, got ratio=%v feasible=%v", res.CompressionRatio, res.DeadlineFeasible)
	}
	want := time.Date(2026, time.November, 5, 15, 0, 0, 0, time.UTC)
	if !res.End.Equal(want) {
		t.Errorf("expected end %v, got %v", want, res.End)
	}
}

func TestSchedule_HCLUsesHoursPerDay(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "plan.hcl", `
plan "release" {
  description = "one day of work"
}

task "T1" {
  name  = "Build"
  hours = day
}
`)

	opts := testOptions(path)
	opts.HoursPerDay = 8
	opts.Format = FormatJSON

	var stdout, stderr bytes.Buffer
	if err := Schedule(context.Background(), &stdout, &stderr, opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var res schedule.Result
	if err := json.Unmarshal(stdout.Bytes(), &res); err != nil {
		t.Fatalf("failed to decode output: %v", err)
	}
	if res.TotalHours != 8 || res.WorkHoursPerDay != 8 {
		t.Errorf("expected one 8h day, got total=%v per day=%v", res.TotalHours, res.WorkHoursPerDay)
	}
}

func TestSchedule_InfeasibleDeadlineWarns(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "huge.json", `{"tasks": [{"id": "huge", "estimated_hours": 200}]}`)

	opts := testOptions(path)
	opts.HoursPerDay = 8
	opts.Deadline = "in 2 days"

	var stdout, stderr bytes.Buffer
	if err := Schedule(context.Background(), &stdout, &stderr, opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout.String(), "missed even at 25% of estimates") {
		t.Errorf("expected infeasible summary, got:\n%s", stdout.String())
	}
	if !strings.Contains(stderr.String(), "Deadline not met.") {
		t.Errorf("expected warning on stderr, got %q", stderr.String())
	}
}

func TestSchedule_Errors(t *testing.T) {
	dir := t.TempDir()
	chain := testutil.WriteFile(t, dir, "launch.json", testutil.ChainBatchJSON)
	cyclic := testutil.WriteFile(t, dir, "cycle.json", `{"tasks": [
		{"id": "A", "estimated_hours": 1, "depends_on": ["B"]},
		{"id": "B", "estimated_hours": 1, "depends_on": ["A"]}
	]}`)

	tests := []struct {
		name   string
		mutate func(*ScheduleOptions)
		want   error
	}{
		{"bad start", func(o *ScheduleOptions) { o.Start = "someday" }, dates.ErrInvalidDateExpression},
		{"bad hours", func(o *ScheduleOptions) { o.HoursPerDay = 25 }, schedule.ErrInvalidWorkHours},
		{"cycle", func(o *ScheduleOptions) { o.File = cyclic }, schedule.ErrDependencyCycle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions(chain)
			tt.mutate(&opts)
			var stdout, stderr bytes.Buffer
			err := Schedule(context.Background(), &stdout, &stderr, opts)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if stdout.Len() != 0 {
				t.Errorf("expected no output on error, got:\n%s", stdout.String())
			}
		})
	}
}

func TestSchedule_InvalidFormat(t *testing.T) {
	opts := testOptions("unused.json")
	opts.Format = "yaml"
	err := Schedule(context.Background(), io.Discard, io.Discard, opts)
	if err == nil || !strings.Contains(err.Error(), "invalid --format") {
		t.Fatalf("expected format error, got %v", err)
	}
}

func TestSchedule_MissingFile(t *testing.T) {
	opts := testOptions(t.TempDir() + "/missing.json")
	err := Schedule(context.Background(), io.Discard, io.Discard, opts)
	if err == nil || !strings.Contains(err.Error(), "failed to read batch file") {
		t.Fatalf("expected read error, got %v", err)
	}
}

func TestSchedule_EmptyBatch(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "empty.json", `{"tasks": []}`)
	err := Schedule(context.Background(), io.Discard, io.Discard, testOptions(path))
	if !errors.Is(err, plan.ErrNoTasks) {
		t.Fatalf("expected ErrNoTasks, got %v", err)
	}
}

func TestSchedule_Remote(t *testing.T) {
	svc := planner.NewService(planner.Config{Location: time.UTC, DayStartHour: 9})
	ts := httptest.NewServer(server.NewServer(svc, slog.New(slog.NewTextHandler(io.Discard, nil))).Handler())
	defer ts.Close()

	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "launch.json", testutil.ChainBatchJSON)

	opts := testOptions(path)
	opts.Remote = ts.URL
	opts.Format = FormatJSON

	var stdout, stderr bytes.Buffer
	if err := Schedule(context.Background(), &stdout, &stderr, opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var res schedule.Result
	if err := json.Unmarshal(stdout.Bytes(), &res); err != nil {
		t.Fatalf("failed to decode output: %v", err)
	}
	want := time.Date(2026, time.November, 5, 15, 0, 0, 0, time.UTC)
	if !res.End.Equal(want) {
		t.Errorf("expected end %v, got %v", want, res.End)
	}
	if stderr.Len() != 0 {
		t.Errorf("expected no status line when stderr is not a terminal, got %q", stderr.String())
	}
}

func TestSchedule_RemoteError(t *testing.T) {
	svc := planner.NewService(planner.Config{Location: time.UTC, DayStartHour: 9})
	ts := httptest.NewServer(server.NewServer(svc, slog.New(slog.NewTextHandler(io.Discard, nil))).Handler())
	defer ts.Close()

	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "cycle.json", `{"tasks": [
		{"id": "A", "estimated_hours": 1, "depends_on": ["B"]},
		{"id": "B", "estimated_hours": 1, "depends_on": ["A"]}
	]}`)

	opts := testOptions(path)
	opts.Remote = ts.URL

	err := Schedule(context.Background(), io.Discard, io.Discard, opts)
	if err == nil || !strings.Contains(err.Error(), "dependency_cycle") {
		t.Fatalf("expected remote cycle error, got %v", err)
	}
}
