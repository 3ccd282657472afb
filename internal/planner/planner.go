// Package planner is the service layer in front of the scheduling core. It
// resolves date expressions against a clock, applies defaults, and records
// logs and metrics for every call.
package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pablasso/tempo/internal/ctxlog"
	"github.com/pablasso/tempo/internal/dates"
	"github.com/pablasso/tempo/internal/metrics"
	"github.com/pablasso/tempo/internal/schedule"
)

const (
	DefaultHoursPerDay  = 6
	DefaultDayStartHour = 9
	DefaultStart        = "today"
)

// ErrDateOutOfRange reports a plan whose computed dates fall past
// dates.MaxYear.
var ErrDateOutOfRange = errors.New("schedule date out of range")

// Config configures a Service.
type Config struct {
	Location     *time.Location
	HoursPerDay  float64 // used when a request leaves it unset
	DayStartHour int
	Clock        func() time.Time
	Source       string // metrics label, e.g. "cli" or "http"
}

// Request is one scheduling request in caller terms.
type Request struct {
	Tasks           []schedule.Task
	Start           string // date expression; empty means today
	Deadline        string // date expression; empty means no deadline
	WorkHoursPerDay float64
}

// Service schedules requests. It holds no per-request state and is safe for
// concurrent use.
type Service struct {
	cfg Config
}

// NewService returns a Service with defaults filled in.
func NewService(cfg Config) *Service {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.HoursPerDay == 0 {
		cfg.HoursPerDay = DefaultHoursPerDay
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &Service{cfg: cfg}
}

// Plan resolves the request's dates and schedules its tasks. The start is
// resolved against the service clock; the deadline is resolved against the
// start, so "in 2 weeks" means two weeks after the plan begins.
func (s *Service) Plan(ctx context.Context, req Request) (*schedule.Result, error) {
	logger := ctxlog.FromContext(ctx)
	began := time.Now()

	res, err := s.plan(ctx, req)

	outcome := metrics.Outcome{
		Source:    s.cfg.Source,
		ErrorCode: ErrorCode(err),
		Duration:  time.Since(began),
	}
	if res != nil {
		outcome.Compressed = res.Compressed()
		outcome.Infeasible = !res.DeadlineFeasible
	}
	metrics.ObserveSchedule(outcome)

	if err != nil {
		logger.Warn("Scheduling failed.", "code", outcome.ErrorCode, "error", err)
		return nil, err
	}

	logger.Info("Schedule computed.",
		"tasks", len(res.Entries),
		"end", res.End.Format(time.DateTime),
		"ratio", res.CompressionRatio,
		"feasible", res.DeadlineFeasible,
	)
	if !res.DeadlineFeasible {
		logger.Warn("Deadline cannot be met even at maximum compression.", "deadline", res.Deadline.Format(time.DateOnly), "end", res.End.Format(time.DateTime))
	}
	return res, nil
}

func (s *Service) plan(ctx context.Context, req Request) (*schedule.Result, error) {
	logger := ctxlog.FromContext(ctx)

	hours := req.WorkHoursPerDay
	if hours == 0 {
		hours = s.cfg.HoursPerDay
	}

	startExpr := req.Start
	if strings.TrimSpace(startExpr) == "" {
		startExpr = DefaultStart
	}
	now := s.cfg.Clock().In(s.cfg.Location)
	start, err := dates.Resolve(startExpr, now)
	if err != nil {
		return nil, fmt.Errorf("resolve start: %w", err)
	}

	var deadline *time.Time
	if strings.TrimSpace(req.Deadline) != "" {
		d, err := dates.Resolve(req.Deadline, start)
		if err != nil {
			return nil, fmt.Errorf("resolve deadline: %w", err)
		}
		if d.Before(start) {
			logger.Warn("Deadline precedes start; treating it as the end of the start day.", "start", start.Format(time.DateOnly), "deadline", d.Format(time.DateOnly))
		}
		deadline = &d
	}

	logger.Debug("Scheduling request resolved.",
		"tasks", len(req.Tasks),
		"start", start.Format(time.DateOnly),
		"deadline", formatDeadline(deadline),
		"hours_per_day", hours,
	)

	res, err := schedule.Schedule(req.Tasks, schedule.Context{
		Start:           start,
		Deadline:        deadline,
		WorkHoursPerDay: hours,
		DayStartHour:    s.cfg.DayStartHour,
	})
	if err != nil {
		return nil, fmt.Errorf("schedule: %w", err)
	}
	last := res.NaiveEnd
	if res.End.After(last) {
		last = res.End
	}
	if last.Year() > dates.MaxYear {
		return nil, fmt.Errorf("%w: plan runs into year %d, past %d", ErrDateOutOfRange, last.Year(), dates.MaxYear)
	}
	return res, nil
}

func formatDeadline(d *time.Time) string {
	if d == nil {
		return "none"
	}
	return d.Format(time.DateOnly)
}

// ErrorCode maps an error from Plan to a stable machine-readable code.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, dates.ErrInvalidDateExpression):
		return "invalid_date_expression"
	case errors.Is(err, ErrDateOutOfRange):
		return "date_out_of_range"
	case errors.Is(err, schedule.ErrInvalidWorkHours):
		return "invalid_work_hours"
	case errors.Is(err, schedule.ErrEmptyBatch):
		return "empty_batch"
	case errors.Is(err, schedule.ErrInvalidTask):
		return "invalid_task"
	case errors.Is(err, schedule.ErrDuplicateTaskID):
		return "duplicate_task_id"
	case errors.Is(err, schedule.ErrUnknownDependency):
		return "unknown_dependency"
	case errors.Is(err, schedule.ErrDependencyCycle):
		return "dependency_cycle"
	default:
		return "internal"
	}
}
