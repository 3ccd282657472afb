package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/pablasso/tempo/internal/ctxlog"
	"github.com/pablasso/tempo/internal/display"
	"github.com/pablasso/tempo/internal/plan"
	"github.com/pablasso/tempo/internal/planner"
	"github.com/pablasso/tempo/internal/schedule"
	"github.com/pablasso/tempo/internal/tui"
	"github.com/pablasso/tempo/pkg/client"
)

const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// ScheduleOptions configures a schedule run.
type ScheduleOptions struct {
	File         string
	Start        string
	Deadline     string
	HoursPerDay  float64
	DayStartHour int
	Format       string
	TUI          bool
	Remote       string

	Location *time.Location
	Now      func() time.Time // defaults to time.Now
}

var scheduleOpts ScheduleOptions

var scheduleCmd = &cobra.Command{
	Use:   "schedule <file>",
	Short: "Compute a schedule for a task batch",
	Long: `Load a task batch (.json, .hcl, or free text containing JSON) and print its
schedule. With --deadline, estimates are compressed uniformly when the plan
would otherwise overrun.`,
	Example: `  tempo schedule tasks.json
  tempo schedule launch.hcl --deadline "in 2 weeks" --hours-per-day 8
  tempo schedule reply.md --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runSchedule,
}

func init() {
	f := scheduleCmd.Flags()
	f.StringVar(&scheduleOpts.Start, "start", planner.DefaultStart, `Start date: today, tomorrow, "in N days|weeks" or YYYY-MM-DD`)
	f.StringVar(&scheduleOpts.Deadline, "deadline", "", "Deadline date, resolved relative to the start (same forms as --start)")
	f.Float64Var(&scheduleOpts.HoursPerDay, "hours-per-day", envFloat(envHoursPerDay, planner.DefaultHoursPerDay), "Working hours per day (env "+envHoursPerDay+")")
	f.IntVar(&scheduleOpts.DayStartHour, "day-start", planner.DefaultDayStartHour, "Hour at which each working day starts (0-23)")
	f.StringVar(&scheduleOpts.Format, "format", FormatTable, "Output format: table|json")
	f.BoolVar(&scheduleOpts.TUI, "tui", false, "Open the interactive schedule viewer")
	f.StringVar(&scheduleOpts.Remote, "remote", "", "Schedule on a running tempo server at this URL")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	loc, err := loadLocation(rootOpts.tz)
	if err != nil {
		return err
	}

	opts := scheduleOpts
	opts.File = args[0]
	opts.Location = loc
	return Schedule(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
}

// Schedule loads opts.File, schedules it locally or remotely, and renders the
// result.
func Schedule(ctx context.Context, stdout, stderr io.Writer, opts ScheduleOptions) error {
	if opts.Format != FormatTable && opts.Format != FormatJSON {
		return fmt.Errorf("invalid --format %q: expected %s or %s", opts.Format, FormatTable, FormatJSON)
	}

	batch, err := plan.LoadFile(ctx, opts.File, plan.LoadOptions{HoursPerDay: opts.HoursPerDay})
	if err != nil {
		return err
	}

	var res *schedule.Result
	if opts.Remote != "" {
		res, err = scheduleRemote(ctx, stderr, batch, opts)
	} else {
		res, err = scheduleLocal(ctx, batch, opts)
	}
	if err != nil {
		return err
	}

	switch {
	case opts.TUI:
		return tui.Run(batch.Name, res)
	case opts.Format == FormatJSON:
		return display.RenderJSON(stdout, res)
	}

	if err := display.RenderTable(stdout, batch.Name, res); err != nil {
		return err
	}
	if !res.DeadlineFeasible {
		fmt.Fprintln(stderr, red("✗ Deadline not met."), dim("Reduce scope, extend the deadline, or add working hours."))
	}
	return nil
}

func scheduleLocal(ctx context.Context, batch *plan.Batch, opts ScheduleOptions) (*schedule.Result, error) {
	svc := planner.NewService(planner.Config{
		Location:     opts.Location,
		HoursPerDay:  opts.HoursPerDay,
		DayStartHour: opts.DayStartHour,
		Clock:        opts.Now,
		Source:       "cli",
	})
	return svc.Plan(ctx, planner.Request{
		Tasks:           batch.ScheduleTasks(),
		Start:           opts.Start,
		Deadline:        opts.Deadline,
		WorkHoursPerDay: opts.HoursPerDay,
	})
}

// scheduleRemote sends the batch to a tempo server. The server applies its
// own clock, time zone and day start hour.
func scheduleRemote(ctx context.Context, stderr io.Writer, batch *plan.Batch, opts ScheduleOptions) (res *schedule.Result, err error) {
	logger := ctxlog.FromContext(ctx)

	if isTerminal(stderr) {
		status := display.NewStatusLine(stderr, "Scheduling on", opts.Remote)
		status.Start()
		defer func() {
			if err != nil {
				status.Stop(display.StatusFailed)
				return
			}
			status.Stop(display.StatusDone)
		}()
	}

	resp, err := client.NewClient(opts.Remote).Schedule(ctx, client.ScheduleRequest{
		Tasks:           batch.Tasks,
		StartDate:       opts.Start,
		Deadline:        opts.Deadline,
		WorkHoursPerDay: opts.HoursPerDay,
	})
	if err != nil {
		return nil, fmt.Errorf("remote schedule: %w", err)
	}

	logger.Debug("Remote schedule received.", "remote", opts.Remote, "request_id", resp.RequestID)
	return &resp.Result, nil
}
