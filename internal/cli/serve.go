package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pablasso/tempo/internal/ctxlog"
	"github.com/pablasso/tempo/internal/planner"
	"github.com/pablasso/tempo/internal/server"
)

const shutdownTimeout = 10 * time.Second

// ServeOptions configures the HTTP server.
type ServeOptions struct {
	Addr         string
	HoursPerDay  float64
	DayStartHour int
	Location     *time.Location
}

var serveOpts ServeOptions

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the scheduling HTTP API",
	Long:  `Serve POST /v1/schedule, GET /health and GET /debug/vars until interrupted.`,
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&serveOpts.Addr, "addr", envString(envAddr, "127.0.0.1:8000"), "Listen address (env "+envAddr+")")
	f.Float64Var(&serveOpts.HoursPerDay, "hours-per-day", envFloat(envHoursPerDay, planner.DefaultHoursPerDay), "Default working hours per day (env "+envHoursPerDay+")")
	f.IntVar(&serveOpts.DayStartHour, "day-start", planner.DefaultDayStartHour, "Hour at which each working day starts (0-23)")
}

func runServe(cmd *cobra.Command, args []string) error {
	loc, err := loadLocation(rootOpts.tz)
	if err != nil {
		return err
	}
	opts := serveOpts
	opts.Location = loc

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return Serve(ctx, cmd.ErrOrStderr(), opts)
}

// Serve listens on opts.Addr and serves until ctx is done.
func Serve(ctx context.Context, w io.Writer, opts ServeOptions) error {
	ln, err := net.Listen("tcp", opts.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", opts.Addr, err)
	}
	return serveListener(ctx, w, ln, opts)
}

func serveListener(ctx context.Context, w io.Writer, ln net.Listener, opts ServeOptions) error {
	if opts.DayStartHour < 0 || opts.DayStartHour > 23 {
		ln.Close()
		return fmt.Errorf("invalid --day-start %d: must be within 0-23", opts.DayStartHour)
	}

	svc := planner.NewService(planner.Config{
		Location:     opts.Location,
		HoursPerDay:  opts.HoursPerDay,
		DayStartHour: opts.DayStartHour,
		Source:       "http",
	})
	srv := server.NewServer(svc, ctxlog.FromContext(ctx))

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	fmt.Fprintf(w, "%s Listening on http://%s\n", green("●"), ln.Addr())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	fmt.Fprintln(w, yellow("Shutting down..."))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return <-errCh
}
