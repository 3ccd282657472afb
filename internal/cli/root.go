package cli

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/pablasso/tempo/internal/ctxlog"
	"github.com/pablasso/tempo/internal/version"
)

const (
	envHoursPerDay = "TEMPO_HOURS_PER_DAY"
	envAddr        = "TEMPO_ADDR"
	envLogLevel    = "TEMPO_LOG_LEVEL"
)

type rootOptions struct {
	logLevel  string
	logFormat string
	tz        string
}

var rootOpts rootOptions

var rootCmd = &cobra.Command{
	Use:   "tempo",
	Short: "Dependency-aware task scheduler",
	Long: `Tempo orders a batch of estimated tasks by their dependencies and lays them
out on a working-hours calendar, compressing estimates when a deadline demands it.`,
	Version:      version.Version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(rootOpts.logLevel, rootOpts.logFormat, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		cmd.SetContext(ctxlog.WithLogger(cmd.Context(), logger))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootOpts.logLevel, "log-level", envString(envLogLevel, "warn"), "Log level: debug|info|warn|error (env "+envLogLevel+")")
	rootCmd.PersistentFlags().StringVar(&rootOpts.logFormat, "log-format", "text", "Log format: text|json")
	rootCmd.PersistentFlags().StringVar(&rootOpts.tz, "tz", "", "IANA time zone for dates (default: local)")

	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid --tz: %w", err)
	}
	return loc, nil
}

// envFloat reads a float default from the environment, falling back to def
// when the variable is unset or malformed.
func envFloat(name string, def float64) float64 {
	v, ok := os.LookupEnv(name)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func envString(name, def string) string {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		return v
	}
	return def
}
