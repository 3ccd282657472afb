package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pablasso/tempo/internal/plan"
	"github.com/pablasso/tempo/internal/schedule"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a task batch for structural errors",
	Long:  `Check a task batch for missing or duplicate IDs, unknown dependencies and cycles, then print the dependency order and which tasks each one unblocks.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Validate(cmd.Context(), cmd.OutOrStdout(), args[0])
	},
}

// Validate loads the batch at path and reports its dependency order.
func Validate(ctx context.Context, w io.Writer, path string) error {
	batch, err := plan.LoadFile(ctx, path, plan.LoadOptions{})
	if err != nil {
		return err
	}

	g, err := schedule.BuildGraph(batch.ScheduleTasks())
	if err != nil {
		return err
	}
	order, err := g.Order()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s %s: %d tasks\n", green("✓"), batch.Name, g.Len())
	fmt.Fprintf(w, "  %s %s\n", dim("roots:"), strings.Join(g.Roots(), ", "))
	fmt.Fprintf(w, "  %s %s\n", dim("order:"), strings.Join(order, " → "))
	for _, id := range order {
		if next := g.Dependents(id); len(next) > 0 {
			fmt.Fprintf(w, "  %s %s %s\n", id, dim("unblocks"), strings.Join(next, ", "))
		}
	}
	return nil
}
