package display

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/pablasso/tempo/internal/schedule"
	"github.com/pablasso/tempo/internal/tui/styles"
)

// TimeLayout is used for every wall-clock time shown in tables.
const TimeLayout = "Mon Jan 02 15:04"

const maxNameWidth = 40

var (
	headerStyle = styles.Highlight.Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// RenderTable writes res as a bordered table followed by a summary.
func RenderTable(w io.Writer, title string, res *schedule.Result) error {
	rows := make([][]string, 0, len(res.Entries))
	for _, e := range res.Entries {
		rows = append(rows, []string{
			e.ID,
			truncate(e.Name, maxNameWidth),
			e.Start.Format(TimeLayout),
			e.End.Format(TimeLayout),
			FormatHours(e),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.Muted).
		Headers("ID", "TASK", "START", "END", "HOURS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	var b strings.Builder
	if title != "" {
		b.WriteString(styles.Title.Render(title))
		b.WriteString("\n")
	}
	b.WriteString(t.String())
	b.WriteString("\n")
	b.WriteString(Summary(res))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// Summary describes the plan's span and its standing against the deadline.
func Summary(res *schedule.Result) string {
	lines := []string{
		fmt.Sprintf("%d tasks, %s of work at %sh/day, %s → %s",
			len(res.Entries),
			formatTotal(res),
			trimFloat(res.WorkHoursPerDay),
			res.Start.Format(TimeLayout),
			res.End.Format(TimeLayout)),
	}

	if res.Deadline != nil {
		deadline := res.Deadline.Format("2006-01-02")
		switch {
		case !res.DeadlineFeasible:
			lines = append(lines, styles.Late.Render(fmt.Sprintf(
				"Deadline %s missed even at %.0f%% of estimates (unconstrained end %s)",
				deadline, res.CompressionRatio*100, res.NaiveEnd.Format(TimeLayout))))
		case res.Compressed():
			lines = append(lines, styles.Squeezed.Render(fmt.Sprintf(
				"Deadline %s met by compressing estimates to %.0f%%",
				deadline, res.CompressionRatio*100)))
		default:
			lines = append(lines, styles.OnTime.Render(fmt.Sprintf("Deadline %s met", deadline)))
		}
	}
	return strings.Join(lines, "\n")
}

// FormatHours shows the scheduled duration, preceded by the original estimate
// when compression changed it.
func FormatHours(e schedule.Entry) string {
	if e.DurationHours != e.OriginalHours {
		return fmt.Sprintf("%.1f → %.1f", e.OriginalHours, e.DurationHours)
	}
	return fmt.Sprintf("%.1f", e.DurationHours)
}

func formatTotal(res *schedule.Result) string {
	if res.Compressed() {
		return fmt.Sprintf("%.1fh (%.1fh estimated)", res.TotalHours*res.CompressionRatio, res.TotalHours)
	}
	return fmt.Sprintf("%.1fh", res.TotalHours)
}

func trimFloat(f float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", f), "0"), ".")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// RenderJSON writes v as indented JSON.
func RenderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
