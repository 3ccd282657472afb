package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pablasso/tempo/internal/tui/styles"
)

const (
	selectedPrefix   = "▸ "
	unselectedPrefix = "  "
)

// List is a scrollable, single-selection list of pre-rendered rows with a
// 1-column scrollbar on the right. Scrolling follows the selection.
type List struct {
	viewport viewport.Model
	rows     []string
	selected int
	width    int // total width including scrollbar
	height   int
}

// NewList creates an empty List. The width includes the scrollbar column.
func NewList(width, height int) List {
	l := List{}
	l.viewport = viewport.New(0, 0)
	l.SetSize(width, height)
	return l
}

// SetSize updates the list dimensions and keeps the selection in view.
func (l *List) SetSize(width, height int) {
	l.width = max(width, 0)
	l.height = max(height, 0)
	l.viewport.Width = l.ContentWidth()
	l.viewport.Height = l.height
	l.Select(l.selected)
}

// SetRows replaces the rows, clamping the selection.
func (l *List) SetRows(rows []string) {
	l.rows = append(l.rows[:0:0], rows...)
	l.Select(l.selected)
}

// Selected returns the index of the selected row.
func (l List) Selected() int {
	return l.selected
}

// YOffset returns the index of the first visible row.
func (l List) YOffset() int {
	return l.viewport.YOffset
}

// ContentWidth returns the width available for rows, scrollbar excluded.
func (l List) ContentWidth() int {
	return max(l.width-1, 0)
}

// Select moves the selection to i, clamped to the rows, scrolling the minimum
// amount needed to keep it visible.
func (l *List) Select(i int) {
	if len(l.rows) == 0 {
		l.selected = 0
		l.viewport.SetContent("")
		return
	}
	l.selected = min(max(i, 0), len(l.rows)-1)
	l.refresh()

	top := l.viewport.YOffset
	switch {
	case l.height == 0:
	case l.selected < top:
		l.viewport.SetYOffset(l.selected)
	case l.selected >= top+l.height:
		l.viewport.SetYOffset(l.selected - l.height + 1)
	default:
		// Clamp after a resize or a shorter row set.
		l.viewport.SetYOffset(top)
	}
}

func (l *List) refresh() {
	var b strings.Builder
	for i, row := range l.rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i == l.selected {
			b.WriteString(styles.Highlight.Render(selectedPrefix + row))
		} else {
			b.WriteString(unselectedPrefix + row)
		}
	}
	l.viewport.SetContent(b.String())
}

// Update handles navigation keys and mouse wheel events.
func (l List) Update(msg tea.Msg) (List, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			l.Select(l.selected - 1)
		case "down", "j":
			l.Select(l.selected + 1)
		case "pgup", "ctrl+u":
			l.Select(l.selected - max(l.height, 1))
		case "pgdown", "ctrl+d":
			l.Select(l.selected + max(l.height, 1))
		case "home", "g":
			l.Select(0)
		case "end", "G":
			l.Select(len(l.rows) - 1)
		}
	case tea.MouseMsg:
		var cmd tea.Cmd
		l.viewport, cmd = l.viewport.Update(msg)
		return l, cmd
	}
	return l, nil
}

// View renders the visible rows with the scrollbar alongside.
func (l List) View() string {
	if l.height == 0 {
		return ""
	}

	contentLines := strings.Split(l.viewport.View(), "\n")
	scrollbarLines := strings.Split(renderScrollbar(l.height, len(l.rows), l.viewport.YOffset), "\n")
	contentWidth := l.ContentWidth()

	var b strings.Builder
	for i := 0; i < l.height; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		line := ""
		if i < len(contentLines) {
			line = contentLines[i]
		}
		b.WriteString(line)
		if pad := contentWidth - lipgloss.Width(line); pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
		if i < len(scrollbarLines) {
			b.WriteString(scrollbarLines[i])
		}
	}
	return b.String()
}

// renderScrollbar draws a track with a thumb sized by the visible fraction.
// Content that fits renders as a blank gutter to keep the layout stable.
func renderScrollbar(viewHeight, contentHeight, yOffset int) string {
	if viewHeight <= 0 {
		return ""
	}
	if contentHeight <= viewHeight {
		return strings.Repeat(" \n", viewHeight-1) + " "
	}

	thumbSize := max(viewHeight*viewHeight/contentHeight, 1)
	thumbMaxTop := viewHeight - thumbSize
	thumbTop := yOffset * thumbMaxTop / (contentHeight - viewHeight)
	thumbTop = min(max(thumbTop, 0), thumbMaxTop)

	lines := make([]string, viewHeight)
	for i := range lines {
		if i >= thumbTop && i < thumbTop+thumbSize {
			lines[i] = "█"
		} else {
			lines[i] = styles.Muted.Render("│")
		}
	}
	return strings.Join(lines, "\n")
}
