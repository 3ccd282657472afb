// Package tui implements the interactive schedule viewer.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pablasso/tempo/internal/display"
	"github.com/pablasso/tempo/internal/schedule"
	"github.com/pablasso/tempo/internal/tui/components"
	"github.com/pablasso/tempo/internal/tui/styles"
)

const (
	MinTerminalWidth  = 60
	MinTerminalHeight = 12
)

const (
	idWidth    = 8
	nameWidth  = 24
	startWidth = 12 // "Mon 02 15:04"
	minBar     = 10
)

var helpItems = []string{"↑↓ Select", "g/G Top/Bottom", "q Quit"}

// Model shows one schedule as a list of tasks with a timeline bar each.
type Model struct {
	title     string
	res       *schedule.Result
	summary   string
	list      components.List
	statusBar components.StatusBar
	width     int
	height    int
}

// New creates a viewer for res. It renders nothing until the first window
// size message arrives.
func New(title string, res *schedule.Result) Model {
	return Model{
		title:     title,
		res:       res,
		summary:   display.Summary(res),
		list:      components.NewList(0, 0),
		statusBar: components.NewStatusBar(),
	}
}

// Run starts the viewer and blocks until the user quits.
func Run(title string, res *schedule.Result) error {
	p := tea.NewProgram(
		New(title, res),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) layout() {
	listHeight := m.height - lipgloss.Height(m.header()) - 2 // detail line and status bar
	m.list.SetSize(m.width, max(listHeight, 0))
	m.list.SetRows(m.rows())
}

func (m Model) header() string {
	return styles.Title.Render(m.title) + "\n" + m.summary + "\n"
}

// rows renders one line per entry, fitted to the list's content width.
func (m Model) rows() []string {
	barWidth := max(m.list.ContentWidth()-2-idWidth-nameWidth-startWidth-3, minBar)
	tl := components.NewTimeline(m.res.Start, m.res.End, barWidth)

	rows := make([]string, len(m.res.Entries))
	for i, e := range m.res.Entries {
		rows[i] = fmt.Sprintf("%-*s %-*s %-*s %s",
			idWidth, fit(e.ID, idWidth),
			nameWidth, fit(e.Name, nameWidth),
			startWidth, e.Start.Format("Mon 02 15:04"),
			tl.Bar(e.Start, e.End))
	}
	return rows
}

func fit(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func (m Model) detail() string {
	if len(m.res.Entries) == 0 {
		return ""
	}
	e := m.res.Entries[m.list.Selected()]
	return styles.Muted.Render(fmt.Sprintf("%s %s · %s → %s · %sh",
		e.ID, e.Name,
		e.Start.Format(display.TimeLayout),
		e.End.Format(display.TimeLayout),
		display.FormatHours(e)))
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return ""
	}
	if m.width < MinTerminalWidth || m.height < MinTerminalHeight {
		return m.renderTerminalTooSmall()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		strings.TrimSuffix(m.header(), "\n"),
		"",
		m.list.View(),
		m.detail(),
		m.statusBar.Render(m.width, helpItems),
	)
}

func (m Model) renderTerminalTooSmall() string {
	msg := fmt.Sprintf("Terminal too small\n\nMinimum: %dx%d\nCurrent: %dx%d",
		MinTerminalWidth, MinTerminalHeight, m.width, m.height)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, styles.Frame.Render(styles.Late.Render(msg)))
}
