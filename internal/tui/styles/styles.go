// Package styles defines the lipgloss styles shared by the table renderer and
// the schedule viewer. Styles are named for what they mark in a schedule.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	accent   = lipgloss.Color("#5FAFAF")
	muted    = lipgloss.Color("#666666")
	onTime   = lipgloss.Color("#87AF87")
	squeezed = lipgloss.Color("#D7AF5F")
	late     = lipgloss.Color("#AF5F5F")
)

var (
	// Title marks the batch name above a schedule.
	Title = lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1)

	// Highlight marks column headers and the selected task.
	Highlight = lipgloss.NewStyle().Bold(true).Foreground(accent)

	// Muted is used for borders, key hints and the detail line.
	Muted = lipgloss.NewStyle().Foreground(muted)

	OnTime   = lipgloss.NewStyle().Foreground(onTime)
	Squeezed = lipgloss.NewStyle().Foreground(squeezed)
	Late     = lipgloss.NewStyle().Foreground(late)

	// Frame boxes the terminal-size warning.
	Frame = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(muted).
		Padding(1, 2)
)
