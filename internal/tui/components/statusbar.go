package components

import (
	"strings"

	"github.com/pablasso/tempo/internal/tui/styles"
)

// StatusBar renders the bottom help bar of the viewer.
type StatusBar struct {
	separator string
}

// NewStatusBar creates a new StatusBar instance.
func NewStatusBar() StatusBar {
	return StatusBar{separator: " • "}
}

// Render returns the status bar string for the given width and items.
// Items are joined with the separator and padded to fill the width.
func (s StatusBar) Render(width int, items []string) string {
	return styles.Muted.Width(width).Render(strings.Join(items, s.separator))
}
