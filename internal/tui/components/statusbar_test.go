package components

import (
	"strings"
	"testing"
)

func TestStatusBar_Render_MultipleItems(t *testing.T) {
	sb := NewStatusBar()
	result := sb.Render(60, []string{"↑↓ Select", "q Quit"})

	if !strings.Contains(result, "↑↓ Select • q Quit") {
		t.Errorf("expected items joined with ' • ', got: %s", result)
	}
}

func TestStatusBar_Render_EmptyItems(t *testing.T) {
	sb := NewStatusBar()
	result := sb.Render(50, nil)

	if strings.TrimSpace(result) != "" {
		t.Errorf("expected blank bar, got: %q", result)
	}
}

func TestStatusBar_Render_NarrowWidth(t *testing.T) {
	sb := NewStatusBar()
	result := sb.Render(10, []string{"↑↓ Select", "g/G Top/Bottom", "q Quit"})

	// Content wraps rather than being dropped.
	if result == "" {
		t.Error("expected non-empty result even with narrow width")
	}
}
