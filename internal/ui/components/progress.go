package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/pylearn/internal/ui/theme"
)

// ProgressBar shows completed days out of a total. When every day fits in
// the width it draws one cell per day, otherwise the cells are scaled.
type ProgressBar struct {
	Label string
	Done  int
	Total int
	Width int
}

// NewProgressBar creates a bar for done of total days.
func NewProgressBar(label string, done, total, width int) ProgressBar {
	return ProgressBar{Label: label, Done: done, Total: total, Width: width}
}

// Percent is the completed share rounded down, 0 for an empty total.
func (p ProgressBar) Percent() int {
	if p.Total <= 0 {
		return 0
	}
	return min(max(p.Done, 0), p.Total) * 100 / p.Total
}

func (p ProgressBar) View() string {
	var b strings.Builder
	if p.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  ")
	}
	pct := fmt.Sprintf("  %d%%", p.Percent())

	cells := max(p.Width-lipgloss.Width(b.String())-len(pct), 4)
	filled := cells * p.Percent() / 100
	if p.Total > 0 && p.Total <= cells {
		cells = p.Total
		filled = min(max(p.Done, 0), p.Total)
	}

	fill := theme.ProgressFilled
	if p.Total > 0 && p.Done >= p.Total {
		fill = theme.Done
	}
	b.WriteString(fill.Render(strings.Repeat("▰", filled)))
	b.WriteString(theme.ProgressEmpty.Render(strings.Repeat("▱", cells-filled)))
	b.WriteString(theme.Hint.Render(pct))
	return b.String()
}
