package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/pylearn/internal/progress"
	"github.com/abhisek/pylearn/internal/ui/components"
	"github.com/abhisek/pylearn/internal/ui/theme"
)

const titleFull = `╔═╗┬ ┬╦  ┌─┐┌─┐┬─┐┌┐┌
╠═╝└┬┘║  ├┤ ├─┤├┬┘│││
╩   ┴ ╩═╝└─┘┴ ┴┴└─┘└┘`

const titleCompact = "P · Y · L · E · A · R · N"

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	// frame border (2) + inner padding (4)
	w := frameWidth - 6
	if w > 70 {
		w = 70
	}
	if w < 20 {
		w = 20
	}
	return w
}

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true)

	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

func renderQuote(quote string, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Italic(true).
		Render("“" + quote + "”")
}

// renderSummaryBar shows overall completion and the reminder time.
func renderSummaryBar(sum progress.Summary, reminder string, cw int, compact bool) string {
	doneStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	bellStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s  %s",
			doneStyle.Render(fmt.Sprintf("✓%d/%d", sum.Completed, sum.Total)),
			bellStyle.Render("⏰"+reminder))
	} else {
		stats = fmt.Sprintf("%s   %s",
			doneStyle.Render(fmt.Sprintf("✓ %d OF %d DAYS DONE", sum.Completed, sum.Total)),
			bellStyle.Render("⏰ REMINDER "+strings.ToUpper(reminder)))
	}

	bar := components.NewProgressBar("", sum.Completed, sum.Total, cw-6).View()

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats + "\n" + bar)
}

// renderMenu draws the menu with a mini progress bar next to every week.
func renderMenu(m components.Menu, sum progress.Summary, cw int) string {
	const barWidth = 12

	labelWidth := 0
	for _, item := range m.Items {
		labelWidth = max(labelWidth, lipgloss.Width(item.Label))
	}
	labelWidth = min(labelWidth, cw-barWidth-12)

	var lines []string
	for i, item := range m.Items {
		label := item.Label
		if lipgloss.Width(label) > labelWidth {
			label = string([]rune(label)[:max(labelWidth-1, 1)]) + "…"
		}
		label = fmt.Sprintf("%-*s", labelWidth, label)

		var line string
		switch {
		case item.Disabled:
			line = lipgloss.NewStyle().Foreground(theme.TextDim).Render("   " + label)
		case i == m.Selected:
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Secondary).
				Bold(true).
				Render(" ▸ " + label)
		default:
			line = theme.Unselected.Render("   " + label)
		}

		if w := i - 1; w >= 0 && w < len(sum.Weeks) {
			ws := sum.Weeks[w]
			line += "  " + miniBar(ws.Completed, ws.Week.MaxDay, barWidth) +
				" " + theme.Hint.Render(item.Detail)
			if ws.Current {
				line += " " + theme.Current.Render("▶")
			}
		}
		lines = append(lines, line)
		if i == 0 || i == len(sum.Weeks) {
			lines = append(lines, "")
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Left).
		PaddingLeft(2).
		Render(strings.Join(lines, "\n"))
}

func miniBar(done, total, width int) string {
	filled := 0
	if total > 0 {
		filled = done * width / total
	}
	return theme.ProgressFilled.Render(strings.Repeat("▰", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat("▱", width-filled))
}

// renderFrame wraps content in a double-border frame, centered in the
// given dimensions.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
