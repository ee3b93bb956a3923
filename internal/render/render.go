// Package render formats tasks and controller state for the terminal.
// Scores are shown with two decimals and coloured by priority band.
package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/phrazzld/smarttask/internal/domain"
	"github.com/phrazzld/smarttask/internal/domain/priority"
	"github.com/phrazzld/smarttask/internal/service/tasksync"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("243"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
	bandStyles  = map[priority.Band]lipgloss.Style{
		priority.BandHigh:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		priority.BandMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		priority.BandLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	}
	fallbackBadge = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(lipgloss.Color("214")).
			Foreground(lipgloss.Color("0"))
	liveBadge = lipgloss.NewStyle().
			Padding(0, 1).
			Background(lipgloss.Color("28")).
			Foreground(lipgloss.Color("255"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

const maxTitleWidth = 40

// Score formats a score with two decimals.
func Score(score float64) string {
	return strconv.FormatFloat(priority.Round2(score), 'f', 2, 64)
}

// DaysLeft describes the time to a deadline.
func DaysLeft(days int) string {
	switch {
	case days < 0:
		return fmt.Sprintf("%dd overdue", -days)
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	default:
		return fmt.Sprintf("%dd", days)
	}
}

// TaskTable renders tasks in the given order as an aligned table.
func TaskTable(tasks []domain.Task, asOf time.Time) string {
	if len(tasks) == 0 {
		return faintStyle.Render("No tasks.")
	}

	headers := []string{"ID", "TITLE", "DEADLINE", "DUE", "IMP", "SP", "SCORE"}
	rows := make([][]string, len(tasks))
	for i, t := range tasks {
		rows[i] = []string{
			t.ID,
			truncate(t.Title, maxTitleWidth),
			t.Deadline.String(),
			DaysLeft(priority.DaysLeft(t, asOf)),
			strconv.Itoa(t.Importance),
			strconv.Itoa(t.Complexity),
			Score(t.Score),
		}
	}

	widths := make([]int, len(headers))
	for c, h := range headers {
		widths[c] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for c, cell := range row {
			if w := lipgloss.Width(cell); w > widths[c] {
				widths[c] = w
			}
		}
	}

	var b strings.Builder
	b.WriteString(formatRow(headers, widths, func(int) lipgloss.Style { return headerStyle }))
	for i, row := range rows {
		band := priority.BandOf(tasks[i].Score)
		b.WriteByte('\n')
		b.WriteString(formatRow(row, widths, func(c int) lipgloss.Style {
			if c == len(row)-1 {
				return bandStyles[band]
			}
			return lipgloss.NewStyle()
		}))
	}
	return b.String()
}

func formatRow(cells []string, widths []int, style func(col int) lipgloss.Style) string {
	parts := make([]string, len(cells))
	for c, cell := range cells {
		s := style(c).Width(widths[c])
		if c >= 4 {
			s = s.Align(lipgloss.Right)
		}
		parts[c] = s.Render(cell)
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ")
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

// ModeBanner describes the controller mode. In fallback mode it includes the
// reason the server could not be used, when known.
func ModeBanner(mode tasksync.Mode, reason error) string {
	switch mode {
	case tasksync.ModeFallback:
		line := fallbackBadge.Render("DEMO MODE") + " Server unavailable, working locally. Changes are not saved."
		if reason != nil {
			line += "\n" + faintStyle.Render(reason.Error())
		}
		return line
	case tasksync.ModeLive:
		return liveBadge.Render("LIVE")
	default:
		return faintStyle.Render("not loaded")
	}
}

// Error formats an error for the terminal.
func Error(err error) string {
	return errorStyle.Render("error: " + err.Error())
}
