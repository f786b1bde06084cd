package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title != "" {
		return box.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return box.Render(content)
}

// FormatMinutes renders minutes as "7h 30m", "45m" or "0m".
func FormatMinutes(min int) string {
	if min <= 0 {
		return "0m"
	}
	h, m := min/60, min%60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}

// Clock renders the local wall-clock time of t, or a dim dash for nil.
func Clock(t *time.Time) string {
	if t == nil {
		return Dim("—")
	}
	return t.Local().Format("15:04")
}

// Day renders t as "Mon 2006-01-02".
func Day(t time.Time) string {
	return t.Format("Mon 2006-01-02")
}
