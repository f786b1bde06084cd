package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// Align selects how a column pads its cells.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Table is a header row plus data rows, rendered with aligned columns.
// Widths are measured with lipgloss so styled cells line up.
type Table struct {
	Headers []string
	Rows    [][]string
	// Align holds per-column alignment; missing entries are AlignLeft.
	Align   []Align
}

func (t Table) align(i int) Align {
	if i < len(t.Align) {
		return t.Align[i]
	}
	return AlignLeft
}

func (t Table) widths() []int {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i := 0; i < len(widths) && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}
	return widths
}

// Render draws the table with a dim separator under the headers.
func (t Table) Render() string {
	if len(t.Headers) == 0 {
		return ""
	}
	widths := t.widths()

	var b strings.Builder
	headers := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		headers[i] = StyleHeader.Render(h)
	}
	t.writeRow(&b, headers, widths)

	rule := make([]string, len(widths))
	for i, w := range widths {
		rule[i] = StyleDim.Render(strings.Repeat("─", w))
	}
	t.writeRow(&b, rule, widths)

	for _, row := range t.Rows {
		t.writeRow(&b, row, widths)
	}
	return b.String()
}

func (t Table) writeRow(b *strings.Builder, cells []string, widths []int) {
	last := len(widths) - 1
	for i := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		pad := max(widths[i]-lipgloss.Width(cell), 0)
		if t.align(i) == AlignRight {
			b.WriteString(strings.Repeat(" ", pad))
			b.WriteString(cell)
		} else {
			b.WriteString(cell)
			if i < last {
				b.WriteString(strings.Repeat(" ", pad))
			}
		}
		if i < last {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")
}

// RenderTable renders left-aligned columns.
func RenderTable(headers []string, rows [][]string) string {
	return Table{Headers: headers, Rows: rows}.Render()
}
