package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"cli-grid/internal/grid"
)

// renderPreview shows every column of the cursor row, hidden ones included,
// with long values wrapped.
func (m GridModel) renderPreview(w, h int) string {
	var b strings.Builder

	rows := m.table.PageRows()
	if m.cursorRow >= len(rows) {
		return DimText.Render(m.strings.NoData)
	}
	row := rows[m.cursorRow]

	title := HeaderStyle.Render(fmt.Sprintf("Row %s", rowNumber(m.table, m.cursorRow)))
	hint := DimText.Render("j/k scroll | Esc close")
	b.WriteString(title + "  " + hint)
	b.WriteString("\n")
	b.WriteString(DimText.Render(strings.Repeat("─", w)))
	b.WriteString("\n")

	cols := m.table.Columns()
	labelW := 0
	for _, c := range cols {
		labelW = max(labelW, lipgloss.Width(c.Title()))
	}
	labelW = min(labelW, w/3)
	valueW := max(w-labelW-3, 10)

	var lines []string
	for _, c := range cols {
		label := truncate(c.Title(), labelW)
		label += strings.Repeat(" ", labelW-runewidth.StringWidth(label))
		style := AccentText
		if !m.table.IsVisible(c.Key) {
			style = DimText
		}

		val := c.Render(row.Record)
		if row.Record[c.Key] == nil && c.Cell == nil {
			val = NullText.Render("NULL")
		}
		for i, l := range strings.Split(wordWrap(val, valueW), "\n") {
			prefix := strings.Repeat(" ", labelW)
			if i == 0 {
				prefix = style.Render(label)
			}
			lines = append(lines, prefix+" │ "+l)
		}
	}

	viewH := h - 4
	if viewH < 1 {
		viewH = 1
	}

	scroll := m.previewScroll
	maxScroll := len(lines) - viewH
	if maxScroll < 0 {
		maxScroll = 0
	}
	if scroll > maxScroll {
		scroll = maxScroll
	}

	endLine := min(scroll+viewH, len(lines))
	for i := scroll; i < endLine; i++ {
		b.WriteString(lines[i])
		if i < endLine-1 {
			b.WriteString("\n")
		}
	}

	if len(lines) > viewH {
		b.WriteString("\n")
		b.WriteString(DimText.Render(fmt.Sprintf("[lines %d-%d of %d]", scroll+1, endLine, len(lines))))
	}

	return b.String()
}

// rowNumber is the one-based position of a page row among the filtered rows.
func rowNumber(t grid.Table, pageRow int) string {
	return fmt.Sprintf("%d of %d", t.PageIndex()*t.PageSize()+pageRow+1, len(t.FilteredRows()))
}

// wordWrap breaks s into lines no wider than width display cells.
func wordWrap(s string, width int) string {
	if width <= 0 || len(s) == 0 {
		return s
	}
	var result strings.Builder
	for li, line := range strings.Split(s, "\n") {
		if li > 0 {
			result.WriteString("\n")
		}
		for runewidth.StringWidth(line) > width {
			head := runewidth.Truncate(line, width, "")
			if head == "" {
				break
			}
			result.WriteString(head)
			result.WriteString("\n")
			line = line[len(head):]
		}
		result.WriteString(line)
	}
	return result.String()
}
