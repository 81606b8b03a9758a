package export

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"cli-grid/internal/grid"
	"cli-grid/internal/locale"
)

var (
	plainBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	plainHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7aa2f7")).Padding(0, 1)
	plainCellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// Plain renders the current page of t as a bordered table followed by the
// row summary and the page window.
func Plain(t grid.Table, s locale.Strings) string {
	cols := t.VisibleColumns()

	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Title()
		switch t.SortDirection(c.Key) {
		case 1:
			headers[i] += " ▲"
		case -1:
			headers[i] += " ▼"
		}
	}

	rows := make([][]string, 0, t.PageSize())
	for _, r := range t.PageRows() {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = c.Render(r.Record)
		}
		rows = append(rows, cells)
	}
	if len(rows) == 0 && len(cols) > 0 {
		empty := make([]string, len(cols))
		empty[0] = s.NoData
		rows = append(rows, empty)
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(plainBorderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return plainHeaderStyle
			}
			return plainCellStyle
		})

	sum := t.Summary()
	var b strings.Builder
	b.WriteString(tbl.String())
	b.WriteString("\n")
	b.WriteString(s.Summary(sum.From, sum.To, sum.Total))
	b.WriteString("\n")
	b.WriteString(PageBar(t))
	b.WriteString("\n")
	return b.String()
}

// PageBar is the page window as text, the current page in brackets.
func PageBar(t grid.Table) string {
	window := t.Window()
	parts := make([]string, 0, len(window)+2)
	parts = append(parts, "‹")
	for _, tok := range window {
		if tok.IsPage() && tok.Index == t.PageIndex() {
			parts = append(parts, "["+tok.String()+"]")
			continue
		}
		parts = append(parts, tok.String())
	}
	parts = append(parts, "›")
	return strings.Join(parts, " ")
}
