package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cli-grid/internal/grid"
	"cli-grid/internal/locale"
	"cli-grid/internal/pagination"
)

// RenderPager draws the pagination bar: the row summary followed by the
// previous arrow, the page window and the next arrow.
func RenderPager(t grid.Table, s locale.Strings, width int) string {
	sum := t.Summary()
	summary := DimText.Render(s.Summary(sum.From, sum.To, sum.Total))

	controls := renderPageControls(t)

	gap := width - lipgloss.Width(summary) - lipgloss.Width(controls)
	if gap < 1 {
		gap = 1
	}
	return summary + strings.Repeat(" ", gap) + controls
}

func renderPageControls(t grid.Table) string {
	parts := make([]string, 0, 9)

	prev := PageArrowDisabled.Render("‹")
	if t.CanPreviousPage() {
		prev = PageArrow.Render("‹")
	}
	parts = append(parts, prev)

	current := t.PageIndex()
	for _, tok := range t.Window() {
		switch {
		case tok.IsEllipsis():
			parts = append(parts, PageEllipsis.Render(tok.String()))
		case tok.Index == current:
			parts = append(parts, PageCurrent.Render(tok.String()))
		default:
			parts = append(parts, PageButton.Render(tok.String()))
		}
	}

	next := PageArrowDisabled.Render("›")
	if t.CanNextPage() {
		next = PageArrow.Render("›")
	}
	parts = append(parts, next)

	return strings.Join(parts, " ")
}

// windowPage returns the n-th page (one-based) among the page tokens of the
// window, skipping ellipses.
func windowPage(window []pagination.Token, n int) (int, bool) {
	seen := 0
	for _, tok := range window {
		if !tok.IsPage() {
			continue
		}
		seen++
		if seen == n {
			return tok.Index, true
		}
	}
	return 0, false
}
