// Package export writes a grid page outside the terminal.
package export

import (
	"embed"
	"fmt"
	"io"
	"strconv"

	"github.com/google/safehtml"
	"github.com/google/safehtml/template"

	"cli-grid/internal/grid"
	"cli-grid/internal/locale"
)

//go:embed templates/*
var templateFS embed.FS

var htmlTemplate = template.Must(template.New("grid.html").
	ParseFS(template.TrustedFSFromEmbed(templateFS), "templates/grid.html"))

type htmlHeader struct {
	Title string
	Sort  int
}

type htmlRow struct {
	Cells    []string
	Selected bool
}

type htmlLink struct {
	Label    string
	URL      safehtml.URL
	Enabled  bool
	Current  bool
	Ellipsis bool
}

type htmlPage struct {
	Title   string
	RTL     bool
	Headers []htmlHeader
	Rows    []htmlRow
	NoData  string
	Summary string
	Prev    htmlLink
	Next    htmlLink
	Pages   []htmlLink
}

// PageURL is the link to a zero-based page index.
func PageURL(index int) safehtml.URL {
	return safehtml.URLSanitized("?page=" + strconv.Itoa(index+1))
}

// HTML writes the visible columns and current page of t as a standalone
// HTML document with a pagination bar.
func HTML(w io.Writer, t grid.Table, s locale.Strings, title string) error {
	if err := htmlTemplate.Execute(w, newHTMLPage(t, s, title)); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

func newHTMLPage(t grid.Table, s locale.Strings, title string) htmlPage {
	cols := t.VisibleColumns()
	sum := t.Summary()
	page := htmlPage{
		Title:   title,
		RTL:     s.Dir == "rtl",
		NoData:  s.NoData,
		Summary: s.Summary(sum.From, sum.To, sum.Total),
		Prev: htmlLink{
			Label:   s.Previous,
			URL:     PageURL(t.PageIndex() - 1),
			Enabled: t.CanPreviousPage(),
		},
		Next: htmlLink{
			Label:   s.Next,
			URL:     PageURL(t.PageIndex() + 1),
			Enabled: t.CanNextPage(),
		},
	}

	for _, c := range cols {
		page.Headers = append(page.Headers, htmlHeader{Title: c.Title(), Sort: t.SortDirection(c.Key)})
	}
	for _, r := range t.PageRows() {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = c.Render(r.Record)
		}
		page.Rows = append(page.Rows, htmlRow{Cells: cells, Selected: t.IsSelected(r.ID)})
	}
	for _, tok := range t.Window() {
		if tok.IsEllipsis() {
			page.Pages = append(page.Pages, htmlLink{Ellipsis: true})
			continue
		}
		page.Pages = append(page.Pages, htmlLink{
			Label:   tok.String(),
			URL:     PageURL(tok.Index),
			Enabled: true,
			Current: tok.Index == t.PageIndex(),
		})
	}
	return page
}
