package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"cli-grid/internal/grid"
	"cli-grid/internal/locale"
	"cli-grid/internal/logger"
)

const (
	minColWidth = 6
	maxColWidth = 40
)

// GridModel is the interactive data grid: search box, column menu, table
// body and pager.
type GridModel struct {
	table         grid.Table
	loaded        bool
	strings       locale.Strings
	keys          KeyMap
	help          help.Model
	search        textinput.Model
	searching     bool
	menuOpen      bool
	menuCursor    int
	previewing    bool
	previewScroll int
	cursorRow     int // index into the current page rows
	cursorCol     int // index into the visible columns
	colOffset     int
	focused       bool
	width         int
	height        int
}

// NewGridModel creates an empty grid using the given strings.
func NewGridModel(s locale.Strings) GridModel {
	search := textinput.New()
	search.Placeholder = s.SearchPlaceholder
	search.Prompt = ""
	search.CharLimit = 256
	search.Width = 30

	return GridModel{
		strings: s,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		search:  search,
	}
}

// SetTable replaces the grid contents and keeps the cursor in range.
func (m *GridModel) SetTable(t grid.Table) {
	m.table = t
	m.loaded = true
	m.search.SetValue(t.Search())
	m.clampCursor()
}

// Table returns the current table state.
func (m GridModel) Table() grid.Table {
	return m.table
}

// Loaded reports whether a table has been set.
func (m GridModel) Loaded() bool {
	return m.loaded
}

// SetFocused sets focus state.
func (m *GridModel) SetFocused(f bool) {
	m.focused = f
}

// Focused returns focus state.
func (m GridModel) Focused() bool {
	return m.focused
}

// SetSize sets the grid dimensions.
func (m *GridModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.help.Width = w
}

// IsSearching returns whether the search box has focus.
func (m GridModel) IsSearching() bool {
	return m.searching
}

// IsMenuOpen returns whether the column menu is shown.
func (m GridModel) IsMenuOpen() bool {
	return m.menuOpen
}

// IsPreviewing returns whether the row preview is shown.
func (m GridModel) IsPreviewing() bool {
	return m.previewing
}

// KeyMap returns the grid bindings.
func (m GridModel) KeyMap() KeyMap {
	return m.keys
}

// Init satisfies tea.Model.
func (m GridModel) Init() tea.Cmd {
	return nil
}

// Update handles key events.
func (m GridModel) Update(msg tea.Msg) (GridModel, tea.Cmd) {
	if !m.focused || !m.loaded {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searching {
			return m.updateSearchMode(msg)
		}
		if m.menuOpen {
			return m.updateMenuMode(msg), nil
		}
		if m.previewing {
			return m.updatePreviewMode(msg), nil
		}
		return m.updateNavMode(msg)
	}
	return m, nil
}

func (m GridModel) updateNavMode(msg tea.KeyMsg) (GridModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursorRow > 0 {
			m.cursorRow--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursorRow < len(m.table.PageRows())-1 {
			m.cursorRow++
		}
	case key.Matches(msg, m.keys.PrevPage):
		m.setTable(m.table.PreviousPage())
	case key.Matches(msg, m.keys.NextPage):
		m.setTable(m.table.NextPage())
	case key.Matches(msg, m.keys.FirstPage):
		m.setTable(m.table.SetPageIndex(0))
	case key.Matches(msg, m.keys.LastPage):
		m.setTable(m.table.SetPageIndex(m.table.PageCount() - 1))
	case key.Matches(msg, m.keys.PrevCol):
		if m.cursorCol > 0 {
			m.cursorCol--
			m.ensureColVisible()
		}
	case key.Matches(msg, m.keys.NextCol):
		if m.cursorCol < len(m.table.VisibleColumns())-1 {
			m.cursorCol++
			m.ensureColVisible()
		}
	case key.Matches(msg, m.keys.Sort):
		if col, ok := m.cursorColumn(); ok {
			m.setTable(m.table.ToggleSort(col.Key))
			logger.Log.Debugw("sort changed", "column", col.Key, "direction", m.table.SortDirection(col.Key))
		}
	case key.Matches(msg, m.keys.Select):
		rows := m.table.PageRows()
		if m.cursorRow < len(rows) {
			m.table = m.table.ToggleRowSelected(rows[m.cursorRow].ID)
		}
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Columns):
		m.menuOpen = true
		m.menuCursor = 0
	case key.Matches(msg, m.keys.Preview):
		if len(m.table.PageRows()) > 0 {
			m.previewing = true
			m.previewScroll = 0
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	default:
		if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			if page, ok := windowPage(m.table.Window(), int(s[0]-'0')); ok {
				m.setTable(m.table.SetPageIndex(page))
			}
		}
	}
	return m, nil
}

func (m GridModel) updateSearchMode(msg tea.KeyMsg) (GridModel, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.table.Search() {
		m.setTable(m.table.SetSearch(m.search.Value()))
	}
	return m, cmd
}

func (m GridModel) updateMenuMode(msg tea.KeyMsg) GridModel {
	cols := m.table.HideableColumns()
	switch msg.String() {
	case "esc", "c", "q":
		m.menuOpen = false
	case "up", "k":
		if m.menuCursor > 0 {
			m.menuCursor--
		}
	case "down", "j":
		if m.menuCursor < len(cols)-1 {
			m.menuCursor++
		}
	case " ", "enter", "x":
		if m.menuCursor < len(cols) {
			m.setTable(m.table.ToggleColumnVisibility(cols[m.menuCursor].Key))
		}
	}
	return m
}

func (m GridModel) updatePreviewMode(msg tea.KeyMsg) GridModel {
	switch msg.String() {
	case "esc", "v", "enter", "q":
		m.previewing = false
		m.previewScroll = 0
	case "j", "down":
		m.previewScroll++
	case "k", "up":
		if m.previewScroll > 0 {
			m.previewScroll--
		}
	case "G":
		m.previewScroll = 99999
	case "g":
		m.previewScroll = 0
	}
	return m
}

func (m *GridModel) setTable(t grid.Table) {
	m.table = t
	m.clampCursor()
}

func (m *GridModel) clampCursor() {
	rows := len(m.table.PageRows())
	if m.cursorRow >= rows {
		m.cursorRow = rows - 1
	}
	if m.cursorRow < 0 {
		m.cursorRow = 0
	}
	cols := len(m.table.VisibleColumns())
	if m.cursorCol >= cols {
		m.cursorCol = cols - 1
	}
	if m.cursorCol < 0 {
		m.cursorCol = 0
	}
	if m.colOffset > m.cursorCol {
		m.colOffset = m.cursorCol
	}
}

func (m GridModel) cursorColumn() (grid.Column, bool) {
	cols := m.table.VisibleColumns()
	if m.cursorCol < 0 || m.cursorCol >= len(cols) {
		return grid.Column{}, false
	}
	return cols[m.cursorCol], true
}

func (m *GridModel) ensureColVisible() {
	if m.cursorCol < m.colOffset {
		m.colOffset = m.cursorCol
	}
	widths := m.colWidths(m.table.VisibleColumns(), m.table.PageRows())
	usedWidth := 0
	for i := m.colOffset; i <= m.cursorCol && i < len(widths); i++ {
		usedWidth += widths[i] + 3 // +3 for padding/separator
	}
	innerW := m.width - 4 // borders + margin
	for usedWidth > innerW && m.colOffset < m.cursorCol {
		usedWidth -= widths[m.colOffset] + 3
		m.colOffset++
	}
}

// colWidths sizes each column to its widest header or cell on the page.
func (m GridModel) colWidths(cols []grid.Column, rows []grid.Row) []int {
	widths := make([]int, len(cols))
	for i, col := range cols {
		w := lipgloss.Width(headerLabel(col, 0)) + 2
		for _, row := range rows {
			if cw := lipgloss.Width(sanitizeCell(col.Render(row.Record))); cw > w {
				w = cw
			}
		}
		widths[i] = max(minColWidth, min(w, maxColWidth))
	}
	return widths
}

// View renders the grid.
func (m GridModel) View() string {
	borderStyle := UnfocusedBorder
	if m.focused {
		borderStyle = FocusedBorder
	}

	innerW := m.width - 2
	if innerW < 10 {
		innerW = 10
	}
	innerH := m.height - 2
	if innerH < 5 {
		innerH = 5
	}

	var content string
	switch {
	case !m.loaded:
		content = DimText.Render(m.strings.Loading + "…")
	case m.menuOpen:
		content = m.renderTopBar(innerW) + "\n" + m.renderMenu()
	case m.previewing:
		content = m.renderPreview(innerW, innerH)
	default:
		content = m.renderTopBar(innerW) + "\n" + m.renderTable(innerW, innerH-4) +
			"\n" + RenderPager(m.table, m.strings, innerW) +
			"\n" + m.help.View(m.keys)
	}

	return borderStyle.Width(innerW).Height(innerH).MaxHeight(innerH + 2).Render(content)
}

func (m GridModel) renderTopBar(w int) string {
	searchDisp := SearchLabel.Render("/ ") + m.search.View()
	if !m.searching && m.search.Value() != "" {
		searchDisp = SearchLabel.Render("/ ") + SearchInput.Render(m.search.Value())
	}
	if col, ok := m.table.Column(m.table.SearchKey()); ok {
		searchDisp += DimText.Render(" [" + col.Title() + "]")
	}

	menu := DimText.Render("c ") + AccentText.Render(m.strings.Columns)
	if sel := len(m.table.SelectedRows()); sel > 0 {
		menu = SelectedText.Render(m.strings.Selected(sel)) + "  " + menu
	}

	gap := w - lipgloss.Width(searchDisp) - lipgloss.Width(menu)
	if gap < 1 {
		gap = 1
	}
	return searchDisp + strings.Repeat(" ", gap) + menu
}

func (m GridModel) renderMenu() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(m.strings.Columns))
	b.WriteString("\n")
	for i, col := range m.table.HideableColumns() {
		check := "[ ]"
		if m.table.IsVisible(col.Key) {
			check = "[x]"
		}
		line := fmt.Sprintf("%s %s", check, col.Title())
		if i == m.menuCursor {
			b.WriteString(MenuCursorItem.Render(line))
		} else {
			b.WriteString(MenuItem.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString(DimText.Render("space toggle | esc close"))
	return MenuBorder.Render(b.String())
}

func headerLabel(col grid.Column, dir int) string {
	switch dir {
	case 1:
		return col.Title() + " ▲"
	case -1:
		return col.Title() + " ▼"
	default:
		return col.Title()
	}
}

func (m GridModel) renderTable(w, h int) string {
	cols := m.table.VisibleColumns()
	rows := m.table.PageRows()
	if len(cols) == 0 {
		return DimText.Render(m.strings.NoData)
	}

	widths := m.colWidths(cols, rows)
	visibleCols := visibleColumns(widths, m.colOffset, w-2)

	var b strings.Builder

	// Header
	headerParts := make([]string, 0, len(visibleCols))
	for _, ci := range visibleCols {
		label := headerLabel(cols[ci], m.table.SortDirection(cols[ci].Key))
		style := HeaderStyle
		if ci == m.cursorCol && m.focused {
			style = style.Underline(true)
		}
		headerParts = append(headerParts, style.Width(widths[ci]).Render(truncate(label, widths[ci])))
	}
	b.WriteString("  " + strings.Join(headerParts, " │ "))
	b.WriteString("\n")

	// Separator
	sepParts := make([]string, 0, len(visibleCols))
	for _, ci := range visibleCols {
		sepParts = append(sepParts, strings.Repeat("─", widths[ci]))
	}
	b.WriteString(DimText.Render("──" + strings.Join(sepParts, "─┼─")))

	if len(rows) == 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Center, DimText.Render(m.strings.NoData)))
		return b.String()
	}

	visRows := h - 2
	if visRows < 1 {
		visRows = 1
	}
	start := 0
	if m.cursorRow >= visRows {
		start = m.cursorRow - visRows + 1
	}
	end := min(start+visRows, len(rows))

	for ri := start; ri < end; ri++ {
		row := rows[ri]
		selected := m.table.IsSelected(row.ID)

		marker := "  "
		if selected {
			marker = SelectedText.Render("● ")
		}

		rowParts := make([]string, 0, len(visibleCols))
		for _, ci := range visibleCols {
			val := row.Record[cols[ci].Key]
			text := truncate(sanitizeCell(cols[ci].Render(row.Record)), widths[ci])

			var style lipgloss.Style
			switch {
			case ri == m.cursorRow && m.focused:
				style = CellSelected
			case selected:
				style = SelectedText
			case val == nil && cols[ci].Cell == nil:
				style = NullText
			default:
				style = CellNormal
			}
			if cols[ci].Key == m.table.SearchKey() && ri != m.cursorRow {
				text = HighlightMatch(text, m.table.Search(), style)
			}
			rowParts = append(rowParts, style.Width(widths[ci]).Render(text))
		}
		b.WriteString("\n")
		b.WriteString(marker + strings.Join(rowParts, " │ "))
	}

	return b.String()
}

// visibleColumns returns the indexes of the columns that fit in availWidth
// starting at offset.
func visibleColumns(widths []int, offset, availWidth int) []int {
	var cols []int
	usedWidth := 0
	for i := offset; i < len(widths); i++ {
		needed := widths[i]
		if len(cols) > 0 {
			needed += 3 // " │ " separator
		}
		if usedWidth+needed > availWidth && len(cols) > 0 {
			break
		}
		cols = append(cols, i)
		usedWidth += needed
	}
	return cols
}

func sanitizeCell(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "↵")
	s = strings.ReplaceAll(s, "\n", "↵")
	s = strings.ReplaceAll(s, "\r", "↵")
	s = strings.ReplaceAll(s, "\t", " ")
	return s
}

func truncate(s string, maxWidth int) string {
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}
