package app

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cli-grid/internal/grid"
	"cli-grid/internal/locale"
	"cli-grid/internal/logger"
	"cli-grid/internal/source"
	"cli-grid/internal/ui"
)

// ErrNoColumns is returned when a dataset has nothing to show.
var ErrNoColumns = errors.New("dataset has no columns")

const loadTimeout = time.Minute

// BuildTable turns a loaded dataset into a grid table. The layout may be
// nil; pageSize and searchKey override it when set.
func BuildTable(ds *source.Dataset, layout *grid.Layout, pageSize int, searchKey string) (grid.Table, error) {
	if len(ds.Columns) == 0 {
		return grid.Table{}, ErrNoColumns
	}
	opts := layout.Options(ds.Columns, pageSize)
	if searchKey != "" {
		opts.SearchKey = searchKey
	}
	return grid.New(layout.BuildColumns(ds.Columns), ds.Records, opts)
}

// Options configures the app.
type Options struct {
	Source    source.Source
	Layout    *grid.Layout
	PageSize  int
	SearchKey string
	Strings   locale.Strings
	// Prepare, when set, adjusts the first table built from the source.
	Prepare func(grid.Table) grid.Table
}

// tickMsg is sent to clear expired status messages.
type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// loadedMsg carries a finished source load back to the app.
type loadedMsg struct {
	ds  *source.Dataset
	err error
}

// Model is the root Bubble Tea model.
type Model struct {
	opts      Options
	grid      ui.GridModel
	statusbar ui.StatusBarModel
	spinner   spinner.Model
	loading   bool
	err       error
	width     int
	height    int
}

// NewModel creates the root app model.
func NewModel(opts Options) Model {
	if opts.Strings.Code == "" {
		opts.Strings = locale.Arabic
	}

	g := ui.NewGridModel(opts.Strings)
	g.SetFocused(true)

	statusbar := ui.NewStatusBarModel()
	statusbar.SetSource(opts.Source.Describe())

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = ui.AccentText

	return Model{
		opts:      opts,
		grid:      g,
		statusbar: statusbar,
		spinner:   sp,
		loading:   true,
	}
}

// Init starts the first load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(), m.spinner.Tick, tickCmd())
}

// Grid returns the grid sub-model.
func (m Model) Grid() ui.GridModel {
	return m.grid
}

// Err returns the last load error.
func (m Model) Err() error {
	return m.err
}

// Loading reports whether a load is in flight.
func (m Model) Loading() bool {
	return m.loading
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcLayout()
		return m, nil

	case tickMsg:
		m.statusbar.ClearExpiredMessage(time.Time(msg))
		return m, tickCmd()

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadedMsg:
		m.loading = false
		return m.applyLoad(msg), nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if !m.grid.IsSearching() && !m.grid.IsMenuOpen() && !m.grid.IsPreviewing() {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "r":
				if m.loading {
					return m, nil
				}
				m.loading = true
				m.statusbar.SetMessage(m.opts.Strings.Loading+"…", ui.MsgInfo)
				return m, tea.Batch(m.load(), m.spinner.Tick)
			}
		}
	}

	var cmd tea.Cmd
	m.grid, cmd = m.grid.Update(msg)
	m.syncStatus()
	return m, cmd
}

func (m Model) applyLoad(msg loadedMsg) Model {
	if msg.err != nil {
		m.err = msg.err
		logger.Log.Errorw("load failed", "source", m.opts.Source.Describe(), "error", msg.err)
		m.statusbar.SetMessage(m.opts.Strings.LoadFailed(msg.err), ui.MsgError)
		return m
	}

	tbl, err := BuildTable(msg.ds, m.opts.Layout, m.opts.PageSize, m.opts.SearchKey)
	if err != nil {
		m.err = err
		logger.Log.Errorw("build table failed", "error", err)
		m.statusbar.SetMessage(err.Error(), ui.MsgError)
		return m
	}

	if m.grid.Loaded() {
		// Reload: keep sorting, filters, visibility, selection and page.
		prev := m.grid.Table()
		tbl = tbl.WithState(prev.State()).SetPageIndex(prev.PageIndex())
	} else if m.opts.Prepare != nil {
		tbl = m.opts.Prepare(tbl)
	}

	m.err = nil
	m.grid.SetTable(tbl)
	m.statusbar.SetLoadInfo(msg.ds.LoadTime, tbl.Len())
	m.statusbar.SetMessage(m.opts.Strings.Loaded(tbl.Len()), ui.MsgSuccess)
	logger.Log.Infow("source loaded", "source", m.opts.Source.Describe(), "rows", tbl.Len(), "elapsed", msg.ds.LoadTime)
	m.syncStatus()
	return m
}

func (m *Model) syncStatus() {
	m.statusbar.SetMode(m.grid.IsSearching(), m.grid.IsMenuOpen())
	if m.grid.Loaded() {
		m.statusbar.SetSelected(len(m.grid.Table().SelectedRows()))
	}
}

func (m *Model) recalcLayout() {
	availH := m.height - 2 // top bar + status bar
	if availH < 6 {
		availH = 6
	}
	m.grid.SetSize(m.width, availH)
	m.statusbar.SetWidth(m.width)
}

func (m Model) load() tea.Cmd {
	src := m.opts.Source
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		ds, err := src.Load(ctx)
		return loadedMsg{ds: ds, err: err}
	}
}

// View renders the app.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return m.opts.Strings.Loading + "..."
	}

	title := " " + m.opts.Source.Describe() + " "
	if m.loading {
		title += m.spinner.View() + " " + m.opts.Strings.Loading
	}
	topBar := ui.TitleStyle.Width(m.width - 2).Render(title)

	var body string
	if m.err != nil && !m.grid.Loaded() {
		body = ui.UnfocusedBorder.Width(m.width - 2).Render(ui.ErrorText.Render(m.err.Error()))
	} else {
		body = m.grid.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, topBar, body, m.statusbar.View())
}
