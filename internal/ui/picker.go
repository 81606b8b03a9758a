package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cli-grid/internal/config"
	"cli-grid/internal/logger"
	"cli-grid/internal/source"
)

// PickerModel lets the user choose one of the saved sources.
type PickerModel struct {
	cfg    *config.Config
	cursor int
	err    string
	width  int
	height int

	// Done is set once the user made a choice (a source or a new one).
	Done bool
	// NewSource is set when the user asked to add a source instead.
	NewSource bool
	// Chosen holds the picked source when Done && !NewSource.
	Chosen config.SavedSource
}

// NewPickerModel creates a picker over cfg.Sources.
func NewPickerModel(cfg *config.Config) PickerModel {
	return PickerModel{cfg: cfg}
}

// Init satisfies tea.Model.
func (m PickerModel) Init() tea.Cmd { return nil }

// Update handles key events.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.cfg.Sources)-1 {
				m.cursor++
			}
		case "n":
			m.Done = true
			m.NewSource = true
			return m, tea.Quit
		case "d", "x":
			if len(m.cfg.Sources) == 0 {
				return m, nil
			}
			name := m.cfg.Sources[m.cursor].Name
			m.cfg.Delete(m.cursor)
			if err := m.cfg.Save(); err != nil {
				m.err = err.Error()
				logger.Log.Errorw("failed to save config", "error", err)
				return m, nil
			}
			logger.Log.Infow("source deleted", "name", name)
			if m.cursor >= len(m.cfg.Sources) && m.cursor > 0 {
				m.cursor--
			}
			if len(m.cfg.Sources) == 0 {
				m.Done = true
				m.NewSource = true
				return m, tea.Quit
			}
		case "enter":
			if len(m.cfg.Sources) == 0 {
				return m, nil
			}
			m.Done = true
			m.Chosen = m.cfg.Sources[m.cursor]
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the picker.
func (m PickerModel) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true).
		MarginBottom(1)

	var b strings.Builder

	b.WriteString(titleStyle.Render("CLI-GRID - Saved Sources"))
	b.WriteString("\n\n")

	for i, src := range m.cfg.Sources {
		display := fmt.Sprintf("%s %s", src.Name, DimText.Render("["+src.Kind+"]"))
		display += DimText.Render("  " + sourceTarget(src))

		if i == m.cursor {
			b.WriteString(AccentText.Bold(true).Render("  ▸ " + display))
		} else {
			b.WriteString("    " + display)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")

	if m.err != "" {
		b.WriteString(ErrorText.Render("  " + m.err))
		b.WriteString("\n\n")
	}

	b.WriteString(DimText.Render("  Enter to open | n new source | d delete | q quit"))
	b.WriteString("\n")

	return b.String()
}

// sourceTarget is the path or the redacted URI of a source.
func sourceTarget(src config.SavedSource) string {
	if src.Kind != config.KindPostgres {
		return src.Path
	}
	return source.RedactURI(src.URI)
}
