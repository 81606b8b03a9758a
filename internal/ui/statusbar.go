package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// MessageType represents the type of status message.
type MessageType int

const (
	MsgInfo MessageType = iota
	MsgSuccess
	MsgError
)

const messageTTL = 3 * time.Second

// StatusBarModel is the context-aware status bar at the bottom.
type StatusBarModel struct {
	message     string
	messageType MessageType
	messageTime time.Time
	source      string
	loadTime    time.Duration
	rowCount    int
	selected    int
	searching   bool
	menuOpen    bool
	width       int
}

// NewStatusBarModel creates a new status bar.
func NewStatusBarModel() StatusBarModel {
	return StatusBarModel{}
}

// SetWidth sets the status bar width.
func (m *StatusBarModel) SetWidth(w int) {
	m.width = w
}

// SetMessage sets a status message.
func (m *StatusBarModel) SetMessage(msg string, t MessageType) {
	m.message = msg
	m.messageType = t
	m.messageTime = time.Now()
}

// Message returns the current message text.
func (m StatusBarModel) Message() string {
	return m.message
}

// SetSource sets the description of the loaded source.
func (m *StatusBarModel) SetSource(desc string) {
	m.source = desc
}

// SetLoadInfo updates the last load stats.
func (m *StatusBarModel) SetLoadInfo(elapsed time.Duration, rowCount int) {
	m.loadTime = elapsed
	m.rowCount = rowCount
}

// SetSelected updates the selected row count.
func (m *StatusBarModel) SetSelected(n int) {
	m.selected = n
}

// SetMode tells the bar which grid mode is active so it can show matching hints.
func (m *StatusBarModel) SetMode(searching, menuOpen bool) {
	m.searching = searching
	m.menuOpen = menuOpen
}

// ClearExpiredMessage clears info and success messages after a few seconds.
// Errors stay until replaced.
func (m *StatusBarModel) ClearExpiredMessage(now time.Time) {
	if m.messageType != MsgError && now.Sub(m.messageTime) > messageTTL {
		m.message = ""
	}
}

// View renders the status bar.
func (m StatusBarModel) View() string {
	// Left side: keybinding hints
	hints := m.contextHints()

	// Right side: source + load info
	var rightParts []string
	if m.selected > 0 {
		rightParts = append(rightParts, fmt.Sprintf("%d selected", m.selected))
	}
	if m.source != "" {
		rightParts = append(rightParts, m.source)
	}
	if m.loadTime > 0 {
		rightParts = append(rightParts, fmt.Sprintf("%d rows in %s", m.rowCount, m.loadTime.Round(time.Millisecond)))
	}
	right := strings.Join(rightParts, " | ")

	// Message overlay
	if m.message != "" {
		var msgStyle lipgloss.Style
		switch m.messageType {
		case MsgError:
			msgStyle = StatusErrorStyle
		case MsgSuccess:
			msgStyle = StatusSuccessStyle
		default:
			msgStyle = StatusBarStyle
		}
		hints = msgStyle.Render(m.message)
	}

	w := m.width
	if w < 20 {
		w = 20
	}
	gap := w - lipgloss.Width(hints) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	line := hints + strings.Repeat(" ", gap) + right
	return StatusBarStyle.Width(w).Render(line)
}

func (m StatusBarModel) contextHints() string {
	switch {
	case m.searching:
		return "Type to search | Enter/Esc Done"
	case m.menuOpen:
		return "j/k Navigate | Space Toggle column | Esc Close"
	default:
		return "←/→ Page | 1-9 Jump | s Sort | / Search | c Columns | r Reload | q Quit"
	}
}
