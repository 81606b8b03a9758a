package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorAccent   = lipgloss.Color("#4ecca3")
	ColorDim      = lipgloss.Color("#555555")
	ColorSuccess  = lipgloss.Color("#4ecca3")
	ColorError    = lipgloss.Color("#e94560")
	ColorSelected = lipgloss.Color("#f0a500")
)

// Border styles
var (
	FocusedBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent)

	UnfocusedBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDim)
)

// Text styles
var (
	AccentText   = lipgloss.NewStyle().Foreground(ColorAccent)
	DimText      = lipgloss.NewStyle().Foreground(ColorDim)
	ErrorText    = lipgloss.NewStyle().Foreground(ColorError)
	SelectedText = lipgloss.NewStyle().Foreground(ColorSelected)
	NullText     = lipgloss.NewStyle().Foreground(ColorDim).Italic(true)
)

// Header styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			MarginBottom(1)
)

// Table cell styles
var (
	CellNormal   = lipgloss.NewStyle()
	CellSelected = lipgloss.NewStyle().Reverse(true)
)

// Pager styles
var (
	PageButton        = lipgloss.NewStyle().Padding(0, 1)
	PageCurrent       = lipgloss.NewStyle().Padding(0, 1).Reverse(true).Bold(true)
	PageEllipsis      = lipgloss.NewStyle().Padding(0, 1).Foreground(ColorDim)
	PageArrow         = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	PageArrowDisabled = lipgloss.NewStyle().Foreground(ColorDim)
)

// Status bar
var (
	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#cccccc")).
			Padding(0, 1)

	StatusErrorStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#333333")).
				Foreground(ColorError).
				Padding(0, 1)

	StatusSuccessStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#333333")).
				Foreground(ColorSuccess).
				Padding(0, 1)
)

// Column menu styles
var (
	MenuBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent).
			Padding(0, 1)
	MenuItem       = lipgloss.NewStyle().PaddingLeft(1)
	MenuCursorItem = lipgloss.NewStyle().PaddingLeft(1).Reverse(true)
)

// Search styles
var (
	SearchInput = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)
	SearchLabel = lipgloss.NewStyle().
			Foreground(ColorAccent)
)
