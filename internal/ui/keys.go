package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the grid key bindings.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	PrevPage  key.Binding
	NextPage  key.Binding
	FirstPage key.Binding
	LastPage  key.Binding
	PrevCol   key.Binding
	NextCol   key.Binding
	Sort      key.Binding
	Select    key.Binding
	Search    key.Binding
	Columns   key.Binding
	Preview   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default grid bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "h", "pgup"),
			key.WithHelp("←/h", "previous page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "l", "pgdown"),
			key.WithHelp("→/l", "next page"),
		),
		FirstPage: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first page"),
		),
		LastPage: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last page"),
		),
		PrevCol: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "previous column"),
		),
		NextCol: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next column"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort column"),
		),
		Select: key.NewBinding(
			key.WithKeys("x", " "),
			key.WithHelp("x", "select row"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Columns: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "columns"),
		),
		Preview: key.NewBinding(
			key.WithKeys("enter", "v"),
			key.WithHelp("enter", "preview row"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevPage, k.NextPage, k.Search, k.Columns, k.Sort, k.Help}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Preview},
		{k.PrevPage, k.NextPage, k.FirstPage, k.LastPage},
		{k.PrevCol, k.NextCol, k.Sort},
		{k.Search, k.Columns, k.Help, k.Quit},
	}
}
