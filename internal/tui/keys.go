package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit       key.Binding
	Help       key.Binding
	Search     key.Binding
	Filters    key.Binding
	FilterText key.Binding
	Refresh    key.Binding
	Reset      key.Binding
	Focus      key.Binding
	Back       key.Binding
	Up         key.Binding
	Down       key.Binding
	Enter      key.Binding

	StatusNew      key.Binding
	StatusInReview key.Binding
	StatusResolved key.Binding
	Archive        key.Binding
	Priority       key.Binding
	Category       key.Binding
	Note           key.Binding
	Tags           key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Search:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "search")),
		Filters:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filters")),
		FilterText: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter text")),
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Reset:      key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset data")),
		Focus:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Up:         key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "down")),
		Enter:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),

		StatusNew:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "new")),
		StatusInReview: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "in review")),
		StatusResolved: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "resolve")),
		Archive:        key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "archive")),
		Priority:       key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "cycle priority")),
		Category:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cycle category")),
		Note:           key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add note")),
		Tags:           key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "edit tags")),
	}
}
