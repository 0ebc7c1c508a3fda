package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the key bindings of the graph view.
type keyMap struct {
	Forward   key.Binding
	Backward  key.Binding
	Next      key.Binding
	Previous  key.Binding
	Inner     key.Binding
	Outer     key.Binding
	Details   key.Binding
	Back      key.Binding
	Search    key.Binding
	Reload    key.Binding
	Route     key.Binding
	Copy      key.Binding
	Density   key.Binding
	Help      key.Binding
	Quit      key.Binding
	ScrollUp  key.Binding
	ScrollDn  key.Binding
	SearchRun key.Binding
}

// defaultKeyMap returns the default bindings.
func defaultKeyMap() keyMap {
	return keyMap{
		Forward: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "forward"),
		),
		Backward: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "backward"),
		),
		Next: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next edge"),
		),
		Previous: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "prev edge"),
		),
		Inner: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "drill in"),
		),
		Outer: key.NewBinding(
			key.WithKeys("backspace", "u"),
			key.WithHelp("u", "drill out"),
		),
		Details: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "details"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Reload: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reload"),
		),
		Route: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "prev route"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy ref"),
		),
		Density: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "density"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("up", "k", "pgup"),
			key.WithHelp("↑/k", "scroll"),
		),
		ScrollDn: key.NewBinding(
			key.WithKeys("down", "j", "pgdown"),
			key.WithHelp("↓/j", "scroll"),
		),
		SearchRun: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "jump"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Forward, k.Backward, k.Next, k.Inner, k.Outer, k.Search, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Forward, k.Backward, k.Next, k.Previous},
		{k.Inner, k.Outer, k.Details, k.Back},
		{k.Search, k.Reload, k.Route, k.Copy},
		{k.Density, k.Help, k.Quit},
	}
}

// detailsHelp lists the bindings active while the info pane has focus.
func (k keyMap) detailsHelp() []key.Binding {
	return []key.Binding{k.ScrollUp, k.ScrollDn, k.Back, k.Copy, k.Quit}
}

// searchHelp lists the bindings active while searching.
func (k keyMap) searchHelp() []key.Binding {
	up := key.NewBinding(key.WithKeys("up"), key.WithHelp("↑/↓", "select"))
	return []key.Binding{up, k.SearchRun, k.Back}
}
