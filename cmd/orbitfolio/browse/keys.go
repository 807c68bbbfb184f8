package browse

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the scene key bindings. Arrow keys are left to the panels.
type KeyMap struct {
	Next        key.Binding
	Prev        key.Binding
	Click       key.Binding
	Core        key.Binding
	Open        key.Binding
	CloseDetail key.Binding
	ZoomIn      key.Binding
	ZoomOut     key.Binding
	TiltUp      key.Binding
	TiltDown    key.Binding
	Labels      key.Binding
	Help        key.Binding
	Escape      key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the stock bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next:        key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next node")),
		Prev:        key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev node")),
		Click:       key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
		Core:        key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "all projects")),
		Open:        key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open")),
		CloseDetail: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "close panel")),
		ZoomIn:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:     key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
		TiltUp:      key.NewBinding(key.WithKeys("["), key.WithHelp("[", "tilt up")),
		TiltDown:    key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "tilt down")),
		Labels:      key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "labels")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Escape:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "quit")),
		Quit:        key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Click, k.Core, k.Open, k.Help, k.Escape}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Click, k.Core},
		{k.Open, k.CloseDetail, k.Labels},
		{k.ZoomIn, k.ZoomOut, k.TiltUp, k.TiltDown},
		{k.Help, k.Escape, k.Quit},
	}
}
