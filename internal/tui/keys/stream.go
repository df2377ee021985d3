package keys

import "github.com/charmbracelet/bubbles/key"

// StreamKeys are the bindings of the live stream view
type StreamKeys struct {
	Stop       key.Binding
	Quit       key.Binding
	Help       key.Binding
	Follow     key.Binding
	Up         key.Binding
	Down       key.Binding
	GotoTop    key.Binding
	GotoBottom key.Binding
}

func NewStreamKeys() StreamKeys {
	return StreamKeys{
		Stop: key.NewBinding(
			key.WithKeys("s", "ctrl+c"),
			key.WithHelp("s/ctrl+c", "stop after current command"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "Q"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Follow: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "toggle follow"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		GotoTop: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "goto top"),
		),
		GotoBottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "goto bottom"),
		),
	}
}

func (k StreamKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Stop, k.Follow, k.Quit}
}

func (k StreamKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.GotoTop, k.GotoBottom},
		{k.Follow, k.Stop, k.Help, k.Quit},
	}
}
