package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/goldminer/internal/core"
)

// PlayKeyMap defines the key bindings for the play screen.
type PlayKeyMap struct {
	Drop     key.Binding
	PowerUps [5]key.Binding
	Pause    key.Binding
	Shop     key.Binding
	Back     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k PlayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Drop, k.PowerUps[0], k.Pause, k.Shop, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k PlayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Drop, k.Pause, k.Shop},
		k.PowerUps[:],
		{k.Help, k.Quit},
	}
}

// DefaultPlayKeyMap returns default key bindings.
func DefaultPlayKeyMap() PlayKeyMap {
	return PlayKeyMap{
		Drop: key.NewBinding(
			key.WithKeys(" ", "enter", "down", "j"),
			key.WithHelp("space", "drop / continue"),
		),
		PowerUps: [5]key.Binding{
			key.NewBinding(key.WithKeys("1"), key.WithHelp("1-5", "use power-up")),
			key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "magnet")),
			key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "time extend")),
			key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "double coins")),
			key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "speed boost")),
		},
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Shop: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "shop"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "close"),
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

// Action translates a key message to a game action.
func (k PlayKeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Drop):
		return core.ActionDrop
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Shop):
		return core.ActionShop
	case key.Matches(msg, k.Back):
		return core.ActionBack
	}
	for i, b := range k.PowerUps {
		if key.Matches(msg, b) {
			return core.ActionPowerUp1 + core.Action(i)
		}
	}
	return core.ActionNone
}
