package recycler

import (
	"charm.land/bubbles/v2/key"
)

type KeyMap struct {
	Down,
	Up,
	PageDown,
	PageUp,
	HalfPageDown,
	HalfPageUp,
	Home,
	End,
	Click,
	LongClick key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n", "j"),
			key.WithHelp("↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p", "k"),
			key.WithHelp("↑", "up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "f"),
			key.WithHelp("f/pgdn", "page down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "b"),
			key.WithHelp("b/pgup", "page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "half page down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "half page up"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "top"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "bottom"),
		),
		Click: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		LongClick: key.NewBinding(
			key.WithKeys("space"),
			key.WithHelp("space", "details"),
		),
	}
}

// WithoutLetters returns a copy of the key map without the single letter
// bindings, for lists that share the keyboard with a text input.
func (k KeyMap) WithoutLetters() KeyMap {
	k.Down = key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "down"))
	k.Up = key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "up"))
	k.PageDown = key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down"))
	k.PageUp = key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up"))
	k.Home = key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "top"))
	k.End = key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "bottom"))
	k.LongClick = key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "details"))
	return k
}

// KeyBindings returns every binding, in help order.
func (k KeyMap) KeyBindings() []key.Binding {
	return []key.Binding{
		k.Up,
		k.Down,
		k.PageUp,
		k.PageDown,
		k.HalfPageUp,
		k.HalfPageDown,
		k.Home,
		k.End,
		k.Click,
		k.LongClick,
	}
}
