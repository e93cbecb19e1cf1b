package components

import (
	"charm.land/bubbles/v2/key"

	"github.com/xuexiangjys/xui/pkg/recycler"
)

type KeyMap struct {
	List        recycler.KeyMap
	ClearFilter key.Binding
	Copy        key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		List: recycler.DefaultKeyMap().WithoutLetters(),
		ClearFilter: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear filter"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy title"),
		),
	}
}

func (k KeyMap) KeyBindings() []key.Binding {
	return []key.Binding{
		k.List.Up,
		k.List.Down,
		k.List.Click,
		k.List.LongClick,
		k.ClearFilter,
		k.Copy,
	}
}
