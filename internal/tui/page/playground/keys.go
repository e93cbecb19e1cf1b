package playground

import (
	"charm.land/bubbles/v2/key"

	"github.com/xuexiangjys/xui/pkg/recycler"
)

type KeyMap struct {
	List recycler.KeyMap

	AppendOne,
	AppendBatch,
	Insert,
	Delete,
	DeleteOutOfRange,
	ReplaceAll,
	Select,
	SelectOutOfRange,
	Compact,
	CopyID key.Binding
}

func DefaultKeyMap() KeyMap {
	list := recycler.DefaultKeyMap()
	list.PageDown = key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down"))
	list.PageUp = key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up"))
	return KeyMap{
		List: list,
		AppendOne: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "append"),
		),
		AppendBatch: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "append 3"),
		),
		Insert: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "insert at cursor"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete at cursor"),
		),
		DeleteOutOfRange: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete past the end"),
		),
		ReplaceAll: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Select: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "select"),
		),
		SelectOutOfRange: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "select past the end"),
		),
		Compact: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "compact"),
		),
		CopyID: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy id"),
		),
	}
}

func (k KeyMap) KeyBindings() []key.Binding {
	return []key.Binding{
		k.AppendOne,
		k.AppendBatch,
		k.Insert,
		k.Delete,
		k.ReplaceAll,
		k.Select,
		k.Compact,
		k.CopyID,
		k.SelectOutOfRange,
		k.DeleteOutOfRange,
		k.List.Click,
		k.List.LongClick,
	}
}
