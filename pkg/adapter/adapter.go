// Package adapter provides a typed list adapter: an ordered collection of
// items bridged to a view-recycling rendering host.
//
// The adapter owns the items, tells the host what changed, creates and fills
// holders on request, and turns clicks on holders into item-level events.
// It is not safe for concurrent use; every call is expected to come from the
// host's update loop.
package adapter

import (
	"reflect"
	"slices"
)

// Host receives structural-change notifications from an adapter.
type Host interface {
	NotifyItemInserted(position int)
	NotifyItemRemoved(position int)
	NotifyDataSetChanged()
}

// Source is the non-generic view of an adapter a rendering host works with.
type Source interface {
	ItemCount() int
	ItemKind(index int) (int, error)
	CreateHolder(kind int) *Holder
	BindHolder(h *Holder, index int) error
	Attach(host Host)
}

// ItemClickFunc observes clicks resolved to a list position.
type ItemClickFunc func(view *Holder, position int)

// Config supplies the per-item behavior of an adapter.
type Config[T any] struct {
	// LayoutFor returns the layout used by holders of the given kind.
	LayoutFor func(kind int) Layout
	// Bind fills a holder from the item at position.
	Bind func(h *Holder, position int, item T)
	// KindOf returns the item kind discriminator. When nil every item is
	// kind 0.
	KindOf func(position int, item T) int
}

// Adapter is a typed list adapter.
type Adapter[T any] struct {
	cfg   Config[T]
	items []T
	host  Host

	onClick     ItemClickFunc
	onLongClick ItemClickFunc

	selected int
}

var _ Source = (*Adapter[any])(nil)

// New creates an adapter seeded with a copy of items. A nil slice starts
// empty.
func New[T any](cfg Config[T], items []T) *Adapter[T] {
	a := &Adapter[T]{
		cfg:      cfg,
		host:     noopHost{},
		selected: -1,
	}
	if items != nil {
		a.items = slices.Clone(items)
	}
	return a
}

// Attach sets the host that receives change notifications. A nil host
// detaches the current one.
func (a *Adapter[T]) Attach(host Host) {
	if host == nil {
		host = noopHost{}
	}
	a.host = host
}

// ItemCount returns the number of items.
func (a *Adapter[T]) ItemCount() int {
	return len(a.items)
}

// Item returns the item at index.
func (a *Adapter[T]) Item(index int) (T, error) {
	if err := checkIndex("item", index, len(a.items)); err != nil {
		var zero T
		return zero, err
	}
	return a.items[index], nil
}

// Items returns a copy of the items.
func (a *Adapter[T]) Items() []T {
	return slices.Clone(a.items)
}

// ItemKind returns the kind discriminator of the item at index.
func (a *Adapter[T]) ItemKind(index int) (int, error) {
	if err := checkIndex("kind", index, len(a.items)); err != nil {
		return 0, err
	}
	if a.cfg.KindOf == nil {
		return 0, nil
	}
	return a.cfg.KindOf(index, a.items[index]), nil
}

// Insert inserts item at index, shifting the following items forward.
// Valid indexes are [0, ItemCount()].
func (a *Adapter[T]) Insert(index int, item T) error {
	if err := checkInsertIndex("insert", index, len(a.items)); err != nil {
		return err
	}
	a.items = slices.Insert(a.items, index, item)
	a.host.NotifyItemInserted(index)
	return nil
}

// Delete removes the item at index, shifting the following items back.
func (a *Adapter[T]) Delete(index int) error {
	if err := checkIndex("delete", index, len(a.items)); err != nil {
		return err
	}
	a.items = slices.Delete(a.items, index, index+1)
	a.host.NotifyItemRemoved(index)
	return nil
}

// ReplaceAll replaces every item with items and clears the selection. A nil
// slice is ignored; an empty one clears the list.
func (a *Adapter[T]) ReplaceAll(items []T) *Adapter[T] {
	if items == nil {
		return a
	}
	a.items = append(a.items[:0:0], items...)
	a.selected = -1
	a.host.NotifyDataSetChanged()
	return a
}

// Append appends items to the end of the list. A nil slice is ignored.
func (a *Adapter[T]) Append(items []T) *Adapter[T] {
	if items == nil {
		return a
	}
	a.items = append(a.items, items...)
	a.host.NotifyDataSetChanged()
	return a
}

// AppendOne appends a single item. Nil pointers, interfaces, maps, slices,
// funcs and channels are ignored.
func (a *Adapter[T]) AppendOne(item T) *Adapter[T] {
	if isNil(item) {
		return a
	}
	a.items = append(a.items, item)
	a.host.NotifyDataSetChanged()
	return a
}

// SelectionIndex returns the stored selection index, -1 when nothing is
// selected. It is not adjusted when items are inserted or deleted, so it may
// point past the end of the list.
func (a *Adapter[T]) SelectionIndex() int {
	return a.selected
}

// SetSelectionIndex stores index without validating it and asks the host to
// re-render.
func (a *Adapter[T]) SetSelectionIndex(index int) *Adapter[T] {
	a.selected = index
	a.host.NotifyDataSetChanged()
	return a
}

// Refresh asks the host to rebind every row without changing the items,
// e.g. after something Bind reads changed.
func (a *Adapter[T]) Refresh() *Adapter[T] {
	a.host.NotifyDataSetChanged()
	return a
}

// SetOnItemClick replaces the click observer. Nil clears it.
func (a *Adapter[T]) SetOnItemClick(fn ItemClickFunc) *Adapter[T] {
	a.onClick = fn
	return a
}

// SetOnItemLongClick replaces the long click observer. Nil clears it.
func (a *Adapter[T]) SetOnItemLongClick(fn ItemClickFunc) *Adapter[T] {
	a.onLongClick = fn
	return a
}

// CreateHolder creates a holder for the given item kind. Clicks on the
// holder are resolved against its position at click time, so they stay
// correct when the host recycles it or shifts it after an insert or delete.
func (a *Adapter[T]) CreateHolder(kind int) *Holder {
	var layout Layout
	if a.cfg.LayoutFor != nil {
		layout = a.cfg.LayoutFor(kind)
	}
	h := newHolder(kind, layout)
	h.onClick = func(h *Holder) {
		if fn := a.onClick; fn != nil {
			fn(h, h.LayoutPosition())
		}
	}
	h.onLongClick = func(h *Holder) {
		if fn := a.onLongClick; fn != nil {
			fn(h, h.LayoutPosition())
		}
	}
	return h
}

// BindHolder binds h to index and fills it from the item there.
func (a *Adapter[T]) BindHolder(h *Holder, index int) error {
	if err := checkIndex("bind", index, len(a.items)); err != nil {
		return err
	}
	h.bind(index, index == a.selected)
	if a.cfg.Bind != nil {
		a.cfg.Bind(h, index, a.items[index])
	}
	return nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

type noopHost struct{}

func (noopHost) NotifyItemInserted(int) {}
func (noopHost) NotifyItemRemoved(int)  {}
func (noopHost) NotifyDataSetChanged()  {}
