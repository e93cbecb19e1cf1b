package adapter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type click struct {
	view     *Holder
	position int
}

func TestCreateHolder_UsesLayoutForKind(t *testing.T) {
	t.Parallel()

	a := New(Config[string]{
		LayoutFor: func(kind int) Layout {
			if kind == 1 {
				return Layout{ID: "two_line", Fields: []string{"title", "subtitle"}}
			}
			return Layout{ID: "one_line", Fields: []string{"title"}}
		},
	}, nil)

	h := a.CreateHolder(1)
	require.Equal(t, 1, h.Kind())
	require.Equal(t, "two_line", h.Layout().ID)
	require.Equal(t, NoPosition, h.LayoutPosition())
}

func TestBindHolder(t *testing.T) {
	t.Parallel()

	a, _ := newStringAdapter(t, "a", "b", "c")
	a.SetSelectionIndex(2)

	h := a.CreateHolder(0)
	require.NoError(t, a.BindHolder(h, 1))
	require.Equal(t, 1, h.LayoutPosition())
	require.Equal(t, "b", h.Text("title"))
	require.False(t, h.Selected())

	require.NoError(t, a.BindHolder(h, 2))
	require.Equal(t, "c", h.Text("title"))
	require.True(t, h.Selected())

	err := a.BindHolder(h, 3)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	require.Equal(t, 2, h.LayoutPosition())
}

func TestClick_ResolvesCurrentPosition(t *testing.T) {
	t.Parallel()

	a, _ := newStringAdapter(t, "a", "b", "c")
	var clicks []click
	a.SetOnItemClick(func(view *Holder, position int) {
		clicks = append(clicks, click{view, position})
	})

	h := a.CreateHolder(0)
	require.NoError(t, a.BindHolder(h, 2))
	require.True(t, h.Click())
	require.Equal(t, []click{{h, 2}}, clicks)
}

func TestClick_FollowsRebindAndOffset(t *testing.T) {
	t.Parallel()

	a, _ := newStringAdapter(t, "a", "b", "c", "d")
	var positions []int
	a.SetOnItemClick(func(_ *Holder, position int) {
		positions = append(positions, position)
	})

	h := a.CreateHolder(0)
	require.NoError(t, a.BindHolder(h, 0))
	h.Click()

	// Recycled to another row.
	require.NoError(t, a.BindHolder(h, 3))
	h.Click()

	// A row was inserted before it and the host shifted it.
	require.NoError(t, a.Insert(0, "z"))
	h.Offset(1)
	h.Click()

	require.Equal(t, []int{0, 3, 4}, positions)
}

func TestClick_ObserverReadAtClickTime(t *testing.T) {
	t.Parallel()

	a, _ := newStringAdapter(t, "a", "b")
	h := a.CreateHolder(0)
	require.NoError(t, a.BindHolder(h, 1))

	// No observer yet: nothing happens, but the holder is wired.
	require.True(t, h.Click())

	var first, second int
	a.SetOnItemClick(func(*Holder, int) { first++ })
	h.Click()
	a.SetOnItemClick(func(*Holder, int) { second++ })
	h.Click()
	a.SetOnItemClick(nil)
	h.Click()

	require.Equal(t, 1, first)
	require.Equal(t, 1, second)
}

func TestLongClick(t *testing.T) {
	t.Parallel()

	a, _ := newStringAdapter(t, "a", "b")
	var clicks, longClicks []int
	a.SetOnItemClick(func(_ *Holder, position int) { clicks = append(clicks, position) })
	a.SetOnItemLongClick(func(_ *Holder, position int) { longClicks = append(longClicks, position) })

	h := a.CreateHolder(0)
	require.NoError(t, a.BindHolder(h, 1))
	require.True(t, h.LongClick())
	require.Empty(t, clicks)
	require.Equal(t, []int{1}, longClicks)
}

func TestUnboundHolderIgnoresClicks(t *testing.T) {
	t.Parallel()

	a, _ := newStringAdapter(t, "a")
	called := false
	a.SetOnItemClick(func(*Holder, int) { called = true })

	h := a.CreateHolder(0)
	require.False(t, h.Click())

	require.NoError(t, a.BindHolder(h, 0))
	h.Unbind()
	require.False(t, h.Click())
	require.False(t, h.LongClick())
	require.False(t, called)
	require.Empty(t, h.Text("title"))

	h.Offset(3)
	require.Equal(t, NoPosition, h.LayoutPosition())
}

func TestHolderFields(t *testing.T) {
	t.Parallel()

	a := New(Config[string]{
		LayoutFor: func(int) Layout {
			return Layout{Fields: []string{"title", "subtitle", "badge"}}
		},
	}, nil)
	h := a.CreateHolder(0)
	h.SetText("title", "Button").SetText("subtitle", "")
	h.SetVisible("subtitle", false)

	require.Equal(t, "Button", h.Text("title"))
	require.False(t, h.Visible("subtitle"))
	require.Equal(t, []string{"title", "badge"}, h.VisibleFields())

	h.SetVisible("subtitle", true)
	require.Equal(t, []string{"title", "subtitle", "badge"}, h.VisibleFields())
}
