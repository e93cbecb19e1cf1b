// Package playground is a page exercising every adapter operation from the
// keyboard.
package playground

import (
	"fmt"
	"log/slog"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/xuexiangjys/xui/internal/event"
	"github.com/xuexiangjys/xui/internal/metrics"
	"github.com/xuexiangjys/xui/internal/tui/page"
	"github.com/xuexiangjys/xui/internal/tui/styles"
	"github.com/xuexiangjys/xui/internal/tui/util"
	"github.com/xuexiangjys/xui/pkg/adapter"
	"github.com/xuexiangjys/xui/pkg/recycler"
)

const PlaygroundPageID page.PageID = "playground"

const (
	headerHeight = 2
	seedSize     = 5
	batchSize    = 3
)

// CompactModeChangedMsg asks the application to persist the compact mode.
type CompactModeChangedMsg struct {
	Compact bool
}

type Options struct {
	Compact        bool
	Gap            int
	WrapNavigation bool
	EnableMouse    bool
	Metrics        *metrics.Metrics
}

type playgroundPage struct {
	width, height int
	keyMap        KeyMap
	compact       bool

	notes   *noteFactory
	adapter *adapter.Adapter[*Note]
	list    *recycler.Model
	metrics *metrics.Metrics

	pending []tea.Cmd
}

func New(opts Options) *playgroundPage {
	t := styles.CurrentTheme()
	p := &playgroundPage{
		keyMap:  DefaultKeyMap(),
		compact: opts.Compact,
		notes:   &noteFactory{},
		metrics: opts.Metrics,
	}
	p.adapter = adapter.New(adapter.Config[*Note]{
		LayoutFor: layoutFor,
		Bind:      p.bind,
		KindOf: func(_ int, n *Note) int {
			if n.Pinned {
				return kindPinned
			}
			return kindNote
		},
	}, p.notes.batch(seedSize))
	p.adapter.
		SetOnItemClick(p.onClick).
		SetOnItemLongClick(p.onLongClick)

	listOpts := []recycler.Option{
		recycler.WithKeyMap(p.keyMap.List),
		recycler.WithGap(opts.Gap),
		recycler.WithStyles(t.S().List),
	}
	if opts.WrapNavigation {
		listOpts = append(listOpts, recycler.WithWrapNavigation())
	}
	if opts.EnableMouse {
		listOpts = append(listOpts, recycler.WithEnableMouse())
	}
	if opts.Metrics != nil {
		listOpts = append(listOpts, recycler.WithHostDecorator(opts.Metrics.Host()))
	}
	p.list = recycler.New(p.adapter, listOpts...)
	return p
}

func layoutFor(kind int) adapter.Layout {
	if kind == kindPinned {
		return adapter.Layout{ID: "pinned_note", Fields: []string{"title", "body", "id"}}
	}
	return adapter.Layout{ID: "note", Fields: []string{"title", "body"}}
}

func (p *playgroundPage) bind(h *adapter.Holder, _ int, n *Note) {
	title := fmt.Sprintf("%s %s", styles.NoteIcon, n.Title)
	if n.Pinned {
		title = fmt.Sprintf("%s %s", styles.PinIcon, n.Title)
		h.SetText("id", "id "+n.ShortID())
	}
	h.SetText("title", title).
		SetText("body", n.Body).
		SetVisible("body", !p.compact).
		SetVisible("id", !p.compact)
}

func (p *playgroundPage) onClick(_ *adapter.Holder, position int) {
	n, err := p.adapter.Item(position)
	if err != nil {
		p.pending = append(p.pending, util.ReportError(err))
		return
	}
	if p.metrics != nil {
		p.metrics.RecordClick()
	}
	p.pending = append(p.pending, util.ReportInfo(fmt.Sprintf("Clicked %s at position %d", n.Title, position)))
}

func (p *playgroundPage) onLongClick(_ *adapter.Holder, position int) {
	n, err := p.adapter.Item(position)
	if err != nil {
		p.pending = append(p.pending, util.ReportError(err))
		return
	}
	if p.metrics != nil {
		p.metrics.RecordLongClick()
	}
	p.pending = append(p.pending, util.ReportInfo(fmt.Sprintf("%s has id %s", n.Title, n.ID)))
}

func (p *playgroundPage) Init() tea.Cmd {
	return nil
}

func (p *playgroundPage) Update(msg tea.Msg) (util.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return p, p.SetSize(msg.Width, msg.Height)
	case tea.FocusMsg:
		p.list.Focus()
	case tea.BlurMsg:
		p.list.Blur()
	case tea.KeyPressMsg:
		cmds = append(cmds, p.handleKeyPressMsg(msg))
	case tea.MouseClickMsg, tea.MouseWheelMsg:
		p.list, _ = p.list.Update(msg)
	}
	cmds = append(cmds, p.pending...)
	p.pending = nil
	return p, tea.Batch(cmds...)
}

func (p *playgroundPage) handleKeyPressMsg(msg tea.KeyPressMsg) tea.Cmd {
	cursor := p.list.Cursor()
	switch {
	case key.Matches(msg, p.keyMap.AppendOne):
		p.adapter.AppendOne(p.notes.next())
		p.list.GoToBottom()
		return p.edited("append one")
	case key.Matches(msg, p.keyMap.AppendBatch):
		p.adapter.Append(p.notes.batch(batchSize))
		p.list.GoToBottom()
		return p.edited("append batch")
	case key.Matches(msg, p.keyMap.Insert):
		if err := p.adapter.Insert(cursor, p.notes.next()); err != nil {
			return p.failed(err)
		}
		return p.edited("insert")
	case key.Matches(msg, p.keyMap.Delete):
		if err := p.adapter.Delete(cursor); err != nil {
			return p.failed(err)
		}
		return p.edited("delete")
	case key.Matches(msg, p.keyMap.DeleteOutOfRange):
		if err := p.adapter.Delete(p.adapter.ItemCount()); err != nil {
			return p.failed(err)
		}
		return p.edited("delete")
	case key.Matches(msg, p.keyMap.ReplaceAll):
		p.notes = &noteFactory{}
		p.adapter.ReplaceAll(p.notes.batch(seedSize))
		p.list.GoToTop()
		return p.edited("replace all")
	case key.Matches(msg, p.keyMap.Select):
		p.adapter.SetSelectionIndex(cursor)
		return p.edited("select")
	case key.Matches(msg, p.keyMap.SelectOutOfRange):
		index := p.adapter.ItemCount() + 2
		p.adapter.SetSelectionIndex(index)
		return tea.Batch(
			p.edited("select"),
			util.ReportWarn(fmt.Sprintf("Selection set to %d, past the last row", index)),
		)
	case key.Matches(msg, p.keyMap.Compact):
		p.SetCompact(!p.compact)
		return util.CmdHandler(CompactModeChangedMsg{Compact: p.compact})
	case key.Matches(msg, p.keyMap.CopyID):
		n, err := p.adapter.Item(cursor)
		if err != nil {
			return p.failed(err)
		}
		return util.CopyToClipboard(n.ID.String(), "Note ID")
	}
	p.list, _ = p.list.Update(msg)
	return nil
}

func (p *playgroundPage) edited(op string) tea.Cmd {
	event.PlaygroundEdited(op)
	slog.Debug("Playground edited", "operation", op, "items", p.adapter.ItemCount())
	return nil
}

func (p *playgroundPage) failed(err error) tea.Cmd {
	if p.metrics != nil {
		p.metrics.RecordError()
	}
	return util.ReportError(err)
}

// SetCompact hides the note bodies and rebinds the visible rows.
func (p *playgroundPage) SetCompact(compact bool) {
	if p.compact == compact {
		return
	}
	p.compact = compact
	p.adapter.Refresh()
}

func (p *playgroundPage) View() string {
	t := styles.CurrentTheme()
	compact := "off"
	if p.compact {
		compact = "on"
	}
	header := t.S().Header.Render("Playground") + t.S().Muted.Render(fmt.Sprintf(
		"  items %d %s selection %d %s compact %s",
		p.adapter.ItemCount(),
		styles.BorderThin,
		p.adapter.SelectionIndex(),
		styles.BorderThin,
		compact,
	))
	return lipgloss.JoinVertical(lipgloss.Left, header, "", p.list.View())
}

func (p *playgroundPage) SetSize(width, height int) tea.Cmd {
	p.width, p.height = width, height
	p.list.SetSize(width, max(0, height-headerHeight))
	return nil
}

func (p *playgroundPage) GetSize() (int, int) {
	return p.width, p.height
}

func (p *playgroundPage) SetPosition(x, y int) tea.Cmd {
	p.list.SetOrigin(x, y+headerHeight)
	return nil
}

func (p *playgroundPage) SetGap(gap int) {
	p.list.SetGap(gap)
}

func (p *playgroundPage) Help() help.KeyMap {
	return util.SimpleKeyMap{Bindings: p.keyMap.KeyBindings(), PerColumn: 4}
}

func (p *playgroundPage) Adapter() *adapter.Adapter[*Note] {
	return p.adapter
}

func (p *playgroundPage) List() *recycler.Model {
	return p.list
}
