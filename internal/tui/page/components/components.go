// Package components is the catalog page: the component entries in a
// recycling list with a fuzzy filter.
package components

import (
	"fmt"
	"log/slog"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/xuexiangjys/xui/internal/catalog"
	"github.com/xuexiangjys/xui/internal/event"
	"github.com/xuexiangjys/xui/internal/metrics"
	"github.com/xuexiangjys/xui/internal/tui/page"
	"github.com/xuexiangjys/xui/internal/tui/styles"
	"github.com/xuexiangjys/xui/internal/tui/util"
	"github.com/xuexiangjys/xui/pkg/adapter"
	"github.com/xuexiangjys/xui/pkg/recycler"
)

const ComponentsPageID page.PageID = "components"

// Rows taken by the filter input and the blank line below it.
const headerHeight = 2

// ReplaceEntriesMsg swaps the catalog shown by the page, e.g. after the
// catalog file changed on disk.
type ReplaceEntriesMsg struct {
	Entries []catalog.Entry
}

// OpenedMsg is sent when a component is clicked.
type OpenedMsg struct {
	Entry catalog.Entry
}

type Options struct {
	Gap            int
	WrapNavigation bool
	EnableMouse    bool
	Metrics        *metrics.Metrics
}

type componentsPage struct {
	width, height int
	originY       int
	keyMap        KeyMap

	entries []catalog.Entry
	adapter *adapter.Adapter[catalog.Entry]
	list    *recycler.Model
	input   textinput.Model
	metrics *metrics.Metrics

	// Commands produced by item observers during the current update.
	pending []tea.Cmd
}

func layoutFor(int) adapter.Layout {
	return adapter.Layout{ID: "title_subtitle", Fields: []string{"title", "subtitle"}}
}

func bind(h *adapter.Holder, _ int, e catalog.Entry) {
	h.SetText("title", e.Title).
		SetText("subtitle", e.Subtitle).
		SetVisible("subtitle", e.Subtitle != "")
}

func New(entries []catalog.Entry, opts Options) *componentsPage {
	t := styles.CurrentTheme()
	p := &componentsPage{
		keyMap:  DefaultKeyMap(),
		entries: entries,
		metrics: opts.Metrics,
	}
	p.adapter = adapter.New(adapter.Config[catalog.Entry]{
		LayoutFor: layoutFor,
		Bind:      bind,
	}, entries)
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

	p.input = textinput.New()
	p.input.Placeholder = "Filter components"
	p.input.Prompt = "/ "
	p.input.Focus()
	return p
}

func (p *componentsPage) onClick(_ *adapter.Holder, position int) {
	entry, err := p.adapter.Item(position)
	if err != nil {
		p.pending = append(p.pending, util.ReportError(err))
		return
	}
	p.adapter.SetSelectionIndex(position)
	if p.metrics != nil {
		p.metrics.RecordClick()
	}
	event.ComponentOpened(entry.Title)
	slog.Debug("Component opened", "title", entry.Title, "position", position)
	p.pending = append(p.pending,
		util.ReportInfo(fmt.Sprintf("Opened %s", entry.Title)),
		util.CmdHandler(OpenedMsg{Entry: entry}),
	)
}

func (p *componentsPage) onLongClick(_ *adapter.Holder, position int) {
	entry, err := p.adapter.Item(position)
	if err != nil {
		p.pending = append(p.pending, util.ReportError(err))
		return
	}
	if p.metrics != nil {
		p.metrics.RecordLongClick()
	}
	p.pending = append(p.pending, util.ReportInfo(entry.Description()))
}

func (p *componentsPage) Init() tea.Cmd {
	return textinput.Blink
}

func (p *componentsPage) Update(msg tea.Msg) (util.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return p, p.SetSize(msg.Width, msg.Height)
	case tea.FocusMsg:
		p.list.Focus()
		return p, p.input.Focus()
	case tea.BlurMsg:
		p.list.Blur()
		p.input.Blur()
		return p, nil
	case ReplaceEntriesMsg:
		p.entries = msg.Entries
		p.applyFilter()
		return p, util.ReportInfo(fmt.Sprintf("Catalog reloaded, %d components", len(msg.Entries)))
	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, p.keyMap.ClearFilter):
			if p.input.Value() != "" {
				p.input.SetValue("")
				p.applyFilter()
			}
		case key.Matches(msg, p.keyMap.Copy):
			if entry, err := p.adapter.Item(p.list.Cursor()); err == nil {
				cmds = append(cmds, util.CopyToClipboard(entry.Title, entry.Title))
			}
		case p.isListKey(msg):
			p.list, _ = p.list.Update(msg)
		default:
			before := p.input.Value()
			var cmd tea.Cmd
			p.input, cmd = p.input.Update(msg)
			cmds = append(cmds, cmd)
			if p.input.Value() != before {
				p.applyFilter()
			}
		}
	case tea.MouseClickMsg, tea.MouseWheelMsg:
		p.list, _ = p.list.Update(msg)
	default:
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	cmds = append(cmds, p.pending...)
	p.pending = nil
	return p, tea.Batch(cmds...)
}

func (p *componentsPage) isListKey(msg tea.KeyPressMsg) bool {
	return key.Matches(msg, p.keyMap.List.KeyBindings()...)
}

func (p *componentsPage) applyFilter() {
	p.adapter.ReplaceAll(catalog.Filter(p.entries, p.input.Value()))
	p.list.GoToTop()
}

func (p *componentsPage) View() string {
	t := styles.CurrentTheme()
	body := p.list.View()
	if p.adapter.ItemCount() == 0 {
		body = lipgloss.NewStyle().Width(p.width).Height(max(0, p.height-headerHeight)).
			Render(t.S().Muted.Render("  No matching components"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, p.input.View(), "", body)
}

func (p *componentsPage) SetSize(width, height int) tea.Cmd {
	p.width, p.height = width, height
	p.input.SetWidth(max(0, width-4))
	p.list.SetSize(width, max(0, height-headerHeight))
	p.list.SetOrigin(0, p.originY+headerHeight)
	return nil
}

func (p *componentsPage) GetSize() (int, int) {
	return p.width, p.height
}

func (p *componentsPage) SetPosition(x, y int) tea.Cmd {
	p.originY = y
	p.list.SetOrigin(x, y+headerHeight)
	return nil
}

// SetGap changes the blank lines between rows.
func (p *componentsPage) SetGap(gap int) {
	p.list.SetGap(gap)
}

func (p *componentsPage) Help() help.KeyMap {
	return util.SimpleKeyMap{Bindings: p.keyMap.KeyBindings()}
}

// Adapter exposes the page's adapter.
func (p *componentsPage) Adapter() *adapter.Adapter[catalog.Entry] {
	return p.adapter
}

func (p *componentsPage) List() *recycler.Model {
	return p.list
}
