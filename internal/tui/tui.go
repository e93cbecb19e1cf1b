package tui

import (
	"log/slog"
	"slices"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/xuexiangjys/xui/internal/catalog"
	"github.com/xuexiangjys/xui/internal/config"
	"github.com/xuexiangjys/xui/internal/event"
	"github.com/xuexiangjys/xui/internal/metrics"
	"github.com/xuexiangjys/xui/internal/tui/components/status"
	"github.com/xuexiangjys/xui/internal/tui/page"
	"github.com/xuexiangjys/xui/internal/tui/page/components"
	"github.com/xuexiangjys/xui/internal/tui/page/playground"
	"github.com/xuexiangjys/xui/internal/tui/styles"
	"github.com/xuexiangjys/xui/internal/tui/util"
)

var lastMouseEvent time.Time

func MouseEventFilter(m tea.Model, msg tea.Msg) tea.Msg {
	switch msg.(type) {
	case tea.MouseWheelMsg, tea.MouseMotionMsg:
		now := time.Now()
		// trackpad is sending too many requests
		if now.Sub(lastMouseEvent) < 15*time.Millisecond {
			return nil
		}
		lastMouseEvent = now
	}
	return msg
}

// ReloadMsg carries a configuration reloaded from disk together with the
// catalog it points to.
type ReloadMsg struct {
	Config  *config.Config
	Entries []catalog.Entry
	Err     error
}

type gapSetter interface {
	SetGap(gap int)
}

// appModel represents the main application model that manages pages and the
// status bar.
type appModel struct {
	wWidth, wHeight int // Window dimensions
	width, height   int
	keyMap          KeyMap

	currentPage page.PageID
	pageOrder   []page.PageID
	pages       map[page.PageID]util.Model
	loadedPages map[page.PageID]bool

	status          status.StatusCmp
	showingFullHelp bool

	cfg         *config.Config
	metrics     *metrics.Metrics
	enableMouse bool
}

// Init initializes the application model and returns initial commands.
func (a appModel) Init() tea.Cmd {
	item, ok := a.pages[a.currentPage]
	if !ok {
		return nil
	}

	var cmds []tea.Cmd
	cmds = append(cmds, item.Init())
	a.loadedPages[a.currentPage] = true
	cmds = append(cmds, a.status.Init())
	return tea.Batch(cmds...)
}

// Update handles incoming messages and updates the application state.
func (a *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.wWidth, a.wHeight = msg.Width, msg.Height
		return a, a.handleWindowResize(msg.Width, msg.Height)

	case page.PageChangeMsg:
		return a, a.moveToPage(msg.ID)

	// Status Messages
	case util.InfoMsg, util.ClearStatusMsg:
		s, statusCmd := a.status.Update(msg)
		a.status = s.(status.StatusCmp)
		return a, statusCmd

	case ReloadMsg:
		return a, a.handleReload(msg)

	case components.OpenedMsg:
		if a.cfg == nil {
			return a, nil
		}
		if err := a.cfg.RecordRecentComponent(msg.Entry.Title); err != nil {
			return a, util.ReportError(err)
		}
		return a, nil

	case playground.CompactModeChangedMsg:
		if a.cfg == nil {
			return a, nil
		}
		if err := a.cfg.SetCompactMode(msg.Compact); err != nil {
			return a, util.ReportError(err)
		}
		return a, nil

	// The terminal gained or lost focus; every page follows it.
	case tea.FocusMsg, tea.BlurMsg:
		for id, p := range a.pages {
			updated, cmd := p.Update(msg)
			a.pages[id] = updated
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case tea.KeyPressMsg:
		return a, a.handleKeyPressMsg(msg)

	case tea.MouseClickMsg, tea.MouseWheelMsg:
		if !a.enableMouse {
			return a, nil
		}
	}

	s, statusCmd := a.status.Update(msg)
	a.status = s.(status.StatusCmp)
	cmds = append(cmds, statusCmd)

	item, ok := a.pages[a.currentPage]
	if !ok {
		return a, tea.Batch(cmds...)
	}
	updated, cmd := item.Update(msg)
	a.pages[a.currentPage] = updated
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

func (a *appModel) handleReload(msg ReloadMsg) tea.Cmd {
	if msg.Err != nil {
		return util.ReportError(msg.Err)
	}
	var cmds []tea.Cmd
	if msg.Config != nil {
		a.cfg = msg.Config
		config.Set(msg.Config)
		gap := msg.Config.Options.TUI.RowGap()
		for _, p := range a.pages {
			if g, ok := p.(gapSetter); ok {
				g.SetGap(gap)
			}
		}
	}
	if msg.Entries != nil {
		updated, cmd := a.pages[components.ComponentsPageID].Update(components.ReplaceEntriesMsg{Entries: msg.Entries})
		a.pages[components.ComponentsPageID] = updated
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// handleWindowResize processes window resize events and updates all components.
func (a *appModel) handleWindowResize(width, height int) tea.Cmd {
	var cmds []tea.Cmd

	s, cmd := a.status.Update(tea.WindowSizeMsg{Width: width, Height: height})
	a.status = s.(status.StatusCmp)
	cmds = append(cmds, cmd)

	// The status bar height depends on the help shown for the current page.
	a.status.SetKeyMap(a.helpKeyMap())
	height -= lipgloss.Height(a.status.View())
	a.width, a.height = width, max(0, height)

	for p, pg := range a.pages {
		if sizable, ok := pg.(util.Sizeable); ok {
			cmds = append(cmds, sizable.SetSize(a.width, a.height))
		}
		if positional, ok := pg.(util.Positional); ok {
			cmds = append(cmds, positional.SetPosition(0, 0))
		}
		a.pages[p] = pg
	}
	return tea.Batch(cmds...)
}

// handleKeyPressMsg processes keyboard input and routes to appropriate handlers.
func (a *appModel) handleKeyPressMsg(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	// Check this first as the user should be able to quit no matter what.
	case key.Matches(msg, a.keyMap.Quit):
		return tea.Quit
	case key.Matches(msg, a.keyMap.Help):
		a.status.ToggleFullHelp()
		a.showingFullHelp = !a.showingFullHelp
		return a.handleWindowResize(a.wWidth, a.wHeight)
	case key.Matches(msg, a.keyMap.NextPage):
		i := slices.Index(a.pageOrder, a.currentPage)
		next := a.pageOrder[(i+1)%len(a.pageOrder)]
		return util.CmdHandler(page.PageChangeMsg{ID: next})
	case key.Matches(msg, a.keyMap.Suspend):
		return tea.Suspend
	default:
		item, ok := a.pages[a.currentPage]
		if !ok {
			return nil
		}
		updated, cmd := item.Update(msg)
		a.pages[a.currentPage] = updated
		return cmd
	}
}

// moveToPage handles navigation between different pages in the application.
func (a *appModel) moveToPage(pageID page.PageID) tea.Cmd {
	if _, ok := a.pages[pageID]; !ok {
		slog.Warn("Unknown page", "page", pageID)
		return nil
	}

	var cmds []tea.Cmd
	if _, ok := a.loadedPages[pageID]; !ok {
		cmds = append(cmds, a.pages[pageID].Init())
		a.loadedPages[pageID] = true
	}
	a.currentPage = pageID
	cmds = append(cmds, a.handleWindowResize(a.wWidth, a.wHeight))
	event.PageSwitched(string(pageID))
	if a.metrics != nil {
		a.metrics.IncrementCustomMetric("page_switches")
	}
	return tea.Batch(cmds...)
}

func (a *appModel) helpKeyMap() help.KeyMap {
	bindings := a.keyMap.KeyBindings()
	if withHelp, ok := a.pages[a.currentPage].(util.KeyMapHelp); ok {
		bindings = append(withHelp.Help().ShortHelp(), bindings...)
	}
	return util.SimpleKeyMap{Bindings: bindings, PerColumn: 4}
}

// View renders the complete application interface.
func (a *appModel) View() tea.View {
	var view tea.View
	t := styles.CurrentTheme()
	view.AltScreen = true
	view.ReportFocus = true
	if a.enableMouse {
		view.MouseMode = tea.MouseModeCellMotion
	}
	view.BackgroundColor = t.BgBase
	if a.wWidth < 25 || a.wHeight < 10 {
		view.SetContent(
			lipgloss.NewCanvas(
				lipgloss.NewLayer(
					t.S().Base.Width(a.wWidth).Height(a.wHeight).
						Align(lipgloss.Center, lipgloss.Center).
						Render(
							t.S().Base.
								Padding(1, 4).
								Foreground(t.White).
								BorderStyle(lipgloss.RoundedBorder()).
								BorderForeground(t.Primary).
								Render("Window too small!"),
						),
				),
			).Render(),
		)
		return view
	}

	a.status.SetKeyMap(a.helpKeyMap())
	pageView := a.pages[a.currentPage].View()
	appView := lipgloss.JoinVertical(lipgloss.Top, pageView, a.status.View())

	view.SetContent(lipgloss.NewCanvas(lipgloss.NewLayer(appView)).Render())
	return view
}

// New creates and initializes a new TUI application model.
func New(cfg *config.Config, entries []catalog.Entry, m *metrics.Metrics) *appModel {
	tui := cfg.Options.TUI
	gap := tui.RowGap()
	enableMouse := !tui.DisableMouse

	componentsPage := components.New(entries, components.Options{
		Gap:            gap,
		WrapNavigation: tui.WrapNavigation,
		EnableMouse:    enableMouse,
		Metrics:        m,
	})
	playgroundPage := playground.New(playground.Options{
		Compact:        tui.CompactMode,
		Gap:            gap,
		WrapNavigation: tui.WrapNavigation,
		EnableMouse:    enableMouse,
		Metrics:        m,
	})

	return &appModel{
		currentPage: components.ComponentsPageID,
		pageOrder:   []page.PageID{components.ComponentsPageID, playground.PlaygroundPageID},
		pages: map[page.PageID]util.Model{
			components.ComponentsPageID: componentsPage,
			playground.PlaygroundPageID: playgroundPage,
		},
		loadedPages: make(map[page.PageID]bool),
		keyMap:      DefaultKeyMap(),
		status:      status.NewStatusCmp(m),
		cfg:         cfg,
		metrics:     m,
		enableMouse: enableMouse,
	}
}
