package tui

import (
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/require"

	"github.com/xuexiangjys/xui/internal/catalog"
	"github.com/xuexiangjys/xui/internal/config"
	"github.com/xuexiangjys/xui/internal/metrics"
	"github.com/xuexiangjys/xui/internal/tui/page"
	"github.com/xuexiangjys/xui/internal/tui/page/components"
	"github.com/xuexiangjys/xui/internal/tui/page/playground"
	"github.com/xuexiangjys/xui/internal/tui/util"
	"github.com/xuexiangjys/xui/pkg/adapter"
	"github.com/xuexiangjys/xui/pkg/recycler"
)

func newApp(t *testing.T) *appModel {
	t.Helper()
	t.Setenv("XUI_GLOBAL_CONFIG", t.TempDir())
	t.Setenv("XUI_GLOBAL_DATA", t.TempDir())
	cfg, err := config.Load(t.TempDir(), false)
	require.NoError(t, err)

	a := New(cfg, catalog.Default().Entries(), metrics.NewMetrics())
	a.Init()
	a.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return a
}

func TestSwitchPages(t *testing.T) {
	a := newApp(t)
	require.Equal(t, components.ComponentsPageID, a.currentPage)

	_, cmd := a.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	require.Equal(t, page.PageChangeMsg{ID: playground.PlaygroundPageID}, cmd())
	a.Update(cmd())
	require.Equal(t, playground.PlaygroundPageID, a.currentPage)
	require.True(t, a.loadedPages[playground.PlaygroundPageID])
	require.Contains(t, a.View().Content, "Playground")

	a.Update(page.PageChangeMsg{ID: components.ComponentsPageID})
	require.Equal(t, components.ComponentsPageID, a.currentPage)
	require.Equal(t, int64(2), a.metrics.GetSnapshot()["page_switches"])
}

func TestCompactModeIsPersisted(t *testing.T) {
	a := newApp(t)
	a.Update(playground.CompactModeChangedMsg{Compact: true})
	require.True(t, a.cfg.Options.TUI.CompactMode)

	reloaded, err := config.Load(t.TempDir(), false)
	require.NoError(t, err)
	require.True(t, reloaded.Options.TUI.CompactMode)
}

func TestOpenedComponentIsRecorded(t *testing.T) {
	a := newApp(t)
	a.Update(components.OpenedMsg{Entry: catalog.Entry{Title: "Button"}})
	require.Equal(t, []string{"Button"}, a.cfg.RecentComponents)
}

func TestReload(t *testing.T) {
	a := newApp(t)

	_, cmd := a.Update(ReloadMsg{Err: errors.New("bad config")})
	require.Equal(t, util.InfoMsg{Type: util.InfoTypeError, Msg: "bad config"}, cmd())

	a.Update(ReloadMsg{Entries: []catalog.Entry{{Group: "custom", Title: "Knob"}}})
	require.Contains(t, a.View().Content, "Knob")
}

func TestReloadWithoutCatalogKeepsSelection(t *testing.T) {
	a := newApp(t)
	catalogPage := a.pages[components.ComponentsPageID].(interface {
		Adapter() *adapter.Adapter[catalog.Entry]
		List() *recycler.Model
	})

	a.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	a.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	item, err := catalogPage.Adapter().Item(1)
	require.NoError(t, err)
	a.Update(components.OpenedMsg{Entry: item})
	require.Equal(t, 1, catalogPage.Adapter().SelectionIndex())
	require.Equal(t, 1, catalogPage.List().Cursor())

	a.Update(ReloadMsg{Config: a.cfg})
	require.Equal(t, 1, catalogPage.Adapter().SelectionIndex())
	require.Equal(t, 1, catalogPage.List().Cursor())
}

func TestTerminalFocusReachesPages(t *testing.T) {
	a := newApp(t)
	require.True(t, a.View().ReportFocus)
	catalogPage := a.pages[components.ComponentsPageID].(interface{ List() *recycler.Model })

	a.Update(tea.BlurMsg{})
	a.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	require.Equal(t, 0, catalogPage.List().Cursor())

	a.Update(tea.FocusMsg{})
	a.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	require.Equal(t, 1, catalogPage.List().Cursor())
}

func TestWindowTooSmall(t *testing.T) {
	a := newApp(t)
	a.Update(tea.WindowSizeMsg{Width: 20, Height: 5})
	require.Contains(t, a.View().Content, "Window too small!")
}
