package styles

import (
	"image/color"
	"sync"

	"charm.land/lipgloss/v2"

	"github.com/xuexiangjys/xui/pkg/recycler"
)

// Theme is the palette the pages and the list rows are styled from.
type Theme struct {
	Name string

	Primary  color.Color
	Tertiary color.Color

	BgBase   color.Color
	FgBase   color.Color
	FgMuted  color.Color
	FgSubtle color.Color

	Border      color.Color
	BorderFocus color.Color

	Success color.Color
	Error   color.Color
	Warning color.Color
	Info    color.Color

	White color.Color

	styles     *Styles
	stylesOnce sync.Once
}

type Styles struct {
	Base   lipgloss.Style
	Muted  lipgloss.Style
	Subtle lipgloss.Style
	Header lipgloss.Style

	// Rows rendered by the recycling list.
	List recycler.Styles
}

// S returns the derived styles of the theme.
func (t *Theme) S() *Styles {
	t.stylesOnce.Do(func() {
		t.styles = t.buildStyles()
	})
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)
	return &Styles{
		Base:   base,
		Muted:  base.Foreground(t.FgMuted),
		Subtle: base.Foreground(t.FgSubtle),
		Header: base.Foreground(t.Primary).Bold(true),
		List: recycler.Styles{
			Title:            base,
			Subtitle:         base.Foreground(t.FgMuted),
			SelectedTitle:    base.Foreground(t.Success).Bold(true),
			SelectedSubtitle: base.Foreground(t.Tertiary),
			Cursor:           base.Foreground(t.BorderFocus),
		},
	}
}

var (
	currentTheme *Theme
	themeOnce    sync.Once
)

// CurrentTheme returns the active theme.
func CurrentTheme() *Theme {
	themeOnce.Do(func() {
		currentTheme = NewCharmtoneTheme()
	})
	return currentTheme
}
