package styles

import (
	"github.com/charmbracelet/x/exp/charmtone"
)

// NewCharmtoneTheme is the default dark palette.
func NewCharmtoneTheme() *Theme {
	return &Theme{
		Name: "charmtone",

		// Headers and the list cursor.
		Primary:     charmtone.Charple,
		BorderFocus: charmtone.Charple,
		Border:      charmtone.Charcoal,

		// Subtitle of the selected row.
		Tertiary: charmtone.Bok,

		BgBase:   charmtone.Pepper,
		FgBase:   charmtone.Ash,
		FgMuted:  charmtone.Squid,
		FgSubtle: charmtone.Oyster,

		Success: charmtone.Guac,
		Error:   charmtone.Sriracha,
		Warning: charmtone.Zest,
		Info:    charmtone.Malibu,

		White: charmtone.Butter,
	}
}
