package cmd

import (
	"fmt"
	"io"
	"os"
	"slices"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/xuexiangjys/xui/internal/catalog"
	"github.com/xuexiangjys/xui/internal/config"
	termutil "github.com/xuexiangjys/xui/internal/term"
	"github.com/xuexiangjys/xui/internal/tui/styles"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the component catalog",
	Long: heredoc.Doc(`
		Print the entries of the component catalog without starting the TUI.
		The catalog file configured for the working directory is used when there is one.
	`),
	Example: `
# Print every entry
xui catalog

# Print the entries matching a fuzzy query
xui catalog --filter button

# Print only the recently opened entries
xui catalog --recent
  `,
	RunE: func(cmd *cobra.Command, args []string) error {
		query, _ := cmd.Flags().GetString("filter")
		recentOnly, _ := cmd.Flags().GetBool("recent")

		cwd, err := ResolveCwd(cmd)
		if err != nil {
			return err
		}
		cfg, err := config.Load(cwd, false)
		if err != nil {
			return err
		}
		c, err := catalog.Load(cfg.CatalogPath())
		if err != nil {
			return err
		}

		entries := catalog.Filter(c.Entries(), query)
		if recentOnly {
			entries = slices.DeleteFunc(entries, func(e catalog.Entry) bool {
				return !slices.Contains(cfg.RecentComponents, e.Title)
			})
		}

		if termutil.IsInteractive(os.Stdout) {
			lipgloss.Println(catalogTable(entries, cfg.RecentComponents))
			return nil
		}
		return printCatalog(cmd.OutOrStdout(), entries)
	},
}

func init() {
	catalogCmd.Flags().StringP("filter", "f", "", "Fuzzy filter applied to titles and subtitles")
	catalogCmd.Flags().BoolP("recent", "r", false, "Only print recently opened entries")
}

func catalogTable(entries []catalog.Entry, recent []string) *table.Table {
	t := styles.CurrentTheme()
	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(t.Border)).
		Headers("Group", "Component", "Description").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(t.Primary)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	for _, e := range entries {
		title := e.Title
		if slices.Contains(recent, e.Title) {
			title += " " + styles.PinIcon
		}
		tbl.Row(catalog.GroupTitle(e.Group), title, e.Subtitle)
	}
	return tbl
}

// printCatalog writes one tab separated entry per line.
func printCatalog(w io.Writer, entries []catalog.Entry) error {
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", e.Group, e.Title, e.Subtitle); err != nil {
			return err
		}
	}
	return nil
}
