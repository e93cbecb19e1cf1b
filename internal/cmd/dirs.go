package cmd

import (
	"os"
	"path/filepath"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/xuexiangjys/xui/internal/config"
	"github.com/xuexiangjys/xui/internal/home"
	termutil "github.com/xuexiangjys/xui/internal/term"
)

var dirsCmd = &cobra.Command{
	Use:   "dirs",
	Short: "Print directories used by xui",
	Long: `Print the directories where xui stores its configuration and data files.
The data directory also holds the log file.`,
	Example: `
# Print all directories
xui dirs

# Print only the config directory
xui dirs config

# Print only the data directory
xui dirs data
  `,
	Run: func(cmd *cobra.Command, args []string) {
		if termutil.IsInteractive(os.Stdout) {
			lipgloss.Println(dirsTable())
			return
		}
		cmd.Println(filepath.Dir(config.GlobalConfig()))
		cmd.Println(filepath.Dir(config.GlobalConfigData()))
	},
}

// dirsTable lists the directories with the home directory shortened to `~`.
func dirsTable() *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			return lipgloss.NewStyle().Padding(0, 2)
		}).
		Row("Config", home.Short(filepath.Dir(config.GlobalConfig()))).
		Row("Data", home.Short(filepath.Dir(config.GlobalConfigData()))).
		Row("Logs", home.Short(filepath.Dir(config.LogFile())))
}

var configDirCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the configuration directory used by xui",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(filepath.Dir(config.GlobalConfig()))
	},
}

var dataDirCmd = &cobra.Command{
	Use:   "data",
	Short: "Print the data directory used by xui",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(filepath.Dir(config.GlobalConfigData()))
	},
}

func init() {
	dirsCmd.AddCommand(configDirCmd, dataDirCmd)
}
