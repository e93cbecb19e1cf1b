package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/MakeNowJust/heredoc"
	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/fang"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/exp/charmtone"
	"github.com/spf13/cobra"

	"github.com/xuexiangjys/xui/internal/catalog"
	"github.com/xuexiangjys/xui/internal/config"
	"github.com/xuexiangjys/xui/internal/event"
	"github.com/xuexiangjys/xui/internal/log"
	"github.com/xuexiangjys/xui/internal/metrics"
	termutil "github.com/xuexiangjys/xui/internal/term"
	"github.com/xuexiangjys/xui/internal/tui"
	"github.com/xuexiangjys/xui/internal/version"
)

func init() {
	rootCmd.PersistentFlags().StringP("cwd", "c", "", "Current working directory")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Debug")
	rootCmd.Flags().BoolP("help", "h", false, "Help")
	rootCmd.Flags().Bool("no-mouse", false, "Disable mouse support")

	rootCmd.AddCommand(
		catalogCmd,
		dirsCmd,
		logsCmd,
		schemaCmd,
	)
}

var rootCmd = &cobra.Command{
	Use:   "xui",
	Short: "Terminal showcase for the xui list adapter",
	Long: heredoc.Doc(`
		xui renders the component catalog and an adapter playground in the terminal.
		Both pages are lists driven by the same typed adapter and recycler, so every
		insert, delete, selection and click goes through the adapter's notifications.
	`),
	Example: `
# Run in interactive mode
xui

# Run with debug logging
xui -d

# Run with a project config from another directory
xui -d -c /path/to/project

# Print the catalog without the TUI
xui catalog --filter button

# Print version
xui -v
  `,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setupEnv(cmd)
		if err != nil {
			return err
		}
		defer env.shutdown()

		event.AppInitialized()

		var termEnv uv.Environ = os.Environ()
		cfg := env.cfg
		if noMouse, _ := cmd.Flags().GetBool("no-mouse"); noMouse || !termutil.SupportsMouse() {
			cfg.Options.TUI.DisableMouse = true
		}
		ui := tui.New(cfg, env.entries, env.metrics)

		program := tea.NewProgram(
			ui,
			tea.WithEnvironment(termEnv),
			tea.WithContext(cmd.Context()),
			tea.WithFilter(tui.MouseEventFilter))

		reloader, err := config.NewHotReloader(cfg)
		if err != nil {
			slog.Warn("Config hot reload disabled", "error", err)
		} else {
			reloader.AddCallback(func(next *config.Config, changed []string) error {
				program.Send(reloadMsg(reloader.GetConfig(), next, changed))
				return nil
			})
			if err := reloader.Start(); err != nil {
				slog.Warn("Config hot reload disabled", "error", err)
			}
			defer func() { _ = reloader.Stop() }()
		}

		if _, err := program.Run(); err != nil {
			event.Error(err)
			slog.Error("TUI run error", "error", err)
			return errors.New("xui crashed. If you'd like to report it, please copy the stacktrace above and open an issue at https://github.com/xuexiangjys/xui/issues/new") //nolint:staticcheck
		}
		slog.Info("Session finished", "metrics", env.metrics.GetSnapshot())
		return nil
	},
	PostRun: func(cmd *cobra.Command, args []string) {
		event.AppExited()
	},
}

// reloadMsg builds the message for a reloaded config. The catalog is read
// again only when its file changed or the config points to another one.
func reloadMsg(prev, next *config.Config, changed []string) tui.ReloadMsg {
	msg := tui.ReloadMsg{Config: next}
	path := next.CatalogPath()
	if path == prev.CatalogPath() && (path == "" || !slices.Contains(changed, path)) {
		return msg
	}
	c, err := catalog.Load(path)
	if err != nil {
		return tui.ReloadMsg{Config: next, Err: fmt.Errorf("reloading catalog: %w", err)}
	}
	msg.Entries = c.Entries()
	return msg
}

var logo = lipgloss.NewStyle().Foreground(charmtone.Charple).SetString(`
 ▄   ▄ ▄   ▄ ▄
  ▀▄▀  █   █ █
 ▄▀ ▀▄ ▀▄▄▄▀ █
`)

// copied from cobra:
const defaultVersionTemplate = `{{with .DisplayName}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
`

func Execute() {
	// cobra has no hook for printing the version, so the colored logo is
	// rendered through a colorprofile writer into the version template.
	if termutil.IsInteractive(os.Stdout) {
		var b bytes.Buffer
		w := colorprofile.NewWriter(os.Stdout, os.Environ())
		w.Forward = &b
		_, _ = w.WriteString(logo.String())
		rootCmd.SetVersionTemplate(b.String() + "\n" + defaultVersionTemplate)
	}
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(version.Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

type appEnv struct {
	cfg     *config.Config
	entries []catalog.Entry
	metrics *metrics.Metrics
}

func (e *appEnv) shutdown() {
	event.Flush()
}

// setupEnv loads the configuration, starts logging and telemetry, and reads
// the catalog.
func setupEnv(cmd *cobra.Command) (*appEnv, error) {
	debug, _ := cmd.Flags().GetBool("debug")

	cwd, err := ResolveCwd(cmd)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Init(cwd, debug)
	if err != nil {
		return nil, err
	}

	log.Setup(config.LogFile(), cfg.Options.Debug)
	slog.Info("Starting xui", "version", version.Version, "cwd", cwd, "config", cfg.LoadedFrom())

	event.Init(cfg.Options.Telemetry.Key, cfg.Options.Telemetry.Endpoint)

	c, err := catalog.Load(cfg.CatalogPath())
	if err != nil {
		slog.Error("Failed to load catalog", "path", cfg.CatalogPath(), "error", err)
		return nil, err
	}

	return &appEnv{
		cfg:     cfg,
		entries: c.Entries(),
		metrics: metrics.NewMetrics(),
	}, nil
}

func ResolveCwd(cmd *cobra.Command) (string, error) {
	cwd, _ := cmd.Flags().GetString("cwd")
	if cwd != "" {
		err := os.Chdir(cwd)
		if err != nil {
			return "", fmt.Errorf("failed to change directory: %v", err)
		}
		return cwd, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %v", err)
	}
	return cwd, nil
}
