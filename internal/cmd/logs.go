package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/log/v2"
	"github.com/nxadm/tail"
	"github.com/spf13/cobra"

	"github.com/xuexiangjys/xui/internal/config"
)

const defaultTailLines = 1000

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View xui logs",
	Long:  `View the logs written by xui. The JSON log file is printed as human readable lines.`,
	Example: `
# Print the last 1000 lines
xui logs

# Print the last 50 lines and keep following the file
xui logs --tail 50 --follow
  `,
	RunE: func(cmd *cobra.Command, args []string) error {
		follow, _ := cmd.Flags().GetBool("follow")
		tailLines, _ := cmd.Flags().GetInt("tail")

		logger := log.NewWithOptions(cmd.OutOrStdout(), log.Options{
			Level:           log.DebugLevel,
			ReportTimestamp: true,
			TimeFormat:      time.DateTime,
		})

		logsFile := config.LogFile()
		if _, err := os.Stat(logsFile); os.IsNotExist(err) {
			logger.Warn("No logs found yet. Run xui at least once.", "path", logsFile)
			return nil
		}

		if follow {
			return followLogs(cmd.Context(), logger, logsFile, tailLines)
		}
		return showLogs(logger, logsFile, tailLines)
	},
}

func init() {
	logsCmd.Flags().BoolP("follow", "f", false, "Follow log output")
	logsCmd.Flags().IntP("tail", "t", defaultTailLines, "Show only the last N lines")
}

func followLogs(ctx context.Context, logger *log.Logger, logsFile string, tailLines int) error {
	if err := showLogs(logger, logsFile, tailLines); err != nil {
		return err
	}

	t, err := tail.TailFile(logsFile, tail.Config{
		Follow:   true,
		ReOpen:   true,
		Logger:   tail.DiscardingLogger,
		Location: &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd},
	})
	if err != nil {
		return fmt.Errorf("failed to tail log file: %v", err)
	}
	defer t.Cleanup()

	for {
		select {
		case line, ok := <-t.Lines:
			if !ok {
				return t.Err()
			}
			if line.Err != nil {
				continue
			}
			printLogLine(logger, line.Text)
		case <-ctx.Done():
			_ = t.Stop()
			return nil
		}
	}
}

func showLogs(logger *log.Logger, logsFile string, tailLines int) error {
	t, err := tail.TailFile(logsFile, tail.Config{
		Follow: false,
		ReOpen: false,
		Logger: tail.DiscardingLogger,
	})
	if err != nil {
		return fmt.Errorf("failed to read log file: %v", err)
	}
	defer t.Cleanup()

	var lines []string
	for line := range t.Lines {
		if line.Err != nil {
			continue
		}
		lines = append(lines, line.Text)
	}

	start := 0
	if tailLines > 0 && len(lines) > tailLines {
		start = len(lines) - tailLines
	}
	for _, line := range lines[start:] {
		printLogLine(logger, line)
	}
	return nil
}

// printLogLine re-emits one slog JSON record through logger. Lines that are
// not JSON are skipped.
func printLogLine(logger *log.Logger, lineText string) {
	var data map[string]any
	if err := json.Unmarshal([]byte(lineText), &data); err != nil {
		return
	}
	msg, _ := data["msg"].(string)
	level, _ := data["level"].(string)

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var keyvals []any
	for _, k := range keys {
		switch k {
		case "msg", "level", "time":
			continue
		case "source":
			source, ok := data[k].(map[string]any)
			if !ok {
				continue
			}
			line, _ := source["line"].(float64)
			keyvals = append(keyvals, "source", fmt.Sprintf("%s:%d", source["file"], int(line)))
		default:
			keyvals = append(keyvals, k, data[k])
		}
	}

	ts, _ := data["time"].(string)
	logger.SetTimeFunction(func(time.Time) time.Time {
		t, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return time.Now()
		}
		return t
	})

	switch level {
	case "DEBUG":
		logger.Debug(msg, keyvals...)
	case "WARN":
		logger.Warn(msg, keyvals...)
	case "ERROR":
		logger.Error(msg, keyvals...)
	default:
		logger.Info(msg, keyvals...)
	}
}
