// Package log installs the process-wide slog logger.
package log

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

var initOnce sync.Once

// Setup sends the default slog logger to a rotating JSON log file.
func Setup(logFile string, debug bool) {
	initOnce.Do(func() {
		logRotator := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 0,
			MaxAge:     30, // days
			Compress:   false,
		}

		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		}

		logger := slog.NewJSONHandler(logRotator, &slog.HandlerOptions{
			Level:     level,
			AddSource: true,
		})

		slog.SetDefault(slog.New(logger))
	})
}

// RecoverPanic logs a recovered panic, writes the stack to a file in the
// working directory and runs cleanup. Use it deferred at the top of
// goroutines.
func RecoverPanic(name string, cleanup func()) {
	r := recover()
	if r == nil {
		return
	}

	slog.Error("Panic recovered", "name", name, "panic", r)

	timestamp := time.Now().Format("20060102-150405")
	filename := fmt.Sprintf("xui-panic-%s-%s.log", name, timestamp)
	file, err := os.Create(filename)
	if err == nil {
		defer file.Close()
		fmt.Fprintf(file, "Panic in %s: %v\n\n", name, r)
		fmt.Fprintf(file, "Time: %s\n\n", time.Now().Format(time.RFC3339))
		fmt.Fprintf(file, "Stack Trace:\n%s\n", debug.Stack())
	}

	if cleanup != nil {
		cleanup()
	}
}
