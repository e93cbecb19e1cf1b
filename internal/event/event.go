// Package event sends opt-in usage events to PostHog. Nothing is sent unless
// [Init] is called with an API key.
package event

import (
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"runtime"

	"github.com/posthog/posthog-go"

	"github.com/xuexiangjys/xui/internal/version"
)

const defaultEndpoint = "https://us.i.posthog.com"

var (
	client posthog.Client

	baseProps = posthog.NewProperties().
			Set("GOOS", runtime.GOOS).
			Set("GOARCH", runtime.GOARCH).
			Set("TERM", os.Getenv("TERM")).
			Set("Version", version.Version).
			Set("GoVersion", runtime.Version())
)

// Enabled reports whether the environment allows sending events at all.
func Enabled() bool {
	for _, name := range []string{"DO_NOT_TRACK", "XUI_DISABLE_METRICS"} {
		if v, ok := os.LookupEnv(name); ok && v != "" && v != "0" && v != "false" {
			return false
		}
	}
	return true
}

// Init creates the PostHog client. An empty key leaves telemetry off.
func Init(key, endpoint string) {
	if key == "" || !Enabled() {
		return
	}
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	c, err := posthog.NewWithConfig(key, posthog.Config{
		Endpoint: endpoint,
		Logger:   logger{},
	})
	if err != nil {
		slog.Error("Failed to initialize PostHog client", "error", err)
		return
	}
	client = c
	distinctID = getDistinctID()
}

func send(event string, props ...any) {
	if client == nil {
		return
	}
	err := client.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: pairsToProps(props...).Merge(baseProps),
	})
	if err != nil {
		slog.Error("Failed to enqueue PostHog event", "event", event, "error", err)
	}
}

// Error sends an exception event with the error type and message.
func Error(err any, props ...any) {
	if client == nil || err == nil {
		return
	}
	props = append(
		[]any{
			"$exception_list",
			[]map[string]string{
				{"type": reflect.TypeOf(err).String(), "value": fmt.Sprintf("%v", err)},
			},
		},
		props...,
	)
	send("$exception", props...)
}

func Flush() {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		slog.Error("Failed to flush PostHog events", "error", err)
	}
	client = nil
}

func pairsToProps(props ...any) posthog.Properties {
	p := posthog.NewProperties()
	if len(props)%2 != 0 {
		slog.Error("Event properties must be provided as key-value pairs", "props", props)
		return p
	}
	for i := 0; i < len(props); i += 2 {
		key, ok := props[i].(string)
		if !ok {
			continue
		}
		p = p.Set(key, props[i+1])
	}
	return p
}

var _ posthog.Logger = logger{}

type logger struct{}

func (logger) Debugf(format string, args ...any) { slog.Debug(fmt.Sprintf(format, args...)) }
func (logger) Logf(format string, args ...any)   { slog.Info(fmt.Sprintf(format, args...)) }
func (logger) Warnf(format string, args ...any)  { slog.Warn(fmt.Sprintf(format, args...)) }
func (logger) Errorf(format string, args ...any) { slog.Error(fmt.Sprintf(format, args...)) }
