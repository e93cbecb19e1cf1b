// Package metrics counts adapter notifications and item clicks.
package metrics

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/xuexiangjys/xui/pkg/adapter"
)

// Metrics collects usage counters for the list views of the application.
type Metrics struct {
	// Notification metrics
	Inserted atomic.Int64
	Removed  atomic.Int64
	Changed  atomic.Int64

	// Interaction metrics
	Clicks     atomic.Int64
	LongClicks atomic.Int64
	Errors     atomic.Int64

	customMetrics sync.Map // map[string]*atomic.Int64

	mu        sync.Mutex
	startTime time.Time
}

func NewMetrics() *Metrics {
	return &Metrics{
		startTime: time.Now(),
	}
}

func (m *Metrics) RecordClick() {
	m.Clicks.Add(1)
}

func (m *Metrics) RecordLongClick() {
	m.LongClicks.Add(1)
}

func (m *Metrics) RecordError() {
	m.Errors.Add(1)
}

// IncrementCustomMetric increments a named counter.
func (m *Metrics) IncrementCustomMetric(name string) {
	val, _ := m.customMetrics.LoadOrStore(name, &atomic.Int64{})
	val.(*atomic.Int64).Add(1)
}

// GetSnapshot returns a snapshot of current metrics.
func (m *Metrics) GetSnapshot() map[string]any {
	m.mu.Lock()
	uptime := time.Since(m.startTime)
	m.mu.Unlock()

	snapshot := map[string]any{
		"uptime_seconds": uptime.Seconds(),
		"inserted":       m.Inserted.Load(),
		"removed":        m.Removed.Load(),
		"changed":        m.Changed.Load(),
		"clicks":         m.Clicks.Load(),
		"long_clicks":    m.LongClicks.Load(),
		"errors":         m.Errors.Load(),
	}
	m.customMetrics.Range(func(key, value any) bool {
		snapshot[key.(string)] = value.(*atomic.Int64).Load()
		return true
	})
	return snapshot
}

// Summary renders the main counters on one line, for the status bar.
func (m *Metrics) Summary() string {
	return fmt.Sprintf(
		"+%d -%d ~%d clicks %d/%d",
		m.Inserted.Load(),
		m.Removed.Load(),
		m.Changed.Load(),
		m.Clicks.Load(),
		m.LongClicks.Load(),
	)
}

func (m *Metrics) Reset() {
	m.Inserted.Store(0)
	m.Removed.Store(0)
	m.Changed.Store(0)
	m.Clicks.Store(0)
	m.LongClicks.Store(0)
	m.Errors.Store(0)

	m.customMetrics.Range(func(key, _ any) bool {
		m.customMetrics.Delete(key)
		return true
	})

	m.mu.Lock()
	m.startTime = time.Now()
	m.mu.Unlock()
}

// Host returns a decorator that counts notifications before forwarding them
// to the wrapped host.
func (m *Metrics) Host() func(adapter.Host) adapter.Host {
	return func(next adapter.Host) adapter.Host {
		return &countingHost{next: next, metrics: m}
	}
}

type countingHost struct {
	next    adapter.Host
	metrics *Metrics
}

func (h *countingHost) NotifyItemInserted(position int) {
	h.metrics.Inserted.Add(1)
	h.next.NotifyItemInserted(position)
}

func (h *countingHost) NotifyItemRemoved(position int) {
	h.metrics.Removed.Add(1)
	h.next.NotifyItemRemoved(position)
}

func (h *countingHost) NotifyDataSetChanged() {
	h.metrics.Changed.Add(1)
	h.next.NotifyDataSetChanged()
}
