package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xuexiangjys/xui/pkg/adapter"
)

type nopHost struct{ calls int }

func (n *nopHost) NotifyItemInserted(int) { n.calls++ }
func (n *nopHost) NotifyItemRemoved(int)  { n.calls++ }
func (n *nopHost) NotifyDataSetChanged()  { n.calls++ }

func TestMetrics(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	m.RecordClick()
	m.RecordClick()
	m.RecordLongClick()
	m.RecordError()
	m.IncrementCustomMetric("pages_switched")
	m.IncrementCustomMetric("pages_switched")

	snapshot := m.GetSnapshot()
	require.Equal(t, int64(2), snapshot["clicks"])
	require.Equal(t, int64(1), snapshot["long_clicks"])
	require.Equal(t, int64(1), snapshot["errors"])
	require.Equal(t, int64(2), snapshot["pages_switched"])
	require.Contains(t, snapshot, "uptime_seconds")

	m.Reset()
	snapshot = m.GetSnapshot()
	require.Equal(t, int64(0), snapshot["clicks"])
	require.NotContains(t, snapshot, "pages_switched")
}

func TestHostCountsNotifications(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	next := &nopHost{}
	a := adapter.New(adapter.Config[string]{}, []string{"a"})
	a.Attach(m.Host()(next))

	require.NoError(t, a.Insert(0, "b"))
	require.NoError(t, a.Delete(1))
	a.AppendOne("c").ReplaceAll([]string{"x"})

	require.Equal(t, int64(1), m.Inserted.Load())
	require.Equal(t, int64(1), m.Removed.Load())
	require.Equal(t, int64(2), m.Changed.Load())
	require.Equal(t, 4, next.calls)
	require.Equal(t, "+1 -1 ~2 clicks 0/0", m.Summary())
}
