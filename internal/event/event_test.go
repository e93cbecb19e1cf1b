package event

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnabled(t *testing.T) {
	for _, tt := range []struct {
		name  string
		env   map[string]string
		wants bool
	}{
		{"default", nil, true},
		{"do not track", map[string]string{"DO_NOT_TRACK": "1"}, false},
		{"disabled explicitly", map[string]string{"XUI_DISABLE_METRICS": "true"}, false},
		{"false value", map[string]string{"DO_NOT_TRACK": "0"}, true},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DO_NOT_TRACK", "")
			t.Setenv("XUI_DISABLE_METRICS", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			require.Equal(t, tt.wants, Enabled())
		})
	}
}

func TestInitWithoutKeySendsNothing(t *testing.T) {
	Init("", "")
	require.Nil(t, client)

	// Must not panic without a client.
	AppInitialized()
	ComponentOpened("Button")
	Error(nil)
	AppExited()
}

func TestPairsToProps(t *testing.T) {
	t.Parallel()

	props := pairsToProps("page", "catalog", "count", 3)
	require.Equal(t, "catalog", props["page"])
	require.Equal(t, 3, props["count"])

	require.Empty(t, pairsToProps("odd"))
}

func TestHashString(t *testing.T) {
	t.Parallel()

	require.Equal(t, hashString("00:11:22:33:44:55"), hashString("00:11:22:33:44:55"))
	require.NotEqual(t, hashString("a"), hashString("b"))
	require.Len(t, hashString("a"), 64)
}
