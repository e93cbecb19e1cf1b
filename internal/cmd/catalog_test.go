package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xuexiangjys/xui/internal/catalog"
)

func TestPrintCatalog(t *testing.T) {
	var b bytes.Buffer
	err := printCatalog(&b, []catalog.Entry{
		{Group: "basic", Title: "Button", Subtitle: "Pressable"},
		{Group: "layout", Title: "Divider"},
	})
	require.NoError(t, err)
	require.Equal(t, "basic\tButton\tPressable\nlayout\tDivider\t\n", b.String())
}

func TestCatalogTable_MarksRecent(t *testing.T) {
	entries := []catalog.Entry{
		{Group: "basic", Title: "Button", Subtitle: "Pressable"},
		{Group: "layout", Title: "Divider"},
	}
	out := catalogTable(entries, []string{"Divider"}).String()
	require.Contains(t, out, "Button")
	require.Contains(t, out, "Divider ◆")
	require.Contains(t, out, "Layout")
}
