package catalog

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

type entrySource []Entry

func (s entrySource) String(i int) string {
	return s[i].Title + " " + s[i].Subtitle
}

func (s entrySource) Len() int {
	return len(s)
}

// Filter returns the entries matching query, best match first. An empty
// query returns every entry in order.
func Filter(entries []Entry, query string) []Entry {
	query = strings.TrimSpace(query)
	if query == "" {
		return append([]Entry{}, entries...)
	}
	matches := fuzzy.FindFrom(query, entrySource(entries))
	out := make([]Entry, 0, len(matches))
	for _, m := range matches {
		out = append(out, entries[m.Index])
	}
	return out
}
