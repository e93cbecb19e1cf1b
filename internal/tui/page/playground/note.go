package playground

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	kindNote = iota
	kindPinned
)

// Every pinnedEvery-th note is pinned and rendered with its own layout.
const pinnedEvery = 3

type Note struct {
	ID     uuid.UUID
	Title  string
	Body   string
	Pinned bool
}

func (n *Note) ShortID() string {
	return n.ID.String()[:8]
}

// noteFactory numbers the notes it creates.
type noteFactory struct {
	seq int
}

func (f *noteFactory) next() *Note {
	f.seq++
	return &Note{
		ID:     uuid.New(),
		Title:  fmt.Sprintf("Note %d", f.seq),
		Body:   fmt.Sprintf("Created as note number %d", f.seq),
		Pinned: f.seq%pinnedEvery == 0,
	}
}

func (f *noteFactory) batch(n int) []*Note {
	notes := make([]*Note, 0, n)
	for range n {
		notes = append(notes, f.next())
	}
	return notes
}
