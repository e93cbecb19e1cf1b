package adapter

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned by every positional accessor and mutator
// when the index falls outside the valid bounds at the time of the call.
var ErrIndexOutOfRange = errors.New("index out of range")

// IndexError describes a rejected positional operation.
type IndexError struct {
	Op    string
	Index int
	// Len is the item count at the time of the call.
	Len int
	// Inclusive is set for operations that accept Index == Len, e.g. insert.
	Inclusive bool
}

func (e *IndexError) Error() string {
	upper := ")"
	if e.Inclusive {
		upper = "]"
	}
	return fmt.Sprintf("adapter: %s: index %d out of range [0, %d%s", e.Op, e.Index, e.Len, upper)
}

func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}

func checkIndex(op string, index, length int) error {
	if index < 0 || index >= length {
		return &IndexError{Op: op, Index: index, Len: length}
	}
	return nil
}

func checkInsertIndex(op string, index, length int) error {
	if index < 0 || index > length {
		return &IndexError{Op: op, Index: index, Len: length, Inclusive: true}
	}
	return nil
}
