package vcp

import (
	"fmt"
	"slices"
)

// MaxTableLength bounds a table read; offsets on the wire are 16-bit.
const MaxTableLength = 0xFFFF

// Chunk is one fragment of a table read.
type Chunk struct {
	// Offset of Data within the table.
	Offset uint16

	// Data is the fragment payload.
	Data []byte

	// Last is set when the backend reports the table complete.
	Last bool
}

// TableAssembler accumulates table chunks in order.
type TableAssembler struct {
	data []byte
	done bool
}

// Add appends a chunk. It returns true once the table is complete.
func (a *TableAssembler) Add(c Chunk) (bool, error) {
	if a.done {
		return true, nil
	}
	if int(c.Offset) != len(a.data) {
		return false, fmt.Errorf("%w: got %d, want %d", ErrTableOffset, c.Offset, len(a.data))
	}
	if len(a.data)+len(c.Data) > MaxTableLength {
		return false, ErrTableTooLarge
	}
	a.data = append(a.data, c.Data...)
	if c.Last {
		if len(a.data) == 0 {
			return false, ErrIncompleteTable
		}
		a.done = true
	}
	return a.done, nil
}

// Next returns the offset of the next chunk to request.
func (a *TableAssembler) Next() uint16 {
	return uint16(len(a.data))
}

// Done reports whether the table is complete.
func (a *TableAssembler) Done() bool {
	return a.done
}

// Value returns the assembled table. It fails with ErrIncompleteTable if the
// table has not completed.
func (a *TableAssembler) Value() (Value, error) {
	if !a.done {
		return Value{}, ErrIncompleteTable
	}
	return Value{Kind: KindTable, Table: slices.Clone(a.data)}, nil
}
