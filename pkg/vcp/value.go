package vcp

import (
	"encoding/binary"
	"errors"
	"fmt"
	"slices"
)

// Value errors.
var (
	// ErrValueOutOfRange indicates a continuous value whose current level
	// exceeds its maximum.
	ErrValueOutOfRange = errors.New("vcp value out of range")

	// ErrMalformedReply indicates a reply whose length does not match any
	// value layout.
	ErrMalformedReply = errors.New("malformed vcp reply")

	// ErrIncompleteTable indicates a table read that completed before any
	// data was received.
	ErrIncompleteTable = errors.New("incomplete table read")

	// ErrTableOffset indicates a table chunk that does not continue the
	// data received so far.
	ErrTableOffset = errors.New("unexpected table chunk offset")

	// ErrTableTooLarge indicates a table that grew past MaxTableLength.
	ErrTableTooLarge = errors.New("table too large")
)

// Value is a VCP feature value. Exactly one representation is meaningful,
// selected by Kind.
type Value struct {
	Kind Kind

	// Current and Maximum are set for KindContinuous.
	Current uint16
	Maximum uint16

	// Byte is set for KindNonContinuous.
	Byte uint8

	// Table is set for KindTable.
	Table []byte
}

// Continuous returns a continuous value.
func Continuous(current, maximum uint16) Value {
	return Value{Kind: KindContinuous, Current: current, Maximum: maximum}
}

// Level returns a continuous value for writing when the maximum is not
// known. The maximum is set to the widest representable range.
func Level(current uint16) Value {
	return Continuous(current, 0xFFFF)
}

// NonContinuous returns a non-continuous value.
func NonContinuous(b uint8) Value {
	return Value{Kind: KindNonContinuous, Byte: b}
}

// Table returns a table value holding a copy of data.
func Table(data []byte) Value {
	return Value{Kind: KindTable, Table: slices.Clone(data)}
}

// String formats the value for display.
func (v Value) String() string {
	switch v.Kind {
	case KindContinuous:
		return fmt.Sprintf("%d/%d", v.Current, v.Maximum)
	case KindNonContinuous:
		return fmt.Sprintf("0x%02X", v.Byte)
	case KindTable:
		return fmt.Sprintf("table[%d]", len(v.Table))
	default:
		return "invalid"
	}
}

// Equal reports whether two values have the same kind and content.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindContinuous:
		return v.Current == other.Current && v.Maximum == other.Maximum
	case KindNonContinuous:
		return v.Byte == other.Byte
	case KindTable:
		return slices.Equal(v.Table, other.Table)
	}
	return false
}

// Encode serializes a value into the byte layout expected by transport
// backends for a write.
func Encode(code FeatureCode, v Value) ([]byte, error) {
	switch v.Kind {
	case KindContinuous:
		if v.Current > v.Maximum {
			return nil, fmt.Errorf("%w: %s current %d exceeds maximum %d",
				ErrValueOutOfRange, code, v.Current, v.Maximum)
		}
		buf := make([]byte, 4)
		binary.BigEndian.PutUint16(buf[0:2], v.Maximum)
		binary.BigEndian.PutUint16(buf[2:4], v.Current)
		return buf, nil
	case KindNonContinuous:
		return []byte{v.Byte}, nil
	case KindTable:
		return slices.Clone(v.Table), nil
	default:
		return nil, fmt.Errorf("vcp: cannot encode %s: unknown kind %d", code, v.Kind)
	}
}

// Validate checks a value against the discrete values a monitor advertises
// for a feature. An empty allowed list accepts everything.
func Validate(code FeatureCode, v Value, allowed []byte) error {
	if len(allowed) == 0 || v.Kind != KindNonContinuous {
		return nil
	}
	if slices.Contains(allowed, v.Byte) {
		return nil
	}
	return fmt.Errorf("%w: %s value 0x%02X not in advertised set", ErrValueOutOfRange, code, v.Byte)
}
