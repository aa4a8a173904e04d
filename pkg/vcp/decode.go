package vcp

import (
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
)

// RangePolicy decides how a continuous reply whose current level exceeds its
// maximum is handled.
type RangePolicy uint8

const (
	// RangeClamp lowers current to maximum and logs a warning.
	RangeClamp RangePolicy = 0
	// RangeStrict rejects the reply with ErrValueOutOfRange.
	RangeStrict RangePolicy = 1
)

// String returns the policy name.
func (p RangePolicy) String() string {
	switch p {
	case RangeClamp:
		return "clamp"
	case RangeStrict:
		return "strict"
	default:
		return "unknown"
	}
}

// ParseRangePolicy parses "clamp" or "strict". An empty string selects
// RangeClamp.
func ParseRangePolicy(s string) (RangePolicy, error) {
	switch s {
	case "", "clamp":
		return RangeClamp, nil
	case "strict":
		return RangeStrict, nil
	default:
		return 0, fmt.Errorf("invalid range policy %q", s)
	}
}

// Decoder converts raw get-VCP replies into Values.
type Decoder struct {
	// Policy selects clamping or rejection of out-of-range replies.
	Policy RangePolicy

	// Logger receives clamp warnings. Nil disables logging.
	Logger *slog.Logger

	// Kinds overrides the built-in kind of individual features, typically
	// from a capability descriptor.
	Kinds map[FeatureCode]Kind
}

// kindOf resolves a feature kind, preferring overrides.
func (d *Decoder) kindOf(code FeatureCode) Kind {
	if k, ok := d.Kinds[code]; ok {
		return k
	}
	return KindOf(code)
}

// Decode interprets a raw reply for the given feature.
//
// A single byte is a non-continuous value. Four bytes hold maximum and
// current; for non-continuous features the low byte of current is the value.
// Any other length fails with ErrMalformedReply.
func (d *Decoder) Decode(code FeatureCode, reply []byte) (Value, error) {
	switch len(reply) {
	case 1:
		return NonContinuous(reply[0]), nil
	case 4:
	default:
		return Value{}, fmt.Errorf("%w: %s reply has %d bytes", ErrMalformedReply, code, len(reply))
	}

	if d.kindOf(code) == KindNonContinuous {
		return NonContinuous(reply[3]), nil
	}

	maximum := binary.BigEndian.Uint16(reply[0:2])
	current := binary.BigEndian.Uint16(reply[2:4])
	if current > maximum {
		if d.Policy == RangeStrict {
			return Value{}, fmt.Errorf("%w: %s current %d exceeds maximum %d",
				ErrValueOutOfRange, code, current, maximum)
		}
		if d.Logger != nil {
			d.Logger.LogAttrs(context.Background(), slog.LevelWarn, "clamping out-of-range vcp value",
				slog.String("feature", code.String()),
				slog.Int("current", int(current)),
				slog.Int("maximum", int(maximum)),
			)
		}
		current = maximum
	}
	return Continuous(current, maximum), nil
}

// Decode interprets a reply with a default clamping decoder.
func Decode(code FeatureCode, reply []byte) (Value, error) {
	var d Decoder
	return d.Decode(code, reply)
}
