package wire

import (
	"encoding/binary"
	"fmt"
)

// Opcode is a DDC/CI command byte.
type Opcode byte

const (
	OpGetVCP              Opcode = 0x01
	OpGetVCPReply         Opcode = 0x02
	OpSetVCP              Opcode = 0x03
	OpTimingRequest       Opcode = 0x07
	OpSaveSettings        Opcode = 0x0C
	OpTimingReply         Opcode = 0x4E
	OpTableReadRequest    Opcode = 0xE2
	OpCapabilitiesReply   Opcode = 0xE3
	OpTableReadReply      Opcode = 0xE4
	OpTableWrite          Opcode = 0xE7
	OpCapabilitiesRequest Opcode = 0xF3
)

// String returns the opcode name.
func (o Opcode) String() string {
	switch o {
	case OpGetVCP:
		return "GET_VCP"
	case OpGetVCPReply:
		return "GET_VCP_REPLY"
	case OpSetVCP:
		return "SET_VCP"
	case OpTimingRequest:
		return "TIMING_REQUEST"
	case OpSaveSettings:
		return "SAVE_SETTINGS"
	case OpTimingReply:
		return "TIMING_REPLY"
	case OpTableReadRequest:
		return "TABLE_READ"
	case OpCapabilitiesReply:
		return "CAPABILITIES_REPLY"
	case OpTableReadReply:
		return "TABLE_READ_REPLY"
	case OpTableWrite:
		return "TABLE_WRITE"
	case OpCapabilitiesRequest:
		return "CAPABILITIES"
	default:
		return fmt.Sprintf("0x%02X", byte(o))
	}
}

// MaxFragment is the largest data fragment in capability and table replies.
const MaxFragment = 32

// Reply buffer sizes for reads.
const (
	GetVCPReplySize   = 11
	TimingReplySize   = 9
	FragmentReplySize = MaxFragment + 6
)

// GetVCP returns the payload of a Get VCP Feature request.
func GetVCP(code byte) []byte {
	return []byte{byte(OpGetVCP), code}
}

// ParseGetVCPReply checks a Get VCP Feature reply payload for code and
// returns the four value bytes: maximum and current, big-endian.
func ParseGetVCPReply(code byte, payload []byte) ([]byte, error) {
	if len(payload) != 8 || payload[0] != byte(OpGetVCPReply) {
		return nil, fmt.Errorf("%w: get vcp reply % X", ErrMalformed, payload)
	}
	if payload[1] != 0 {
		return nil, fmt.Errorf("%w: 0x%02X", ErrUnsupportedCode, code)
	}
	if payload[2] != code {
		return nil, fmt.Errorf("%w: reply for 0x%02X, want 0x%02X", ErrMalformed, payload[2], code)
	}
	return payload[4:8], nil
}

// GetVCPReply builds a Get VCP Feature reply payload. Used by simulators
// and tests.
func GetVCPReply(code byte, supported bool, maximum, current uint16) []byte {
	p := []byte{byte(OpGetVCPReply), 0, code, 0, 0, 0, 0, 0}
	if !supported {
		p[1] = 1
	}
	binary.BigEndian.PutUint16(p[4:6], maximum)
	binary.BigEndian.PutUint16(p[6:8], current)
	return p
}

// SetVCP returns the payload of a Set VCP Feature request.
func SetVCP(code byte, value uint16) []byte {
	return []byte{byte(OpSetVCP), code, byte(value >> 8), byte(value)}
}

// SetValue extracts the 16-bit value to write from an encoded VCP value:
// the current field of a four-byte continuous encoding, or a single
// non-continuous byte.
func SetValue(encoded []byte) (uint16, error) {
	switch len(encoded) {
	case 1:
		return uint16(encoded[0]), nil
	case 2:
		return binary.BigEndian.Uint16(encoded), nil
	case 4:
		return binary.BigEndian.Uint16(encoded[2:4]), nil
	default:
		return 0, fmt.Errorf("cannot write %d-byte value with set vcp", len(encoded))
	}
}

// SaveSettings returns the payload of a Save Current Settings request.
func SaveSettings() []byte {
	return []byte{byte(OpSaveSettings)}
}

// TimingRequest returns the payload of a Get Timing Report request.
func TimingRequest() []byte {
	return []byte{byte(OpTimingRequest)}
}

// ParseTimingReply checks a timing report payload and returns the status
// byte and the horizontal and vertical frequency fields.
func ParseTimingReply(payload []byte) (status byte, horizontal, vertical uint16, err error) {
	if len(payload) != 6 || payload[0] != byte(OpTimingReply) {
		return 0, 0, 0, fmt.Errorf("%w: timing reply % X", ErrMalformed, payload)
	}
	return payload[1], binary.BigEndian.Uint16(payload[2:4]), binary.BigEndian.Uint16(payload[4:6]), nil
}

// TimingReply builds a timing report payload. Used by simulators and tests.
func TimingReply(status byte, horizontal, vertical uint16) []byte {
	p := []byte{byte(OpTimingReply), status, 0, 0, 0, 0}
	binary.BigEndian.PutUint16(p[2:4], horizontal)
	binary.BigEndian.PutUint16(p[4:6], vertical)
	return p
}

// CapabilitiesRequest returns the payload requesting the capability
// fragment at offset.
func CapabilitiesRequest(offset uint16) []byte {
	return []byte{byte(OpCapabilitiesRequest), byte(offset >> 8), byte(offset)}
}

// TableRead returns the payload requesting the table fragment at offset.
func TableRead(code byte, offset uint16) []byte {
	return []byte{byte(OpTableReadRequest), code, byte(offset >> 8), byte(offset)}
}

// TableWrite returns the payload writing data at offset. Data longer than
// MaxFragment must be split by the caller.
func TableWrite(code byte, offset uint16, data []byte) ([]byte, error) {
	if len(data) > MaxFragment {
		return nil, fmt.Errorf("table fragment too large: %d bytes", len(data))
	}
	p := []byte{byte(OpTableWrite), code, byte(offset >> 8), byte(offset)}
	return append(p, data...), nil
}

// ParseFragment checks a capability or table fragment reply and returns its
// data. An empty fragment marks the end of the stream.
func ParseFragment(op Opcode, offset uint16, payload []byte) ([]byte, error) {
	if len(payload) < 3 || payload[0] != byte(op) {
		return nil, fmt.Errorf("%w: %s fragment % X", ErrMalformed, op, payload)
	}
	got := binary.BigEndian.Uint16(payload[1:3])
	if got != offset {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrOffsetMismatch, got, offset)
	}
	return payload[3:], nil
}

// Fragment builds a capability or table fragment reply payload. Used by
// simulators and tests.
func Fragment(op Opcode, offset uint16, data []byte) []byte {
	p := []byte{byte(op), byte(offset >> 8), byte(offset)}
	return append(p, data...)
}
