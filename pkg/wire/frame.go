package wire

import (
	"errors"
	"fmt"
)

// I2C addresses (7-bit).
const (
	AddrDDCCI uint16 = 0x37
	AddrEDID  uint16 = 0x50
)

// Frame address bytes.
const (
	HostAddress    byte = 0x51
	DisplayAddress byte = 0x6E
	replySeed      byte = 0x50
	lengthFlag     byte = 0x80
)

// MaxPayload is the largest payload a length byte can describe.
const MaxPayload = 0x7F

// Framing errors.
var (
	ErrChecksum        = errors.New("ddc/ci checksum mismatch")
	ErrShortReply      = errors.New("ddc/ci reply truncated")
	ErrMalformed       = errors.New("malformed ddc/ci reply")
	ErrNullMessage     = errors.New("ddc/ci null message")
	ErrUnsupportedCode = errors.New("vcp code not supported by display")
	ErrOffsetMismatch  = errors.New("fragment offset mismatch")
)

// EncodeRequest frames a request payload for writing to AddrDDCCI.
func EncodeRequest(payload []byte) ([]byte, error) {
	if len(payload) > MaxPayload {
		return nil, fmt.Errorf("payload too large: %d bytes", len(payload))
	}
	frame := make([]byte, 0, len(payload)+3)
	frame = append(frame, HostAddress, lengthFlag|byte(len(payload)))
	frame = append(frame, payload...)
	frame = append(frame, xor(DisplayAddress, frame))
	return frame, nil
}

// DecodeReply validates a reply frame and returns its payload. Trailing
// bytes beyond the declared length are ignored.
func DecodeReply(frame []byte) ([]byte, error) {
	if len(frame) < 3 {
		return nil, fmt.Errorf("%w: %d bytes", ErrShortReply, len(frame))
	}
	if frame[0] != DisplayAddress {
		return nil, fmt.Errorf("%w: source address 0x%02X", ErrMalformed, frame[0])
	}
	if frame[1]&lengthFlag == 0 {
		return nil, fmt.Errorf("%w: length byte 0x%02X", ErrMalformed, frame[1])
	}
	n := int(frame[1] &^ lengthFlag)
	if len(frame) < n+3 {
		return nil, fmt.Errorf("%w: want %d payload bytes, have %d", ErrShortReply, n, len(frame)-3)
	}
	if xor(replySeed, frame[:n+2]) != frame[n+2] {
		return nil, ErrChecksum
	}
	if n == 0 {
		return nil, ErrNullMessage
	}
	return frame[2 : n+2], nil
}

// EncodeReply frames a payload as a display would. Used by simulators and
// tests.
func EncodeReply(payload []byte) []byte {
	frame := make([]byte, 0, len(payload)+3)
	frame = append(frame, DisplayAddress, lengthFlag|byte(len(payload)))
	frame = append(frame, payload...)
	return append(frame, xor(replySeed, frame))
}

func xor(seed byte, data []byte) byte {
	sum := seed
	for _, b := range data {
		sum ^= b
	}
	return sum
}
