// Package edid parses the EDID base block that identifies a display.
//
// Only the fields needed to tell displays apart are decoded: manufacturer,
// product code, serial number, manufacture date and the text descriptors.
// Extension blocks are counted but not interpreted.
package edid

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

// BlockSize is the size of the EDID base block and of each extension.
const BlockSize = 128

// Parse errors.
var (
	ErrTooShort  = errors.New("edid: data shorter than base block")
	ErrBadHeader = errors.New("edid: invalid header")
)

var header = []byte{0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x00}

// Descriptor tags for text descriptors.
const (
	tagSerial = 0xFF
	tagText   = 0xFE
	tagName   = 0xFC
)

// EDID holds the identifying fields of an EDID base block.
type EDID struct {
	// ManufacturerID is the three-letter PNP vendor id.
	ManufacturerID string

	// ProductCode is the vendor-assigned product code.
	ProductCode uint16

	// Serial is the numeric serial number. Zero means absent.
	Serial uint32

	// Week and Year of manufacture. Week is zero when unspecified.
	Week uint8
	Year uint16

	// Version and Revision of the EDID structure.
	Version  uint8
	Revision uint8

	// ModelName is the monitor name descriptor.
	ModelName string

	// SerialString is the serial number descriptor.
	SerialString string

	// Text holds any unspecified text descriptors.
	Text []string

	// Extensions is the number of extension blocks that follow.
	Extensions uint8

	// ChecksumValid is false when the base block checksum does not add up.
	ChecksumValid bool
}

// Parse decodes an EDID base block. A checksum mismatch is reported through
// ChecksumValid rather than as an error.
func Parse(data []byte) (*EDID, error) {
	if len(data) < BlockSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooShort, len(data))
	}
	block := data[:BlockSize]
	if !bytes.Equal(block[0:8], header) {
		return nil, ErrBadHeader
	}

	e := &EDID{
		ManufacturerID: decodeManufacturer(binary.BigEndian.Uint16(block[8:10])),
		ProductCode:    binary.LittleEndian.Uint16(block[10:12]),
		Serial:         binary.LittleEndian.Uint32(block[12:16]),
		Week:           block[16],
		Year:           1990 + uint16(block[17]),
		Version:        block[18],
		Revision:       block[19],
		Extensions:     block[126],
		ChecksumValid:  checksum(block) == 0,
	}

	for off := 54; off+18 <= 126; off += 18 {
		d := block[off : off+18]
		// Display descriptors start with a zero pixel clock.
		if d[0] != 0 || d[1] != 0 || d[2] != 0 {
			continue
		}
		switch d[3] {
		case tagName:
			e.ModelName = decodeText(d[5:18])
		case tagSerial:
			e.SerialString = decodeText(d[5:18])
		case tagText:
			e.Text = append(e.Text, decodeText(d[5:18]))
		}
	}
	return e, nil
}

// HasSerial reports whether the EDID carries a numeric or text serial.
func (e *EDID) HasSerial() bool {
	return e.Serial != 0 || e.SerialString != ""
}

func checksum(block []byte) byte {
	var sum byte
	for _, b := range block {
		sum += b
	}
	return sum
}

// decodeManufacturer unpacks three 5-bit letters, 'A' encoded as 1.
func decodeManufacturer(v uint16) string {
	letters := []byte{
		byte((v>>10)&0x1F) + 'A' - 1,
		byte((v>>5)&0x1F) + 'A' - 1,
		byte(v&0x1F) + 'A' - 1,
	}
	for _, c := range letters {
		if c < 'A' || c > 'Z' {
			return ""
		}
	}
	return string(letters)
}

func encodeManufacturer(id string) uint16 {
	if len(id) != 3 {
		return 0
	}
	var v uint16
	for i := 0; i < 3; i++ {
		c := id[i]
		if c < 'A' || c > 'Z' {
			return 0
		}
		v = v<<5 | uint16(c-'A'+1)
	}
	return v
}

func decodeText(b []byte) string {
	if i := bytes.IndexByte(b, 0x0A); i >= 0 {
		b = b[:i]
	}
	return strings.TrimRight(string(b), " \x00")
}
