package edid

import (
	"encoding/binary"
)

// Info describes the identifying fields written by Build.
type Info struct {
	ManufacturerID string
	ProductCode    uint16
	Serial         uint32
	Week           uint8
	Year           uint16
	ModelName      string
	SerialString   string
}

// Build produces a 128-byte EDID 1.4 base block carrying the given identity
// and a valid checksum. Text fields longer than 13 bytes are truncated.
func Build(info Info) []byte {
	b := make([]byte, BlockSize)
	copy(b[0:8], header)
	binary.BigEndian.PutUint16(b[8:10], encodeManufacturer(info.ManufacturerID))
	binary.LittleEndian.PutUint16(b[10:12], info.ProductCode)
	binary.LittleEndian.PutUint32(b[12:16], info.Serial)
	b[16] = info.Week
	if info.Year >= 1990 {
		b[17] = byte(info.Year - 1990)
	}
	b[18] = 1
	b[19] = 4

	descriptors := 0
	put := func(tag byte, text string) {
		if text == "" || descriptors == 4 {
			return
		}
		d := b[54+18*descriptors : 54+18*(descriptors+1)]
		d[3] = tag
		encodeText(d[5:18], text)
		descriptors++
	}
	put(tagName, info.ModelName)
	put(tagSerial, info.SerialString)
	for ; descriptors < 4; descriptors++ {
		// Dummy descriptor.
		b[54+18*descriptors+3] = 0x10
	}

	b[127] = -checksum(b[:127])
	return b
}

func encodeText(dst []byte, text string) {
	n := copy(dst, text)
	if n < len(dst) {
		dst[n] = 0x0A
		for i := n + 1; i < len(dst); i++ {
			dst[i] = 0x20
		}
	}
}
