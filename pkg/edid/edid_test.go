package edid

import (
	"errors"
	"testing"
)

func TestBuildParse(t *testing.T) {
	raw := Build(Info{
		ManufacturerID: "DEL",
		ProductCode:    0xA0C4,
		Serial:         0x4C4C3230,
		Week:           12,
		Year:           2021,
		ModelName:      "DELL U2720Q",
		SerialString:   "CN0ABC123",
	})

	if len(raw) != BlockSize {
		t.Fatalf("Build length = %d, want %d", len(raw), BlockSize)
	}

	e, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if e.ManufacturerID != "DEL" {
		t.Errorf("ManufacturerID = %q, want %q", e.ManufacturerID, "DEL")
	}
	if e.ProductCode != 0xA0C4 {
		t.Errorf("ProductCode = 0x%04X, want 0xA0C4", e.ProductCode)
	}
	if e.Serial != 0x4C4C3230 {
		t.Errorf("Serial = 0x%08X, want 0x4C4C3230", e.Serial)
	}
	if e.Week != 12 || e.Year != 2021 {
		t.Errorf("manufactured week %d of %d, want week 12 of 2021", e.Week, e.Year)
	}
	if e.ModelName != "DELL U2720Q" {
		t.Errorf("ModelName = %q, want %q", e.ModelName, "DELL U2720Q")
	}
	if e.SerialString != "CN0ABC123" {
		t.Errorf("SerialString = %q, want %q", e.SerialString, "CN0ABC123")
	}
	if !e.ChecksumValid {
		t.Error("ChecksumValid = false, want true")
	}
	if !e.HasSerial() {
		t.Error("HasSerial = false, want true")
	}
}

func TestParseChecksumMismatch(t *testing.T) {
	raw := Build(Info{ManufacturerID: "GSM", ProductCode: 0x5B7F})
	raw[127]++

	e, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if e.ChecksumValid {
		t.Error("ChecksumValid = true, want false")
	}
	if e.ManufacturerID != "GSM" {
		t.Errorf("ManufacturerID = %q, want %q", e.ManufacturerID, "GSM")
	}
}

func TestParseTooShort(t *testing.T) {
	_, err := Parse(make([]byte, 64))
	if !errors.Is(err, ErrTooShort) {
		t.Errorf("Parse(64 bytes) error = %v, want ErrTooShort", err)
	}
}

func TestParseBadHeader(t *testing.T) {
	raw := Build(Info{ManufacturerID: "AOC"})
	raw[0] = 0x01

	_, err := Parse(raw)
	if !errors.Is(err, ErrBadHeader) {
		t.Errorf("Parse error = %v, want ErrBadHeader", err)
	}
}

func TestParseIgnoresExtensionBlocks(t *testing.T) {
	raw := Build(Info{ManufacturerID: "SAM", ProductCode: 0x0F00})
	raw = append(raw, make([]byte, BlockSize)...)

	e, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if e.ManufacturerID != "SAM" {
		t.Errorf("ManufacturerID = %q, want %q", e.ManufacturerID, "SAM")
	}
}

func TestParseNoSerial(t *testing.T) {
	e, err := Parse(Build(Info{ManufacturerID: "BNQ", ProductCode: 0x7F2C, ModelName: "BenQ GW2480"}))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if e.HasSerial() {
		t.Error("HasSerial = true, want false")
	}
}

func TestManufacturerEncoding(t *testing.T) {
	for _, id := range []string{"AAA", "ZZZ", "DEL", "ACR"} {
		if got := decodeManufacturer(encodeManufacturer(id)); got != id {
			t.Errorf("manufacturer round trip %q -> %q", id, got)
		}
	}
	if got := decodeManufacturer(0); got != "" {
		t.Errorf("decodeManufacturer(0) = %q, want empty", got)
	}
}

func TestBuildTruncatesLongText(t *testing.T) {
	e, err := Parse(Build(Info{ManufacturerID: "LEN", ModelName: "ThinkVision P27h-20 Extra"}))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if e.ModelName != "ThinkVision P" {
		t.Errorf("ModelName = %q, want %q", e.ModelName, "ThinkVision P")
	}
}
