// Package identity derives a stable display identity from EDID data.
//
// Two connections refer to the same physical display when their identities
// agree on manufacturer, product code and serial. When neither carries a
// serial the model name stands in for it; that match is weaker and can
// conflate identical monitors without serials. Identities built from an
// EDID with a bad checksum are low confidence and never match anything.
package identity

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/displayctl/ddc-go/pkg/edid"
)

// ErrNoEDID is returned when there is no EDID data to resolve.
var ErrNoEDID = errors.New("no edid data")

// Confidence grades how far an identity can be trusted for matching.
type Confidence uint8

const (
	// ConfidenceHigh identities come from a checksum-valid EDID.
	ConfidenceHigh Confidence = 0
	// ConfidenceLow identities come from a corrupt EDID.
	ConfidenceLow Confidence = 1
)

// String returns the confidence name.
func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "HIGH"
	case ConfidenceLow:
		return "LOW"
	default:
		return "UNKNOWN"
	}
}

// Parser decodes raw EDID bytes.
type Parser interface {
	Parse(raw []byte) (*edid.EDID, error)
}

// ParserFunc adapts a function to Parser.
type ParserFunc func(raw []byte) (*edid.EDID, error)

// Parse calls f(raw).
func (f ParserFunc) Parse(raw []byte) (*edid.EDID, error) {
	return f(raw)
}

// DefaultParser parses with the edid package.
var DefaultParser Parser = ParserFunc(edid.Parse)

// Error reports why an identity could not be resolved.
type Error struct {
	Err error
}

func (e *Error) Error() string {
	return "identity: " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Identity is the hardware identity of a display.
type Identity struct {
	ManufacturerID string
	ProductCode    uint16
	Serial         uint32
	SerialString   string
	ModelName      string
	Week           uint8
	Year           uint16
	Version        uint8
	Revision       uint8
	Confidence     Confidence

	// EDID is the raw data the identity was resolved from.
	EDID []byte
}

// Resolver turns raw EDID bytes into identities.
type Resolver struct {
	// Parser decodes EDID. Nil uses DefaultParser.
	Parser Parser
}

// Resolve builds an identity from raw EDID bytes.
func (r Resolver) Resolve(raw []byte) (*Identity, error) {
	if len(raw) == 0 {
		return nil, &Error{Err: ErrNoEDID}
	}
	p := r.Parser
	if p == nil {
		p = DefaultParser
	}
	e, err := p.Parse(raw)
	if err != nil {
		return nil, &Error{Err: err}
	}

	id := &Identity{
		ManufacturerID: e.ManufacturerID,
		ProductCode:    e.ProductCode,
		Serial:         e.Serial,
		SerialString:   e.SerialString,
		ModelName:      e.ModelName,
		Week:           e.Week,
		Year:           e.Year,
		Version:        e.Version,
		Revision:       e.Revision,
		EDID:           append([]byte(nil), raw...),
	}
	if !e.ChecksumValid {
		id.Confidence = ConfidenceLow
	}
	return id, nil
}

// Resolve builds an identity with the default parser.
func Resolve(raw []byte) (*Identity, error) {
	return Resolver{}.Resolve(raw)
}

// Clone returns a deep copy. A nil identity clones to nil.
func (id *Identity) Clone() *Identity {
	if id == nil {
		return nil
	}
	c := *id
	c.EDID = slices.Clone(id.EDID)
	return &c
}

// HasSerial reports whether a numeric or text serial is present.
func (id *Identity) HasSerial() bool {
	return id.Serial != 0 || id.SerialString != ""
}

// Mergeable reports whether the identity may be matched against others.
func (id *Identity) Mergeable() bool {
	return id != nil && id.Confidence == ConfidenceHigh
}

// Key is the lookup key of an identity in a discovery index.
type Key struct {
	ManufacturerID string
	ProductCode    uint16
	Serial         uint32
	SerialString   string
	ModelName      string
	Weak           bool
}

// Key returns the matching key. With a serial it is (manufacturer,
// product, serial); without one it is the weak (manufacturer, product,
// model name) key.
func (id *Identity) Key() Key {
	if id.HasSerial() {
		return Key{
			ManufacturerID: id.ManufacturerID,
			ProductCode:    id.ProductCode,
			Serial:         id.Serial,
			SerialString:   id.SerialString,
		}
	}
	return Key{
		ManufacturerID: id.ManufacturerID,
		ProductCode:    id.ProductCode,
		ModelName:      id.ModelName,
		Weak:           true,
	}
}

// Same reports whether a and b describe the same physical display. Nil or
// low-confidence identities are never the same as anything.
func Same(a, b *Identity) bool {
	if !a.Mergeable() || !b.Mergeable() {
		return false
	}
	return a.Key() == b.Key()
}

// UpdateFrom fills fields that are empty in id from other.
func (id *Identity) UpdateFrom(other *Identity) {
	if other == nil {
		return
	}
	if id.ManufacturerID == "" {
		id.ManufacturerID = other.ManufacturerID
	}
	if id.ProductCode == 0 {
		id.ProductCode = other.ProductCode
	}
	if id.Serial == 0 {
		id.Serial = other.Serial
	}
	if id.SerialString == "" {
		id.SerialString = other.SerialString
	}
	if id.ModelName == "" {
		id.ModelName = other.ModelName
	}
	if id.Week == 0 {
		id.Week = other.Week
	}
	if id.Year == 0 {
		id.Year = other.Year
	}
	if id.Version == 0 && id.Revision == 0 {
		id.Version, id.Revision = other.Version, other.Revision
	}
	if len(id.EDID) == 0 {
		id.EDID = other.EDID
	}
}

// String returns a short human-readable form such as "DEL U2720Q #CN0ABC".
func (id *Identity) String() string {
	if id == nil {
		return "unknown"
	}
	var b strings.Builder
	b.WriteString(id.ManufacturerID)
	if id.ModelName != "" {
		b.WriteString(" ")
		b.WriteString(id.ModelName)
	} else {
		fmt.Fprintf(&b, " 0x%04X", id.ProductCode)
	}
	switch {
	case id.SerialString != "":
		b.WriteString(" #")
		b.WriteString(id.SerialString)
	case id.Serial != 0:
		fmt.Fprintf(&b, " #%d", id.Serial)
	}
	if id.Confidence == ConfidenceLow {
		b.WriteString(" (low confidence)")
	}
	return b.String()
}
