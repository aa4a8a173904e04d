package discovery

import (
	"strconv"

	"github.com/displayctl/ddc-go/pkg/display"
	"github.com/displayctl/ddc-go/pkg/transport"
)

// Query selects displays. Comparisons match whole strings.
type Query func(*display.Display) bool

// Any matches every display.
func Any() Query {
	return func(*display.Display) bool { return true }
}

// ByBackend matches displays reached through the given backend.
func ByBackend(id transport.BackendID) Query {
	return func(d *display.Display) bool {
		return d.Backend() == id
	}
}

// ByID matches the display with the given id.
func ByID(id string) Query {
	return func(d *display.Display) bool {
		return d.ID() == id
	}
}

// ByManufacturer matches the three-letter EDID manufacturer id.
func ByManufacturer(mfg string) Query {
	return func(d *display.Display) bool {
		id := d.Identity()
		return id != nil && id.ManufacturerID == mfg
	}
}

// ByModel matches the EDID model name.
func ByModel(model string) Query {
	return func(d *display.Display) bool {
		id := d.Identity()
		return id != nil && id.ModelName != "" && id.ModelName == model
	}
}

// BySerial matches the EDID serial string or the decimal numeric serial.
func BySerial(serial string) Query {
	return func(d *display.Display) bool {
		id := d.Identity()
		if id == nil || serial == "" {
			return false
		}
		if id.SerialString == serial {
			return true
		}
		return id.Serial != 0 && strconv.FormatUint(uint64(id.Serial), 10) == serial
	}
}

// And matches when every query matches. An empty And matches everything.
func And(qs ...Query) Query {
	return func(d *display.Display) bool {
		for _, q := range qs {
			if !q(d) {
				return false
			}
		}
		return true
	}
}

// Or matches when at least one query matches. An empty Or matches nothing.
func Or(qs ...Query) Query {
	return func(d *display.Display) bool {
		for _, q := range qs {
			if q(d) {
				return true
			}
		}
		return false
	}
}

// Filter returns the displays matching q, in order.
func Filter(displays []*display.Display, q Query) []*display.Display {
	var out []*display.Display
	for _, d := range displays {
		if q(d) {
			out = append(out, d)
		}
	}
	return out
}
