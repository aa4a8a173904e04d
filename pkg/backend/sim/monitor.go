package sim

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/displayctl/ddc-go/pkg/edid"
	"github.com/displayctl/ddc-go/pkg/transport"
	"github.com/displayctl/ddc-go/pkg/vcp"
	"github.com/displayctl/ddc-go/pkg/version"
)

// Feature is one simulated VCP control.
type Feature struct {
	// Value is the current value. Its kind decides the reply layout.
	Value vcp.Value

	// Values are advertised in the generated capability string.
	Values []byte

	// ReadOnly rejects writes as unsupported.
	ReadOnly bool

	// Hidden features work but are left out of the capability string.
	Hidden bool
}

// Faults injects failures into a monitor's exchanges.
type Faults struct {
	// Transient fails the next N exchanges with a timeout.
	Transient int

	// Garbled returns the next N VCP replies truncated.
	Garbled int

	// Gone fails every exchange as if the display was unplugged.
	Gone bool

	// Unsupported features are rejected by the display.
	Unsupported []vcp.FeatureCode

	// EDIDError makes EDID reads fail.
	EDIDError bool

	// NoTiming rejects timing report requests as unsupported.
	NoTiming bool
}

// Calls counts exchanges made against a monitor.
type Calls struct {
	EDID         int
	GetVCP       int
	SetVCP       int
	Capabilities int
	TableRead    int
	TableWrite   int
	Save         int
	Timing       int
	Close        int
}

// Monitor is a simulated display. It is safe for concurrent use.
type Monitor struct {
	// ID is used as the connection id.
	ID string

	mu           sync.Mutex
	edid         []byte
	model        string
	features     map[vcp.FeatureCode]*Feature
	tables       map[vcp.FeatureCode][]byte
	capabilities string
	mccs         version.Version
	timing       transport.Timing
	faults       Faults
	calls        Calls
	saved        map[vcp.FeatureCode]vcp.Value
}

// DefaultTiming is a 2560x1440 signal at 60Hz with positive sync.
var DefaultTiming = transport.Timing{
	Status:     transport.TimingPositiveHSync | transport.TimingPositiveVSync,
	Horizontal: 8880,
	Vertical:   6000,
}

// NewMonitor returns a monitor with a valid EDID built from info and a
// typical set of features: luminance, contrast, input source, power mode,
// the MCCS version and a small lookup table.
func NewMonitor(id string, info edid.Info) *Monitor {
	m := &Monitor{
		ID:       id,
		edid:     edid.Build(info),
		model:    info.ModelName,
		features: make(map[vcp.FeatureCode]*Feature),
		tables:   make(map[vcp.FeatureCode][]byte),
		mccs:     version.V22,
		timing:   DefaultTiming,
	}
	m.features[vcp.Luminance] = &Feature{Value: vcp.Continuous(50, 100)}
	m.features[vcp.Contrast] = &Feature{Value: vcp.Continuous(75, 100)}
	m.features[vcp.InputSource] = &Feature{Value: vcp.NonContinuous(0x0F), Values: []byte{0x0F, 0x11, 0x12}}
	m.features[vcp.PowerMode] = &Feature{Value: vcp.NonContinuous(vcp.PowerOn), Values: []byte{vcp.PowerOn, vcp.PowerStandby, vcp.PowerOff}}
	m.features[vcp.VersionCode] = &Feature{Value: versionValue(m.mccs), ReadOnly: true, Hidden: true}
	m.tables[vcp.LUTTable] = []byte{0x00, 0x10, 0x20, 0x30, 0x40, 0x50, 0x60, 0x70}
	return m
}

// SetMCCSVersion changes the version reported by VCP 0xDF and the
// capability string.
func (m *Monitor) SetMCCSVersion(v version.Version) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mccs = v
	if f, ok := m.features[vcp.VersionCode]; ok {
		f.Value = versionValue(v)
	}
}

func versionValue(v version.Version) vcp.Value {
	return vcp.Continuous(uint16(v.Major)<<8|uint16(v.Minor), 0xFFFF)
}

// SetTiming changes the timing report.
func (m *Monitor) SetTiming(t transport.Timing) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timing = t
}

// SetEDID replaces the raw EDID.
func (m *Monitor) SetEDID(raw []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edid = slices.Clone(raw)
}

// SetFeature adds or replaces a feature.
func (m *Monitor) SetFeature(code vcp.FeatureCode, f Feature) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.features[code] = &f
	m.capabilities = ""
}

// RemoveFeature drops a feature; later reads report it unsupported.
func (m *Monitor) RemoveFeature(code vcp.FeatureCode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.features, code)
}

// SetTable sets the contents of a table feature.
func (m *Monitor) SetTable(code vcp.FeatureCode, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[code] = slices.Clone(data)
}

// Table returns a copy of a table feature.
func (m *Monitor) Table(code vcp.FeatureCode) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.tables[code])
}

// SetCapabilities overrides the generated capability string.
func (m *Monitor) SetCapabilities(s string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.capabilities = s
}

// SetFaults replaces the fault configuration.
func (m *Monitor) SetFaults(f Faults) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.faults = f
}

// Unplug makes every later exchange fail as if the display was removed.
func (m *Monitor) Unplug() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.faults.Gone = true
}

// Value returns the current value of a feature.
func (m *Monitor) Value(code vcp.FeatureCode) (vcp.Value, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.features[code]
	if !ok {
		return vcp.Value{}, false
	}
	return f.Value, true
}

// Saved returns the value persisted by the last save request.
func (m *Monitor) Saved(code vcp.FeatureCode) (vcp.Value, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.saved[code]
	return v, ok
}

// Calls returns a snapshot of the exchange counters.
func (m *Monitor) Calls() Calls {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Capabilities returns the capability string the monitor reports.
func (m *Monitor) Capabilities() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.capabilityString()
}

// capabilityString builds a string in the usual MCCS layout from the
// feature set unless one was set explicitly. Caller holds mu.
func (m *Monitor) capabilityString() string {
	if m.capabilities != "" {
		return m.capabilities
	}
	var b strings.Builder
	b.WriteString("(prot(monitor)type(lcd)")
	if m.model != "" {
		fmt.Fprintf(&b, "model(%s)", m.model)
	}
	b.WriteString("cmds(01 02 03 0C E3 F3)vcp(")
	codes := slices.Sorted(maps.Keys(m.features))
	first := true
	for _, code := range codes {
		f := m.features[code]
		if f.Hidden {
			continue
		}
		if !first {
			b.WriteByte(' ')
		}
		first = false
		fmt.Fprintf(&b, "%02X", uint8(code))
		if len(f.Values) > 0 {
			b.WriteByte('(')
			for i, v := range f.Values {
				if i > 0 {
					b.WriteByte(' ')
				}
				fmt.Fprintf(&b, "%02X", v)
			}
			b.WriteByte(')')
		}
	}
	for _, code := range slices.Sorted(maps.Keys(m.tables)) {
		if _, ok := m.features[code]; ok {
			continue
		}
		if !first {
			b.WriteByte(' ')
		}
		first = false
		fmt.Fprintf(&b, "%02X", uint8(code))
	}
	fmt.Fprintf(&b, ")mccs_ver(%s))", m.mccs)
	return b.String()
}
