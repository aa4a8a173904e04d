package log

import (
	"fmt"
	"strings"
	"time"
)

// Event represents a protocol log event captured at any layer.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies the display handle (UUID). Discovery events use
	// the id of the discovery pass.
	SessionID string `cbor:"2,keyasint"`

	// Direction indicates request or reply.
	Direction Direction `cbor:"3,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// Backend is the transport backend tag.
	Backend string `cbor:"6,keyasint,omitempty"`

	// DisplayID is the display identifier assigned by discovery.
	DisplayID string `cbor:"7,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Exchange    *ExchangeEvent    `cbor:"10,keyasint,omitempty"`
	StateChange *StateChangeEvent `cbor:"11,keyasint,omitempty"`
	Discovery   *DiscoveryEvent   `cbor:"12,keyasint,omitempty"`
	Error       *ErrorEventData   `cbor:"13,keyasint,omitempty"`
}

// Direction indicates the direction of an exchange.
type Direction uint8

const (
	// DirectionIn indicates a reply from the display.
	DirectionIn Direction = 0
	// DirectionOut indicates a request to the display.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Layer indicates which layer captured the event.
type Layer uint8

const (
	// LayerTransport is the backend layer (raw bytes).
	LayerTransport Layer = 0
	// LayerDisplay is the display handle layer (decoded values).
	LayerDisplay Layer = 1
	// LayerDiscovery is the enumeration layer.
	LayerDiscovery Layer = 2
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerTransport:
		return "TRANSPORT"
	case LayerDisplay:
		return "DISPLAY"
	case LayerDiscovery:
		return "DISCOVERY"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryExchange indicates a DDC/CI request or reply.
	CategoryExchange Category = 0
	// CategoryState indicates a state change.
	CategoryState Category = 1
	// CategoryDiscovery indicates an enumeration decision.
	CategoryDiscovery Category = 2
	// CategoryError indicates an error event.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryExchange:
		return "EXCHANGE"
	case CategoryState:
		return "STATE"
	case CategoryDiscovery:
		return "DISCOVERY"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Operation names a display operation.
type Operation uint8

const (
	OpEnumerate    Operation = 0
	OpReadEDID     Operation = 1
	OpGetVCP       Operation = 2
	OpSetVCP       Operation = 3
	OpCapabilities Operation = 4
	OpTableRead    Operation = 5
	OpTableWrite   Operation = 6
	OpSave         Operation = 7
	OpClose        Operation = 8
	OpTiming       Operation = 9
)

var operationNames = []string{
	"ENUMERATE", "READ_EDID", "GET_VCP", "SET_VCP", "CAPABILITIES",
	"TABLE_READ", "TABLE_WRITE", "SAVE", "CLOSE", "TIMING",
}

// String returns the operation name.
func (o Operation) String() string {
	if int(o) < len(operationNames) {
		return operationNames[o]
	}
	return "UNKNOWN"
}

// ParseOperation parses an operation name, case-insensitively.
func ParseOperation(s string) (Operation, error) {
	for i, name := range operationNames {
		if strings.EqualFold(name, s) {
			return Operation(i), nil
		}
	}
	return 0, fmt.Errorf("unknown operation %q", s)
}

// ExchangeEvent captures one request or reply.
type ExchangeEvent struct {
	// Operation being performed.
	Operation Operation `cbor:"1,keyasint"`

	// Feature is the VCP code, for feature operations.
	Feature *uint8 `cbor:"2,keyasint,omitempty"`

	// Attempt is the 1-based attempt number.
	Attempt int `cbor:"3,keyasint,omitempty"`

	// Data holds raw bytes (may be truncated for large payloads).
	Data []byte `cbor:"4,keyasint,omitempty"`

	// Truncated indicates if Data was truncated.
	Truncated bool `cbor:"5,keyasint,omitempty"`

	// Value is the decoded value in display form.
	Value string `cbor:"6,keyasint,omitempty"`

	// Duration of the exchange (replies only).
	Duration *time.Duration `cbor:"7,keyasint,omitempty"`
}

// MaxDataSize caps the bytes kept in an ExchangeEvent.
const MaxDataSize = 256

// NewExchange builds an exchange payload, truncating data to MaxDataSize.
func NewExchange(op Operation, feature *uint8, attempt int, data []byte) *ExchangeEvent {
	ex := &ExchangeEvent{Operation: op, Feature: feature, Attempt: attempt}
	if len(data) > MaxDataSize {
		ex.Data = append([]byte(nil), data[:MaxDataSize]...)
		ex.Truncated = true
	} else if len(data) > 0 {
		ex.Data = append([]byte(nil), data...)
	}
	return ex
}

// StateChangeEvent captures display handle lifecycle events.
type StateChangeEvent struct {
	// Entity being changed.
	Entity StateEntity `cbor:"1,keyasint"`

	// OldState is the previous state (may be empty).
	OldState string `cbor:"2,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"3,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"4,keyasint,omitempty"`
}

// StateEntity indicates what entity changed state.
type StateEntity uint8

const (
	// StateEntityDisplay indicates a display handle state change.
	StateEntityDisplay StateEntity = 0
	// StateEntityConnection indicates a raw connection state change.
	StateEntityConnection StateEntity = 1
)

// String returns the state entity name.
func (s StateEntity) String() string {
	switch s {
	case StateEntityDisplay:
		return "DISPLAY"
	case StateEntityConnection:
		return "CONNECTION"
	default:
		return "UNKNOWN"
	}
}

// DiscoveryEvent captures one enumeration decision.
type DiscoveryEvent struct {
	// Action taken.
	Action DiscoveryAction `cbor:"1,keyasint"`

	// ConnectionID is the backend-specific connection id.
	ConnectionID string `cbor:"2,keyasint,omitempty"`

	// Identity is the resolved identity in display form.
	Identity string `cbor:"3,keyasint,omitempty"`

	// Count is the number of connections, for enumeration results.
	Count int `cbor:"4,keyasint,omitempty"`
}

// DiscoveryAction indicates what discovery did with a connection.
type DiscoveryAction uint8

const (
	// DiscoveryEnumerated reports a backend's enumeration result.
	DiscoveryEnumerated DiscoveryAction = 0
	// DiscoveryAdded indicates a new display.
	DiscoveryAdded DiscoveryAction = 1
	// DiscoveryDuplicate indicates a connection dropped as a duplicate.
	DiscoveryDuplicate DiscoveryAction = 2
	// DiscoveryReplaced indicates a connection that replaced an invalid one.
	DiscoveryReplaced DiscoveryAction = 3
	// DiscoveryFailed indicates a backend that failed to enumerate.
	DiscoveryFailed DiscoveryAction = 4
)

// String returns the action name.
func (a DiscoveryAction) String() string {
	switch a {
	case DiscoveryEnumerated:
		return "ENUMERATED"
	case DiscoveryAdded:
		return "ADDED"
	case DiscoveryDuplicate:
		return "DUPLICATE"
	case DiscoveryReplaced:
		return "REPLACED"
	case DiscoveryFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Kind is the error classification, if known.
	Kind string `cbor:"3,keyasint,omitempty"`

	// Attempts made before the error was reported.
	Attempts int `cbor:"4,keyasint,omitempty"`

	// Context describes what operation was being performed.
	Context string `cbor:"5,keyasint,omitempty"`
}
