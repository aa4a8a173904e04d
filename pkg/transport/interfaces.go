package transport

import (
	"context"

	"github.com/displayctl/ddc-go/pkg/vcp"
)

// Backend is one platform mechanism for reaching displays.
type Backend interface {
	// ID returns the backend tag.
	ID() BackendID

	// Enumerate lists the connections currently reachable. Each call
	// returns fresh connections owned by the caller.
	Enumerate(ctx context.Context) ([]Connection, error)
}

// Connection is a raw, backend-specific path to one display. Connections
// are not safe for concurrent use.
type Connection interface {
	// ID returns a backend-specific identifier, such as a bus number.
	ID() string

	// ReadEDID returns the raw EDID bytes.
	ReadEDID(ctx context.Context) ([]byte, error)

	// GetVCP returns the raw reply for a feature: four bytes holding the
	// maximum and current values, big-endian.
	GetVCP(ctx context.Context, code vcp.FeatureCode) ([]byte, error)

	// SetVCP writes an encoded value (see vcp.Encode).
	SetVCP(ctx context.Context, code vcp.FeatureCode, value []byte) error

	// ReadCapabilities returns the full capability string.
	ReadCapabilities(ctx context.Context) (string, error)

	// ReadTableChunk reads one fragment of a table feature.
	ReadTableChunk(ctx context.Context, code vcp.FeatureCode, offset uint16) (vcp.Chunk, error)

	// WriteTable writes data into a table feature at offset.
	WriteTable(ctx context.Context, code vcp.FeatureCode, offset uint16, data []byte) error

	// SaveCurrentSettings asks the display to persist its settings.
	SaveCurrentSettings(ctx context.Context) error

	// TimingReport reads the display's timing report.
	TimingReport(ctx context.Context) (Timing, error)

	// Valid reports whether the connection still reaches the display.
	Valid() bool

	// Close releases the connection.
	Close() error
}
