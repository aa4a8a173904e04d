package display

import (
	"log/slog"

	"github.com/displayctl/ddc-go/pkg/identity"
	"github.com/displayctl/ddc-go/pkg/log"
	"github.com/displayctl/ddc-go/pkg/retry"
	"github.com/displayctl/ddc-go/pkg/transport"
	"github.com/displayctl/ddc-go/pkg/vcp"
)

// Alternate records another transport that reaches the same display.
type Alternate struct {
	Backend      transport.BackendID
	ConnectionID string
}

// Options configures a Display.
type Options struct {
	// ID is the stable identifier assigned by discovery.
	ID string

	// Backend is the tag of the backend that produced the connection.
	Backend transport.BackendID

	// Identity is the resolved identity, or nil if EDID was unavailable.
	Identity *identity.Identity

	// Alternates lists other transports that also see this display.
	Alternates []Alternate

	// Retry bounds retries of transient failures.
	Retry retry.Policy

	// RangePolicy selects clamping or rejection of out-of-range replies.
	RangePolicy vcp.RangePolicy

	// Logger receives operational logs. Nil disables logging.
	Logger *slog.Logger

	// ProtocolLogger receives exchange events. Nil disables capture.
	ProtocolLogger log.Logger
}
