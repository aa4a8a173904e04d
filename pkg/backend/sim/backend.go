package sim

import (
	"context"
	"slices"
	"sync"

	"github.com/displayctl/ddc-go/pkg/transport"
)

// Options configures a simulated backend.
type Options struct {
	// ID is the backend tag. Defaults to transport.BackendSim.
	ID transport.BackendID

	// Monitors are returned by Enumerate, in order.
	Monitors []*Monitor

	// EnumerateErr, if set, makes Enumerate fail.
	EnumerateErr error
}

// Backend is an in-memory transport.Backend.
type Backend struct {
	id transport.BackendID

	mu           sync.Mutex
	monitors     []*Monitor
	enumerateErr error
	enumerations int
}

// New creates a simulated backend.
func New(opts Options) *Backend {
	id := opts.ID
	if id == "" {
		id = transport.BackendSim
	}
	return &Backend{
		id:           id,
		monitors:     slices.Clone(opts.Monitors),
		enumerateErr: opts.EnumerateErr,
	}
}

// ID implements transport.Backend.
func (b *Backend) ID() transport.BackendID { return b.id }

// Enumerate implements transport.Backend. Every call returns new
// connections.
func (b *Backend) Enumerate(ctx context.Context) ([]transport.Connection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.enumerations++
	if b.enumerateErr != nil {
		return nil, b.enumerateErr
	}
	conns := make([]transport.Connection, 0, len(b.monitors))
	for _, m := range b.monitors {
		conns = append(conns, &conn{m: m})
	}
	return conns, nil
}

// Attach adds a monitor, as if it was plugged in.
func (b *Backend) Attach(m *Monitor) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.monitors = append(b.monitors, m)
}

// Detach removes a monitor from later enumerations.
func (b *Backend) Detach(m *Monitor) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.monitors = slices.DeleteFunc(b.monitors, func(x *Monitor) bool { return x == m })
}

// SetEnumerateErr changes the error returned by Enumerate.
func (b *Backend) SetEnumerateErr(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.enumerateErr = err
}

// Enumerations returns how many times Enumerate was called.
func (b *Backend) Enumerations() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.enumerations
}
