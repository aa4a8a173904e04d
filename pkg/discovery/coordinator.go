package discovery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"time"

	conciter "github.com/sourcegraph/conc/iter"

	"github.com/displayctl/ddc-go/pkg/display"
	"github.com/displayctl/ddc-go/pkg/identity"
	"github.com/displayctl/ddc-go/pkg/log"
	"github.com/displayctl/ddc-go/pkg/retry"
	"github.com/displayctl/ddc-go/pkg/transport"
	"github.com/displayctl/ddc-go/pkg/vcp"
)

// Config configures a Coordinator.
type Config struct {
	// Backends are queried on every pass. Their order decides which
	// connection wins when two backends reach the same display.
	Backends []transport.Backend

	// Retry applies to EDID reads and is handed to every display.
	// Default: three attempts, 50ms apart.
	Retry retry.Policy

	// RangePolicy is handed to every display. Default: clamp.
	RangePolicy vcp.RangePolicy

	// Resolver turns EDID into identities.
	Resolver identity.Resolver

	// Logger receives operational logs. Nil disables logging.
	Logger *slog.Logger

	// ProtocolLogger receives discovery and exchange events.
	ProtocolLogger log.Logger
}

// DefaultConfig returns a configuration with no backends and the default
// retry policy.
func DefaultConfig() Config {
	return Config{
		Retry:       retry.DefaultPolicy(),
		RangePolicy: vcp.RangeClamp,
	}
}

// BackendFailure records a backend that could not enumerate.
type BackendFailure struct {
	Backend transport.BackendID
	Err     error
}

func (f BackendFailure) Error() string {
	return fmt.Sprintf("backend %s: %v", f.Backend, f.Err)
}

func (f BackendFailure) Unwrap() error { return f.Err }

// Result is the outcome of one discovery pass.
type Result struct {
	// Displays are the merged handles, in backend and enumeration order.
	// The caller owns them.
	Displays []*display.Display

	// Failures lists backends that contributed nothing because they
	// failed.
	Failures []BackendFailure
}

// Close closes every display in the result.
func (r *Result) Close() error {
	var errs []error
	for _, d := range r.Displays {
		if err := d.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Coordinator runs discovery passes over a fixed set of backends.
type Coordinator struct {
	config  Config
	logger  *slog.Logger
	plog    log.Logger
	session string
}

// New creates a coordinator.
func New(config Config) *Coordinator {
	c := &Coordinator{
		config: config,
		logger: config.Logger,
		plog:   log.OrNoop(config.ProtocolLogger),
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

// candidate is one connection after its EDID was read.
type candidate struct {
	backend  transport.BackendID
	conn     transport.Connection
	id       string
	identity *identity.Identity
}

// probe is one backend's enumeration result.
type probe struct {
	backend    transport.BackendID
	candidates []candidate
	err        error
}

// Discover runs a fresh discovery pass. It fails only if ctx is done, in
// which case every connection opened during the pass is closed again.
func (c *Coordinator) Discover(ctx context.Context) (*Result, error) {
	start := time.Now()

	// Backends share no state, so they are enumerated concurrently.
	probes := conciter.Map(c.config.Backends, func(b *transport.Backend) probe {
		return c.probe(ctx, *b)
	})

	if err := ctx.Err(); err != nil {
		for _, p := range probes {
			for _, cand := range p.candidates {
				cand.conn.Close()
			}
		}
		return nil, err
	}

	res := &Result{}
	entries := c.merge(probes, res)
	for _, e := range entries {
		res.Displays = append(res.Displays, display.New(e.conn, display.Options{
			ID:             fmt.Sprintf("%s:%s", e.backend, e.id),
			Backend:        e.backend,
			Identity:       e.identity,
			Alternates:     e.alternates,
			Retry:          c.config.Retry,
			RangePolicy:    c.config.RangePolicy,
			Logger:         c.logger,
			ProtocolLogger: c.config.ProtocolLogger,
		}))
	}

	c.logger.Info("discovery complete",
		"displays", len(res.Displays),
		"failed_backends", len(res.Failures),
		"duration", time.Since(start))
	return res, nil
}

// Displays returns a sequence that runs a fresh discovery pass each time it
// is ranged over. Displays not yet yielded when the loop stops early are
// closed. Failures are logged and otherwise dropped; use Discover to see
// them.
func (c *Coordinator) Displays(ctx context.Context) iter.Seq[*display.Display] {
	return func(yield func(*display.Display) bool) {
		res, err := c.Discover(ctx)
		if err != nil {
			return
		}
		for i, d := range res.Displays {
			if !yield(d) {
				for _, rest := range res.Displays[i+1:] {
					rest.Close()
				}
				return
			}
		}
	}
}

// Find runs a discovery pass and returns the displays matching q. The
// displays that do not match are closed.
func (c *Coordinator) Find(ctx context.Context, q Query) ([]*display.Display, error) {
	res, err := c.Discover(ctx)
	if err != nil {
		return nil, err
	}
	var out []*display.Display
	for _, d := range res.Displays {
		if q(d) {
			out = append(out, d)
		} else {
			d.Close()
		}
	}
	return out, nil
}

// probe enumerates one backend and resolves the identity of each
// connection, in order.
func (c *Coordinator) probe(ctx context.Context, b transport.Backend) probe {
	p := probe{backend: b.ID()}

	conns, err := b.Enumerate(ctx)
	if err != nil {
		p.err = err
		return p
	}

	c.logDiscovery(p.backend, &log.DiscoveryEvent{Action: log.DiscoveryEnumerated, Count: len(conns)})

	registry := NewIDRegistry()
	for i, conn := range conns {
		cand := candidate{
			backend: p.backend,
			conn:    conn,
			id:      registry.Assign(i, conn.ID()),
		}
		if ctx.Err() == nil {
			cand.identity = c.resolve(ctx, p.backend, conn)
		}
		p.candidates = append(p.candidates, cand)
	}
	return p
}

// resolve reads and parses a connection's EDID. Failures leave the
// connection without an identity.
func (c *Coordinator) resolve(ctx context.Context, backend transport.BackendID, conn transport.Connection) *identity.Identity {
	var raw []byte
	attempts, err := retry.Do(ctx, c.config.Retry, func(int) error {
		var err error
		raw, err = conn.ReadEDID(ctx)
		return err
	}, func(err error) bool {
		return transport.KindOf(err).Retryable()
	})
	if err != nil {
		c.logger.Warn("reading EDID failed",
			"backend", backend, "connection", conn.ID(), "attempts", attempts, "error", err)
		return nil
	}

	id, err := c.config.Resolver.Resolve(raw)
	if err != nil {
		c.logger.Warn("resolving identity failed",
			"backend", backend, "connection", conn.ID(), "error", err)
		return nil
	}
	if !id.Mergeable() {
		c.logger.Warn("EDID checksum mismatch, display will not be merged",
			"backend", backend, "connection", conn.ID(), "identity", id.String())
	}
	return id
}

func (c *Coordinator) logDiscovery(backend transport.BackendID, e *log.DiscoveryEvent) {
	c.plog.Log(log.Event{
		Timestamp: time.Now(),
		Backend:   string(backend),
		Layer:     log.LayerDiscovery,
		Category:  log.CategoryDiscovery,
		Discovery: e,
	})
}
