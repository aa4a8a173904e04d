package i2cdev

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"sync"
	"time"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/displayctl/ddc-go/pkg/retry"
	"github.com/displayctl/ddc-go/pkg/transport"
)

// DefaultReplyDelay is the wait between writing a request and reading the
// reply. MCCS requires at least 40ms.
const DefaultReplyDelay = 40 * time.Millisecond

// presenceAttempts bounds the presence check on each bus.
const presenceAttempts = 3

// ErrNoBuses is returned by Enumerate when the host exposes no I2C buses.
var ErrNoBuses = errors.New("no i2c buses found")

// Options configures the backend.
type Options struct {
	// Buses restricts enumeration to the named buses or bus numbers.
	// Empty means every registered bus.
	Buses []string

	// ReplyDelay is the wait before reading a reply and between
	// consecutive requests. Zero uses DefaultReplyDelay; negative disables
	// waiting.
	ReplyDelay time.Duration

	// Logger receives operational logs. Nil disables logging.
	Logger *slog.Logger

	// Refs lists candidate buses. Defaults to i2creg.All.
	Refs func() []*i2creg.Ref

	// Init prepares the host drivers. Defaults to host.Init, run once.
	Init func() error
}

// Backend enumerates displays on I2C buses.
type Backend struct {
	opts   Options
	logger *slog.Logger
}

var (
	hostOnce sync.Once
	hostErr  error
)

func initHost() error {
	hostOnce.Do(func() {
		_, hostErr = host.Init()
	})
	return hostErr
}

// New creates an I2C backend.
func New(opts Options) *Backend {
	if opts.ReplyDelay == 0 {
		opts.ReplyDelay = DefaultReplyDelay
	}
	if opts.Refs == nil {
		opts.Refs = i2creg.All
	}
	if opts.Init == nil {
		opts.Init = initHost
	}
	b := &Backend{opts: opts, logger: opts.Logger}
	if b.logger == nil {
		b.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return b
}

// ID implements transport.Backend.
func (b *Backend) ID() transport.BackendID { return transport.BackendI2CDev }

// Enumerate opens every wanted bus and keeps those where a device answers
// at the EDID address. Buses that cannot be opened are skipped. The EDID
// itself is read later, through the connection.
func (b *Backend) Enumerate(ctx context.Context) ([]transport.Connection, error) {
	if err := b.opts.Init(); err != nil {
		return nil, transport.Fatal("enumerate", err)
	}
	refs := b.opts.Refs()
	if len(refs) == 0 {
		return nil, transport.Fatal("enumerate", ErrNoBuses)
	}

	var conns []transport.Connection
	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			for _, c := range conns {
				c.Close()
			}
			return nil, err
		}
		if !b.wanted(ref) {
			continue
		}

		bus, err := ref.Open()
		if err != nil {
			b.logger.Warn("opening i2c bus failed", "bus", ref.Name, "error", err)
			continue
		}
		c := newConn(bus, connID(ref), b.opts.ReplyDelay)
		if err := b.checkPresence(ctx, c); err != nil {
			b.logger.Debug("no display on i2c bus", "bus", ref.Name, "error", err)
			c.Close()
			continue
		}
		conns = append(conns, c)
	}
	return conns, nil
}

// checkPresence checks for a device at the EDID address, retrying transient bus
// errors.
func (b *Backend) checkPresence(ctx context.Context, c *conn) error {
	policy := retry.Policy{Attempts: presenceAttempts, Delay: b.opts.ReplyDelay}
	_, err := retry.Do(ctx, policy, func(int) error {
		return c.present(ctx)
	}, func(err error) bool {
		return transport.KindOf(err).Retryable()
	})
	return err
}

func (b *Backend) wanted(ref *i2creg.Ref) bool {
	if len(b.opts.Buses) == 0 {
		return true
	}
	if slices.Contains(b.opts.Buses, ref.Name) {
		return true
	}
	if ref.Number >= 0 && slices.Contains(b.opts.Buses, strconv.Itoa(ref.Number)) {
		return true
	}
	for _, alias := range ref.Aliases {
		if slices.Contains(b.opts.Buses, alias) {
			return true
		}
	}
	return false
}

// connID prefers the device number of the bus node, which stays stable
// when buses are renumbered, and falls back to the bus name.
func connID(ref *i2creg.Ref) string {
	if ref.Number >= 0 {
		if id, ok := deviceNumber(ref.Number); ok {
			return id
		}
	}
	return ref.Name
}

var _ transport.Backend = (*Backend)(nil)
