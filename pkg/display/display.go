package display

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/displayctl/ddc-go/pkg/caps"
	"github.com/displayctl/ddc-go/pkg/identity"
	"github.com/displayctl/ddc-go/pkg/log"
	"github.com/displayctl/ddc-go/pkg/retry"
	"github.com/displayctl/ddc-go/pkg/transport"
	"github.com/displayctl/ddc-go/pkg/vcp"
	"github.com/displayctl/ddc-go/pkg/version"
)

// Display is a handle to one physical monitor. It is safe for concurrent
// use; operations are executed one at a time.
type Display struct {
	id         string
	backend    transport.BackendID
	identity   *identity.Identity
	alternates []Alternate
	session    string

	policy      retry.Policy
	rangePolicy vcp.RangePolicy
	logger      *slog.Logger
	plog        log.Logger

	// mu serializes operations and guards conn and descriptor.
	mu         sync.Mutex
	conn       transport.Connection
	descriptor *caps.Descriptor

	state     atomic.Uint32
	done      chan struct{}
	closeOnce sync.Once
	releaseMu sync.Once
	closeErr  error
}

// New wraps a connection in a handle. The handle takes ownership of conn.
func New(conn transport.Connection, opts Options) *Display {
	d := &Display{
		id:          opts.ID,
		backend:     opts.Backend,
		identity:    opts.Identity.Clone(),
		alternates:  slices.Clone(opts.Alternates),
		session:     uuid.New().String(),
		policy:      opts.Retry,
		rangePolicy: opts.RangePolicy,
		logger:      opts.Logger,
		plog:        log.OrNoop(opts.ProtocolLogger),
		conn:        conn,
		done:        make(chan struct{}),
	}
	if d.logger == nil {
		d.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if d.id == "" {
		d.id = fmt.Sprintf("%s:%s", opts.Backend, conn.ID())
	}
	return d
}

// ID returns the stable identifier assigned by discovery.
func (d *Display) ID() string { return d.id }

// Backend returns the tag of the backend owning the connection.
func (d *Display) Backend() transport.BackendID { return d.backend }

// Identity returns a copy of the resolved identity, or nil if unknown.
// The identity is fixed for the life of the handle.
func (d *Display) Identity() *identity.Identity { return d.identity.Clone() }

// Alternates returns other transports that reach the same display.
func (d *Display) Alternates() []Alternate { return slices.Clone(d.alternates) }

// SessionID returns the id stamped on this handle's protocol events.
func (d *Display) SessionID() string { return d.session }

// State returns the current lifecycle state.
func (d *Display) State() State { return State(d.state.Load()) }

// String formats the handle as "backend:id MFG model".
func (d *Display) String() string {
	if d.identity == nil {
		return d.id
	}
	return fmt.Sprintf("%s %s", d.id, d.identity)
}

// Close releases the connection. It interrupts retry delays of an
// in-flight operation, waits for it to finish, and is safe to call more
// than once.
func (d *Display) Close() error {
	d.closeOnce.Do(func() {
		d.setState(StateClosed, "closed by caller")
		close(d.done)
	})
	d.mu.Lock()
	defer d.mu.Unlock()
	d.release()
	return d.closeErr
}

// release closes the connection once. Caller holds mu.
func (d *Display) release() {
	d.releaseMu.Do(func() {
		d.closeErr = d.conn.Close()
		d.logEvent(log.Event{
			Layer:    log.LayerTransport,
			Category: log.CategoryExchange,
			Exchange: &log.ExchangeEvent{Operation: log.OpClose},
		})
	})
}

// markGone moves the handle to Closed after the transport reported the
// display unreachable. Caller holds mu.
func (d *Display) markGone(cause error) {
	d.closeOnce.Do(func() {
		d.setState(StateClosed, cause.Error())
		close(d.done)
	})
	d.release()
	d.logger.Warn("display connection lost", "display", d.id, "error", cause)
}

func (d *Display) setState(s State, reason string) {
	old := State(d.state.Swap(uint32(s)))
	if old == s {
		return
	}
	d.logEvent(log.Event{
		Layer:    log.LayerDisplay,
		Category: log.CategoryState,
		StateChange: &log.StateChangeEvent{
			Entity:   log.StateEntityDisplay,
			OldState: old.String(),
			NewState: s.String(),
			Reason:   reason,
		},
	})
}

func (d *Display) closed() bool {
	select {
	case <-d.done:
		return true
	default:
		return false
	}
}

func (d *Display) logEvent(e log.Event) {
	e.Timestamp = time.Now()
	e.SessionID = d.session
	e.Backend = string(d.backend)
	e.DisplayID = d.id
	d.plog.Log(e)
}

// call describes one operation for run.
type call struct {
	op      string
	logOp   log.Operation
	feature *vcp.FeatureCode
}

func (c call) err(kind transport.Kind, attempts int, err error) *ControlError {
	ce := &ControlError{Op: c.op, Kind: kind, Attempts: attempts, Err: err}
	if c.feature != nil {
		ce.Feature, ce.HasFeature = *c.feature, true
	}
	return ce
}

func (c call) featureByte() *uint8 {
	if c.feature == nil {
		return nil
	}
	b := uint8(*c.feature)
	return &b
}

// run executes fn under the handle lock with retries. fn receives a context
// that is cancelled when the handle is closed.
func (d *Display) run(ctx context.Context, c call, fn func(ctx context.Context, attempt int) error) error {
	if d.closed() {
		return c.err(transport.KindGone, 0, ErrConnectionClosed)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed() {
		return c.err(transport.KindGone, 0, ErrConnectionClosed)
	}

	d.state.CompareAndSwap(uint32(StateOpen), uint32(StateBusy))
	defer d.state.CompareAndSwap(uint32(StateBusy), uint32(StateOpen))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-d.done:
			cancel()
		case <-ctx.Done():
		}
	}()

	attempts, err := retry.Do(ctx, d.policy, func(attempt int) error {
		return fn(ctx, attempt)
	}, retryable)
	if err == nil {
		return nil
	}

	if d.closed() {
		return c.err(transport.KindGone, attempts, ErrConnectionClosed)
	}

	kind := classify(err)
	ce := c.err(kind, attempts, err)
	d.logEvent(log.Event{
		Layer:    log.LayerDisplay,
		Category: log.CategoryError,
		Error: &log.ErrorEventData{
			Layer:    log.LayerDisplay,
			Message:  err.Error(),
			Kind:     kind.String(),
			Attempts: attempts,
			Context:  c.logOp.String(),
		},
	})
	if kind == transport.KindGone {
		d.markGone(err)
	}
	return ce
}

// request logs an outgoing exchange and returns a function logging its
// reply.
func (d *Display) request(c call, attempt int, data []byte) func(reply []byte, value string, err error) {
	d.logEvent(log.Event{
		Direction: log.DirectionOut,
		Layer:     log.LayerTransport,
		Category:  log.CategoryExchange,
		Exchange:  log.NewExchange(c.logOp, c.featureByte(), attempt, data),
	})
	start := time.Now()
	return func(reply []byte, value string, err error) {
		elapsed := time.Since(start)
		if err != nil {
			d.logger.Debug("display exchange failed",
				"display", d.id, "op", c.op, "attempt", attempt, "error", err)
			return
		}
		ex := log.NewExchange(c.logOp, c.featureByte(), attempt, reply)
		ex.Value = value
		ex.Duration = &elapsed
		d.logEvent(log.Event{
			Direction: log.DirectionIn,
			Layer:     log.LayerTransport,
			Category:  log.CategoryExchange,
			Exchange:  ex,
		})
	}
}

// decoder builds a value decoder, using capability hints when known.
// Caller holds mu.
func (d *Display) decoder() *vcp.Decoder {
	dec := &vcp.Decoder{Policy: d.rangePolicy, Logger: d.logger}
	if d.descriptor != nil {
		dec.Kinds = d.descriptor.Kinds()
	}
	return dec
}

// GetVCP reads a feature value.
func (d *Display) GetVCP(ctx context.Context, code vcp.FeatureCode) (vcp.Value, error) {
	c := call{op: "get_vcp", logOp: log.OpGetVCP, feature: &code}
	var value vcp.Value
	err := d.run(ctx, c, func(ctx context.Context, attempt int) error {
		done := d.request(c, attempt, nil)
		raw, err := d.conn.GetVCP(ctx, code)
		if err != nil {
			done(nil, "", err)
			return err
		}
		v, err := d.decoder().Decode(code, raw)
		done(raw, v.String(), err)
		if err != nil {
			return err
		}
		value = v
		return nil
	})
	return value, err
}

// SetVCP writes a feature value. The value is not read back. Values outside
// the advertised set, when capabilities are known, are logged and sent
// anyway.
func (d *Display) SetVCP(ctx context.Context, code vcp.FeatureCode, value vcp.Value) error {
	c := call{op: "set_vcp", logOp: log.OpSetVCP, feature: &code}
	encoded, err := vcp.Encode(code, value)
	if err != nil {
		return c.err(transport.KindData, 0, err)
	}

	return d.run(ctx, c, func(ctx context.Context, attempt int) error {
		if attempt == 1 && d.descriptor != nil {
			if verr := vcp.Validate(code, value, d.descriptor.Values(code)); verr != nil {
				d.logger.Warn("writing value outside advertised set", "display", d.id, "error", verr)
			}
		}
		done := d.request(c, attempt, encoded)
		err := d.conn.SetVCP(ctx, code, encoded)
		done(nil, value.String(), err)
		return err
	})
}

// Capabilities returns the parsed capability descriptor. A successful
// result is cached for the lifetime of the handle; failures are not.
func (d *Display) Capabilities(ctx context.Context) (*caps.Descriptor, error) {
	c := call{op: "capabilities", logOp: log.OpCapabilities}

	var raw string
	var cached *caps.Descriptor
	err := d.run(ctx, c, func(ctx context.Context, attempt int) error {
		if d.descriptor != nil {
			cached = d.descriptor
			return nil
		}
		done := d.request(c, attempt, nil)
		s, err := d.conn.ReadCapabilities(ctx)
		done([]byte(s), "", err)
		raw = s
		return err
	})
	if err != nil {
		return nil, err
	}
	if cached != nil {
		return cached, nil
	}

	desc, perr := caps.ParseDescriptor(raw)
	if desc == nil {
		return nil, c.err(transport.KindData, 1, perr)
	}
	if perr != nil {
		d.logger.Warn("capability string partially parsed", "display", d.id, "error", perr)
	}

	d.mu.Lock()
	if d.descriptor == nil {
		d.descriptor = desc
	}
	desc = d.descriptor
	d.mu.Unlock()
	return desc, nil
}

// ReadTable reads a complete table feature.
func (d *Display) ReadTable(ctx context.Context, code vcp.FeatureCode) (vcp.Value, error) {
	c := call{op: "table_read", logOp: log.OpTableRead, feature: &code}
	var asm vcp.TableAssembler
	err := d.run(ctx, c, func(ctx context.Context, attempt int) error {
		for !asm.Done() {
			offset := asm.Next()
			done := d.request(c, attempt, []byte{byte(offset >> 8), byte(offset)})
			chunk, err := d.conn.ReadTableChunk(ctx, code, offset)
			done(chunk.Data, "", err)
			if err != nil {
				return err
			}
			if _, err := asm.Add(chunk); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return vcp.Value{}, err
	}
	return asm.Value()
}

// WriteTable writes data into a table feature at offset.
func (d *Display) WriteTable(ctx context.Context, code vcp.FeatureCode, offset uint16, data []byte) error {
	c := call{op: "table_write", logOp: log.OpTableWrite, feature: &code}
	if int(offset)+len(data) > vcp.MaxTableLength {
		return c.err(transport.KindData, 0, vcp.ErrTableTooLarge)
	}
	return d.run(ctx, c, func(ctx context.Context, attempt int) error {
		done := d.request(c, attempt, data)
		err := d.conn.WriteTable(ctx, code, offset, data)
		done(nil, "", err)
		return err
	})
}

// SaveCurrentSettings asks the display to persist its current settings.
func (d *Display) SaveCurrentSettings(ctx context.Context) error {
	c := call{op: "save_settings", logOp: log.OpSave}
	return d.run(ctx, c, func(ctx context.Context, attempt int) error {
		done := d.request(c, attempt, nil)
		err := d.conn.SaveCurrentSettings(ctx)
		done(nil, "", err)
		return err
	})
}

// TimingReport reads the display's timing report.
func (d *Display) TimingReport(ctx context.Context) (transport.Timing, error) {
	c := call{op: "timing", logOp: log.OpTiming}
	var timing transport.Timing
	err := d.run(ctx, c, func(ctx context.Context, attempt int) error {
		done := d.request(c, attempt, nil)
		t, err := d.conn.TimingReport(ctx)
		if err != nil {
			done(nil, "", err)
			return err
		}
		timing = t
		done(nil, t.String(), nil)
		return nil
	})
	return timing, err
}

// MCCSVersion reads the MCCS version from VCP 0xDF. If the display does not
// implement 0xDF the version advertised in already-fetched capabilities is
// returned instead.
func (d *Display) MCCSVersion(ctx context.Context) (version.Version, error) {
	code := vcp.VersionCode
	c := call{op: "get_vcp", logOp: log.OpGetVCP, feature: &code}

	var v version.Version
	err := d.run(ctx, c, func(ctx context.Context, attempt int) error {
		done := d.request(c, attempt, nil)
		raw, err := d.conn.GetVCP(ctx, code)
		if err == nil && len(raw) != 4 {
			err = fmt.Errorf("%w: version reply has %d bytes", vcp.ErrMalformedReply, len(raw))
		}
		if err != nil {
			done(nil, "", err)
			return err
		}
		v = version.FromVCP(raw[2], raw[3])
		done(raw, v.String(), nil)
		return nil
	})
	if err == nil {
		return v, nil
	}

	var ce *ControlError
	if errors.As(err, &ce) && ce.Kind == transport.KindUnsupported {
		d.mu.Lock()
		desc := d.descriptor
		d.mu.Unlock()
		if desc != nil && !desc.MCCSVersion.IsZero() {
			return desc.MCCSVersion, nil
		}
	}
	return version.Version{}, err
}
