package i2cdev

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"periph.io/x/conn/v3/i2c"

	"github.com/displayctl/ddc-go/pkg/edid"
	"github.com/displayctl/ddc-go/pkg/transport"
	"github.com/displayctl/ddc-go/pkg/vcp"
	"github.com/displayctl/ddc-go/pkg/wire"
)

// maxCapabilities bounds the capability string, whose offsets are 16-bit.
const maxCapabilities = 0xFFFF

// conn is a DDC/CI connection over one I2C bus. It is not safe for
// concurrent use.
type conn struct {
	id    string
	bus   i2c.BusCloser
	ddc   i2c.Dev
	delay time.Duration

	edid   []byte
	last   time.Time
	closed bool
}

func newConn(bus i2c.BusCloser, id string, delay time.Duration) *conn {
	return &conn{
		id:    id,
		bus:   bus,
		ddc:   i2c.Dev{Bus: bus, Addr: wire.AddrDDCCI},
		delay: delay,
	}
}

func (c *conn) ID() string { return c.id }

func (c *conn) Valid() bool { return !c.closed }

func (c *conn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.bus.Close()
}

// ReadEDID reads the base EDID block. The block is cached for the life of
// the connection.
func (c *conn) ReadEDID(ctx context.Context) ([]byte, error) {
	const op = "read_edid"
	if c.edid != nil {
		return slices.Clone(c.edid), nil
	}
	if err := c.check(ctx, op); err != nil {
		return nil, err
	}
	buf := make([]byte, edid.BlockSize)
	if err := c.bus.Tx(wire.AddrEDID, []byte{0}, buf); err != nil {
		return nil, busError(op, err)
	}
	c.edid = buf
	return slices.Clone(buf), nil
}

// present reads one byte at the EDID address.
func (c *conn) present(ctx context.Context) error {
	const op = "presence"
	if err := c.check(ctx, op); err != nil {
		return err
	}
	var b [1]byte
	if err := c.bus.Tx(wire.AddrEDID, []byte{0}, b[:]); err != nil {
		return busError(op, err)
	}
	return nil
}

func (c *conn) GetVCP(ctx context.Context, code vcp.FeatureCode) ([]byte, error) {
	const op = "get_vcp"
	payload, err := c.exchange(ctx, op, wire.GetVCP(byte(code)), wire.GetVCPReplySize)
	if err != nil {
		return nil, err
	}
	value, err := wire.ParseGetVCPReply(byte(code), payload)
	if err != nil {
		return nil, frameError(op, err)
	}
	return slices.Clone(value), nil
}

func (c *conn) SetVCP(ctx context.Context, code vcp.FeatureCode, value []byte) error {
	const op = "set_vcp"
	v, err := wire.SetValue(value)
	if err != nil {
		return transport.Fatal(op, err)
	}
	_, err = c.exchange(ctx, op, wire.SetVCP(byte(code), v), 0)
	return err
}

// ReadCapabilities reads the capability string fragment by fragment until
// the display sends an empty fragment.
func (c *conn) ReadCapabilities(ctx context.Context) (string, error) {
	const op = "capabilities"
	var b strings.Builder
	for offset := 0; offset < maxCapabilities; {
		payload, err := c.exchange(ctx, op, wire.CapabilitiesRequest(uint16(offset)), wire.FragmentReplySize)
		if err != nil {
			return "", err
		}
		data, err := wire.ParseFragment(wire.OpCapabilitiesReply, uint16(offset), payload)
		if err != nil {
			return "", frameError(op, err)
		}
		if len(data) == 0 {
			break
		}
		b.Write(data)
		offset += len(data)
	}
	return strings.TrimRight(b.String(), "\x00"), nil
}

// ReadTableChunk reads one table fragment. A fragment shorter than
// wire.MaxFragment ends the table.
func (c *conn) ReadTableChunk(ctx context.Context, code vcp.FeatureCode, offset uint16) (vcp.Chunk, error) {
	const op = "table_read"
	payload, err := c.exchange(ctx, op, wire.TableRead(byte(code), offset), wire.FragmentReplySize)
	if err != nil {
		return vcp.Chunk{}, err
	}
	data, err := wire.ParseFragment(wire.OpTableReadReply, offset, payload)
	if err != nil {
		return vcp.Chunk{}, frameError(op, err)
	}
	return vcp.Chunk{
		Offset: offset,
		Data:   slices.Clone(data),
		Last:   len(data) < wire.MaxFragment,
	}, nil
}

// WriteTable writes data in wire.MaxFragment sized pieces.
func (c *conn) WriteTable(ctx context.Context, code vcp.FeatureCode, offset uint16, data []byte) error {
	const op = "table_write"
	for chunk := range slices.Chunk(data, wire.MaxFragment) {
		payload, err := wire.TableWrite(byte(code), offset, chunk)
		if err != nil {
			return transport.Fatal(op, err)
		}
		if _, err := c.exchange(ctx, op, payload, 0); err != nil {
			return err
		}
		offset += uint16(len(chunk))
	}
	return nil
}

func (c *conn) SaveCurrentSettings(ctx context.Context) error {
	_, err := c.exchange(ctx, "save_settings", wire.SaveSettings(), 0)
	return err
}

func (c *conn) TimingReport(ctx context.Context) (transport.Timing, error) {
	const op = "timing"
	payload, err := c.exchange(ctx, op, wire.TimingRequest(), wire.TimingReplySize)
	if err != nil {
		return transport.Timing{}, err
	}
	status, h, v, err := wire.ParseTimingReply(payload)
	if err != nil {
		return transport.Timing{}, frameError(op, err)
	}
	return transport.Timing{Status: status, Horizontal: h, Vertical: v}, nil
}

func (c *conn) check(ctx context.Context, op string) error {
	if c.closed {
		return transport.Gone(op, transport.ErrClosed)
	}
	return ctx.Err()
}

// exchange writes a request and, if replySize is non-zero, reads and
// unframes the reply.
func (c *conn) exchange(ctx context.Context, op string, payload []byte, replySize int) ([]byte, error) {
	if err := c.check(ctx, op); err != nil {
		return nil, err
	}
	frame, err := wire.EncodeRequest(payload)
	if err != nil {
		return nil, transport.Fatal(op, err)
	}

	// Displays need a pause between consecutive requests.
	if err := c.sleep(ctx, c.delay-time.Since(c.last)); err != nil {
		return nil, err
	}
	err = c.ddc.Tx(frame, nil)
	c.last = time.Now()
	if err != nil {
		return nil, busError(op, err)
	}
	if replySize == 0 {
		return nil, nil
	}

	if err := c.sleep(ctx, c.delay); err != nil {
		return nil, err
	}
	reply := make([]byte, replySize)
	err = c.ddc.Tx(nil, reply)
	c.last = time.Now()
	if err != nil {
		return nil, busError(op, err)
	}
	out, err := wire.DecodeReply(reply)
	if err != nil {
		return nil, frameError(op, err)
	}
	return out, nil
}

func (c *conn) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// frameError classifies a wire decoding error.
func frameError(op string, err error) error {
	switch {
	case errors.Is(err, wire.ErrUnsupportedCode):
		return transport.Unsupported(op, fmt.Errorf("%w: %w", transport.ErrNotSupported, err))
	case errors.Is(err, wire.ErrChecksum):
		return transport.Transient(op, fmt.Errorf("%w: %w", transport.ErrChecksum, err))
	case errors.Is(err, wire.ErrNullMessage):
		return transport.Transient(op, fmt.Errorf("%w: %w", transport.ErrNullReply, err))
	default:
		return transport.Transient(op, fmt.Errorf("%w: %w", transport.ErrShortRead, err))
	}
}

var _ transport.Connection = (*conn)(nil)
