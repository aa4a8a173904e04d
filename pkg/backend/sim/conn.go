package sim

import (
	"context"
	"encoding/binary"
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/displayctl/ddc-go/pkg/transport"
	"github.com/displayctl/ddc-go/pkg/vcp"
	"github.com/displayctl/ddc-go/pkg/wire"
)

// conn is a connection to a simulated monitor.
type conn struct {
	m      *Monitor
	closed atomic.Bool
}

func (c *conn) ID() string { return c.m.ID }

func (c *conn) Valid() bool {
	if c.closed.Load() {
		return false
	}
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	return !c.m.faults.Gone
}

func (c *conn) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	c.m.mu.Lock()
	c.m.calls.Close++
	c.m.mu.Unlock()
	return nil
}

// begin applies the common fault rules to an exchange. Caller holds m.mu.
func (c *conn) begin(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.closed.Load() {
		return transport.Gone(op, transport.ErrClosed)
	}
	f := &c.m.faults
	if f.Gone {
		return transport.Gone(op, transport.ErrDeviceGone)
	}
	if f.Transient > 0 {
		f.Transient--
		return transport.Transient(op, transport.ErrTimeout)
	}
	return nil
}

func (c *conn) feature(op string, code vcp.FeatureCode) (*Feature, error) {
	if slices.Contains(c.m.faults.Unsupported, code) {
		return nil, transport.Unsupported(op, fmt.Errorf("%w: %s", transport.ErrNotSupported, code))
	}
	f, ok := c.m.features[code]
	if !ok {
		return nil, transport.Unsupported(op, fmt.Errorf("%w: %s", transport.ErrNotSupported, code))
	}
	return f, nil
}

func (c *conn) ReadEDID(ctx context.Context) ([]byte, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	c.m.calls.EDID++
	if err := c.begin(ctx, "read_edid"); err != nil {
		return nil, err
	}
	if c.m.faults.EDIDError || len(c.m.edid) == 0 {
		return nil, transport.Transient("read_edid", transport.ErrShortRead)
	}
	return slices.Clone(c.m.edid), nil
}

func (c *conn) GetVCP(ctx context.Context, code vcp.FeatureCode) ([]byte, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	c.m.calls.GetVCP++
	if err := c.begin(ctx, "get_vcp"); err != nil {
		return nil, err
	}
	f, err := c.feature("get_vcp", code)
	if err != nil {
		return nil, err
	}

	reply := make([]byte, 4)
	switch f.Value.Kind {
	case vcp.KindContinuous:
		binary.BigEndian.PutUint16(reply[0:2], f.Value.Maximum)
		binary.BigEndian.PutUint16(reply[2:4], f.Value.Current)
	case vcp.KindNonContinuous:
		reply[1] = 0xFF
		reply[3] = f.Value.Byte
	default:
		return nil, transport.Unsupported("get_vcp", fmt.Errorf("%w: %s is a table", transport.ErrNotSupported, code))
	}
	if c.m.faults.Garbled > 0 {
		c.m.faults.Garbled--
		return reply[:2], nil
	}
	return reply, nil
}

func (c *conn) SetVCP(ctx context.Context, code vcp.FeatureCode, value []byte) error {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	c.m.calls.SetVCP++
	if err := c.begin(ctx, "set_vcp"); err != nil {
		return err
	}
	f, err := c.feature("set_vcp", code)
	if err != nil {
		return err
	}
	if f.ReadOnly {
		return transport.Unsupported("set_vcp", fmt.Errorf("%w: %s is read-only", transport.ErrNotSupported, code))
	}

	// The wire carries a 16-bit value regardless of the feature kind.
	raw, err := wire.SetValue(value)
	if err != nil {
		return transport.Fatal("set_vcp", err)
	}
	switch f.Value.Kind {
	case vcp.KindContinuous:
		if raw > f.Value.Maximum {
			raw = f.Value.Maximum
		}
		f.Value.Current = raw
	case vcp.KindNonContinuous:
		f.Value.Byte = uint8(raw)
	}
	return nil
}

func (c *conn) ReadCapabilities(ctx context.Context) (string, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	c.m.calls.Capabilities++
	if err := c.begin(ctx, "capabilities"); err != nil {
		return "", err
	}
	return c.m.capabilityString(), nil
}

func (c *conn) ReadTableChunk(ctx context.Context, code vcp.FeatureCode, offset uint16) (vcp.Chunk, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	c.m.calls.TableRead++
	if err := c.begin(ctx, "table_read"); err != nil {
		return vcp.Chunk{}, err
	}
	data, ok := c.m.tables[code]
	if !ok || slices.Contains(c.m.faults.Unsupported, code) {
		return vcp.Chunk{}, transport.Unsupported("table_read", fmt.Errorf("%w: %s", transport.ErrNotSupported, code))
	}
	if int(offset) > len(data) {
		return vcp.Chunk{}, transport.Fatal("table_read", fmt.Errorf("offset %d beyond table of %d bytes", offset, len(data)))
	}
	end := min(int(offset)+wire.MaxFragment, len(data))
	return vcp.Chunk{
		Offset: offset,
		Data:   slices.Clone(data[offset:end]),
		Last:   end == len(data),
	}, nil
}

func (c *conn) WriteTable(ctx context.Context, code vcp.FeatureCode, offset uint16, data []byte) error {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	c.m.calls.TableWrite++
	if err := c.begin(ctx, "table_write"); err != nil {
		return err
	}
	table, ok := c.m.tables[code]
	if !ok || slices.Contains(c.m.faults.Unsupported, code) {
		return transport.Unsupported("table_write", fmt.Errorf("%w: %s", transport.ErrNotSupported, code))
	}
	if need := int(offset) + len(data); need > len(table) {
		table = append(table, make([]byte, need-len(table))...)
	}
	copy(table[offset:], data)
	c.m.tables[code] = table
	return nil
}

func (c *conn) TimingReport(ctx context.Context) (transport.Timing, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	c.m.calls.Timing++
	if err := c.begin(ctx, "timing"); err != nil {
		return transport.Timing{}, err
	}
	if c.m.faults.NoTiming {
		return transport.Timing{}, transport.Unsupported("timing", transport.ErrNotSupported)
	}
	return c.m.timing, nil
}

func (c *conn) SaveCurrentSettings(ctx context.Context) error {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	c.m.calls.Save++
	if err := c.begin(ctx, "save_settings"); err != nil {
		return err
	}
	if c.m.saved == nil {
		c.m.saved = make(map[vcp.FeatureCode]vcp.Value)
	}
	for code, f := range c.m.features {
		c.m.saved[code] = f.Value
	}
	return nil
}
