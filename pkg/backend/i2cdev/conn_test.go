package i2cdev

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/i2c/i2ctest"

	"github.com/displayctl/ddc-go/pkg/discovery"
	"github.com/displayctl/ddc-go/pkg/edid"
	"github.com/displayctl/ddc-go/pkg/retry"
	"github.com/displayctl/ddc-go/pkg/transport"
	"github.com/displayctl/ddc-go/pkg/vcp"
	"github.com/displayctl/ddc-go/pkg/wire"
)

func request(t *testing.T, payload []byte) i2ctest.IO {
	t.Helper()
	frame, err := wire.EncodeRequest(payload)
	require.NoError(t, err)
	return i2ctest.IO{Addr: wire.AddrDDCCI, W: frame}
}

func reply(payload []byte, size int) i2ctest.IO {
	r := make([]byte, size)
	copy(r, wire.EncodeReply(payload))
	return i2ctest.IO{Addr: wire.AddrDDCCI, R: r}
}

func edidRead(info edid.Info) i2ctest.IO {
	return i2ctest.IO{Addr: wire.AddrEDID, W: []byte{0}, R: edid.Build(info)}
}

func presence() i2ctest.IO {
	return i2ctest.IO{Addr: wire.AddrEDID, W: []byte{0}, R: []byte{0x00}}
}

// flakyBus fails the listed transfers, counted from 1, and plays back the
// rest.
type flakyBus struct {
	*i2ctest.Playback
	fail []int
	n    int
}

func (f *flakyBus) Tx(addr uint16, w, r []byte) error {
	f.n++
	if slices.Contains(f.fail, f.n) {
		return errors.New("i2c: remote I/O error")
	}
	return f.Playback.Tx(addr, w, r)
}

func flakyOpener(fail []int, ops ...i2ctest.IO) i2creg.Opener {
	return func() (i2c.BusCloser, error) {
		return &flakyBus{Playback: &i2ctest.Playback{Ops: ops, DontPanic: true}, fail: fail}, nil
	}
}

func newTestConn(ops ...i2ctest.IO) (*conn, *i2ctest.Playback) {
	bus := &i2ctest.Playback{Ops: ops, DontPanic: true}
	return newConn(bus, "i2c-4", -1), bus
}

func TestGetVCP(t *testing.T) {
	c, bus := newTestConn(
		request(t, wire.GetVCP(0x10)),
		reply(wire.GetVCPReply(0x10, true, 100, 50), wire.GetVCPReplySize),
	)
	raw, err := c.GetVCP(context.Background(), vcp.Luminance)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x64, 0x00, 0x32}, raw)
	assert.NoError(t, bus.Close())
}

func TestGetVCPUnsupported(t *testing.T) {
	c, _ := newTestConn(
		request(t, wire.GetVCP(0xE9)),
		reply(wire.GetVCPReply(0xE9, false, 0, 0), wire.GetVCPReplySize),
	)
	_, err := c.GetVCP(context.Background(), 0xE9)
	assert.Equal(t, transport.KindUnsupported, transport.KindOf(err))
	assert.ErrorIs(t, err, transport.ErrNotSupported)
}

func TestGetVCPChecksumIsTransient(t *testing.T) {
	bad := reply(wire.GetVCPReply(0x10, true, 100, 50), wire.GetVCPReplySize)
	bad.R[10] ^= 0xFF
	c, _ := newTestConn(request(t, wire.GetVCP(0x10)), bad)

	_, err := c.GetVCP(context.Background(), vcp.Luminance)
	assert.Equal(t, transport.KindTransient, transport.KindOf(err))
	assert.ErrorIs(t, err, transport.ErrChecksum)
}

func TestNullReplyIsTransient(t *testing.T) {
	c, _ := newTestConn(request(t, wire.GetVCP(0x10)), reply(nil, wire.GetVCPReplySize))
	_, err := c.GetVCP(context.Background(), vcp.Luminance)
	assert.Equal(t, transport.KindTransient, transport.KindOf(err))
	assert.ErrorIs(t, err, transport.ErrNullReply)
}

func TestBusErrorIsClassified(t *testing.T) {
	c, _ := newTestConn()
	_, err := c.GetVCP(context.Background(), vcp.Luminance)
	require.Error(t, err)
	assert.True(t, transport.KindOf(err).Retryable())
}

func TestSetVCP(t *testing.T) {
	c, bus := newTestConn(request(t, wire.SetVCP(0x10, 80)))
	enc, err := vcp.Encode(vcp.Luminance, vcp.Continuous(80, 100))
	require.NoError(t, err)
	require.NoError(t, c.SetVCP(context.Background(), vcp.Luminance, enc))
	assert.NoError(t, bus.Close())
}

func TestSetVCPNonContinuous(t *testing.T) {
	c, bus := newTestConn(request(t, wire.SetVCP(0xD6, 0x04)))
	require.NoError(t, c.SetVCP(context.Background(), vcp.PowerMode, []byte{vcp.PowerOff}))
	assert.NoError(t, bus.Close())
}

func TestReadCapabilities(t *testing.T) {
	caps := "(prot(monitor)type(lcd)vcp(10 12 60(0F 11))mccs_ver(2.2))"
	first, second := []byte(caps[:32]), append([]byte(caps[32:]), 0)

	c, bus := newTestConn(
		request(t, wire.CapabilitiesRequest(0)),
		reply(wire.Fragment(wire.OpCapabilitiesReply, 0, first), wire.FragmentReplySize),
		request(t, wire.CapabilitiesRequest(32)),
		reply(wire.Fragment(wire.OpCapabilitiesReply, 32, second), wire.FragmentReplySize),
		request(t, wire.CapabilitiesRequest(uint16(32+len(second)))),
		reply(wire.Fragment(wire.OpCapabilitiesReply, uint16(32+len(second)), nil), wire.FragmentReplySize),
	)
	s, err := c.ReadCapabilities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, caps, s)
	assert.NoError(t, bus.Close())
}

func TestReadCapabilitiesOffsetMismatch(t *testing.T) {
	c, _ := newTestConn(
		request(t, wire.CapabilitiesRequest(0)),
		reply(wire.Fragment(wire.OpCapabilitiesReply, 5, []byte("x")), wire.FragmentReplySize),
	)
	_, err := c.ReadCapabilities(context.Background())
	assert.Equal(t, transport.KindTransient, transport.KindOf(err))
}

func TestReadTableChunk(t *testing.T) {
	full := make([]byte, wire.MaxFragment)
	c, _ := newTestConn(
		request(t, wire.TableRead(0x73, 0)),
		reply(wire.Fragment(wire.OpTableReadReply, 0, full), wire.FragmentReplySize),
		request(t, wire.TableRead(0x73, 32)),
		reply(wire.Fragment(wire.OpTableReadReply, 32, []byte{1, 2, 3}), wire.FragmentReplySize),
	)
	ctx := context.Background()

	chunk, err := c.ReadTableChunk(ctx, vcp.LUTTable, 0)
	require.NoError(t, err)
	assert.False(t, chunk.Last)
	assert.Len(t, chunk.Data, wire.MaxFragment)

	chunk, err = c.ReadTableChunk(ctx, vcp.LUTTable, 32)
	require.NoError(t, err)
	assert.True(t, chunk.Last)
	assert.Equal(t, vcp.Chunk{Offset: 32, Data: []byte{1, 2, 3}, Last: true}, chunk)
}

func TestWriteTableSplitsFragments(t *testing.T) {
	data := make([]byte, 40)
	for i := range data {
		data[i] = byte(i)
	}
	p1, err := wire.TableWrite(0x73, 8, data[:32])
	require.NoError(t, err)
	p2, err := wire.TableWrite(0x73, 40, data[32:])
	require.NoError(t, err)

	c, bus := newTestConn(request(t, p1), request(t, p2))
	require.NoError(t, c.WriteTable(context.Background(), vcp.LUTTable, 8, data))
	assert.NoError(t, bus.Close())
}

func TestSaveCurrentSettings(t *testing.T) {
	c, bus := newTestConn(request(t, wire.SaveSettings()))
	require.NoError(t, c.SaveCurrentSettings(context.Background()))
	assert.NoError(t, bus.Close())
}

func TestTimingReport(t *testing.T) {
	c, bus := newTestConn(
		request(t, wire.TimingRequest()),
		reply(wire.TimingReply(0x03, 6748, 5994), wire.TimingReplySize),
	)
	timing, err := c.TimingReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, transport.Timing{Status: 0x03, Horizontal: 6748, Vertical: 5994}, timing)
	assert.InDelta(t, 59.94, timing.VerticalHz(), 0.001)
	assert.NoError(t, bus.Close())
}

func TestTimingReportMalformed(t *testing.T) {
	c, _ := newTestConn(
		request(t, wire.TimingRequest()),
		reply(wire.GetVCPReply(0x10, true, 1, 1)[:6], wire.TimingReplySize),
	)
	_, err := c.TimingReport(context.Background())
	assert.Equal(t, transport.KindTransient, transport.KindOf(err))
}

func TestReadEDIDIsCached(t *testing.T) {
	info := edid.Info{ManufacturerID: "DEL", ProductCode: 0xA0F1, Serial: 7}
	c, _ := newTestConn(edidRead(info))

	first, err := c.ReadEDID(context.Background())
	require.NoError(t, err)
	second, err := c.ReadEDID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, edid.Build(info), first)
}

func TestClosedConnection(t *testing.T) {
	c, _ := newTestConn()
	assert.True(t, c.Valid())
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	assert.False(t, c.Valid())

	_, err := c.GetVCP(context.Background(), vcp.Luminance)
	assert.Equal(t, transport.KindGone, transport.KindOf(err))
	assert.ErrorIs(t, err, transport.ErrClosed)
}

func TestCancelledContext(t *testing.T) {
	c, _ := newTestConn()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := c.SaveCurrentSettings(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func opener(ops ...i2ctest.IO) i2creg.Opener {
	return func() (i2c.BusCloser, error) {
		return &i2ctest.Playback{Ops: ops, DontPanic: true}, nil
	}
}

func testBackend(buses []string, refs ...*i2creg.Ref) *Backend {
	return New(Options{
		Buses:      buses,
		ReplyDelay: -1,
		Refs:       func() []*i2creg.Ref { return refs },
		Init:       func() error { return nil },
	})
}

func TestEnumerate(t *testing.T) {
	info := edid.Info{ManufacturerID: "DEL", ProductCode: 0xA0F1, Serial: 7}
	b := testBackend(nil,
		&i2creg.Ref{Name: "display-bus", Number: -1, Open: opener(presence(), edidRead(info))},
		&i2creg.Ref{Name: "smbus", Number: -1, Open: opener()},
		&i2creg.Ref{Name: "locked", Number: -1, Open: func() (i2c.BusCloser, error) {
			return nil, errors.New("permission denied")
		}},
	)
	assert.Equal(t, transport.BackendI2CDev, b.ID())

	conns, err := b.Enumerate(context.Background())
	require.NoError(t, err)
	require.Len(t, conns, 1)
	assert.Equal(t, "display-bus", conns[0].ID())

	raw, err := conns[0].ReadEDID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, edid.Build(info), raw)
	assert.NoError(t, conns[0].Close())
}

func TestEnumerateBusFilter(t *testing.T) {
	info := edid.Info{ManufacturerID: "DEL", ProductCode: 0xA0F1, Serial: 7}
	b := testBackend([]string{"I2C2", "5"},
		&i2creg.Ref{Name: "/dev/i2c-1", Number: -1, Open: opener(presence(), edidRead(info))},
		&i2creg.Ref{Name: "/dev/i2c-2", Aliases: []string{"I2C2"}, Number: -1, Open: opener(presence(), edidRead(info))},
		&i2creg.Ref{Name: "bus5", Number: 5, Open: opener(presence(), edidRead(info))},
	)
	conns, err := b.Enumerate(context.Background())
	require.NoError(t, err)
	require.Len(t, conns, 2)
	assert.Equal(t, "/dev/i2c-2", conns[0].ID())
}

func TestEnumerateNoBuses(t *testing.T) {
	_, err := testBackend(nil).Enumerate(context.Background())
	assert.ErrorIs(t, err, ErrNoBuses)
	assert.Equal(t, transport.KindFatal, transport.KindOf(err))
}

func TestEnumerateInitFailure(t *testing.T) {
	boom := errors.New("driver failure")
	b := New(Options{Init: func() error { return boom }, Refs: func() []*i2creg.Ref { return nil }})
	_, err := b.Enumerate(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestEnumerateRetriesPresenceCheck(t *testing.T) {
	info := edid.Info{ManufacturerID: "DEL", ProductCode: 0xA0F1, Serial: 7}
	b := testBackend(nil,
		&i2creg.Ref{Name: "noisy", Number: -1, Open: flakyOpener([]int{1}, presence(), edidRead(info))},
	)

	conns, err := b.Enumerate(context.Background())
	require.NoError(t, err)
	require.Len(t, conns, 1)

	raw, err := conns[0].ReadEDID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, edid.Build(info), raw)
	assert.NoError(t, conns[0].Close())
}

func TestEnumerateKeepsBusWhenEDIDReadFails(t *testing.T) {
	info := edid.Info{ManufacturerID: "DEL", ProductCode: 0xA0F1, Serial: 7}
	b := testBackend(nil,
		&i2creg.Ref{Name: "noisy", Number: -1, Open: flakyOpener([]int{2}, presence(), edidRead(info))},
	)

	conns, err := b.Enumerate(context.Background())
	require.NoError(t, err)
	require.Len(t, conns, 1)

	_, err = conns[0].ReadEDID(context.Background())
	assert.Equal(t, transport.KindTransient, transport.KindOf(err))

	raw, err := conns[0].ReadEDID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, edid.Build(info), raw)
	assert.NoError(t, conns[0].Close())
}

func TestDiscoveryRetriesFirstEDIDRead(t *testing.T) {
	info := edid.Info{ManufacturerID: "DEL", ProductCode: 0xA0F1, Serial: 7, ModelName: "U2720Q"}
	b := testBackend(nil,
		&i2creg.Ref{Name: "noisy", Number: -1, Open: flakyOpener([]int{2}, presence(), edidRead(info))},
	)

	cfg := discovery.DefaultConfig()
	cfg.Backends = []transport.Backend{b}
	cfg.Retry = retry.Policy{Attempts: 3, Delay: -1}
	res, err := discovery.New(cfg).Discover(context.Background())
	require.NoError(t, err)
	defer res.Close()

	require.Len(t, res.Displays, 1)
	id := res.Displays[0].Identity()
	require.NotNil(t, id)
	assert.Equal(t, "DEL", id.ManufacturerID)
	assert.Equal(t, uint32(7), id.Serial)
}
