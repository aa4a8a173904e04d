package identity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/displayctl/ddc-go/pkg/edid"
)

func dell(serial uint32) []byte {
	return edid.Build(edid.Info{
		ManufacturerID: "DEL",
		ProductCode:    0xA0C4,
		Serial:         serial,
		ModelName:      "DELL U2720Q",
	})
}

func TestResolve(t *testing.T) {
	id, err := Resolve(dell(1234))
	require.NoError(t, err)
	assert.Equal(t, "DEL", id.ManufacturerID)
	assert.Equal(t, uint16(0xA0C4), id.ProductCode)
	assert.Equal(t, uint32(1234), id.Serial)
	assert.Equal(t, "DELL U2720Q", id.ModelName)
	assert.Equal(t, ConfidenceHigh, id.Confidence)
	assert.True(t, id.Mergeable())
}

func TestResolveEmpty(t *testing.T) {
	_, err := Resolve(nil)
	var idErr *Error
	require.ErrorAs(t, err, &idErr)
	assert.ErrorIs(t, err, ErrNoEDID)
}

func TestResolveParseFailure(t *testing.T) {
	_, err := Resolve([]byte{1, 2, 3})
	assert.ErrorIs(t, err, edid.ErrTooShort)
}

func TestResolveCustomParser(t *testing.T) {
	r := Resolver{Parser: ParserFunc(func([]byte) (*edid.EDID, error) {
		return nil, errors.New("boom")
	})}
	_, err := r.Resolve([]byte{0})
	assert.EqualError(t, err, "identity: boom")
}

func TestChecksumMismatchIsLowConfidence(t *testing.T) {
	raw := dell(1234)
	raw[127] ^= 0xFF

	id, err := Resolve(raw)
	require.NoError(t, err)
	assert.Equal(t, ConfidenceLow, id.Confidence)
	assert.False(t, id.Mergeable())

	other, err := Resolve(dell(1234))
	require.NoError(t, err)
	assert.False(t, Same(id, other))
	assert.False(t, Same(id, id))
}

func TestSame(t *testing.T) {
	a, _ := Resolve(dell(1234))
	b, _ := Resolve(dell(1234))
	c, _ := Resolve(dell(5678))

	assert.True(t, Same(a, b))
	assert.False(t, Same(a, c))
	assert.False(t, Same(a, nil))
	assert.False(t, Same(nil, nil))
}

func TestWeakKeyWithoutSerial(t *testing.T) {
	a, _ := Resolve(dell(0))
	b, _ := Resolve(dell(0))
	assert.True(t, a.Key().Weak)
	assert.True(t, Same(a, b))

	named, _ := Resolve(edid.Build(edid.Info{ManufacturerID: "DEL", ProductCode: 0xA0C4, ModelName: "DELL P2720D"}))
	assert.False(t, Same(a, named))

	serial, _ := Resolve(dell(99))
	assert.False(t, Same(a, serial))
}

func TestSerialStringCounts(t *testing.T) {
	id, err := Resolve(edid.Build(edid.Info{ManufacturerID: "GSM", ProductCode: 1, SerialString: "ABC"}))
	require.NoError(t, err)
	assert.True(t, id.HasSerial())
	assert.False(t, id.Key().Weak)
}

func TestUpdateFrom(t *testing.T) {
	id := &Identity{ManufacturerID: "DEL", Serial: 42}
	id.UpdateFrom(&Identity{ManufacturerID: "XXX", ProductCode: 7, ModelName: "U2720Q", Serial: 1})

	assert.Equal(t, "DEL", id.ManufacturerID)
	assert.Equal(t, uint16(7), id.ProductCode)
	assert.Equal(t, "U2720Q", id.ModelName)
	assert.Equal(t, uint32(42), id.Serial)

	id.UpdateFrom(nil)
}

func TestString(t *testing.T) {
	id, _ := Resolve(dell(1234))
	assert.Equal(t, "DEL DELL U2720Q #1234", id.String())

	var none *Identity
	assert.Equal(t, "unknown", none.String())

	anon := &Identity{ManufacturerID: "AOC", ProductCode: 0x2402, Confidence: ConfidenceLow}
	assert.Equal(t, "AOC 0x2402 (low confidence)", anon.String())
}

func TestClone(t *testing.T) {
	var none *Identity
	assert.Nil(t, none.Clone())

	id := &Identity{ManufacturerID: "DEL", ProductCode: 0xA0F1, Serial: 7, EDID: []byte{1, 2, 3}}
	c := id.Clone()
	assert.Equal(t, id, c)

	c.EDID[0] = 9
	c.ModelName = "X"
	assert.Equal(t, []byte{1, 2, 3}, id.EDID)
	assert.Empty(t, id.ModelName)
}
