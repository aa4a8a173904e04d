package transport

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"wrapped transient", Transient("get_vcp", errors.New("nak")), KindTransient},
		{"timeout sentinel", fmt.Errorf("read: %w", ErrTimeout), KindTransient},
		{"checksum sentinel", ErrChecksum, KindTransient},
		{"null reply", ErrNullReply, KindTransient},
		{"unsupported", Unsupported("get_vcp", ErrNotSupported), KindUnsupported},
		{"bare unsupported", ErrNotSupported, KindUnsupported},
		{"gone", Gone("set_vcp", errors.New("ENXIO")), KindGone},
		{"closed", ErrClosed, KindGone},
		{"permission", Fatal("open", ErrPermission), KindFatal},
		{"unknown", errors.New("mystery"), KindFatal},
		{"explicit kind wins", NewError(KindData, "caps", ErrTimeout), KindData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestErrorFormatting(t *testing.T) {
	err := Transient("get_vcp", ErrTimeout)
	assert.EqualError(t, err, "get_vcp: TRANSIENT: timed out waiting for reply")
	assert.ErrorIs(t, err, ErrTimeout)

	assert.EqualError(t, NewError(KindGone, "", ErrDeviceGone), "GONE: device gone")
}

func TestRetryable(t *testing.T) {
	assert.True(t, KindTransient.Retryable())
	for _, k := range []Kind{KindFatal, KindUnsupported, KindGone, KindData} {
		assert.False(t, k.Retryable(), k.String())
	}
}

func TestParseBackendID(t *testing.T) {
	for _, id := range KnownBackends() {
		got, err := ParseBackendID(id.String())
		assert.NoError(t, err)
		assert.Equal(t, id, got)
	}

	_, err := ParseBackendID("vga")
	assert.Error(t, err)
}
