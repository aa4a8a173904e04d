//go:build linux

package i2cdev

import (
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/sys/unix"

	"github.com/displayctl/ddc-go/pkg/transport"
)

// deviceNumber returns the device number of /dev/i2c-n.
func deviceNumber(n int) (string, bool) {
	var st unix.Stat_t
	if err := unix.Stat(fmt.Sprintf("/dev/i2c-%d", n), &st); err != nil {
		return "", false
	}
	if st.Mode&unix.S_IFMT != unix.S_IFCHR {
		return "", false
	}
	return strconv.FormatUint(uint64(st.Rdev), 10), true
}

// busError classifies an I2C transfer error. A missing adapter means the
// bus went away. A NACK (ENXIO) or I/O error is usually noise.
func busError(op string, err error) error {
	switch {
	case errors.Is(err, unix.ENODEV), errors.Is(err, unix.EBADF):
		return transport.Gone(op, fmt.Errorf("%w: %w", transport.ErrDeviceGone, err))
	case errors.Is(err, unix.EACCES), errors.Is(err, unix.EPERM):
		return transport.Fatal(op, fmt.Errorf("%w: %w", transport.ErrPermission, err))
	default:
		return transport.Transient(op, err)
	}
}
