// Package i2cdev reaches displays over the I2C buses exposed by the host,
// such as /dev/i2c-N on Linux, using periph.io.
//
// Each bus that answers an EDID read at address 0x50 becomes one
// connection. DDC/CI requests are framed by package wire and sent to
// address 0x37; replies are read after the display's reply delay.
//
// Bus access usually needs membership of the i2c group (or root), and the
// i2c-dev kernel module must be loaded.
package i2cdev
