//go:build !linux

package i2cdev

import "github.com/displayctl/ddc-go/pkg/transport"

func deviceNumber(int) (string, bool) { return "", false }

func busError(op string, err error) error {
	return transport.Transient(op, err)
}
