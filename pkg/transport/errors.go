package transport

import (
	"errors"
	"fmt"
)

// Common causes reported by backends.
var (
	ErrTimeout      = errors.New("timed out waiting for reply")
	ErrShortRead    = errors.New("short read")
	ErrChecksum     = errors.New("checksum mismatch")
	ErrNullReply    = errors.New("display not ready")
	ErrNotSupported = errors.New("feature not supported")
	ErrDeviceGone   = errors.New("device gone")
	ErrPermission   = errors.New("permission denied")
	ErrClosed       = errors.New("connection closed")
)

// Kind classifies a backend error.
type Kind uint8

const (
	// KindFatal errors cannot be retried; the backend cannot serve the
	// request, for example because access was denied.
	KindFatal Kind = 0
	// KindTransient errors may succeed on retry: timeouts, malformed or
	// short replies, checksum failures.
	KindTransient Kind = 1
	// KindUnsupported means the display rejected the feature or command.
	KindUnsupported Kind = 2
	// KindGone means the connection no longer reaches the display.
	KindGone Kind = 3
	// KindData means the exchange worked but the data was unusable.
	KindData Kind = 4
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindFatal:
		return "FATAL"
	case KindTransient:
		return "TRANSIENT"
	case KindUnsupported:
		return "UNSUPPORTED"
	case KindGone:
		return "GONE"
	case KindData:
		return "DATA"
	default:
		return "UNKNOWN"
	}
}

// Retryable reports whether errors of this kind are worth another attempt.
func (k Kind) Retryable() bool {
	return k == KindTransient
}

// Error is a classified backend error.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError wraps err with a kind and operation name.
func NewError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Transient wraps err as a retryable error.
func Transient(op string, err error) error {
	return NewError(KindTransient, op, err)
}

// Unsupported wraps err as an unsupported-feature error.
func Unsupported(op string, err error) error {
	return NewError(KindUnsupported, op, err)
}

// Gone wraps err as a connection-gone error.
func Gone(op string, err error) error {
	return NewError(KindGone, op, err)
}

// Fatal wraps err as a non-retryable backend error.
func Fatal(op string, err error) error {
	return NewError(KindFatal, op, err)
}

// KindOf classifies err. Errors without a *Error in their chain are
// classified from well-known causes, falling back to KindFatal.
func KindOf(err error) Kind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	switch {
	case errors.Is(err, ErrTimeout), errors.Is(err, ErrShortRead),
		errors.Is(err, ErrChecksum), errors.Is(err, ErrNullReply):
		return KindTransient
	case errors.Is(err, ErrNotSupported):
		return KindUnsupported
	case errors.Is(err, ErrDeviceGone), errors.Is(err, ErrClosed):
		return KindGone
	}
	return KindFatal
}
