package display

import (
	"context"
	"errors"
	"fmt"

	"github.com/displayctl/ddc-go/pkg/caps"
	"github.com/displayctl/ddc-go/pkg/transport"
	"github.com/displayctl/ddc-go/pkg/vcp"
)

// Error categories. Every *ControlError unwraps to exactly one of these.
var (
	// ErrConnectionClosed means the handle is closed, either explicitly or
	// because the connection went away.
	ErrConnectionClosed = errors.New("display connection closed")

	// ErrRetriesExhausted means every attempt failed transiently.
	ErrRetriesExhausted = errors.New("retries exhausted")

	// ErrUnsupportedFeature means the display rejected the feature.
	ErrUnsupportedFeature = errors.New("feature not supported by display")

	// ErrInvalidData means the exchange worked but its data was unusable.
	ErrInvalidData = errors.New("invalid display data")

	// ErrBackend means the backend failed in a way retrying cannot fix.
	ErrBackend = errors.New("backend failure")
)

// ControlError reports a failed display operation.
type ControlError struct {
	// Op is the operation name, such as "get_vcp".
	Op string

	// Feature is the VCP code involved, if HasFeature.
	Feature    vcp.FeatureCode
	HasFeature bool

	// Kind classifies the failure.
	Kind transport.Kind

	// Attempts is the number of transport exchanges attempted.
	Attempts int

	// Err is the underlying cause.
	Err error
}

func (e *ControlError) Error() string {
	target := e.Op
	if e.HasFeature {
		target = fmt.Sprintf("%s %s", e.Op, e.Feature)
	}
	switch e.Attempts {
	case 0:
		return fmt.Sprintf("%s: %v", target, e.Err)
	case 1:
		return fmt.Sprintf("%s failed: %v", target, e.Err)
	default:
		return fmt.Sprintf("%s failed after %d attempts: %v", target, e.Attempts, e.Err)
	}
}

// Unwrap returns the category sentinel and the underlying cause.
func (e *ControlError) Unwrap() []error {
	return []error{e.category(), e.Err}
}

func (e *ControlError) category() error {
	switch e.Kind {
	case transport.KindTransient:
		return ErrRetriesExhausted
	case transport.KindGone:
		return ErrConnectionClosed
	case transport.KindUnsupported:
		return ErrUnsupportedFeature
	case transport.KindData:
		return ErrInvalidData
	default:
		return ErrBackend
	}
}

// classify maps an operation error to a kind. Decoding problems that stem
// from a garbled reply are transient; value and table problems are data
// errors.
func classify(err error) transport.Kind {
	switch {
	case errors.Is(err, vcp.ErrMalformedReply), errors.Is(err, vcp.ErrTableOffset):
		return transport.KindTransient
	case errors.Is(err, vcp.ErrValueOutOfRange), errors.Is(err, vcp.ErrIncompleteTable),
		errors.Is(err, vcp.ErrTableTooLarge), errors.Is(err, caps.ErrSyntax):
		return transport.KindData
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return transport.KindFatal
	}
	return transport.KindOf(err)
}

func retryable(err error) bool {
	return classify(err).Retryable()
}
