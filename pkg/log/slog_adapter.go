package log

import (
	"context"
	"fmt"
	"log/slog"
)

// SlogAdapter writes protocol events to an slog.Logger.
// Useful for development when you want to see exchanges in the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session", event.SessionID),
		slog.String("direction", event.Direction.String()),
		slog.String("layer", event.Layer.String()),
		slog.String("category", event.Category.String()),
	}

	if event.Backend != "" {
		attrs = append(attrs, slog.String("backend", event.Backend))
	}
	if event.DisplayID != "" {
		attrs = append(attrs, slog.String("display", event.DisplayID))
	}

	switch {
	case event.Exchange != nil:
		attrs = append(attrs, slog.String("op", event.Exchange.Operation.String()))
		if event.Exchange.Feature != nil {
			attrs = append(attrs, slog.String("feature", fmt.Sprintf("0x%02X", *event.Exchange.Feature)))
		}
		if event.Exchange.Attempt > 0 {
			attrs = append(attrs, slog.Int("attempt", event.Exchange.Attempt))
		}
		if len(event.Exchange.Data) > 0 {
			attrs = append(attrs, slog.String("data", fmt.Sprintf("% X", event.Exchange.Data)))
		}
		if event.Exchange.Value != "" {
			attrs = append(attrs, slog.String("value", event.Exchange.Value))
		}
		if event.Exchange.Duration != nil {
			attrs = append(attrs, slog.Duration("duration", *event.Exchange.Duration))
		}
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("entity", event.StateChange.Entity.String()),
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Discovery != nil:
		attrs = append(attrs, slog.String("action", event.Discovery.Action.String()))
		if event.Discovery.ConnectionID != "" {
			attrs = append(attrs, slog.String("conn_id", event.Discovery.ConnectionID))
		}
		if event.Discovery.Identity != "" {
			attrs = append(attrs, slog.String("identity", event.Discovery.Identity))
		}
		if event.Discovery.Action == DiscoveryEnumerated {
			attrs = append(attrs, slog.Int("count", event.Discovery.Count))
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_layer", event.Error.Layer.String()),
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
		)
		if event.Error.Kind != "" {
			attrs = append(attrs, slog.String("error_kind", event.Error.Kind))
		}
		if event.Error.Attempts > 0 {
			attrs = append(attrs, slog.Int("attempts", event.Error.Attempts))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "protocol", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
