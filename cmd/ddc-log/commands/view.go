// Package commands implements the ddc-log CLI commands.
package commands

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/displayctl/ddc-go/pkg/log"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	Layer     *log.Layer
	Direction *log.Direction
	Category  *log.Category
	Operation *log.Operation
	DisplayID string
}

func (f ViewFilter) matches(e log.Event) bool {
	lf := log.Filter{
		Layer:     f.Layer,
		Direction: f.Direction,
		Category:  f.Category,
		Operation: f.Operation,
		DisplayID: f.DisplayID,
	}
	return lf.Matches(e)
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// timestamp [display] DIRECTION LAYER Type
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	subject := event.DisplayID
	if subject == "" {
		subject = event.Backend
	}
	if subject == "" {
		subject = "-"
	}

	var typeLabel string
	switch {
	case event.Exchange != nil:
		typeLabel = event.Exchange.Operation.String()
	case event.StateChange != nil:
		typeLabel = "State"
	case event.Discovery != nil:
		typeLabel = event.Discovery.Action.String()
	case event.Error != nil:
		typeLabel = "Error"
	default:
		typeLabel = "Unknown"
	}

	fmt.Fprintf(w, "%s [%s] %-3s %s %s\n", ts, subject, event.Direction.String(), event.Layer.String(), typeLabel)

	switch {
	case event.Exchange != nil:
		formatExchangeDetails(w, event.Exchange)
	case event.StateChange != nil:
		formatStateChangeDetails(w, event.StateChange)
	case event.Discovery != nil:
		formatDiscoveryDetails(w, event.Discovery)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w)
}

func formatExchangeDetails(w io.Writer, ex *log.ExchangeEvent) {
	if ex.Feature != nil {
		fmt.Fprintf(w, "  Feature: 0x%02X\n", *ex.Feature)
	}
	if ex.Attempt > 0 {
		fmt.Fprintf(w, "  Attempt: %d\n", ex.Attempt)
	}
	if len(ex.Data) > 0 {
		fmt.Fprintf(w, "  Data: %s", hex.EncodeToString(ex.Data))
		if ex.Truncated {
			fmt.Fprintf(w, " (truncated)")
		}
		fmt.Fprintln(w)
	}
	if ex.Value != "" {
		fmt.Fprintf(w, "  Value: %s\n", ex.Value)
	}
	if ex.Duration != nil {
		fmt.Fprintf(w, "  Duration: %s\n", formatDuration(*ex.Duration))
	}
}

func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	fmt.Fprintf(w, "  Entity: %s\n", sc.Entity.String())
	if sc.OldState != "" {
		fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
	} else {
		fmt.Fprintf(w, "  -> %s\n", sc.NewState)
	}
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
}

func formatDiscoveryDetails(w io.Writer, d *log.DiscoveryEvent) {
	if d.ConnectionID != "" {
		fmt.Fprintf(w, "  Connection: %s\n", d.ConnectionID)
	}
	if d.Identity != "" {
		fmt.Fprintf(w, "  Identity: %s\n", d.Identity)
	}
	if d.Action == log.DiscoveryEnumerated {
		fmt.Fprintf(w, "  Connections: %d\n", d.Count)
	}
}

func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Layer: %s\n", err.Layer.String())
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Kind != "" {
		fmt.Fprintf(w, "  Kind: %s\n", err.Kind)
	}
	if err.Attempts > 0 {
		fmt.Fprintf(w, "  Attempts: %d\n", err.Attempts)
	}
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// ParseLayer parses a layer name (case-insensitive).
func ParseLayer(s string) (log.Layer, error) {
	switch strings.ToLower(s) {
	case "transport":
		return log.LayerTransport, nil
	case "display":
		return log.LayerDisplay, nil
	case "discovery":
		return log.LayerDiscovery, nil
	default:
		return 0, fmt.Errorf("invalid layer: %s (must be transport, display, or discovery)", s)
	}
}

// ParseDirection parses a direction name (case-insensitive).
func ParseDirection(s string) (log.Direction, error) {
	switch strings.ToLower(s) {
	case "in":
		return log.DirectionIn, nil
	case "out":
		return log.DirectionOut, nil
	default:
		return 0, fmt.Errorf("invalid direction: %s (must be in or out)", s)
	}
}

// ParseCategory parses a category name (case-insensitive).
func ParseCategory(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "exchange":
		return log.CategoryExchange, nil
	case "state":
		return log.CategoryState, nil
	case "discovery":
		return log.CategoryDiscovery, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be exchange, state, discovery, or error)", s)
	}
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if !filter.matches(event) {
			continue
		}
		formatEvent(output, event)
	}

	return nil
}
