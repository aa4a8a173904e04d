package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/displayctl/ddc-go/pkg/log"
)

// RunExport exports the log file to the specified format. An empty output
// writes to w.
func RunExport(path, format, output string, w io.Writer) error {
	if format != "jsonl" && format != "csv" {
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}

	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if format == "csv" {
		return exportCSV(reader, w)
	}
	return exportJSONL(reader, w)
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(event); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
	return nil
}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"timestamp", "session_id", "direction", "layer", "category", "backend", "display_id", "type", "feature", "attempt", "value"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		eventType := "unknown"
		var feature, attempt, value string
		switch {
		case event.Exchange != nil:
			eventType = event.Exchange.Operation.String()
			if event.Exchange.Feature != nil {
				feature = fmt.Sprintf("0x%02X", *event.Exchange.Feature)
			}
			if event.Exchange.Attempt > 0 {
				attempt = strconv.Itoa(event.Exchange.Attempt)
			}
			value = event.Exchange.Value
		case event.StateChange != nil:
			eventType = "state"
			value = event.StateChange.NewState
		case event.Discovery != nil:
			eventType = event.Discovery.Action.String()
			value = event.Discovery.Identity
		case event.Error != nil:
			eventType = "error"
			value = event.Error.Message
		}

		row := []string{
			event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
			event.SessionID,
			event.Direction.String(),
			event.Layer.String(),
			event.Category.String(),
			event.Backend,
			event.DisplayID,
			eventType,
			feature,
			attempt,
			value,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}
