package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/displayctl/ddc-go/pkg/log"
)

func TestCollectStats(t *testing.T) {
	ts := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	events := append(sampleEvents(),
		log.Event{
			Timestamp: ts.Add(2 * time.Second),
			Direction: log.DirectionOut,
			Layer:     log.LayerTransport,
			Category:  log.CategoryExchange,
			DisplayID: "sim:1",
			Exchange:  log.NewExchange(log.OpGetVCP, feature(0x10), 2, nil),
		},
		log.Event{
			Timestamp: ts.Add(3 * time.Second),
			Layer:     log.LayerDisplay,
			Category:  log.CategoryError,
			DisplayID: "sim:1",
			Error:     &log.ErrorEventData{Layer: log.LayerDisplay, Message: "timeout"},
		},
	)
	path := createTestLogFile(t, events)

	stats, err := CollectStats(path)
	if err != nil {
		t.Fatalf("CollectStats failed: %v", err)
	}

	if stats.TotalEvents != 5 {
		t.Errorf("TotalEvents = %d, want 5", stats.TotalEvents)
	}
	if stats.Errors != 1 {
		t.Errorf("Errors = %d, want 1", stats.Errors)
	}
	if got := stats.EventsByLayer[log.LayerTransport]; got != 2 {
		t.Errorf("transport events = %d, want 2", got)
	}
	if got := stats.EventsByCategory[log.CategoryDiscovery]; got != 1 {
		t.Errorf("discovery events = %d, want 1", got)
	}
	if !stats.TimeRange.Start.Equal(ts) || !stats.TimeRange.End.Equal(ts.Add(3*time.Second)) {
		t.Errorf("unexpected time range %v - %v", stats.TimeRange.Start, stats.TimeRange.End)
	}

	if len(stats.Displays) != 1 {
		t.Fatalf("expected 1 display, got %d", len(stats.Displays))
	}
	ds := stats.Displays["sim:1"]
	if ds.Events != 4 || ds.Requests != 2 || ds.Retries != 1 || ds.Errors != 1 {
		t.Errorf("unexpected display stats %+v", ds)
	}
	if ds.Backend != "sim" {
		t.Errorf("Backend = %q, want sim", ds.Backend)
	}
}

func TestRunStatsOutput(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}
	output := buf.String()

	for _, want := range []string{
		"Total Events: 3",
		"TRANSPORT:",
		"DISCOVERY:",
		"EXCHANGE:",
		"Displays: 1",
		"[sim:1] 2 events, 1 requests, 0 retries",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got:\n%s", want, output)
		}
	}
	if strings.Contains(output, "Errors:") {
		t.Errorf("did not expect an error count, got:\n%s", output)
	}
}

func TestRunStatsEmptyFile(t *testing.T) {
	path := createTestLogFile(t, nil)

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Total Events: 0") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}
