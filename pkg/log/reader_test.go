package log

import (
	"io"
	"path/filepath"
	"testing"
	"time"
)

func createTestLogFile(t *testing.T, events []Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.dlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create test log: %v", err)
	}

	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

func readAll(t *testing.T, r *Reader) []Event {
	t.Helper()
	var read []Event
	for {
		event, err := r.Next()
		if err == io.EOF {
			return read
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		read = append(read, event)
	}
}

func TestReaderIteratesEvents(t *testing.T) {
	events := []Event{
		{Timestamp: time.Now(), SessionID: "s-1", Direction: DirectionOut, Layer: LayerTransport, Category: CategoryExchange},
		{Timestamp: time.Now(), SessionID: "s-2", Direction: DirectionIn, Layer: LayerDisplay, Category: CategoryExchange},
		{Timestamp: time.Now(), SessionID: "s-3", Direction: DirectionIn, Layer: LayerDiscovery, Category: CategoryDiscovery},
	}

	reader, err := NewReader(createTestLogFile(t, events))
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	read := readAll(t, reader)
	if len(read) != 3 {
		t.Fatalf("got %d events, want 3", len(read))
	}
	if read[0].SessionID != "s-1" {
		t.Errorf("first event SessionID = %q, want %q", read[0].SessionID, "s-1")
	}
	if read[2].SessionID != "s-3" {
		t.Errorf("last event SessionID = %q, want %q", read[2].SessionID, "s-3")
	}
}

func TestReaderHandlesEmptyFile(t *testing.T) {
	reader, err := NewReader(createTestLogFile(t, nil))
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	if _, err := reader.Next(); err != io.EOF {
		t.Errorf("Next on empty file = %v, want io.EOF", err)
	}
}

func TestReaderMissingFile(t *testing.T) {
	if _, err := NewReader(filepath.Join(t.TempDir(), "missing.dlog")); err == nil {
		t.Error("NewReader should fail for a missing file")
	}
}

func TestFilteredReader(t *testing.T) {
	base := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	events := []Event{
		{Timestamp: base, SessionID: "a", DisplayID: "sim:1", Backend: "sim", Category: CategoryExchange,
			Exchange: &ExchangeEvent{Operation: OpGetVCP}},
		{Timestamp: base.Add(time.Second), SessionID: "a", DisplayID: "sim:1", Backend: "sim", Category: CategoryExchange,
			Exchange: &ExchangeEvent{Operation: OpSetVCP}},
		{Timestamp: base.Add(2 * time.Second), SessionID: "b", DisplayID: "i2c-dev:4", Backend: "i2c-dev", Category: CategoryError,
			Error: &ErrorEventData{Message: "gone"}},
		{Timestamp: base.Add(3 * time.Second), SessionID: "d", Layer: LayerDiscovery, Category: CategoryDiscovery,
			Discovery: &DiscoveryEvent{Action: DiscoveryAdded}},
	}
	path := createTestLogFile(t, events)

	getVCP := OpGetVCP
	errCat := CategoryError
	discovery := LayerDiscovery
	start := base.Add(time.Second)
	end := base.Add(3 * time.Second)

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"all", Filter{}, []string{"a", "a", "b", "d"}},
		{"session", Filter{SessionID: "b"}, []string{"b"}},
		{"display", Filter{DisplayID: "sim:1"}, []string{"a", "a"}},
		{"backend", Filter{Backend: "i2c-dev"}, []string{"b"}},
		{"operation", Filter{Operation: &getVCP}, []string{"a"}},
		{"category", Filter{Category: &errCat}, []string{"b"}},
		{"layer", Filter{Layer: &discovery}, []string{"d"}},
		{"time window", Filter{TimeStart: &start, TimeEnd: &end}, []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader, err := NewFilteredReader(path, tt.filter)
			if err != nil {
				t.Fatalf("NewFilteredReader failed: %v", err)
			}
			defer reader.Close()

			read := readAll(t, reader)
			if len(read) != len(tt.want) {
				t.Fatalf("got %d events, want %d", len(read), len(tt.want))
			}
			for i, e := range read {
				if e.SessionID != tt.want[i] {
					t.Errorf("event %d SessionID = %q, want %q", i, e.SessionID, tt.want[i])
				}
			}
		})
	}
}
