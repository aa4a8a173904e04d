package log

import (
	"testing"
	"time"
)

// recordingLogger records events for testing
type recordingLogger struct {
	events []Event
}

func (m *recordingLogger) Log(event Event) {
	m.events = append(m.events, event)
}

func TestMultiLoggerCallsAll(t *testing.T) {
	rec1 := &recordingLogger{}
	rec2 := &recordingLogger{}

	multi := NewMultiLogger(rec1, nil, rec2)
	if multi.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", multi.Len())
	}

	multi.Log(Event{Timestamp: time.Now(), SessionID: "session-123"})

	for i, rec := range []*recordingLogger{rec1, rec2} {
		if len(rec.events) != 1 {
			t.Errorf("logger %d: got %d events, want 1", i, len(rec.events))
			continue
		}
		if rec.events[0].SessionID != "session-123" {
			t.Errorf("logger %d: SessionID = %q, want %q", i, rec.events[0].SessionID, "session-123")
		}
	}
}

func TestMultiLoggerEmptyList(t *testing.T) {
	NewMultiLogger().Log(Event{SessionID: "x"})
}
