package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/displayctl/ddc-go/pkg/log"
)

func TestFormatExchangeEvent(t *testing.T) {
	ts := time.Date(2026, 3, 2, 9, 30, 1, 123456000, time.UTC)
	d := 42 * time.Millisecond
	event := log.Event{
		Timestamp: ts,
		Direction: log.DirectionIn,
		Layer:     log.LayerTransport,
		Category:  log.CategoryExchange,
		DisplayID: "i2c-dev:7",
		Exchange: &log.ExchangeEvent{
			Operation: log.OpGetVCP,
			Feature:   feature(0x12),
			Attempt:   2,
			Data:      []byte{0x00, 0x64, 0x00, 0x4b},
			Duration:  &d,
		},
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	for _, want := range []string{
		"2026-03-02T09:30:01.123456Z",
		"[i2c-dev:7]",
		"IN  TRANSPORT GET_VCP",
		"Feature: 0x12",
		"Attempt: 2",
		"Data: 0064004b",
		"Duration: 42.000ms",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got:\n%s", want, output)
		}
	}
}

func TestFormatTruncatedExchange(t *testing.T) {
	event := log.Event{
		Exchange: log.NewExchange(log.OpCapabilities, nil, 1, make([]byte, log.MaxDataSize+10)),
	}
	var buf bytes.Buffer
	formatEvent(&buf, event)
	if !strings.Contains(buf.String(), "(truncated)") {
		t.Errorf("expected truncation marker, got: %s", buf.String())
	}
}

func TestFormatStateChangeEvent(t *testing.T) {
	event := log.Event{
		Layer:     log.LayerDisplay,
		Category:  log.CategoryState,
		DisplayID: "sim:1",
		StateChange: &log.StateChangeEvent{
			Entity:   log.StateEntityDisplay,
			OldState: "BUSY",
			NewState: "CLOSED",
			Reason:   "device gone",
		},
	}
	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	if !strings.Contains(output, "BUSY -> CLOSED") {
		t.Errorf("expected state transition, got: %s", output)
	}
	if !strings.Contains(output, "Reason: device gone") {
		t.Errorf("expected reason, got: %s", output)
	}
}

func TestFormatDiscoveryEvent(t *testing.T) {
	event := log.Event{
		Layer:     log.LayerDiscovery,
		Category:  log.CategoryDiscovery,
		Backend:   "i2c-dev",
		Discovery: &log.DiscoveryEvent{Action: log.DiscoveryEnumerated, Count: 3},
	}
	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	if !strings.Contains(output, "[i2c-dev]") {
		t.Errorf("expected backend as subject, got: %s", output)
	}
	if !strings.Contains(output, "ENUMERATED") || !strings.Contains(output, "Connections: 3") {
		t.Errorf("expected enumeration details, got: %s", output)
	}
}

func TestFormatErrorEvent(t *testing.T) {
	event := log.Event{
		Category: log.CategoryError,
		Error: &log.ErrorEventData{
			Layer:    log.LayerDisplay,
			Message:  "timeout",
			Kind:     "transient",
			Attempts: 3,
			Context:  "get_vcp",
		},
	}
	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	for _, want := range []string{"[-]", "Error", "Message: timeout", "Kind: transient", "Attempts: 3", "Context: get_vcp"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got:\n%s", want, output)
		}
	}
}

func TestRunViewFilters(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())

	layer := log.LayerDiscovery
	var buf bytes.Buffer
	if err := RunView(path, ViewFilter{Layer: &layer}, &buf); err != nil {
		t.Fatalf("RunView failed: %v", err)
	}
	if strings.Count(buf.String(), "DISCOVERY") != 1 || strings.Contains(buf.String(), "GET_VCP") {
		t.Errorf("expected only the discovery event, got:\n%s", buf.String())
	}

	op := log.OpGetVCP
	dir := log.DirectionOut
	buf.Reset()
	if err := RunView(path, ViewFilter{Operation: &op, Direction: &dir}, &buf); err != nil {
		t.Fatalf("RunView failed: %v", err)
	}
	if strings.Count(buf.String(), "GET_VCP") != 1 {
		t.Errorf("expected one outgoing GET_VCP, got:\n%s", buf.String())
	}

	buf.Reset()
	if err := RunView(path, ViewFilter{DisplayID: "sim:1"}, &buf); err != nil {
		t.Fatalf("RunView failed: %v", err)
	}
	if strings.Count(buf.String(), "[sim:1]") != 2 {
		t.Errorf("expected two events for sim:1, got:\n%s", buf.String())
	}
}

func TestParseLayer(t *testing.T) {
	tests := []struct {
		input   string
		want    log.Layer
		wantErr bool
	}{
		{"transport", log.LayerTransport, false},
		{"DISPLAY", log.LayerDisplay, false},
		{"Discovery", log.LayerDiscovery, false},
		{"wire", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseLayer(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLayer(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLayer(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseDirection(t *testing.T) {
	if d, err := ParseDirection("OUT"); err != nil || d != log.DirectionOut {
		t.Errorf("ParseDirection(OUT) = %v, %v", d, err)
	}
	if _, err := ParseDirection("sideways"); err == nil {
		t.Error("expected error for invalid direction")
	}
}

func TestParseCategory(t *testing.T) {
	tests := map[string]log.Category{
		"exchange":  log.CategoryExchange,
		"state":     log.CategoryState,
		"discovery": log.CategoryDiscovery,
		"ERROR":     log.CategoryError,
	}
	for input, want := range tests {
		got, err := ParseCategory(input)
		if err != nil || got != want {
			t.Errorf("ParseCategory(%q) = %v, %v; want %v", input, got, err, want)
		}
	}
	if _, err := ParseCategory("snapshot"); err == nil {
		t.Error("expected error for invalid category")
	}
}
