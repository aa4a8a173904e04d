// Package log provides structured protocol logging for display control.
//
// This package defines the Logger interface and Event types for capturing
// every DDC/CI exchange, display state change and discovery decision. It is
// separate from operational logging (slog): protocol capture provides a
// complete machine-readable trace for diagnosing misbehaving monitors.
//
// # Basic Usage
//
// Applications configure logging by providing a Logger implementation:
//
//	// For development: log to console via slog
//	cfg.ProtocolLogger = log.NewSlogAdapter(slog.Default())
//
//	// For bug reports: write to binary file
//	cfg.ProtocolLogger, _ = log.NewFileLogger("/tmp/monitors.dlog")
//
//	// Both: use MultiLogger
//	cfg.ProtocolLogger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
// Events are captured at three layers:
//   - Transport: raw request and reply bytes (ExchangeEvent)
//   - Display: decoded values and handle state (ExchangeEvent, StateChangeEvent)
//   - Discovery: enumeration and merge decisions (DiscoveryEvent)
//
// Errors at any layer have a dedicated event type.
//
// # File Format
//
// Log files use CBOR encoding with .dlog extension. The ddc-log CLI tool
// provides viewing, filtering, and export capabilities.
package log
