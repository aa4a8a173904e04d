// Package discovery finds displays across transport backends.
//
// A Coordinator queries every configured backend, reads the EDID of each
// connection it returns and merges connections that reach the same physical
// display into one display.Display handle.
//
// # Merging
//
// Connections are merged through an index keyed by identity.Key:
// manufacturer, product code and serial, or manufacturer, product code and
// model name when the EDID carries no serial. Connections without an EDID,
// and connections whose EDID failed its checksum, are never merged.
//
// Backends are merged in the order they were configured. When a connection
// matches one already collected, the earlier connection is kept unless it is
// no longer valid; the later one is closed and recorded as an Alternate of
// the kept display.
//
// # Failures
//
// A backend that fails to enumerate contributes no displays and is reported
// in Result.Failures. It never aborts the pass.
//
// # Display IDs
//
// Each display gets an id of the form "<backend>:<connection>", where the
// connection part is the backend's connection id made unique within the
// pass, or "index:N" when the backend gave none.
package discovery
