// Package transport defines the contract between display control and the
// platform mechanisms that reach a monitor.
//
// A Backend enumerates raw Connections. Each Connection can exchange
// DDC/CI requests with one display: read its EDID, get and set VCP
// features, fetch the capability string and read or write tables.
//
//	┌────────────────────────────────┐
//	│   display.Display (retries)    │
//	├────────────────────────────────┤
//	│   transport.Connection         │
//	├───────────┬──────────┬─────────┤
//	│  i2c-dev  │  winapi  │   sim   │
//	└───────────┴──────────┴─────────┘
//
// Backends report failures as *Error values carrying a Kind. The kind tells
// callers whether an exchange is worth retrying, whether the connection is
// gone, or whether the request itself was rejected.
package transport
