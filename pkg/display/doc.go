// Package display provides the handle through which a discovered monitor
// is controlled.
//
// A Display owns exactly one transport connection. Operations on a handle
// are serialized; transient failures are retried under a bounded policy and
// every failure is reported as a *ControlError carrying its classification
// and the number of attempts made.
//
// # States
//
//	OPEN ──op──► BUSY ──done──► OPEN
//	  │                          │
//	  └──── connection gone ─────┴──► CLOSED
//	  └──── Close() ─────────────────► CLOSED
//
// CLOSED is terminal. Operations on a closed handle fail with
// ErrConnectionClosed without touching the transport.
package display
