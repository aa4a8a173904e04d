// Package vcp models MCCS Virtual Control Panel values.
//
// A VCP feature is addressed by a one-byte FeatureCode. Its value is one of
// three kinds:
//   - Continuous: a current level and a maximum (brightness, contrast)
//   - NonContinuous: a single enumerated byte (input source, power mode)
//   - Table: an opaque byte sequence read in chunks (LUTs)
//
// Encode and Decoder convert between Values and the raw reply bytes that
// transport backends exchange with the monitor. Continuous values travel as
// two big-endian 16-bit fields, maximum first.
package vcp
