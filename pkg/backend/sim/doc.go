// Package sim provides an in-memory transport backend with simulated
// monitors.
//
// Simulated monitors hold feature values, tables and a capability string,
// and can be told to misbehave through Faults: transient timeouts, garbled
// replies, rejected features, unreadable EDID or a removed device. The same
// Monitor can be attached to several backends to model one display reached
// through more than one transport.
//
// Example:
//
//	m := sim.NewMonitor("1", edid.Info{ManufacturerID: "DEL", ProductCode: 0x4123, Serial: 42, ModelName: "U2720Q"})
//	b := sim.New(sim.Options{Monitors: []*sim.Monitor{m}})
//	coord := discovery.New(discovery.Config{Backends: []transport.Backend{b}})
package sim
