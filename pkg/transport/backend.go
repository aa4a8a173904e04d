package transport

import (
	"fmt"
	"slices"
)

// BackendID tags the mechanism a connection came from.
type BackendID string

const (
	// BackendI2CDev talks DDC/CI over Linux i2c-dev buses.
	BackendI2CDev BackendID = "i2c-dev"
	// BackendWinAPI uses the Windows monitor configuration API.
	BackendWinAPI BackendID = "winapi"
	// BackendNvAPI uses the NVIDIA driver I2C API.
	BackendNvAPI BackendID = "nvapi"
	// BackendMacOS uses IOKit on macOS.
	BackendMacOS BackendID = "macos"
	// BackendSim is the in-memory simulator.
	BackendSim BackendID = "sim"
)

var knownBackends = []BackendID{BackendI2CDev, BackendWinAPI, BackendNvAPI, BackendMacOS, BackendSim}

// String returns the tag.
func (b BackendID) String() string {
	return string(b)
}

// ParseBackendID validates a backend tag.
func ParseBackendID(s string) (BackendID, error) {
	id := BackendID(s)
	if !slices.Contains(knownBackends, id) {
		return "", fmt.Errorf("unknown backend %q", s)
	}
	return id, nil
}

// KnownBackends returns all recognised backend tags.
func KnownBackends() []BackendID {
	return slices.Clone(knownBackends)
}
