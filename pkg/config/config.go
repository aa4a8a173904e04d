// Package config loads the YAML configuration shared by the command line
// tools: which backends to use, the retry and range policies, protocol
// capture, I2C options and simulated monitors.
//
// Example:
//
//	backends: [i2c-dev]
//	retry:
//	  attempts: 3
//	  delay: 50ms
//	  jitter: 0.2
//	range_policy: clamp
//	protocol_log: /tmp/ddc.dlog
//	i2c:
//	  buses: ["/dev/i2c-4"]
//	  reply_delay: 40ms
package config

import (
	"fmt"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/displayctl/ddc-go/pkg/retry"
	"github.com/displayctl/ddc-go/pkg/transport"
	"github.com/displayctl/ddc-go/pkg/vcp"
	"github.com/displayctl/ddc-go/pkg/version"
)

// Config is the file configuration.
type Config struct {
	// Backends are queried in order. The first backend to reach a display
	// owns it.
	Backends []string `yaml:"backends"`

	Retry RetryConfig `yaml:"retry"`

	// RangePolicy is "clamp" or "strict".
	RangePolicy string `yaml:"range_policy"`

	// ProtocolLog is the path of a .dlog capture file. Empty disables
	// capture.
	ProtocolLog string `yaml:"protocol_log,omitempty"`

	I2C I2CConfig `yaml:"i2c"`
	Sim SimConfig `yaml:"sim,omitempty"`
}

// RetryConfig bounds retries of transient failures.
type RetryConfig struct {
	Attempts int      `yaml:"attempts"`
	Delay    Duration `yaml:"delay"`

	// Jitter lengthens each delay by up to this fraction of it, in [0, 1].
	Jitter float64 `yaml:"jitter,omitempty"`
}

// I2CConfig configures the i2c-dev backend.
type I2CConfig struct {
	// Buses restricts enumeration to the named buses. Empty means all.
	Buses      []string `yaml:"buses,omitempty"`
	ReplyDelay Duration `yaml:"reply_delay,omitempty"`
}

// SimConfig configures the simulated backend.
type SimConfig struct {
	Monitors []MonitorConfig `yaml:"monitors,omitempty"`
}

// MonitorConfig describes one simulated monitor.
type MonitorConfig struct {
	ID           string `yaml:"id"`
	Manufacturer string `yaml:"manufacturer"`
	Product      uint16 `yaml:"product"`
	Serial       uint32 `yaml:"serial,omitempty"`
	SerialString string `yaml:"serial_string,omitempty"`
	Model        string `yaml:"model,omitempty"`
	Year         uint16 `yaml:"year,omitempty"`
	MCCSVersion  string `yaml:"mccs_version,omitempty"`

	// Capabilities overrides the generated capability string.
	Capabilities string `yaml:"capabilities,omitempty"`

	// Features are keyed by feature name or hex code.
	Features map[string]FeatureConfig `yaml:"features,omitempty"`
}

// FeatureConfig is a simulated feature. Value selects a non-continuous
// feature; otherwise Current and Maximum describe a continuous one.
type FeatureConfig struct {
	Current  uint16 `yaml:"current,omitempty"`
	Maximum  uint16 `yaml:"maximum,omitempty"`
	Value    *uint8 `yaml:"value,omitempty"`
	Values   []int  `yaml:"values,omitempty,flow"`
	ReadOnly bool   `yaml:"read_only,omitempty"`
}

// Duration is a time.Duration written as a Go duration string.
type Duration time.Duration

// UnmarshalYAML accepts strings such as "50ms".
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalYAML writes the duration string.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// LoadError reports a configuration that could not be loaded.
type LoadError struct {
	// File is the path of the configuration, if loaded from disk.
	File string

	// Message describes the error.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	if e.File == "" {
		return "config: " + msg
	}
	return e.File + ": " + msg
}

func (e *LoadError) Unwrap() error { return e.Cause }

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Backends: []string{string(transport.BackendI2CDev)},
		Retry: RetryConfig{
			Attempts: retry.DefaultAttempts,
			Delay:    Duration(retry.DefaultDelay),
		},
		RangePolicy: vcp.RangeClamp.String(),
	}
}

// Parse reads a configuration from YAML. Keys that are absent keep their
// defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &LoadError{Message: "failed to parse YAML", Cause: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{File: path, Message: "failed to read file", Cause: err}
	}
	cfg, err := Parse(data)
	if err != nil {
		if le, ok := err.(*LoadError); ok {
			le.File = path
		}
		return nil, err
	}
	return cfg, nil
}

// Marshal writes the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if len(c.Backends) == 0 {
		return &LoadError{Message: "at least one backend is required"}
	}
	var seen []transport.BackendID
	for _, name := range c.Backends {
		id, err := transport.ParseBackendID(name)
		if err != nil {
			return &LoadError{Message: "invalid backend", Cause: err}
		}
		if !slices.Contains(Available, id) {
			return &LoadError{Message: fmt.Sprintf("backend %s is not available in this build", id)}
		}
		if slices.Contains(seen, id) {
			return &LoadError{Message: fmt.Sprintf("backend %s listed twice", id)}
		}
		seen = append(seen, id)
	}

	if c.Retry.Attempts < 0 {
		return &LoadError{Message: fmt.Sprintf("retry attempts must not be negative, got %d", c.Retry.Attempts)}
	}
	if c.Retry.Delay < 0 {
		return &LoadError{Message: "retry delay must not be negative"}
	}
	if c.Retry.Jitter < 0 || c.Retry.Jitter > 1 {
		return &LoadError{Message: fmt.Sprintf("retry jitter must be between 0 and 1, got %g", c.Retry.Jitter)}
	}
	if _, err := vcp.ParseRangePolicy(c.RangePolicy); err != nil {
		return &LoadError{Message: "invalid range_policy", Cause: err}
	}

	ids := make(map[string]bool)
	for i, m := range c.Sim.Monitors {
		if ids[m.ID] {
			return &LoadError{Message: fmt.Sprintf("sim monitor %d: duplicate id %q", i, m.ID)}
		}
		ids[m.ID] = true
		if len(m.Manufacturer) != 3 {
			return &LoadError{Message: fmt.Sprintf("sim monitor %d: manufacturer must be three letters, got %q", i, m.Manufacturer)}
		}
		if m.MCCSVersion != "" {
			if _, err := version.Parse(m.MCCSVersion); err != nil {
				return &LoadError{Message: fmt.Sprintf("sim monitor %d", i), Cause: err}
			}
		}
		for key, f := range m.Features {
			if _, err := vcp.ParseFeatureCode(key); err != nil {
				return &LoadError{Message: fmt.Sprintf("sim monitor %d", i), Cause: err}
			}
			for _, v := range f.Values {
				if v < 0 || v > 0xFF {
					return &LoadError{Message: fmt.Sprintf("sim monitor %d: feature %s value %d out of byte range", i, key, v)}
				}
			}
			if f.Value == nil && f.Current > f.Maximum {
				return &LoadError{Message: fmt.Sprintf("sim monitor %d: feature %s current %d exceeds maximum %d", i, key, f.Current, f.Maximum)}
			}
		}
	}
	return nil
}

// Policy returns the retry policy.
func (c *Config) Policy() retry.Policy {
	return retry.Policy{
		Attempts: c.Retry.Attempts,
		Delay:    time.Duration(c.Retry.Delay),
		Jitter:   c.Retry.Jitter,
	}
}

// Range returns the parsed range policy. Validate reports invalid values;
// here they fall back to clamping.
func (c *Config) Range() vcp.RangePolicy {
	p, _ := vcp.ParseRangePolicy(c.RangePolicy)
	return p
}
