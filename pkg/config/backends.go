package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/displayctl/ddc-go/pkg/backend/i2cdev"
	"github.com/displayctl/ddc-go/pkg/backend/sim"
	"github.com/displayctl/ddc-go/pkg/discovery"
	"github.com/displayctl/ddc-go/pkg/edid"
	"github.com/displayctl/ddc-go/pkg/log"
	"github.com/displayctl/ddc-go/pkg/transport"
	"github.com/displayctl/ddc-go/pkg/vcp"
	"github.com/displayctl/ddc-go/pkg/version"
)

// Available lists the backends built into this module.
var Available = []transport.BackendID{transport.BackendI2CDev, transport.BackendSim}

// BuildBackends creates the configured backends, in order.
func (c *Config) BuildBackends(logger *slog.Logger) ([]transport.Backend, error) {
	var out []transport.Backend
	for _, name := range c.Backends {
		id, err := transport.ParseBackendID(name)
		if err != nil {
			return nil, err
		}
		switch id {
		case transport.BackendI2CDev:
			out = append(out, i2cdev.New(i2cdev.Options{
				Buses:      c.I2C.Buses,
				ReplyDelay: time.Duration(c.I2C.ReplyDelay),
				Logger:     logger,
			}))
		case transport.BackendSim:
			monitors, err := c.Sim.build()
			if err != nil {
				return nil, err
			}
			out = append(out, sim.New(sim.Options{Monitors: monitors}))
		default:
			return nil, fmt.Errorf("backend %s is not available in this build", id)
		}
	}
	return out, nil
}

// DiscoveryConfig builds a coordinator configuration.
func (c *Config) DiscoveryConfig(logger *slog.Logger, plog log.Logger) (discovery.Config, error) {
	backends, err := c.BuildBackends(logger)
	if err != nil {
		return discovery.Config{}, err
	}
	cfg := discovery.DefaultConfig()
	cfg.Backends = backends
	cfg.Retry = c.Policy()
	cfg.RangePolicy = c.Range()
	cfg.Logger = logger
	cfg.ProtocolLogger = plog
	return cfg, nil
}

func (s SimConfig) build() ([]*sim.Monitor, error) {
	var out []*sim.Monitor
	for _, mc := range s.Monitors {
		m := sim.NewMonitor(mc.ID, edid.Info{
			ManufacturerID: mc.Manufacturer,
			ProductCode:    mc.Product,
			Serial:         mc.Serial,
			SerialString:   mc.SerialString,
			ModelName:      mc.Model,
			Year:           mc.Year,
		})
		if mc.MCCSVersion != "" {
			v, err := version.Parse(mc.MCCSVersion)
			if err != nil {
				return nil, err
			}
			m.SetMCCSVersion(v)
		}
		for key, fc := range mc.Features {
			code, err := vcp.ParseFeatureCode(key)
			if err != nil {
				return nil, err
			}
			f := sim.Feature{ReadOnly: fc.ReadOnly}
			for _, v := range fc.Values {
				f.Values = append(f.Values, byte(v))
			}
			if fc.Value != nil {
				f.Value = vcp.NonContinuous(*fc.Value)
			} else {
				f.Value = vcp.Continuous(fc.Current, fc.Maximum)
			}
			m.SetFeature(code, f)
		}
		if mc.Capabilities != "" {
			m.SetCapabilities(mc.Capabilities)
		}
		out = append(out, m)
	}
	return out, nil
}
