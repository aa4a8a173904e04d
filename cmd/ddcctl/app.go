package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/displayctl/ddc-go/pkg/config"
	"github.com/displayctl/ddc-go/pkg/discovery"
	"github.com/displayctl/ddc-go/pkg/display"
	"github.com/displayctl/ddc-go/pkg/log"
)

var errNoDisplays = errors.New("no matching displays")

// app is the state shared by every command of one invocation.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	capture *log.FileLogger
	coord   *discovery.Coordinator
	query   discovery.Query
}

func newApp(v *viper.Viper, stderr io.Writer) (*app, error) {
	level, err := parseLevel(v.GetString(keyLogLevel))
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := loadConfig(v)
	if err != nil {
		return nil, err
	}
	applyOverrides(cfg, v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger, query: buildQuery(v)}

	// Only assign the interface when a logger exists; a typed nil would
	// look enabled.
	var plog log.Logger
	if cfg.ProtocolLog != "" {
		a.capture, err = log.NewFileLogger(cfg.ProtocolLog)
		if err != nil {
			return nil, fmt.Errorf("failed to create protocol logger: %w", err)
		}
		plog = a.capture
		logger.Info("protocol logging", "path", cfg.ProtocolLog)
	}
	if level <= slog.LevelDebug {
		debug := log.NewSlogAdapter(logger)
		if plog != nil {
			plog = log.NewMultiLogger(a.capture, debug)
		} else {
			plog = debug
		}
	}

	dc, err := cfg.DiscoveryConfig(logger, plog)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.coord = discovery.New(dc)
	return a, nil
}

// Close flushes the protocol capture, if any.
func (a *app) Close() error {
	if a.capture == nil {
		return nil
	}
	return a.capture.Close()
}

// find discovers displays and keeps those matching the selection flags.
func (a *app) find(ctx context.Context) ([]*display.Display, error) {
	ds, err := a.coord.Find(ctx, a.query)
	if err != nil {
		return nil, err
	}
	if len(ds) == 0 {
		return nil, errNoDisplays
	}
	return ds, nil
}

// each runs fn on every selected display and closes it afterwards. Errors
// do not stop the remaining displays.
func (a *app) each(ctx context.Context, fn func(*display.Display) error) error {
	ds, err := a.find(ctx)
	if err != nil {
		return err
	}
	var errs []error
	for _, d := range ds {
		if err := fn(d); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", d.ID(), err))
		}
		d.Close()
	}
	return errors.Join(errs...)
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

// loadConfig reads --config, or ddcctl.yaml from the working directory or
// the user config directory. No file means defaults.
func loadConfig(v *viper.Viper) (*config.Config, error) {
	path := v.GetString(keyConfig)
	if path == "" {
		found, err := findConfig()
		if err != nil {
			return nil, err
		}
		path = found
	}
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func findConfig() (string, error) {
	fv := viper.New()
	fv.SetConfigName("ddcctl")
	fv.SetConfigType("yaml")
	fv.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		fv.AddConfigPath(filepath.Join(dir, "ddcctl"))
	}
	if err := fv.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("read config: %w", err)
	}
	return fv.ConfigFileUsed(), nil
}

func applyOverrides(cfg *config.Config, v *viper.Viper) {
	if v.IsSet(keyBackend) {
		cfg.Backends = stringList(v, keyBackend)
	}
	if n := v.GetInt(keyRetries); n > 0 {
		cfg.Retry.Attempts = n
	}
	if p := v.GetString(keyRangePolicy); p != "" {
		cfg.RangePolicy = p
	}
	if p := v.GetString(keyProtocolLog); p != "" {
		cfg.ProtocolLog = p
	}
	if v.IsSet(keyBus) {
		cfg.I2C.Buses = stringList(v, keyBus)
	}
}

// stringList reads a list that may come from a repeated flag or from a
// comma-separated environment variable.
func stringList(v *viper.Viper, key string) []string {
	var out []string
	for _, s := range v.GetStringSlice(key) {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func buildQuery(v *viper.Viper) discovery.Query {
	var qs []discovery.Query
	if s := v.GetString(keyID); s != "" {
		qs = append(qs, discovery.ByID(s))
	}
	if s := v.GetString(keyMfg); s != "" {
		qs = append(qs, discovery.ByManufacturer(s))
	}
	if s := v.GetString(keyModel); s != "" {
		qs = append(qs, discovery.ByModel(s))
	}
	if s := v.GetString(keySerial); s != "" {
		qs = append(qs, discovery.BySerial(s))
	}
	return discovery.And(qs...)
}
