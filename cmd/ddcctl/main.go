// Command ddcctl discovers displays and reads or writes their DDC/CI
// features.
//
// Settings come from flags, DDCCTL_* environment variables and an optional
// YAML configuration file, in that order of precedence.
//
// Usage:
//
//	ddcctl [flags] <command> [args]
//
// Examples:
//
//	# List displays found on all configured backends
//	ddcctl list
//
//	# Read brightness and contrast of every Dell monitor
//	ddcctl --mfg DEL get Luminance Contrast
//
//	# Switch one display to input 0x11 and keep a protocol capture
//	ddcctl --id i2c-dev:7 --protocol-log /tmp/ddc.dlog set InputSource 0x11
//
//	# Interactive shell against the simulated backend
//	DDCCTL_BACKEND=sim ddcctl shell
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is the ddcctl release, set by the linker.
var Version = "dev"

const envPrefix = "DDCCTL"

// Flag keys, shared with viper.
const (
	keyConfig      = "config"
	keyLogLevel    = "log-level"
	keyProtocolLog = "protocol-log"
	keyBackend     = "backend"
	keyRetries     = "retries"
	keyRangePolicy = "range-policy"
	keyBus         = "bus"
	keyID          = "id"
	keyMfg         = "mfg"
	keyModel       = "model"
	keySerial      = "serial"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

type cli struct {
	v   *viper.Viper
	app *app
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}

	root := &cobra.Command{
		Use:   "ddcctl",
		Short: "Discover and control displays over DDC/CI",
		Long: `ddcctl enumerates displays on the configured backends, merges
connections that reach the same monitor, and reads or writes VCP features.`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  c.setup,
		PersistentPostRunE: c.teardown,
	}

	f := root.PersistentFlags()
	f.String(keyConfig, "", "config file (default: ddcctl.yaml in . or the user config dir)")
	f.String(keyLogLevel, "warn", "log level: debug, info, warn, error")
	f.String(keyProtocolLog, "", "write a protocol capture (.dlog) to this file")
	f.StringSlice(keyBackend, nil, "backends to query, in order (i2c-dev, sim)")
	f.Int(keyRetries, 0, "attempts per operation (0 keeps the configured value)")
	f.String(keyRangePolicy, "", "out-of-range replies: clamp or strict")
	f.StringSlice(keyBus, nil, "restrict i2c-dev to these buses")
	f.String(keyID, "", "select the display with this id")
	f.String(keyMfg, "", "select displays by EDID manufacturer")
	f.String(keyModel, "", "select displays by model name")
	f.String(keySerial, "", "select displays by serial")

	c.v.SetEnvPrefix(envPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()
	_ = c.v.BindPFlags(f)

	root.AddCommand(
		newVersionCmd(),
		newListCmd(c),
		newCapsCmd(c),
		newGetCmd(c),
		newSetCmd(c),
		newTableCmd(c),
		newSaveCmd(c),
		newMCCSCmd(c),
		newTimingCmd(c),
		newShellCmd(c),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}
	a, err := newApp(c.v, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	c.app = a
	return nil
}

func (c *cli) teardown(cmd *cobra.Command, args []string) error {
	if c.app == nil {
		return nil
	}
	err := c.app.Close()
	c.app = nil
	return err
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ddcctl %s\n", Version)
		},
	}
}
