// Command ddc-log views and analyzes DDC/CI protocol capture files.
//
// Capture files are written by ddcctl with --protocol-log, or by any
// program that installs a log.FileLogger on its displays.
//
// Usage:
//
//	ddc-log <command> [flags] <file.dlog>
//
// Examples:
//
//	# View all events
//	ddc-log view session.dlog
//
//	# View only retries of outgoing requests for one display
//	ddc-log view --display i2c-dev:7 --direction out session.dlog
//
//	# Export to CSV
//	ddc-log export --format csv -o session.csv session.dlog
//
//	# Keep only the capability exchanges
//	ddc-log filter --operation capabilities -o caps.dlog session.dlog
//
//	# Show statistics
//	ddc-log stats session.dlog
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/displayctl/ddc-go/cmd/ddc-log/commands"
	"github.com/displayctl/ddc-go/pkg/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ddc-log",
		Short:         "DDC/CI protocol log analyzer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newViewCmd(), newExportCmd(), newFilterCmd(), newStatsCmd())
	return root
}

func newViewCmd() *cobra.Command {
	var layer, direction, category, operation, display string
	cmd := &cobra.Command{
		Use:   "view [flags] <file.dlog>",
		Short: "View log file in human-readable format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter commands.ViewFilter
			filter.DisplayID = display
			if layer != "" {
				l, err := commands.ParseLayer(layer)
				if err != nil {
					return err
				}
				filter.Layer = &l
			}
			if direction != "" {
				d, err := commands.ParseDirection(direction)
				if err != nil {
					return err
				}
				filter.Direction = &d
			}
			if category != "" {
				c, err := commands.ParseCategory(category)
				if err != nil {
					return err
				}
				filter.Category = &c
			}
			if operation != "" {
				op, err := log.ParseOperation(operation)
				if err != nil {
					return err
				}
				filter.Operation = &op
			}
			return commands.RunView(args[0], filter, cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.StringVar(&layer, "layer", "", "Filter by layer (transport, display, discovery)")
	f.StringVar(&direction, "direction", "", "Filter by direction (in, out)")
	f.StringVar(&category, "category", "", "Filter by category (exchange, state, discovery, error)")
	f.StringVar(&operation, "operation", "", "Filter by operation (get_vcp, set_vcp, capabilities, ...)")
	f.StringVar(&display, "display", "", "Filter by display ID")
	return cmd
}

func newExportCmd() *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "export [flags] <file.dlog>",
		Short: "Export log file to JSONL or CSV format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunExport(args[0], format, output, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&format, "format", "jsonl", "Output format (jsonl, csv)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	return cmd
}

func newFilterCmd() *cobra.Command {
	var opts commands.FilterOptions
	cmd := &cobra.Command{
		Use:   "filter [flags] <file.dlog>",
		Short: "Filter log file and write to new file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := commands.RunFilter(args[0], opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Filtered %d events to %s\n", n, opts.Output)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.Output, "output", "o", "", "Output file (required)")
	f.StringVar(&opts.SessionID, "session", "", "Filter by session ID")
	f.StringVar(&opts.DisplayID, "display", "", "Filter by display ID")
	f.StringVar(&opts.Backend, "backend", "", "Filter by backend")
	f.StringVar(&opts.TimeStart, "time-start", "", "Filter by start time (RFC3339)")
	f.StringVar(&opts.TimeEnd, "time-end", "", "Filter by end time (RFC3339)")
	f.StringVar(&opts.Layer, "layer", "", "Filter by layer (transport, display, discovery)")
	f.StringVar(&opts.Direction, "direction", "", "Filter by direction (in, out)")
	f.StringVar(&opts.Category, "category", "", "Filter by category (exchange, state, discovery, error)")
	f.StringVar(&opts.Operation, "operation", "", "Filter by operation")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <file.dlog>",
		Short: "Show statistics about the log file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunStats(args[0], cmd.OutOrStdout())
		},
	}
}
