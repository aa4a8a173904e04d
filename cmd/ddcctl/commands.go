package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/displayctl/ddc-go/pkg/display"
	"github.com/displayctl/ddc-go/pkg/vcp"
)

// listing is the JSON form of a discovered display.
type listing struct {
	ID           string      `json:"id"`
	Backend      string      `json:"backend"`
	Manufacturer string      `json:"manufacturer,omitempty"`
	Product      uint16      `json:"product,omitempty"`
	Model        string      `json:"model,omitempty"`
	Serial       string      `json:"serial,omitempty"`
	Year         uint16      `json:"year,omitempty"`
	Confidence   string      `json:"confidence,omitempty"`
	Alternates   []alternate `json:"alternates,omitempty"`
}

type alternate struct {
	Backend      string `json:"backend"`
	ConnectionID string `json:"connection_id"`
}

func newListing(d *display.Display) listing {
	l := listing{ID: d.ID(), Backend: string(d.Backend())}
	if id := d.Identity(); id != nil {
		l.Manufacturer = id.ManufacturerID
		l.Product = id.ProductCode
		l.Model = id.ModelName
		l.Year = id.Year
		l.Confidence = id.Confidence.String()
		switch {
		case id.SerialString != "":
			l.Serial = id.SerialString
		case id.Serial != 0:
			l.Serial = strconv.FormatUint(uint64(id.Serial), 10)
		}
	}
	for _, a := range d.Alternates() {
		l.Alternates = append(l.Alternates, alternate{Backend: string(a.Backend), ConnectionID: a.ConnectionID})
	}
	return l
}

func newListCmd(c *cli) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered displays",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := c.app
			res, err := a.coord.Discover(cmd.Context())
			if err != nil {
				return err
			}
			defer res.Close()

			for _, f := range res.Failures {
				a.logger.Warn("backend failed", "backend", f.Backend, "error", f.Err)
			}

			var out []listing
			for _, d := range res.Displays {
				if a.query(d) {
					out = append(out, newListing(d))
				}
			}

			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			if len(out) == 0 {
				fmt.Fprintln(w, "No displays found")
				return nil
			}
			for _, l := range out {
				printListing(w, l)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func printListing(w io.Writer, l listing) {
	fmt.Fprintf(w, "%s\n", l.ID)
	if l.Manufacturer == "" {
		fmt.Fprintln(w, "  Identity:   unknown")
	} else {
		fmt.Fprintf(w, "  Identity:   %s 0x%04X", l.Manufacturer, l.Product)
		if l.Model != "" {
			fmt.Fprintf(w, " %q", l.Model)
		}
		if l.Serial != "" {
			fmt.Fprintf(w, " #%s", l.Serial)
		}
		fmt.Fprintln(w)
		if l.Year != 0 {
			fmt.Fprintf(w, "  Year:       %d\n", l.Year)
		}
		fmt.Fprintf(w, "  Confidence: %s\n", l.Confidence)
	}
	for _, alt := range l.Alternates {
		fmt.Fprintf(w, "  Also via:   %s:%s\n", alt.Backend, alt.ConnectionID)
	}
}

func newCapsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "caps",
		Short: "Show the capabilities of the selected displays",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			return c.app.each(cmd.Context(), func(d *display.Display) error {
				desc, err := d.Capabilities(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\n", d)
				if desc.Model != "" {
					fmt.Fprintf(w, "  Model:   %s\n", desc.Model)
				}
				if desc.Type != "" {
					fmt.Fprintf(w, "  Type:    %s\n", desc.Type)
				}
				if !desc.MCCSVersion.IsZero() {
					fmt.Fprintf(w, "  MCCS:    %s\n", desc.MCCSVersion)
				}
				if len(desc.Commands) > 0 {
					fmt.Fprintf(w, "  Commands: % X\n", desc.Commands)
				}
				fmt.Fprintln(w, "  Features:")
				for _, code := range desc.Codes() {
					f := desc.Features[code]
					fmt.Fprintf(w, "    0x%02X %-22s", uint8(code), code)
					if len(f.Values) > 0 {
						fmt.Fprintf(w, " % X", f.Values)
					}
					fmt.Fprintln(w)
				}
				return nil
			})
		},
	}
}

func newGetCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "get <feature>...",
		Short: "Read VCP features",
		Long: `Read one or more VCP features. Features are given by name
(Luminance, Contrast, InputSource, ...) or as hex codes (0x10).`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codes, err := parseCodes(args)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			return c.app.each(cmd.Context(), func(d *display.Display) error {
				for _, code := range codes {
					v, err := d.GetVCP(cmd.Context(), code)
					if err != nil {
						return err
					}
					fmt.Fprintf(w, "%s %s %s\n", d.ID(), code, v)
				}
				return nil
			})
		},
	}
}

func newSetCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "set <feature> <value>",
		Short: "Write a VCP feature",
		Long: `Write a VCP feature. Non-continuous features (InputSource,
PowerMode, ...) take a single byte; other features take a level. Values
are decimal or 0x-prefixed hex.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := vcp.ParseFeatureCode(args[0])
			if err != nil {
				return err
			}
			value, err := parseValue(code, args[1])
			if err != nil {
				return err
			}
			return c.app.each(cmd.Context(), func(d *display.Display) error {
				return d.SetVCP(cmd.Context(), code, value)
			})
		},
	}
}

func newTableCmd(c *cli) *cobra.Command {
	var write string
	var offset uint16
	cmd := &cobra.Command{
		Use:   "table <feature>",
		Short: "Read or write a table feature",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := vcp.ParseFeatureCode(args[0])
			if err != nil {
				return err
			}
			var data []byte
			if write != "" {
				data, err = hex.DecodeString(strings.ReplaceAll(write, " ", ""))
				if err != nil {
					return fmt.Errorf("invalid table data: %w", err)
				}
			}
			w := cmd.OutOrStdout()
			return c.app.each(cmd.Context(), func(d *display.Display) error {
				if data != nil {
					return d.WriteTable(cmd.Context(), code, offset, data)
				}
				v, err := d.ReadTable(cmd.Context(), code)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s %s %d bytes\n%s", d.ID(), code, len(v.Table), hex.Dump(v.Table))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&write, "write", "", "hex data to write instead of reading")
	cmd.Flags().Uint16Var(&offset, "offset", 0, "write offset")
	return cmd
}

func newSaveCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Ask the selected displays to persist their current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.each(cmd.Context(), func(d *display.Display) error {
				return d.SaveCurrentSettings(cmd.Context())
			})
		},
	}
}

func newMCCSCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "mccs",
		Short: "Show the MCCS version of the selected displays",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			return c.app.each(cmd.Context(), func(d *display.Display) error {
				v, err := d.MCCSVersion(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s %s\n", d.ID(), v)
				return nil
			})
		},
	}
}

func newTimingCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "timing",
		Short: "Show the timing report of the selected displays",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			return c.app.each(cmd.Context(), func(d *display.Display) error {
				t, err := d.TimingReport(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s %s\n", d.ID(), t)
				return nil
			})
		},
	}
}

func parseCodes(args []string) ([]vcp.FeatureCode, error) {
	codes := make([]vcp.FeatureCode, 0, len(args))
	for _, arg := range args {
		code, err := vcp.ParseFeatureCode(arg)
		if err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, nil
}

// parseValue reads a value for code: a byte for non-continuous features, a
// level otherwise. Both accept decimal or 0x-prefixed hex.
func parseValue(code vcp.FeatureCode, s string) (vcp.Value, error) {
	switch vcp.KindOf(code) {
	case vcp.KindTable:
		return vcp.Value{}, fmt.Errorf("%s is a table feature; use the table command", code)
	case vcp.KindNonContinuous:
		n, err := strconv.ParseUint(s, 0, 8)
		if err != nil {
			return vcp.Value{}, fmt.Errorf("invalid value %q for %s: expected a byte", s, code)
		}
		return vcp.NonContinuous(uint8(n)), nil
	default:
		n, err := strconv.ParseUint(s, 0, 16)
		if err != nil {
			return vcp.Value{}, fmt.Errorf("invalid value %q for %s: expected a level", s, code)
		}
		return vcp.Level(uint16(n)), nil
	}
}
