package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/displayctl/ddc-go/pkg/display"
	"github.com/displayctl/ddc-go/pkg/vcp"
)

func newShellCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive shell that keeps displays open between commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rl, err := readline.NewEx(&readline.Config{
				Prompt:          "ddc> ",
				InterruptPrompt: "^C",
				EOFPrompt:       "exit",
				AutoComplete:    completer(),
			})
			if err != nil {
				return fmt.Errorf("failed to create readline: %w", err)
			}
			defer rl.Close()

			sh := &shell{app: c.app, out: rl.Stdout()}
			defer sh.closeAll()
			if err := sh.rescan(cmd.Context()); err != nil {
				fmt.Fprintf(sh.out, "Error: %v\n", err)
			}
			sh.printHelp()
			return sh.run(cmd.Context(), rl)
		},
	}
}

func completer() *readline.PrefixCompleter {
	var features []readline.PrefixCompleterInterface
	for _, name := range []string{"Luminance", "Contrast", "InputSource", "PowerMode", "AudioVolume", "ColorPreset"} {
		features = append(features, readline.PcItem(name))
	}
	return readline.NewPrefixCompleter(
		readline.PcItem("help"),
		readline.PcItem("list"),
		readline.PcItem("use"),
		readline.PcItem("get", features...),
		readline.PcItem("set", features...),
		readline.PcItem("caps"),
		readline.PcItem("mccs"),
		readline.PcItem("timing"),
		readline.PcItem("save"),
		readline.PcItem("rescan"),
		readline.PcItem("quit"),
	)
}

// shell holds the displays of the last scan and the current selection.
type shell struct {
	app      *app
	out      io.Writer
	displays []*display.Display
	selected *display.Display
}

func (s *shell) run(ctx context.Context, rl *readline.Instance) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			return nil
		}
		if quit := s.exec(ctx, line); quit {
			return nil
		}
	}
}

// exec runs one command line and reports whether the shell should exit.
func (s *shell) exec(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}
	cmd, args := strings.ToLower(parts[0]), parts[1:]

	var err error
	switch cmd {
	case "help", "?":
		s.printHelp()
	case "list", "ls":
		s.cmdList()
	case "use":
		err = s.cmdUse(args)
	case "get", "g":
		err = s.cmdGet(ctx, args)
	case "set", "s":
		err = s.cmdSet(ctx, args)
	case "caps":
		err = s.forEach(func(d *display.Display) error {
			desc, err := d.Capabilities(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(s.out, "%s: %d features, MCCS %s\n", d.ID(), len(desc.Features), desc.MCCSVersion)
			return nil
		})
	case "mccs":
		err = s.forEach(func(d *display.Display) error {
			v, err := d.MCCSVersion(ctx)
			if err == nil {
				fmt.Fprintf(s.out, "%s %s\n", d.ID(), v)
			}
			return err
		})
	case "timing":
		err = s.forEach(func(d *display.Display) error {
			t, err := d.TimingReport(ctx)
			if err == nil {
				fmt.Fprintf(s.out, "%s %s\n", d.ID(), t)
			}
			return err
		})
	case "save":
		err = s.forEach(func(d *display.Display) error { return d.SaveCurrentSettings(ctx) })
	case "rescan":
		err = s.rescan(ctx)
	case "quit", "exit", "q":
		fmt.Fprintln(s.out, "Exiting...")
		return true
	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
	return false
}

func (s *shell) printHelp() {
	fmt.Fprintln(s.out, `
Commands:
  list                  - List displays from the last scan
  use <id|all>          - Select one display, or all of them
  get <feature>...      - Read features
  set <feature> <value> - Write a feature
  caps                  - Show capability summary
  mccs                  - Show MCCS version
  timing                - Show timing report
  save                  - Persist current settings
  rescan                - Discover displays again
  quit                  - Exit`)
}

func (s *shell) rescan(ctx context.Context) error {
	s.closeAll()
	ds, err := s.app.find(ctx)
	if err != nil {
		return err
	}
	s.displays = ds
	fmt.Fprintf(s.out, "Found %d display(s)\n", len(ds))
	return nil
}

func (s *shell) closeAll() {
	for _, d := range s.displays {
		d.Close()
	}
	s.displays = nil
	s.selected = nil
}

func (s *shell) cmdList() {
	if len(s.displays) == 0 {
		fmt.Fprintln(s.out, "No displays (try 'rescan')")
		return
	}
	for _, d := range s.displays {
		marker := " "
		if d == s.selected {
			marker = "*"
		}
		fmt.Fprintf(s.out, "%s %s [%s]\n", marker, d, d.State())
	}
}

func (s *shell) cmdUse(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: use <id|all>")
	}
	if args[0] == "all" {
		s.selected = nil
		return nil
	}
	for _, d := range s.displays {
		if d.ID() == args[0] {
			s.selected = d
			return nil
		}
	}
	return fmt.Errorf("unknown display %q", args[0])
}

func (s *shell) cmdGet(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: get <feature>...")
	}
	codes, err := parseCodes(args)
	if err != nil {
		return err
	}
	return s.forEach(func(d *display.Display) error {
		for _, code := range codes {
			v, err := d.GetVCP(ctx, code)
			if err != nil {
				return err
			}
			fmt.Fprintf(s.out, "%s %s %s\n", d.ID(), code, v)
		}
		return nil
	})
}

func (s *shell) cmdSet(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: set <feature> <value>")
	}
	code, err := vcp.ParseFeatureCode(args[0])
	if err != nil {
		return err
	}
	value, err := parseValue(code, args[1])
	if err != nil {
		return err
	}
	return s.forEach(func(d *display.Display) error {
		return d.SetVCP(ctx, code, value)
	})
}

// forEach applies fn to the selected display, or to every open display
// when none is selected. Closed displays are skipped.
func (s *shell) forEach(fn func(*display.Display) error) error {
	targets := s.displays
	if s.selected != nil {
		targets = []*display.Display{s.selected}
	}
	if len(targets) == 0 {
		return errNoDisplays
	}
	var errs []error
	for _, d := range targets {
		if d.State() == display.StateClosed {
			fmt.Fprintf(s.out, "%s is gone, skipping (try 'rescan')\n", d.ID())
			continue
		}
		if err := fn(d); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", d.ID(), err))
		}
	}
	return errors.Join(errs...)
}
