package conf

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"

	"github.com/spf13/pflag"
)

// ErrHelp is returned when -h/--help was given; usage has been printed.
var ErrHelp = pflag.ErrHelp

const usageHeader = `memwatch shows a live hex view of another process's memory and highlights
bytes as they change.

Usage:
  memwatch -p <pid> -a <address> [flags]
  memwatch <pid> <hex_address> <size>

Flags:
`

// ParseCLI parses args (without the program name) into Options. Values come
// from defaults, then the config file, then the command line.
func ParseCLI(args []string, errOut io.Writer) (*Options, error) {
	opts := Defaults()

	flags := pflag.NewFlagSet("memwatch", pflag.ContinueOnError)
	flags.SetOutput(errOut)
	flags.Usage = func() {
		fmt.Fprint(errOut, usageHeader)
		flags.PrintDefaults()
	}

	flags.IntVarP(&opts.PID, "pid", "p", 0, "target process id")
	flags.VarP(addressValue{p: &opts.Address}, "address", "a", "start address (hex with or without 0x, or decimal)")
	flags.VarP(countValue{p: &opts.Size}, "size", "s", "number of bytes to watch")
	flags.VarP(addressValue{p: &opts.Display, set: &opts.DisplaySet}, "display", "d", "address shown for the first byte (default: the start address)")
	flags.IntVarP(&opts.Columns, "columns", "c", opts.Columns, "bytes per row")
	flags.BoolVarP(&opts.Keep, "keep", "k", false, "keep changed bytes highlighted")
	flags.IntVar(&opts.FadeTicks, "fade", opts.FadeTicks, "ticks a change stays bright")
	flags.IntVar(&opts.RestTicks, "rest", opts.RestTicks, "ticks until a changed byte calms down (0 = never)")
	flags.IntVar(&opts.TickRate, "rate", opts.TickRate, "ticks per second")
	flags.StringVar(&opts.ConfigPath, "config", "", "config file or profile name")
	flags.StringVar(&opts.DumpDir, "dump-dir", opts.DumpDir, "directory for saved snapshots")
	flags.StringVar(&opts.Color, "color", opts.Color, "colour mode: auto, truecolor, 256, ansi, none")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "write debug logs")
	flags.BoolVar(&opts.ShowVersion, "version", false, "print version and exit")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if opts.ShowVersion {
		return opts, nil
	}

	if err := parsePositional(opts, flags); err != nil {
		return nil, err
	}

	resolved, err := resolveConfigPath(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("config path error: %w", err)
	}
	opts.ConfigPath = resolved
	fc, err := loadFile(resolved)
	switch {
	case err == nil:
		if err := fc.apply(opts, flags.Changed); err != nil {
			return nil, err
		}
	case errors.Is(err, fs.ErrNotExist) && !flags.Changed("config"):
	default:
		return nil, err
	}

	if flags.Changed("dump-dir") {
		dir, err := expandPath(opts.DumpDir)
		if err != nil {
			return nil, fmt.Errorf("dump-dir: %w", err)
		}
		opts.DumpDir = dir
	}
	if !opts.DisplaySet {
		opts.Display = opts.Address
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	Verbose = opts.Verbose
	return opts, nil
}

// parsePositional accepts the classic "<pid> <hex_address> <size>" form.
func parsePositional(opts *Options, flags *pflag.FlagSet) error {
	rest := flags.Args()
	switch {
	case len(rest) == 0:
		return nil
	case len(rest) != 3:
		return fmt.Errorf("expected <pid> <hex_address> <size>, got %d arguments", len(rest))
	case flags.Changed("pid") || flags.Changed("address") || flags.Changed("size"):
		return fmt.Errorf("positional target conflicts with -p/-a/-s")
	}
	pid, err := strconv.Atoi(rest[0])
	if err != nil {
		return fmt.Errorf("invalid pid %q", rest[0])
	}
	addr, err := parseHex(rest[1])
	if err != nil {
		return fmt.Errorf("invalid address %q", rest[1])
	}
	size, err := parseCount(rest[2])
	if err != nil {
		return err
	}
	opts.PID, opts.Address, opts.Size = pid, addr, size
	return nil
}
