package conf

import (
	"fmt"
	"time"

	"github.com/svanichkin/memwatch/region"
	"github.com/svanichkin/memwatch/tracker"
)

// Verbose enables LogV output.
var Verbose bool

// Defaults for everything that is not a process parameter.
const (
	DefaultSize           = 0x100
	DefaultColumns        = 16
	DefaultTickRate       = 120
	DefaultRepeatDelay    = 12
	DefaultRepeatInterval = 2
	DefaultHoldWindow     = 80 * time.Millisecond
	DefaultColor          = "auto"
	DefaultDumpDir        = "."

	maxFadeTicks = 255
	maxTickRate  = 1000
)

// Options is the merged result of defaults, the config file and the command
// line.
type Options struct {
	PID        int
	Address    uint64
	Display    uint64
	DisplaySet bool
	Size       int
	Columns    int
	Keep       bool

	FadeTicks int
	RestTicks int
	TickRate  int

	RepeatDelay    int
	RepeatInterval int
	HoldWindow     time.Duration

	Color   string
	Palette map[string]string

	ConfigPath  string
	DumpDir     string
	Verbose     bool
	ShowVersion bool
}

// Defaults returns options with every default filled in and no target.
func Defaults() *Options {
	return &Options{
		Size:           DefaultSize,
		Columns:        DefaultColumns,
		FadeTicks:      tracker.DefaultFadeTicks,
		RestTicks:      tracker.DefaultRestTicks,
		TickRate:       DefaultTickRate,
		RepeatDelay:    DefaultRepeatDelay,
		RepeatInterval: DefaultRepeatInterval,
		HoldWindow:     DefaultHoldWindow,
		Color:          DefaultColor,
		DumpDir:        DefaultDumpDir,
	}
}

// Validate checks the merged options.
func (o *Options) Validate() error {
	switch {
	case o.PID <= 0:
		return fmt.Errorf("a target pid is required (-p)")
	case o.Address == 0:
		return fmt.Errorf("a start address is required (-a)")
	case o.Size < 1:
		return fmt.Errorf("size must be at least 1, got %d", o.Size)
	case o.Columns < region.MinColumns:
		return fmt.Errorf("columns must be at least %d, got %d", region.MinColumns, o.Columns)
	case o.FadeTicks < 1 || o.FadeTicks > maxFadeTicks:
		return fmt.Errorf("fade must be in 1..%d, got %d", maxFadeTicks, o.FadeTicks)
	case o.RestTicks < 0:
		return fmt.Errorf("rest must not be negative, got %d", o.RestTicks)
	case o.TickRate < 1 || o.TickRate > maxTickRate:
		return fmt.Errorf("rate must be in 1..%d, got %d", maxTickRate, o.TickRate)
	case o.RepeatDelay < 1 || o.RepeatInterval < 1:
		return fmt.Errorf("key repeat delay and interval must be positive")
	case o.HoldWindow <= 0:
		return fmt.Errorf("key hold window must be positive")
	}
	return nil
}

// TrackerConfig returns the fade and rest timer lengths.
func (o *Options) TrackerConfig() tracker.Config {
	return tracker.Config{FadeTicks: o.FadeTicks, RestTicks: o.RestTicks}
}
