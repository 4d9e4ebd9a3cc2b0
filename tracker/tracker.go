package tracker

import (
	"errors"
	"fmt"
)

// Defaults give roughly 0.4 s bright and 0.8 s until a byte calms down at 120 ticks
// per second.
const (
	DefaultFadeTicks = 0x30
	DefaultRestTicks = 0x60
)

// ErrSizeMismatch is returned when the buffers handed to DiffAndAge do not
// match the cell count.
var ErrSizeMismatch = errors.New("tracker: buffer size does not match cells")

// Config sets the timer lengths. RestTicks of zero disables the rest timer:
// touched bytes then stay highlighted until the next reset.
type Config struct {
	FadeTicks int
	RestTicks int
}

// DefaultConfig returns the shipped timer lengths.
func DefaultConfig() Config {
	return Config{FadeTicks: DefaultFadeTicks, RestTicks: DefaultRestTicks}
}

// Validate rejects timer lengths the tracker cannot honour.
func (c Config) Validate() error {
	if c.FadeTicks < 1 {
		return fmt.Errorf("fade ticks must be at least 1, got %d", c.FadeTicks)
	}
	if c.RestTicks < 0 {
		return fmt.Errorf("rest ticks must not be negative, got %d", c.RestTicks)
	}
	return nil
}

// Cell is the change state of one byte offset.
type Cell struct {
	Touched   bool
	Direction Direction
	Magnitude Magnitude
	Fade      int
	Rest      int
}

// Tracker owns one Cell per byte of the observed region.
type Tracker struct {
	cfg   Config
	cells []Cell

	// Keep suspends the rest timer so touched bytes stay highlighted.
	Keep bool
}

// New creates a tracker with size untouched cells.
func New(size int, cfg Config) (*Tracker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	t := &Tracker{cfg: cfg}
	t.Reset(size)
	return t, nil
}

// Config returns the timer configuration.
func (t *Tracker) Config() Config {
	return t.cfg
}

// Reset discards all history and sizes the tracker to size cells.
func (t *Tracker) Reset(size int) {
	if size < 0 {
		size = 0
	}
	t.cells = make([]Cell, size)
	for i := range t.cells {
		t.cells[i] = t.initialCell()
	}
}

func (t *Tracker) initialCell() Cell {
	return Cell{
		Direction: Decrease,
		Magnitude: Unit,
		Fade:      t.cfg.FadeTicks,
		Rest:      t.cfg.RestTicks,
	}
}

// Len returns the number of cells.
func (t *Tracker) Len() int {
	return len(t.cells)
}

// Cell returns a copy of the cell at offset i.
func (t *Tracker) Cell(i int) Cell {
	return t.cells[i]
}

// Cells returns a copy of every cell.
func (t *Tracker) Cells() []Cell {
	out := make([]Cell, len(t.cells))
	copy(out, t.cells)
	return out
}

// DiffAndAge advances every cell by one tick. Timers of cells touched on an
// earlier tick count down first; bytes that differ between previous and
// current then restart their timers, so a change observed this tick always
// leaves its cell at full FadeTicks and RestTicks.
func (t *Tracker) DiffAndAge(current, previous []byte) error {
	if len(current) != len(t.cells) || len(previous) != len(t.cells) {
		return fmt.Errorf("%w: cells=%d current=%d previous=%d",
			ErrSizeMismatch, len(t.cells), len(current), len(previous))
	}
	restEnabled := t.cfg.RestTicks > 0
	for i := range t.cells {
		c := &t.cells[i]

		if c.Touched {
			if c.Fade > 0 {
				c.Fade--
			}
			if restEnabled && !t.Keep && c.Rest > 0 {
				c.Rest--
				if c.Rest == 0 {
					c.Touched = false
				}
			}
		}

		cur, prev := current[i], previous[i]
		if cur == prev {
			continue
		}
		c.Touched = true
		var delta byte
		if cur > prev {
			c.Direction = Increase
			delta = cur - prev
		} else {
			c.Direction = Decrease
			delta = prev - cur
		}
		if delta == 1 {
			c.Magnitude = Unit
		} else {
			c.Magnitude = Multi
		}
		c.Fade = t.cfg.FadeTicks
		c.Rest = t.cfg.RestTicks
	}
	return nil
}

// Classify returns the colour class for offset i holding value.
func (t *Tracker) Classify(i int, value byte) Class {
	return ClassOf(t.cells[i], value)
}

// ClassOf maps a cell and the byte it currently holds to a colour class.
func ClassOf(c Cell, value byte) Class {
	switch {
	case !c.Touched && value == 0:
		return MutedZero
	case !c.Touched:
		return Default
	case c.Fade > 0:
		return Bright(c.Direction, c.Magnitude)
	default:
		return Dim(c.Direction, c.Magnitude)
	}
}
