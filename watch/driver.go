package watch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/svanichkin/memwatch/clock"
	"github.com/svanichkin/memwatch/logs"
)

// Defaults for the frame loop.
const (
	DefaultTickRate   = 120
	DefaultStatusHold = 2 * time.Second
)

// ErrStopped is returned by Tick once the driver has stopped.
var ErrStopped = errors.New("watch: driver stopped")

// State is the driver lifecycle.
type State uint8

const (
	Running State = iota
	Stopped
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// Renderer draws one frame.
type Renderer interface {
	Render(Frame) error
}

// Options configures a Driver. Session, Source and Renderer are required.
type Options struct {
	Session    *Session
	Source     MemorySource
	Renderer   Renderer
	Inputs     []CommandSource
	Exporter   Exporter
	Clock      clock.Clock
	TickRate   int
	StatusHold time.Duration
}

// Driver runs the per-tick cycle: drain commands, navigate, read, diff,
// commit, render, pace.
type Driver struct {
	session  *Session
	source   MemorySource
	renderer Renderer
	inputs   []CommandSource
	nav      Navigator
	clock    clock.Clock
	interval time.Duration
	hold     time.Duration

	state       State
	started     bool
	status      string
	statusUntil time.Time
	rate        rateCounter
	cells       []GridCell
}

// NewDriver validates opts and returns a driver in the Running state.
func NewDriver(opts Options) (*Driver, error) {
	if opts.Session == nil {
		return nil, errors.New("watch: session is required")
	}
	if opts.Source == nil {
		return nil, errors.New("watch: memory source is required")
	}
	if opts.Renderer == nil {
		return nil, errors.New("watch: renderer is required")
	}
	rate := opts.TickRate
	if rate == 0 {
		rate = DefaultTickRate
	}
	if rate < 1 {
		return nil, fmt.Errorf("watch: tick rate must be positive, got %d", rate)
	}
	hold := opts.StatusHold
	if hold <= 0 {
		hold = DefaultStatusHold
	}
	c := opts.Clock
	if c == nil {
		c = clock.Real()
	}
	return &Driver{
		session:  opts.Session,
		source:   opts.Source,
		renderer: opts.Renderer,
		inputs:   opts.Inputs,
		nav:      Navigator{Source: opts.Source, Exporter: opts.Exporter},
		clock:    c,
		interval: time.Second / time.Duration(rate),
		hold:     hold,
		state:    Running,
	}, nil
}

// State returns the current lifecycle state.
func (d *Driver) State() State { return d.state }

// Interval returns the target tick duration.
func (d *Driver) Interval() time.Duration { return d.interval }

// Start takes the initial baseline read. A failure here is fatal and leaves
// the driver stopped.
func (d *Driver) Start(ctx context.Context) error {
	if d.state == Stopped {
		return ErrStopped
	}
	if err := d.session.Baseline(ctx, d.source); err != nil {
		d.state = Stopped
		return err
	}
	d.started = true
	return nil
}

// Run ticks until the context is cancelled, Quit is received, or a read
// fails. Cancellation and Quit return nil.
func (d *Driver) Run(ctx context.Context) error {
	if !d.started {
		if err := d.Start(ctx); err != nil {
			return err
		}
	}
	for {
		if ctx.Err() != nil {
			d.state = Stopped
			logs.LogV("[loop] stopping: %v", ctx.Err())
			return nil
		}
		began := d.clock.Now()
		if err := d.Tick(ctx); err != nil {
			return err
		}
		if d.state == Stopped {
			return nil
		}
		if spent := d.clock.Now().Sub(began); spent < d.interval {
			d.clock.Sleep(d.interval - spent)
		}
	}
}

// Tick runs one cycle.
func (d *Driver) Tick(ctx context.Context) error {
	if d.state == Stopped {
		return ErrStopped
	}

	var cmds []Command
	for _, in := range d.inputs {
		cmds = append(cmds, in.Drain()...)
	}
	out := d.nav.Apply(ctx, d.session, Order(cmds))
	if status := statusText(out); status != "" {
		d.setStatus(status)
	}
	if out.Quit {
		d.state = Stopped
		logs.LogV("[loop] quit requested")
		return nil
	}

	s := d.session
	if err := readInto(ctx, d.source, s.Region.BaseAddress, s.Buffers.Current); err != nil {
		d.state = Stopped
		return err
	}
	if err := s.Tracker.DiffAndAge(s.Buffers.Current, s.Buffers.Previous); err != nil {
		d.state = Stopped
		return err
	}
	s.Buffers.Commit()

	now := d.clock.Now()
	d.rate.record(now)
	if err := d.renderer.Render(d.frame(now)); err != nil {
		d.state = Stopped
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

// statusText picks the status line for a tick. Warnings win over notices
// and are all kept.
func statusText(out Outcome) string {
	if len(out.Warnings) > 0 {
		msgs := make([]string, len(out.Warnings))
		for i, w := range out.Warnings {
			msgs[i] = w.Error()
		}
		return strings.Join(msgs, "; ")
	}
	if n := len(out.Notices); n > 0 {
		return out.Notices[n-1]
	}
	return ""
}

func (d *Driver) setStatus(msg string) {
	d.status = msg
	d.statusUntil = d.clock.Now().Add(d.hold)
}

func (d *Driver) frame(now time.Time) Frame {
	s := d.session
	if d.status != "" && !now.Before(d.statusUntil) {
		d.status = ""
	}

	size := s.Region.Size
	if cap(d.cells) < size {
		d.cells = make([]GridCell, size)
	}
	d.cells = d.cells[:size]
	for i, v := range s.Buffers.Current {
		d.cells[i] = GridCell{Value: v, Class: s.Tracker.Classify(i, v)}
	}

	return Frame{
		Header: Header{
			PID:           s.PID,
			Size:          size,
			BaseAddress:   s.Region.BaseAddress,
			DisplayOffset: s.Region.DisplayOffset,
			Columns:       s.Region.Columns,
			Rows:          s.Region.Rows(),
			Keep:          s.Tracker.Keep,
			LayoutChanged: s.takeLayoutDirty(),
			Status:        d.status,
			TickRate:      d.rate.rate,
		},
		Grid: Grid{Columns: s.Region.Columns, Cells: d.cells},
	}
}
