package watch

import (
	"context"
	"errors"
	"fmt"

	"github.com/svanichkin/memwatch/logs"
	"github.com/svanichkin/memwatch/region"
)

// ErrNoExporter is reported when a snapshot is requested without a dump
// directory configured.
var ErrNoExporter = errors.New("snapshot export is not configured")

// Exporter persists the last observed snapshot.
type Exporter interface {
	Export(pid int, address, display uint64, data []byte) (string, error)
}

// Outcome summarises one Apply call.
type Outcome struct {
	Quit     bool
	Rebuilds int
	Warnings []error
	Notices  []string
}

// Navigator applies commands to a Session.
type Navigator struct {
	Source   MemorySource
	Exporter Exporter
}

// Apply runs cmds in the given order. Size and address changes reallocate
// the session and take a fresh baseline read before returning; a failed
// baseline read is a warning, the next regular read corrects the state.
func (n *Navigator) Apply(ctx context.Context, s *Session, cmds []Command) Outcome {
	var out Outcome
	for _, c := range cmds {
		if out.Quit {
			break
		}
		n.apply(ctx, s, c, &out)
	}
	return out
}

func (n *Navigator) apply(ctx context.Context, s *Session, c Command, out *Outcome) {
	r := &s.Region
	var change region.Change

	switch c.Kind {
	case GrowColumns:
		change = r.ResizeColumns(1)
	case ShrinkColumns:
		change = r.ResizeColumns(-1)
	case GrowBuffer:
		change = r.ResizeBuffer(1)
	case ShrinkBuffer:
		change = r.ResizeBuffer(-1)
	case GrowBufferByRow:
		change = r.ResizeBuffer(r.Columns)
	case ShrinkBufferByRow:
		change = r.ResizeBuffer(-r.Columns)
	case MoveUp:
		change = r.MoveAddress(-int64(r.Columns))
	case MoveDown:
		change = r.MoveAddress(int64(r.Columns))
	case MoveLeft:
		change = r.MoveAddress(-1)
	case MoveRight:
		change = r.MoveAddress(1)
	case PageUp:
		change = r.MoveAddress(-int64(r.Size))
	case PageDown:
		change = r.MoveAddress(int64(r.Size))
	case ReanchorOrigin:
		change = r.Reanchor()
	case ZeroDisplayOffset:
		change = r.ZeroDisplay()
	case ShiftDisplayOffset:
		change = r.ShiftDisplay(c.Delta)
	case ResetDiffState:
		s.Tracker.Reset(r.Size)
		n.baseline(ctx, s, out)
		out.Notices = append(out.Notices, "diff state reset")
	case ToggleKeepTouched:
		s.Tracker.Keep = !s.Tracker.Keep
		if s.Tracker.Keep {
			out.Notices = append(out.Notices, "keep on")
		} else {
			out.Notices = append(out.Notices, "keep off")
		}
	case SaveSnapshot:
		n.export(s, out)
	case Relayout:
		s.MarkLayoutDirty()
	case Quit:
		out.Quit = true
	default:
		logs.LogV("[nav] ignoring unknown command %v", c)
		return
	}

	if change == region.ChangeNone {
		return
	}
	logs.LogV("[nav] %v -> %v", c, s.Region)
	if change.Has(region.Rebuild) {
		s.rebuild()
		out.Rebuilds++
		n.baseline(ctx, s, out)
	}
	if change.Has(region.Relayout) || change.Has(region.Rebuild) {
		s.MarkLayoutDirty()
	}
}

func (n *Navigator) baseline(ctx context.Context, s *Session, out *Outcome) {
	if n.Source == nil {
		return
	}
	if err := s.Baseline(ctx, n.Source); err != nil {
		logs.LogV("[nav] baseline: %v", err)
		out.Warnings = append(out.Warnings, fmt.Errorf("baseline %w", err))
	}
}

func (n *Navigator) export(s *Session, out *Outcome) {
	if n.Exporter == nil {
		out.Warnings = append(out.Warnings, ErrNoExporter)
		return
	}
	path, err := n.Exporter.Export(s.PID, s.Region.BaseAddress, s.Region.DisplayOffset, s.Buffers.Latest())
	if err != nil {
		logs.LogV("[nav] export: %v", err)
		out.Warnings = append(out.Warnings, fmt.Errorf("save snapshot: %w", err))
		return
	}
	logs.LogV("[nav] snapshot written to %s", path)
	out.Notices = append(out.Notices, "saved "+path)
}
