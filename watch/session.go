package watch

import (
	"context"

	"github.com/svanichkin/memwatch/region"
	"github.com/svanichkin/memwatch/snapshot"
	"github.com/svanichkin/memwatch/tracker"
)

// Session is the complete view state of one watch: the region, the two most
// recent snapshots and the per-byte change cells. It is owned by the frame
// driver goroutine.
type Session struct {
	PID     int
	Region  region.Region
	Buffers *snapshot.Pair
	Tracker *tracker.Tracker

	layoutDirty bool
}

// NewSession allocates buffers and cells sized to r.
func NewSession(pid int, r region.Region, cfg tracker.Config) (*Session, error) {
	tr, err := tracker.New(r.Size, cfg)
	if err != nil {
		return nil, err
	}
	return &Session{
		PID:         pid,
		Region:      r,
		Buffers:     snapshot.New(r.Size),
		Tracker:     tr,
		layoutDirty: true,
	}, nil
}

// Baseline reads the region into Previous so the next diff has a reference.
func (s *Session) Baseline(ctx context.Context, src MemorySource) error {
	return readInto(ctx, src, s.Region.BaseAddress, s.Buffers.Previous)
}

// rebuild recreates buffers and cells for the current region size. The keep
// flag survives.
func (s *Session) rebuild() {
	s.Buffers = snapshot.New(s.Region.Size)
	s.Tracker.Reset(s.Region.Size)
}

// MarkLayoutDirty asks the renderer for a full redraw on the next frame.
func (s *Session) MarkLayoutDirty() { s.layoutDirty = true }

// takeLayoutDirty reports and clears the dirty flag.
func (s *Session) takeLayoutDirty() bool {
	dirty := s.layoutDirty
	s.layoutDirty = false
	return dirty
}
