package region

import (
	"fmt"
	"math"
)

// MinColumns and MinSize bound the layout; a grid narrower than two bytes or
// a buffer smaller than two bytes is never produced by a resize.
const (
	MinColumns = 2
	MinSize    = 2
)

// Change reports what a mutation did to the region so the caller knows how
// much derived state has to be rebuilt.
type Change uint8

const (
	// Relayout means the grid geometry changed (rows or columns).
	Relayout Change = 1 << iota
	// Rebuild means the sampled bytes changed (size or address): buffers and
	// cells must be recreated and a fresh baseline read taken.
	Rebuild
	// Relabel means only the row labels changed.
	Relabel

	ChangeNone Change = 0
)

// Has reports whether all bits of flag are set.
func (c Change) Has(flag Change) bool {
	return c&flag == flag && flag != 0
}

// Region is the observed window into the remote address space.
type Region struct {
	BaseAddress   uint64
	DisplayOffset uint64
	Size          int
	Columns       int
}

// New validates the initial parameters. Size may start at 1 (the legacy
// command line accepts it); resizes clamp to MinSize afterwards.
func New(base, display uint64, size, columns int) (Region, error) {
	if size < 1 {
		return Region{}, fmt.Errorf("region size must be positive, got %d", size)
	}
	if columns < MinColumns {
		return Region{}, fmt.Errorf("region needs at least %d columns, got %d", MinColumns, columns)
	}
	return Region{
		BaseAddress:   base,
		DisplayOffset: display,
		Size:          size,
		Columns:       columns,
	}, nil
}

// Rows is ceil(Size / Columns).
func (r Region) Rows() int {
	if r.Columns <= 0 {
		return 0
	}
	return (r.Size + r.Columns - 1) / r.Columns
}

// RowLabel returns the display address of the first byte on row.
func (r Region) RowLabel(row int) uint64 {
	return r.DisplayOffset + uint64(row)*uint64(r.Columns)
}

// ResizeColumns changes the grid width. It never changes Size.
func (r *Region) ResizeColumns(delta int) Change {
	next := r.Columns + delta
	if next < MinColumns {
		next = MinColumns
	}
	if next == r.Columns {
		return ChangeNone
	}
	r.Columns = next
	return Relayout
}

// ResizeBuffer changes the number of sampled bytes. A size command always
// discards history, even when clamping leaves the size where it was.
func (r *Region) ResizeBuffer(delta int) Change {
	next := r.Size + delta
	if next < MinSize {
		next = MinSize
	}
	r.Size = next
	return Relayout | Rebuild
}

// MoveAddress shifts the base and display addresses together. A move that
// would take the display offset below zero, or either address past the top
// of the address space, is rejected.
func (r *Region) MoveAddress(delta int64) Change {
	if delta == 0 {
		return ChangeNone
	}
	if delta < 0 {
		back := uint64(-delta)
		if back > r.DisplayOffset || back > r.BaseAddress {
			return ChangeNone
		}
		r.BaseAddress -= back
		r.DisplayOffset -= back
		return Rebuild
	}
	ahead := uint64(delta)
	if ahead > math.MaxUint64-r.BaseAddress || ahead > math.MaxUint64-r.DisplayOffset {
		return ChangeNone
	}
	r.BaseAddress += ahead
	r.DisplayOffset += ahead
	return Rebuild
}

// Reanchor walks back to the logical origin: the base moves by the consumed
// display offset and the display offset returns to zero.
func (r *Region) Reanchor() Change {
	if r.DisplayOffset == 0 {
		return ChangeNone
	}
	if r.DisplayOffset > r.BaseAddress {
		return ChangeNone
	}
	r.BaseAddress -= r.DisplayOffset
	r.DisplayOffset = 0
	return Rebuild
}

// ShiftDisplay moves only the row labels.
func (r *Region) ShiftDisplay(delta int64) Change {
	if delta == 0 {
		return ChangeNone
	}
	if delta < 0 {
		back := uint64(-delta)
		if back > r.DisplayOffset {
			return ChangeNone
		}
		r.DisplayOffset -= back
		return Relabel
	}
	r.DisplayOffset += uint64(delta)
	return Relabel
}

// ZeroDisplay relabels the current first byte as address zero.
func (r *Region) ZeroDisplay() Change {
	if r.DisplayOffset == 0 {
		return ChangeNone
	}
	r.DisplayOffset = 0
	return Relabel
}

func (r Region) String() string {
	return fmt.Sprintf("addr=%#x display=%#x size=%#x cols=%d", r.BaseAddress, r.DisplayOffset, r.Size, r.Columns)
}
