package region

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegion(t *testing.T, base, display uint64, size, columns int) Region {
	t.Helper()
	r, err := New(base, display, size, columns)
	require.NoError(t, err)
	return r
}

func TestNewRejectsBadGeometry(t *testing.T) {
	_, err := New(0x1000, 0x1000, 0, 16)
	assert.Error(t, err)
	_, err = New(0x1000, 0x1000, 16, 1)
	assert.Error(t, err)
}

func TestRows(t *testing.T) {
	tests := []struct {
		size, columns, rows int
	}{
		{size: 4, columns: 2, rows: 2},
		{size: 5, columns: 2, rows: 3},
		{size: 256, columns: 16, rows: 16},
		{size: 257, columns: 16, rows: 17},
		{size: 1, columns: 16, rows: 1},
	}
	for _, tt := range tests {
		r := newRegion(t, 0x1000, 0, tt.size, tt.columns)
		assert.Equal(t, tt.rows, r.Rows(), "size=%d columns=%d", tt.size, tt.columns)
	}
}

func TestResizeColumnsKeepsSize(t *testing.T) {
	r := newRegion(t, 0x1000, 0, 64, 16)

	change := r.ResizeColumns(+1)
	assert.Equal(t, Relayout, change)
	assert.Equal(t, 17, r.Columns)
	assert.Equal(t, 64, r.Size)
	assert.False(t, change.Has(Rebuild))

	r.Columns = 3
	assert.Equal(t, Relayout, r.ResizeColumns(-1))
	assert.Equal(t, ChangeNone, r.ResizeColumns(-1), "clamped at the minimum")
	assert.Equal(t, MinColumns, r.Columns)
	assert.Equal(t, 64, r.Size)
}

func TestResizeBufferAlwaysRebuilds(t *testing.T) {
	r := newRegion(t, 0x1000, 0, 8, 4)

	change := r.ResizeBuffer(+1)
	assert.True(t, change.Has(Rebuild))
	assert.True(t, change.Has(Relayout))
	assert.Equal(t, 9, r.Size)

	change = r.ResizeBuffer(-r.Columns)
	assert.True(t, change.Has(Rebuild))
	assert.Equal(t, 5, r.Size)

	change = r.ResizeBuffer(-100)
	assert.True(t, change.Has(Rebuild), "clamped resize still discards history")
	assert.Equal(t, MinSize, r.Size)
}

func TestMoveAddressTogether(t *testing.T) {
	r := newRegion(t, 0x7f00, 0x10, 32, 16)

	assert.Equal(t, Rebuild, r.MoveAddress(+16))
	assert.Equal(t, uint64(0x7f10), r.BaseAddress)
	assert.Equal(t, uint64(0x20), r.DisplayOffset)

	assert.Equal(t, Rebuild, r.MoveAddress(-1))
	assert.Equal(t, uint64(0x7f0f), r.BaseAddress)
	assert.Equal(t, uint64(0x1f), r.DisplayOffset)
}

func TestMoveAddressRejectsNegativeDisplay(t *testing.T) {
	r := newRegion(t, 0x7f00, 0x08, 32, 16)

	assert.Equal(t, ChangeNone, r.MoveAddress(-16))
	assert.Equal(t, uint64(0x7f00), r.BaseAddress, "base unchanged on rejected move")
	assert.Equal(t, uint64(0x08), r.DisplayOffset)

	r.DisplayOffset = 0
	assert.Equal(t, ChangeNone, r.MoveAddress(-1))
	assert.Equal(t, uint64(0x7f00), r.BaseAddress)
	assert.Equal(t, uint64(0), r.DisplayOffset)

	assert.Equal(t, ChangeNone, r.MoveAddress(0))
}

func TestMoveAddressRejectsWrapAround(t *testing.T) {
	r := newRegion(t, math.MaxUint64-2, 0x10, 8, 4)

	assert.Equal(t, ChangeNone, r.MoveAddress(+4))
	assert.Equal(t, uint64(math.MaxUint64-2), r.BaseAddress)
	assert.Equal(t, uint64(0x10), r.DisplayOffset)

	assert.Equal(t, Rebuild, r.MoveAddress(+2))
	assert.Equal(t, uint64(math.MaxUint64), r.BaseAddress)

	r = newRegion(t, 0x1000, math.MaxUint64-1, 8, 4)
	assert.Equal(t, ChangeNone, r.MoveAddress(+4), "display label must not wrap either")
	assert.Equal(t, uint64(0x1000), r.BaseAddress)
}

func TestReanchorReturnsToOrigin(t *testing.T) {
	r := newRegion(t, 0x7f00, 0, 32, 16)
	r.MoveAddress(+0x40)
	r.MoveAddress(+3)

	assert.Equal(t, Rebuild, r.Reanchor())
	assert.Equal(t, uint64(0x7f00), r.BaseAddress)
	assert.Equal(t, uint64(0), r.DisplayOffset)

	assert.Equal(t, ChangeNone, r.Reanchor(), "already at the origin")
}

func TestShiftDisplayOnlyRelabels(t *testing.T) {
	r := newRegion(t, 0x7f00, 0, 32, 16)

	assert.Equal(t, ChangeNone, r.ShiftDisplay(-1))
	assert.Equal(t, uint64(0), r.DisplayOffset)

	assert.Equal(t, Relabel, r.ShiftDisplay(+1))
	assert.Equal(t, uint64(1), r.DisplayOffset)
	assert.Equal(t, uint64(0x7f00), r.BaseAddress)

	assert.Equal(t, Relabel, r.ZeroDisplay())
	assert.Equal(t, uint64(0), r.DisplayOffset)
	assert.Equal(t, ChangeNone, r.ZeroDisplay())
}

func TestRowLabel(t *testing.T) {
	r := newRegion(t, 0x7f00, 0x100, 64, 16)
	assert.Equal(t, uint64(0x100), r.RowLabel(0))
	assert.Equal(t, uint64(0x130), r.RowLabel(3))
}
