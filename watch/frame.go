package watch

import "github.com/svanichkin/memwatch/tracker"

// Header is the metadata line above the grid.
type Header struct {
	PID           int
	Size          int
	BaseAddress   uint64
	DisplayOffset uint64
	Columns       int
	Rows          int
	Keep          bool
	LayoutChanged bool
	Status        string
	TickRate      int
}

// GridCell is one rendered byte.
type GridCell struct {
	Value byte
	Class tracker.Class
}

// Grid holds the cells row-major. The last row may be partial.
type Grid struct {
	Columns int
	Cells   []GridCell
}

// Rows returns the number of rows, counting a partial last row.
func (g Grid) Rows() int {
	if g.Columns <= 0 {
		return 0
	}
	return (len(g.Cells) + g.Columns - 1) / g.Columns
}

// Row returns the cells of row r.
func (g Grid) Row(r int) []GridCell {
	start := r * g.Columns
	if r < 0 || start >= len(g.Cells) {
		return nil
	}
	end := start + g.Columns
	if end > len(g.Cells) {
		end = len(g.Cells)
	}
	return g.Cells[start:end]
}

// Frame is what the driver hands the renderer each tick. Its cell slice is
// reused on the next tick, so renderers must not keep it.
type Frame struct {
	Header Header
	Grid   Grid
}
