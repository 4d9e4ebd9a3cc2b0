package ui

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"

	"github.com/svanichkin/memwatch/logs"
	"github.com/svanichkin/memwatch/watch"
)

// FrameWriter accepts a fully composed ANSI frame.
type FrameWriter interface {
	WriteFrame(data string) error
}

// SizeFunc reports the terminal size in cells.
type SizeFunc func() (cols, rows int, err error)

// Renderer turns watch frames into ANSI text: a header with the buffer size
// and column offsets, one row per grid line labelled with its display
// address, and a status line.
type Renderer struct {
	out     FrameWriter
	styles  *styles
	size    SizeFunc
	maxRows int
	sb      strings.Builder
}

// NewRenderer returns a renderer writing to out. size may be nil, in which
// case rows are never clipped.
func NewRenderer(out FrameWriter, p Palette, profile termenv.Profile, size SizeFunc) *Renderer {
	return &Renderer{
		out:    out,
		styles: newStyles(p, profile),
		size:   size,
	}
}

// Render implements watch.Renderer.
func (r *Renderer) Render(f watch.Frame) error {
	return r.out.WriteFrame(r.Compose(f))
}

// Compose builds the frame text without writing it.
func (r *Renderer) Compose(f watch.Frame) string {
	h := f.Header
	if h.LayoutChanged {
		r.refreshSize()
	}

	sb := &r.sb
	sb.Reset()
	writeFramePrefix(sb, h.LayoutChanged)

	sb.WriteString(r.styles.text.Render(sizeLabel(h.Size)))
	for col := 0; col < f.Grid.Columns; col++ {
		sb.WriteString(r.styles.column(col))
	}
	sb.WriteString("\x1b[K\n")

	rows := f.Grid.Rows()
	clipped := false
	if r.maxRows > 0 && rows > r.maxRows {
		rows = r.maxRows
		clipped = true
	}
	for row := 0; row < rows; row++ {
		label := h.DisplayOffset + uint64(row)*uint64(f.Grid.Columns)
		sb.WriteString(r.styles.label.Render(fmt.Sprintf("%08X", label)))
		sb.WriteString(r.styles.separator)
		for _, c := range f.Grid.Row(row) {
			sb.WriteString(r.styles.cell(c.Class, c.Value))
		}
		sb.WriteString("\x1b[K\n")
	}

	sb.WriteString(r.styles.status.Render(statusLine(h, clipped)))
	sb.WriteString("\x1b[K\x1b[J")
	return sb.String()
}

func (r *Renderer) refreshSize() {
	if r.size == nil {
		return
	}
	_, rows, err := r.size()
	if err != nil {
		logs.LogV("[term] size: %v", err)
		return
	}
	// header and status line
	r.maxRows = rows - 2
	if r.maxRows < 1 {
		r.maxRows = 1
	}
}

func writeFramePrefix(out *strings.Builder, fullClear bool) {
	if fullClear {
		out.WriteString("\x1b[2J\x1b[H")
	} else {
		out.WriteString("\x1b[H")
	}
}

// sizeLabel is always nine cells wide so the column offsets line up with the
// row labels.
func sizeLabel(size int) string {
	switch {
	case size < 0x1000:
		return fmt.Sprintf("W_SZ:%3X·", size)
	case size < 0x10000:
		return fmt.Sprintf("WSZ:%4X·", size)
	default:
		return fmt.Sprintf("%08X·", size)
	}
}

func statusLine(h watch.Header, clipped bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "PID %d  @%#x  %d t/s", h.PID, h.BaseAddress, h.TickRate)
	if h.Keep {
		b.WriteString("  KEEP")
	}
	if clipped {
		b.WriteString("  [clipped]")
	}
	if h.Status != "" {
		b.WriteString("  ")
		b.WriteString(h.Status)
	}
	return b.String()
}
