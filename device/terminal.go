package device

import (
	"errors"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

const (
	seqEnterAlt  = "\x1b[?1049h\x1b[?25l\x1b[?7l\x1b[3J\x1b[H"
	seqExitAlt   = "\x1b[?7h\x1b[?25h\x1b[?1049l"
	seqSyncBegin = "\x1b[?2026h"
	seqSyncEnd   = "\x1b[?2026l"
)

// ErrNotTerminal is returned when stdout is not attached to a terminal.
var ErrNotTerminal = errors.New("stdout is not a terminal")

// Terminal writes prepared ANSI frames to an output stream, wrapping each
// frame in synchronized output when the backend supports it.
type Terminal struct {
	mu     sync.Mutex
	out    io.Writer
	sync   bool
	active bool
}

// NewTerminal returns a terminal writing to out.
func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out, sync: supportsSyncOutput}
}

// Enter switches to the alternate screen, hides the cursor and disables line
// wrap.
func (t *Terminal) Enter() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active {
		return nil
	}
	if _, err := io.WriteString(t.out, seqEnterAlt); err != nil {
		return err
	}
	t.active = true
	return nil
}

// Exit restores the primary screen. It is safe to call more than once.
func (t *Terminal) Exit() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.active {
		return nil
	}
	t.active = false
	seq := seqExitAlt
	if t.sync {
		seq = seqSyncEnd + seq
	}
	_, err := io.WriteString(t.out, seq)
	return err
}

// Active reports whether the alternate screen is in use.
func (t *Terminal) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// WriteFrame prints data verbatim as one synchronized update.
func (t *Terminal) WriteFrame(data string) error {
	if data == "" {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sync {
		data = seqSyncBegin + data + seqSyncEnd
	}
	_, err := io.WriteString(t.out, data)
	return err
}

// GetTermSize queries the current terminal size in character cells using stdout.
func GetTermSize() (cols, rows int, err error) {
	cols, rows, err = term.GetSize(int(os.Stdout.Fd()))
	return
}

// CheckInteractive fails unless both stdin and stdout are terminals.
func CheckInteractive() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNotTerminal
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("stdin is not a terminal")
	}
	return nil
}
