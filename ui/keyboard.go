package ui

import (
	"bufio"
	"context"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/svanichkin/memwatch/clock"
	"github.com/svanichkin/memwatch/logs"
	"github.com/svanichkin/memwatch/watch"
)

// DefaultHoldWindow is how long a key counts as held after its last byte
// arrived. It must stay above the terminal's autorepeat interval and well
// below the repeat delay of the gate.
const DefaultHoldWindow = 80 * time.Millisecond

const keyBacklog = 64

// Keyboard turns raw terminal input into throttled commands. A reader
// goroutine feeds decoded keys into a channel; Drain runs on the frame
// driver goroutine once per tick.
type Keyboard struct {
	keys   chan Key
	clock  clock.Clock
	hold   time.Duration
	gate   *watch.RepeatGate
	keymap map[Key]watch.Command

	last     watch.Command
	haveLast bool
	lastSeen time.Time
}

// NewKeyboard builds a keyboard with the default keymap.
func NewKeyboard(c clock.Clock, policy watch.RepeatPolicy, hold time.Duration) *Keyboard {
	if c == nil {
		c = clock.Real()
	}
	if hold <= 0 {
		hold = DefaultHoldWindow
	}
	return &Keyboard{
		keys:   make(chan Key, keyBacklog),
		clock:  c,
		hold:   hold,
		gate:   watch.NewRepeatGate(policy),
		keymap: DefaultKeymap(),
	}
}

// Start puts the terminal in non-canonical mode and reads keys until ctx is
// done. The returned function restores the terminal.
func (k *Keyboard) Start(ctx context.Context, in *os.File) (func(), error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		logs.LogV("[term] keyboard disabled: stdin is not a TTY")
		return func() {}, nil
	}
	restore, err := prepareTTY(fd)
	if err != nil {
		return nil, err
	}
	go k.readLoop(ctx, in)
	return restore, nil
}

func (k *Keyboard) readLoop(ctx context.Context, in io.Reader) {
	reader := bufio.NewReader(in)
	buf := make([]byte, 64)
	for {
		n, err := reader.Read(buf)
		if n > 0 {
			k.Feed(buf[:n])
		}
		if err != nil {
			logs.LogV("[term] keyboard stopped: %v", err)
			return
		}
		if ctx.Err() != nil {
			return
		}
	}
}

// Feed decodes raw input and queues the keys. When the backlog is full the
// newest keys are dropped.
func (k *Keyboard) Feed(data []byte) {
	for _, key := range decodeKeys(data) {
		select {
		case k.keys <- key:
		default:
		}
	}
}

// Drain implements watch.CommandSource.
func (k *Keyboard) Drain() []watch.Command {
	now := k.clock.Now()
	var out []watch.Command

	var pending []watch.Command
drain:
	for {
		select {
		case key := <-k.keys:
			if cmd, ok := k.keymap[key]; ok {
				pending = append(pending, cmd)
			}
		default:
			break drain
		}
	}

	for i, cmd := range pending {
		if cmd.Kind == watch.Quit {
			return []watch.Command{cmd}
		}
		// distinct keys that arrived before the last one are separate presses
		if i < len(pending)-1 && cmd != pending[len(pending)-1] {
			out = append(out, cmd)
		}
	}
	if n := len(pending); n > 0 {
		k.last = pending[n-1]
		k.haveLast = true
		k.lastSeen = now
	}

	// Terminals report no key-up, so a key is down while its bytes keep
	// arriving within the hold window. Two taps closer than the window merge
	// into one press, and the pause before the terminal's own autorepeat
	// starts reads as a release, so its first repeat byte is a fresh press.
	down := k.haveLast && now.Sub(k.lastSeen) <= k.hold
	if k.gate.Poll(k.last, down) {
		out = append(out, k.last)
	}
	return out
}
